package replay

import (
	"bufio"
	"io"

	"emperror.dev/errors"
	"github.com/starshine-sys/discache/common/log"
	"github.com/starshine-sys/discache/payload"
	"github.com/starshine-sys/discache/report"
	"github.com/starshine-sys/discache/state"
)

// maxLine is the longest event line accepted. GUILD_CREATE for large guilds can be several megabytes.
const maxLine = 64 << 20

// Stats are the totals of one replay.
type Stats struct {
	Lines   int
	Events  int
	Changed int
	Unknown int
	Errors  int
}

// Replayer feeds gateway events through a state.
type Replayer struct {
	State    *state.State
	Reporter *report.Reporter
}

// Run reads one event per line from r, in the gateway's {"t": name, "d": data} format,
// and dispatches each. Empty lines are skipped. Events that fail to apply are reported and skipped;
// only read errors stop the replay.
func (r *Replayer) Run(rd io.Reader) (st Stats, err error) {
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		st.Lines++

		p, err := payload.Parse(line)
		if err != nil {
			st.Errors++
			r.Reporter.Report("line "+itoa(st.Lines), err)
			continue
		}

		name, _ := p.String("t")
		data, ok := p.Get("d")
		if name == "" || !ok {
			log.Debugf("Skipping line %v: not a dispatch event", st.Lines)
			continue
		}

		ev, err := r.State.Dispatch(name, data)
		if err != nil {
			if errors.Is(err, state.ErrUnknownEvent) {
				st.Unknown++
				log.Debugf("Skipping unknown event %v", name)
				continue
			}

			st.Errors++
			r.Reporter.Report(name, err)
			continue
		}
		st.Events++

		if diff := state.Changes(ev); len(diff) != 0 {
			st.Changed++
			log.Infof("%v changed %v", name, diff.Names())
		}
	}

	return st, errors.Wrap(sc.Err(), "reading events")
}
