// Package replay replays a dump of gateway events through the cache.
package replay

import (
	"context"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/dustin/go-humanize"
	"github.com/starshine-sys/discache/common"
	"github.com/starshine-sys/discache/common/log"
	"github.com/starshine-sys/discache/config"
	"github.com/starshine-sys/discache/report"
	"github.com/starshine-sys/discache/state"
	"github.com/starshine-sys/discache/store"
	"github.com/starshine-sys/discache/store/memory"
	"github.com/starshine-sys/discache/store/redis"
	"github.com/urfave/cli/v2"
)

var Command = &cli.Command{
	Name:   "replay",
	Usage:  "Replay a JSON lines dump of gateway events",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:     "dump",
			Aliases:  []string{"d"},
			Usage:    "Path to the event dump, or - for standard input",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "warm",
			Usage: "Rebuild archived guilds before replaying",
		},
		&cli.BoolFlag{
			Name:  "archive",
			Usage: "Archive every complete guild after replaying",
		},
	},
}

func itoa(i int) string {
	return humanize.Comma(int64(i))
}

func run(c *cli.Context) error {
	conf, err := config.Read(c.String("config"), true)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	log.SetDebug(conf.Bot.Debug)

	reporter, err := report.New(conf.Auth.Sentry, common.Version())
	if err != nil {
		return errors.Wrap(err, "setting up sentry")
	}
	defer reporter.Flush(2 * time.Second)

	mem := memory.NewWithOptions(memory.Options{
		MessageTTL:   time.Duration(conf.Cache.MessageTTL),
		MessageLimit: conf.Cache.MessageLimit,
	})
	defer mem.Close()

	opts := []state.Option{state.WithClientID(conf.Bot.ClientID)}

	var archive store.Archive
	if conf.Auth.Redis != "" {
		rs, err := redis.New(c.Context, conf.Auth.Redis, conf.Auth.RedisPrefix)
		if err != nil {
			return errors.Wrap(err, "connecting to redis")
		}
		defer rs.Close()

		archive = rs
		opts = append(opts, state.WithArchive(rs))
	}

	s := state.New(mem, opts...)

	if c.Bool("warm") {
		if archive == nil {
			return cli.Exit("--warm needs a Redis archive in the config.", 1)
		}

		n, err := s.Warm(c.Context)
		if err != nil {
			return errors.Wrap(err, "warming cache")
		}
		log.Infof("Warmed %v guilds from the archive", humanize.Comma(int64(n)))
	}

	in := os.Stdin
	if path := c.String("dump"); path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return errors.Wrap(err, "opening dump")
		}
		defer f.Close()
		in = f
	}

	start := time.Now()
	r := &Replayer{State: s, Reporter: reporter}
	st, err := r.Run(in)
	if err != nil {
		return err
	}

	log.Infof("Replayed %v events from %v lines in %v (%v with changes, %v unknown, %v errors)",
		humanize.Comma(int64(st.Events)), humanize.Comma(int64(st.Lines)), time.Since(start).Round(time.Millisecond),
		humanize.Comma(int64(st.Changed)), humanize.Comma(int64(st.Unknown)), humanize.Comma(int64(st.Errors)))
	log.Infof("Cached %v guilds, %v users, %v messages",
		humanize.Comma(int64(len(mem.Guilds()))), humanize.Comma(int64(mem.UserCount())), humanize.Comma(int64(mem.MessageCount())))

	if c.Bool("archive") {
		if archive == nil {
			return cli.Exit("--archive needs a Redis archive in the config.", 1)
		}

		ctx, cancel := context.WithTimeout(c.Context, time.Minute)
		defer cancel()

		n, err := s.Archive(ctx)
		if err != nil {
			return errors.Wrap(err, "archiving guilds")
		}
		log.Infof("Archived %v guilds", humanize.Comma(int64(n)))
	}
	return nil
}
