package state

import (
	"context"

	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common/log"
	"github.com/starshine-sys/discache/payload"
)

const ErrNoArchive = errors.Sentinel("no archive configured")

// Archive stores every complete guild in the archive, and removes archived guilds that are no
// longer cached. It returns the number of guilds stored.
func (s *State) Archive(ctx context.Context) (int, error) {
	if s.archive == nil {
		return 0, ErrNoArchive
	}

	data := map[snowflake.ID]map[string]any{}
	s.mu.RLock()
	for _, g := range s.c.Guilds() {
		if !g.Partial() {
			d := g.ToData()
			// an outage is transient, warming must still populate the guild
			delete(d, "unavailable")
			data[g.ID] = d
		}
	}
	s.mu.RUnlock()

	for id, d := range data {
		if err := s.archive.ArchiveGuild(ctx, id, d); err != nil {
			return 0, errors.Wrapf(err, "archiving guild %v", id)
		}
	}

	ids, err := s.archive.ArchivedGuildIDs(ctx)
	if err != nil {
		return len(data), errors.Wrap(err, "listing archived guilds")
	}
	for _, id := range ids {
		if _, ok := data[id]; ok {
			continue
		}
		if err := s.archive.RemoveArchivedGuild(ctx, id); err != nil {
			return len(data), errors.Wrapf(err, "removing archived guild %v", id)
		}
	}

	return len(data), nil
}

// Warm rebuilds every archived guild that isn't cached yet. Warmed guilds have no bound client,
// so they stay partial until a GUILD_CREATE for them is received, which repopulates them in place.
// It returns the number of guilds rebuilt.
func (s *State) Warm(ctx context.Context) (int, error) {
	if s.archive == nil {
		return 0, ErrNoArchive
	}

	ids, err := s.archive.ArchivedGuildIDs(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "listing archived guilds")
	}

	var n int
	for _, id := range ids {
		p, err := s.archive.ArchivedGuild(ctx, id)
		if err != nil {
			return n, errors.Wrapf(err, "getting archived guild %v", id)
		}

		if s.warmGuild(id, p) {
			n++
		}
	}
	return n, nil
}

func (s *State) warmGuild(id snowflake.ID, p payload.Payload) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.c.Guild(id); ok {
		return false
	}

	p.Del("unavailable")
	if _, err := s.guildFromData(p, 0); err != nil {
		log.Errorf("Error warming guild %v: %v", id, err)
		return false
	}
	return true
}
