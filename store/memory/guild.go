package memory

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.GuildStore = (*Store)(nil)

func (s *Store) Guild(id snowflake.ID) (*discord.Guild, bool) {
	s.guildsMu.RLock()
	defer s.guildsMu.RUnlock()

	g, ok := s.guilds[id]
	return g, ok
}

func (s *Store) GuildSet(g *discord.Guild) {
	s.guildsMu.Lock()
	defer s.guildsMu.Unlock()

	s.guilds[g.ID] = g
}

func (s *Store) GuildRemove(id snowflake.ID) bool {
	s.guildsMu.Lock()
	defer s.guildsMu.Unlock()

	_, ok := s.guilds[id]
	delete(s.guilds, id)
	return ok
}

// Guilds returns every registered guild, sorted by ID.
func (s *Store) Guilds() []*discord.Guild {
	s.guildsMu.RLock()
	gs := make([]*discord.Guild, 0, len(s.guilds))
	for _, g := range s.guilds {
		gs = append(gs, g)
	}
	s.guildsMu.RUnlock()

	discord.SortByID(gs)
	return gs
}
