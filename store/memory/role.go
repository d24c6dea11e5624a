package memory

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.RoleStore = (*Store)(nil)

func (s *Store) Role(id snowflake.ID) (*discord.Role, bool) {
	s.rolesMu.RLock()
	defer s.rolesMu.RUnlock()

	r, ok := s.roles[id]
	return r, ok
}

func (s *Store) RoleSet(r *discord.Role) {
	s.rolesMu.Lock()
	defer s.rolesMu.Unlock()

	s.roles[r.ID] = r
}

func (s *Store) RoleRemove(id snowflake.ID) bool {
	s.rolesMu.Lock()
	defer s.rolesMu.Unlock()

	_, ok := s.roles[id]
	delete(s.roles, id)
	return ok
}
