package memory

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.UserStore = (*Store)(nil)

func (s *Store) User(id snowflake.ID) (*discord.User, bool) {
	return s.users.Get(id)
}

func (s *Store) UserSet(u *discord.User) {
	s.users.Set(u.ID, u)
}

func (s *Store) UserRemove(id snowflake.ID) bool {
	return s.users.Remove(id)
}

func (s *Store) UserCount() int {
	return s.users.Length()
}
