package memory

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.EmojiStore = (*Store)(nil)

func (s *Store) Emoji(id snowflake.ID) (*discord.Emoji, bool) {
	return s.emojis.Get(id)
}

func (s *Store) EmojiSet(e *discord.Emoji) {
	s.emojis.Set(e.ID, e)
}

func (s *Store) EmojiRemove(id snowflake.ID) bool {
	return s.emojis.Remove(id)
}
