package memory

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.ChannelStore = (*Store)(nil)

func (s *Store) Channel(id snowflake.ID) (*discord.Channel, bool) {
	s.channelsMu.RLock()
	defer s.channelsMu.RUnlock()

	ch, ok := s.channels[id]
	return ch, ok
}

func (s *Store) ChannelSet(ch *discord.Channel) {
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()

	s.channels[ch.ID] = ch
}

func (s *Store) ChannelRemove(id snowflake.ID) bool {
	s.channelsMu.Lock()
	defer s.channelsMu.Unlock()

	_, ok := s.channels[id]
	delete(s.channels, id)
	return ok
}
