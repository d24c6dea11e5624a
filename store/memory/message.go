package memory

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.MessageStore = (*Store)(nil)

func (s *Store) Message(id snowflake.ID) (*discord.Message, bool) {
	v, err := s.messages.Get(id.String())
	if err != nil {
		return nil, false
	}

	m, ok := v.(*discord.Message)
	return m, ok
}

func (s *Store) MessageSet(m *discord.Message) {
	// the only possible error is a closed cache
	_ = s.messages.Set(m.ID.String(), m)

	set, _ := s.channelMessages.GetOrSet(m.ChannelID, func() *common.Set[snowflake.ID] {
		return common.NewSet[snowflake.ID]()
	})
	set.Add(m.ID)
}

func (s *Store) MessageRemove(id snowflake.ID) bool {
	m, ok := s.Message(id)
	if ok {
		if set, ok := s.channelMessages.Get(m.ChannelID); ok {
			set.Remove(id)
		}
	}

	return s.messages.Remove(id.String()) == nil
}

// ChannelMessages returns the cached messages in a channel, sorted by ID.
// IDs of messages that have expired are pruned from the channel index.
func (s *Store) ChannelMessages(channelID snowflake.ID) []*discord.Message {
	set, ok := s.channelMessages.Get(channelID)
	if !ok {
		return nil
	}

	var msgs []*discord.Message
	for _, id := range set.Values() {
		m, ok := s.Message(id)
		if !ok {
			set.Remove(id)
			continue
		}
		msgs = append(msgs, m)
	}

	if set.Length() == 0 {
		s.channelMessages.Remove(channelID)
	}

	discord.SortByID(msgs)
	return msgs
}

func (s *Store) MessageCount() int {
	return s.messages.Count()
}
