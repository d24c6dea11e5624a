package state

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// ReactionAdd adds a reaction to a cached message. It returns nil if the message isn't cached.
func (s *State) ReactionAdd(messageID, userID snowflake.ID, emoji discord.ReactionEmoji) *discord.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.c.Message(messageID)
	if !ok {
		return nil
	}
	m.Reactions.Add(emoji, s.isSelf(userID))
	return m
}

// ReactionRemove removes a reaction from a cached message. It returns nil if the message isn't cached.
func (s *State) ReactionRemove(messageID, userID snowflake.ID, emoji discord.ReactionEmoji) *discord.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.c.Message(messageID)
	if !ok {
		return nil
	}
	m.Reactions.Remove(emoji, s.isSelf(userID))
	return m
}

// ReactionRemoveAll removes every reaction from a cached message.
func (s *State) ReactionRemoveAll(messageID snowflake.ID) *discord.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.c.Message(messageID)
	if !ok {
		return nil
	}
	m.Reactions.Clear()
	return m
}

// ReactionRemoveEmoji removes every reaction with the given emoji from a cached message.
func (s *State) ReactionRemoveEmoji(messageID snowflake.ID, emoji discord.ReactionEmoji) *discord.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.c.Message(messageID)
	if !ok {
		return nil
	}
	m.Reactions.RemoveEmoji(emoji)
	return m
}

func (s *State) isSelf(userID snowflake.ID) bool {
	return s.clientID != 0 && userID == s.clientID
}

// reactionEmoji decodes the "emoji" object of a reaction event.
func reactionEmoji(p payload.Payload) (discord.ReactionEmoji, error) {
	var e discord.ReactionEmoji
	_, err := p.DecodeKey("emoji", &e)
	return e, err
}
