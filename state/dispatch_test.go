package state_test

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchUnknown(t *testing.T) {
	s, _ := newState(t)

	ev, err := s.Dispatch("PRESENCE_UPDATE", p(`{}`))
	assert.Nil(t, ev)
	assert.ErrorIs(t, err, state.ErrUnknownEvent)
}

func TestDispatchHandlers(t *testing.T) {
	s, _ := newState(t, state.WithClientID(clientID))

	var (
		created []*discord.Guild
		updates []discord.Diff
		all     []string
	)
	state.AddHandler(s, func(ev *state.GuildCreateEvent) {
		created = append(created, ev.Guild)
	})
	state.AddHandler(s, func(ev *state.GuildUpdateEvent) {
		updates = append(updates, ev.Diff)
	})
	state.AddHandler(s, func(ev state.Event) {
		all = append(all, ev.EventName())
	})

	_, err := s.Dispatch("GUILD_CREATE", p(testGuild))
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.True(t, created[0].HasClient(clientID))

	ev, err := s.Dispatch("GUILD_UPDATE", p(`{"id": "1", "name": "Renamed", "owner_id": "10", "system_channel_id": "100", "system_channel_flags": 4, "features": ["NEWS", "COMMUNITY"]}`))
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, []string{"name"}, updates[0].Names())
	assert.Equal(t, updates[0], state.Changes(ev))

	assert.Equal(t, []string{"GUILD_CREATE", "GUILD_UPDATE"}, all)
}

func TestDispatchErrors(t *testing.T) {
	s, _ := newState(t)

	_, err := s.Dispatch("GUILD_ROLE_CREATE", p(`{"guild_id": "1"}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dispatching GUILD_ROLE_CREATE")
}

func TestDispatchRoles(t *testing.T) {
	s, _ := newState(t, state.WithClientID(clientID))

	_, err := s.Dispatch("GUILD_CREATE", p(testGuild))
	require.NoError(t, err)

	ev, err := s.Dispatch("GUILD_ROLE_CREATE", p(`{"guild_id": "1", "role": {"id": "3", "name": "New"}}`))
	require.NoError(t, err)
	assert.Equal(t, "New", ev.(*state.RoleCreateEvent).Role.Name)

	ev, err = s.Dispatch("GUILD_ROLE_UPDATE", p(`{"guild_id": "1", "role": {"id": "3", "name": "Newer"}}`))
	require.NoError(t, err)
	assert.Equal(t, "New", state.Changes(ev)["name"])

	ev, err = s.Dispatch("GUILD_ROLE_DELETE", p(`{"guild_id": "1", "role_id": "3"}`))
	require.NoError(t, err)
	del := ev.(*state.RoleDeleteEvent)
	require.NotNil(t, del.Role)
	assert.Equal(t, "Newer", del.Role.Name)

	ev, err = s.Dispatch("GUILD_ROLE_DELETE", p(`{"guild_id": "1", "role_id": "3"}`))
	require.NoError(t, err)
	assert.Nil(t, ev.(*state.RoleDeleteEvent).Role)
}

func TestDispatchMembers(t *testing.T) {
	s, _ := newState(t, state.WithClientID(clientID))

	_, err := s.Dispatch("GUILD_CREATE", p(testGuild))
	require.NoError(t, err)

	_, err = s.Dispatch("GUILD_MEMBER_ADD", p(`{"guild_id": "1", "user": {"id": "12", "username": "new"}, "roles": []}`))
	require.NoError(t, err)

	ev, err := s.Dispatch("GUILD_MEMBER_UPDATE", p(`{"guild_id": "1", "user": {"id": "12", "username": "new"}, "roles": [], "nick": "nick"}`))
	require.NoError(t, err)
	assert.Equal(t, "", state.Changes(ev)["nick"])

	ev, err = s.Dispatch("GUILD_MEMBER_REMOVE", p(`{"guild_id": "1", "user": {"id": "12", "username": "new"}}`))
	require.NoError(t, err)
	rm := ev.(*state.MemberRemoveEvent)
	assert.Equal(t, snowflake.ID(12), rm.UserID)
	require.NotNil(t, rm.Member)
	assert.Equal(t, "nick", rm.Member.Nick)
}

func TestDispatchGuildDelete(t *testing.T) {
	s, mem := newState(t, state.WithClientID(clientID))

	_, err := s.Dispatch("GUILD_CREATE", p(testGuild))
	require.NoError(t, err)

	ev, err := s.Dispatch("GUILD_DELETE", p(`{"id": "1", "unavailable": true}`))
	require.NoError(t, err)
	del := ev.(*state.GuildDeleteEvent)
	assert.True(t, del.Unavailable)
	assert.False(t, del.Destroyed)

	ev, err = s.Dispatch("GUILD_DELETE", p(`{"id": "1"}`))
	require.NoError(t, err)
	assert.True(t, ev.(*state.GuildDeleteEvent).Destroyed)
	assert.Empty(t, mem.Guilds())
}

func TestDispatchReactions(t *testing.T) {
	s, _ := newState(t, state.WithClientID(clientID))

	_, err := s.Dispatch("MESSAGE_CREATE", p(`{"id": "5", "channel_id": "100", "content": "react to me", "author": {"id": "10", "username": "a"}}`))
	require.NoError(t, err)

	thumbs := discord.ReactionEmoji{Name: "👍"}
	custom := discord.ReactionEmoji{ID: 300, Name: "blob"}

	_, err = s.Dispatch("MESSAGE_REACTION_ADD", p(`{"message_id": "5", "channel_id": "100", "user_id": "10", "emoji": {"name": "👍"}}`))
	require.NoError(t, err)
	ev, err := s.Dispatch("MESSAGE_REACTION_ADD", p(`{"message_id": "5", "channel_id": "100", "user_id": "42", "emoji": {"name": "👍"}}`))
	require.NoError(t, err)

	add := ev.(*state.ReactionAddEvent)
	require.NotNil(t, add.Message)
	m := add.Message
	require.Len(t, m.Reactions, 1)
	assert.Equal(t, 2, m.Reactions.Count(thumbs))
	assert.True(t, m.Reactions[0].Me)

	_, err = s.Dispatch("MESSAGE_REACTION_ADD", p(`{"message_id": "5", "channel_id": "100", "user_id": "10", "emoji": {"id": "300", "name": "blob"}}`))
	require.NoError(t, err)
	assert.Equal(t, 3, m.Reactions.Total())

	ev, err = s.Dispatch("MESSAGE_REACTION_REMOVE", p(`{"message_id": "5", "channel_id": "100", "user_id": "42", "emoji": {"name": "👍"}}`))
	require.NoError(t, err)
	_, ok := ev.(*state.ReactionRemoveEvent)
	assert.True(t, ok)
	assert.Equal(t, 1, m.Reactions.Count(thumbs))
	assert.False(t, m.Reactions[0].Me)

	_, err = s.Dispatch("MESSAGE_REACTION_REMOVE_EMOJI", p(`{"message_id": "5", "channel_id": "100", "emoji": {"name": "👍"}}`))
	require.NoError(t, err)
	assert.Zero(t, m.Reactions.Count(thumbs))
	assert.Equal(t, 1, m.Reactions.Count(custom))

	_, err = s.Dispatch("MESSAGE_REACTION_REMOVE_ALL", p(`{"message_id": "5", "channel_id": "100"}`))
	require.NoError(t, err)
	assert.Empty(t, m.Reactions)

	// reactions on uncached messages are ignored
	ev, err = s.Dispatch("MESSAGE_REACTION_ADD", p(`{"message_id": "6", "channel_id": "100", "user_id": "10", "emoji": {"name": "👍"}}`))
	require.NoError(t, err)
	assert.Nil(t, ev.(*state.ReactionAddEvent).Message)
}

func TestDispatchMessages(t *testing.T) {
	s, mem := newState(t)

	_, err := s.Dispatch("MESSAGE_CREATE", p(`{"id": "5", "channel_id": "100", "content": "a", "author": {"id": "10", "username": "a"}}`))
	require.NoError(t, err)
	_, err = s.Dispatch("MESSAGE_CREATE", p(`{"id": "6", "channel_id": "100", "content": "b", "author": {"id": "10", "username": "a"}}`))
	require.NoError(t, err)

	ev, err := s.Dispatch("MESSAGE_UPDATE", p(`{"id": "5", "channel_id": "100", "content": "edited"}`))
	require.NoError(t, err)
	assert.Equal(t, "a", state.Changes(ev)["content"])

	ev, err = s.Dispatch("MESSAGE_DELETE", p(`{"id": "5", "channel_id": "100"}`))
	require.NoError(t, err)
	assert.Equal(t, "edited", ev.(*state.MessageDeleteEvent).Message.Content)

	ev, err = s.Dispatch("MESSAGE_DELETE_BULK", p(`{"ids": ["5", "6"], "channel_id": "100"}`))
	require.NoError(t, err)
	bulk := ev.(*state.MessageDeleteBulkEvent)
	assert.Equal(t, []snowflake.ID{5, 6}, bulk.MessageIDs)
	assert.Len(t, bulk.Messages, 1)
	assert.Zero(t, mem.MessageCount())
}

func TestEvents(t *testing.T) {
	events := state.Events()
	assert.Contains(t, events, "GUILD_CREATE")
	assert.Contains(t, events, "MESSAGE_REACTION_REMOVE_EMOJI")
	assert.IsIncreasing(t, events)
}
