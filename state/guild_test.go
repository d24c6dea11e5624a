package state_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuildFromData(t *testing.T) {
	s, mem := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)

	assert.Equal(t, "Test guild", g.Name)
	assert.False(t, g.Partial())
	assert.True(t, g.Available)
	assert.Equal(t, []string{"COMMUNITY", "NEWS"}, g.Features)
	assert.Equal(t, discord.SuppressGuildReminderNotifications, g.SystemChannelFlags)
	assert.Equal(t, 2, g.MemberCount)

	require.Len(t, g.Roles, 2)
	require.Len(t, g.Channels, 2)
	require.Len(t, g.Emojis, 1)
	require.Len(t, g.Members, 2)

	// sub-entities are registered
	r, ok := mem.Role(2)
	require.True(t, ok)
	assert.Same(t, g.Roles[2], r)
	assert.Equal(t, uint64(8), r.Permissions)

	ch, ok := mem.Channel(101)
	require.True(t, ok)
	assert.Same(t, g.Channels[101], ch)
	assert.Equal(t, []discord.PermissionOverwrite{{ID: 2, Type: discord.OverwriteRole, Allow: 1024}}, ch.Overwrites)

	// references resolve on read
	assert.Same(t, g.Channels[100], g.SystemChannel())
	owner, ok := g.Owner(mem)
	require.True(t, ok)
	assert.Equal(t, "owner", owner.Name)

	// unknown roles are dropped
	assert.Equal(t, []snowflake.ID{2}, g.Emojis[300].RoleIDs)
	assert.Empty(t, g.Members[11].RoleIDs)
	assert.Equal(t, snowflake.ID(10), g.Emojis[300].UserID)
}

func TestGuildIdentity(t *testing.T) {
	s, _ := newState(t)

	g1, err := s.GuildFromData(p(`{"id": "1", "name": "first"}`), clientID)
	require.NoError(t, err)

	g2, err := s.GuildFromData(p(`{"id": "1", "name": "second", "description": "richer"}`), clientID)
	require.NoError(t, err)

	assert.Same(t, g1, g2)
	// a complete guild isn't reprocessed
	assert.Equal(t, "first", g2.Name)
	assert.Empty(t, g2.Description)
}

func TestGuildPartialResolution(t *testing.T) {
	s, _ := newState(t)

	pre := s.PrecreateGuild(1000, "temp")
	assert.True(t, pre.Partial())
	assert.Equal(t, "temp", pre.Name)

	g, err := s.GuildFromData(p(`{"id": 1000, "name": "real", "unavailable": false}`), clientID)
	require.NoError(t, err)

	assert.Same(t, pre, g)
	assert.Equal(t, "real", pre.Name)
	assert.True(t, pre.Available)
	assert.False(t, pre.Partial())
	assert.Equal(t, []snowflake.ID{clientID}, pre.Clients)
}

func TestGuildCompletionRefreshesMembers(t *testing.T) {
	s, _ := newState(t)

	// no client, so the guild stays partial
	g, err := s.GuildFromData(p(`{
		"id": "1", "name": "old",
		"roles": [{"id": "1", "name": "@everyone"}, {"id": "2", "name": "Mod"}],
		"members": [{"user": {"id": "10", "username": "owner"}, "nick": "old", "roles": ["2"]}]
	}`), 0)
	require.NoError(t, err)
	require.True(t, g.Partial())
	m, ok := g.Member(10)
	require.True(t, ok)
	assert.Equal(t, "old", m.Nick)
	assert.Equal(t, []snowflake.ID{2}, m.RoleIDs)

	g2, err := s.GuildFromData(p(`{
		"id": "1", "name": "new",
		"roles": [{"id": "1", "name": "@everyone"}, {"id": "2", "name": "Mod"}],
		"members": [{"user": {"id": "10", "username": "owner"}, "nick": "new", "roles": [], "joined_at": "2022-01-01T00:00:00+00:00"}]
	}`), clientID)
	require.NoError(t, err)
	assert.Same(t, g, g2)
	assert.False(t, g.Partial())
	assert.Equal(t, "new", g.Name)

	m2, ok := g.Member(10)
	require.True(t, ok)
	assert.Same(t, m, m2)
	assert.Equal(t, "new", m.Nick)
	assert.Empty(t, m.RoleIDs)
	assert.True(t, m.JoinedAt.Equal(time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGuildUnavailable(t *testing.T) {
	s, _ := newState(t)

	g, err := s.GuildFromData(p(`{"id": "1", "unavailable": true}`), clientID)
	require.NoError(t, err)
	assert.False(t, g.Available)
	assert.True(t, g.Partial())

	g2, err := s.GuildFromData(p(`{"id": "1", "name": "back"}`), clientID)
	require.NoError(t, err)
	assert.Same(t, g, g2)
	assert.True(t, g.Available)
	assert.Equal(t, "back", g.Name)

	// an outage keeps the guild, and the next GUILD_CREATE repopulates it
	_, destroyed, err := s.GuildDelete(p(`{"id": "1", "unavailable": true}`), clientID)
	require.NoError(t, err)
	assert.False(t, destroyed)
	assert.False(t, g.Available)

	g3, err := s.GuildFromData(p(`{"id": "1", "name": "back again"}`), clientID)
	require.NoError(t, err)
	assert.Same(t, g, g3)
	assert.True(t, g.Available)
	assert.Equal(t, "back again", g.Name)
}

func TestGuildMissingID(t *testing.T) {
	s, mem := newState(t)

	g, err := s.GuildFromData(p(`{"name": "no id", "roles": [{"id": "5", "name": "r"}]}`), clientID)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, payload.ErrMissingField)

	assert.Empty(t, mem.Guilds())
	_, ok := mem.Role(5)
	assert.False(t, ok)
}

func TestUpdateGuild(t *testing.T) {
	s, _ := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)

	update := `{
		"id": "1",
		"name": "Renamed",
		"owner_id": "10",
		"system_channel_id": "100",
		"features": ["COMMUNITY", "NEWS"]
	}`

	g2, diff, err := s.UpdateGuild(p(update))
	require.NoError(t, err)
	assert.Same(t, g, g2)

	assert.ElementsMatch(t, []string{"name", "system_channel_flags"}, diff.Names())
	assert.Equal(t, "Test guild", diff["name"])
	assert.Equal(t, discord.SuppressGuildReminderNotifications, diff["system_channel_flags"])

	assert.Equal(t, "Renamed", g.Name)
	assert.Equal(t, discord.SystemChannelAllowAll, g.SystemChannelFlags)

	// fields only sent in GUILD_CREATE are kept
	assert.Equal(t, 2, g.MemberCount)
	assert.False(t, g.JoinedAt.IsZero())
	// collections absent from the payload are kept
	assert.Len(t, g.Roles, 2)
	assert.Len(t, g.Channels, 2)

	// applying the same payload again changes nothing
	_, diff, err = s.UpdateGuild(p(update))
	require.NoError(t, err)
	assert.NotNil(t, diff)
	assert.Empty(t, diff)
}

func TestUpdateGuildSilent(t *testing.T) {
	s, _ := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)
	before := g.ToData()

	_, err = s.UpdateGuildSilent(p(`{"id": "1", "name": "Renamed", "owner_id": "10", "system_channel_id": "100", "system_channel_flags": 4, "features": ["NEWS", "COMMUNITY"]}`))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", g.Name)

	_, err = s.UpdateGuildSilent(p(`{"id": "1", "name": "Test guild", "owner_id": "10", "system_channel_id": "100", "system_channel_flags": 4, "features": ["NEWS", "COMMUNITY"]}`))
	require.NoError(t, err)
	assert.Equal(t, before, g.ToData())
}

func TestUpdateGuildNullAndAbsent(t *testing.T) {
	s, _ := newState(t)

	base := `{"id": "%v", "name": "g", "description": "desc", "system_channel_flags": 3}`
	ga, err := s.GuildFromData(p(fmt.Sprintf(base, 1)), clientID)
	require.NoError(t, err)
	gb, err := s.GuildFromData(p(fmt.Sprintf(base, 2)), clientID)
	require.NoError(t, err)

	_, diffA, err := s.UpdateGuild(p(`{"id": "1", "name": "g"}`))
	require.NoError(t, err)
	_, diffB, err := s.UpdateGuild(p(`{"id": "2", "name": "g", "description": null, "system_channel_flags": null}`))
	require.NoError(t, err)

	assert.Equal(t, diffA, diffB)
	assert.Equal(t, "desc", diffA["description"])

	for _, g := range []*discord.Guild{ga, gb} {
		assert.Empty(t, g.Description)
		assert.Equal(t, discord.SystemChannelAllowAll, g.SystemChannelFlags)
	}
}

func TestUpdateGuildRoles(t *testing.T) {
	s, mem := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)
	everyone := g.Roles[1]
	oldRoles := g.RoleSnapshot()

	_, diff, err := s.UpdateGuild(p(`{
		"id": "1", "name": "Test guild", "owner_id": "10", "system_channel_id": "100",
		"system_channel_flags": 4, "features": ["NEWS", "COMMUNITY"],
		"roles": [
			{"id": "1", "name": "@everyone", "position": 0, "permissions": "1024"},
			{"id": "3", "name": "New", "position": 1, "permissions": "0"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"roles"}, diff.Names())
	assert.Equal(t, oldRoles, diff["roles"])

	assert.Same(t, everyone, g.Roles[1])
	_, ok := g.Roles[2]
	assert.False(t, ok)
	_, ok = mem.Role(2)
	assert.False(t, ok)
	_, ok = mem.Role(3)
	assert.True(t, ok)

	// the deleted role is removed from members and emojis
	assert.Empty(t, g.Members[10].RoleIDs)
	assert.Empty(t, g.Emojis[300].RoleIDs)
}

func TestSyncGuild(t *testing.T) {
	s, mem := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)
	random := g.Channels[101]

	_, err = s.MessageFromData(p(`{"id": "5000", "channel_id": "100", "content": "hi", "author": {"id": "10", "username": "owner"}}`))
	require.NoError(t, err)

	sync := `{
		"id": "1", "name": "Test guild", "owner_id": "10", "system_channel_id": "100",
		"system_channel_flags": 4, "features": ["NEWS", "COMMUNITY"],
		"channels": [
			{"id": "101", "type": 0, "name": "renamed", "position": 1},
			{"id": "102", "type": 2, "name": "voice", "position": 0, "bitrate": 64000}
		]
	}`

	_, diff, err := s.SyncGuild(p(sync))
	require.NoError(t, err)
	assert.Equal(t, []string{"channels"}, diff.Names())

	old := diff["channels"].([]discord.Channel)
	require.Len(t, old, 2)
	assert.Equal(t, "general", old[0].Name)
	assert.Equal(t, "random", old[1].Name)

	_, ok := mem.Channel(100)
	assert.False(t, ok, "channel missing from sync should be destroyed")
	_, ok = mem.Message(5000)
	assert.False(t, ok, "messages in a destroyed channel should be evicted")

	assert.Same(t, random, g.Channels[101])
	assert.Equal(t, "renamed", random.Name)
	assert.Empty(t, random.Overwrites)

	voice, ok := mem.Channel(102)
	require.True(t, ok)
	assert.Equal(t, 64000, voice.Bitrate)
	assert.Nil(t, g.SystemChannel())

	_, diff, err = s.SyncGuild(p(sync))
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestUpdateGuildIgnoresChannels(t *testing.T) {
	s, _ := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)

	_, diff, err := s.UpdateGuild(p(`{"id": "1", "name": "Test guild", "owner_id": "10", "system_channel_id": "100", "system_channel_flags": 4, "features": ["NEWS", "COMMUNITY"], "channels": []}`))
	require.NoError(t, err)
	assert.Empty(t, diff)
	assert.Len(t, g.Channels, 2)
}

func TestGuildEmojisUpdate(t *testing.T) {
	s, mem := newState(t)

	g, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)

	_, diff, err := s.GuildEmojisUpdate(p(`{"guild_id": "1", "emojis": [{"id": "301", "name": "new", "animated": true}]}`))
	require.NoError(t, err)
	require.True(t, diff.Changed("emojis"))

	old := diff["emojis"].([]discord.Emoji)
	require.Len(t, old, 1)
	assert.Equal(t, "blob", old[0].Name)

	_, ok := mem.Emoji(300)
	assert.False(t, ok)
	e, ok := g.Emoji(301)
	require.True(t, ok)
	assert.True(t, e.Animated)
	assert.True(t, e.Available)
}

func TestGuildDelete(t *testing.T) {
	s, mem := newState(t)

	_, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)
	g, err := s.GuildFromData(p(testGuild), 43)
	require.NoError(t, err)
	assert.Equal(t, []snowflake.ID{clientID, 43}, g.Clients)

	_, destroyed, err := s.GuildDelete(p(`{"id": "1"}`), clientID)
	require.NoError(t, err)
	assert.False(t, destroyed)
	_, ok := mem.Guild(1)
	assert.True(t, ok)

	_, destroyed, err = s.GuildDelete(p(`{"id": "1"}`), 43)
	require.NoError(t, err)
	assert.True(t, destroyed)

	_, ok = mem.Guild(1)
	assert.False(t, ok)
	_, ok = mem.Role(2)
	assert.False(t, ok)
	_, ok = mem.Channel(100)
	assert.False(t, ok)
	_, ok = mem.Emoji(300)
	assert.False(t, ok)
	// users are shared between guilds
	_, ok = mem.User(10)
	assert.True(t, ok)

	// destroying twice is safe
	g, destroyed, err = s.GuildDelete(p(`{"id": "1"}`), 43)
	require.NoError(t, err)
	assert.Nil(t, g)
	assert.False(t, destroyed)

	_, ok = s.DestroyGuild(1)
	assert.False(t, ok)
}

func TestGuildSortedChannels(t *testing.T) {
	s, _ := newState(t)

	g, err := s.GuildFromData(p(`{"id": "1", "channels": [
		{"id": "10", "type": 4, "name": "cat", "position": 0},
		{"id": "11", "type": 0, "name": "in-cat", "position": 0, "parent_id": "10"},
		{"id": "12", "type": 0, "name": "top", "position": 5},
		{"id": "13", "type": 11, "name": "thread", "parent_id": "12"}
	]}`), clientID)
	require.NoError(t, err)

	var names []string
	for _, ch := range g.SortedChannels() {
		names = append(names, ch.Name)
	}
	assert.Equal(t, []string{"top", "cat", "in-cat"}, names)
	require.Len(t, g.Threads(), 1)
	assert.Equal(t, "thread", g.Threads()[0].Name)
}
