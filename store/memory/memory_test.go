package memory_test

import (
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuilds(t *testing.T) {
	s := memory.New()
	t.Cleanup(func() { _ = s.Close() })

	for _, id := range []snowflake.ID{3, 1, 2} {
		s.GuildSet(discord.NewGuild(id))
	}

	var ids []snowflake.ID
	for _, g := range s.Guilds() {
		ids = append(ids, g.ID)
	}
	assert.Equal(t, []snowflake.ID{1, 2, 3}, ids)

	assert.True(t, s.GuildRemove(2))
	assert.False(t, s.GuildRemove(2))
	_, ok := s.Guild(2)
	assert.False(t, ok)
}

func TestRegistries(t *testing.T) {
	s := memory.New()
	t.Cleanup(func() { _ = s.Close() })

	s.RoleSet(discord.NewRole(1, 10))
	s.ChannelSet(discord.NewChannel(2, 10))
	s.EmojiSet(discord.NewEmoji(3, 10))
	s.UserSet(discord.NewUser(4))

	_, ok := s.Role(1)
	assert.True(t, ok)
	_, ok = s.Channel(2)
	assert.True(t, ok)
	_, ok = s.Emoji(3)
	assert.True(t, ok)
	_, ok = s.User(4)
	assert.True(t, ok)
	assert.Equal(t, 1, s.UserCount())

	assert.True(t, s.RoleRemove(1))
	assert.True(t, s.ChannelRemove(2))
	assert.True(t, s.EmojiRemove(3))
	assert.True(t, s.UserRemove(4))
	assert.False(t, s.UserRemove(4))
	assert.Zero(t, s.UserCount())
}

func TestChannelMessages(t *testing.T) {
	s := memory.New()
	t.Cleanup(func() { _ = s.Close() })

	for _, id := range []snowflake.ID{12, 10, 11} {
		s.MessageSet(discord.NewMessage(id, 1))
	}
	s.MessageSet(discord.NewMessage(20, 2))

	var ids []snowflake.ID
	for _, m := range s.ChannelMessages(1) {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []snowflake.ID{10, 11, 12}, ids)
	assert.Equal(t, 4, s.MessageCount())

	assert.True(t, s.MessageRemove(11))
	assert.False(t, s.MessageRemove(11))
	assert.Len(t, s.ChannelMessages(1), 2)
	assert.Nil(t, s.ChannelMessages(3))
}

func TestMessageExpiry(t *testing.T) {
	s := memory.NewWithOptions(memory.Options{MessageTTL: 50 * time.Millisecond})
	t.Cleanup(func() { _ = s.Close() })

	s.MessageSet(discord.NewMessage(1, 1))
	_, ok := s.Message(1)
	require.True(t, ok)

	// reads extend the TTL, so poll the count instead
	assert.Eventually(t, func() bool {
		return s.MessageCount() == 0
	}, 2*time.Second, 20*time.Millisecond)

	assert.Empty(t, s.ChannelMessages(1))
}

func TestMessageLimit(t *testing.T) {
	s := memory.NewWithOptions(memory.Options{MessageLimit: 2})
	t.Cleanup(func() { _ = s.Close() })

	for id := snowflake.ID(1); id <= 3; id++ {
		s.MessageSet(discord.NewMessage(id, 1))
	}

	assert.Equal(t, 2, s.MessageCount())
	assert.Len(t, s.ChannelMessages(1), 2)
}
