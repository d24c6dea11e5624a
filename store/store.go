// Package store defines the entity registries the cache is built on.
//
// Registries hold live entity pointers: a lookup returns the same instance every time until the
// entity is removed. They don't create or populate entities; that's done by package state, which
// always checks the registry before allocating.
package store

import (
	"context"

	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

const ErrNotFound = errors.Sentinel("value not found in store")

// GuildStore is the guild registry.
type GuildStore interface {
	Guild(id snowflake.ID) (*discord.Guild, bool)
	GuildSet(g *discord.Guild)
	// GuildRemove removes a guild. It returns false if the guild wasn't registered.
	GuildRemove(id snowflake.ID) bool
	Guilds() []*discord.Guild
}

// ChannelStore is the channel registry. It holds guild channels, threads, and partial channels
// that have only been seen in a mention.
type ChannelStore interface {
	Channel(id snowflake.ID) (*discord.Channel, bool)
	ChannelSet(ch *discord.Channel)
	ChannelRemove(id snowflake.ID) bool
}

type RoleStore interface {
	Role(id snowflake.ID) (*discord.Role, bool)
	RoleSet(r *discord.Role)
	RoleRemove(id snowflake.ID) bool
}

type EmojiStore interface {
	Emoji(id snowflake.ID) (*discord.Emoji, bool)
	EmojiSet(e *discord.Emoji)
	EmojiRemove(id snowflake.ID) bool
}

type UserStore interface {
	User(id snowflake.ID) (*discord.User, bool)
	UserSet(u *discord.User)
	UserRemove(id snowflake.ID) bool
	UserCount() int
}

// MessageStore is the message registry. Messages may be evicted at any time,
// so a message that was found once may not be found again.
type MessageStore interface {
	Message(id snowflake.ID) (*discord.Message, bool)
	MessageSet(m *discord.Message)
	MessageRemove(id snowflake.ID) bool
	// ChannelMessages returns the cached messages in a channel, sorted by ID.
	ChannelMessages(channelID snowflake.ID) []*discord.Message
	MessageCount() int
}

// Cabinet is every registry the cache needs.
type Cabinet interface {
	GuildStore
	ChannelStore
	RoleStore
	EmojiStore
	UserStore
	MessageStore
}

// Archive persists guild payloads between restarts. It's optional.
type Archive interface {
	// ArchiveGuild stores the serialised guild, replacing any previous copy.
	ArchiveGuild(ctx context.Context, id snowflake.ID, data map[string]any) error
	// ArchivedGuild returns the stored guild payload, or ErrNotFound.
	ArchivedGuild(ctx context.Context, id snowflake.ID) (payload.Payload, error)
	ArchivedGuildIDs(ctx context.Context) ([]snowflake.ID, error)
	RemoveArchivedGuild(ctx context.Context, id snowflake.ID) error
}
