package discord

import "github.com/disgoorg/snowflake/v2"

// UserLookup resolves a user ID. The store's user registry implements it.
type UserLookup interface {
	User(id snowflake.ID) (*User, bool)
}

// RoleLookup resolves a role ID. *Guild implements it over its own role table.
type RoleLookup interface {
	Role(id snowflake.ID) (*Role, bool)
}

// ChannelLookup resolves a channel ID.
type ChannelLookup interface {
	Channel(id snowflake.ID) (*Channel, bool)
}

// MessageLookup resolves a message ID. Implementations may evict messages at any time.
type MessageLookup interface {
	Message(id snowflake.ID) (*Message, bool)
}
