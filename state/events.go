package state

import (
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
)

// Event is the result of dispatching a gateway event.
type Event interface {
	EventName() string
}

type GuildCreateEvent struct {
	Guild *discord.Guild
}

type GuildUpdateEvent struct {
	Guild *discord.Guild
	Diff  discord.Diff
}

type GuildDeleteEvent struct {
	GuildID snowflake.ID
	// Guild is nil if the guild wasn't cached.
	Guild       *discord.Guild
	Unavailable bool
	Destroyed   bool
}

type GuildEmojisUpdateEvent struct {
	Guild *discord.Guild
	Diff  discord.Diff
}

type RoleCreateEvent struct {
	Role *discord.Role
}

type RoleUpdateEvent struct {
	Role *discord.Role
	Diff discord.Diff
}

type RoleDeleteEvent struct {
	GuildID snowflake.ID
	RoleID  snowflake.ID
	// Role is nil if the role wasn't cached.
	Role *discord.Role
}

type ChannelCreateEvent struct {
	Channel *discord.Channel
}

type ChannelUpdateEvent struct {
	Channel *discord.Channel
	Diff    discord.Diff
}

type ChannelDeleteEvent struct {
	ChannelID snowflake.ID
	// Channel is nil if the channel wasn't cached.
	Channel *discord.Channel
}

type MemberAddEvent struct {
	Member *discord.Member
}

type MemberUpdateEvent struct {
	Member *discord.Member
	Diff   discord.Diff
}

type MemberRemoveEvent struct {
	GuildID snowflake.ID
	UserID  snowflake.ID
	// Member is nil if the member wasn't cached.
	Member *discord.Member
}

type UserUpdateEvent struct {
	User *discord.User
	Diff discord.Diff
}

type MessageCreateEvent struct {
	Message *discord.Message
}

type MessageUpdateEvent struct {
	Message *discord.Message
	Diff    discord.Diff
}

type MessageDeleteEvent struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	// Message is nil if the message wasn't cached.
	Message *discord.Message
}

type MessageDeleteBulkEvent struct {
	MessageIDs []snowflake.ID
	ChannelID  snowflake.ID
	// Messages only contains the messages that were cached.
	Messages []*discord.Message
}

type ReactionAddEvent struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	UserID    snowflake.ID
	Emoji     discord.ReactionEmoji
	// Message is nil if the message isn't cached.
	Message *discord.Message
}

type ReactionRemoveEvent struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	UserID    snowflake.ID
	Emoji     discord.ReactionEmoji
	Message   *discord.Message
}

type ReactionRemoveAllEvent struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	Message   *discord.Message
}

type ReactionRemoveEmojiEvent struct {
	MessageID snowflake.ID
	ChannelID snowflake.ID
	Emoji     discord.ReactionEmoji
	Message   *discord.Message
}

func (*GuildCreateEvent) EventName() string         { return "GUILD_CREATE" }
func (*GuildUpdateEvent) EventName() string         { return "GUILD_UPDATE" }
func (*GuildDeleteEvent) EventName() string         { return "GUILD_DELETE" }
func (*GuildEmojisUpdateEvent) EventName() string   { return "GUILD_EMOJIS_UPDATE" }
func (*RoleCreateEvent) EventName() string          { return "GUILD_ROLE_CREATE" }
func (*RoleUpdateEvent) EventName() string          { return "GUILD_ROLE_UPDATE" }
func (*RoleDeleteEvent) EventName() string          { return "GUILD_ROLE_DELETE" }
func (*ChannelCreateEvent) EventName() string       { return "CHANNEL_CREATE" }
func (*ChannelUpdateEvent) EventName() string       { return "CHANNEL_UPDATE" }
func (*ChannelDeleteEvent) EventName() string       { return "CHANNEL_DELETE" }
func (*MemberAddEvent) EventName() string           { return "GUILD_MEMBER_ADD" }
func (*MemberUpdateEvent) EventName() string        { return "GUILD_MEMBER_UPDATE" }
func (*MemberRemoveEvent) EventName() string        { return "GUILD_MEMBER_REMOVE" }
func (*UserUpdateEvent) EventName() string          { return "USER_UPDATE" }
func (*MessageCreateEvent) EventName() string       { return "MESSAGE_CREATE" }
func (*MessageUpdateEvent) EventName() string       { return "MESSAGE_UPDATE" }
func (*MessageDeleteEvent) EventName() string       { return "MESSAGE_DELETE" }
func (*MessageDeleteBulkEvent) EventName() string   { return "MESSAGE_DELETE_BULK" }
func (*ReactionAddEvent) EventName() string         { return "MESSAGE_REACTION_ADD" }
func (*ReactionRemoveEvent) EventName() string      { return "MESSAGE_REACTION_REMOVE" }
func (*ReactionRemoveAllEvent) EventName() string   { return "MESSAGE_REACTION_REMOVE_ALL" }
func (*ReactionRemoveEmojiEvent) EventName() string { return "MESSAGE_REACTION_REMOVE_EMOJI" }

// Changes returns the diff carried by ev, or nil if the event has none.
func Changes(ev Event) discord.Diff {
	switch ev := ev.(type) {
	case *GuildUpdateEvent:
		return ev.Diff
	case *GuildEmojisUpdateEvent:
		return ev.Diff
	case *RoleUpdateEvent:
		return ev.Diff
	case *ChannelUpdateEvent:
		return ev.Diff
	case *MemberUpdateEvent:
		return ev.Diff
	case *UserUpdateEvent:
		return ev.Diff
	case *MessageUpdateEvent:
		return ev.Diff
	}
	return nil
}
