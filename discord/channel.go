package discord

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

type ChannelType int

const (
	GuildText          ChannelType = 0
	DirectMessage      ChannelType = 1
	GuildVoice         ChannelType = 2
	GroupDM            ChannelType = 3
	GuildCategory      ChannelType = 4
	GuildNews          ChannelType = 5
	GuildNewsThread    ChannelType = 10
	GuildPublicThread  ChannelType = 11
	GuildPrivateThread ChannelType = 12
	GuildStageVoice    ChannelType = 13
	GuildForum         ChannelType = 15
)

type OverwriteType int

const (
	OverwriteRole   OverwriteType = 0
	OverwriteMember OverwriteType = 1
)

// PermissionOverwrite is a channel permission overwrite for a role or member.
type PermissionOverwrite struct {
	ID    snowflake.ID
	Type  OverwriteType
	Allow uint64
	Deny  uint64
}

func (o PermissionOverwrite) ToData() map[string]any {
	return map[string]any{
		"id":    o.ID.String(),
		"type":  int(o.Type),
		"allow": strconv.FormatUint(o.Allow, 10),
		"deny":  strconv.FormatUint(o.Deny, 10),
	}
}

// Channel is a guild channel, thread, or private channel.
// Guild channels are owned by their guild.
type Channel struct {
	Identified

	GuildID          snowflake.ID
	Type             ChannelType
	Name             string
	Topic            string
	Position         int
	ParentID         snowflake.ID
	NSFW             bool
	RateLimitPerUser int
	Bitrate          int
	UserLimit        int
	// Overwrites is sorted by ID.
	Overwrites    []PermissionOverwrite
	LastMessageID snowflake.ID

	Partial bool
}

// NewChannel returns a partial channel.
func NewChannel(id, guildID snowflake.ID) *Channel {
	return &Channel{
		Identified: Identified{ID: id},
		GuildID:    guildID,
		Partial:    true,
	}
}

func (ch *Channel) Mention() string {
	return fmt.Sprintf("<#%v>", ch.ID)
}

func (ch *Channel) IsThread() bool {
	return ch.Type == GuildNewsThread || ch.Type == GuildPrivateThread || ch.Type == GuildPublicThread
}

// Overwrite returns the overwrite for the given role or member ID.
func (ch *Channel) Overwrite(id snowflake.ID) (PermissionOverwrite, bool) {
	for _, o := range ch.Overwrites {
		if o.ID == id {
			return o, true
		}
	}
	return PermissionOverwrite{}, false
}

// Equal compares every field except partiality.
func (ch *Channel) Equal(other *Channel) bool {
	if len(ch.Overwrites) != len(other.Overwrites) {
		return false
	}
	for i := range ch.Overwrites {
		if ch.Overwrites[i] != other.Overwrites[i] {
			return false
		}
	}

	return equalChannelFields(ch, other)
}

func equalChannelFields(a, b *Channel) bool {
	return a.ID == b.ID &&
		a.GuildID == b.GuildID &&
		a.Type == b.Type &&
		a.Name == b.Name &&
		a.Topic == b.Topic &&
		a.Position == b.Position &&
		a.ParentID == b.ParentID &&
		a.NSFW == b.NSFW &&
		a.RateLimitPerUser == b.RateLimitPerUser &&
		a.Bitrate == b.Bitrate &&
		a.UserLimit == b.UserLimit &&
		a.LastMessageID == b.LastMessageID
}

// Clone returns a copy of ch that shares no memory with it.
func (ch *Channel) Clone() *Channel {
	c := *ch
	c.Overwrites = append([]PermissionOverwrite(nil), ch.Overwrites...)
	return &c
}

func (ch *Channel) ToData() map[string]any {
	m := map[string]any{
		"id":   ch.ID.String(),
		"type": int(ch.Type),
	}
	putID(m, "guild_id", ch.GuildID)
	putString(m, "name", ch.Name)
	putString(m, "topic", ch.Topic)
	if ch.GuildID != 0 {
		m["position"] = ch.Position
	}
	putID(m, "parent_id", ch.ParentID)
	putBool(m, "nsfw", ch.NSFW)
	putInt(m, "rate_limit_per_user", ch.RateLimitPerUser)
	putInt(m, "bitrate", ch.Bitrate)
	putInt(m, "user_limit", ch.UserLimit)
	putID(m, "last_message_id", ch.LastMessageID)

	if len(ch.Overwrites) != 0 {
		ows := make([]any, 0, len(ch.Overwrites))
		for _, o := range ch.Overwrites {
			ows = append(ows, o.ToData())
		}
		m["permission_overwrites"] = ows
	}
	return m
}

// SortChannels sorts the given channels into the order shown in the Discord client.
// It returns a new slice, and does not modify the given slice in place. Threads are left out.
func SortChannels(channels []*Channel) []*Channel {
	var (
		noCategory       = make([]*Channel, 0)
		categoryChannels = make([]*Channel, 0)
		categories       = make(map[snowflake.ID][]*Channel, 0)
	)
	for _, ch := range channels {
		if ch.Type == GuildCategory {
			categoryChannels = append(categoryChannels, ch)
			continue
		}

		if ch.IsThread() {
			continue
		}

		if ch.ParentID == 0 {
			noCategory = append(noCategory, ch)
		} else {
			categories[ch.ParentID] = append(categories[ch.ParentID], ch)
		}
	}

	byPosition := func(s []*Channel) {
		sort.Slice(s, func(i, j int) bool {
			if s[i].Position != s[j].Position {
				return s[i].Position < s[j].Position
			}
			return s[i].ID < s[j].ID
		})
	}

	// sort every category individually
	for cat := range categories {
		byPosition(categories[cat])
	}
	byPosition(noCategory)

	// sort categories among each other
	byPosition(categoryChannels)

	sorted := make([]*Channel, 0, len(channels))
	// add uncategorized channels
	sorted = append(sorted, noCategory...)

	for _, cat := range categoryChannels {
		sorted = append(sorted, cat)
		sorted = append(sorted, categories[cat.ID]...)
	}

	return sorted
}
