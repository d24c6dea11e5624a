package discord

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// Emoji is a custom guild emoji. Emojis are owned by their guild.
type Emoji struct {
	Identified

	GuildID       snowflake.ID
	Name          string
	Animated      bool
	Managed       bool
	RequireColons bool
	Available     bool
	RoleIDs       []snowflake.ID
	// UserID is the ID of the user that created the emoji, if known.
	UserID snowflake.ID

	Partial bool
}

// NewEmoji returns a partial emoji.
func NewEmoji(id, guildID snowflake.ID) *Emoji {
	return &Emoji{
		Identified: Identified{ID: id},
		GuildID:    guildID,
		Available:  true,
		Partial:    true,
	}
}

// String returns the emoji in message format.
func (e *Emoji) String() string {
	if e.Animated {
		return fmt.Sprintf("<a:%v:%v>", e.Name, e.ID)
	}
	return fmt.Sprintf("<:%v:%v>", e.Name, e.ID)
}

// Equal compares every field except partiality.
func (e *Emoji) Equal(other *Emoji) bool {
	return e.ID == other.ID &&
		e.GuildID == other.GuildID &&
		e.Name == other.Name &&
		e.Animated == other.Animated &&
		e.Managed == other.Managed &&
		e.RequireColons == other.RequireColons &&
		e.Available == other.Available &&
		e.UserID == other.UserID &&
		EqualIDs(e.RoleIDs, other.RoleIDs)
}

// Clone returns a copy of e that shares no memory with it.
func (e *Emoji) Clone() *Emoji {
	c := *e
	c.RoleIDs = append([]snowflake.ID(nil), e.RoleIDs...)
	return &c
}

func (e *Emoji) ToData() map[string]any {
	m := map[string]any{
		"id":   e.ID.String(),
		"name": e.Name,
	}
	putBool(m, "animated", e.Animated)
	putBool(m, "managed", e.Managed)
	putBool(m, "require_colons", e.RequireColons)
	if !e.Available {
		m["available"] = false
	}
	putIDs(m, "roles", e.RoleIDs)
	if e.UserID != 0 {
		m["user"] = map[string]any{"id": e.UserID.String()}
	}
	return m
}
