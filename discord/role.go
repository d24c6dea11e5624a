package discord

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/disgoorg/snowflake/v2"
)

// Role is a guild role. Roles are owned by their guild.
type Role struct {
	Identified

	GuildID      snowflake.ID
	Name         string
	Color        int
	Hoist        bool
	Icon         string
	UnicodeEmoji string
	Position     int
	Permissions  uint64
	Managed      bool
	Mentionable  bool

	Partial bool
}

// NewRole returns a partial role.
func NewRole(id, guildID snowflake.ID) *Role {
	return &Role{
		Identified: Identified{ID: id},
		GuildID:    guildID,
		Partial:    true,
	}
}

func (r *Role) Mention() string {
	return fmt.Sprintf("<@&%v>", r.ID)
}

// IsEveryone returns true for the @everyone role, which shares its ID with the guild.
func (r *Role) IsEveryone() bool {
	return r.ID == r.GuildID
}

// Equal compares every field except partiality.
func (r *Role) Equal(other *Role) bool {
	a, b := *r, *other
	a.Partial, b.Partial = false, false
	return a == b
}

func (r *Role) ToData() map[string]any {
	m := map[string]any{
		"id":          r.ID.String(),
		"name":        r.Name,
		"position":    r.Position,
		"permissions": strconv.FormatUint(r.Permissions, 10),
	}
	putInt(m, "color", r.Color)
	putBool(m, "hoist", r.Hoist)
	putString(m, "icon", r.Icon)
	putString(m, "unicode_emoji", r.UnicodeEmoji)
	putBool(m, "managed", r.Managed)
	putBool(m, "mentionable", r.Mentionable)
	return m
}

// SortRoles sorts roles by position, then by ID, the way the Discord client does.
func SortRoles(roles []*Role) {
	sort.Slice(roles, func(i, j int) bool {
		if roles[i].Position != roles[j].Position {
			return roles[i].Position < roles[j].Position
		}
		return roles[i].ID < roles[j].ID
	})
}
