package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Member is a user's per-guild profile. The profile is owned by the guild; the User is shared.
type Member struct {
	User    *User
	GuildID snowflake.ID

	Nick         string
	Avatar       string
	JoinedAt     time.Time
	PremiumSince time.Time
	// RoleIDs only contains roles that existed in the guild when the member was last updated, sorted by ID.
	RoleIDs                    []snowflake.ID
	Pending                    bool
	Deaf                       bool
	Mute                       bool
	CommunicationDisabledUntil time.Time
}

// DisplayName returns the member's nickname, falling back to the user's display name.
func (m *Member) DisplayName() string {
	if m.Nick != "" {
		return m.Nick
	}
	return m.User.DisplayName()
}

// HasRole returns true if the member has the given role.
func (m *Member) HasRole(id snowflake.ID) bool {
	for _, r := range m.RoleIDs {
		if r == id {
			return true
		}
	}
	return false
}

// Roles resolves the member's roles. Roles that no longer exist are skipped.
func (m *Member) Roles(roles RoleLookup) []*Role {
	out := make([]*Role, 0, len(m.RoleIDs))
	for _, id := range m.RoleIDs {
		if r, ok := roles.Role(id); ok {
			out = append(out, r)
		}
	}
	return out
}

// Equal compares the profile fields of m and other. The user is compared by ID only.
func (m *Member) Equal(other *Member) bool {
	return m.User.ID == other.User.ID &&
		m.GuildID == other.GuildID &&
		m.Nick == other.Nick &&
		m.Avatar == other.Avatar &&
		m.JoinedAt.Equal(other.JoinedAt) &&
		m.PremiumSince.Equal(other.PremiumSince) &&
		EqualIDs(m.RoleIDs, other.RoleIDs) &&
		m.Pending == other.Pending &&
		m.Deaf == other.Deaf &&
		m.Mute == other.Mute &&
		m.CommunicationDisabledUntil.Equal(other.CommunicationDisabledUntil)
}

func (m *Member) ToData() map[string]any {
	data := map[string]any{
		"user":  m.User.ToData(),
		"roles": idStrings(m.RoleIDs),
	}
	putString(data, "nick", m.Nick)
	putString(data, "avatar", m.Avatar)
	putTime(data, "joined_at", m.JoinedAt)
	putTime(data, "premium_since", m.PremiumSince)
	putBool(data, "pending", m.Pending)
	putBool(data, "deaf", m.Deaf)
	putBool(data, "mute", m.Mute)
	putTime(data, "communication_disabled_until", m.CommunicationDisabledUntil)
	return data
}
