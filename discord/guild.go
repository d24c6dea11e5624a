package discord

import (
	"sort"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// SystemChannelFlags are the notifications suppressed in a guild's system channel.
// The zero value allows every notification, and is used when the field is absent or null.
type SystemChannelFlags uint64

const (
	SuppressJoinNotifications SystemChannelFlags = 1 << iota
	SuppressPremiumSubscriptions
	SuppressGuildReminderNotifications
	SuppressJoinNotificationReplies
)

// SystemChannelAllowAll is the default value of SystemChannelFlags.
const SystemChannelAllowAll SystemChannelFlags = 0

// Allows returns true if the notifications suppressed by flag are allowed.
func (f SystemChannelFlags) Allows(flag SystemChannelFlags) bool {
	return f&flag == 0
}

// Guild is a Discord guild.
//
// A guild with no bound clients is partial: it was either precreated, restored from an archive,
// or every client that could see it has left. Partial guilds are repopulated in place by the next
// full payload.
type Guild struct {
	Identified

	// Clients are the IDs of the bot users that are in this guild.
	Clients []snowflake.ID

	Name            string
	Icon            string
	Banner          string
	Splash          string
	DiscoverySplash string
	Description     string

	OwnerID                snowflake.ID
	AFKChannelID           snowflake.ID
	AFKTimeout             int
	SystemChannelID        snowflake.ID
	SystemChannelFlags     SystemChannelFlags
	RulesChannelID         snowflake.ID
	PublicUpdatesChannelID snowflake.ID
	WidgetChannelID        snowflake.ID
	WidgetEnabled          bool

	VerificationLevel           int
	DefaultMessageNotifications int
	ExplicitContentFilter       int
	MFALevel                    int
	NSFWLevel                   int
	PremiumTier                 int
	PremiumSubscriptionCount    int

	// Features is sorted.
	Features        []string
	VanityURLCode   string
	PreferredLocale string
	Region          string

	MaxPresences         int
	MaxMembers           int
	MaxVideoChannelUsers int
	MemberCount          int
	Large                bool
	Available            bool
	JoinedAt             time.Time

	Discovery *GuildDiscovery

	Channels map[snowflake.ID]*Channel
	Roles    map[snowflake.ID]*Role
	Emojis   map[snowflake.ID]*Emoji
	Members  map[snowflake.ID]*Member
}

// NewGuild returns an empty partial guild.
func NewGuild(id snowflake.ID) *Guild {
	return &Guild{
		Identified: Identified{ID: id},
		Available:  true,
		Channels:   make(map[snowflake.ID]*Channel),
		Roles:      make(map[snowflake.ID]*Role),
		Emojis:     make(map[snowflake.ID]*Emoji),
		Members:    make(map[snowflake.ID]*Member),
	}
}

// Partial returns true if no client is bound to the guild.
func (g *Guild) Partial() bool {
	return len(g.Clients) == 0
}

// HasClient returns true if the given client is bound to the guild.
func (g *Guild) HasClient(id snowflake.ID) bool {
	for _, c := range g.Clients {
		if c == id {
			return true
		}
	}
	return false
}

func (g *Guild) Role(id snowflake.ID) (*Role, bool) {
	r, ok := g.Roles[id]
	return r, ok
}

func (g *Guild) Channel(id snowflake.ID) (*Channel, bool) {
	ch, ok := g.Channels[id]
	return ch, ok
}

func (g *Guild) Emoji(id snowflake.ID) (*Emoji, bool) {
	e, ok := g.Emojis[id]
	return e, ok
}

func (g *Guild) Member(id snowflake.ID) (*Member, bool) {
	m, ok := g.Members[id]
	return m, ok
}

// EveryoneRole returns the guild's @everyone role, or nil if it isn't known.
func (g *Guild) EveryoneRole() *Role {
	return g.Roles[g.ID]
}

// Owner resolves the guild owner.
func (g *Guild) Owner(users UserLookup) (*User, bool) {
	if g.OwnerID == 0 {
		return nil, false
	}
	if m, ok := g.Members[g.OwnerID]; ok {
		return m.User, true
	}
	return users.User(g.OwnerID)
}

func (g *Guild) channel(id snowflake.ID) *Channel {
	if id == 0 {
		return nil
	}
	return g.Channels[id]
}

// AFKChannel returns the guild's AFK channel, or nil.
func (g *Guild) AFKChannel() *Channel { return g.channel(g.AFKChannelID) }

// SystemChannel returns the guild's system channel, or nil.
func (g *Guild) SystemChannel() *Channel { return g.channel(g.SystemChannelID) }

// RulesChannel returns the guild's rules channel, or nil.
func (g *Guild) RulesChannel() *Channel { return g.channel(g.RulesChannelID) }

// PublicUpdatesChannel returns the guild's public updates channel, or nil.
func (g *Guild) PublicUpdatesChannel() *Channel { return g.channel(g.PublicUpdatesChannelID) }

// WidgetChannel returns the guild's widget channel, or nil.
func (g *Guild) WidgetChannel() *Channel { return g.channel(g.WidgetChannelID) }

// SortedChannels returns the guild's channels in the order shown in the Discord client.
func (g *Guild) SortedChannels() []*Channel {
	chs := make([]*Channel, 0, len(g.Channels))
	for _, ch := range g.Channels {
		chs = append(chs, ch)
	}
	return SortChannels(chs)
}

// Threads returns the guild's cached threads, sorted by ID.
func (g *Guild) Threads() []*Channel {
	var threads []*Channel
	for _, ch := range g.Channels {
		if ch.IsThread() {
			threads = append(threads, ch)
		}
	}
	SortByID(threads)
	return threads
}

// SortedRoles returns the guild's roles sorted by position.
func (g *Guild) SortedRoles() []*Role {
	roles := make([]*Role, 0, len(g.Roles))
	for _, r := range g.Roles {
		roles = append(roles, r)
	}
	SortRoles(roles)
	return roles
}

// RoleSnapshot returns copies of the guild's roles, sorted by position.
func (g *Guild) RoleSnapshot() []Role {
	roles := g.SortedRoles()
	out := make([]Role, 0, len(roles))
	for _, r := range roles {
		out = append(out, *r)
	}
	return out
}

// EmojiSnapshot returns copies of the guild's emojis, sorted by ID.
func (g *Guild) EmojiSnapshot() []Emoji {
	out := make([]Emoji, 0, len(g.Emojis))
	for _, e := range g.Emojis {
		out = append(out, *e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ChannelSnapshot returns copies of the guild's channels, sorted by ID.
func (g *Guild) ChannelSnapshot() []Channel {
	out := make([]Channel, 0, len(g.Channels))
	for _, ch := range g.Channels {
		out = append(out, *ch.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// EqualRoleSnapshots compares two role snapshots element by element.
func EqualRoleSnapshots(a, b []Role) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// EqualEmojiSnapshots compares two emoji snapshots element by element.
func EqualEmojiSnapshots(a, b []Emoji) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// EqualChannelSnapshots compares two channel snapshots element by element.
func EqualChannelSnapshots(a, b []Channel) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(&b[i]) {
			return false
		}
	}
	return true
}

// ToData returns the guild as a GUILD_CREATE shaped object.
func (g *Guild) ToData() map[string]any {
	m := map[string]any{
		"id":   g.ID.String(),
		"name": g.Name,
	}
	putString(m, "icon", g.Icon)
	putString(m, "banner", g.Banner)
	putString(m, "splash", g.Splash)
	putString(m, "discovery_splash", g.DiscoverySplash)
	putString(m, "description", g.Description)
	putID(m, "owner_id", g.OwnerID)
	putID(m, "afk_channel_id", g.AFKChannelID)
	putInt(m, "afk_timeout", g.AFKTimeout)
	putID(m, "system_channel_id", g.SystemChannelID)
	if g.SystemChannelFlags != SystemChannelAllowAll {
		m["system_channel_flags"] = uint64(g.SystemChannelFlags)
	}
	putID(m, "rules_channel_id", g.RulesChannelID)
	putID(m, "public_updates_channel_id", g.PublicUpdatesChannelID)
	putID(m, "widget_channel_id", g.WidgetChannelID)
	putBool(m, "widget_enabled", g.WidgetEnabled)
	putInt(m, "verification_level", g.VerificationLevel)
	putInt(m, "default_message_notifications", g.DefaultMessageNotifications)
	putInt(m, "explicit_content_filter", g.ExplicitContentFilter)
	putInt(m, "mfa_level", g.MFALevel)
	putInt(m, "nsfw_level", g.NSFWLevel)
	putInt(m, "premium_tier", g.PremiumTier)
	putInt(m, "premium_subscription_count", g.PremiumSubscriptionCount)
	putStrings(m, "features", g.Features)
	putString(m, "vanity_url_code", g.VanityURLCode)
	putString(m, "preferred_locale", g.PreferredLocale)
	putString(m, "region", g.Region)
	putInt(m, "max_presences", g.MaxPresences)
	putInt(m, "max_members", g.MaxMembers)
	putInt(m, "max_video_channel_users", g.MaxVideoChannelUsers)
	putInt(m, "member_count", g.MemberCount)
	putBool(m, "large", g.Large)
	putTime(m, "joined_at", g.JoinedAt)
	if !g.Available {
		m["unavailable"] = true
	}

	var roles, emojis, channels, threads, members []any
	for _, r := range g.SortedRoles() {
		roles = append(roles, r.ToData())
	}
	for _, e := range g.EmojiSnapshot() {
		emojis = append(emojis, e.ToData())
	}
	for _, ch := range g.ChannelSnapshot() {
		if ch.IsThread() {
			threads = append(threads, ch.ToData())
		} else {
			channels = append(channels, ch.ToData())
		}
	}

	memberIDs := make([]snowflake.ID, 0, len(g.Members))
	for id := range g.Members {
		memberIDs = append(memberIDs, id)
	}
	for _, id := range SortIDs(memberIDs) {
		members = append(members, g.Members[id].ToData())
	}

	if len(roles) != 0 {
		m["roles"] = roles
	}
	if len(emojis) != 0 {
		m["emojis"] = emojis
	}
	if len(channels) != 0 {
		m["channels"] = channels
	}
	if len(threads) != 0 {
		m["threads"] = threads
	}
	if len(members) != 0 {
		m["members"] = members
	}
	return m
}
