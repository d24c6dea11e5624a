package state

import (
	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common"
	"github.com/starshine-sys/discache/common/log"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// GuildFromData returns the guild in a GUILD_CREATE shaped payload and binds clientID to it.
//
// A guild that already has a bound client is returned unchanged apart from the binding, so a
// duplicate GUILD_CREATE can't overwrite newer state. A partial guild is populated in place.
// A payload with "unavailable": true only marks the guild as unavailable.
// A clientID of 0 populates the guild without binding it.
func (s *State) GuildFromData(p payload.Payload, clientID snowflake.ID) (*discord.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guildFromData(p, clientID)
}

func (s *State) guildFromData(p payload.Payload, clientID snowflake.ID) (*discord.Guild, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, errors.Wrap(err, "building guild")
	}

	unavailable, _ := p.Bool("unavailable")

	g, ok := s.c.Guild(id)
	// a complete guild coming back from an outage is repopulated, its data may be stale
	if ok && !g.Partial() && (g.Available || unavailable) {
		bindClient(g, clientID)
		log.Debugf("Guild %v is already complete, not reprocessing payload", id)
		return g, nil
	}

	if !ok {
		g = discord.NewGuild(id)
		s.c.GuildSet(g)
	}

	if unavailable {
		g.Available = false
		return g, nil
	}
	g.Available = true

	s.applyGuild(g, silent(p), guildCreate)
	bindClient(g, clientID)
	return g, nil
}

func bindClient(g *discord.Guild, clientID snowflake.ID) {
	if clientID != 0 && !g.HasClient(clientID) {
		g.Clients = discord.SortIDs(append(g.Clients, clientID))
	}
}

// PrecreateGuild returns the guild with the given ID, registering a partial guild with only its
// name set if it isn't known. The name of an existing guild isn't changed.
func (s *State) PrecreateGuild(id snowflake.ID, name string) *discord.Guild {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.c.Guild(id)
	if ok {
		return g
	}

	g = s.precreateGuild(id)
	g.Name = name
	return g
}

func (s *State) precreateGuild(id snowflake.ID) *discord.Guild {
	if g, ok := s.c.Guild(id); ok {
		return g
	}

	g := discord.NewGuild(id)
	s.c.GuildSet(g)
	return g
}

// UpdateGuild applies a GUILD_UPDATE payload and returns what changed.
// Roles and emojis are replaced if present in the payload; channels are left alone.
// A guild that isn't cached yet is built from p without binding a client, and the diff is empty.
func (s *State) UpdateGuild(p payload.Payload) (*discord.Guild, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateGuild(p, true, guildUpdate)
}

// UpdateGuildSilent is UpdateGuild without the diff.
func (s *State) UpdateGuildSilent(p payload.Payload) (*discord.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, _, err := s.updateGuild(p, false, guildUpdate)
	return g, err
}

// SyncGuild applies a full guild payload, such as one fetched from the API, and returns what changed.
// Unlike UpdateGuild it also reconciles channels: channels missing from the payload are destroyed,
// new ones are created, and the rest are updated in place.
func (s *State) SyncGuild(p payload.Payload) (*discord.Guild, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateGuild(p, true, guildSync)
}

func (s *State) updateGuild(p payload.Payload, diff bool, mode guildMode) (*discord.Guild, discord.Diff, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating guild")
	}

	g, ok := s.c.Guild(id)
	if !ok {
		g, err = s.guildFromData(p, 0)
		return g, discord.Diff{}, err
	}

	up := silent(p)
	if diff {
		up = diffing(p)
	}
	s.applyGuild(g, up, mode)
	return g, up.result(), nil
}

// GuildEmojisUpdate replaces a guild's emojis from a GUILD_EMOJIS_UPDATE payload.
// The diff contains "emojis" mapped to the previous emojis if anything changed.
func (s *State) GuildEmojisUpdate(p payload.Payload) (*discord.Guild, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := p.RequireID("guild_id")
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating emojis")
	}

	g := s.precreateGuild(id)
	up := diffing(p)
	s.reconcileEmojis(g, up)
	return g, up.result(), nil
}

// GuildDelete handles a GUILD_DELETE payload received by clientID.
//
// If the payload marks the guild as unavailable, it's an outage: the guild is marked unavailable
// and kept. Otherwise clientID is unbound from the guild, and the guild is destroyed once no
// client is left. A clientID of 0 destroys the guild regardless of bound clients.
// destroyed is true if the guild was destroyed by this call.
func (s *State) GuildDelete(p payload.Payload, clientID snowflake.ID) (g *discord.Guild, destroyed bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := p.RequireID("id")
	if err != nil {
		return nil, false, errors.Wrap(err, "deleting guild")
	}

	g, ok := s.c.Guild(id)
	if !ok {
		return nil, false, nil
	}

	if unavailable, _ := p.Bool("unavailable"); unavailable {
		g.Available = false
		return g, false, nil
	}

	if clientID != 0 {
		g.Clients = common.Without(g.Clients, clientID)
		if len(g.Clients) != 0 {
			return g, false, nil
		}
	}

	s.destroyGuild(g)
	return g, true, nil
}

// DestroyGuild removes a guild and everything it owns from the registry: its roles, emojis, and
// channels, and the cached messages in those channels. Users are shared and stay registered.
// It returns false if the guild wasn't known. Destroying a guild twice is safe.
func (s *State) DestroyGuild(id snowflake.ID) (*discord.Guild, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.c.Guild(id)
	if !ok {
		return nil, false
	}
	s.destroyGuild(g)
	return g, true
}

func (s *State) destroyGuild(g *discord.Guild) {
	for id := range g.Channels {
		s.destroyChannel(id)
	}
	for id := range g.Emojis {
		s.destroyEmoji(g, id)
	}
	for id := range g.Roles {
		delete(g.Roles, id)
		s.c.RoleRemove(id)
	}
	for id := range g.Members {
		delete(g.Members, id)
	}

	g.Clients = nil
	s.c.GuildRemove(g.ID)
}

type guildMode int

const (
	// guildCreate populates everything, including gateway-only fields and members.
	guildCreate guildMode = iota
	// guildUpdate applies GUILD_UPDATE: scalars, roles, and emojis.
	guildUpdate
	// guildSync is guildUpdate plus channel reconciliation.
	guildSync
)

func (s *State) applyGuild(g *discord.Guild, up *updater, mode guildMode) {
	p := up.p

	up.setString("name", "name", &g.Name)
	up.setString("icon", "icon", &g.Icon)
	up.setString("banner", "banner", &g.Banner)
	up.setString("splash", "splash", &g.Splash)
	up.setString("discovery_splash", "discovery_splash", &g.DiscoverySplash)
	up.setString("description", "description", &g.Description)
	up.setID("owner_id", "owner", &g.OwnerID)
	up.setID("afk_channel_id", "afk_channel", &g.AFKChannelID)
	up.setInt("afk_timeout", "afk_timeout", &g.AFKTimeout)
	up.setID("system_channel_id", "system_channel", &g.SystemChannelID)
	setFlags(up, "system_channel_flags", "system_channel_flags", &g.SystemChannelFlags)
	up.setID("rules_channel_id", "rules_channel", &g.RulesChannelID)
	up.setID("public_updates_channel_id", "public_updates_channel", &g.PublicUpdatesChannelID)
	up.setID("widget_channel_id", "widget_channel", &g.WidgetChannelID)
	up.setBool("widget_enabled", "widget_enabled", &g.WidgetEnabled, false)
	up.setInt("verification_level", "verification_level", &g.VerificationLevel)
	up.setInt("default_message_notifications", "default_message_notifications", &g.DefaultMessageNotifications)
	up.setInt("explicit_content_filter", "explicit_content_filter", &g.ExplicitContentFilter)
	up.setInt("mfa_level", "mfa_level", &g.MFALevel)
	up.setInt("nsfw_level", "nsfw_level", &g.NSFWLevel)
	up.setInt("premium_tier", "premium_tier", &g.PremiumTier)
	up.setInt("premium_subscription_count", "premium_subscription_count", &g.PremiumSubscriptionCount)
	up.setStrings("features", "features", &g.Features)
	up.setString("vanity_url_code", "vanity_url_code", &g.VanityURLCode)
	up.setString("preferred_locale", "preferred_locale", &g.PreferredLocale)
	up.setString("region", "region", &g.Region)
	up.setInt("max_presences", "max_presences", &g.MaxPresences)
	up.setInt("max_members", "max_members", &g.MaxMembers)
	up.setInt("max_video_channel_users", "max_video_channel_users", &g.MaxVideoChannelUsers)

	// only sent in GUILD_CREATE, so these are never reset by an update that lacks them
	gw := up.sub(p).withPatch()
	gw.setInt("member_count", "member_count", &g.MemberCount)
	gw.setBool("large", "large", &g.Large, false)
	gw.setTime("joined_at", "joined_at", &g.JoinedAt)
	if p.Has("unavailable") {
		unavailable, _ := p.Bool("unavailable")
		if g.Available == unavailable {
			up.record("available", g.Available)
			g.Available = !unavailable
		}
	}
	applyDiscovery(g, gw)

	// roles first, so emojis, members, and overwrites can be checked against them
	if p.Has("roles") {
		s.reconcileRoles(g, up)
	}
	if p.Has("emojis") {
		s.reconcileEmojis(g, up)
	}
	if mode != guildUpdate && (p.Has("channels") || p.Has("threads")) {
		s.reconcileChannels(g, up)
	}
	if mode == guildCreate {
		for _, mp := range p.Array("members") {
			// members cached while the guild was partial may be stale
			if m, ok := cachedMember(g, mp); ok {
				s.applyMember(g, m, silent(mp))
				continue
			}

			if _, err := s.memberFromData(g, mp); err != nil {
				log.Debugf("Skipping member in guild %v: %v", g.ID, err)
			}
		}
	}
}

func applyDiscovery(g *discord.Guild, up *updater) {
	field(up, "discovery", "discovery", &g.Discovery, nil, func(key string) (*discord.GuildDiscovery, bool) {
		var d discord.GuildDiscovery
		ok, err := up.p.DecodeKey(key, &d)
		if !ok || err != nil {
			return nil, false
		}
		d.GuildID = g.ID
		d.Normalize()
		return &d, true
	}, func(a, b *discord.GuildDiscovery) bool { return a.Equal(b) })
}

// reconcileRoles makes the guild's roles match the payload's "roles" array.
// The diff records the sorted role list from before the update if anything changed.
func (s *State) reconcileRoles(g *discord.Guild, up *updater) {
	var before []discord.Role
	if up.diff != nil {
		before = g.RoleSnapshot()
	}

	seen := map[snowflake.ID]struct{}{}
	for _, rp := range up.p.Array("roles") {
		id, ok := rp.ID("id")
		if !ok {
			log.Debugf("Skipping role without ID in guild %v", g.ID)
			continue
		}
		seen[id] = struct{}{}

		if r, ok := g.Roles[id]; ok {
			applyRole(r, silent(rp))
			continue
		}
		if _, err := s.roleFromData(g, rp); err != nil {
			log.Debugf("Skipping role in guild %v: %v", g.ID, err)
		}
	}

	for id := range g.Roles {
		if _, ok := seen[id]; !ok {
			s.destroyRole(g, id)
		}
	}

	if up.diff != nil && !discord.EqualRoleSnapshots(before, g.RoleSnapshot()) {
		up.record("roles", before)
	}
}

// reconcileEmojis makes the guild's emojis match the payload's "emojis" array.
func (s *State) reconcileEmojis(g *discord.Guild, up *updater) {
	var before []discord.Emoji
	if up.diff != nil {
		before = g.EmojiSnapshot()
	}

	seen := map[snowflake.ID]struct{}{}
	for _, ep := range up.p.Array("emojis") {
		id, ok := ep.ID("id")
		if !ok {
			continue
		}
		seen[id] = struct{}{}

		if e, ok := g.Emojis[id]; ok {
			s.applyEmoji(g, e, silent(ep))
			continue
		}
		if _, err := s.emojiFromData(g, ep); err != nil {
			log.Debugf("Skipping emoji in guild %v: %v", g.ID, err)
		}
	}

	for id := range g.Emojis {
		if _, ok := seen[id]; !ok {
			s.destroyEmoji(g, id)
		}
	}

	if up.diff != nil && !discord.EqualEmojiSnapshots(before, g.EmojiSnapshot()) {
		up.record("emojis", before)
	}
}

// reconcileChannels makes the guild's channels match the payload's "channels" and "threads" arrays.
func (s *State) reconcileChannels(g *discord.Guild, up *updater) {
	var before []discord.Channel
	if up.diff != nil {
		before = g.ChannelSnapshot()
	}

	seen := map[snowflake.ID]struct{}{}
	arr := append(up.p.Array("channels"), up.p.Array("threads")...)
	for _, cp := range arr {
		id, ok := cp.ID("id")
		if !ok {
			continue
		}
		seen[id] = struct{}{}

		if ch, ok := g.Channels[id]; ok && !ch.Partial {
			applyChannel(ch, silent(cp))
			continue
		}
		if _, err := s.channelFromData(cp, g.ID); err != nil {
			log.Debugf("Skipping channel in guild %v: %v", g.ID, err)
		}
	}

	for id := range g.Channels {
		if _, ok := seen[id]; !ok {
			s.destroyChannel(id)
		}
	}

	if up.diff != nil && !discord.EqualChannelSnapshots(before, g.ChannelSnapshot()) {
		up.record("channels", before)
	}
}
