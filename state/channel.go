package state

import (
	"sort"

	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// ChannelFromData returns the channel in p. If guildID is 0, the payload's guild_id is used;
// guild channels are added to their guild, which is precreated if needed.
func (s *State) ChannelFromData(p payload.Payload, guildID snowflake.ID) (*discord.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.channelFromData(p, guildID)
}

func (s *State) channelFromData(p payload.Payload, guildID snowflake.ID) (*discord.Channel, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, errors.Wrap(err, "building channel")
	}

	if guildID == 0 {
		guildID, _ = p.ID("guild_id")
	}
	var g *discord.Guild
	if guildID != 0 {
		g = s.precreateGuild(guildID)
	}

	ch, ok := s.c.Channel(id)
	if ok && !ch.Partial {
		if g != nil {
			g.Channels[id] = ch
		}
		return ch, nil
	}

	if !ok {
		ch = discord.NewChannel(id, guildID)
		s.c.ChannelSet(ch)
	}
	if ch.GuildID == 0 {
		ch.GuildID = guildID
	}
	if g != nil {
		g.Channels[id] = ch
	}

	applyChannel(ch, silent(p))
	ch.Partial = false
	return ch, nil
}

// PrecreateChannel returns the channel with the given ID, registering a partial channel if it
// isn't known. Partial channels aren't added to their guild until their own data arrives.
func (s *State) PrecreateChannel(id, guildID snowflake.ID) *discord.Channel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.precreateChannel(id, guildID)
}

func (s *State) precreateChannel(id, guildID snowflake.ID) *discord.Channel {
	if ch, ok := s.c.Channel(id); ok {
		return ch
	}

	ch := discord.NewChannel(id, guildID)
	s.c.ChannelSet(ch)
	return ch
}

// UpdateChannel applies a full channel object and returns what changed.
// A channel that isn't cached yet is built from p, and the diff is empty.
func (s *State) UpdateChannel(p payload.Payload) (*discord.Channel, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateChannel(p, true)
}

// UpdateChannelSilent is UpdateChannel without the diff.
func (s *State) UpdateChannelSilent(p payload.Payload) (*discord.Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, _, err := s.updateChannel(p, false)
	return ch, err
}

func (s *State) updateChannel(p payload.Payload, diff bool) (*discord.Channel, discord.Diff, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating channel")
	}

	ch, ok := s.c.Channel(id)
	if !ok || ch.Partial {
		ch, err = s.channelFromData(p, 0)
		return ch, discord.Diff{}, err
	}

	up := silent(p)
	if diff {
		up = diffing(p)
	}
	applyChannel(ch, up)
	return ch, up.result(), nil
}

// DestroyChannel removes a channel from its guild and the registry, and evicts its cached messages.
// It returns false if the channel wasn't known. Destroying a channel twice is safe.
func (s *State) DestroyChannel(id snowflake.ID) (*discord.Channel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyChannel(id)
}

func (s *State) destroyChannel(id snowflake.ID) (*discord.Channel, bool) {
	ch, ok := s.c.Channel(id)
	if !ok {
		return nil, false
	}

	if g, ok := s.c.Guild(ch.GuildID); ok {
		delete(g.Channels, id)
	}
	s.c.ChannelRemove(id)

	for _, m := range s.c.ChannelMessages(id) {
		s.c.MessageRemove(m.ID)
	}
	return ch, true
}

func applyChannel(ch *discord.Channel, up *updater) {
	setEnum(up, "type", "type", &ch.Type)
	up.setString("name", "name", &ch.Name)
	up.setString("topic", "topic", &ch.Topic)
	up.setInt("position", "position", &ch.Position)
	up.setID("parent_id", "parent_id", &ch.ParentID)
	up.setBool("nsfw", "nsfw", &ch.NSFW, false)
	up.setInt("rate_limit_per_user", "rate_limit_per_user", &ch.RateLimitPerUser)
	up.setInt("bitrate", "bitrate", &ch.Bitrate)
	up.setInt("user_limit", "user_limit", &ch.UserLimit)
	up.setID("last_message_id", "last_message_id", &ch.LastMessageID)

	field(up, "permission_overwrites", "permission_overwrites", &ch.Overwrites, nil, func(key string) ([]discord.PermissionOverwrite, bool) {
		arr := up.p.Array(key)
		if len(arr) == 0 {
			return nil, false
		}

		out := make([]discord.PermissionOverwrite, 0, len(arr))
		for _, o := range arr {
			id, ok := o.ID("id")
			if !ok {
				continue
			}
			typ, _ := o.Int("type")
			allow, _ := o.Uint("allow")
			deny, _ := o.Uint("deny")
			out = append(out, discord.PermissionOverwrite{
				ID:    id,
				Type:  discord.OverwriteType(typ),
				Allow: allow,
				Deny:  deny,
			})
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, true
	}, equalOverwrites)
}

func equalOverwrites(a, b []discord.PermissionOverwrite) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
