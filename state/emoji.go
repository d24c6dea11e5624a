package state

import (
	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common/log"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// EmojiFromData returns the emoji in p, which belongs to the given guild.
func (s *State) EmojiFromData(guildID snowflake.ID, p payload.Payload) (*discord.Emoji, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.emojiFromData(s.precreateGuild(guildID), p)
}

func (s *State) emojiFromData(g *discord.Guild, p payload.Payload) (*discord.Emoji, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, errors.Wrap(err, "building emoji")
	}

	e, ok := g.Emojis[id]
	if !ok {
		e, ok = s.c.Emoji(id)
	}
	if ok && !e.Partial {
		g.Emojis[id] = e
		return e, nil
	}

	if !ok {
		e = discord.NewEmoji(id, g.ID)
	}
	s.c.EmojiSet(e)
	g.Emojis[id] = e

	s.applyEmoji(g, e, silent(p))
	e.Partial = false
	return e, nil
}

func (s *State) destroyEmoji(g *discord.Guild, id snowflake.ID) {
	delete(g.Emojis, id)
	s.c.EmojiRemove(id)
}

func (s *State) applyEmoji(g *discord.Guild, e *discord.Emoji, up *updater) {
	up.setString("name", "name", &e.Name)
	up.setBool("animated", "animated", &e.Animated, false)
	up.setBool("managed", "managed", &e.Managed, false)
	up.setBool("require_colons", "require_colons", &e.RequireColons, false)
	up.setBool("available", "available", &e.Available, true)
	up.setIDs("roles", "roles", &e.RoleIDs, s.knownRole(g))

	field(up, "user", "user", &e.UserID, 0, func(key string) (snowflake.ID, bool) {
		sub, ok := up.p.Get(key)
		if !ok {
			return 0, false
		}
		if sub.Has("username") {
			if u, err := s.userFromData(sub); err == nil {
				return u.ID, true
			}
		}
		return sub.ID("id")
	}, eq[snowflake.ID])
}

// knownRole returns a filter that drops role IDs the guild doesn't have.
func (s *State) knownRole(g *discord.Guild) func(snowflake.ID) bool {
	return func(id snowflake.ID) bool {
		if _, ok := g.Roles[id]; ok {
			return true
		}
		log.Debugf("Dropping unknown role %v in guild %v", id, g.ID)
		return false
	}
}
