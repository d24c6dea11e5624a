package state

import (
	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// RoleFromData returns the role in p, which belongs to the given guild.
// The guild is precreated if it isn't known.
func (s *State) RoleFromData(guildID snowflake.ID, p payload.Payload) (*discord.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roleFromData(s.precreateGuild(guildID), p)
}

func (s *State) roleFromData(g *discord.Guild, p payload.Payload) (*discord.Role, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, errors.Wrap(err, "building role")
	}

	r, ok := g.Roles[id]
	if !ok {
		r, ok = s.c.Role(id)
	}
	if ok && !r.Partial {
		g.Roles[id] = r
		return r, nil
	}

	if !ok {
		r = discord.NewRole(id, g.ID)
	}
	s.c.RoleSet(r)
	g.Roles[id] = r

	applyRole(r, silent(p))
	r.Partial = false
	return r, nil
}

// UpdateRole applies a full role object and returns what changed.
// A role that isn't cached yet is built from p, and the diff is empty.
func (s *State) UpdateRole(guildID snowflake.ID, p payload.Payload) (*discord.Role, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRole(s.precreateGuild(guildID), p, true)
}

// UpdateRoleSilent is UpdateRole without the diff.
func (s *State) UpdateRoleSilent(guildID snowflake.ID, p payload.Payload) (*discord.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, _, err := s.updateRole(s.precreateGuild(guildID), p, false)
	return r, err
}

func (s *State) updateRole(g *discord.Guild, p payload.Payload, diff bool) (*discord.Role, discord.Diff, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating role")
	}

	r, ok := g.Roles[id]
	if !ok {
		r, err = s.roleFromData(g, p)
		return r, discord.Diff{}, err
	}

	up := silent(p)
	if diff {
		up = diffing(p)
	}
	applyRole(r, up)
	r.Partial = false
	return r, up.result(), nil
}

// DestroyRole removes a role from its guild and the registry, and from every member and emoji
// that referenced it. It returns false if the role wasn't known. Destroying a role twice is safe.
func (s *State) DestroyRole(guildID, roleID snowflake.ID) (*discord.Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.c.Guild(guildID)
	if !ok {
		r, ok := s.c.Role(roleID)
		if ok {
			s.c.RoleRemove(roleID)
		}
		return r, ok
	}
	return s.destroyRole(g, roleID)
}

func (s *State) destroyRole(g *discord.Guild, id snowflake.ID) (*discord.Role, bool) {
	r, ok := g.Roles[id]
	if !ok {
		r, ok = s.c.Role(id)
	}

	delete(g.Roles, id)
	s.c.RoleRemove(id)

	for _, m := range g.Members {
		m.RoleIDs = common.Without(m.RoleIDs, id)
	}
	for _, e := range g.Emojis {
		e.RoleIDs = common.Without(e.RoleIDs, id)
	}

	return r, ok
}

func applyRole(r *discord.Role, up *updater) {
	up.setString("name", "name", &r.Name)
	up.setInt("color", "color", &r.Color)
	up.setBool("hoist", "hoist", &r.Hoist, false)
	up.setString("icon", "icon", &r.Icon)
	up.setString("unicode_emoji", "unicode_emoji", &r.UnicodeEmoji)
	up.setInt("position", "position", &r.Position)
	up.setUint("permissions", "permissions", &r.Permissions)
	up.setBool("managed", "managed", &r.Managed, false)
	up.setBool("mentionable", "mentionable", &r.Mentionable, false)
}
