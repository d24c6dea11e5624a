package state

import (
	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// UserFromData returns the user in p, creating or completing it as needed.
// A complete user is returned as-is.
func (s *State) UserFromData(p payload.Payload) (*discord.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userFromData(p)
}

func (s *State) userFromData(p payload.Payload) (*discord.User, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, errors.Wrap(err, "building user")
	}

	u, ok := s.c.User(id)
	if ok && !u.Partial {
		return u, nil
	}

	if !ok {
		u = discord.NewUser(id)
		s.c.UserSet(u)
	}

	applyUser(u, silent(p))
	u.Partial = false
	return u, nil
}

// PrecreateUser returns the user with the given ID, registering a partial user if it isn't known.
func (s *State) PrecreateUser(id snowflake.ID) *discord.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.precreateUser(id)
}

func (s *State) precreateUser(id snowflake.ID) *discord.User {
	if u, ok := s.c.User(id); ok {
		return u
	}

	u := discord.NewUser(id)
	s.c.UserSet(u)
	return u
}

// UpdateUser applies a full user object and returns what changed.
// A user that isn't cached yet is built from p, and the diff is empty.
func (s *State) UpdateUser(p payload.Payload) (*discord.User, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateUser(p, true)
}

// UpdateUserSilent is UpdateUser without the diff.
func (s *State) UpdateUserSilent(p payload.Payload) (*discord.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, _, err := s.updateUser(p, false)
	return u, err
}

func (s *State) updateUser(p payload.Payload, diff bool) (*discord.User, discord.Diff, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating user")
	}

	u, ok := s.c.User(id)
	if !ok {
		u, err = s.userFromData(p)
		return u, discord.Diff{}, err
	}

	up := silent(p)
	if diff {
		up = diffing(p)
	}
	applyUser(u, up)
	u.Partial = false
	return u, up.result(), nil
}

func applyUser(u *discord.User, up *updater) {
	up.setString("username", "name", &u.Name)
	up.setString("discriminator", "discriminator", &u.Discriminator)
	up.setString("global_name", "global_name", &u.GlobalName)
	up.setString("avatar", "avatar", &u.Avatar)
	up.setString("banner", "banner", &u.Banner)
	up.setInt("accent_color", "accent_color", &u.AccentColor)
	up.setBool("bot", "bot", &u.Bot, false)
	up.setBool("system", "system", &u.System, false)
	up.setUint("public_flags", "public_flags", &u.PublicFlags)
}
