package state

import (
	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// MemberFromData returns the guild member in p. The member's user is built through the user
// factory and shared with every other guild the user is in.
func (s *State) MemberFromData(guildID snowflake.ID, p payload.Payload) (*discord.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memberFromData(s.precreateGuild(guildID), p)
}

func (s *State) memberFromData(g *discord.Guild, p payload.Payload) (*discord.Member, error) {
	up, ok := p.Get("user")
	if !ok {
		return nil, errors.WithMessage(payload.ErrMissingField, "building member: field \"user\"")
	}

	u, err := s.userFromData(up)
	if err != nil {
		return nil, errors.Wrap(err, "building member")
	}

	if m, ok := g.Members[u.ID]; ok {
		return m, nil
	}

	m := &discord.Member{User: u, GuildID: g.ID}
	g.Members[u.ID] = m
	s.applyMember(g, m, silent(p))
	return m, nil
}

func cachedMember(g *discord.Guild, p payload.Payload) (*discord.Member, bool) {
	up, ok := p.Get("user")
	if !ok {
		return nil, false
	}
	id, ok := up.ID("id")
	if !ok {
		return nil, false
	}
	m, ok := g.Members[id]
	return m, ok
}

// MemberAdd adds a member that joined the guild, and increments the guild's member count.
func (s *State) MemberAdd(guildID snowflake.ID, p payload.Payload) (*discord.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.precreateGuild(guildID)
	n := len(g.Members)

	m, err := s.memberFromData(g, p)
	if err != nil {
		return nil, err
	}
	if len(g.Members) > n {
		g.MemberCount++
	}
	return m, nil
}

// UpdateMember applies a GUILD_MEMBER_UPDATE payload and returns what changed in the member.
// The member's user is refreshed from the payload's user object.
func (s *State) UpdateMember(guildID snowflake.ID, p payload.Payload) (*discord.Member, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateMember(s.precreateGuild(guildID), p, true)
}

// UpdateMemberSilent is UpdateMember without the diff.
func (s *State) UpdateMemberSilent(guildID snowflake.ID, p payload.Payload) (*discord.Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, _, err := s.updateMember(s.precreateGuild(guildID), p, false)
	return m, err
}

func (s *State) updateMember(g *discord.Guild, p payload.Payload, diff bool) (*discord.Member, discord.Diff, error) {
	userP, ok := p.Get("user")
	if !ok {
		return nil, nil, errors.WithMessage(payload.ErrMissingField, "updating member: field \"user\"")
	}

	u, _, err := s.updateUser(userP, false)
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating member")
	}

	m, ok := g.Members[u.ID]
	if !ok {
		m, err = s.memberFromData(g, p)
		return m, discord.Diff{}, err
	}

	up := silent(p)
	if diff {
		up = diffing(p)
	}
	s.applyMember(g, m, up)
	return m, up.result(), nil
}

// MemberRemove removes a member from the guild. The user stays registered, as it may be shared
// with other guilds. It returns false if the member wasn't known.
func (s *State) MemberRemove(guildID, userID snowflake.ID) (*discord.Member, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.c.Guild(guildID)
	if !ok {
		return nil, false
	}

	m, ok := g.Members[userID]
	if !ok {
		return nil, false
	}

	delete(g.Members, userID)
	if g.MemberCount > 0 {
		g.MemberCount--
	}
	return m, true
}

func (s *State) applyMember(g *discord.Guild, m *discord.Member, up *updater) {
	up.setString("nick", "nick", &m.Nick)
	up.setString("avatar", "avatar", &m.Avatar)
	up.setTime("joined_at", "joined_at", &m.JoinedAt)
	up.setTime("premium_since", "premium_since", &m.PremiumSince)
	up.setIDs("roles", "roles", &m.RoleIDs, s.knownRole(g))
	up.setBool("pending", "pending", &m.Pending, false)
	up.setBool("deaf", "deaf", &m.Deaf, false)
	up.setBool("mute", "mute", &m.Mute, false)
	up.setTime("communication_disabled_until", "communication_disabled_until", &m.CommunicationDisabledUntil)
}
