package state

import (
	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common/log"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// MessageFromData returns the message in p, creating or completing it as needed.
// A complete cached message is returned as-is.
func (s *State) MessageFromData(p payload.Payload) (*discord.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageFromData(p)
}

func (s *State) messageFromData(p payload.Payload) (*discord.Message, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, errors.Wrap(err, "building message")
	}
	channelID, err := p.RequireID("channel_id")
	if err != nil {
		return nil, errors.Wrap(err, "building message")
	}

	m, ok := s.c.Message(id)
	if ok && !m.Partial {
		return m, nil
	}

	if !ok {
		m = discord.NewMessage(id, channelID)
		m.GuildID = s.messageGuild(p, channelID)
		s.c.MessageSet(m)
	}

	s.applyMessage(m, silent(p))
	m.Partial = false
	return m, nil
}

func (s *State) messageGuild(p payload.Payload, channelID snowflake.ID) snowflake.ID {
	if id, ok := p.ID("guild_id"); ok {
		return id
	}
	if ch, ok := s.c.Channel(channelID); ok {
		return ch.GuildID
	}
	return 0
}

// UpdateMessage applies a MESSAGE_UPDATE payload and returns what changed.
// MESSAGE_UPDATE payloads may be partial, so fields absent from p are left alone.
//
// A message that isn't cached is built from p if it has an author, and the diff is empty.
// Otherwise a partial message holding only the fields in p is cached.
func (s *State) UpdateMessage(p payload.Payload) (*discord.Message, discord.Diff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateMessage(p, true)
}

// UpdateMessageSilent is UpdateMessage without the diff.
func (s *State) UpdateMessageSilent(p payload.Payload) (*discord.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, _, err := s.updateMessage(p, false)
	return m, err
}

func (s *State) updateMessage(p payload.Payload, diff bool) (*discord.Message, discord.Diff, error) {
	id, err := p.RequireID("id")
	if err != nil {
		return nil, nil, errors.Wrap(err, "updating message")
	}

	m, ok := s.c.Message(id)
	if !ok {
		if p.Has("author") {
			m, err = s.messageFromData(p)
			return m, discord.Diff{}, err
		}

		channelID, err := p.RequireID("channel_id")
		if err != nil {
			return nil, nil, errors.Wrap(err, "updating message")
		}
		m = discord.NewMessage(id, channelID)
		m.GuildID = s.messageGuild(p, channelID)
		s.c.MessageSet(m)
		s.applyMessage(m, silent(p).withPatch())
		return m, discord.Diff{}, nil
	}

	up := silent(p).withPatch()
	if diff {
		up = diffing(p).withPatch()
	}
	s.applyMessage(m, up)
	return m, up.result(), nil
}

// DeleteMessage evicts a message. It returns false if the message wasn't cached.
func (s *State) DeleteMessage(id snowflake.ID) (*discord.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.c.Message(id)
	if ok {
		s.c.MessageRemove(id)
	}
	return m, ok
}

// BulkDeleteMessages evicts every given message, and returns the ones that were cached.
func (s *State) BulkDeleteMessages(ids []snowflake.ID) []*discord.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted []*discord.Message
	for _, id := range ids {
		if m, ok := s.c.Message(id); ok {
			s.c.MessageRemove(id)
			deleted = append(deleted, m)
		}
	}
	return deleted
}

func (s *State) applyMessage(m *discord.Message, up *updater) {
	p := up.p

	s.applyAuthor(m, up)
	up.setString("content", "content", &m.Content)
	up.setTime("edited_timestamp", "edited", &m.Edited)
	up.setBool("tts", "tts", &m.TTS, false)
	up.setBool("mention_everyone", "mention_everyone", &m.MentionEveryone, false)
	up.setBool("pinned", "pinned", &m.Pinned, false)
	setEnum(up, "type", "type", &m.Type)
	setFlags(up, "flags", "flags", &m.Flags)
	up.setID("webhook_id", "webhook_id", &m.WebhookID)
	up.setID("application_id", "application_id", &m.ApplicationID)

	field(up, "embeds", "embeds", &m.Embeds, nil, func(key string) ([]discord.EmbedCore, bool) {
		embeds := discord.EmbedsFromData(p.Array(key))
		return embeds, embeds != nil
	}, discord.EqualEmbeds)

	field(up, "attachments", "attachments", &m.Attachments, nil, func(key string) ([]discord.Attachment, bool) {
		return decodeAttachments(p.Array(key))
	}, equalAttachments)

	field(up, "reactions", "reactions", &m.Reactions, nil, func(key string) (discord.Reactions, bool) {
		return decodeReactions(p.Array(key))
	}, discord.Reactions.Equal)

	field(up, "mentions", "mentions", &m.MentionIDs, nil, func(key string) ([]snowflake.ID, bool) {
		var ids []snowflake.ID
		for _, userP := range p.Array(key) {
			u, err := s.userFromData(userP)
			if err != nil {
				log.Debugf("Skipping mentioned user in message %v: %v", m.ID, err)
				continue
			}
			ids = append(ids, u.ID)
		}
		return ids, ids != nil
	}, discord.EqualIDs)

	// mention_roles is kept as sent: unknown roles are skipped when resolved
	field(up, "mention_roles", "mention_roles", &m.MentionRoleIDs, nil, func(key string) ([]snowflake.ID, bool) {
		ids := p.IDs(key)
		return ids, len(ids) != 0
	}, discord.EqualIDs)

	field(up, "mention_channels", "mention_channels", &m.MentionChannelIDs, nil, func(key string) ([]snowflake.ID, bool) {
		var ids []snowflake.ID
		for _, cp := range p.Array(key) {
			id, ok := cp.ID("id")
			if !ok {
				continue
			}
			guildID, _ := cp.ID("guild_id")
			ch := s.precreateChannel(id, guildID)
			if ch.Partial {
				applyChannel(ch, silent(cp).withPatch())
			}
			ids = append(ids, id)
		}
		return ids, ids != nil
	}, discord.EqualIDs)

	field(up, "message_reference", "message_reference", &m.Reference, nil, func(key string) (*discord.MessageReference, bool) {
		var ref discord.MessageReference
		ok, err := p.DecodeKey(key, &ref)
		if !ok || err != nil {
			return nil, false
		}
		return &ref, true
	}, func(a, b *discord.MessageReference) bool {
		if a == nil || b == nil {
			return a == b
		}
		return *a == *b
	})

	if ref, ok := p.Get("referenced_message"); ok {
		if _, err := s.messageFromData(ref); err != nil {
			log.Debugf("Skipping referenced message of %v: %v", m.ID, err)
		}
	}

	if mp, ok := p.Get("member"); ok && m.GuildID != 0 {
		s.applyMessageMember(m, mp)
	}
}

// applyAuthor sets the author. Webhook authors aren't registered; a message without an author
// gets discord.ZeroUser. The diff records the previous author if its ID or kind changed.
func (s *State) applyAuthor(m *discord.Message, up *updater) {
	p := up.p

	field(up, "author", "author", &m.Author, discord.Author(discord.ZeroUser), func(key string) (discord.Author, bool) {
		ap, ok := p.Get(key)
		if !ok {
			return nil, false
		}

		if webhookID, ok := p.ID("webhook_id"); ok {
			id, _ := ap.ID("id")
			name, _ := ap.String("username")
			avatar, _ := ap.String("avatar")
			return &discord.WebhookAuthor{ID: id, WebhookID: webhookID, Name: name, Avatar: avatar}, true
		}

		u, err := s.userFromData(ap)
		if err != nil {
			log.Debugf("Message %v has an invalid author: %v", m.ID, err)
			return nil, false
		}
		return u, true
	}, func(a, b discord.Author) bool {
		return a.AuthorID() == b.AuthorID() && a.IsWebhook() == b.IsWebhook()
	})
}

// applyMessageMember caches the partial member object sent with guild messages, if the member isn't known yet.
func (s *State) applyMessageMember(m *discord.Message, mp payload.Payload) {
	u, ok := m.Author.(*discord.User)
	if !ok || u == discord.ZeroUser {
		return
	}

	g, ok := s.c.Guild(m.GuildID)
	if !ok {
		return
	}
	if _, ok := g.Members[u.ID]; ok {
		return
	}

	member := &discord.Member{User: u, GuildID: g.ID}
	g.Members[u.ID] = member
	s.applyMember(g, member, silent(mp))
}

func decodeAttachments(arr []payload.Payload) ([]discord.Attachment, bool) {
	if len(arr) == 0 {
		return nil, false
	}

	out := make([]discord.Attachment, 0, len(arr))
	for _, ap := range arr {
		var a discord.Attachment
		if err := ap.Decode(&a); err != nil {
			log.Debugf("Skipping attachment: %v", err)
			continue
		}
		out = append(out, a)
	}
	return out, true
}

func equalAttachments(a, b []discord.Attachment) bool {
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

func decodeReactions(arr []payload.Payload) (discord.Reactions, bool) {
	if len(arr) == 0 {
		return nil, false
	}

	out := make(discord.Reactions, 0, len(arr))
	for _, rp := range arr {
		var e discord.ReactionEmoji
		if _, err := rp.DecodeKey("emoji", &e); err != nil {
			continue
		}
		count, _ := rp.Int("count")
		me, _ := rp.Bool("me")
		out = append(out, discord.Reaction{Emoji: e, Count: int(count), Me: me})
	}
	return out, true
}
