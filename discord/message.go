package discord

import (
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

type MessageType int

const (
	DefaultMessage       MessageType = 0
	RecipientAddMessage  MessageType = 1
	ChannelPinnedMessage MessageType = 6
	GuildMemberJoin      MessageType = 7
	ThreadCreatedMessage MessageType = 18
	InlinedReplyMessage  MessageType = 19
	ChatInputCommand     MessageType = 20
	ContextMenuCommand   MessageType = 23
)

type MessageFlags uint64

const (
	CrosspostedMessage MessageFlags = 1 << iota
	MessageIsCrosspost
	SuppressEmbeds
	SourceMessageDeleted
	UrgentMessage
	MessageHasThread
	EphemeralMessage
	MessageLoading
)

func (f MessageFlags) Has(flag MessageFlags) bool { return f&flag == flag }

// Attachment is a file attached to a message.
type Attachment struct {
	ID          snowflake.ID `json:"id"`
	Filename    string       `json:"filename"`
	Description string       `json:"description"`
	ContentType string       `json:"content_type"`
	Size        int          `json:"size"`
	URL         string       `json:"url"`
	ProxyURL    string       `json:"proxy_url"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Ephemeral   bool         `json:"ephemeral"`
}

func (a Attachment) ToData() map[string]any {
	m := map[string]any{
		"id":       a.ID.String(),
		"filename": a.Filename,
		"size":     a.Size,
		"url":      a.URL,
	}
	putString(m, "description", a.Description)
	putString(m, "content_type", a.ContentType)
	putString(m, "proxy_url", a.ProxyURL)
	putInt(m, "height", a.Height)
	putInt(m, "width", a.Width)
	putBool(m, "ephemeral", a.Ephemeral)
	return m
}

// MessageReference points to the message a reply or crosspost refers to.
// It holds IDs only; the message itself is resolved through a MessageLookup.
type MessageReference struct {
	MessageID       snowflake.ID `json:"message_id"`
	ChannelID       snowflake.ID `json:"channel_id"`
	GuildID         snowflake.ID `json:"guild_id"`
	FailIfNotExists bool         `json:"fail_if_not_exists"`
}

func (r MessageReference) ToData() map[string]any {
	m := map[string]any{}
	putID(m, "message_id", r.MessageID)
	putID(m, "channel_id", r.ChannelID)
	putID(m, "guild_id", r.GuildID)
	putBool(m, "fail_if_not_exists", r.FailIfNotExists)
	return m
}

// Message is a message in a channel.
//
// Messages must not be copied after they're registered.
type Message struct {
	Identified

	ChannelID snowflake.ID
	GuildID   snowflake.ID
	// Author is never nil: it's a *User, a *WebhookAuthor, or ZeroUser.
	Author Author

	Content string
	// Edited is the zero time if the message was never edited.
	Edited          time.Time
	TTS             bool
	MentionEveryone bool
	Pinned          bool
	Type            MessageType
	Flags           MessageFlags
	WebhookID       snowflake.ID
	ApplicationID   snowflake.ID

	Embeds      []EmbedCore
	Attachments []Attachment
	Reactions   Reactions

	MentionIDs        []snowflake.ID
	MentionRoleIDs    []snowflake.ID
	MentionChannelIDs []snowflake.ID

	Reference *MessageReference

	Partial bool

	mentions mentionCache
}

type mentionCache struct {
	mu       sync.Mutex
	parsed   bool
	content  string
	channels []snowflake.ID
}

// NewMessage returns a partial message.
func NewMessage(id, channelID snowflake.ID) *Message {
	return &Message{
		Identified: Identified{ID: id},
		ChannelID:  channelID,
		Author:     ZeroUser,
		Partial:    true,
	}
}

// URL returns the message's jump link.
func (m *Message) URL() string {
	guild := "@me"
	if m.GuildID != 0 {
		guild = m.GuildID.String()
	}
	return fmt.Sprintf("https://discord.com/channels/%v/%v/%v", guild, m.ChannelID, m.ID)
}

// Timestamp returns the time the message was sent.
func (m *Message) Timestamp() time.Time {
	return m.CreatedAt()
}

// IsEdited returns true if the message has been edited.
func (m *Message) IsEdited() bool {
	return !m.Edited.IsZero()
}

func (m *Message) Channel(channels ChannelLookup) (*Channel, bool) {
	return channels.Channel(m.ChannelID)
}

// ReferencedMessage resolves the message this message refers to.
// It returns false if there's no reference or the message isn't cached.
func (m *Message) ReferencedMessage(messages MessageLookup) (*Message, bool) {
	if m.Reference == nil || m.Reference.MessageID == 0 {
		return nil, false
	}
	return messages.Message(m.Reference.MessageID)
}

// UserMentions resolves the mentioned users. Unknown users are skipped.
func (m *Message) UserMentions(users UserLookup) []*User {
	out := make([]*User, 0, len(m.MentionIDs))
	for _, id := range m.MentionIDs {
		if u, ok := users.User(id); ok {
			out = append(out, u)
		}
	}
	return out
}

// RoleMentions resolves the mentioned roles. Roles that don't exist are skipped;
// nil is returned if none of the mentioned roles exist.
func (m *Message) RoleMentions(roles RoleLookup) []*Role {
	var out []*Role
	for _, id := range m.MentionRoleIDs {
		if r, ok := roles.Role(id); ok {
			out = append(out, r)
		}
	}
	return out
}

var channelMentionRe = regexp.MustCompile(`<#(\d{15,20})>`)

// ChannelMentionIDs returns the IDs of every channel mentioned in the message:
// those sent in mention_channels, followed by those mentioned in the content.
// The content is parsed on first call and again only after it changes.
func (m *Message) ChannelMentionIDs() []snowflake.ID {
	c := &m.mentions
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.parsed || c.content != m.Content {
		ids := append([]snowflake.ID(nil), m.MentionChannelIDs...)
		for _, match := range channelMentionRe.FindAllStringSubmatch(m.Content, -1) {
			if id, err := snowflake.Parse(match[1]); err == nil {
				ids = append(ids, id)
			}
		}
		c.channels = UniqueIDs(ids)
		c.content = m.Content
		c.parsed = true
	}
	return c.channels
}

// ChannelMentions resolves the mentioned channels. Unknown channels are skipped.
func (m *Message) ChannelMentions(channels ChannelLookup) []*Channel {
	ids := m.ChannelMentionIDs()
	out := make([]*Channel, 0, len(ids))
	for _, id := range ids {
		if ch, ok := channels.Channel(id); ok {
			out = append(out, ch)
		}
	}
	return out
}

func (m *Message) ToData() map[string]any {
	data := map[string]any{
		"id":               m.ID.String(),
		"channel_id":       m.ChannelID.String(),
		"content":          m.Content,
		"author":           m.Author.ToData(),
		"timestamp":        m.CreatedAt().UTC().Format(time.RFC3339Nano),
		"edited_timestamp": nil,
		"tts":              m.TTS,
		"mention_everyone": m.MentionEveryone,
		"pinned":           m.Pinned,
		"type":             int(m.Type),
		"mentions":         idObjects(m.MentionIDs),
		"mention_roles":    idStrings(m.MentionRoleIDs),
	}
	if m.IsEdited() {
		data["edited_timestamp"] = m.Edited.UTC().Format(time.RFC3339Nano)
	}
	putID(data, "guild_id", m.GuildID)
	putID(data, "webhook_id", m.WebhookID)
	putID(data, "application_id", m.ApplicationID)
	if m.Flags != 0 {
		data["flags"] = uint64(m.Flags)
	}

	embeds := make([]any, 0, len(m.Embeds))
	for _, e := range m.Embeds {
		embeds = append(embeds, e.ToData())
	}
	data["embeds"] = embeds

	attachments := make([]any, 0, len(m.Attachments))
	for _, a := range m.Attachments {
		attachments = append(attachments, a.ToData())
	}
	data["attachments"] = attachments

	if len(m.Reactions) != 0 {
		data["reactions"] = m.Reactions.ToData()
	}
	if len(m.MentionChannelIDs) != 0 {
		data["mention_channels"] = idObjects(m.MentionChannelIDs)
	}
	if m.Reference != nil {
		putData(data, "message_reference", m.Reference.ToData())
	}
	return data
}

func idObjects(ids []snowflake.ID) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, map[string]any{"id": id.String()})
	}
	return out
}
