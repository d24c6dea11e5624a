package discord

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// Author is anything that can be shown as the author of a message:
// a registered *User, a *WebhookAuthor, or ZeroUser.
type Author interface {
	AuthorID() snowflake.ID
	DisplayName() string
	IsWebhook() bool
	ToData() map[string]any
}

// User is a Discord user. Users are shared between every guild they are in;
// per-guild data lives in Member.
type User struct {
	Identified

	Name          string
	Discriminator string
	GlobalName    string
	Avatar        string
	Banner        string
	AccentColor   int
	Bot           bool
	System        bool
	PublicFlags   uint64

	// Partial is true until a full user object has been applied.
	Partial bool
}

// ZeroUser is the author of messages whose payload has no author.
// It is never registered and must not be modified.
var ZeroUser = &User{Partial: true}

// NewUser returns a partial user with only its ID set.
func NewUser(id snowflake.ID) *User {
	return &User{
		Identified: Identified{ID: id},
		Partial:    true,
	}
}

func (u *User) AuthorID() snowflake.ID { return u.ID }
func (u *User) IsWebhook() bool        { return false }

// DisplayName returns the user's global name if set, their username otherwise.
func (u *User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Name
}

// Tag returns the user's name in name#discriminator format,
// or just the name for users that have migrated to unique usernames.
func (u *User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Name
	}
	return u.Name + "#" + u.Discriminator
}

func (u *User) Mention() string {
	return fmt.Sprintf("<@%v>", u.ID)
}

// Equal compares every field of u and other except partiality.
func (u *User) Equal(other *User) bool {
	a, b := *u, *other
	a.Partial, b.Partial = false, false
	return a == b
}

func (u *User) ToData() map[string]any {
	m := map[string]any{
		"id":       u.ID.String(),
		"username": u.Name,
	}
	putString(m, "discriminator", u.Discriminator)
	putString(m, "global_name", u.GlobalName)
	putString(m, "avatar", u.Avatar)
	putString(m, "banner", u.Banner)
	putInt(m, "accent_color", u.AccentColor)
	putBool(m, "bot", u.Bot)
	putBool(m, "system", u.System)
	if u.PublicFlags != 0 {
		m["public_flags"] = u.PublicFlags
	}
	return m
}

// WebhookAuthor is the author of a message sent through a webhook.
// Webhook authors aren't registered: each message carries its own.
type WebhookAuthor struct {
	ID        snowflake.ID
	WebhookID snowflake.ID
	Name      string
	Avatar    string
}

func (w *WebhookAuthor) AuthorID() snowflake.ID { return w.ID }
func (w *WebhookAuthor) DisplayName() string    { return w.Name }
func (w *WebhookAuthor) IsWebhook() bool        { return true }

func (w *WebhookAuthor) ToData() map[string]any {
	m := map[string]any{
		"id":            w.ID.String(),
		"username":      w.Name,
		"discriminator": "0000",
	}
	putString(m, "avatar", w.Avatar)
	return m
}
