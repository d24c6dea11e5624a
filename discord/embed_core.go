package discord

import (
	"fmt"
	"time"

	"emperror.dev/errors"
	"github.com/starshine-sys/discache/payload"
)

const ErrNotComparable = errors.Sentinel("values are not comparable embeds")

// EmbedBase is implemented by both embed representations.
type EmbedBase interface {
	// Core returns the fully decoded form of the embed.
	Core() EmbedCore
	ToData() map[string]any
}

// EmbedCore is a fully decoded embed. Messages store their embeds in this form.
type EmbedCore struct {
	Type        string
	Title       string
	Description string
	URL         string
	Timestamp   time.Time
	// Color 0 means no color.
	Color int

	Footer    *EmbedFooter
	Image     *EmbedImage
	Thumbnail *EmbedThumbnail
	Video     *EmbedVideo
	Provider  *EmbedProvider
	Author    *EmbedAuthor
	Fields    []EmbedField
}

var _ EmbedBase = EmbedCore{}
var _ EmbedBase = (*Embed)(nil)

// EmbedCoreFromData decodes every part of an embed payload.
// Parts that can't be decoded are left empty.
func EmbedCoreFromData(p payload.Payload) EmbedCore {
	var e EmbedCore
	e.Type, _ = p.String("type")
	e.Title, _ = p.String("title")
	e.Description, _ = p.String("description")
	e.URL, _ = p.String("url")
	e.Timestamp, _ = p.Time("timestamp")
	if c, ok := p.Int("color"); ok {
		e.Color = int(c)
	}

	e.Footer = decodePart[EmbedFooter](p, "footer")
	e.Image = decodePart[EmbedImage](p, "image")
	e.Thumbnail = decodePart[EmbedThumbnail](p, "thumbnail")
	e.Video = decodePart[EmbedVideo](p, "video")
	e.Provider = decodePart[EmbedProvider](p, "provider")
	e.Author = decodePart[EmbedAuthor](p, "author")
	e.Fields = decodeFields(p)
	return e
}

// EmbedsFromData decodes an array of embed objects.
func EmbedsFromData(arr []payload.Payload) []EmbedCore {
	if len(arr) == 0 {
		return nil
	}
	out := make([]EmbedCore, 0, len(arr))
	for _, p := range arr {
		out = append(out, EmbedCoreFromData(p))
	}
	return out
}

func (e EmbedCore) Core() EmbedCore { return e }

// ToData encodes the embed. Empty values are omitted.
func (e EmbedCore) ToData() map[string]any {
	m := map[string]any{}
	putString(m, "type", e.Type)
	putString(m, "title", e.Title)
	putString(m, "description", e.Description)
	putString(m, "url", e.URL)
	putTime(m, "timestamp", e.Timestamp)
	putInt(m, "color", e.Color)

	if e.Footer != nil {
		putData(m, "footer", e.Footer.ToData())
	}
	if e.Image != nil {
		putData(m, "image", e.Image.ToData())
	}
	if e.Thumbnail != nil {
		putData(m, "thumbnail", e.Thumbnail.ToData())
	}
	if e.Video != nil {
		putData(m, "video", e.Video.ToData())
	}
	if e.Provider != nil {
		putData(m, "provider", e.Provider.ToData())
	}
	if e.Author != nil {
		putData(m, "author", e.Author.ToData())
	}

	if len(e.Fields) != 0 {
		fields := make([]any, 0, len(e.Fields))
		for _, f := range e.Fields {
			fields = append(fields, f.ToData())
		}
		m["fields"] = fields
	}
	return m
}

// IsZero returns true if the embed has no content at all.
func (e EmbedCore) IsZero() bool {
	return len(e.ToData()) == 0
}

// Equal compares e and other field by field. Absent parts are equal to empty ones.
func (e EmbedCore) Equal(other EmbedCore) bool {
	if e.Type != other.Type ||
		e.Title != other.Title ||
		e.Description != other.Description ||
		e.URL != other.URL ||
		e.Color != other.Color ||
		!e.Timestamp.Equal(other.Timestamp) {
		return false
	}

	if !equalPart(e.Footer, other.Footer) ||
		!equalPart(e.Image, other.Image) ||
		!equalPart(e.Thumbnail, other.Thumbnail) ||
		!equalPart(e.Video, other.Video) ||
		!equalPart(e.Provider, other.Provider) ||
		!equalPart(e.Author, other.Author) {
		return false
	}

	if len(e.Fields) != len(other.Fields) {
		return false
	}
	for i := range e.Fields {
		if e.Fields[i] != other.Fields[i] {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of e.
func (e EmbedCore) Clone() EmbedCore {
	c := e
	c.Footer = clonePart(e.Footer)
	c.Image = clonePart(e.Image)
	c.Thumbnail = clonePart(e.Thumbnail)
	c.Video = clonePart(e.Video)
	c.Provider = clonePart(e.Provider)
	c.Author = clonePart(e.Author)
	c.Fields = append([]EmbedField(nil), e.Fields...)
	return c
}

func clonePart[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// EqualEmbeds compares two embed lists element by element.
func EqualEmbeds(a, b []EmbedCore) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// EmbedsEqual compares two values of either embed representation.
// If either value isn't an embed, it returns ErrNotComparable rather than false.
func EmbedsEqual(a, b any) (bool, error) {
	ea, ok := asEmbed(a)
	if !ok {
		return false, errors.WithDetails(ErrNotComparable, "type", fmt.Sprintf("%T", a))
	}
	eb, ok := asEmbed(b)
	if !ok {
		return false, errors.WithDetails(ErrNotComparable, "type", fmt.Sprintf("%T", b))
	}
	return ea.Core().Equal(eb.Core()), nil
}

func asEmbed(v any) (EmbedBase, bool) {
	switch v := v.(type) {
	case EmbedCore:
		return v, true
	case *EmbedCore:
		return v, v != nil
	case *Embed:
		return v, v != nil
	}
	return nil, false
}
