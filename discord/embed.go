package discord

import (
	"time"

	"github.com/starshine-sys/discache/payload"
)

// Embed is an embed stored as its wire mapping. Every accessor reads from or writes to the
// mapping directly; sub-parts are decoded each time they're read.
//
// Embed is cheaper to build than EmbedCore and is what outgoing embeds should be built with.
type Embed struct {
	data payload.Payload
}

// NewEmbed returns an empty embed.
func NewEmbed() *Embed {
	return &Embed{data: payload.New()}
}

// EmbedFromData returns an embed over a copy of p.
func EmbedFromData(p payload.Payload) *Embed {
	return &Embed{data: payload.FromMap(p.Map())}
}

// Core decodes the embed.
func (e *Embed) Core() EmbedCore {
	return EmbedCoreFromData(e.data)
}

// ToData encodes the embed. The result is identical to Core().ToData().
func (e *Embed) ToData() map[string]any {
	return e.Core().ToData()
}

func (e *Embed) str(key string) string {
	s, _ := e.data.String(key)
	return s
}

func (e *Embed) setStr(key, v string) {
	if v == "" {
		e.data.Del(key)
		return
	}
	e.data.Set(key, v)
}

func (e *Embed) Type() string            { return e.str("type") }
func (e *Embed) SetType(v string)        { e.setStr("type", v) }
func (e *Embed) Title() string           { return e.str("title") }
func (e *Embed) SetTitle(v string)       { e.setStr("title", v) }
func (e *Embed) Description() string     { return e.str("description") }
func (e *Embed) SetDescription(v string) { e.setStr("description", v) }
func (e *Embed) URL() string             { return e.str("url") }
func (e *Embed) SetURL(v string)         { e.setStr("url", v) }

func (e *Embed) Color() int {
	c, _ := e.data.Int("color")
	return int(c)
}

// SetColor sets the embed color. 0 removes it.
func (e *Embed) SetColor(c int) {
	if c == 0 {
		e.data.Del("color")
		return
	}
	e.data.Set("color", c)
}

func (e *Embed) Timestamp() time.Time {
	t, _ := e.data.Time("timestamp")
	return t
}

// SetTimestamp sets the embed timestamp. The zero time removes it.
func (e *Embed) SetTimestamp(t time.Time) {
	if t.IsZero() {
		e.data.Del("timestamp")
		return
	}
	e.data.Set("timestamp", t.UTC().Format(time.RFC3339Nano))
}

func (e *Embed) setPart(key string, data map[string]any) {
	if len(data) == 0 {
		e.data.Del(key)
		return
	}
	e.data.Set(key, data)
}

func (e *Embed) Footer() *EmbedFooter { return decodePart[EmbedFooter](e.data, "footer") }

// SetFooter sets the footer. nil removes it.
func (e *Embed) SetFooter(f *EmbedFooter) {
	if f == nil {
		e.data.Del("footer")
		return
	}
	e.setPart("footer", f.ToData())
}

func (e *Embed) Image() *EmbedImage { return decodePart[EmbedImage](e.data, "image") }

func (e *Embed) SetImage(i *EmbedImage) {
	if i == nil {
		e.data.Del("image")
		return
	}
	e.setPart("image", i.ToData())
}

func (e *Embed) Thumbnail() *EmbedThumbnail { return decodePart[EmbedThumbnail](e.data, "thumbnail") }

func (e *Embed) SetThumbnail(t *EmbedThumbnail) {
	if t == nil {
		e.data.Del("thumbnail")
		return
	}
	e.setPart("thumbnail", t.ToData())
}

func (e *Embed) Video() *EmbedVideo { return decodePart[EmbedVideo](e.data, "video") }

func (e *Embed) SetVideo(v *EmbedVideo) {
	if v == nil {
		e.data.Del("video")
		return
	}
	e.setPart("video", v.ToData())
}

func (e *Embed) Provider() *EmbedProvider { return decodePart[EmbedProvider](e.data, "provider") }

func (e *Embed) SetProvider(p *EmbedProvider) {
	if p == nil {
		e.data.Del("provider")
		return
	}
	e.setPart("provider", p.ToData())
}

func (e *Embed) Author() *EmbedAuthor { return decodePart[EmbedAuthor](e.data, "author") }

func (e *Embed) SetAuthor(a *EmbedAuthor) {
	if a == nil {
		e.data.Del("author")
		return
	}
	e.setPart("author", a.ToData())
}

func (e *Embed) Fields() []EmbedField { return decodeFields(e.data) }

// AddField appends a field.
func (e *Embed) AddField(name, value string, inline bool) {
	e.SetFields(append(e.Fields(), EmbedField{Name: name, Value: value, Inline: inline}))
}

// SetFields replaces every field. An empty slice removes them.
func (e *Embed) SetFields(fields []EmbedField) {
	if len(fields) == 0 {
		e.data.Del("fields")
		return
	}

	arr := make([]any, 0, len(fields))
	for _, f := range fields {
		arr = append(arr, f.ToData())
	}
	e.data.Set("fields", arr)
}

// Equal compares e to either embed representation.
func (e *Embed) Equal(other EmbedBase) bool {
	if other == nil {
		return false
	}
	return e.Core().Equal(other.Core())
}
