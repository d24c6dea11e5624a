package discord

import "github.com/starshine-sys/discache/payload"

// The embed parts are small value types. They are decoded from payloads by their json tags,
// and compared with ==.

type EmbedFooter struct {
	Text         string `json:"text"`
	IconURL      string `json:"icon_url"`
	ProxyIconURL string `json:"proxy_icon_url"`
}

func (f EmbedFooter) ToData() map[string]any {
	m := map[string]any{}
	putString(m, "text", f.Text)
	putString(m, "icon_url", f.IconURL)
	putString(m, "proxy_icon_url", f.ProxyIconURL)
	return m
}

type EmbedImage struct {
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

func (i EmbedImage) ToData() map[string]any {
	m := map[string]any{}
	putString(m, "url", i.URL)
	putString(m, "proxy_url", i.ProxyURL)
	putInt(m, "height", i.Height)
	putInt(m, "width", i.Width)
	return m
}

type EmbedThumbnail struct {
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

func (t EmbedThumbnail) ToData() map[string]any {
	return EmbedImage(t).ToData()
}

type EmbedVideo struct {
	URL      string `json:"url"`
	ProxyURL string `json:"proxy_url"`
	Height   int    `json:"height"`
	Width    int    `json:"width"`
}

func (v EmbedVideo) ToData() map[string]any {
	return EmbedImage(v).ToData()
}

type EmbedProvider struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (p EmbedProvider) ToData() map[string]any {
	m := map[string]any{}
	putString(m, "name", p.Name)
	putString(m, "url", p.URL)
	return m
}

type EmbedAuthor struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	IconURL      string `json:"icon_url"`
	ProxyIconURL string `json:"proxy_icon_url"`
}

func (a EmbedAuthor) ToData() map[string]any {
	m := map[string]any{}
	putString(m, "name", a.Name)
	putString(m, "url", a.URL)
	putString(m, "icon_url", a.IconURL)
	putString(m, "proxy_icon_url", a.ProxyIconURL)
	return m
}

// EmbedField is a single named field. Name and value are always written, even if empty.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

func (f EmbedField) ToData() map[string]any {
	m := map[string]any{
		"name":  f.Name,
		"value": f.Value,
	}
	putBool(m, "inline", f.Inline)
	return m
}

// decodePart decodes the object at key. A part that is absent, null, malformed, or empty is nil.
func decodePart[T comparable](p payload.Payload, key string) *T {
	var v T
	ok, err := p.DecodeKey(key, &v)
	if !ok || err != nil {
		return nil
	}

	var zero T
	if v == zero {
		return nil
	}
	return &v
}

func decodeFields(p payload.Payload) []EmbedField {
	arr := p.Array("fields")
	if len(arr) == 0 {
		return nil
	}

	fields := make([]EmbedField, 0, len(arr))
	for _, el := range arr {
		var f EmbedField
		if err := el.Decode(&f); err != nil {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// equalPart compares two optional parts. nil is equal to a pointer to the zero value.
func equalPart[T comparable](a, b *T) bool {
	var zero T
	av, bv := zero, zero
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}
