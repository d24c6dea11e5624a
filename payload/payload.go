// Package payload provides a typed view over a single decoded JSON object, as received from the
// Discord gateway or REST API.
//
// Discord distinguishes between a key being absent and a key being present with a null value,
// so every accessor reports whether it found a usable value, and Has/Null can be used to tell
// the two cases apart.
package payload

import (
	"encoding/json"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/bitly/go-simplejson"
	"github.com/disgoorg/snowflake/v2"
)

const ErrMissingField = errors.Sentinel("required field missing from payload")

// Payload is a view over a JSON object. The zero value is an empty payload.
type Payload struct {
	js *simplejson.Json
}

// New returns an empty payload that can be written to with Set.
func New() Payload {
	return Payload{js: simplejson.New()}
}

// Parse parses a JSON object. Numbers are kept as json.Number.
func Parse(b []byte) (Payload, error) {
	js, err := simplejson.NewJson(b)
	if err != nil {
		return Payload{}, errors.Wrap(err, "parsing payload")
	}
	return Payload{js: js}, nil
}

// MustParse is like Parse but panics on error. Only use it with constant input.
func MustParse(s string) Payload {
	p, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return p
}

// FromMap returns a payload over a shallow copy of m.
func FromMap(m map[string]any) Payload {
	p := New()
	for k, v := range m {
		p.js.Set(k, v)
	}
	return p
}

func (p Payload) lookup(key string) (*simplejson.Json, bool) {
	if p.js == nil {
		return nil, false
	}
	return p.js.CheckGet(key)
}

// IsZero returns true if the payload has no underlying object.
func (p Payload) IsZero() bool {
	if p.js == nil {
		return true
	}
	_, err := p.js.Map()
	return err != nil
}

// Has returns true if key is present, even if its value is null.
func (p Payload) Has(key string) bool {
	_, ok := p.lookup(key)
	return ok
}

// Null returns true if key is present and explicitly null.
func (p Payload) Null(key string) bool {
	v, ok := p.lookup(key)
	return ok && v.Interface() == nil
}

// Value returns the raw value at key.
func (p Payload) Value(key string) (any, bool) {
	v, ok := p.lookup(key)
	if !ok || v.Interface() == nil {
		return nil, false
	}
	return v.Interface(), true
}

// Get returns the object at key. ok is false if the key is absent, null, or not an object.
func (p Payload) Get(key string) (sub Payload, ok bool) {
	v, ok := p.lookup(key)
	if !ok {
		return sub, false
	}
	if _, err := v.Map(); err != nil {
		return sub, false
	}
	return Payload{js: v}, true
}

// Array returns every object in the array at key. Elements that aren't objects are skipped.
func (p Payload) Array(key string) []Payload {
	v, ok := p.lookup(key)
	if !ok {
		return nil
	}

	arr, err := v.Array()
	if err != nil {
		return nil
	}

	out := make([]Payload, 0, len(arr))
	for i := range arr {
		el := v.GetIndex(i)
		if _, err := el.Map(); err != nil {
			continue
		}
		out = append(out, Payload{js: el})
	}
	return out
}

// String returns the string at key.
func (p Payload) String(key string) (string, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false
	}
	s, err := v.String()
	return s, err == nil
}

// Int returns the integer at key. Numeric strings are accepted, as Discord encodes some
// integers (permissions, for example) as strings.
func (p Payload) Int(key string) (int64, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, false
	}

	if s, err := v.String(); err == nil {
		i, err := strconv.ParseInt(s, 10, 64)
		return i, err == nil
	}

	i, err := v.Int64()
	return i, err == nil
}

// Uint returns the unsigned integer at key. Numeric strings are accepted.
func (p Payload) Uint(key string) (uint64, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, false
	}

	if s, err := v.String(); err == nil {
		u, err := strconv.ParseUint(s, 10, 64)
		return u, err == nil
	}

	u, err := v.Uint64()
	return u, err == nil
}

// Float returns the number at key.
func (p Payload) Float(key string) (float64, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, false
	}
	f, err := v.Float64()
	return f, err == nil
}

// Bool returns the boolean at key.
func (p Payload) Bool(key string) (bool, bool) {
	v, ok := p.lookup(key)
	if !ok {
		return false, false
	}
	b, err := v.Bool()
	return b, err == nil
}

// ID returns the snowflake at key. Both string and numeric encodings are accepted.
func (p Payload) ID(key string) (snowflake.ID, bool) {
	v, ok := p.Value(key)
	if !ok {
		return 0, false
	}
	return toID(v)
}

// RequireID is like ID, but returns an error wrapping ErrMissingField if the key is absent or invalid.
func (p Payload) RequireID(key string) (snowflake.ID, error) {
	id, ok := p.ID(key)
	if !ok || id == 0 {
		return 0, errors.WithMessagef(ErrMissingField, "field %q", key)
	}
	return id, nil
}

// IDs returns every valid snowflake in the array at key, in payload order.
func (p Payload) IDs(key string) []snowflake.ID {
	v, ok := p.lookup(key)
	if !ok {
		return nil
	}

	arr, err := v.Array()
	if err != nil {
		return nil
	}

	ids := make([]snowflake.ID, 0, len(arr))
	for _, el := range arr {
		if id, ok := toID(el); ok && id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Strings returns every string in the array at key.
func (p Payload) Strings(key string) []string {
	v, ok := p.lookup(key)
	if !ok {
		return nil
	}

	arr, err := v.Array()
	if err != nil {
		return nil
	}

	out := make([]string, 0, len(arr))
	for _, el := range arr {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Time returns the ISO8601 timestamp at key, in UTC.
func (p Payload) Time(key string) (time.Time, bool) {
	s, ok := p.String(key)
	if !ok || s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Set sets key to v. Setting on a zero payload initialises it.
func (p *Payload) Set(key string, v any) {
	if p.js == nil {
		p.js = simplejson.New()
	}
	p.js.Set(key, v)
}

// Del removes key.
func (p Payload) Del(key string) {
	if p.js == nil {
		return
	}
	p.js.Del(key)
}

// Map returns the underlying object. It is not a copy.
func (p Payload) Map() map[string]any {
	if p.js == nil {
		return nil
	}
	m, err := p.js.Map()
	if err != nil {
		return nil
	}
	return m
}

// Keys returns the keys present in the payload, in no particular order.
func (p Payload) Keys() []string {
	m := p.Map()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (p Payload) MarshalJSON() ([]byte, error) {
	if p.js == nil {
		return []byte("{}"), nil
	}
	return p.js.MarshalJSON()
}

func (p *Payload) UnmarshalJSON(b []byte) error {
	js := &simplejson.Json{}
	if err := js.UnmarshalJSON(b); err != nil {
		return err
	}
	p.js = js
	return nil
}

func toID(v any) (snowflake.ID, bool) {
	switch v := v.(type) {
	case snowflake.ID:
		return v, true
	case string:
		id, err := snowflake.Parse(v)
		return id, err == nil
	case json.Number:
		id, err := snowflake.Parse(v.String())
		return id, err == nil
	case float64:
		return snowflake.ID(v), v >= 0
	case int:
		return snowflake.ID(v), v >= 0
	case int64:
		return snowflake.ID(v), v >= 0
	case uint64:
		return snowflake.ID(v), true
	}
	return 0, false
}
