package state

import (
	"sort"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/payload"
)

// updater applies one payload to one entity. Both update forms go through it:
// with a nil diff it's the silent form, otherwise every change is recorded as name -> old value
// before the field is overwritten.
//
// In full mode, a key that's absent resolves to the field's default, exactly like an explicit null.
// In patch mode (partial payloads such as MESSAGE_UPDATE) an absent key leaves the field untouched,
// while an explicit null still resets it.
type updater struct {
	p     payload.Payload
	diff  discord.Diff
	patch bool
}

func silent(p payload.Payload) *updater {
	return &updater{p: p}
}

func diffing(p payload.Payload) *updater {
	return &updater{p: p, diff: discord.Diff{}}
}

func (u *updater) withPatch() *updater {
	u.patch = true
	return u
}

// sub returns an updater for a nested object with the same mode, that records into the same diff.
func (u *updater) sub(p payload.Payload) *updater {
	return &updater{p: p, diff: u.diff, patch: u.patch}
}

func (u *updater) record(name string, old any) {
	if u.diff != nil {
		u.diff[name] = old
	}
}

// skip returns true if key should leave its field untouched.
func (u *updater) skip(key string) bool {
	return u.patch && !u.p.Has(key)
}

func field[T any](u *updater, key, name string, dst *T, def T, get func(string) (T, bool), eq func(a, b T) bool) {
	if u.skip(key) {
		return
	}

	v, ok := get(key)
	if !ok {
		v = def
	}

	if !eq(*dst, v) {
		u.record(name, *dst)
		*dst = v
	}
}

func eq[T comparable](a, b T) bool { return a == b }

func (u *updater) setString(key, name string, dst *string) {
	field(u, key, name, dst, "", u.p.String, eq[string])
}

func (u *updater) setBool(key, name string, dst *bool, def bool) {
	field(u, key, name, dst, def, u.p.Bool, eq[bool])
}

func (u *updater) setInt(key, name string, dst *int) {
	field(u, key, name, dst, 0, func(key string) (int, bool) {
		i, ok := u.p.Int(key)
		return int(i), ok
	}, eq[int])
}

func (u *updater) setUint(key, name string, dst *uint64) {
	field(u, key, name, dst, 0, u.p.Uint, eq[uint64])
}

// setEnum is setInt for named integer types.
func setEnum[T ~int](u *updater, key, name string, dst *T) {
	field(u, key, name, dst, 0, func(key string) (T, bool) {
		i, ok := u.p.Int(key)
		return T(i), ok
	}, eq[T])
}

// setFlags is setUint for named bitfield types.
func setFlags[T ~uint64](u *updater, key, name string, dst *T) {
	field(u, key, name, dst, 0, func(key string) (T, bool) {
		f, ok := u.p.Uint(key)
		return T(f), ok
	}, eq[T])
}

func (u *updater) setID(key, name string, dst *snowflake.ID) {
	field(u, key, name, dst, 0, u.p.ID, eq[snowflake.ID])
}

// setTime replaces a timestamp. An unset old value is recorded as nil, not as the zero time.
func (u *updater) setTime(key, name string, dst *time.Time) {
	old := *dst
	field(u, key, name, dst, time.Time{}, u.p.Time, func(a, b time.Time) bool { return a.Equal(b) })
	if old.IsZero() && u.diff != nil && u.diff.Changed(name) {
		u.diff[name] = nil
	}
}

// setIDs replaces a list of IDs. IDs for which keep returns false are dropped, and the result is sorted.
// keep may be nil.
func (u *updater) setIDs(key, name string, dst *[]snowflake.ID, keep func(snowflake.ID) bool) {
	field(u, key, name, dst, nil, func(key string) ([]snowflake.ID, bool) {
		if !u.p.Has(key) || u.p.Null(key) {
			return nil, false
		}

		var out []snowflake.ID
		for _, id := range u.p.IDs(key) {
			if keep != nil && !keep(id) {
				continue
			}
			out = append(out, id)
		}
		return discord.SortIDs(discord.UniqueIDs(out)), true
	}, discord.EqualIDs)
}

// setStrings replaces a list of strings, sorted.
func (u *updater) setStrings(key, name string, dst *[]string) {
	field(u, key, name, dst, nil, func(key string) ([]string, bool) {
		s := u.p.Strings(key)
		if len(s) == 0 {
			return nil, false
		}
		sort.Strings(s)
		return s, true
	}, func(a, b []string) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	})
}

// result returns the diff, or an empty one for the silent form.
func (u *updater) result() discord.Diff {
	if u.diff == nil {
		return discord.Diff{}
	}
	return u.diff
}
