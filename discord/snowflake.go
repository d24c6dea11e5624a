// Package discord contains the entity and value types that make up the cache.
// Nothing in this package looks anything up on its own: references to other entities are stored
// as IDs and resolved through the lookup interfaces in lookup.go.
package discord

import (
	"sort"
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// Identified is embedded in every entity. It provides the ID and everything derived from it.
type Identified struct {
	ID snowflake.ID
}

// Snowflake returns the entity's ID.
func (i Identified) Snowflake() snowflake.ID { return i.ID }

// CreatedAt returns the time encoded in the entity's ID.
func (i Identified) CreatedAt() time.Time { return i.ID.Time() }

// Identifiable is implemented by everything embedding Identified.
type Identifiable interface {
	Snowflake() snowflake.ID
}

// SortByID sorts s by ID, which is also creation order.
func SortByID[T Identifiable](s []T) {
	sort.Slice(s, func(i, j int) bool {
		return s[i].Snowflake() < s[j].Snowflake()
	})
}

// SortIDs sorts ids in place and returns it.
func SortIDs(ids []snowflake.ID) []snowflake.ID {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// EqualIDs returns true if a and b contain the same IDs in the same order.
// A nil slice is equal to an empty one.
func EqualIDs(a, b []snowflake.ID) bool {
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

// UniqueIDs returns ids with duplicates and zero IDs removed, keeping the first occurrence.
func UniqueIDs(ids []snowflake.ID) []snowflake.ID {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[snowflake.ID]struct{}, len(ids))
	out := make([]snowflake.ID, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func idStrings(ids []snowflake.ID) []any {
	out := make([]any, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
