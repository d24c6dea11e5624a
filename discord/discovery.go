package discord

import (
	"sort"

	"github.com/disgoorg/snowflake/v2"
)

// GuildDiscovery is a guild's discovery metadata.
type GuildDiscovery struct {
	GuildID           snowflake.ID `json:"guild_id"`
	PrimaryCategoryID int          `json:"primary_category_id"`
	// SubCategories is sorted.
	SubCategories  []int    `json:"category_ids"`
	EmojiDiscovery bool     `json:"emoji_discoverability_enabled"`
	Keywords       []string `json:"keywords"`
}

// Normalize sorts the sub categories and keywords, so that Equal and ToData are stable.
func (d *GuildDiscovery) Normalize() {
	sort.Ints(d.SubCategories)
	sort.Strings(d.Keywords)
}

// Equal compares the primary category, sub categories, emoji discovery, and keywords.
// The guild ID isn't compared.
func (d *GuildDiscovery) Equal(other *GuildDiscovery) bool {
	if d == nil || other == nil {
		return d == other
	}

	if d.PrimaryCategoryID != other.PrimaryCategoryID || d.EmojiDiscovery != other.EmojiDiscovery {
		return false
	}

	if len(d.SubCategories) != len(other.SubCategories) {
		return false
	}
	for i := range d.SubCategories {
		if d.SubCategories[i] != other.SubCategories[i] {
			return false
		}
	}

	return equalStrings(d.Keywords, other.Keywords)
}

func (d *GuildDiscovery) ToData() map[string]any {
	m := map[string]any{
		"primary_category_id": d.PrimaryCategoryID,
	}
	putID(m, "guild_id", d.GuildID)
	putBool(m, "emoji_discoverability_enabled", d.EmojiDiscovery)
	putStrings(m, "keywords", d.Keywords)
	if len(d.SubCategories) != 0 {
		cats := make([]any, 0, len(d.SubCategories))
		for _, c := range d.SubCategories {
			cats = append(cats, c)
		}
		m["category_ids"] = cats
	}
	return m
}
