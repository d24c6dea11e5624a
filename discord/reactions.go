package discord

import (
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// ReactionEmoji is the emoji of a reaction: a custom emoji if ID is set, a unicode emoji otherwise.
type ReactionEmoji struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Animated bool         `json:"animated"`
}

// Same returns true if e and other are the same emoji.
// Custom emojis are compared by ID, as their name can change.
func (e ReactionEmoji) Same(other ReactionEmoji) bool {
	if e.ID != 0 || other.ID != 0 {
		return e.ID == other.ID
	}
	return e.Name == other.Name
}

// APIString returns the emoji in the format used in reaction endpoints.
func (e ReactionEmoji) APIString() string {
	if e.ID == 0 {
		return e.Name
	}
	return fmt.Sprintf("%v:%v", e.Name, e.ID)
}

func (e ReactionEmoji) ToData() map[string]any {
	m := map[string]any{"name": e.Name}
	if e.ID != 0 {
		m["id"] = e.ID.String()
	} else {
		m["id"] = nil
	}
	putBool(m, "animated", e.Animated)
	return m
}

// Reaction is the count of one emoji on a message.
type Reaction struct {
	Emoji ReactionEmoji
	Count int
	// Me is true if the current user reacted with this emoji.
	Me bool
}

func (r Reaction) ToData() map[string]any {
	return map[string]any{
		"emoji": r.Emoji.ToData(),
		"count": r.Count,
		"me":    r.Me,
	}
}

// Reactions is a message's reactions, in the order they were first added.
type Reactions []Reaction

func (rs Reactions) index(e ReactionEmoji) int {
	for i := range rs {
		if rs[i].Emoji.Same(e) {
			return i
		}
	}
	return -1
}

// Count returns the number of reactions with the given emoji.
func (rs Reactions) Count(e ReactionEmoji) int {
	if i := rs.index(e); i != -1 {
		return rs[i].Count
	}
	return 0
}

// Total returns the number of reactions with any emoji.
func (rs Reactions) Total() (n int) {
	for _, r := range rs {
		n += r.Count
	}
	return n
}

// Add adds one reaction with the given emoji.
func (rs *Reactions) Add(e ReactionEmoji, me bool) {
	if i := rs.index(e); i != -1 {
		(*rs)[i].Count++
		(*rs)[i].Me = (*rs)[i].Me || me
		return
	}
	*rs = append(*rs, Reaction{Emoji: e, Count: 1, Me: me})
}

// Remove removes one reaction with the given emoji. The emoji is removed entirely when its
// count reaches zero. Removing an emoji that isn't present does nothing.
func (rs *Reactions) Remove(e ReactionEmoji, me bool) {
	i := rs.index(e)
	if i == -1 {
		return
	}

	r := &(*rs)[i]
	r.Count--
	if me {
		r.Me = false
	}
	if r.Count <= 0 {
		*rs = append((*rs)[:i], (*rs)[i+1:]...)
	}
}

// RemoveEmoji removes every reaction with the given emoji.
func (rs *Reactions) RemoveEmoji(e ReactionEmoji) {
	if i := rs.index(e); i != -1 {
		*rs = append((*rs)[:i], (*rs)[i+1:]...)
	}
}

// Clear removes every reaction.
func (rs *Reactions) Clear() {
	*rs = nil
}

// Clone returns a copy of rs.
func (rs Reactions) Clone() Reactions {
	if len(rs) == 0 {
		return nil
	}
	return append(Reactions(nil), rs...)
}

// Equal compares rs and other in order.
func (rs Reactions) Equal(other Reactions) bool {
	if len(rs) != len(other) {
		return false
	}
	for i := range rs {
		if rs[i] != other[i] {
			return false
		}
	}
	return true
}

func (rs Reactions) ToData() []any {
	out := make([]any, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ToData())
	}
	return out
}
