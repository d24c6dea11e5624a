package state_test

import (
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/payload"
	"github.com/starshine-sys/discache/state"
	"github.com/starshine-sys/discache/store/memory"
)

const clientID snowflake.ID = 42

func newState(t *testing.T, opts ...state.Option) (*state.State, *memory.Store) {
	t.Helper()

	mem := memory.New()
	t.Cleanup(func() { _ = mem.Close() })
	return state.New(mem, opts...), mem
}

func p(s string) payload.Payload {
	return payload.MustParse(s)
}

const testGuild = `{
	"id": "1",
	"name": "Test guild",
	"owner_id": "10",
	"system_channel_id": "100",
	"system_channel_flags": 4,
	"features": ["NEWS", "COMMUNITY"],
	"member_count": 2,
	"joined_at": "2022-01-01T00:00:00+00:00",
	"roles": [
		{"id": "1", "name": "@everyone", "position": 0, "permissions": "1024"},
		{"id": "2", "name": "Mod", "position": 1, "permissions": "8", "color": 255}
	],
	"emojis": [
		{"id": "300", "name": "blob", "roles": ["2", "999"], "user": {"id": "10", "username": "owner"}}
	],
	"channels": [
		{"id": "100", "type": 0, "name": "general", "position": 0},
		{"id": "101", "type": 0, "name": "random", "position": 1, "permission_overwrites": [
			{"id": "2", "type": 0, "allow": "1024", "deny": "0"}
		]}
	],
	"members": [
		{"user": {"id": "10", "username": "owner"}, "roles": ["2"], "joined_at": "2022-01-01T00:00:00+00:00"},
		{"user": {"id": "11", "username": "member"}, "nick": "nick", "roles": ["3"]}
	]
}`
