package state_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/payload"
	"github.com/starshine-sys/discache/state"
	"github.com/starshine-sys/discache/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// archive stores guilds as JSON, like the redis archive does.
type archive struct {
	mu     sync.Mutex
	guilds map[snowflake.ID][]byte
}

var _ store.Archive = (*archive)(nil)

func newArchive() *archive {
	return &archive{guilds: map[snowflake.ID][]byte{}}
}

func (a *archive) ArchiveGuild(_ context.Context, id snowflake.ID, data map[string]any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.guilds[id] = b
	return nil
}

func (a *archive) ArchivedGuild(_ context.Context, id snowflake.ID) (payload.Payload, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, ok := a.guilds[id]
	if !ok {
		return payload.Payload{}, store.ErrNotFound
	}
	return payload.Parse(b)
}

func (a *archive) ArchivedGuildIDs(context.Context) ([]snowflake.ID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make([]snowflake.ID, 0, len(a.guilds))
	for id := range a.guilds {
		ids = append(ids, id)
	}
	return ids, nil
}

func (a *archive) RemoveArchivedGuild(_ context.Context, id snowflake.ID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.guilds, id)
	return nil
}

func TestArchiveWithoutArchive(t *testing.T) {
	s, _ := newState(t)

	_, err := s.Archive(context.Background())
	assert.ErrorIs(t, err, state.ErrNoArchive)
	_, err = s.Warm(context.Background())
	assert.ErrorIs(t, err, state.ErrNoArchive)
}

func TestArchiveAndWarm(t *testing.T) {
	ctx := context.Background()
	a := newArchive()
	// a guild that's no longer cached is removed from the archive
	a.guilds[999] = []byte(`{"id": "999", "name": "stale"}`)

	s, _ := newState(t, state.WithArchive(a))
	orig, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)
	// partial guilds aren't archived
	s.PrecreateGuild(2, "partial")

	n, err := s.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ids, err := a.ArchivedGuildIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []snowflake.ID{1}, ids)

	warm, mem := newState(t, state.WithArchive(a))
	n, err = warm.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	g, ok := mem.Guild(1)
	require.True(t, ok)
	assert.True(t, g.Partial())
	assert.Equal(t, orig.Name, g.Name)
	assert.Equal(t, orig.Features, g.Features)
	assert.Equal(t, orig.SystemChannelFlags, g.SystemChannelFlags)
	assert.Equal(t, orig.RoleSnapshot(), g.RoleSnapshot())
	assert.Equal(t, orig.ChannelSnapshot(), g.ChannelSnapshot())
	assert.Equal(t, orig.EmojiSnapshot(), g.EmojiSnapshot())
	assert.Len(t, g.Members, 2)

	// warming again doesn't touch cached guilds
	n, err = warm.Warm(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	// the next GUILD_CREATE completes the warmed guild in place
	g2, err := warm.GuildFromData(p(`{"id": "1", "name": "fresh"}`), clientID)
	require.NoError(t, err)
	assert.Same(t, g, g2)
	assert.False(t, g.Partial())
	assert.Equal(t, "fresh", g.Name)
	assert.Equal(t, []snowflake.ID{clientID}, g.Clients)
}

func TestArchiveDuringOutage(t *testing.T) {
	ctx := context.Background()
	a := newArchive()

	s, _ := newState(t, state.WithArchive(a))
	orig, err := s.GuildFromData(p(testGuild), clientID)
	require.NoError(t, err)
	_, _, err = s.GuildDelete(p(`{"id": "1", "unavailable": true}`), clientID)
	require.NoError(t, err)
	require.False(t, orig.Available)

	n, err := s.Archive(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	warm, mem := newState(t, state.WithArchive(a))
	n, err = warm.Warm(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	g, ok := mem.Guild(1)
	require.True(t, ok)
	assert.Equal(t, orig.Name, g.Name)
	assert.Len(t, g.RoleSnapshot(), 2)
	assert.Len(t, g.ChannelSnapshot(), 2)
	assert.Len(t, g.Members, 2)
}
