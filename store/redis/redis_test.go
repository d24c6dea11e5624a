package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/store"
	"github.com/starshine-sys/discache/store/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchive(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	ctx := context.Background()
	s, err := redis.New(ctx, url, "discache-test:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	const id snowflake.ID = 1234
	t.Cleanup(func() { _ = s.RemoveArchivedGuild(ctx, id) })

	require.NoError(t, s.ArchiveGuild(ctx, id, map[string]any{"id": id.String(), "name": "archived"}))

	p, err := s.ArchivedGuild(ctx, id)
	require.NoError(t, err)
	name, _ := p.String("name")
	assert.Equal(t, "archived", name)

	ids, err := s.ArchivedGuildIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, ids, id)

	require.NoError(t, s.RemoveArchivedGuild(ctx, id))
	_, err = s.ArchivedGuild(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
