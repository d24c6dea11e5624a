package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
[auth]
redis = "localhost:6379"

[bot]
client_id = 42
debug = true

[cache]
message_ttl = "1h30m"
`))
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", c.Auth.Redis)
	assert.Equal(t, snowflake.ID(42), c.Bot.ClientID)
	assert.True(t, c.Bot.Debug)
	assert.Equal(t, 90*time.Minute, time.Duration(c.Cache.MessageTTL))
	// missing keys keep their defaults
	assert.Equal(t, 10000, c.Cache.MessageLimit)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`[cache]
message_ttl = "soon"`))
	assert.Error(t, err)
}

func TestRead(t *testing.T) {
	t.Setenv("REDIS", "")
	t.Setenv("SENTRY_DSN", "")
	t.Setenv("DEBUG_LOGGING", "")
	t.Setenv("CLIENT_ID", "")

	path := filepath.Join(t.TempDir(), "config.toml")

	c, err := Read(path, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	_, err = Read(path, false)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, os.WriteFile(path, []byte("[auth]\nredis = \"file:6379\"\n"), 0o600))
	t.Setenv("SENTRY_DSN", "https://sentry.example.com/1")
	t.Setenv("CLIENT_ID", "1234")

	c, err = Read(path, false)
	require.NoError(t, err)
	assert.Equal(t, "file:6379", c.Auth.Redis)
	assert.Equal(t, "https://sentry.example.com/1", c.Auth.Sentry)
	assert.Equal(t, snowflake.ID(1234), c.Bot.ClientID)
}

func TestDurationText(t *testing.T) {
	b, err := Duration(10 * time.Minute).MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "10m0s", string(b))
}
