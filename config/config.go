// Package config reads the TOML configuration file.
package config

import (
	"os"
	"strconv"
	"time"

	"emperror.dev/errors"
	"github.com/BurntSushi/toml"
	"github.com/disgoorg/snowflake/v2"
)

type Config struct {
	Auth  AuthConfig  `toml:"auth"`
	Bot   BotConfig   `toml:"bot"`
	Cache CacheConfig `toml:"cache"`
}

type AuthConfig struct {
	// Redis is the address of the guild archive. Archiving is disabled if it's empty.
	Redis       string `toml:"redis"`
	RedisPrefix string `toml:"redis_prefix"`
	Sentry      string `toml:"sentry"`
}

type BotConfig struct {
	// ClientID is the bot user that guilds are bound to when replaying events.
	ClientID snowflake.ID `toml:"client_id"`
	Debug    bool         `toml:"debug"`
}

type CacheConfig struct {
	MessageTTL   Duration `toml:"message_ttl"`
	MessageLimit int      `toml:"message_limit"`
}

// Duration is a time.Duration that's written as a string ("10m") in the config file.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return errors.Wrap(err, "parse duration")
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Default returns the configuration used for keys missing from the file.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			MessageTTL:   Duration(10 * time.Minute),
			MessageLimit: 10000,
		},
	}
}

// Read reads the config file at path, then applies environment overrides.
// A missing file isn't an error if allowMissing is true.
func Read(path string, allowMissing bool) (c Config, err error) {
	c = Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if !(allowMissing && errors.Is(err, os.ErrNotExist)) {
			return c, errors.Wrap(err, "read config file")
		}
	} else {
		c, err = Parse(b)
		if err != nil {
			return c, err
		}
	}

	c.applyEnv()
	return c, nil
}

// Parse parses a config file. Keys missing from it keep their default values.
func Parse(b []byte) (c Config, err error) {
	c = Default()

	err = toml.Unmarshal(b, &c)
	if err != nil {
		return c, errors.Wrap(err, "unmarshal config")
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("REDIS"); v != "" {
		c.Auth.Redis = v
	}
	if v := os.Getenv("SENTRY_DSN"); v != "" {
		c.Auth.Sentry = v
	}
	if v, err := strconv.ParseBool(os.Getenv("DEBUG_LOGGING")); err == nil {
		c.Bot.Debug = v
	}
	if id, err := snowflake.Parse(os.Getenv("CLIENT_ID")); err == nil && id != 0 {
		c.Bot.ClientID = id
	}
}
