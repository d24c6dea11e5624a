// Package memory provides an in-memory store.
package memory

import (
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache/v2"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/common"
	"github.com/starshine-sys/discache/discord"
	"github.com/starshine-sys/discache/store"
)

var _ store.Cabinet = (*Store)(nil)

const (
	DefaultMessageTTL   = 10 * time.Minute
	DefaultMessageLimit = 10000
)

type Store struct {
	guilds   map[snowflake.ID]*discord.Guild
	guildsMu sync.RWMutex

	channels   map[snowflake.ID]*discord.Channel
	channelsMu sync.RWMutex

	roles   map[snowflake.ID]*discord.Role
	rolesMu sync.RWMutex

	emojis *common.Map[snowflake.ID, *discord.Emoji]
	users  *common.Map[snowflake.ID, *discord.User]

	messages *ttlcache.Cache
	// channelMessages may contain IDs of messages that have since expired.
	channelMessages *common.Map[snowflake.ID, *common.Set[snowflake.ID]]
}

// Options configures the message cache.
type Options struct {
	MessageTTL   time.Duration
	MessageLimit int
}

// New returns a store with the default message cache options.
func New() *Store {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) *Store {
	if opts.MessageTTL <= 0 {
		opts.MessageTTL = DefaultMessageTTL
	}
	if opts.MessageLimit <= 0 {
		opts.MessageLimit = DefaultMessageLimit
	}

	messages := ttlcache.NewCache()
	messages.SetTTL(opts.MessageTTL)
	messages.SetCacheSizeLimit(opts.MessageLimit)

	return &Store{
		guilds:          make(map[snowflake.ID]*discord.Guild),
		channels:        make(map[snowflake.ID]*discord.Channel),
		roles:           make(map[snowflake.ID]*discord.Role),
		emojis:          common.NewMap[snowflake.ID, *discord.Emoji](),
		users:           common.NewMap[snowflake.ID, *discord.User](),
		messages:        messages,
		channelMessages: common.NewMap[snowflake.ID, *common.Set[snowflake.ID]](),
	}
}

// Close stops the message cache's expiry goroutine.
func (s *Store) Close() error {
	return s.messages.Close()
}
