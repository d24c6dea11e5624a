// Package state builds and updates the cached entity graph from gateway and REST payloads.
//
// Every entity goes through a factory that looks its ID up in the registry before allocating,
// so the same ID always resolves to the same pointer. Entities referenced before their own data
// arrives are created partial and populated in place later.
//
// State is safe for concurrent use. Exported methods take a write lock for the whole
// lookup-then-mutate sequence; Read gives readers a consistent view of the graph.
package state

import (
	"sync"

	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/starshine-sys/discache/store"
)

const ErrUnknownEvent = errors.Sentinel("unknown event")

type State struct {
	mu sync.RWMutex
	c  store.Cabinet

	archive  store.Archive
	clientID snowflake.ID

	handlers   []func(Event)
	handlersMu sync.RWMutex
}

type Option func(*State)

// WithArchive attaches an archive for Archive and Warm.
func WithArchive(a store.Archive) Option {
	return func(s *State) {
		s.archive = a
	}
}

// WithClientID sets the ID of the bot user that dispatched events are received by.
// Guilds created through Dispatch are bound to it, and reactions by it are marked as our own.
func WithClientID(id snowflake.ID) Option {
	return func(s *State) {
		s.clientID = id
	}
}

// New returns a state over the given registries.
func New(c store.Cabinet, opts ...Option) *State {
	s := &State{c: c}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClientID returns the ID set with WithClientID.
func (s *State) ClientID() snowflake.ID {
	return s.clientID
}

// Read runs fn with the state locked for reading. Entities reached through c must not be
// modified, and must not be used after fn returns without taking the lock again.
func (s *State) Read(fn func(c store.Cabinet)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.c)
}
