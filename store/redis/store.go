// Package redis provides a guild archive backed by Redis.
package redis

import (
	"context"

	"emperror.dev/errors"
	"github.com/mediocregopher/radix/v4"
	"github.com/starshine-sys/discache/store"
)

var _ store.Archive = (*Store)(nil)

type Store struct {
	client radix.Client
	prefix string
}

// New connects to the Redis server at url. All keys are prefixed with prefix, which may be empty.
func New(ctx context.Context, url, prefix string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(ctx, "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	return &Store{client: client, prefix: prefix}, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
