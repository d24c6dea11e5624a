package redis

import (
	"context"
	"encoding/json"

	"emperror.dev/errors"
	"github.com/disgoorg/snowflake/v2"
	"github.com/mediocregopher/radix/v4"
	"github.com/starshine-sys/discache/payload"
	"github.com/starshine-sys/discache/store"
)

func (s *Store) guildsKey() string {
	return s.prefix + "archivedGuilds"
}

func (s *Store) ArchiveGuild(ctx context.Context, id snowflake.ID, data map[string]any) error {
	b, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "marshaling guild")
	}

	return s.client.Do(ctx, radix.Cmd(nil, "HSET", s.guildsKey(), id.String(), string(b)))
}

func (s *Store) ArchivedGuild(ctx context.Context, id snowflake.ID) (p payload.Payload, err error) {
	var raw []byte
	mb := radix.Maybe{Rcv: &raw}

	err = s.client.Do(ctx, radix.Cmd(&mb, "HGET", s.guildsKey(), id.String()))
	if err != nil {
		return p, err
	}

	if mb.Null {
		return p, store.ErrNotFound
	}

	return payload.Parse(raw)
}

func (s *Store) ArchivedGuildIDs(ctx context.Context) ([]snowflake.ID, error) {
	var keys []string

	err := s.client.Do(ctx, radix.Cmd(&keys, "HKEYS", s.guildsKey()))
	if err != nil {
		return nil, err
	}

	ids := make([]snowflake.ID, 0, len(keys))
	for _, k := range keys {
		id, err := snowflake.Parse(k)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Store) RemoveArchivedGuild(ctx context.Context, id snowflake.ID) error {
	return s.client.Do(ctx, radix.Cmd(nil, "HDEL", s.guildsKey(), id.String()))
}
