package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/emailcraft/outreach/internal/db"
)

func (s *Store) hsetCmd(key string, fields map[string]string) rueidis.Completed {
	cmd := s.client.B().Hset().Key(key).FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}
	return cmd.Build()
}

// HSet writes one document hash.
func (s *Store) HSet(ctx context.Context, key string, fields map[string]string) error {
	if err := s.client.Do(ctx, s.hsetCmd(key, fields)).Error(); err != nil {
		return &db.Error{Op: "HSET", Key: key, Err: err}
	}
	return nil
}

// HSetMulti writes a batch of document hashes in one pipelined round-trip.
// The first failed write aborts with its key in the error.
func (s *Store) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if len(items) == 0 {
		return nil
	}

	cmds := make([]rueidis.Completed, len(items))
	for i, item := range items {
		cmds[i] = s.hsetCmd(item.Key, item.Fields)
	}

	for i, res := range s.client.DoMulti(ctx, cmds...) {
		if err := res.Error(); err != nil {
			return &db.Error{Op: "HSET", Key: items[i].Key, Err: err}
		}
	}
	return nil
}

// HGetAll reads all fields of a document hash.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	m, err := s.client.Do(ctx, s.client.B().Hgetall().Key(key).Build()).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: "HGETALL", Key: key, Err: err}
	}
	return m, nil
}
