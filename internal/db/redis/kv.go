package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/emailcraft/outreach/internal/db"
)

// Get reads a plain value. A missing key is db.ErrKeyNotFound, not a
// driver error, so cache callers can treat it as a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(key).Build()).AsBytes()
	switch {
	case err == nil:
		return data, nil
	case rueidis.IsRedisNil(err):
		return nil, db.ErrKeyNotFound
	default:
		return nil, &db.Error{Op: "GET", Key: key, Err: err}
	}
}

// Set writes a plain value with no expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(key).Value(rueidis.BinaryString(value)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: "SET", Key: key, Err: err}
	}
	return nil
}
