// Package redis implements db.Store on rueidis against a Redis instance
// with the query engine (RediSearch) module loaded.
package redis

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/rueidis"

	"github.com/emailcraft/outreach/internal/db"
)

var _ db.Store = (*Store)(nil)

// Config holds connection parameters.
type Config struct {
	Addrs    []string
	Username string
	Password string
	DB       int
}

// Store is the rueidis-backed db.Store.
type Store struct {
	client rueidis.Client
}

// NewStore connects to Redis. FT.SEARCH replies are parsed from the RESP2
// array layout, so the client is pinned to RESP2.
func NewStore(cfg Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("redis: at least one address is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
		AlwaysRESP2:  true,
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close shuts down the client.
func (s *Store) Close() { s.client.Close() }

// WaitForReady polls until the server answers PING or the timeout expires.
// Used at startup so the service does not race a container-managed Redis.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	wait := 50 * time.Millisecond

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.New("redis: not ready within " + timeout.String())
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		if wait < time.Second {
			wait *= 2
		}
	}
}

// serverErrContains reports whether err is a Redis server reply whose text
// contains substr. FT errors are only distinguishable by message.
func serverErrContains(err error, substr string) bool {
	re, ok := rueidis.IsRedisErr(err)
	return ok && strings.Contains(strings.ToLower(re.Error()), substr)
}
