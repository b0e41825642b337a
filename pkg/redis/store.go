package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Store keeps usage records as plain Redis strings. Records never expire.
type Store struct {
	db     redis.UniversalClient
	prefix string
}

// NewStore wraps a client. Keys are namespaced as "<prefix>:<key>" when
// prefix is non-empty.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if client == nil {
		panic("redis: client is required")
	}
	return &Store{db: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	if s.prefix == "" {
		return k
	}
	return s.prefix + ":" + k
}

// Get returns the stored value, or nil, nil when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.db.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreOperation, err)
	}
	return val, nil
}

// Set stores value without expiration.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.db.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Join(ErrStoreOperation, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return Healthcheck(s.db)(ctx)
}
