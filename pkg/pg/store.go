package pg

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of *pgxpool.Pool the store needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectRecordSQL = `SELECT data FROM usage_records WHERE key = $1`
	upsertRecordSQL = `INSERT INTO usage_records (key, data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`
)

// Store keeps usage records in the usage_records table created by Migrate.
type Store struct {
	db DB
}

func NewStore(db DB) *Store {
	if db == nil {
		panic("pg: db is required")
	}
	return &Store{db: db}
}

// Get returns the stored record, or nil, nil when there is none.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, selectRecordSQL, key).Scan(&data)
	if IsNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreOperation, err)
	}
	return data, nil
}

// Set inserts or replaces the record stored under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.Exec(ctx, upsertRecordSQL, key, value); err != nil {
		return errors.Join(ErrStoreOperation, err)
	}
	return nil
}
