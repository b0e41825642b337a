// Package storage selects and opens the usage.Store backend named by
// configuration.
package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/memberkit/pkg/config"
	"github.com/dmitrymomot/memberkit/pkg/httpserver"
	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/mongo"
	"github.com/dmitrymomot/memberkit/pkg/pg"
	"github.com/dmitrymomot/memberkit/pkg/redis"
	"github.com/dmitrymomot/memberkit/pkg/sqlite"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

// Supported backends.
const (
	Memory   = "memory"
	Redis    = "redis"
	Postgres = "postgres"
	Mongo    = "mongo"
	SQLite   = "sqlite"
)

// ErrUnknownBackend is returned for an unsupported USAGE_STORE value.
var ErrUnknownBackend = errors.New("storage.errors.unknown_backend")

// Backend is an opened store with its readiness probe and cleanup.
type Backend struct {
	Name  string
	Store usage.Store
	Probe httpserver.Probe
	close func(context.Context) error
}

// Close releases the backend's connections.
func (b *Backend) Close(ctx context.Context) error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the backend called name. Each backend reads its own
// settings from the environment, so only the chosen one needs configuring.
func Open(ctx context.Context, name string, log *slog.Logger) (*Backend, error) {
	if log == nil {
		log = logger.Discard()
	}
	name = strings.ToLower(strings.TrimSpace(name))
	log = log.With(logger.Component("storage"), slog.String("backend", name))

	var (
		b   *Backend
		err error
	)
	switch name {
	case "", Memory:
		b, err = openMemory()
	case Redis:
		b, err = openRedis(ctx)
	case Postgres:
		b, err = openPostgres(ctx, log)
	case Mongo:
		b, err = openMongo(ctx)
	case SQLite:
		b, err = openSQLite(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "usage store ready")
	return b, nil
}

func openMemory() (*Backend, error) {
	s := usage.NewMemoryStore()
	return &Backend{Name: Memory, Store: s, Probe: s.Ping}, nil
}

func openRedis(ctx context.Context) (*Backend, error) {
	var cfg redis.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:  Redis,
		Store: redis.NewStore(client, cfg.KeyPrefix),
		Probe: redis.Healthcheck(client),
		close: func(context.Context) error { return client.Close() },
	}, nil
}

func openPostgres(ctx context.Context, log *slog.Logger) (*Backend, error) {
	var cfg pg.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	pool, err := pg.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
		pool.Close()
		return nil, err
	}
	return &Backend{
		Name:  Postgres,
		Store: pg.NewStore(pool),
		Probe: pg.Healthcheck(pool),
		close: func(context.Context) error { pool.Close(); return nil },
	}, nil
}

func openMongo(ctx context.Context) (*Backend, error) {
	var cfg mongo.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	client, err := mongo.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:  Mongo,
		Store: mongo.NewStore(client.Database(cfg.Database).Collection(cfg.Collection)),
		Probe: mongo.Healthcheck(client),
		close: client.Disconnect,
	}, nil
}

func openSQLite(ctx context.Context) (*Backend, error) {
	var cfg sqlite.Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	s, err := sqlite.Open(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	return &Backend{
		Name:  SQLite,
		Store: s,
		Probe: s.Ping,
		close: func(context.Context) error { return s.Close() },
	}, nil
}
