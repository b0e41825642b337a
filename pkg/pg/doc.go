// Package pg wires PostgreSQL into memberkit through pgx/v5.
//
// It opens a pgxpool with retries, applies the embedded goose migrations
// that create the usage_records table, and exposes Store, a usage.Store
// backed by that table:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
//	manager := usage.NewManager(pg.NewStore(pool))
//
// Records are stored as JSONB keyed by the usage key.
package pg
