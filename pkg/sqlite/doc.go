// Package sqlite provides a single-file usage.Store on top of the pure-Go
// modernc.org/sqlite driver, for deployments without a database server
// and for the memberctl CLI.
//
// # Usage
//
//	var cfg sqlite.Config // SQLITE_PATH, memberkit.db by default
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	store, err := sqlite.Open(ctx, cfg.Path)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	manager := usage.NewManager(store)
//
// Open creates the file and the usage_records table when missing, enables
// WAL journaling with a busy timeout, and limits the pool to one connection
// so writers from one process never contend for the lock. Use ":memory:" for
// a throwaway database in tests.
//
// # Errors
//
// ErrEmptyPath, ErrFailedToOpen and ErrFailedToMigrate come from Open;
// ErrStoreOperation wraps query failures in Get and Set.
package sqlite
