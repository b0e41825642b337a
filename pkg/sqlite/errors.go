package sqlite

import "errors"

var (
	ErrEmptyPath       = errors.New("sqlite: database path is required")
	ErrFailedToOpen    = errors.New("sqlite: failed to open database")
	ErrFailedToMigrate = errors.New("sqlite: failed to create schema")
	ErrStoreOperation  = errors.New("sqlite: usage store operation failed")
)
