package usage

import "errors"

var (
	// ErrLimitExceeded is returned by UseFeature when the quota is exhausted.
	// Callers are expected to turn it into an upgrade prompt.
	ErrLimitExceeded = errors.New("usage.errors.limit_exceeded")

	ErrMissingUserID = errors.New("usage.errors.missing_user_id")
	ErrInvalidTier   = errors.New("usage.errors.invalid_tier")

	ErrFailedToLoadRecord = errors.New("usage.errors.failed_to_load_record")
	ErrFailedToSaveRecord = errors.New("usage.errors.failed_to_save_record")
	ErrCorruptedRecord    = errors.New("usage.errors.corrupted_record")
)
