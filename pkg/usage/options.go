package usage

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

const defaultCacheSize = 1024

type options struct {
	now       func() time.Time
	log       *slog.Logger
	table     membership.Table
	observers observers
	cacheSize int
}

func newOptions(opts []Option) options {
	o := options{
		now:       time.Now,
		log:       slog.Default(),
		table:     membership.DefaultTable(),
		cacheSize: defaultCacheSize,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures trackers and managers.
type Option func(*options)

// WithClock overrides the time source used for reset boundaries.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLogger sets the logger used for load and persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithTable replaces the tier table limits are resolved against.
func WithTable(t membership.Table) Option {
	return func(o *options) {
		if t != nil {
			o.table = t
		}
	}
}

// WithObserver registers an event observer. May be given several times.
func WithObserver(ob Observer) Option {
	return func(o *options) {
		if ob != nil {
			o.observers = append(o.observers, ob)
		}
	}
}

// WithCacheSize sets how many trackers a Manager keeps loaded. Ignored by
// NewTracker. Non-positive values keep the default.
func WithCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}
