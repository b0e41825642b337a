package usage

import (
	"context"
	"time"

	"github.com/dmitrymomot/memberkit/pkg/membership"
)

// Event describes a tracker state change delivered to observers.
type Event struct {
	UserID  string
	Tier    membership.Tier
	Feature membership.Feature
	Count   int64 // counter value after the change
	Limit   int64 // limit at the time of the change, or membership.Unlimited
	At      time.Time
}

// Observer receives tracker events. Calls happen after the tracker lock is
// released, on the caller's goroutine; slow observers should hand work off.
type Observer interface {
	// FeatureUsed fires after a successful increment.
	FeatureUsed(ctx context.Context, e Event)
	// LimitReached fires on the increment that leaves no remaining uses.
	LimitReached(ctx context.Context, e Event)
	// UsageDenied fires when UseFeature returns ErrLimitExceeded.
	UsageDenied(ctx context.Context, e Event)
	// UsageReset fires after a monthly reset. Feature is empty.
	UsageReset(ctx context.Context, e Event)
}

// NopObserver ignores every event. Embed it to implement a subset.
type NopObserver struct{}

func (NopObserver) FeatureUsed(context.Context, Event)  {}
func (NopObserver) LimitReached(context.Context, Event) {}
func (NopObserver) UsageDenied(context.Context, Event)  {}
func (NopObserver) UsageReset(context.Context, Event)   {}

// observers fans events out to several observers.
type observers []Observer

func (o observers) FeatureUsed(ctx context.Context, e Event) {
	for _, ob := range o {
		ob.FeatureUsed(ctx, e)
	}
}

func (o observers) LimitReached(ctx context.Context, e Event) {
	for _, ob := range o {
		ob.LimitReached(ctx, e)
	}
}

func (o observers) UsageDenied(ctx context.Context, e Event) {
	for _, ob := range o {
		ob.UsageDenied(ctx, e)
	}
}

func (o observers) UsageReset(ctx context.Context, e Event) {
	for _, ob := range o {
		ob.UsageReset(ctx, e)
	}
}
