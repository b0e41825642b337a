// Package notify turns usage events into operator notifications.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/memberkit/pkg/email"
	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

const defaultSendTimeout = 10 * time.Second

// LimitAlerts emails an operator address whenever a member exhausts a quota.
// Delivery runs in the background so trackers never wait on the mail API.
type LimitAlerts struct {
	usage.NopObserver

	sender  email.Sender
	to      string
	log     *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

var _ usage.Observer = (*LimitAlerts)(nil)

// NewLimitAlerts returns an observer sending alerts to the given address.
func NewLimitAlerts(sender email.Sender, to string, log *slog.Logger) *LimitAlerts {
	if log == nil {
		log = logger.Discard()
	}
	return &LimitAlerts{
		sender:  sender,
		to:      to,
		log:     log.With(logger.Component("notify")),
		timeout: defaultSendTimeout,
	}
}

// LimitReached schedules the alert email.
func (a *LimitAlerts) LimitReached(ctx context.Context, e usage.Event) {
	msg := limitMessage(a.to, e)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		if err := a.sender.Send(ctx, msg); err != nil {
			a.log.ErrorContext(ctx, "failed to send limit alert",
				logger.UserID(e.UserID), logger.Tier(e.Tier), logger.Feature(e.Feature),
				logger.Count(e.Count), logger.Error(err))
		}
	}()
}

// Wait blocks until all scheduled alerts finished.
func (a *LimitAlerts) Wait() {
	a.wg.Wait()
}

func limitMessage(to string, e usage.Event) email.Message {
	return email.Message{
		To:      to,
		Subject: fmt.Sprintf("%s quota reached: %s", membership.DisplayName(e.Tier), e.Feature),
		TextBody: fmt.Sprintf(
			"Member %s on the %s tier used %d of %d %s at %s.\n\n%s",
			e.UserID, membership.DisplayName(e.Tier), e.Count, e.Limit, e.Feature,
			e.At.UTC().Format(time.RFC3339),
			upgradeHint(e.Tier),
		),
		Tag: "limit-reached",
	}
}

func upgradeHint(tier membership.Tier) string {
	for _, next := range membership.Tiers() {
		if next.Rank() > tier.Rank() {
			return fmt.Sprintf("Next tier with a higher allowance: %s.", membership.DisplayName(next))
		}
	}
	return "No higher tier is available."
}
