package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrymomot/memberkit/pkg/usage"
)

const namespace = "memberkit"

// UsageObserver exports tracker events as Prometheus counters.
// User IDs are never used as labels.
type UsageObserver struct {
	used         *prometheus.CounterVec
	denied       *prometheus.CounterVec
	limitReached *prometheus.CounterVec
	resets       *prometheus.CounterVec
}

var _ usage.Observer = (*UsageObserver)(nil)

// NewUsageObserver creates the usage counters and registers them with reg.
func NewUsageObserver(reg prometheus.Registerer) *UsageObserver {
	o := &UsageObserver{
		used: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "usage",
				Name:      "feature_used_total",
				Help:      "Successful quota consumptions by tier and feature.",
			},
			[]string{"tier", "feature"},
		),
		denied: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "usage",
				Name:      "denied_total",
				Help:      "Consumptions rejected because the quota was exhausted.",
			},
			[]string{"tier", "feature"},
		),
		limitReached: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "usage",
				Name:      "limit_reached_total",
				Help:      "Consumptions that used up the last remaining unit of a quota.",
			},
			[]string{"tier", "feature"},
		),
		resets: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "usage",
				Name:      "monthly_resets_total",
				Help:      "Monthly counter resets by tier.",
			},
			[]string{"tier"},
		),
	}
	reg.MustRegister(o.used, o.denied, o.limitReached, o.resets)
	return o
}

func (o *UsageObserver) FeatureUsed(_ context.Context, e usage.Event) {
	o.used.WithLabelValues(label(string(e.Tier)), label(string(e.Feature))).Inc()
}

func (o *UsageObserver) LimitReached(_ context.Context, e usage.Event) {
	o.limitReached.WithLabelValues(label(string(e.Tier)), label(string(e.Feature))).Inc()
}

func (o *UsageObserver) UsageDenied(_ context.Context, e usage.Event) {
	o.denied.WithLabelValues(label(string(e.Tier)), label(string(e.Feature))).Inc()
}

func (o *UsageObserver) UsageReset(_ context.Context, e usage.Event) {
	o.resets.WithLabelValues(label(string(e.Tier))).Inc()
}

func label(s string) string {
	if s == "" {
		return "unknown"
	}
	if len(s) > 64 {
		return s[:64]
	}
	return s
}
