// Package metrics exposes memberkit's Prometheus instrumentation: a
// usage.Observer counting consumptions, denials, exhausted quotas and
// monthly resets, plus per-route HTTP request metrics.
//
// Everything registers against a caller-supplied prometheus.Registerer so
// tests and embedded use can keep their own registry.
package metrics
