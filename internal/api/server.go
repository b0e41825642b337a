// Package api exposes the membership resolver and usage tracker over HTTP.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/memberkit/pkg/httpserver"
	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/membership"
	"github.com/dmitrymomot/memberkit/pkg/metrics"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

// Server holds the handlers' dependencies.
type Server struct {
	table       membership.Table
	usage       *usage.Manager
	log         *slog.Logger
	httpMetrics *metrics.HTTP
	metrics     http.Handler
	probes      []httpserver.Probe
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics records request metrics and serves h on /metrics.
func WithMetrics(m *metrics.HTTP, h http.Handler) Option {
	return func(s *Server) {
		s.httpMetrics = m
		s.metrics = h
	}
}

// WithReadinessProbes adds dependency checks to /readyz.
func WithReadinessProbes(probes ...httpserver.Probe) Option {
	return func(s *Server) { s.probes = append(s.probes, probes...) }
}

// New returns a Server using manager for usage accounting. Access checks
// resolve against the manager's tier table. Panics if manager is nil.
func New(manager *usage.Manager, opts ...Option) *Server {
	if manager == nil {
		panic("api: usage manager is required")
	}
	s := &Server{
		table: manager.Table(),
		usage: manager,
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("api"))
	return s
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID, middleware.RealIP, s.observe, middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { respondError(w, ErrNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, HTTPError{Status: http.StatusMethodNotAllowed, Key: "method_not_allowed"})
	})

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(s.log, s.probes...))
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Use(tierFromHeader)

		r.Get("/tiers", s.listTiers)
		r.Get("/tiers/{tier}/features/{feature}", s.tierFeature)
		r.Get("/tiers/{tier}/compare/{target}", s.compareTiers)

		r.Get("/access/resources", s.accessResource)
		r.Get("/access/courses", s.accessCourse)
		r.Get("/gate", s.gate)

		r.Route("/users/{userID}/usage", func(r chi.Router) {
			r.Get("/", s.usageSummary)
			r.Post("/reset", s.resetUsage)
			r.Post("/{feature}", s.consume)
		})
	})

	return r
}
