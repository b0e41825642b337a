// Command memberd serves the membership entitlement and usage API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/memberkit/internal/api"
	"github.com/dmitrymomot/memberkit/internal/notify"
	"github.com/dmitrymomot/memberkit/internal/storage"
	"github.com/dmitrymomot/memberkit/pkg/config"
	"github.com/dmitrymomot/memberkit/pkg/email"
	"github.com/dmitrymomot/memberkit/pkg/httpserver"
	"github.com/dmitrymomot/memberkit/pkg/logger"
	"github.com/dmitrymomot/memberkit/pkg/metrics"
	"github.com/dmitrymomot/memberkit/pkg/usage"
)

type appConfig struct {
	Env             string `env:"APP_ENV" envDefault:"development"`
	Name            string `env:"APP_NAME" envDefault:"memberd"`
	LogLevel        string `env:"LOG_LEVEL"`
	UsageStore      string `env:"USAGE_STORE" envDefault:"memory"`
	UsageCacheSize  int    `env:"USAGE_CACHE_SIZE" envDefault:"1024"`
	LimitAlertEmail string `env:"LIMIT_ALERT_EMAIL"`

	HTTP  httpserver.Config
	Email email.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "memberd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	logOpts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(api.LogRequestID),
	}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevelName(cfg.LogLevel))
	}
	log := logger.New(logOpts...)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg.UsageStore, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(context.WithoutCancel(ctx)); err != nil {
			log.Error("failed to close usage store", logger.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	usageOpts := []usage.Option{
		usage.WithLogger(log),
		usage.WithCacheSize(cfg.UsageCacheSize),
		usage.WithObserver(metrics.NewUsageObserver(reg)),
	}
	var alerts *notify.LimitAlerts
	if cfg.LimitAlertEmail != "" {
		sender, err := email.New(cfg.Email, log)
		if err != nil {
			return err
		}
		alerts = notify.NewLimitAlerts(sender, cfg.LimitAlertEmail, log)
		usageOpts = append(usageOpts, usage.WithObserver(alerts))
	}

	server := api.New(usage.NewManager(backend.Store, usageOpts...),
		api.WithLogger(log),
		api.WithMetrics(metrics.NewHTTP(reg), metrics.Handler(reg)),
		api.WithReadinessProbes(backend.Probe),
	)

	err = httpserver.New(cfg.HTTP, log).Run(ctx, server.Routes())
	if alerts != nil {
		alerts.Wait()
	}
	return err
}
