// Package httpserver runs an HTTP handler with graceful shutdown and
// provides liveness/readiness handlers.
//
//	srv := httpserver.New(cfg, log)
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
package httpserver
