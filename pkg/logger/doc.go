// Package logger builds log/slog loggers for memberkit binaries.
//
//	log := logger.New(
//		logger.WithEnvironment(os.Getenv("APP_ENV"), "memberd"),
//		logger.WithLevelName("debug"),
//	)
//	log.InfoContext(ctx, "feature used", logger.UserID(id), logger.Feature(f))
//
// Attribute helpers keep key names consistent across packages.
package logger
