// Package redis connects memberkit to a Redis server and keeps usage records
// in it.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which pings the server and retries using the supplied
//     configuration.
//   - Store, a usage.Store that keeps each record as a plain string key.
//   - Healthcheck, a probe for the /readyz endpoint.
//
// Configuration is described by the Config struct whose fields are populated
// from environment variables via github.com/caarlos0/env:
//
//	REDIS_URL              redis://localhost:6379/0
//	REDIS_RETRY_ATTEMPTS   3
//	REDIS_RETRY_INTERVAL   5s
//	REDIS_CONNECT_TIMEOUT  30s
//	REDIS_KEY_PREFIX       memberkit
//
// # Usage
//
// Load the configuration and connect:
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Hand the store to a usage manager:
//
//	store := redis.NewStore(client, cfg.KeyPrefix)
//	manager := usage.NewManager(store, usage.WithLogger(log))
//
// Keys are namespaced as "<prefix>:usage:<member>:<tier>". Records never
// expire; the monthly reset rewrites them in place. A missing key reads as
// nil with no error, which the tracker treats as a fresh record.
//
// Register the health check:
//
//	api.New(manager, api.WithReadinessProbes(redis.Healthcheck(client)))
//
// # Errors
//
// Store wraps every client failure with ErrStoreOperation using errors.Join,
// so callers can match it with errors.Is while keeping the driver error.
// Connect returns ErrRedisNotReady when the server never answered.
//
// # See Also
//
//   - https://github.com/redis/go-redis, the underlying driver
package redis
