// Package redis opens go-redis clients from connection URLs.
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//		redis.WithPoolSize(20),
//		redis.WithRetry(5, time.Second),
//	)
//
// Open pings the server before returning and retries with a growing delay.
// Healthcheck wraps a client into a func(context.Context) error probe.
package redis
