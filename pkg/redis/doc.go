// Package redis connects to the Redis server backing the snapshot store.
//
// Connect parses a redis:// URL and retries the initial ping, so the
// server may still be starting when the application boots:
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  2 * time.Second,
//		ConnectTimeout: 15 * time.Second,
//	})
//
// Healthcheck wraps the client in a check for the HTTP health endpoint.
// Errors are sentinel values joined with the driver error.
package redis
