// Package redis connects to Redis with retries and exposes a readiness check.
//
//	client, err := redis.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Connect parses REDIS_URL, pings the server and retries up to
// REDIS_RETRY_ATTEMPTS times, REDIS_RETRY_INTERVAL apart, all bounded by
// REDIS_CONNECT_TIMEOUT.
package redis
