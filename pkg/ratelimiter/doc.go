// Package ratelimiter implements token bucket rate limiting with in-memory
// and Redis stores and an HTTP middleware.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one token. A request that finds too few
// tokens is denied and takes nothing, so a client that keeps retrying is not
// pushed further into debt.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: 6 * time.Second,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.RemoteAddr)).Post("/checkout/select", h)
//
// The memory store is per process. Use RedisStore when several instances
// must share limits.
package ratelimiter
