package ratelimiter_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testConfig = ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Second}

func newBucket(t *testing.T, store ratelimiter.Store) (*ratelimiter.Bucket, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	b, err := ratelimiter.NewBucket(store, testConfig, ratelimiter.WithClock(c.Now))
	require.NoError(t, err)
	return b, c
}

func TestNewBucketValidatesConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  ratelimiter.Config
	}{
		{"zero capacity", ratelimiter.Config{RefillRate: 1, RefillInterval: time.Second}},
		{"zero rate", ratelimiter.Config{Capacity: 1, RefillInterval: time.Second}},
		{"zero interval", ratelimiter.Config{Capacity: 1, RefillRate: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), tt.cfg)
			assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
		})
	}
}

func exerciseBucket(t *testing.T, store ratelimiter.Store, key string) {
	ctx := context.Background()
	b, c := newBucket(t, store)
	t.Cleanup(func() { _ = b.Reset(context.Background(), key) })

	for want := 2; want >= 0; want-- {
		res, err := b.Allow(ctx, key)
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, want, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := b.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, time.Second, res.RetryAfter())

	// Denied requests take nothing, so one refill step is enough.
	c.Advance(time.Second)
	res, err = b.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	c.Advance(time.Hour)
	res, err = b.Allow(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining, "refill is capped at capacity")

	_, err = b.AllowN(ctx, key, 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	require.NoError(t, b.Reset(ctx, key))
	res, err = b.AllowN(ctx, key, 3)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("token bucket", func(t *testing.T) {
		t.Parallel()
		exerciseBucket(t, ratelimiter.NewMemoryStore(), "visitor-a")
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, ratelimiter.NewMemoryStore())
		res, err := b.AllowN(context.Background(), "a", 3)
		require.NoError(t, err)
		require.Equal(t, 0, res.Remaining)

		res, err = b.Allow(context.Background(), "b")
		require.NoError(t, err)
		assert.Equal(t, 2, res.Remaining)
	})

	t.Run("sweep drops refilled buckets", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore()
		b, c := newBucket(t, store)
		_, err := b.Allow(context.Background(), "a")
		require.NoError(t, err)

		assert.Equal(t, 0, store.Sweep(c.Now().Add(time.Second)))
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 1, store.Sweep(c.Now().Add(3*time.Second)))
		assert.Equal(t, 0, store.Len())
	})
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })

	exerciseBucket(t, ratelimiter.NewRedisStore(client).WithPrefix("storefront:test:ratelimit:"), "visitor-a")
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (ratelimiter.Result, error) {
	return ratelimiter.Result{}, errors.Join(ratelimiter.ErrStoreUnavailable, errors.New("down"))
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	request := func(addr string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, "/checkout/select", nil)
		r.RemoteAddr = addr
		return r
	}

	t.Run("limits per key and sets headers", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, ratelimiter.NewMemoryStore())
		h := ratelimiter.Middleware(b, ratelimiter.RemoteAddr)(ok)

		for i := range 3 {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, request("10.0.0.1:1234"))
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
			assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("10.0.0.1:5678"))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, request("10.0.0.2:1234"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("custom limit handler", func(t *testing.T) {
		t.Parallel()
		b, _ := newBucket(t, ratelimiter.NewMemoryStore())
		h := ratelimiter.Middleware(b, ratelimiter.RemoteAddr,
			ratelimiter.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request, res ratelimiter.Result) {
				w.WriteHeader(http.StatusTeapot)
				_, _ = w.Write([]byte(res.ResetAt.UTC().Format(time.RFC3339)))
			}),
		)(ok)

		var rec *httptest.ResponseRecorder
		for range 4 {
			rec = httptest.NewRecorder()
			h.ServeHTTP(rec, request("10.0.0.1:1"))
		}
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "2025-03-01T12:00:01Z", rec.Body.String())
	})

	t.Run("empty key and store failures pass through", func(t *testing.T) {
		t.Parallel()
		h := ratelimiter.Middleware(failingLimiter{}, ratelimiter.RemoteAddr)(ok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, request("10.0.0.1:1"))
		assert.Equal(t, http.StatusOK, rec.Code)

		h = ratelimiter.Middleware(failingLimiter{}, func(*http.Request) string { return "" })(ok)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, request("10.0.0.1:1"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:4000"
	static := func(v string) ratelimiter.KeyFunc { return func(*http.Request) string { return v } }

	assert.Equal(t, "192.0.2.7", ratelimiter.Composite(ratelimiter.RemoteAddr)(r))
	assert.Equal(t, "select:192.0.2.7", ratelimiter.Composite(static("select"), static(""), ratelimiter.RemoteAddr)(r))

	long := ratelimiter.Composite(static(strings.Repeat("x", 80)))(r)
	assert.NotEmpty(t, long)
	assert.LessOrEqual(t, len(long), 13)
}
