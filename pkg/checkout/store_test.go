package checkout_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/checkout"
)

func exerciseStore(t *testing.T, store checkout.Store) {
	t.Helper()
	ctx := context.Background()
	visitor := uuid.NewString()

	_, ok, err := store.Load(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ok)

	sel := checkout.Selection{
		State:     checkout.StateCheckoutFailed,
		PlanID:    "pro",
		Monthly:   false,
		Reason:    "no such price",
		UpdatedAt: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, visitor, sel))

	got, ok, err := store.Load(ctx, visitor)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sel.State, got.State)
	assert.Equal(t, sel.PlanID, got.PlanID)
	assert.Equal(t, sel.Reason, got.Reason)
	assert.False(t, got.Monthly)
	assert.True(t, sel.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, store.Delete(ctx, visitor))
	_, ok, err = store.Load(ctx, visitor)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, checkout.NewMemoryStore(time.Hour))
}

func TestMemoryStoreSweep(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := checkout.NewMemoryStore(time.Nanosecond)
	require.NoError(t, store.Save(ctx, "a", checkout.NewSelection()))
	require.NoError(t, store.Save(ctx, "b", checkout.NewSelection()))
	time.Sleep(time.Millisecond)

	assert.Equal(t, 2, store.Sweep())
	_, ok, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
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

	exerciseStore(t, checkout.NewRedisStore(client, time.Minute).WithPrefix("storefront:test:"))
}
