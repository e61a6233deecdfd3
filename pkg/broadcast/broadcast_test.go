package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("no value received")
	}
	var zero T
	return zero
}

func TestBroadcasterFanOut(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	defer b.Close()

	a, cancelA := b.Subscribe(context.Background())
	defer cancelA()
	c, cancelC := b.Subscribe(context.Background())
	defer cancelC()
	assert.Equal(t, 2, b.Subscribers())

	b.Publish(1)
	assert.Equal(t, 1, receive(t, a))
	assert.Equal(t, 1, receive(t, c))
}

func TestBroadcasterKeepsLatest(t *testing.T) {
	t.Parallel()

	b := broadcast.New[string]()
	defer b.Close()

	ch, cancel := b.Subscribe(context.Background())
	defer cancel()

	b.Publish("loading")
	b.Publish("ready")
	assert.Equal(t, "ready", receive(t, ch))

	select {
	case v := <-ch:
		t.Fatalf("unexpected value %q", v)
	default:
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	defer b.Close()

	t.Run("cancel func", func(t *testing.T) {
		ch, cancel := b.Subscribe(context.Background())
		cancel()
		_, ok := <-ch
		assert.False(t, ok)
		cancel()
	})

	t.Run("context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		ch, _ := b.Subscribe(ctx)
		cancel()
		select {
		case _, ok := <-ch:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("subscription not closed")
		}
	})

	assert.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}

func TestBroadcasterClose(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	ch, cancel := b.Subscribe(context.Background())
	defer cancel()

	b.Close()
	_, ok := <-ch
	assert.False(t, ok)

	late, _ := b.Subscribe(context.Background())
	_, ok = <-late
	assert.False(t, ok)

	b.Publish(1)
	b.Close()
}

func TestBroadcasterConcurrent(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	defer b.Close()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			ch, stop := b.Subscribe(ctx)
			defer stop()
			for range ch {
			}
		}()
	}
	for i := range 100 {
		b.Publish(i)
	}
	wg.Wait()
}
