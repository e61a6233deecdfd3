package broadcast

import (
	"context"
	"sync"
)

// Broadcaster delivers published values to every live subscriber.
// All methods are safe for concurrent use.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	subs   map[*subscription[T]]struct{}
	closed bool
}

type subscription[T any] struct {
	ch   chan T
	once sync.Once
}

func (s *subscription[T]) close() {
	s.once.Do(func() { close(s.ch) })
}

// New returns an empty Broadcaster.
func New[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[*subscription[T]]struct{})}
}

// Subscribe registers a subscriber. The channel is closed when ctx is done,
// cancel is called, or the broadcaster is closed.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) (<-chan T, func()) {
	sub := &subscription[T]{ch: make(chan T, 1)}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { b.remove(sub) })
	return sub.ch, func() {
		stop()
		b.remove(sub)
	}
}

// Publish hands v to every subscriber, replacing any value it has not read yet.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	for sub := range b.subs {
		select {
		case sub.ch <- v:
			continue
		default:
		}
		// drop the unread value; the subscriber only needs the newest
		select {
		case <-sub.ch:
		default:
		}
		select {
		case sub.ch <- v:
		default:
		}
	}
}

// Subscribers returns the number of live subscribers.
func (b *Broadcaster[T]) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later subscriptions are closed immediately.
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for sub := range b.subs {
		sub.close()
	}
	clear(b.subs)
}

func (b *Broadcaster[T]) remove(sub *subscription[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		sub.close()
	}
}
