package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "storefront:checkout:"

// RedisStore keeps selections in Redis as JSON with a TTL, so several
// storefront instances can share visitor state.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore returns a RedisStore. A non-positive ttl stores keys without expiry.
func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: defaultRedisPrefix, ttl: ttl}
}

// WithPrefix returns a copy of the store using a different key prefix.
func (s *RedisStore) WithPrefix(prefix string) *RedisStore {
	c := *s
	c.prefix = prefix
	return &c
}

func (s *RedisStore) Load(ctx context.Context, visitorID string) (Selection, bool, error) {
	data, err := s.client.Get(ctx, s.key(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Selection{}, false, nil
	}
	if err != nil {
		return Selection{}, false, errors.Join(ErrStore, err)
	}

	var sel Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		return Selection{}, false, errors.Join(ErrStore, err)
	}
	return sel, true, nil
}

func (s *RedisStore) Save(ctx context.Context, visitorID string, sel Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return errors.Join(ErrStore, err)
	}
	ttl := s.ttl
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(visitorID), data, ttl).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, s.key(visitorID)).Err(); err != nil {
		return errors.Join(ErrStore, err)
	}
	return nil
}

func (s *RedisStore) key(visitorID string) string {
	return s.prefix + visitorID
}
