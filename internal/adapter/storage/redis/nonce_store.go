package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// NonceStore implements ports.NonceStore using Redis SET NX.
type NonceStore struct {
	client *goredis.Client
	prefix string
}

func NewNonceStore(client *goredis.Client) *NonceStore {
	return &NonceStore{
		client: client,
		prefix: "nonce:",
	}
}

// CheckAndSet atomically records nonce under scope.
// Returns true if the nonce is new, false if already used.
func (s *NonceStore) CheckAndSet(ctx context.Context, scope string, nonce string, ttl time.Duration) (bool, error) {
	return setNX(ctx, s.client, s.prefix+scope+":"+nonce, 1, ttl)
}

// setNX reports whether key was newly created.
func setNX(ctx context.Context, client *goredis.Client, key string, value any, ttl time.Duration) (bool, error) {
	result, err := client.SetArgs(ctx, key, value, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis set nx %s: %w", key, err)
	}
	return result == "OK", nil
}
