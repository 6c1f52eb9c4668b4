package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"escrow-relay/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ClaimResultCache implements ports.ClaimResultCache using Redis.
type ClaimResultCache struct {
	client *goredis.Client
	prefix string
}

func NewClaimResultCache(client *goredis.Client) *ClaimResultCache {
	return &ClaimResultCache{
		client: client,
		prefix: "claim-result:",
	}
}

// Get returns nil, nil if nothing is cached for transferID.
func (c *ClaimResultCache) Get(ctx context.Context, transferID string) (*domain.ClaimRecord, error) {
	val, err := c.client.Get(ctx, c.prefix+transferID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis claim result get: %w", err)
	}

	var record domain.ClaimRecord
	if err := json.Unmarshal(val, &record); err != nil {
		return nil, fmt.Errorf("decoding cached claim result: %w", err)
	}
	return &record, nil
}

func (c *ClaimResultCache) Set(ctx context.Context, transferID string, record *domain.ClaimRecord, ttl time.Duration) error {
	val, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding claim result: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+transferID, val, ttl).Err(); err != nil {
		return fmt.Errorf("redis claim result set: %w", err)
	}
	return nil
}
