package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseGuard deletes KEYS[1] only while it still holds ARGV[1].
var releaseGuard = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ClaimGuard implements ports.ClaimGuard with one SET NX key per transfer.
// Each holder stores its own token so a late release cannot drop a newer guard.
type ClaimGuard struct {
	client *goredis.Client
	prefix string
}

func NewClaimGuard(client *goredis.Client) *ClaimGuard {
	return &ClaimGuard{
		client: client,
		prefix: "claim:",
	}
}

// Acquire returns held=false when the guard for transferID is already held.
// The ttl bounds how long a crashed claim can block retries.
func (g *ClaimGuard) Acquire(ctx context.Context, transferID string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	held, err := setNX(ctx, g.client, g.prefix+transferID, token, ttl)
	if err != nil || !held {
		return "", held, err
	}
	return token, true, nil
}

// Release is a no-op when the guard expired or now belongs to another holder.
func (g *ClaimGuard) Release(ctx context.Context, transferID, token string) error {
	if err := releaseGuard.Run(ctx, g.client, []string{g.prefix + transferID}, token).Err(); err != nil {
		return fmt.Errorf("redis claim guard release: %w", err)
	}
	return nil
}
