package statecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	"github.com/redis/go-redis/v9"
)

const (
	statePrefix  = "shopify:oauth:state:"
	dedupePrefix = "shopify:webhook:"

	// Dedupe records outlive Shopify's redelivery window comfortably.
	dedupeTTL = 7 * 24 * time.Hour
)

// RedisStateStore keeps pending OAuth handshakes in Redis so restarts and
// horizontal scaling don't drop in-flight flows. Expiry is enforced by the
// key TTL; consumption is a single GETDEL so a state token can never be
// used twice.
type RedisStateStore struct {
	client *redis.Client
}

// NewRedisStateStore creates a Redis-backed state store.
func NewRedisStateStore(client *redis.Client) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// Put stores a pending handshake under its state token.
func (s *RedisStateStore) Put(ctx context.Context, state string, pending *domain.PendingOAuthState) error {
	raw, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending state: %w", err)
	}

	if err := s.client.Set(ctx, statePrefix+state, raw, domain.PendingStateTTL).Err(); err != nil {
		return fmt.Errorf("failed to store pending state: %w", err)
	}
	return nil
}

// Consume atomically retrieves and deletes the entry for a state token.
func (s *RedisStateStore) Consume(ctx context.Context, state string) (*domain.PendingOAuthState, error) {
	raw, err := s.client.GetDel(ctx, statePrefix+state).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume pending state: %w", err)
	}

	var pending domain.PendingOAuthState
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending state: %w", err)
	}
	return &pending, nil
}

// RedisWebhookDeduper claims webhook delivery ids with SETNX so redelivered
// events are processed once.
type RedisWebhookDeduper struct {
	client *redis.Client
}

// NewRedisWebhookDeduper creates a Redis-backed webhook deduper.
func NewRedisWebhookDeduper(client *redis.Client) *RedisWebhookDeduper {
	return &RedisWebhookDeduper{client: client}
}

// Claim returns true when the delivery id was already processed.
func (d *RedisWebhookDeduper) Claim(ctx context.Context, webhookID string) (bool, error) {
	if webhookID == "" {
		// No delivery id, nothing to dedupe on.
		return false, nil
	}

	set, err := d.client.SetNX(ctx, dedupePrefix+webhookID, 1, dedupeTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim webhook id: %w", err)
	}
	return !set, nil
}

var (
	_ ports.StateStore     = (*RedisStateStore)(nil)
	_ ports.WebhookDeduper = (*RedisWebhookDeduper)(nil)
)
