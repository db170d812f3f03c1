package statecache

import (
	"context"
	"sync"
	"time"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"
)

// MemoryStateStore is a process-local state store for single-instance
// deployments and tests. Stale entries are inert (Consume removes them and
// the caller rejects on expiry) but do occupy memory until consumed.
type MemoryStateStore struct {
	mu      sync.Mutex
	entries map[string]*domain.PendingOAuthState
}

// NewMemoryStateStore creates an in-memory state store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{entries: make(map[string]*domain.PendingOAuthState)}
}

// Put stores a pending handshake under its state token.
func (s *MemoryStateStore) Put(_ context.Context, state string, pending *domain.PendingOAuthState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[state] = pending
	return nil
}

// Consume retrieves and deletes the entry for a state token.
func (s *MemoryStateStore) Consume(_ context.Context, state string) (*domain.PendingOAuthState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.entries[state]
	if !ok {
		return nil, nil
	}
	delete(s.entries, state)
	return pending, nil
}

// MemoryWebhookDeduper is a process-local deduper for single-instance
// deployments and tests.
type MemoryWebhookDeduper struct {
	mu   sync.Mutex
	seen map[string]time.Time
}

// NewMemoryWebhookDeduper creates an in-memory webhook deduper.
func NewMemoryWebhookDeduper() *MemoryWebhookDeduper {
	return &MemoryWebhookDeduper{seen: make(map[string]time.Time)}
}

// Claim returns true when the delivery id was already processed.
func (d *MemoryWebhookDeduper) Claim(_ context.Context, webhookID string) (bool, error) {
	if webhookID == "" {
		return false, nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if claimed, ok := d.seen[webhookID]; ok && time.Since(claimed) < dedupeTTL {
		return true, nil
	}
	d.seen[webhookID] = time.Now()
	return false, nil
}

var (
	_ ports.StateStore     = (*MemoryStateStore)(nil)
	_ ports.WebhookDeduper = (*MemoryWebhookDeduper)(nil)
)
