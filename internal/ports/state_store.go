package ports

import (
	"context"

	"remodely-shopify-core/internal/domain"
)

// StateStore defines the interface for the OAuth CSRF state cache
type StateStore interface {
	// Put stores a pending handshake under its random state token with the
	// standard TTL.
	Put(ctx context.Context, state string, pending *domain.PendingOAuthState) error

	// Consume atomically retrieves and deletes the entry for a state token.
	// Returns nil, nil when the token is unknown or already consumed; an
	// entry past its expiry may still be returned and must be checked by the
	// caller.
	Consume(ctx context.Context, state string) (*domain.PendingOAuthState, error)
}

// WebhookDeduper defines the interface for webhook delivery deduplication
type WebhookDeduper interface {
	// Claim marks a webhook delivery id as processed. Returns true when the
	// id was already claimed (the delivery is a replay).
	Claim(ctx context.Context, webhookID string) (bool, error)
}

// EncryptionService defines the interface for secret-at-rest encryption
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
