package statecache

import (
	"context"
	"testing"
	"time"

	"remodely-shopify-core/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStateStore_ConsumeIsSingleUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStateStore()

	pending := &domain.PendingOAuthState{
		UserID:    "user-1",
		Shop:      "mystore",
		ExpiresAt: time.Now().Add(domain.PendingStateTTL),
	}
	require.NoError(t, store.Put(ctx, "state-token", pending))

	got, err := store.Consume(ctx, "state-token")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "mystore", got.Shop)

	// Second consume misses.
	got, err = store.Consume(ctx, "state-token")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStateStore_UnknownToken(t *testing.T) {
	t.Parallel()

	got, err := NewMemoryStateStore().Consume(context.Background(), "never-stored")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryWebhookDeduper_Claim(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	deduper := NewMemoryWebhookDeduper()

	replay, err := deduper.Claim(ctx, "delivery-1")
	require.NoError(t, err)
	assert.False(t, replay)

	replay, err = deduper.Claim(ctx, "delivery-1")
	require.NoError(t, err)
	assert.True(t, replay)

	// Distinct ids do not collide.
	replay, err = deduper.Claim(ctx, "delivery-2")
	require.NoError(t, err)
	assert.False(t, replay)
}

func TestMemoryWebhookDeduper_EmptyIDNeverClaims(t *testing.T) {
	t.Parallel()

	deduper := NewMemoryWebhookDeduper()
	for i := 0; i < 2; i++ {
		replay, err := deduper.Claim(context.Background(), "")
		require.NoError(t, err)
		assert.False(t, replay)
	}
}
