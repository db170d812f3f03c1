package application

import (
	"context"
	"testing"

	"remodely-shopify-core/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	topic  string
	events []*domain.WebhookEvent
	err    error
}

func (h *recordingHandler) CanHandle(topic string) bool { return topic == h.topic }

func (h *recordingHandler) Handle(_ context.Context, event *domain.WebhookEvent) error {
	h.events = append(h.events, event)
	return h.err
}

func TestWebhookDispatcher(t *testing.T) {
	t.Parallel()

	t.Run("routes by topic", func(t *testing.T) {
		t.Parallel()
		uninstall := &recordingHandler{topic: domain.TopicAppUninstalled}
		update := &recordingHandler{topic: domain.TopicProductsUpdate}

		d := NewWebhookDispatcher(zerolog.Nop())
		d.RegisterHandler(uninstall)
		d.RegisterHandler(update)

		event := &domain.WebhookEvent{Topic: domain.TopicProductsUpdate, Shop: "mystore.myshopify.com"}
		require.NoError(t, d.Dispatch(context.Background(), event))

		assert.Empty(t, uninstall.events)
		require.Len(t, update.events, 1)
		assert.Same(t, event, update.events[0])
	})

	t.Run("unhandled topic is not an error", func(t *testing.T) {
		t.Parallel()
		d := NewWebhookDispatcher(zerolog.Nop())
		assert.NoError(t, d.Dispatch(context.Background(), &domain.WebhookEvent{Topic: "orders/create"}))
	})

	t.Run("handler failure propagates", func(t *testing.T) {
		t.Parallel()
		failing := &recordingHandler{topic: domain.TopicProductsDelete, err: assert.AnError}
		d := NewWebhookDispatcher(zerolog.Nop())
		d.RegisterHandler(failing)

		err := d.Dispatch(context.Background(), &domain.WebhookEvent{Topic: domain.TopicProductsDelete})
		assert.Error(t, err)
	})
}
