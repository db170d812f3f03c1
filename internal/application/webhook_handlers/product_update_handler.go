package webhook_handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"remodely-shopify-core/internal/domain"

	"github.com/rs/zerolog"
)

// ProductUpdateHandler acknowledges products/update events. Imports are
// one-shot by design, so an update never rewrites an existing listing; the
// event is logged for observability only.
type ProductUpdateHandler struct {
	logger zerolog.Logger
}

// NewProductUpdateHandler creates a new products/update webhook handler.
func NewProductUpdateHandler(logger zerolog.Logger) *ProductUpdateHandler {
	return &ProductUpdateHandler{logger: logger}
}

// CanHandle returns true if this handler can process the given topic.
func (h *ProductUpdateHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductsUpdate
}

// Handle logs the update and returns.
func (h *ProductUpdateHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		ID          int64  `json:"id"`
		Title       string `json:"title"`
		ProductType string `json:"product_type"`
		Status      string `json:"status"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse product update webhook payload: %w", err)
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Int64("productId", payload.ID).
		Str("title", payload.Title).
		Str("status", payload.Status).
		Msg("Product updated")

	return nil
}
