package webhook_handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	"github.com/rs/zerolog"
)

// ProductDeleteHandler archives imported listings when their source product
// is deleted from the store. Listings are never hard-deleted by a webhook.
type ProductDeleteHandler struct {
	logger   zerolog.Logger
	users    ports.UserRepository
	listings ports.ListingRepository
}

// NewProductDeleteHandler creates a new products/delete webhook handler.
func NewProductDeleteHandler(logger zerolog.Logger, users ports.UserRepository, listings ports.ListingRepository) *ProductDeleteHandler {
	return &ProductDeleteHandler{
		logger:   logger,
		users:    users,
		listings: listings,
	}
}

// CanHandle returns true if this handler can process the given topic.
func (h *ProductDeleteHandler) CanHandle(topic string) bool {
	return topic == domain.TopicProductsDelete
}

// Handle archives every listing the seller imported from the deleted
// product.
func (h *ProductDeleteHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("failed to parse product delete webhook payload: %w", err)
	}
	if payload.ID == 0 {
		h.logger.Warn().Str("shop", event.Shop).Msg("Product delete event without product id")
		return nil
	}

	user, err := h.users.GetByStoreDomain(ctx, event.Shop)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Info().
				Str("shop", event.Shop).
				Int64("productId", payload.ID).
				Msg("Product delete for a shop with no connected seller")
			return nil
		}
		return err
	}

	archived, err := h.listings.ArchiveByShopifyProduct(ctx, user.ID, payload.ID)
	if err != nil {
		return err
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Str("user_id", user.ID).
		Int64("productId", payload.ID).
		Int64("archived", archived).
		Msg("Product deleted, listings archived")

	return nil
}
