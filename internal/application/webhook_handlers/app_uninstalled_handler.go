package webhook_handlers

import (
	"context"
	"errors"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	"github.com/rs/zerolog"
)

// AppUninstalledHandler reacts to a merchant removing the app: the stored
// credentials are cleared so the connection status flips to disconnected.
type AppUninstalledHandler struct {
	logger zerolog.Logger
	users  ports.UserRepository
}

// NewAppUninstalledHandler creates a new app uninstalled webhook handler.
func NewAppUninstalledHandler(logger zerolog.Logger, users ports.UserRepository) *AppUninstalledHandler {
	return &AppUninstalledHandler{
		logger: logger,
		users:  users,
	}
}

// CanHandle returns true if this handler can process the given topic.
func (h *AppUninstalledHandler) CanHandle(topic string) bool {
	return topic == domain.TopicAppUninstalled
}

// Handle clears the credentials of whichever seller the shop belongs to.
// An unknown shop is not an error; the uninstall may race a manual
// disconnect, and Shopify retries on non-2xx responses.
func (h *AppUninstalledHandler) Handle(ctx context.Context, event *domain.WebhookEvent) error {
	if event.Shop == "" {
		h.logger.Warn().Str("topic", event.Topic).Msg("App uninstalled event without shop header")
		return nil
	}

	user, err := h.users.GetByStoreDomain(ctx, event.Shop)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.logger.Info().
				Str("shop", event.Shop).
				Msg("App uninstalled for a shop with no connected seller")
			return nil
		}
		return err
	}

	if err := h.users.ClearShopifyCredentials(ctx, user.ID); err != nil {
		return err
	}

	h.logger.Info().
		Str("shop", event.Shop).
		Str("user_id", user.ID).
		Msg("App uninstalled, credentials cleared")

	return nil
}
