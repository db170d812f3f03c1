package application

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
)

// defaultTopics are the subscriptions every connected store gets.
var defaultTopics = []string{
	domain.TopicAppUninstalled,
	domain.TopicProductsUpdate,
	domain.TopicProductsDelete,
}

// WebhookRegistrar idempotently registers the fixed topic set with a store.
// A topic Shopify already has (HTTP 422) counts as registered; other
// failures are recorded per topic and never retried — re-running OAuth is
// the only recovery path.
type WebhookRegistrar struct {
	client  ports.ShopifyClient
	logger  zerolog.Logger
	baseURL string
}

// NewWebhookRegistrar creates a registrar pointing topics at baseURL.
func NewWebhookRegistrar(client ports.ShopifyClient, logger zerolog.Logger, baseURL string) *WebhookRegistrar {
	return &WebhookRegistrar{
		client:  client,
		logger:  logger,
		baseURL: baseURL,
	}
}

// Topics returns the fixed topic set.
func (r *WebhookRegistrar) Topics() []string {
	return defaultTopics
}

// Address maps a topic to its delivery endpoint.
func (r *WebhookRegistrar) Address(topic string) string {
	return r.baseURL + "/api/shopify/webhooks/" + strings.ReplaceAll(topic, "/", "-")
}

// RegisterAll attempts every topic and returns per-topic outcomes. One
// failure does not abort the remaining registrations.
func (r *WebhookRegistrar) RegisterAll(ctx context.Context, shop string, accessToken string) []domain.WebhookRegistration {
	results := make([]domain.WebhookRegistration, 0, len(defaultTopics))

	for _, topic := range defaultTopics {
		address := r.Address(topic)
		reg := domain.WebhookRegistration{Topic: topic, Address: address}

		_, err := r.client.CreateWebhook(ctx, shop, accessToken, topic, address)
		switch {
		case err == nil:
			reg.Success = true
		case isAlreadyExists(err):
			reg.Success = true
			reg.Exists = true
		default:
			reg.Error = err.Error()
			r.logger.Warn().
				Err(err).
				Str("shop", shop).
				Str("topic", topic).
				Msg("Webhook registration failed")
		}

		results = append(results, reg)
	}

	return results
}

// isAlreadyExists detects Shopify's 422 "address for this topic has already
// been taken" response.
func isAlreadyExists(err error) bool {
	var respErr goshopify.ResponseError
	if errors.As(err, &respErr) {
		return respErr.Status == http.StatusUnprocessableEntity
	}
	return false
}
