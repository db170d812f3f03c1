package api

import (
	"io"
	"net/http"
	"strings"

	"remodely-shopify-core/internal/application"
	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// WebhookHandler receives signed Shopify webhook deliveries. Signature
// verification happens in middleware before this handler runs, so the body
// here is trusted.
type WebhookHandler struct {
	dispatcher *application.WebhookDispatcher
	deduper    ports.WebhookDeduper
	logger     zerolog.Logger
}

// NewWebhookHandler creates the webhook delivery endpoint handler.
func NewWebhookHandler(dispatcher *application.WebhookDispatcher, deduper ports.WebhookDeduper, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		dispatcher: dispatcher,
		deduper:    deduper,
		logger:     logger,
	}
}

// Receive handles POST /api/shopify/webhooks/{topic}. The URL segment uses
// dashes where Shopify topics use slashes.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	topic := strings.ReplaceAll(chi.URLParam(r, "topic"), "-", "/")
	shop := r.Header.Get("X-Shopify-Shop-Domain")
	webhookID := r.Header.Get("X-Shopify-Webhook-Id")

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Shopify redelivers on timeouts; a replayed delivery id is acked
	// without re-running the handlers.
	if webhookID != "" {
		replay, err := h.deduper.Claim(r.Context(), webhookID)
		if err != nil {
			h.logger.Warn().Err(err).Str("webhookId", webhookID).Msg("Webhook dedupe check failed")
		} else if replay {
			h.logger.Info().
				Str("topic", topic).
				Str("shop", shop).
				Str("webhookId", webhookID).
				Msg("Duplicate webhook delivery ignored")
			writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
			return
		}
	}

	event := &domain.WebhookEvent{
		Topic:    topic,
		Shop:     shop,
		Payload:  payload,
		Verified: true,
	}

	if err := h.dispatcher.Dispatch(r.Context(), event); err != nil {
		h.logger.Error().
			Err(err).
			Str("topic", topic).
			Str("shop", shop).
			Msg("Failed to dispatch webhook event")

		// Non-2xx makes Shopify retry the delivery.
		http.Error(w, "Failed to process webhook event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"received": "true"})
}
