package middleware

import (
	"bytes"
	"io"
	"net/http"

	"remodely-shopify-core/internal/ports"

	"github.com/rs/zerolog"
)

// WebhookAuthMiddleware verifies the X-Shopify-Hmac-Sha256 signature over
// the raw request body before any JSON parsing happens downstream. A missing
// secret is a deployment fault, not a client fault, so it maps to 500; a bad
// signature maps to 401.
func WebhookAuthMiddleware(verifier ports.HMACVerifier, secretConfigured bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !secretConfigured {
				logger.Error().Msg("Webhook received but SHOPIFY_CLIENT_SECRET is not set")
				http.Error(w, "Webhook secret not configured", http.StatusInternalServerError)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusBadRequest)
				return
			}
			defer r.Body.Close()

			hmacHeader := r.Header.Get("X-Shopify-Hmac-Sha256")
			if !verifier.VerifyBody(body, hmacHeader) {
				logger.Warn().
					Str("topic", r.Header.Get("X-Shopify-Topic")).
					Str("shop", r.Header.Get("X-Shopify-Shop-Domain")).
					Msg("Webhook signature verification failed")
				http.Error(w, "Invalid signature", http.StatusUnauthorized)
				return
			}

			// Hand the consumed body back to the handler.
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}
