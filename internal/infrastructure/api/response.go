package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"remodely-shopify-core/internal/domain"

	"github.com/rs/zerolog"
)

// writeJSON serializes a response body with the given status.
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError converts an error into the {"error": message} shape at the
// status its taxonomy entry prescribes. Signature failures get a fixed
// message; the detail stays in the server log.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrConfiguration):
		status = http.StatusInternalServerError
	case errors.Is(err, domain.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidShopDomain),
		errors.Is(err, domain.ErrInvalidOrExpiredState),
		errors.Is(err, domain.ErrNotConnected):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidSignature):
		status = http.StatusUnauthorized
		message = "invalid signature"
	case errors.Is(err, domain.ErrTokenExchangeFailed),
		errors.Is(err, domain.ErrShopifyFetchFailed):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("Request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}

	writeJSON(w, status, map[string]string{"error": message})
}
