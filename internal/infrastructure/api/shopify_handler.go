package api

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strconv"

	"remodely-shopify-core/internal/application"
	"remodely-shopify-core/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ShopifyHandler serves the store-connection and import REST surface.
type ShopifyHandler struct {
	oauth    *application.OAuthService
	importer *application.ImportService
	listings *application.ListingService
	logger   zerolog.Logger
}

// NewShopifyHandler creates the REST handler for the Shopify integration.
func NewShopifyHandler(
	oauth *application.OAuthService,
	importer *application.ImportService,
	listings *application.ListingService,
	logger zerolog.Logger,
) *ShopifyHandler {
	return &ShopifyHandler{
		oauth:    oauth,
		importer: importer,
		listings: listings,
		logger:   logger,
	}
}

// GetAuthURL handles GET /api/shopify/auth/url?shop=<name>.
func (h *ShopifyHandler) GetAuthURL(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())

	result, err := h.oauth.RequestAuthorizeURL(r.Context(), userID, r.URL.Query().Get("shop"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"url":     result.URL,
		"shop":    result.Shop,
	})
}

// AuthCallback handles GET /api/shopify/auth/callback. This is a browser
// redirect target, so it renders HTML rather than JSON.
func (h *ShopifyHandler) AuthCallback(w http.ResponseWriter, r *http.Request) {
	result, err := h.oauth.HandleCallback(r.Context(), r.URL.Query())
	if err != nil {
		h.logger.Warn().Err(err).Msg("OAuth callback failed")
		writeCallbackPage(w, http.StatusBadRequest,
			"Connection failed",
			"We could not connect your Shopify store. Please return to the app and try again.")
		return
	}

	writeCallbackPage(w, http.StatusOK,
		"Store connected",
		fmt.Sprintf("%s is now connected. You can close this window and return to the app.", result.StoreName))
}

// GetStatus handles GET /api/shopify/status.
func (h *ShopifyHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())

	creds, err := h.oauth.Status(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if creds == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success":   true,
			"connected": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"connected": true,
		"store": map[string]any{
			"domain":              creds.StoreDomain,
			"name":                creds.StoreName,
			"scope":               creds.Scope,
			"webhooks_registered": creds.WebhooksRegistered,
			"connected_at":        creds.ConnectedAt,
		},
	})
}

// Disconnect handles POST /api/shopify/disconnect.
func (h *ShopifyHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())

	if err := h.oauth.Disconnect(r.Context(), userID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// ListProducts handles GET /api/shopify/products?limit=.
func (h *ShopifyHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	products, err := h.importer.ListStoreProducts(r.Context(), userID, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"count":    len(products),
		"products": products,
	})
}

// ImportProduct handles POST /api/shopify/import-product.
func (h *ShopifyHandler) ImportProduct(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())

	var body struct {
		ShopifyProductID int64 `json:"shopifyProductId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ShopifyProductID == 0 {
		writeError(w, h.logger, fmt.Errorf("%w: shopifyProductId is required", domain.ErrBadRequest))
		return
	}

	result, err := h.importer.ImportProduct(r.Context(), userID, body.ShopifyProductID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"listingId":     result.Listing.ID,
		"listing":       result.Listing,
		"alreadyExists": result.AlreadyExists,
	})
}

// ImportAll handles POST /api/shopify/import-all.
func (h *ShopifyHandler) ImportAll(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())

	result, err := h.importer.ImportAll(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":         true,
		"imported":        len(result.Imported),
		"skipped":         len(result.Skipped),
		"errors":          len(result.Failures),
		"listings":        result.Imported,
		"skippedProducts": result.Skipped,
		"errorDetails":    result.Failures,
	})
}

// ListListings handles GET /api/shopify/listings?source&status&limit&offset.
func (h *ShopifyHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	query := r.URL.Query()

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))
	filter := domain.ListingFilter{
		Source: query.Get("source"),
		Status: query.Get("status"),
		Limit:  limit,
		Offset: offset,
	}

	listings, total, err := h.listings.List(r.Context(), userID, filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"total":    total,
		"count":    len(listings),
		"listings": listings,
	})
}

// DeleteListing handles DELETE /api/shopify/listing/{id}. Ownership is
// enforced by the store; a foreign listing 404s like a missing one.
func (h *ShopifyHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID := domain.GetUserIDFromContext(r.Context())
	listingID := chi.URLParam(r, "id")

	if err := h.listings.Delete(r.Context(), userID, listingID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeCallbackPage renders the minimal HTML shown at the end of the OAuth
// browser redirect.
func writeCallbackPage(w http.ResponseWriter, status int, title string, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head><title>%s</title></head>
<body style="font-family: sans-serif; text-align: center; padding-top: 4rem;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), html.EscapeString(message))
}
