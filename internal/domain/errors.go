package domain

import "errors"

// Error taxonomy surfaced by the integration. Handlers map these onto HTTP
// status codes at the route boundary; everything else is wrapped upstream
// detail.
var (
	// ErrConfiguration means a required secret or client id is absent.
	// Operator-fixable, never user-fixable.
	ErrConfiguration = errors.New("shopify integration is not configured")

	// ErrBadRequest means a required callback or request parameter is missing.
	ErrBadRequest = errors.New("missing required parameters")

	// ErrInvalidSignature means an HMAC check failed. Detail is logged
	// server-side and withheld from responses.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidShopDomain means the shop parameter failed domain validation.
	ErrInvalidShopDomain = errors.New("invalid shop domain")

	// ErrInvalidOrExpiredState means the CSRF state token was missing,
	// already consumed, or past its expiry. The flow must be restarted.
	ErrInvalidOrExpiredState = errors.New("invalid or expired state")

	// ErrTokenExchangeFailed means the shop's token endpoint returned no
	// usable access token.
	ErrTokenExchangeFailed = errors.New("token exchange failed")

	// ErrShopifyFetchFailed means a Shopify Admin API read returned non-2xx.
	ErrShopifyFetchFailed = errors.New("shopify fetch failed")

	// ErrNotConnected means the user has no live Shopify connection.
	ErrNotConnected = errors.New("shopify store not connected")

	// ErrNotFound means a listing lookup or owner-scoped delete missed.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateListing means an insert hit the (seller, product) unique
	// index; the product is already imported.
	ErrDuplicateListing = errors.New("listing already imported")
)
