package ports

import (
	"context"

	shopify "github.com/bold-commerce/go-shopify/v4"
)

// TokenResponse is the result of an OAuth code exchange.
type TokenResponse struct {
	AccessToken string
	Scope       string
}

// ShopifyClient defines the interface for the Shopify Admin API operations
// this integration needs
type ShopifyClient interface {
	// Authentication
	AuthorizeURL(shop string, scopes []string, redirectURI string, state string) string
	ExchangeToken(ctx context.Context, shop string, code string) (*TokenResponse, error)

	// Shop API
	GetShop(ctx context.Context, shop string, accessToken string) (*shopify.Shop, error)

	// Product API
	GetProduct(ctx context.Context, shop string, accessToken string, productID int64) (*shopify.Product, error)
	ListProducts(ctx context.Context, shop string, accessToken string, limit int) ([]shopify.Product, error)

	// Webhook API
	CreateWebhook(ctx context.Context, shop string, accessToken string, topic string, address string) (*shopify.Webhook, error)
}
