package ports

import (
	"context"

	"remodely-shopify-core/internal/domain"
)

// UserRepository defines the interface for user and credential persistence
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByStoreDomain(ctx context.Context, storeDomain string) (*domain.User, error)

	// SaveShopifyCredentials replaces the whole credential set for a user.
	SaveShopifyCredentials(ctx context.Context, userID string, creds *domain.ShopifyCredentials) error

	// ClearShopifyCredentials nulls every shopify field at once.
	ClearShopifyCredentials(ctx context.Context, userID string) error
}

// ListingRepository defines the interface for listing persistence
type ListingRepository interface {
	// Insert stores a new listing. Returns domain.ErrDuplicateListing when the
	// (seller, shopify product) unique index rejects the row.
	Insert(ctx context.Context, listing *domain.Listing) error

	// FindByShopifyProduct returns nil, nil when no listing matches.
	FindByShopifyProduct(ctx context.Context, sellerID string, shopifyProductID int64) (*domain.Listing, error)

	List(ctx context.Context, sellerID string, filter domain.ListingFilter) ([]*domain.Listing, int64, error)

	// Delete removes a listing owned by sellerID. Returns domain.ErrNotFound
	// when the id does not exist or belongs to someone else.
	Delete(ctx context.Context, id string, sellerID string) error

	// ArchiveByShopifyProduct flips matching imported listings to archived and
	// returns how many rows changed.
	ArchiveByShopifyProduct(ctx context.Context, sellerID string, shopifyProductID int64) (int64, error)
}
