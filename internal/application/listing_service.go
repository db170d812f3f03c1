package application

import (
	"context"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	"github.com/rs/zerolog"
)

const (
	defaultListingLimit = 50
	maxListingLimit     = 100
)

// ListingService exposes a seller's listings for querying and deletion.
type ListingService struct {
	listings ports.ListingRepository
	logger   zerolog.Logger
}

// NewListingService creates a new listing service.
func NewListingService(listings ports.ListingRepository, logger zerolog.Logger) *ListingService {
	return &ListingService{listings: listings, logger: logger}
}

// List returns a page of the seller's listings plus the total match count.
func (s *ListingService) List(ctx context.Context, sellerID string, filter domain.ListingFilter) ([]*domain.Listing, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListingLimit
	}
	if filter.Limit > maxListingLimit {
		filter.Limit = maxListingLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.listings.List(ctx, sellerID, filter)
}

// Delete removes one of the seller's listings. A listing owned by someone
// else is indistinguishable from a missing one.
func (s *ListingService) Delete(ctx context.Context, sellerID string, listingID string) error {
	if err := s.listings.Delete(ctx, listingID, sellerID); err != nil {
		return err
	}

	s.logger.Info().
		Str("seller_id", sellerID).
		Str("listing_id", listingID).
		Msg("Listing deleted")
	return nil
}
