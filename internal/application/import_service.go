package application

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/metrics"
	"remodely-shopify-core/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// importedCategory is a fixed taxonomy value; Shopify product metadata
	// carries nothing reliable to derive it from.
	importedCategory = "Stone & Tile"

	// importedListingTTL is how long an imported listing stays live.
	importedListingTTL = 30 * 24 * time.Hour

	// bulkImportLimit is Shopify's maximum page size for product lists.
	bulkImportLimit = 250
)

// htmlTagPattern is a crude tag stripper for display text, not an HTML
// parser; entity-encoded artifacts may remain.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ImportService materializes Shopify products as marketplace listings.
// Imports are one-shot: an existing listing is never updated, only skipped.
type ImportService struct {
	users    ports.UserRepository
	listings ports.ListingRepository
	client   ports.ShopifyClient
	crypt    ports.EncryptionService
	logger   zerolog.Logger

	now func() time.Time
}

// NewImportService creates a new product import service.
func NewImportService(
	users ports.UserRepository,
	listings ports.ListingRepository,
	client ports.ShopifyClient,
	crypt ports.EncryptionService,
	logger zerolog.Logger,
) *ImportService {
	return &ImportService{
		users:    users,
		listings: listings,
		client:   client,
		crypt:    crypt,
		logger:   logger,
		now:      time.Now,
	}
}

// ImportResult is the outcome of a single-product import.
type ImportResult struct {
	Listing       *domain.Listing
	AlreadyExists bool
}

// SkippedProduct identifies a bulk-import item that already had a listing.
type SkippedProduct struct {
	ShopifyProductID int64  `json:"shopify_product_id"`
	ListingID        string `json:"listing_id"`
	Title            string `json:"title"`
}

// ImportFailure identifies a bulk-import item that errored.
type ImportFailure struct {
	ShopifyProductID int64  `json:"shopify_product_id"`
	Title            string `json:"title"`
	Error            string `json:"error"`
}

// BulkImportResult collects the three independent outcome lists of a bulk
// import. Partial success is the expected outcome, not a failure mode.
type BulkImportResult struct {
	Imported []*domain.Listing
	Skipped  []SkippedProduct
	Failures []ImportFailure
}

// connection resolves the caller's store domain and decrypted access token.
func (s *ImportService) connection(ctx context.Context, userID string) (string, string, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if !user.Connected() {
		return "", "", domain.ErrNotConnected
	}

	token, err := s.crypt.Decrypt(user.Shopify.AccessToken)
	if err != nil {
		return "", "", fmt.Errorf("failed to decrypt access token: %w", err)
	}

	return user.Shopify.StoreDomain, token, nil
}

// ImportProduct imports one product by Shopify id. When a listing for the
// (seller, product) pair exists it is returned with AlreadyExists set;
// nothing is ever overwritten.
func (s *ImportService) ImportProduct(ctx context.Context, userID string, shopifyProductID int64) (*ImportResult, error) {
	shop, token, err := s.connection(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.listings.FindByShopifyProduct(ctx, userID, shopifyProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.ListingsSkipped.Inc()
		return &ImportResult{Listing: existing, AlreadyExists: true}, nil
	}

	product, err := s.client.GetProduct(ctx, shop, token, shopifyProductID)
	if err != nil {
		return nil, err
	}

	listing := s.transformProduct(product, userID)
	if err := s.listings.Insert(ctx, listing); err != nil {
		if errors.Is(err, domain.ErrDuplicateListing) {
			// Lost a race with a concurrent import; the unique index kept
			// the table consistent, so report the surviving row.
			winner, ferr := s.listings.FindByShopifyProduct(ctx, userID, shopifyProductID)
			if ferr != nil {
				return nil, ferr
			}
			metrics.ListingsSkipped.Inc()
			return &ImportResult{Listing: winner, AlreadyExists: true}, nil
		}
		return nil, err
	}

	metrics.ListingsImported.Inc()
	s.logger.Info().
		Str("user_id", userID).
		Int64("shopify_product_id", shopifyProductID).
		Str("listing_id", listing.ID).
		Msg("Product imported")

	return &ImportResult{Listing: listing}, nil
}

// ListStoreProducts proxies the store's product page without importing
// anything. Sellers use it to preview what a bulk import would pull in.
func (s *ImportService) ListStoreProducts(ctx context.Context, userID string, limit int) ([]goshopify.Product, error) {
	shop, token, err := s.connection(ctx, userID)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > bulkImportLimit {
		limit = bulkImportLimit
	}

	return s.client.ListProducts(ctx, shop, token, limit)
}

// ImportAll imports up to one page of the store's products. Each item is
// handled independently; per-item failures are collected and never abort
// the batch.
func (s *ImportService) ImportAll(ctx context.Context, userID string) (*BulkImportResult, error) {
	shop, token, err := s.connection(ctx, userID)
	if err != nil {
		return nil, err
	}

	products, err := s.client.ListProducts(ctx, shop, token, bulkImportLimit)
	if err != nil {
		return nil, err
	}

	result := &BulkImportResult{
		Imported: []*domain.Listing{},
		Skipped:  []SkippedProduct{},
		Failures: []ImportFailure{},
	}

	for i := range products {
		product := &products[i]
		productID := int64(product.Id)

		existing, err := s.listings.FindByShopifyProduct(ctx, userID, productID)
		if err != nil {
			metrics.ImportErrors.Inc()
			result.Failures = append(result.Failures, ImportFailure{
				ShopifyProductID: productID,
				Title:            product.Title,
				Error:            err.Error(),
			})
			continue
		}
		if existing != nil {
			metrics.ListingsSkipped.Inc()
			result.Skipped = append(result.Skipped, SkippedProduct{
				ShopifyProductID: productID,
				ListingID:        existing.ID,
				Title:            product.Title,
			})
			continue
		}

		listing := s.transformProduct(product, userID)
		if err := s.listings.Insert(ctx, listing); err != nil {
			if errors.Is(err, domain.ErrDuplicateListing) {
				metrics.ListingsSkipped.Inc()
				result.Skipped = append(result.Skipped, SkippedProduct{
					ShopifyProductID: productID,
					Title:            product.Title,
				})
				continue
			}
			metrics.ImportErrors.Inc()
			result.Failures = append(result.Failures, ImportFailure{
				ShopifyProductID: productID,
				Title:            product.Title,
				Error:            err.Error(),
			})
			continue
		}

		metrics.ListingsImported.Inc()
		result.Imported = append(result.Imported, listing)
	}

	s.logger.Info().
		Str("user_id", userID).
		Int("imported", len(result.Imported)).
		Int("skipped", len(result.Skipped)).
		Int("errors", len(result.Failures)).
		Msg("Bulk import finished")

	return result, nil
}

// transformProduct maps one Shopify product onto a listing. Pricing, SKU
// and inventory come from the first variant only; multi-variant products
// lose the rest.
func (s *ImportService) transformProduct(product *goshopify.Product, sellerID string) *domain.Listing {
	now := s.now()
	productID := int64(product.Id)

	listing := &domain.Listing{
		ID:               uuid.NewString(),
		SellerID:         sellerID,
		ShopifyProductID: &productID,
		Title:            product.Title,
		Description:      stripHTML(product.BodyHTML),
		Category:         importedCategory,
		ListingType:      domain.DeriveListingType(product.ProductType),
		Brand:            product.Vendor,
		Status:           domain.ListingStatusArchived,
		Source:           domain.ListingSourceShopify,
		ExpiresAt:        now.Add(importedListingTTL),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if string(product.Status) == "active" {
		listing.Status = domain.ListingStatusActive
	}

	if len(product.Variants) > 0 {
		variant := product.Variants[0]
		variantID := int64(variant.Id)
		listing.ShopifyVariantID = &variantID
		listing.SKU = variant.Sku
		listing.InventoryQuantity = variant.InventoryQuantity

		if variant.Price != nil {
			listing.Price = variant.Price.InexactFloat64()
		}
		if variant.CompareAtPrice != nil {
			compareAt := variant.CompareAtPrice.InexactFloat64()
			listing.CompareAtPrice = &compareAt
		}
		if variant.Weight != nil && variant.Weight.Sign() > 0 {
			listing.Dimensions = map[string]any{
				"weight":      variant.Weight.InexactFloat64(),
				"weight_unit": variant.WeightUnit,
			}
		}
	}

	for _, image := range product.Images {
		listing.Images = append(listing.Images, image.Src)
	}

	return listing
}

// stripHTML removes tags from Shopify's body_html for display purposes.
func stripHTML(html string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(html, ""))
}
