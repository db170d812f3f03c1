package domain

import (
	"strings"
	"time"
)

// ListingType classifies a stone/tile marketplace listing.
type ListingType string

const (
	ListingTypeSlab    ListingType = "Slab"
	ListingTypeRemnant ListingType = "Remnant"
	ListingTypeTile    ListingType = "Tile"
	ListingTypePrefab  ListingType = "Prefab"
)

// ListingStatus is the visibility state of a listing.
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "active"
	ListingStatusArchived ListingStatus = "archived"
)

// ListingSource records where a listing came from.
type ListingSource string

const (
	ListingSourceManual  ListingSource = "manual"
	ListingSourceShopify ListingSource = "shopify"
)

// Listing is a marketplace row. For imported listings the pair
// (SellerID, ShopifyProductID) is unique; it is the de-duplication key
// enforced by the listings collection index.
type Listing struct {
	ID                string         `json:"id"`
	SellerID          string         `json:"seller_id"`
	ShopifyProductID  *int64         `json:"shopify_product_id,omitempty"`
	ShopifyVariantID  *int64         `json:"shopify_variant_id,omitempty"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	ListingType       ListingType    `json:"listing_type"`
	Price             float64        `json:"price"`
	CompareAtPrice    *float64       `json:"compare_at_price,omitempty"`
	Images            []string       `json:"images"`
	Location          string         `json:"location,omitempty"`
	Brand             string         `json:"brand,omitempty"`
	SKU               string         `json:"sku,omitempty"`
	InventoryQuantity int            `json:"inventory_quantity"`
	Dimensions        map[string]any `json:"dimensions,omitempty"`
	Status            ListingStatus  `json:"status"`
	Source            ListingSource  `json:"source"`
	ExpiresAt         time.Time      `json:"expires_at"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// ListingFilter narrows a seller's listing query.
type ListingFilter struct {
	Source string
	Status string
	Limit  int
	Offset int
}

// DeriveListingType maps a Shopify product_type onto the marketplace
// taxonomy by case-insensitive substring match. Anything unrecognized is
// a Slab, not an error.
func DeriveListingType(productType string) ListingType {
	pt := strings.ToLower(productType)
	switch {
	case strings.Contains(pt, "remnant"):
		return ListingTypeRemnant
	case strings.Contains(pt, "tile"):
		return ListingTypeTile
	case strings.Contains(pt, "prefab"):
		return ListingTypePrefab
	default:
		return ListingTypeSlab
	}
}
