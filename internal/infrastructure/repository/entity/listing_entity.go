package entity

import (
	"time"

	"remodely-shopify-core/internal/domain"
)

// MongoListingDoc represents a marketplace listing in MongoDB
type MongoListingDoc struct {
	ID                string         `bson:"_id"`
	SellerID          string         `bson:"seller_id"`
	ShopifyProductID  *int64         `bson:"shopify_product_id,omitempty"`
	ShopifyVariantID  *int64         `bson:"shopify_variant_id,omitempty"`
	Title             string         `bson:"title"`
	Description       string         `bson:"description,omitempty"`
	Category          string         `bson:"category"`
	ListingType       string         `bson:"listing_type"`
	Price             float64        `bson:"price"`
	CompareAtPrice    *float64       `bson:"compare_at_price,omitempty"`
	Images            []string       `bson:"images,omitempty"`
	Location          string         `bson:"location,omitempty"`
	Brand             string         `bson:"brand,omitempty"`
	SKU               string         `bson:"sku,omitempty"`
	InventoryQuantity int            `bson:"inventory_quantity"`
	Dimensions        map[string]any `bson:"dimensions,omitempty"`
	Status            string         `bson:"status"`
	Source            string         `bson:"source"`
	ExpiresAt         time.Time      `bson:"expires_at,omitempty"`
	CreatedAt         time.Time      `bson:"createdAt"`
	UpdatedAt         time.Time      `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoListingDoc) ToDomain() *domain.Listing {
	return &domain.Listing{
		ID:                d.ID,
		SellerID:          d.SellerID,
		ShopifyProductID:  d.ShopifyProductID,
		ShopifyVariantID:  d.ShopifyVariantID,
		Title:             d.Title,
		Description:       d.Description,
		Category:          d.Category,
		ListingType:       domain.ListingType(d.ListingType),
		Price:             d.Price,
		CompareAtPrice:    d.CompareAtPrice,
		Images:            d.Images,
		Location:          d.Location,
		Brand:             d.Brand,
		SKU:               d.SKU,
		InventoryQuantity: d.InventoryQuantity,
		Dimensions:        d.Dimensions,
		Status:            domain.ListingStatus(d.Status),
		Source:            domain.ListingSource(d.Source),
		ExpiresAt:         d.ExpiresAt,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}

// MongoListingDocFromDomain converts a domain entity to a MongoDB document
func MongoListingDocFromDomain(listing *domain.Listing) *MongoListingDoc {
	return &MongoListingDoc{
		ID:                listing.ID,
		SellerID:          listing.SellerID,
		ShopifyProductID:  listing.ShopifyProductID,
		ShopifyVariantID:  listing.ShopifyVariantID,
		Title:             listing.Title,
		Description:       listing.Description,
		Category:          listing.Category,
		ListingType:       string(listing.ListingType),
		Price:             listing.Price,
		CompareAtPrice:    listing.CompareAtPrice,
		Images:            listing.Images,
		Location:          listing.Location,
		Brand:             listing.Brand,
		SKU:               listing.SKU,
		InventoryQuantity: listing.InventoryQuantity,
		Dimensions:        listing.Dimensions,
		Status:            string(listing.Status),
		Source:            string(listing.Source),
		ExpiresAt:         listing.ExpiresAt,
		CreatedAt:         listing.CreatedAt,
		UpdatedAt:         listing.UpdatedAt,
	}
}
