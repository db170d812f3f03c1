package repository

import (
	"context"
	"fmt"
	"time"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/infrastructure/repository/entity"
	"remodely-shopify-core/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoListingRepository implements ListingRepository using MongoDB
type MongoListingRepository struct {
	collection *mongo.Collection
}

var _ ports.ListingRepository = (*MongoListingRepository)(nil)

// NewMongoListingRepository creates a new MongoDB listing repository
func NewMongoListingRepository(db *mongo.Database) *MongoListingRepository {
	return &MongoListingRepository{
		collection: db.Collection("listings"),
	}
}

// EnsureIndexes creates the listing indexes. The partial unique index on
// (seller_id, shopify_product_id) is what makes imports idempotent under
// concurrency; manual listings have no shopify_product_id and are exempt.
func (r *MongoListingRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "seller_id", Value: 1}, {Key: "shopify_product_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"shopify_product_id": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "seller_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "shopify_product_id", Value: 1}},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create listing indexes: %w", err)
	}
	return nil
}

// Insert stores a new listing
func (r *MongoListingRepository) Insert(ctx context.Context, listing *domain.Listing) error {
	doc := entity.MongoListingDocFromDomain(listing)
	now := time.Now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateListing
	}
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	return nil
}

// FindByShopifyProduct retrieves an imported listing by its dedup key
func (r *MongoListingRepository) FindByShopifyProduct(ctx context.Context, sellerID string, shopifyProductID int64) (*domain.Listing, error) {
	var doc entity.MongoListingDoc
	filter := bson.M{
		"seller_id":          sellerID,
		"shopify_product_id": shopifyProductID,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find listing: %w", err)
	}

	return doc.ToDomain(), nil
}

// List retrieves a seller's listings with optional source/status filters and
// limit/offset pagination, newest first, plus the unpaginated total.
func (r *MongoListingRepository) List(ctx context.Context, sellerID string, filter domain.ListingFilter) ([]*domain.Listing, int64, error) {
	query := bson.M{"seller_id": sellerID}
	if filter.Source != "" {
		query["source"] = filter.Source
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}
	defer cursor.Close(ctx)

	var listings []*domain.Listing
	for cursor.Next(ctx) {
		var doc entity.MongoListingDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("failed to decode listing: %w", err)
		}
		listings = append(listings, doc.ToDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %w", err)
	}

	return listings, total, nil
}

// Delete removes a listing owned by sellerID
func (r *MongoListingRepository) Delete(ctx context.Context, id string, sellerID string) error {
	filter := bson.M{"_id": id, "seller_id": sellerID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ArchiveByShopifyProduct archives a seller's imported listings for a product
func (r *MongoListingRepository) ArchiveByShopifyProduct(ctx context.Context, sellerID string, shopifyProductID int64) (int64, error) {
	filter := bson.M{
		"seller_id":          sellerID,
		"shopify_product_id": shopifyProductID,
	}
	update := bson.M{
		"$set": bson.M{
			"status":    string(domain.ListingStatusArchived),
			"updatedAt": time.Now(),
		},
	}

	result, err := r.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to archive listings: %w", err)
	}

	return result.ModifiedCount, nil
}
