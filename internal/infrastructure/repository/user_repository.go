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
)

// MongoUserRepository implements UserRepository using MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoDB user repository
func NewMongoUserRepository(db *mongo.Database) ports.UserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
	}
}

// GetByID retrieves a user by id
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var doc entity.MongoUserDoc
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return doc.ToDomain(), nil
}

// GetByStoreDomain retrieves the user whose Shopify store matches the domain
func (r *MongoUserRepository) GetByStoreDomain(ctx context.Context, storeDomain string) (*domain.User, error) {
	var doc entity.MongoUserDoc
	filter := bson.M{
		"shopify.store_domain": storeDomain,
		"shopify.connected":    true,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by store domain: %w", err)
	}

	return doc.ToDomain(), nil
}

// SaveShopifyCredentials replaces the user's whole shopify subdocument
func (r *MongoUserRepository) SaveShopifyCredentials(ctx context.Context, userID string, creds *domain.ShopifyCredentials) error {
	update := bson.M{
		"$set": bson.M{
			"shopify":   entity.MongoShopifyCredentialsFromDomain(creds),
			"updatedAt": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to save shopify credentials: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// ClearShopifyCredentials nulls the whole shopify subdocument in one write
func (r *MongoUserRepository) ClearShopifyCredentials(ctx context.Context, userID string) error {
	update := bson.M{
		"$unset": bson.M{"shopify": ""},
		"$set":   bson.M{"updatedAt": time.Now()},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("failed to clear shopify credentials: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrNotFound
	}

	return nil
}
