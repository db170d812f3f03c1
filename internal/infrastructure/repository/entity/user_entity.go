package entity

import (
	"time"

	"remodely-shopify-core/internal/domain"
)

// MongoShopifyCredentials is the shopify subdocument on a user row. All
// fields are cleared together on disconnect; no partial states persist.
type MongoShopifyCredentials struct {
	Connected          bool      `bson:"connected"`
	StoreDomain        string    `bson:"store_domain,omitempty"`
	AccessToken        string    `bson:"access_token,omitempty"`
	Scope              string    `bson:"scope,omitempty"`
	StoreName          string    `bson:"store_name,omitempty"`
	WebhooksRegistered bool      `bson:"webhooks_registered,omitempty"`
	ConnectedAt        time.Time `bson:"connected_at,omitempty"`
}

// MongoUserDoc represents a user in MongoDB
type MongoUserDoc struct {
	ID        string                   `bson:"_id"`
	Email     string                   `bson:"email,omitempty"`
	Shopify   *MongoShopifyCredentials `bson:"shopify,omitempty"`
	UpdatedAt time.Time                `bson:"updatedAt,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoUserDoc) ToDomain() *domain.User {
	user := &domain.User{
		ID:    d.ID,
		Email: d.Email,
	}
	if d.Shopify != nil {
		user.Shopify = &domain.ShopifyCredentials{
			Connected:          d.Shopify.Connected,
			StoreDomain:        d.Shopify.StoreDomain,
			AccessToken:        d.Shopify.AccessToken,
			Scope:              d.Shopify.Scope,
			StoreName:          d.Shopify.StoreName,
			WebhooksRegistered: d.Shopify.WebhooksRegistered,
			ConnectedAt:        d.Shopify.ConnectedAt,
		}
	}
	return user
}

// MongoShopifyCredentialsFromDomain converts credentials to a MongoDB subdocument
func MongoShopifyCredentialsFromDomain(creds *domain.ShopifyCredentials) *MongoShopifyCredentials {
	return &MongoShopifyCredentials{
		Connected:          creds.Connected,
		StoreDomain:        creds.StoreDomain,
		AccessToken:        creds.AccessToken,
		Scope:              creds.Scope,
		StoreName:          creds.StoreName,
		WebhooksRegistered: creds.WebhooksRegistered,
		ConnectedAt:        creds.ConnectedAt,
	}
}
