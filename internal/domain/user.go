package domain

import "time"

// ShopifyCredentials is the per-user credential set created by a successful
// OAuth callback. AccessToken is present if and only if Connected is true;
// disconnect clears the whole set at once, never a subset.
type ShopifyCredentials struct {
	Connected          bool      `json:"connected"`
	StoreDomain        string    `json:"store_domain"`
	AccessToken        string    `json:"-"`
	Scope              string    `json:"scope"`
	StoreName          string    `json:"store_name"`
	WebhooksRegistered bool      `json:"webhooks_registered"`
	ConnectedAt        time.Time `json:"connected_at"`
}

// User is the marketplace account a Shopify store can be connected to.
// Only the fields this integration reads or writes are modeled here.
type User struct {
	ID      string              `json:"id"`
	Email   string              `json:"email"`
	Shopify *ShopifyCredentials `json:"shopify,omitempty"`
}

// Connected reports whether the user has a live Shopify connection.
func (u *User) Connected() bool {
	return u.Shopify != nil && u.Shopify.Connected && u.Shopify.AccessToken != ""
}
