package application

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// fakeUserRepo is an in-memory ports.UserRepository.
type fakeUserRepo struct {
	users   map[string]*domain.User
	saved   map[string]*domain.ShopifyCredentials
	cleared []string
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{
		users: make(map[string]*domain.User),
		saved: make(map[string]*domain.ShopifyCredentials),
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByStoreDomain(_ context.Context, storeDomain string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Shopify != nil && u.Shopify.Connected && u.Shopify.StoreDomain == storeDomain {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) SaveShopifyCredentials(_ context.Context, userID string, creds *domain.ShopifyCredentials) error {
	r.saved[userID] = creds
	u, ok := r.users[userID]
	if !ok {
		u = &domain.User{ID: userID}
		r.users[userID] = u
	}
	u.Shopify = creds
	return nil
}

func (r *fakeUserRepo) ClearShopifyCredentials(_ context.Context, userID string) error {
	r.cleared = append(r.cleared, userID)
	if u, ok := r.users[userID]; ok {
		u.Shopify = nil
	}
	return nil
}

// fakeListingRepo is an in-memory ports.ListingRepository enforcing the
// (seller, shopify product) unique key the way the real index does.
type fakeListingRepo struct {
	listings   map[string]*domain.Listing
	insertErr  error
	missFinds  int // make the next N FindByShopifyProduct calls miss
	lastFilter domain.ListingFilter
}

func newFakeListingRepo(listings ...*domain.Listing) *fakeListingRepo {
	r := &fakeListingRepo{listings: make(map[string]*domain.Listing)}
	for _, l := range listings {
		r.listings[l.ID] = l
	}
	return r
}

func (r *fakeListingRepo) Insert(_ context.Context, listing *domain.Listing) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	if listing.ShopifyProductID != nil {
		for _, existing := range r.listings {
			if existing.SellerID == listing.SellerID &&
				existing.ShopifyProductID != nil &&
				*existing.ShopifyProductID == *listing.ShopifyProductID {
				return domain.ErrDuplicateListing
			}
		}
	}
	r.listings[listing.ID] = listing
	return nil
}

func (r *fakeListingRepo) FindByShopifyProduct(_ context.Context, sellerID string, shopifyProductID int64) (*domain.Listing, error) {
	if r.missFinds > 0 {
		r.missFinds--
		return nil, nil
	}
	for _, l := range r.listings {
		if l.SellerID == sellerID && l.ShopifyProductID != nil && *l.ShopifyProductID == shopifyProductID {
			return l, nil
		}
	}
	return nil, nil
}

func (r *fakeListingRepo) List(_ context.Context, sellerID string, filter domain.ListingFilter) ([]*domain.Listing, int64, error) {
	r.lastFilter = filter
	var out []*domain.Listing
	for _, l := range r.listings {
		if l.SellerID != sellerID {
			continue
		}
		if filter.Source != "" && string(l.Source) != filter.Source {
			continue
		}
		if filter.Status != "" && string(l.Status) != filter.Status {
			continue
		}
		out = append(out, l)
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) Delete(_ context.Context, id string, sellerID string) error {
	l, ok := r.listings[id]
	if !ok || l.SellerID != sellerID {
		return domain.ErrNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *fakeListingRepo) ArchiveByShopifyProduct(_ context.Context, sellerID string, shopifyProductID int64) (int64, error) {
	var n int64
	for _, l := range r.listings {
		if l.SellerID == sellerID && l.ShopifyProductID != nil && *l.ShopifyProductID == shopifyProductID {
			l.Status = domain.ListingStatusArchived
			n++
		}
	}
	return n, nil
}

// fakeShopifyClient is a configurable ports.ShopifyClient.
type fakeShopifyClient struct {
	authorizeURLCalls []string // state values seen
	lastAuthorizeShop string

	exchangeToken *ports.TokenResponse
	exchangeErr   error

	shop       *goshopify.Shop
	shopErr    error
	product    *goshopify.Product
	productErr error
	products   []goshopify.Product
	listErr    error

	webhookErrs    map[string]error // per topic
	webhooksMade   []string
	webhookAddress map[string]string
}

func newFakeShopifyClient() *fakeShopifyClient {
	return &fakeShopifyClient{
		webhookErrs:    make(map[string]error),
		webhookAddress: make(map[string]string),
	}
}

func (c *fakeShopifyClient) AuthorizeURL(shop string, scopes []string, redirectURI string, state string) string {
	c.authorizeURLCalls = append(c.authorizeURLCalls, state)
	c.lastAuthorizeShop = shop
	return fmt.Sprintf("https://%s/admin/oauth/authorize?client_id=test&scope=%s&redirect_uri=%s&state=%s",
		shop, strings.Join(scopes, ","), redirectURI, state)
}

func (c *fakeShopifyClient) ExchangeToken(_ context.Context, _ string, _ string) (*ports.TokenResponse, error) {
	if c.exchangeErr != nil {
		return nil, c.exchangeErr
	}
	return c.exchangeToken, nil
}

func (c *fakeShopifyClient) GetShop(_ context.Context, _ string, _ string) (*goshopify.Shop, error) {
	return c.shop, c.shopErr
}

func (c *fakeShopifyClient) GetProduct(_ context.Context, _ string, _ string, _ int64) (*goshopify.Product, error) {
	return c.product, c.productErr
}

func (c *fakeShopifyClient) ListProducts(_ context.Context, _ string, _ string, _ int) ([]goshopify.Product, error) {
	return c.products, c.listErr
}

func (c *fakeShopifyClient) CreateWebhook(_ context.Context, _ string, _ string, topic string, address string) (*goshopify.Webhook, error) {
	c.webhooksMade = append(c.webhooksMade, topic)
	c.webhookAddress[topic] = address
	if err, ok := c.webhookErrs[topic]; ok {
		return nil, err
	}
	return &goshopify.Webhook{Topic: topic, Address: address}, nil
}

func shopNamed(name string) *goshopify.Shop {
	return &goshopify.Shop{Name: name}
}

// fakeVerifier returns a fixed verdict.
type fakeVerifier struct {
	queryOK bool
	bodyOK  bool
}

func (v *fakeVerifier) VerifyQuery(_ url.Values) bool { return v.queryOK }

func (v *fakeVerifier) VerifyBody(_ []byte, _ string) bool { return v.bodyOK }

// plainCrypt marks strings instead of encrypting, keeping tests readable.
type plainCrypt struct{}

func (plainCrypt) Encrypt(plaintext string) (string, error) { return "enc:" + plaintext, nil }

func (plainCrypt) Decrypt(ciphertext string) (string, error) {
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}
