package application

import (
	"context"
	"testing"
	"time"

	"remodely-shopify-core/internal/domain"

	goshopify "github.com/bold-commerce/go-shopify/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func connectedUser() *domain.User {
	return &domain.User{
		ID: "user-1",
		Shopify: &domain.ShopifyCredentials{
			Connected:   true,
			StoreDomain: "mystore.myshopify.com",
			AccessToken: "enc:shpat_token",
		},
	}
}

func sampleProduct(id uint64) *goshopify.Product {
	return &goshopify.Product{
		Id:          id,
		Title:       "Calacatta Remnant 30x50",
		BodyHTML:    "<p>Beautiful <b>marble</b> remnant.</p>",
		ProductType: "Granite Remnant",
		Vendor:      "StoneWorks",
		Status:      "active",
		Variants: []goshopify.Variant{
			{
				Id:                9001,
				Sku:               "REM-30x50",
				Price:             decPtr(1299.99),
				CompareAtPrice:    decPtr(1499.99),
				Weight:            decPtr(180),
				WeightUnit:        "lb",
				InventoryQuantity: 1,
			},
			{Id: 9002, Sku: "REM-other", Price: decPtr(999)},
		},
		Images: []goshopify.Image{
			{Src: "https://cdn.shopify.com/img1.jpg"},
			{Src: "https://cdn.shopify.com/img2.jpg"},
		},
	}
}

type importFixture struct {
	svc      *ImportService
	users    *fakeUserRepo
	listings *fakeListingRepo
	client   *fakeShopifyClient
	now      time.Time
}

func newImportFixture(t *testing.T) *importFixture {
	t.Helper()

	users := newFakeUserRepo(connectedUser())
	listings := newFakeListingRepo()
	client := newFakeShopifyClient()
	svc := NewImportService(users, listings, client, plainCrypt{}, zerolog.Nop())

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	return &importFixture{svc: svc, users: users, listings: listings, client: client, now: now}
}

func existingListing(sellerID string, productID int64) *domain.Listing {
	return &domain.Listing{
		ID:               "listing-existing",
		SellerID:         sellerID,
		ShopifyProductID: &productID,
		Title:            "Already imported",
		Source:           domain.ListingSourceShopify,
		Status:           domain.ListingStatusActive,
	}
}

func TestImportProduct(t *testing.T) {
	t.Parallel()

	t.Run("maps the product onto a listing", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.client.product = sampleProduct(42)

		result, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		require.NoError(t, err)
		require.False(t, result.AlreadyExists)

		l := result.Listing
		assert.Equal(t, "user-1", l.SellerID)
		require.NotNil(t, l.ShopifyProductID)
		assert.Equal(t, int64(42), *l.ShopifyProductID)
		assert.Equal(t, "Calacatta Remnant 30x50", l.Title)
		assert.Equal(t, "Beautiful marble remnant.", l.Description)
		assert.Equal(t, "Stone & Tile", l.Category)
		assert.Equal(t, domain.ListingTypeRemnant, l.ListingType)
		assert.Equal(t, "StoneWorks", l.Brand)
		assert.Equal(t, domain.ListingStatusActive, l.Status)
		assert.Equal(t, domain.ListingSourceShopify, l.Source)
		assert.Equal(t, f.now.Add(30*24*time.Hour), l.ExpiresAt)

		// First variant only.
		require.NotNil(t, l.ShopifyVariantID)
		assert.Equal(t, int64(9001), *l.ShopifyVariantID)
		assert.Equal(t, "REM-30x50", l.SKU)
		assert.Equal(t, 1, l.InventoryQuantity)
		assert.InDelta(t, 1299.99, l.Price, 0.001)
		require.NotNil(t, l.CompareAtPrice)
		assert.InDelta(t, 1499.99, *l.CompareAtPrice, 0.001)

		assert.Equal(t, []string{
			"https://cdn.shopify.com/img1.jpg",
			"https://cdn.shopify.com/img2.jpg",
		}, l.Images)
		assert.Equal(t, map[string]any{"weight": 180.0, "weight_unit": "lb"}, l.Dimensions)
	})

	t.Run("non-active status maps to archived", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		product := sampleProduct(42)
		product.Status = "draft"
		f.client.product = product

		result, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		require.NoError(t, err)
		assert.Equal(t, domain.ListingStatusArchived, result.Listing.Status)
	})

	t.Run("product without variants or weight", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		product := sampleProduct(42)
		product.Variants = nil
		f.client.product = product

		result, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		require.NoError(t, err)
		assert.Nil(t, result.Listing.ShopifyVariantID)
		assert.Zero(t, result.Listing.Price)
		assert.Nil(t, result.Listing.Dimensions)
	})

	t.Run("existing listing is skipped, never updated", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.listings.listings["listing-existing"] = existingListing("user-1", 42)

		result, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		require.NoError(t, err)
		assert.True(t, result.AlreadyExists)
		assert.Equal(t, "listing-existing", result.Listing.ID)
		assert.Equal(t, "Already imported", result.Listing.Title)
		assert.Len(t, f.listings.listings, 1)
	})

	t.Run("lost insert race reports the surviving row", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.client.product = sampleProduct(42)

		// The find misses but the unique index rejects the insert, as happens
		// when two imports of the same product interleave.
		f.listings.missFinds = 1
		f.listings.insertErr = domain.ErrDuplicateListing
		winner := existingListing("user-1", 42)
		f.listings.listings[winner.ID] = winner

		result, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		require.NoError(t, err)
		assert.True(t, result.AlreadyExists)
		assert.Equal(t, winner.ID, result.Listing.ID)
	})

	t.Run("fetch failure propagates", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.client.productErr = domain.ErrShopifyFetchFailed

		_, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		assert.ErrorIs(t, err, domain.ErrShopifyFetchFailed)
	})

	t.Run("not connected", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.users.users["user-1"].Shopify = nil

		_, err := f.svc.ImportProduct(context.Background(), "user-1", 42)
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})
}

func TestImportAll(t *testing.T) {
	t.Parallel()

	t.Run("skips already imported products", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.client.products = []goshopify.Product{*sampleProduct(1), *sampleProduct(2), *sampleProduct(3)}
		f.listings.listings["listing-existing"] = existingListing("user-1", 2)

		result, err := f.svc.ImportAll(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Len(t, result.Imported, 2)
		assert.Len(t, result.Skipped, 1)
		assert.Empty(t, result.Failures)
		assert.Equal(t, int64(2), result.Skipped[0].ShopifyProductID)
		assert.Equal(t, "listing-existing", result.Skipped[0].ListingID)

		// 1 pre-existing + 2 new.
		assert.Len(t, f.listings.listings, 3)
	})

	t.Run("per-item failures never abort the batch", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.client.products = []goshopify.Product{*sampleProduct(1), *sampleProduct(2)}
		f.listings.insertErr = assert.AnError

		result, err := f.svc.ImportAll(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
		assert.Len(t, result.Failures, 2)
		assert.Equal(t, int64(1), result.Failures[0].ShopifyProductID)
	})

	t.Run("list failure propagates", func(t *testing.T) {
		t.Parallel()
		f := newImportFixture(t)
		f.client.listErr = domain.ErrShopifyFetchFailed

		_, err := f.svc.ImportAll(context.Background(), "user-1")
		assert.ErrorIs(t, err, domain.ErrShopifyFetchFailed)
	})
}

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tags removed", in: "<p>Hello <b>world</b></p>", want: "Hello world"},
		{name: "plain text untouched", in: "no markup here", want: "no markup here"},
		{name: "empty", in: "", want: ""},
		{name: "entities survive", in: "<p>a &amp; b</p>", want: "a &amp; b"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, stripHTML(tt.in))
		})
	}
}
