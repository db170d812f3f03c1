package domain

import (
	"regexp"
	"strings"
)

// shopDomainPattern is what Shopify sends back in the callback: the bare
// myshopify domain, no protocol, no path.
var shopDomainPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.myshopify\.com$`)

// NormalizeShopName reduces user input like "HTTPS://MyStore.myshopify.com/"
// to the bare store name ("mystore").
func NormalizeShopName(raw string) string {
	shop := strings.ToLower(strings.TrimSpace(raw))
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	shop = strings.TrimSuffix(shop, "/")
	shop = strings.TrimSuffix(shop, ".myshopify.com")
	return shop
}

// FullShopDomain re-appends the myshopify suffix to a normalized store name.
func FullShopDomain(name string) string {
	return name + ".myshopify.com"
}

// ValidShopDomain reports whether a callback shop parameter is a plausible
// myshopify domain.
func ValidShopDomain(shop string) bool {
	return shopDomainPattern.MatchString(shop)
}
