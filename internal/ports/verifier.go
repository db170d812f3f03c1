package ports

import "net/url"

// HMACVerifier defines the interface for authenticating Shopify-signed
// messages
type HMACVerifier interface {
	// VerifyQuery checks the hex hmac parameter of an OAuth callback query.
	VerifyQuery(params url.Values) bool

	// VerifyBody checks the base64 signature header of a webhook delivery
	// against the raw request body.
	VerifyBody(raw []byte, header string) bool
}
