package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Verifier authenticates the two message shapes Shopify signs: OAuth
// callback query strings (hex HMAC over the sorted parameter set) and
// webhook bodies (base64 HMAC over the raw bytes).
type Verifier struct {
	secret []byte
}

// NewVerifier creates a verifier for the given shared client secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// VerifyQuery checks the hmac parameter of an OAuth callback query. The
// hmac and signature parameters are excluded from the signed message; the
// rest is sorted by key and joined as key=value pairs with "&". Returns
// false when the hmac parameter is absent.
func (v *Verifier) VerifyQuery(params url.Values) bool {
	supplied := params.Get("hmac")
	if supplied == "" {
		return false
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "hmac" || k == "signature" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%s", k, params.Get(k)))
	}
	message := strings.Join(pairs, "&")

	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(message))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(supplied))
}

// VerifyBody checks the X-Shopify-Hmac-Sha256 header of a webhook delivery
// against the raw, unparsed request body. Shopify signs the exact bytes it
// sent, so any re-serialization upstream breaks the check. A missing header
// or undecodable signature is a verification failure, never a panic.
func (v *Verifier) VerifyBody(raw []byte, header string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}

	supplied, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, v.secret)
	mac.Write(raw)

	return hmac.Equal(mac.Sum(nil), supplied)
}
