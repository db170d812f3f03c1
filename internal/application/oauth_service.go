package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"remodely-shopify-core/internal/domain"
	"remodely-shopify-core/internal/ports"

	"github.com/rs/zerolog"
)

// OAuthScopes are the delegated permissions requested from every store.
var OAuthScopes = []string{"read_products", "write_products", "read_orders", "read_customers"}

// OAuthService orchestrates the Shopify connect flow: authorize-URL
// construction, callback validation, token exchange, webhook registration,
// and credential persistence.
type OAuthService struct {
	users     ports.UserRepository
	states    ports.StateStore
	client    ports.ShopifyClient
	verifier  ports.HMACVerifier
	crypt     ports.EncryptionService
	registrar *WebhookRegistrar
	logger    zerolog.Logger

	apiURL       string
	clientID     string
	clientSecret string

	now func() time.Time
}

// NewOAuthService creates a new OAuth handshake service.
func NewOAuthService(
	users ports.UserRepository,
	states ports.StateStore,
	client ports.ShopifyClient,
	verifier ports.HMACVerifier,
	crypt ports.EncryptionService,
	registrar *WebhookRegistrar,
	logger zerolog.Logger,
	apiURL string,
	clientID string,
	clientSecret string,
) *OAuthService {
	return &OAuthService{
		users:        users,
		states:       states,
		client:       client,
		verifier:     verifier,
		crypt:        crypt,
		registrar:    registrar,
		logger:       logger,
		apiURL:       apiURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		now:          time.Now,
	}
}

// AuthorizeURLResult is the response of RequestAuthorizeURL.
type AuthorizeURLResult struct {
	URL  string
	Shop string
}

// RequestAuthorizeURL begins the handshake: it normalizes the shop name,
// stores a single-use CSRF state with a 10-minute expiry, and returns the
// store's authorize URL.
func (s *OAuthService) RequestAuthorizeURL(ctx context.Context, userID string, rawShop string) (*AuthorizeURLResult, error) {
	if s.clientID == "" {
		return nil, fmt.Errorf("%w: SHOPIFY_CLIENT_ID is not set", domain.ErrConfiguration)
	}

	shop := domain.NormalizeShopName(rawShop)
	if shop == "" {
		return nil, fmt.Errorf("%w: shop is required", domain.ErrBadRequest)
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}
	state := hex.EncodeToString(stateBytes)

	pending := &domain.PendingOAuthState{
		UserID:    userID,
		Shop:      shop,
		ExpiresAt: s.now().Add(domain.PendingStateTTL),
	}
	if err := s.states.Put(ctx, state, pending); err != nil {
		return nil, fmt.Errorf("failed to store pending state: %w", err)
	}

	redirectURI := s.apiURL + "/api/shopify/auth/callback"
	authURL := s.client.AuthorizeURL(domain.FullShopDomain(shop), OAuthScopes, redirectURI, state)

	s.logger.Info().
		Str("user_id", userID).
		Str("shop", shop).
		Msg("OAuth handshake started")

	return &AuthorizeURLResult{URL: authURL, Shop: shop}, nil
}

// CallbackResult is the terminal state of a successful handshake.
type CallbackResult struct {
	Shop               string
	StoreName          string
	WebhooksRegistered bool
}

// HandleCallback completes the handshake. The state token is consumed on
// first use whether or not the rest of the flow succeeds; webhook
// registration failures are logged but do not abort the connection.
func (s *OAuthService) HandleCallback(ctx context.Context, query url.Values) (*CallbackResult, error) {
	code := query.Get("code")
	shop := query.Get("shop")
	state := query.Get("state")
	if code == "" || shop == "" || state == "" {
		return nil, fmt.Errorf("%w: code, shop and state are required", domain.ErrBadRequest)
	}

	if query.Get("hmac") != "" && s.clientSecret != "" {
		if !s.verifier.VerifyQuery(query) {
			s.logger.Warn().Str("shop", shop).Msg("OAuth callback HMAC verification failed")
			return nil, domain.ErrInvalidSignature
		}
	}

	if !domain.ValidShopDomain(shop) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidShopDomain, shop)
	}

	pending, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, fmt.Errorf("failed to consume pending state: %w", err)
	}
	if pending == nil || pending.Expired(s.now()) {
		return nil, domain.ErrInvalidOrExpiredState
	}
	if domain.FullShopDomain(pending.Shop) != shop {
		return nil, domain.ErrInvalidOrExpiredState
	}

	token, err := s.client.ExchangeToken(ctx, shop, code)
	if err != nil {
		s.logger.Error().Err(err).Str("shop", shop).Msg("Token exchange failed")
		return nil, err
	}

	// Shop metadata is cosmetic; fall back to the domain when the call fails.
	storeName := shop
	if shopInfo, err := s.client.GetShop(ctx, shop, token.AccessToken); err == nil && shopInfo != nil && shopInfo.Name != "" {
		storeName = shopInfo.Name
	} else if err != nil {
		s.logger.Warn().Err(err).Str("shop", shop).Msg("Failed to fetch shop metadata")
	}

	registrations := s.registrar.RegisterAll(ctx, shop, token.AccessToken)
	webhooksRegistered := true
	for _, reg := range registrations {
		if !reg.Success {
			webhooksRegistered = false
		}
	}

	encryptedToken, err := s.crypt.Encrypt(token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	creds := &domain.ShopifyCredentials{
		Connected:          true,
		StoreDomain:        shop,
		AccessToken:        encryptedToken,
		Scope:              token.Scope,
		StoreName:          storeName,
		WebhooksRegistered: webhooksRegistered,
		ConnectedAt:        s.now(),
	}
	if err := s.users.SaveShopifyCredentials(ctx, pending.UserID, creds); err != nil {
		return nil, fmt.Errorf("failed to save credentials: %w", err)
	}

	s.logger.Info().
		Str("user_id", pending.UserID).
		Str("shop", shop).
		Bool("webhooks_registered", webhooksRegistered).
		Msg("Shopify store connected")

	return &CallbackResult{
		Shop:               shop,
		StoreName:          storeName,
		WebhooksRegistered: webhooksRegistered,
	}, nil
}

// Status returns the user's connection state. The credential set is
// returned without the access token; nil means not connected.
func (s *OAuthService) Status(ctx context.Context, userID string) (*domain.ShopifyCredentials, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.Connected() {
		return nil, nil
	}

	creds := *user.Shopify
	creds.AccessToken = ""
	return &creds, nil
}

// Disconnect clears every shopify credential field at once.
func (s *OAuthService) Disconnect(ctx context.Context, userID string) error {
	if err := s.users.ClearShopifyCredentials(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Msg("Shopify store disconnected")
	return nil
}
