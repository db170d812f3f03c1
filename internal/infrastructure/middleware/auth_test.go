package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"remodely-shopify-core/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "testsecret"

func makeToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuthMiddleware(t *testing.T) {
	t.Parallel()

	handler := func(gotUserID *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*gotUserID = domain.GetUserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})
	}

	serve := func(authHeader string) (*httptest.ResponseRecorder, string) {
		var userID string
		r := httptest.NewRequest(http.MethodGet, "/api/shopify/status", nil)
		if authHeader != "" {
			r.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		JWTAuthMiddleware(jwtSecret, zerolog.Nop())(handler(&userID)).ServeHTTP(rec, r)
		return rec, userID
	}

	t.Run("valid token sets the user id", func(t *testing.T) {
		t.Parallel()
		token := makeToken(t, jwtSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})

		rec, userID := serve("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", userID)
	})

	t.Run("missing header", func(t *testing.T) {
		t.Parallel()
		rec, _ := serve("")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()
		rec, _ := serve("Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()
		token := makeToken(t, "othersecret", jwt.MapClaims{"sub": "user-1"})
		rec, _ := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		token := makeToken(t, jwtSecret, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		rec, _ := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing subject", func(t *testing.T) {
		t.Parallel()
		token := makeToken(t, jwtSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		rec, _ := serve("Bearer " + token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
