package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspulse/internal/config"
)

const testSecret = "test-secret"

// setupProtected wraps a capturing handler with the auth middleware.
func setupProtected(t *testing.T) (http.Handler, *string) {
	t.Helper()

	cfg := &config.Config{JWTSecret: testSecret}
	var seenUserID string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, _ = r.Context().Value("userID").(string)
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(cfg)(inner), &seenUserID
}

func signToken(t *testing.T, secret string, subject string, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestAuthMiddleware_MissingHeaderIsUnauthorized(t *testing.T) {
	h, _ := setupProtected(t)

	req := httptest.NewRequest("GET", "/bookmarks", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_NonBearerHeaderIsUnauthorized(t *testing.T) {
	h, _ := setupProtected(t)

	req := httptest.NewRequest("GET", "/bookmarks", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_GarbageTokenIsForbidden(t *testing.T) {
	h, _ := setupProtected(t)

	req := httptest.NewRequest("GET", "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_TamperedSignatureIsForbidden(t *testing.T) {
	h, _ := setupProtected(t)

	token := signToken(t, "other-secret", "42", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_ExpiredTokenIsForbidden(t *testing.T) {
	h, _ := setupProtected(t)

	token := signToken(t, testSecret, "42", time.Now().Add(-time.Minute))
	req := httptest.NewRequest("GET", "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAuthMiddleware_ValidTokenPassesUserIdentity(t *testing.T) {
	h, seenUserID := setupProtected(t)

	token := signToken(t, testSecret, "42", time.Now().Add(time.Hour))
	req := httptest.NewRequest("GET", "/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", *seenUserID)
}
