package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims(sub string) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": sub,
		"iss": TokenIssuer,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
}

func runMiddleware(key *rsa.PrivateKey, authHeader string) (*httptest.ResponseRecorder, string) {
	var gotUserID string
	handler := AuthMiddleware(&key.PublicKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value(ContextKeyUserID).(string)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/credentials", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotUserID
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	key := testKey(t)
	sub := uuid.New().String()
	token := signToken(t, key, validClaims(sub))

	rec, gotUserID := runMiddleware(key, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sub, gotUserID)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	rec, _ := runMiddleware(testKey(t), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	key := testKey(t)
	token := signToken(t, key, validClaims(uuid.New().String()))

	rec, _ := runMiddleware(key, token) // no Bearer prefix
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	key := testKey(t)
	claims := validClaims(uuid.New().String())
	claims["exp"] = time.Now().Add(-time.Hour).Unix()

	rec, _ := runMiddleware(key, "Bearer "+signToken(t, key, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token_expired")
}

func TestAuthMiddlewareRejectsWrongIssuer(t *testing.T) {
	key := testKey(t)
	claims := validClaims(uuid.New().String())
	claims["iss"] = "someone-else"

	rec, _ := runMiddleware(key, "Bearer "+signToken(t, key, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsWrongKey(t *testing.T) {
	key := testKey(t)
	other := testKey(t)
	token := signToken(t, other, validClaims(uuid.New().String()))

	rec, _ := runMiddleware(key, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsHMACToken(t *testing.T) {
	key := testKey(t)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, validClaims(uuid.New().String()))
	s, err := tok.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	rec, _ := runMiddleware(key, "Bearer "+s)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddlewareRejectsMissingSubject(t *testing.T) {
	key := testKey(t)
	claims := validClaims("")

	rec, _ := runMiddleware(key, "Bearer "+signToken(t, key, claims))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
