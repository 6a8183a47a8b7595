package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-service/internal/security"
)

type stubResolver map[string]Identity

func (s stubResolver) Resolve(_ context.Context, subject string) (Identity, error) {
	id, ok := s[subject]
	if !ok {
		return Identity{}, errors.New("unknown user")
	}
	return id, nil
}

func authReason(t *testing.T, tokens *security.Tokens, resolver IdentityResolver, bearer string) (int, string) {
	t.Helper()
	h := AuthMiddleware(tokens, resolver, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := UserFromCtx(r)
		require.NoError(t, err)
		WriteJSON(w, id.Email, http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code == http.StatusOK {
		return rec.Code, ""
	}
	var apiErr APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return rec.Code, apiErr.Reason
}

func TestAuthMiddleware(t *testing.T) {
	tokens := security.NewTokens("test-secret", 30, 1440)
	resolver := stubResolver{"user@example.net": {UserID: 7, Email: "user@example.net"}}

	tok, err := tokens.Access("user@example.net")
	require.NoError(t, err)

	code, _ := authReason(t, tokens, resolver, tok)
	assert.Equal(t, http.StatusOK, code)

	code, reason := authReason(t, tokens, resolver, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing_bearer", reason)

	code, reason = authReason(t, tokens, resolver, "garbage")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "invalid_token", reason)

	expired := security.NewTokens("test-secret", -1, -1)
	expiredTok, err := expired.Access("user@example.net")
	require.NoError(t, err)
	code, reason = authReason(t, tokens, resolver, expiredTok)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token_expired", reason)

	unknownTok, err := tokens.Access("nobody@example.net")
	require.NoError(t, err)
	code, reason = authReason(t, tokens, resolver, unknownTok)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "unknown_user", reason)
}

func TestWrapMapsUnauthorized(t *testing.T) {
	h := Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return ErrUnauthorized
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWrapDefaultsToBadRequest(t *testing.T) {
	h := Wrap(func(w http.ResponseWriter, r *http.Request) error {
		return errors.New("malformed input")
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
