package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"store-service/internal/security"
	"store-service/internal/shared/httpx"
	"store-service/internal/task"
)

type recordingMailer struct {
	mu   sync.Mutex
	urls []string
}

func (m *recordingMailer) SendRegistrationEmail(_ context.Context, _ string, confirmationURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, confirmationURL)
	return nil
}

const baseURL = "http://test.local"

func newTestServer(t *testing.T) (*httptest.Server, *recordingMailer, *task.Runner, *security.Tokens) {
	t.Helper()
	tokens := security.NewTokens("test-secret", 30, 1440)
	mailer := &recordingMailer{}
	runner := task.NewRunner(nil)
	svc := NewService(newMemRepo())
	h := NewHandler(svc, tokens, mailer, runner, baseURL)

	mux := http.NewServeMux()
	mux.Handle("POST /register", httpx.Wrap(h.Register))
	mux.Handle("POST /token", httpx.Wrap(h.Token))
	mux.Handle("GET /confirm/{token}", httpx.Wrap(h.Confirm))
	mux.Handle("GET /whoami", httpx.AuthMiddleware(tokens, Resolver{Svc: svc},
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := httpx.UserFromCtx(r)
			require.NoError(t, err)
			httpx.WriteJSON(w, map[string]any{"email": id.Email}, http.StatusOK)
		})))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, mailer, runner, tokens
}

func postJSON(t *testing.T, url string, payload any, bearer string) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(string(b)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRegisterConfirmLoginFlow(t *testing.T) {
	srv, mailer, runner, _ := newTestServer(t)
	creds := map[string]string{"email": "user@example.net", "password": "123456"}

	// register
	resp := postJSON(t, srv.URL+"/register", creds, "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	runner.Wait()
	require.Len(t, mailer.urls, 1)
	require.True(t, strings.HasPrefix(mailer.urls[0], baseURL+"/confirm/"))

	// duplicate registration
	resp = postJSON(t, srv.URL+"/register", creds, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// login before confirmation is rejected
	resp = postJSON(t, srv.URL+"/token", creds, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var apiErr httpx.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	resp.Body.Close()
	assert.Equal(t, "email_not_confirmed", apiErr.Reason)

	// confirm via the emailed link
	confirmToken := strings.TrimPrefix(mailer.urls[0], baseURL+"/confirm/")
	resp, err := http.Get(srv.URL + "/confirm/" + confirmToken)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// login now succeeds with a usable bearer token
	resp = postJSON(t, srv.URL+"/token", creds, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tok))
	resp.Body.Close()
	assert.Equal(t, "bearer", tok.TokenType)
	require.NotEmpty(t, tok.AccessToken)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/whoami", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestConfirmRejectsExpiredAndInvalidTokens(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	expired := security.NewTokens("test-secret", -1, -1)
	tok, err := expired.Confirmation("user@example.net")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/confirm/" + tok)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var apiErr httpx.APIError
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiErr))
	resp.Body.Close()
	assert.Equal(t, "token_expired", apiErr.Reason)

	resp, err = http.Get(srv.URL + "/confirm/garbage")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRegisterValidatesPayload(t *testing.T) {
	srv, mailer, runner, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/register", map[string]string{"email": "not-an-email", "password": "123456"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, srv.URL+"/register", map[string]string{"email": "user@example.net", "password": "123"}, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	runner.Wait()
	assert.Empty(t, mailer.urls)
}
