package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"store-service/internal/security"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

type APIError struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
	Status int    `json:"status"`
}

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	UserID uint64
	Email  string
}

// IdentityResolver maps a verified token subject to a known user.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject string) (Identity, error)
}

type ctxKey string

const identityKey ctxKey = "httpx.identity"

var ErrUnauthorized = errors.New("unauthorized")

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, err error, reason string) {
	if err == nil {
		err = errors.New(http.StatusText(status))
	}
	WriteJSON(w, APIError{Error: err.Error(), Reason: reason, Status: status}, status)
}

func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			code := http.StatusBadRequest
			if errors.Is(err, ErrUnauthorized) {
				code = http.StatusUnauthorized
			}
			WriteError(w, code, err, "")
		}
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	err := json.NewDecoder(r.Body).Decode(&t)
	return t, err
}

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

// AuthMiddleware verifies the bearer token and resolves its subject to a user.
// Expired tokens are reported separately from malformed ones so the client can
// tell whether to refresh or to re-authenticate.
func AuthMiddleware(tokens *security.Tokens, users IdentityResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		tok := BearerToken(r)
		if tok == "" {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "missing_bearer")
			return
		}
		subject, err := tokens.Subject(tok)
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, security.ErrTokenExpired) {
				reason = "token_expired"
			}
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, reason)
			return
		}
		id, err := users.Resolve(r.Context(), subject)
		if err != nil {
			WriteError(w, http.StatusUnauthorized, ErrUnauthorized, "unknown_user")
			return
		}
		ctx := context.WithValue(r.Context(), identityKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromCtx(r *http.Request) (Identity, error) {
	id, ok := r.Context().Value(identityKey).(Identity)
	if !ok || id.UserID == 0 {
		return Identity{}, ErrUnauthorized
	}
	return id, nil
}

// WithIdentity is used by tests to exercise handlers without the middleware.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
