package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// Tokens signs and verifies the two bearer token classes the service issues:
// short-lived access tokens and longer-lived email confirmation tokens. Both
// carry only {sub, exp}; the subject is the user's email.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	confirmTTL time.Duration
}

func NewTokens(secret string, accessMins, confirmMins int) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  time.Duration(accessMins) * time.Minute,
		confirmTTL: time.Duration(confirmMins) * time.Minute,
	}
}

func (t *Tokens) Access(email string) (string, error) {
	return t.sign(email, t.accessTTL)
}

func (t *Tokens) Confirmation(email string) (string, error) {
	return t.sign(email, t.confirmTTL)
}

func (t *Tokens) sign(email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": email,
		"exp": time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Subject verifies the token and returns its subject. Expiry is reported as
// ErrTokenExpired; every other failure collapses to ErrTokenInvalid.
func (t *Tokens) Subject(token string) (string, error) {
	tok, err := jwt.Parse(token, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}
	if !tok.Valid {
		return "", ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}
	sub, _ := mc["sub"].(string)
	if sub == "" {
		return "", ErrTokenInvalid
	}
	return sub, nil
}
