package user

import (
	"context"
	"errors"

	"store-service/internal/security"
	"store-service/internal/shared/httpx"
)

var (
	ErrEmailTaken         = errors.New("a user with that email already exists")
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrNotConfirmed       = errors.New("user has not confirmed email")
)

type Service interface {
	Register(email, password string) (*User, error)
	Authenticate(email, password string) (*User, error)
	Confirm(email string) error
	GetByEmail(email string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(email, password string) (*User, error) {
	if existing, _ := s.repo.FindByEmail(email); existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &User{Email: email, Password: hash}
	if err := s.repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Authenticate returns the same error for an unknown email and a wrong
// password. An unconfirmed account is reported separately so the client can
// prompt for email confirmation.
func (s *service) Authenticate(email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !security.VerifyPassword(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	if !u.Confirmed {
		return nil, ErrNotConfirmed
	}
	return u, nil
}

// Confirm is idempotent: confirming an already confirmed user is a no-op.
func (s *service) Confirm(email string) error {
	return s.repo.Confirm(email)
}

func (s *service) GetByEmail(email string) (*User, error) {
	return s.repo.FindByEmail(email)
}

// Resolver adapts the user service to the auth middleware.
type Resolver struct {
	Svc Service
}

func (r Resolver) Resolve(_ context.Context, subject string) (httpx.Identity, error) {
	u, err := r.Svc.GetByEmail(subject)
	if err != nil {
		return httpx.Identity{}, err
	}
	return httpx.Identity{UserID: u.ID, Email: u.Email}, nil
}
