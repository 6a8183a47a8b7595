package user

import (
	"context"
	"errors"
	"log"
	"net/http"

	"store-service/internal/security"
	"store-service/internal/shared/httpx"
	"store-service/internal/shared/validate"
)

// Mailer is the slice of the mail client the registration flow needs.
type Mailer interface {
	SendRegistrationEmail(ctx context.Context, email, confirmationURL string) error
}

// TaskRunner schedules work to run after the response is written.
type TaskRunner interface {
	Go(name string, fn func(context.Context))
}

type Handler struct {
	svc     Service
	tokens  *security.Tokens
	mailer  Mailer
	tasks   TaskRunner
	baseURL string
}

func NewHandler(svc Service, tokens *security.Tokens, mailer Mailer, tasks TaskRunner, baseURL string) *Handler {
	return &Handler{svc: svc, tokens: tokens, mailer: mailer, tasks: tasks, baseURL: baseURL}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[RegisterReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Register(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			httpx.WriteError(w, http.StatusBadRequest, err, "email_taken")
			return nil
		}
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}

	confirmToken, err := h.tokens.Confirmation(u.Email)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	confirmationURL := h.baseURL + "/confirm/" + confirmToken
	email := u.Email
	h.tasks.Go("registration_email", func(ctx context.Context) {
		if err := h.mailer.SendRegistrationEmail(ctx, email, confirmationURL); err != nil {
			log.Printf("registration email to %s failed: %v", email, err)
		}
	})

	httpx.WriteJSON(w, DetailResponse{Detail: "User created. Please confirm your email."}, http.StatusCreated)
	return nil
}

func (h *Handler) Token(w http.ResponseWriter, r *http.Request) error {
	body, err := httpx.Decode[LoginReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	u, err := h.svc.Authenticate(body.Email, body.Password)
	if err != nil {
		reason := "invalid_credentials"
		if errors.Is(err, ErrNotConfirmed) {
			reason = "email_not_confirmed"
		}
		w.Header().Set("WWW-Authenticate", "Bearer")
		httpx.WriteError(w, http.StatusUnauthorized, err, reason)
		return nil
	}
	token, err := h.tokens.Access(u.Email)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, TokenResponse{AccessToken: token, TokenType: "bearer"}, http.StatusOK)
	return nil
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) error {
	token := r.PathValue("token")
	email, err := h.tokens.Subject(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			httpx.WriteError(w, http.StatusBadRequest, err, "token_expired")
			return nil
		}
		httpx.WriteError(w, http.StatusUnauthorized, err, "invalid_token")
		return nil
	}
	if err := h.svc.Confirm(email); err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, DetailResponse{Detail: "User confirmed"}, http.StatusOK)
	return nil
}
