package like

import (
	"errors"
	"net/http"

	"store-service/internal/shared/httpx"
	"store-service/internal/shared/validate"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	body, err := httpx.Decode[CreateReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	l, err := h.svc.Create(id.UserID, body.PostID)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err, "")
			return nil
		}
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, l, http.StatusOK)
	return nil
}
