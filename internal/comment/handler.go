package comment

import (
	"errors"
	"net/http"
	"strconv"

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
	c, err := h.svc.Create(id.UserID, body.PostID, body.Body)
	if err != nil {
		if errors.Is(err, ErrPostNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err, "")
			return nil
		}
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, c, http.StatusOK)
	return nil
}

func (h *Handler) ListByPost(w http.ResponseWriter, r *http.Request) error {
	postID, err := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	if err != nil {
		return err
	}
	comments, err := h.svc.ListByPost(postID)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, comments, http.StatusOK)
	return nil
}
