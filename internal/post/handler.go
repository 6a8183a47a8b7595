package post

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"store-service/internal/shared/httpx"
	"store-service/internal/shared/validate"
)

type TaskRunner interface {
	Go(name string, fn func(context.Context))
}

type Handler struct {
	svc     Service
	tasks   TaskRunner
	baseURL string
}

func NewHandler(svc Service, tasks TaskRunner, baseURL string) *Handler {
	return &Handler{svc: svc, tasks: tasks, baseURL: baseURL}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) error {
	id, err := httpx.UserFromCtx(r)
	if err != nil {
		return err
	}
	body, err := httpx.Decode[CreatePostReq](r)
	if err != nil {
		return err
	}
	if err = validate.Struct(body); err != nil {
		return err
	}
	p, err := h.svc.Create(id.UserID, body.Body)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}

	if prompt := r.URL.Query().Get("prompt"); prompt != "" {
		email := id.Email
		postID := p.ID
		postURL := fmt.Sprintf("%s/post/%d", h.baseURL, postID)
		h.tasks.Go("generate_image", func(ctx context.Context) {
			h.svc.Augment(ctx, email, postID, postURL, prompt)
		})
	}

	httpx.WriteJSON(w, p, http.StatusOK)
	return nil
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) error {
	sort, err := ParseSorting(r.URL.Query().Get("sorting"))
	if err != nil {
		return err
	}
	posts, err := h.svc.List(sort)
	if err != nil {
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, posts, http.StatusOK)
	return nil
}

func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) error {
	id, err := strconv.ParseUint(r.PathValue("post_id"), 10, 64)
	if err != nil {
		return err
	}
	detail, err := h.svc.GetWithComments(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, err, "")
			return nil
		}
		httpx.WriteError(w, http.StatusInternalServerError, err, "")
		return nil
	}
	httpx.WriteJSON(w, detail, http.StatusOK)
	return nil
}
