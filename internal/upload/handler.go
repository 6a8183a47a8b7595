package upload

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"store-service/internal/shared/httpx"
)

const maxUploadSize = 50 << 20

type UploadResponse struct {
	Detail  string `json:"detail"`
	FileURL string `json:"file_url"`
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		return err
	}
	defer file.Close()

	fileURL, err := h.svc.Relay(r.Context(), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("upload of %s failed: %v", header.Filename, err)
		httpx.WriteError(w, http.StatusInternalServerError,
			errors.New("there was an error uploading the file"), "")
		return nil
	}

	httpx.WriteJSON(w, UploadResponse{
		Detail:  fmt.Sprintf("Successfully uploaded %s", header.Filename),
		FileURL: fileURL,
	}, http.StatusOK)
	return nil
}
