package upload

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const chunkSize = 1 << 20

// Storage is the slice of the object store the relay needs.
type Storage interface {
	Upload(ctx context.Context, key, path, contentType string) (string, error)
}

type Service interface {
	Relay(ctx context.Context, src io.Reader, filename, contentType string) (string, error)
}

type service struct {
	storage Storage
}

func NewService(storage Storage) Service {
	return &service{storage: storage}
}

// Relay spools the stream to a transient local file in bounded chunks, then
// forwards the file to object storage. The local file is removed whether or
// not the forward succeeds.
func (s *service) Relay(ctx context.Context, src io.Reader, filename, contentType string) (string, error) {
	tmp, err := os.CreateTemp("", "upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	buf := make([]byte, chunkSize)
	_, err = io.CopyBuffer(tmp, src, buf)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", err
	}

	key := uuid.NewString() + "/" + filepath.Base(filename)
	return s.storage.Upload(ctx, key, tmp.Name(), contentType)
}
