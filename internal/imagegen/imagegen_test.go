package imagegen

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReturnsOutputURL(t *testing.T) {
	var gotPrompt, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPrompt = r.Form.Get("text")
		gotKey = r.Header.Get("api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output_url":"https://example.com/image.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123")
	url, err := c.Generate(context.Background(), "A cat")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/image.jpg", url)
	assert.Equal(t, "A cat", gotPrompt)
	assert.Equal(t, "key-123", gotKey)
}

func TestGenerateUsesDefaultPrompt(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotPrompt = r.Form.Get("text")
		_, _ = w.Write([]byte(`{"output_url":"https://example.com/image.jpg"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123")
	_, err := c.Generate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, defaultPrompt, gotPrompt)
}

func TestGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123")
	_, err := c.Generate(context.Background(), "A cat")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, http.StatusInternalServerError, genErr.Status)
}

func TestGenerateUnparsableResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("Not JSON"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key-123")
	_, err := c.Generate(context.Background(), "A cat")

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Contains(t, genErr.Error(), "parsing failed")
}
