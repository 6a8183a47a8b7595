package imagegen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultPrompt = "A blue british shorthair cat is sitting on a couch"

// GenerationError reports a failed or unparsable response from the image
// generation API.
type GenerationError struct {
	Status int
	Reason string
}

func (e *GenerationError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("image generation failed with status %d", e.Status)
	}
	return "image generation failed: " + e.Reason
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		// the generation API is slow; this is the only timeout applied
		// to the background task
		http: &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate submits the prompt and returns the URL of the generated image.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		prompt = defaultPrompt
	}
	form := url.Values{}
	form.Set("text", prompt)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &GenerationError{Status: resp.StatusCode}
	}

	var out struct {
		OutputURL string `json:"output_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &GenerationError{Reason: "response parsing failed"}
	}
	if out.OutputURL == "" {
		return "", &GenerationError{Reason: "no output_url in response"}
	}
	return out.OutputURL, nil
}
