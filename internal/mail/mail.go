package mail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DeliveryError reports a non-success response from the mail provider,
// carrying the upstream status for the caller to log or ignore.
type DeliveryError struct {
	Status int
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("mail delivery failed with status %d", e.Status)
}

type Client struct {
	domain string
	apiKey string
	from   string
	base   string
	http   *http.Client
}

func NewClient(domain, apiKey, from string) *Client {
	if from == "" {
		from = fmt.Sprintf("Store API <mailgun@%s>", domain)
	}
	return &Client{
		domain: domain,
		apiKey: apiKey,
		from:   from,
		base:   "https://api.mailgun.net",
		http:   &http.Client{Timeout: 15 * time.Second},
	}
}

// WithBase overrides the provider endpoint, used by tests.
func (c *Client) WithBase(base string) *Client {
	c.base = base
	return c
}

// Send posts one transactional message. There is no retry; the caller decides
// whether a DeliveryError is fatal to its flow.
func (c *Client) Send(ctx context.Context, to, subject, body string) error {
	form := url.Values{}
	form.Set("from", c.from)
	form.Set("to", to)
	form.Set("subject", subject)
	form.Set("text", body)

	endpoint := fmt.Sprintf("%s/v3/%s/messages", c.base, c.domain)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth("api", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &DeliveryError{Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) SendRegistrationEmail(ctx context.Context, email, confirmationURL string) error {
	return c.Send(ctx, email, "Successfully signed up",
		fmt.Sprintf("Hi %s! You have successfully signed up to the Stores REST API."+
			" Please confirm your email by clicking on the following link: %s",
			email, confirmationURL),
	)
}
