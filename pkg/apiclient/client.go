package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CredentialSource supplies the live bearer token for authenticated calls.
// An empty token means "no credential"; the client refuses the call without
// touching the network. The session manager implements this interface so the
// transport always sees the current token.
type CredentialSource interface {
	Token() string
}

// StaticToken is a fixed-value CredentialSource, mainly for tests and
// one-off scripts.
type StaticToken string

// Token implements CredentialSource.
func (t StaticToken) Token() string { return string(t) }

// Client talks to the attendance API. All methods are safe for concurrent
// use. The zero value is not usable; construct with New.
type Client struct {
	baseURL    *url.URL
	creds      CredentialSource
	httpClient *http.Client
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithCredentials sets the credential source for authenticated calls.
func WithCredentials(creds CredentialSource) Option {
	return func(c *Client) { c.creds = creds }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Origin returns the scheme://host root of the API, used to resolve
// relative asset paths in user records.
func (c *Client) Origin() string {
	return c.baseURL.Scheme + "://" + c.baseURL.Host
}

// Do performs an authenticated request and returns the raw response body.
// A 2xx response never fails for an unparsable body; interpretation is the
// caller's job. Non-2xx responses become *APIError, transport failures wrap
// ErrUnreachable, and a missing credential fails with
// ErrAuthenticationRequired before any network I/O.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) ([]byte, error) {
	if c.creds == nil || c.creds.Token() == "" {
		return nil, ErrAuthenticationRequired
	}
	return c.send(ctx, method, endpoint, body, c.creds.Token())
}

// do performs an authenticated request and decodes the JSON body into out
// when out is non-nil. An empty or unparsable 2xx body with a nil out is
// not an error.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	raw, err := c.Do(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Join(ErrUnexpectedResponseBody, err)
	}
	return nil
}

// send issues the request. token may be empty for the login call.
func (c *Client) send(ctx context.Context, method, endpoint string, body any, token string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	log := c.log.With(
		slog.String("method", method),
		slog.String("endpoint", endpoint),
		slog.String("request_id", requestID),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug("request failed before a response arrived", slog.Any("error", err))
		return nil, errors.Join(ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Join(ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: extractMessage(raw)}
		log.Debug("request rejected", slog.Int("status", resp.StatusCode))
		return nil, apiErr
	}

	return raw, nil
}

// extractMessage pulls a human-readable message out of an error body:
// the JSON "message" field when present, the trimmed raw text otherwise.
func extractMessage(raw []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(raw))
}
