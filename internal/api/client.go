package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// loginPath is the one endpoint exempt from the session-expiry policy: a 401
// here means bad credentials, not an expired token.
const loginPath = "/auth/login"

// TokenSource supplies the current access token for outbound requests.
// An empty string means no session is held and no Authorization header is
// attached.
type TokenSource interface {
	AccessToken() string
}

// StaticToken is a TokenSource holding a fixed token. Used between a login
// exchange and session establishment, when the new token is not yet stored.
type StaticToken string

func (s StaticToken) AccessToken() string {
	return string(s)
}

// Config holds common client configuration.
type Config struct {
	// BaseURL is the backend API root, e.g. http://localhost:8000/api/v1.
	BaseURL string

	// Timeout bounds each request. Zero uses the default.
	Timeout time.Duration

	// HTTPClient overrides the transport, e.g. to add request logging.
	HTTPClient *http.Client

	// Tokens supplies the bearer credential. Nil means always anonymous.
	Tokens TokenSource

	// OnAuthExpired is the injected session-expiry policy, invoked exactly
	// once when a non-login endpoint returns 401. The CLI wires it to clear
	// the session store; tests can observe it directly.
	OnAuthExpired func()
}

// Client is the sole path by which the application reaches the backend. It
// centralizes header construction, base URL resolution and the expiry
// policy so no other component duplicates authentication wiring.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokens        TokenSource
	onAuthExpired func()
}

// DefaultConfig returns a default client configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:8000/api/v1",
		Timeout: 30 * time.Second,
	}
}

// New creates a client with the given configuration.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:    httpClient,
		tokens:        cfg.Tokens,
		onAuthExpired: cfg.OnAuthExpired,
	}
}

// BaseURL returns the resolved backend API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doJSON issues a request with a JSON body (nil for none) and decodes the
// JSON response into out (nil to discard). All resource methods go through
// here except the multipart upload and binary image download, which build
// their own requests but share newRequest and handleResponse.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := c.handleResponse(path, resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// newRequest builds a request with the standard headers: a correlation ID on
// every call and the bearer credential whenever a token is held.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("X-Request-Id", uuid.New().String())

	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	return req, nil
}

// handleResponse enforces the shared error policy for every endpoint:
// 401 outside login runs the expiry policy once and short-circuits; any
// other non-2xx surfaces the backend detail message when present. The
// response body is left unread on success.
func (c *Client) handleResponse(path string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusUnauthorized && path != loginPath {
		log.Debug().Str("path", path).Msg("received 401, treating as session expiry")
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return ErrSessionExpired
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &Error{Status: resp.StatusCode}
	}

	return newAPIError(resp.StatusCode, body)
}
