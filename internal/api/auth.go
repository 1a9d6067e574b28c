package api

import (
	"context"
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges email/password for a token pair. A 401 from this endpoint
// is a credential failure surfaced to the caller, never a session expiry.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	var tokens TokenPair
	err := c.doJSON(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: password}, &tokens)
	if err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Register creates a new account. The backend sends a verification email;
// the caller logs in separately afterwards.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/register", req, nil)
}

// Me returns the profile of the authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
