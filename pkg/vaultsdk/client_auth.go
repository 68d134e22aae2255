package vaultsdk

import (
	"context"
	"net/http"
)

// Register creates a new account. It does not authenticate the session;
// follow with Login.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/register", req, &resp, http.StatusCreated); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates this client's session. The rotated session cookie is
// captured by the cookie jar.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/auth/login", req, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout ends the session. Safe to call when not logged in.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/auth/logout", nil, nil, http.StatusOK)
}

// AuthCheck reports whether the session is currently authenticated.
func (c *Client) AuthCheck(ctx context.Context) (*AuthCheckResponse, error) {
	var resp AuthCheckResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/auth/check", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile returns the account profile and saved-prompt count.
func (c *Client) Profile(ctx context.Context) (*ProfileResponse, error) {
	var resp ProfileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/profile", nil, &resp, http.StatusOK); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword replaces the account password.
func (c *Client) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/profile/password", req, nil, http.StatusOK)
}

// DeleteAccount removes the account and all of its prompts.
func (c *Client) DeleteAccount(ctx context.Context, req DeleteAccountRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/account/delete", req, nil, http.StatusOK)
}
