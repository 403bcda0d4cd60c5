package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Login authenticates with email and password.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}

	form := url.Values{}
	form.Set("email", req.Email)
	form.Set("password", req.Password)

	var resp AuthResponse
	if err := c.postForm(ctx, "/auth/login", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The backend sends a verification
// code by email; see VerifyRegister.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := c.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}

	form := url.Values{}
	form.Set("name", req.Name)
	form.Set("email", req.Email)
	form.Set("password", req.Password)
	form.Set("is_sensei", strconv.FormatBool(req.IsSensei))

	var resp AuthResponse
	if err := c.postForm(ctx, "/auth/init_register", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyRegister completes registration with the emailed code.
func (c *Client) VerifyRegister(ctx context.Context, email, code string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("code", code)

	var resp AuthResponse
	if err := c.postForm(ctx, "/auth/verify_register", form, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.postForm(ctx, "/auth/logout", url.Values{}, nil)
}

// Me returns the account for the current credentials.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.getJSON(ctx, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Refresh exchanges the refresh token for a fresh access token.
func (c *Client) Refresh(ctx context.Context) (string, error) {
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.postForm(ctx, "/auth/refresh", url.Values{}, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}
