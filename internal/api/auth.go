package api

import (
	"context"
	"fmt"
	"net/http"
)

// Credentials are issued by the API on login.
type Credentials struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	ExpiresAt string `json:"expires_at"`
}

type authRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Signup(ctx context.Context, username, password string) error {
	if err := c.remote.Call(ctx, http.MethodPost, "/auth/signup", "", authRequest{username, password}, nil); err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, username, password string) (Credentials, error) {
	var creds Credentials
	if err := c.remote.Call(ctx, http.MethodPost, "/auth/login", "", authRequest{username, password}, &creds); err != nil {
		return Credentials{}, fmt.Errorf("login: %w", err)
	}
	if creds.Username == "" {
		creds.Username = username
	}
	return creds, nil
}

// Logout revokes token on the API side. A token the API already considers
// invalid is not an error.
func (c *Client) Logout(ctx context.Context, token string) error {
	err := c.remote.Call(ctx, http.MethodPost, "/auth/logout", token, nil, nil)
	if err != nil && !isUnauthenticated(err) {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
