package api

import (
	"context"
	"net/http"
)

// AuthClient talks to the authentication endpoints. Both calls are made
// without a bearer token; login is how one is obtained.
type AuthClient struct {
	c *Client
}

// NewAuthClient constructs an AuthClient.
func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

// Login exchanges credentials for a bearer token.
func (a *AuthClient) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	err := a.c.do(ctx, http.MethodPost, "/api/auth/login", nil, req, &resp)
	return resp, err
}

// Register creates a CLIENTE account.
func (a *AuthClient) Register(ctx context.Context, req RegisterRequest) (User, error) {
	var user User
	err := a.c.do(ctx, http.MethodPost, "/api/auth/register", nil, req, &user)
	return user, err
}
