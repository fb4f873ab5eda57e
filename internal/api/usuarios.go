package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// UsuariosClient talks to the user administration endpoints.
type UsuariosClient struct {
	c *Client
}

// NewUsuariosClient constructs a UsuariosClient.
func NewUsuariosClient(c *Client) *UsuariosClient {
	return &UsuariosClient{c: c}
}

// List fetches users, optionally filtered by the ativo flag.
func (u *UsuariosClient) List(ctx context.Context, ativo *bool) ([]User, error) {
	query := url.Values{}
	if ativo != nil {
		query.Set("ativo", strconv.FormatBool(*ativo))
	}
	var users []User
	err := u.c.do(ctx, http.MethodGet, "/api/usuarios", query, nil, &users)
	return users, err
}

// FindByID fetches one user.
func (u *UsuariosClient) FindByID(ctx context.Context, id string) (User, error) {
	var user User
	err := u.c.do(ctx, http.MethodGet, "/api/usuarios/"+url.PathEscape(id), nil, nil, &user)
	return user, err
}

// RegisterAdmin creates an ADMIN account.
func (u *UsuariosClient) RegisterAdmin(ctx context.Context, req RegisterRequest) (User, error) {
	var user User
	err := u.c.do(ctx, http.MethodPost, "/api/usuarios/registrar-admin", nil, req, &user)
	return user, err
}

// Deactivate soft-deletes a user. The backend makes this idempotent.
func (u *UsuariosClient) Deactivate(ctx context.Context, id string) error {
	return u.c.do(ctx, http.MethodDelete, "/api/usuarios/"+url.PathEscape(id), nil, nil, nil)
}
