// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// auth.go - Auth resource client: login, logout, profile probe, signup,
// and profile update against /api/auth.
package api

import (
	"context"
	"net/http"

	"github.com/jeranaias/knox-tui/internal/model"
)

// =============================================================================
// RESPONSE SHAPES
// =============================================================================

// loginResponse is the body of a successful login.
type loginResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// profileResponse is the body of the session probe and profile update.
type profileResponse struct {
	User *model.User `json:"user"`
}

// messageResponse carries just a human-readable confirmation.
type messageResponse struct {
	Message string `json:"message"`
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Login authenticates with email and password. On success the backend sets
// the session cookie on this client's jar and returns the user record.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	body := map[string]string{"email": email, "password": password}

	var resp loginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, "", err
	}
	return resp.User, resp.Message, nil
}

// Logout ends the backend session. Callers treat this as best-effort: local
// session state is cleared whether or not the call succeeds.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Profile probes the current session. Returns ErrUnauthorized when no
// session exists — the normal logged-out case, not a failure.
func (c *Client) Profile(ctx context.Context) (*model.User, error) {
	var resp profileResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// Signup creates a new account. The backend does not open a session on
// signup; the user logs in afterwards.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp messageResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", body, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateProfile replaces the profile name and optionally the avatar.
// The returned user replaces the cached copy wholesale.
func (c *Client) UpdateProfile(ctx context.Context, name, avatarPath string) (*model.User, error) {
	fields := map[string]string{"name": name}

	var resp profileResponse
	if err := c.doMultipart(ctx, http.MethodPut, "/api/auth/update", fields, "avatar", avatarPath, &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}
