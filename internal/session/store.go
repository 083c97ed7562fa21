// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/jeranaias/knox-tui/internal/api"
	"github.com/jeranaias/knox-tui/internal/logx"
	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/storage"
)

// =============================================================================
// STORE
// =============================================================================

// Store tracks the signed-in user for the lifetime of the process.
//
// All methods are safe for concurrent use. Auth mutations from any
// screen go through the store so every part of the UI sees the same
// session state.
type Store struct {
	client *api.Client
	local  *storage.Store

	mu      sync.RWMutex
	user    *model.User
	loading bool
	probed  bool
}

// NewStore builds a session store over the API client and local state.
//
// If a persisted session exists, its cookies are restored into the
// client's jar and the cached user is pre-seeded so the UI can render a
// name before the probe settles. The probe remains authoritative.
func NewStore(client *api.Client, local *storage.Store) *Store {
	s := &Store{client: client, local: local, loading: true}

	if local != nil {
		state, err := local.LoadSession()
		if err != nil {
			logx.Warn("failed to load persisted session", "error", err.Error())
		} else if state != nil {
			client.RestoreSessionCookies(state.HTTPCookies())
			s.user = state.User
		}
	}
	return s
}

// User returns the current user, or nil when signed out.
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	return s.User() != nil
}

// Loading reports whether the startup probe has not yet settled.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Client exposes the underlying API client for screens that issue
// non-auth requests.
func (s *Store) Client() *api.Client {
	return s.client
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Probe asks the backend who is signed in, exactly once per process.
//
// A 401 means "nobody": that is a normal outcome, so the method returns
// (nil, nil) and says nothing. Any other failure is logged, and the
// session still resolves to signed-out rather than blocking the UI.
// The loading flag clears no matter how the probe ends.
func (s *Store) Probe(ctx context.Context) (*model.User, error) {
	s.mu.Lock()
	if s.probed {
		user := s.user
		s.mu.Unlock()
		return user, nil
	}
	s.probed = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	user, err := s.client.Profile(ctx)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			s.setUser(nil)
			s.clearPersisted()
			return nil, nil
		}
		logx.Error(err, "session probe failed")
		s.setUser(nil)
		return nil, err
	}

	s.setUser(user)
	s.persist()
	return user, nil
}

// Login signs in and persists the new session. Returns the backend's
// confirmation message alongside the user.
func (s *Store) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, message, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.probed = true
	s.mu.Unlock()

	s.persist()
	return user, message, nil
}

// Signup registers a new account. It does not sign the user in; the
// backend expects a follow-up login.
func (s *Store) Signup(ctx context.Context, name, email, password string) (string, error) {
	return s.client.Signup(ctx, name, email, password)
}

// UpdateProfile saves profile edits and replaces the cached user with
// the server's updated payload wholesale.
func (s *Store) UpdateProfile(ctx context.Context, name, avatarPath string) (*model.User, error) {
	user, err := s.client.UpdateProfile(ctx, name, avatarPath)
	if err != nil {
		return nil, err
	}
	s.setUser(user)
	s.persist()
	return user, nil
}

// Logout ends the session. The backend call is best-effort: whether it
// succeeds or fails, local state is cleared and the caller ends up
// signed out. A dead server must never trap a user in a session.
func (s *Store) Logout(ctx context.Context) {
	if err := s.client.Logout(ctx); err != nil {
		logx.Warn("backend logout failed, clearing local session anyway", "error", err.Error())
	}

	s.setUser(nil)
	s.clearPersisted()
}

// =============================================================================
// INTERNAL
// =============================================================================

func (s *Store) setUser(user *model.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

func (s *Store) persist() {
	if s.local == nil {
		return
	}
	state := storage.SessionStateFromCookies(s.client.SessionCookies(), s.User())
	if err := s.local.SaveSession(state); err != nil {
		logx.Warn("failed to persist session", "error", err.Error())
	}
}

func (s *Store) clearPersisted() {
	if s.local == nil {
		return
	}
	if err := s.local.ClearSession(); err != nil {
		logx.Warn("failed to clear persisted session", "error", err.Error())
	}
}
