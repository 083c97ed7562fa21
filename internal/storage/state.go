// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/util"
)

// =============================================================================
// TYPES
// =============================================================================

// SavedCookie is the serializable subset of an http.Cookie that matters
// for restoring a session. Everything else the server set is transient.
type SavedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Domain  string    `json:"domain,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// SessionState is the locally persisted view of a signed-in session:
// the backend's session cookies plus the last user payload we saw.
// The cached user lets the UI render a name immediately on startup
// while the profile probe is in flight.
type SessionState struct {
	Cookies []SavedCookie `json:"cookies"`
	User    *model.User   `json:"user,omitempty"`
	SavedAt time.Time     `json:"saved_at"`
}

// HTTPCookies converts the saved cookies back into http.Cookie values
// suitable for a cookie jar.
func (s *SessionState) HTTPCookies() []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(s.Cookies))
	for _, c := range s.Cookies {
		cookies = append(cookies, &http.Cookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}
	return cookies
}

// SessionStateFromCookies builds a SessionState from live cookies and
// the current user.
func SessionStateFromCookies(cookies []*http.Cookie, user *model.User) *SessionState {
	saved := make([]SavedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, SavedCookie{
			Name:    c.Name,
			Value:   c.Value,
			Path:    c.Path,
			Domain:  c.Domain,
			Expires: c.Expires,
		})
	}
	return &SessionState{Cookies: saved, User: user, SavedAt: time.Now()}
}

// =============================================================================
// STORE
// =============================================================================

const sessionFile = "state.json"

// Store reads and writes local state files under a base directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating it if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's base directory.
func (s *Store) Dir() string {
	return s.dir
}

// SessionPath returns the path of the persisted session file.
func (s *Store) SessionPath() string {
	return filepath.Join(s.dir, sessionFile)
}

// LoadSession reads the persisted session state. A missing file is not
// an error: it returns (nil, nil), meaning no session was ever saved.
func (s *Store) LoadSession() (*SessionState, error) {
	data, err := os.ReadFile(s.SessionPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session state: %w", err)
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		// A corrupt state file should not brick the client. Treat it
		// as absent; the next save overwrites it.
		return nil, nil
	}
	return &state, nil
}

// SaveSession writes the session state atomically with 0600 permissions.
func (s *Store) SaveSession(state *SessionState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session state: %w", err)
	}
	if err := util.AtomicWriteFile(s.SessionPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

// ClearSession removes the persisted session. Removing a file that does
// not exist is a no-op, so logout can call this unconditionally.
func (s *Store) ClearSession() error {
	err := os.Remove(s.SessionPath())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear session state: %w", err)
	}
	return nil
}
