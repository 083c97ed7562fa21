// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the knox client.
package model

import "strings"

// =============================================================================
// USER TYPE
// =============================================================================

// User represents the authenticated account. The backend owns the record;
// the client holds a read-mostly cached copy for the duration of a session.
// It is replaced wholesale by a profile update and cleared on logout.
type User struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// DisplayName returns the user's name, or a placeholder when unset.
func (u *User) DisplayName() string {
	if u == nil || strings.TrimSpace(u.Name) == "" {
		return "Anonymous"
	}
	return u.Name
}

// Initial returns the first rune of the user's name for avatar placeholders.
func (u *User) Initial() string {
	name := u.DisplayName()
	runes := []rune(name)
	return strings.ToUpper(string(runes[0]))
}
