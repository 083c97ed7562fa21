// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// =============================================================================
// AVATAR RESOLUTION
// =============================================================================

func TestResolveAvatarURL(t *testing.T) {
	client, err := NewClient("https://knox.test/")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		ref  string
		want string
	}{
		{"", ""},
		{"/uploads/a.png", "https://knox.test/uploads/a.png"},
		{"uploads/a.png", "https://knox.test/uploads/a.png"},
		{"https://cdn.test/a.png", "https://cdn.test/a.png"},
		{"http://cdn.test/a.png", "http://cdn.test/a.png"},
	}

	for _, tc := range tests {
		got := client.ResolveAvatarURL(tc.ref)
		if got != tc.want {
			t.Errorf("ResolveAvatarURL(%q) = %q, want %q", tc.ref, got, tc.want)
		}
	}
}

// =============================================================================
// ERROR MAPPING
// =============================================================================

func TestErrorMapping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/profile":
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "no session"})
		case "/api/character/missing":
			w.WriteHeader(http.StatusNotFound)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	_, err = client.Profile(ctx)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("profile 401 = %v, want ErrUnauthorized", err)
	}

	_, err = client.GetCharacter(ctx, "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("missing character = %v, want ErrNotFound", err)
	}

	_, err = client.ListCharacters(ctx)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("500 response = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError || apiErr.Message != "boom" {
		t.Errorf("APIError = %+v", apiErr)
	}
}

// =============================================================================
// COOKIE SESSION
// =============================================================================

func TestLoginStoresSessionCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc123", Path: "/"})
			json.NewEncoder(w).Encode(map[string]any{
				"message": "Login successful",
				"user":    map[string]string{"_id": "u1", "name": "Kai", "email": "kai@test"},
			})
		case "/api/auth/profile":
			cookie, err := r.Cookie("token")
			if err != nil || cookie.Value != "abc123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(map[string]any{
				"user": map[string]string{"_id": "u1", "name": "Kai", "email": "kai@test"},
			})
		}
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	user, message, err := client.Login(ctx, "kai@test", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user == nil || user.Name != "Kai" {
		t.Fatalf("login user = %+v", user)
	}
	if message != "Login successful" {
		t.Errorf("login message = %q", message)
	}

	// The cookie set at login authenticates the probe.
	probed, err := client.Profile(ctx)
	if err != nil {
		t.Fatalf("Profile after login: %v", err)
	}
	if probed.ID != "u1" {
		t.Errorf("probed user = %+v", probed)
	}

	if len(client.SessionCookies()) == 0 {
		t.Error("SessionCookies() should expose the login cookie")
	}
}

func TestRestoreSessionCookies(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("token")
		if err != nil || cookie.Value != "saved" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"_id": "u2", "name": "Ren", "email": "ren@test"},
		})
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatal(err)
	}

	client.RestoreSessionCookies([]*http.Cookie{{Name: "token", Value: "saved", Path: "/"}})

	user, err := client.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile with restored cookie: %v", err)
	}
	if user.Name != "Ren" {
		t.Errorf("user = %+v", user)
	}
}
