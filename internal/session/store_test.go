// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/jeranaias/knox-tui/internal/api"
	"github.com/jeranaias/knox-tui/internal/storage"
)

func newTestStore(t *testing.T, handler http.Handler) (*Store, *storage.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	local, err := storage.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return NewStore(client, local), local
}

func writeUser(w http.ResponseWriter, name string) {
	json.NewEncoder(w).Encode(map[string]any{
		"user": map[string]string{"_id": "u1", "name": name, "email": name + "@test"},
	})
}

func TestProbeUnauthorizedIsSilentlySignedOut(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if !store.Loading() {
		t.Error("store should start loading")
	}

	user, err := store.Probe(context.Background())
	if err != nil {
		t.Fatalf("401 probe must not surface an error, got %v", err)
	}
	if user != nil {
		t.Errorf("401 probe user = %+v, want nil", user)
	}
	if store.Loading() {
		t.Error("loading must clear after the probe")
	}
	if store.IsAuthenticated() {
		t.Error("store must be signed out after a 401 probe")
	}
}

func TestProbeServerErrorStillSettles(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	user, err := store.Probe(context.Background())
	if err == nil {
		t.Error("a real failure should be reported")
	}
	if user != nil {
		t.Errorf("user = %+v, want nil", user)
	}
	if store.Loading() {
		t.Error("loading must clear even when the probe fails")
	}
}

func TestProbeSuccessSetsAndPersistsUser(t *testing.T) {
	store, local := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeUser(w, "Kai")
	}))

	user, err := store.Probe(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || user.Name != "Kai" {
		t.Fatalf("user = %+v", user)
	}

	state, err := local.LoadSession()
	if err != nil {
		t.Fatal(err)
	}
	if state == nil || state.User == nil || state.User.Name != "Kai" {
		t.Errorf("persisted state = %+v", state)
	}
}

func TestProbeRunsOnce(t *testing.T) {
	var calls atomic.Int32
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeUser(w, "Kai")
	}))

	ctx := context.Background()
	store.Probe(ctx)
	store.Probe(ctx)
	store.Probe(ctx)

	if n := calls.Load(); n != 1 {
		t.Errorf("profile endpoint hit %d times, want 1", n)
	}
}

func TestLoginPersistsSession(t *testing.T) {
	store, local := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"user":    map[string]string{"_id": "u1", "name": "Kai", "email": "kai@test"},
		})
	}))

	user, message, err := store.Login(context.Background(), "kai@test", "hunter2")
	if err != nil {
		t.Fatal(err)
	}
	if user == nil || message != "Login successful" {
		t.Fatalf("user=%+v message=%q", user, message)
	}
	if store.Loading() {
		t.Error("login settles the session; loading must be false")
	}

	state, err := local.LoadSession()
	if err != nil {
		t.Fatal(err)
	}
	if state == nil || len(state.Cookies) == 0 {
		t.Fatalf("persisted state should carry cookies, got %+v", state)
	}
}

func TestLogoutClearsEvenWhenBackendFails(t *testing.T) {
	store, local := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/logout" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		writeUser(w, "Kai")
	}))

	if _, err := store.Probe(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !store.IsAuthenticated() {
		t.Fatal("expected signed-in store")
	}

	store.Logout(context.Background())

	if store.IsAuthenticated() {
		t.Error("logout must clear local state even when the backend errors")
	}
	state, err := local.LoadSession()
	if err != nil || state != nil {
		t.Errorf("persisted session should be gone: state=%+v err=%v", state, err)
	}
}
