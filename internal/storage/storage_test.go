// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/jeranaias/knox-tui/internal/model"
)

func TestSessionRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// No file yet: not an error, just absent.
	state, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession on empty dir: %v", err)
	}
	if state != nil {
		t.Fatalf("expected nil state, got %+v", state)
	}

	user := &model.User{ID: "u1", Name: "Kai", Email: "kai@test"}
	cookies := []*http.Cookie{{Name: "token", Value: "abc", Path: "/"}}

	if err := store.SaveSession(SessionStateFromCookies(cookies, user)); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	info, err := os.Stat(store.SessionPath())
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file permissions = %o, want 0600", perm)
	}

	loaded, err := store.LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if loaded == nil || loaded.User == nil || loaded.User.Name != "Kai" {
		t.Fatalf("loaded state = %+v", loaded)
	}
	restored := loaded.HTTPCookies()
	if len(restored) != 1 || restored[0].Name != "token" || restored[0].Value != "abc" {
		t.Errorf("restored cookies = %+v", restored)
	}
}

func TestClearSession(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Clearing before anything was saved must succeed.
	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession with no file: %v", err)
	}

	if err := store.SaveSession(&SessionState{}); err != nil {
		t.Fatal(err)
	}
	if err := store.ClearSession(); err != nil {
		t.Fatalf("ClearSession: %v", err)
	}

	state, err := store.LoadSession()
	if err != nil || state != nil {
		t.Errorf("after clear: state=%+v err=%v", state, err)
	}
}

func TestLoadSessionCorruptFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(store.SessionPath(), []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	state, err := store.LoadSession()
	if err != nil {
		t.Fatalf("corrupt file should not error: %v", err)
	}
	if state != nil {
		t.Errorf("corrupt file should load as absent, got %+v", state)
	}
}

func TestExportTranscript(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	character := &model.Character{ID: "c1", Name: "Luna"}
	messages := []model.Message{
		model.NewGreetingMessage(character),
		model.NewUserMessage("hi there"),
	}
	failed := model.NewUserMessage("dropped")
	failed.Failed = true
	messages = append(messages, failed)

	path, err := store.ExportTranscript(character, messages)
	if err != nil {
		t.Fatalf("ExportTranscript: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	for _, want := range []string{
		"# Chat with Luna",
		"*(greeting)*",
		"Hello! I am Luna.",
		"**You**",
		"*(failed to send)*",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("export missing %q:\n%s", want, out)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Luna", "luna"},
		{"Dr. Byte 3000", "dr-byte-3000"},
		{"   ", "companion"},
		{"日本語", "companion"},
	}
	for _, tc := range tests {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
