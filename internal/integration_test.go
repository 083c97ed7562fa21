// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package internal provides integration tests for the complete knox
// client: configuration, the API client, the session store, and the
// conversation state machine wired together against a fake backend.
package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/knox-tui/internal/api"
	"github.com/jeranaias/knox-tui/internal/config"
	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/storage"
	"github.com/jeranaias/knox-tui/internal/transcript"
)

// fakeBackend is a minimal in-memory knox server.
type fakeBackend struct {
	authed    bool
	character model.Character
	history   []model.Message
	replies   []string
	sendFails bool
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.authed = true
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "t1", Path: "/"})
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Login successful",
			"user":    map[string]string{"_id": "u1", "name": "Kai", "email": "kai@test"},
		})
	})
	mux.HandleFunc("/api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.authed = false
		json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})
	mux.HandleFunc("/api/auth/profile", func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie("token"); err != nil || cookie.Value != "t1" || !b.authed {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"user": map[string]string{"_id": "u1", "name": "Kai", "email": "kai@test"},
		})
	})
	mux.HandleFunc("/api/character/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/character/" {
			json.NewEncoder(w).Encode(map[string]any{
				"characters": []model.Character{b.character},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"character": b.character})
	})
	mux.HandleFunc("/api/chat/send", func(w http.ResponseWriter, r *http.Request) {
		if b.sendFails {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "model unavailable"})
			return
		}
		reply := "..."
		if len(b.replies) > 0 {
			reply, b.replies = b.replies[0], b.replies[1:]
		}
		json.NewEncoder(w).Encode(map[string]string{"aiReply": reply})
	})
	mux.HandleFunc("/api/chat/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"messages": b.history})
	})

	return mux
}

func newIntegrationEnv(t *testing.T, backend *fakeBackend) (*session.Store, *api.Client, *storage.Store) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL)
	require.NoError(t, err)

	local, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	return session.NewStore(client, local), client, local
}

// TestFullConversationFlow walks the primary user journey: sign in,
// open a conversation, exchange messages, export, sign out.
func TestFullConversationFlow(t *testing.T) {
	backend := &fakeBackend{
		character: model.Character{ID: "c1", Name: "Luna", Greeting: "Greetings, traveler."},
		history:   []model.Message{model.NewUserMessage("earlier"), model.NewAIMessage("indeed")},
		replies:   []string{"Nice to see you."},
	}
	sessions, client, local := newIntegrationEnv(t, backend)
	ctx := context.Background()

	// Signed out at first: the probe settles silently.
	user, err := sessions.Probe(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
	require.False(t, sessions.Loading())

	// Sign in.
	user, _, err = sessions.Login(ctx, "kai@test", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "Kai", user.Name)

	// Open the conversation: both fetches settle, greeting first.
	tr := transcript.New("c1")
	tr.Begin()

	character, charErr := client.GetCharacter(ctx, "c1")
	history, histErr := client.History(ctx, "c1")
	tr.Finish(transcript.InitResult{
		Character: character, History: history,
		CharErr: charErr, HistErr: histErr,
	})

	require.Equal(t, transcript.PhaseReady, tr.Phase())
	entries := tr.Entries()
	require.Len(t, entries, 3)
	require.True(t, entries[0].IsGreeting)
	require.Equal(t, "Greetings, traveler.", entries[0].Text)

	// Send a message and receive the reply.
	entry, err := tr.StartSend("hello", sessions.IsAuthenticated())
	require.NoError(t, err)

	reply, err := client.Send(ctx, "c1", entry.Text)
	require.NoError(t, err)
	tr.ResolveSend(reply)

	entries = tr.Entries()
	require.Equal(t, "Nice to see you.", entries[len(entries)-1].Text)
	require.False(t, tr.Busy())

	// Export the transcript.
	path, err := local.ExportTranscript(tr.Character(), tr.Entries())
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "Greetings, traveler.")
	require.Equal(t, filepath.Join(local.Dir(), "exports"), filepath.Dir(path))

	// Sign out: local state clears whatever the backend does.
	sessions.Logout(ctx)
	require.False(t, sessions.IsAuthenticated())
	state, err := local.LoadSession()
	require.NoError(t, err)
	require.Nil(t, state)
}

// TestSendFailureKeepsTranscriptUsable exercises the failure path end
// to end: the optimistic entry is marked, not removed, and the next
// send works.
func TestSendFailureKeepsTranscriptUsable(t *testing.T) {
	backend := &fakeBackend{
		character: model.Character{ID: "c1", Name: "Luna"},
		sendFails: true,
	}
	sessions, client, _ := newIntegrationEnv(t, backend)
	ctx := context.Background()

	_, _, err := sessions.Login(ctx, "kai@test", "hunter2")
	require.NoError(t, err)

	tr := transcript.New("c1")
	tr.Begin()
	character, charErr := client.GetCharacter(ctx, "c1")
	history, histErr := client.History(ctx, "c1")
	tr.Finish(transcript.InitResult{Character: character, History: history, CharErr: charErr, HistErr: histErr})

	entry, err := tr.StartSend("doomed", true)
	require.NoError(t, err)

	_, err = client.Send(ctx, "c1", entry.Text)
	require.Error(t, err)
	tr.FailSend()

	entries := tr.Entries()
	require.True(t, entries[len(entries)-1].Failed)
	require.Equal(t, "doomed", entries[len(entries)-1].Text)

	// Backend recovers; the conversation continues.
	backend.sendFails = false
	backend.replies = []string{"recovered"}

	entry, err = tr.StartSend("again", true)
	require.NoError(t, err)
	reply, err := client.Send(ctx, "c1", entry.Text)
	require.NoError(t, err)
	tr.ResolveSend(reply)

	entries = tr.Entries()
	require.Equal(t, "recovered", entries[len(entries)-1].Text)
}

// TestSessionSurvivesRestart verifies that persisted cookies restore a
// session in a fresh process.
func TestSessionSurvivesRestart(t *testing.T) {
	backend := &fakeBackend{character: model.Character{ID: "c1", Name: "Luna"}}
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	dir := t.TempDir()

	// First process: sign in.
	client1, err := api.NewClient(server.URL)
	require.NoError(t, err)
	local1, err := storage.NewStore(dir)
	require.NoError(t, err)
	sessions1 := session.NewStore(client1, local1)
	_, _, err = sessions1.Login(context.Background(), "kai@test", "hunter2")
	require.NoError(t, err)

	// Second process: a fresh store over the same directory.
	client2, err := api.NewClient(server.URL)
	require.NoError(t, err)
	local2, err := storage.NewStore(dir)
	require.NoError(t, err)
	sessions2 := session.NewStore(client2, local2)

	// The cached user renders immediately; the probe confirms it.
	require.NotNil(t, sessions2.User())
	user, err := sessions2.Probe(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	require.Equal(t, "Kai", user.Name)
}

// TestConfigDrivesClient checks that the config layer produces a
// working client configuration.
func TestConfigDrivesClient(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nbase_url = \"https://example.test/\"\ntimeout_secs = 5\n"), 0o600))

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	require.Equal(t, "https://example.test", cfg.Server.BaseURL)

	client, err := api.NewClient(cfg.Server.BaseURL)
	require.NoError(t, err)
	client.WithTimeout(cfg.Server.Timeout())
	require.Equal(t, "https://example.test", client.BaseURL())
}
