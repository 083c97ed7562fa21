// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package transcript

import (
	"errors"
	"strings"

	"github.com/jeranaias/knox-tui/internal/logx"
	"github.com/jeranaias/knox-tui/internal/model"
)

// =============================================================================
// PHASES AND ERRORS
// =============================================================================

// Phase is the lifecycle stage of a transcript.
type Phase int

const (
	// PhaseUninitialized means Begin has not been called.
	PhaseUninitialized Phase = iota
	// PhaseLoading means the startup fetches are in flight.
	PhaseLoading
	// PhaseReady means the transcript accepts sends.
	PhaseReady
)

// String returns the phase name for logs.
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Send preconditions, checked in order by StartSend.
var (
	// ErrNotReady means the transcript has not finished initializing.
	ErrNotReady = errors.New("transcript is not ready")
	// ErrNotSignedIn means sending requires authentication.
	ErrNotSignedIn = errors.New("sign in to send messages")
	// ErrEmptyMessage means the message was empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSendInFlight means a previous send has not resolved yet.
	ErrSendInFlight = errors.New("a message is already being sent")
)

// =============================================================================
// TRANSCRIPT
// =============================================================================

// InitResult carries the settled outcome of the two startup fetches.
// Both fetches always settle before Finish is called; either may have
// failed independently.
type InitResult struct {
	Character *model.Character
	History   []model.Message
	CharErr   error
	HistErr   error
}

// Failed reports whether either startup fetch failed.
func (r InitResult) Failed() bool {
	return r.CharErr != nil || r.HistErr != nil
}

// Transcript is the message list for one conversation. The character ID
// doubles as the conversation ID: the backend keys each user's
// conversation by character.
type Transcript struct {
	characterID string
	phase       Phase
	character   *model.Character
	entries     []model.Message
	busy        bool
	initResult  InitResult
}

// New creates an uninitialized transcript for the given character.
func New(characterID string) *Transcript {
	return &Transcript{characterID: characterID}
}

// CharacterID returns the character (and conversation) ID.
func (t *Transcript) CharacterID() string {
	return t.characterID
}

// Phase returns the current lifecycle phase.
func (t *Transcript) Phase() Phase {
	return t.phase
}

// Character returns the loaded character, or nil if the fetch failed or
// has not settled.
func (t *Transcript) Character() *model.Character {
	return t.character
}

// Busy reports whether a send is in flight.
func (t *Transcript) Busy() bool {
	return t.busy
}

// InitResult returns the recorded startup outcome. Only meaningful once
// the phase is ready.
func (t *Transcript) InitResult() InitResult {
	return t.initResult
}

// Entries returns a copy of the transcript. Entry zero is always the
// synthesized greeting once the transcript is ready.
func (t *Transcript) Entries() []model.Message {
	out := make([]model.Message, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Transcript) Len() int {
	return len(t.entries)
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// Begin marks the startup fetches as in flight. Calling it again while
// loading or ready is a no-op; re-initialization would drop optimistic
// entries.
func (t *Transcript) Begin() {
	if t.phase != PhaseUninitialized {
		return
	}
	t.phase = PhaseLoading
}

// Finish installs the settled fetch results and moves the transcript to
// ready. It is fail-open: whatever the two fetches did, the user gets a
// live transcript. A failed character fetch falls back to a generic
// greeting; a failed history fetch yields a greeting-only transcript.
func (t *Transcript) Finish(res InitResult) {
	if t.phase == PhaseReady {
		return
	}
	t.initResult = res

	if res.CharErr == nil {
		t.character = res.Character
	} else {
		logx.Warn("character fetch failed",
			"character_id", t.characterID, "error", res.CharErr.Error())
	}
	if res.HistErr != nil {
		logx.Warn("history fetch failed",
			"character_id", t.characterID, "error", res.HistErr.Error())
	}

	history := res.History
	if res.HistErr != nil {
		history = nil
	}

	t.entries = make([]model.Message, 0, len(history)+1)
	t.entries = append(t.entries, model.NewGreetingMessage(t.character))
	t.entries = append(t.entries, history...)
	t.phase = PhaseReady
}

// =============================================================================
// SENDING
// =============================================================================

// StartSend validates a send and optimistically appends the user's
// message. Preconditions, in order: the transcript is ready, the user
// is signed in, the trimmed text is non-empty, and no send is in
// flight. On success the busy flag is set and the appended entry is
// returned; the caller issues the network request and reports back via
// ResolveSend or FailSend.
func (t *Transcript) StartSend(text string, authenticated bool) (model.Message, error) {
	if t.phase != PhaseReady {
		return model.Message{}, ErrNotReady
	}
	if !authenticated {
		return model.Message{}, ErrNotSignedIn
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Message{}, ErrEmptyMessage
	}
	if t.busy {
		return model.Message{}, ErrSendInFlight
	}

	entry := model.NewUserMessage(text)
	t.entries = append(t.entries, entry)
	t.busy = true
	return entry, nil
}

// ResolveSend appends the AI's reply and clears the busy flag.
func (t *Transcript) ResolveSend(reply string) {
	t.busy = false
	if t.phase != PhaseReady {
		return
	}
	t.entries = append(t.entries, model.NewAIMessage(reply))
}

// FailSend marks the optimistic entry as failed and clears the busy
// flag. The entry stays in the transcript: the user keeps what they
// typed, flagged rather than silently removed.
func (t *Transcript) FailSend() {
	t.busy = false
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Sender == model.SenderUser {
			t.entries[i].Failed = true
			return
		}
	}
}
