// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the knox client.
package model

import (
	"crypto/rand"
	"encoding/hex"
)

// =============================================================================
// SENDER TYPE
// =============================================================================

// Sender represents who authored a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// String returns the string representation of the sender.
func (s Sender) String() string {
	return string(s)
}

// DisplayName returns a human-readable name for the sender.
func (s Sender) DisplayName() string {
	switch s {
	case SenderUser:
		return "You"
	case SenderAI:
		return "AI"
	default:
		return string(s)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single entry in a chat transcript.
//
// Messages are ephemeral client state: the backend persists only user/ai
// exchanges that reach the send endpoint. The synthesized greeting is never
// persisted and carries IsGreeting so screens can style it distinctly.
type Message struct {
	// Identity. The backend does not return IDs for history entries, so a
	// local one is generated for list keying and failure marking.
	ID     string `json:"-"`
	Sender Sender `json:"sender"`
	Text   string `json:"message"`

	// IsGreeting marks the synthesized opening entry (always entry 0).
	IsGreeting bool `json:"-"`

	// Failed marks an optimistic user entry whose send did not complete.
	// Failed entries stay visible and are not retried automatically.
	Failed bool `json:"-"`
}

// NewMessage creates a new message with a generated local ID.
func NewMessage(sender Sender, text string) Message {
	return Message{
		ID:     generateID(),
		Sender: sender,
		Text:   text,
	}
}

// NewUserMessage creates a user message.
func NewUserMessage(text string) Message {
	return NewMessage(SenderUser, text)
}

// NewAIMessage creates an ai message.
func NewAIMessage(text string) Message {
	return NewMessage(SenderAI, text)
}

// NewGreetingMessage synthesizes the opening entry for a character.
func NewGreetingMessage(c *Character) Message {
	msg := NewMessage(SenderAI, c.DisplayGreeting())
	msg.IsGreeting = true
	return msg
}

// Preview returns a truncated single-line preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// generateID creates a unique local message ID.
func generateID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return "msg_" + hex.EncodeToString(bytes)
}
