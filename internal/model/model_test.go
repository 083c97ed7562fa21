// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// CHARACTER TESTS
// =============================================================================

func TestDisplayGreeting(t *testing.T) {
	tests := []struct {
		name     string
		char     Character
		want     string
	}{
		{
			name: "explicit greeting wins",
			char: Character{Name: "Luna", Greeting: "Greetings, traveler."},
			want: "Greetings, traveler.",
		},
		{
			name: "empty greeting synthesizes fallback",
			char: Character{Name: "Luna", Greeting: ""},
			want: "Hello! I am Luna.",
		},
		{
			name: "whitespace greeting synthesizes fallback",
			char: Character{Name: "Luna", Greeting: "   "},
			want: "Hello! I am Luna.",
		},
		{
			name: "nameless character uses companion fallback",
			char: Character{},
			want: "Hello! I am your companion.",
		},
	}

	for _, tc := range tests {
		got := tc.char.DisplayGreeting()
		if got != tc.want {
			t.Errorf("%s: DisplayGreeting() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCharacterFormValidate(t *testing.T) {
	form := CharacterForm{Name: ""}
	if err := form.Validate(); err == nil {
		t.Error("Validate() with empty name should fail")
	}

	form.Name = "Nyx"
	if err := form.Validate(); err != nil {
		t.Errorf("Validate() with name = %v, want nil", err)
	}
}

func TestFromCharacter(t *testing.T) {
	char := &Character{
		Name:              "Nyx",
		Description:       "night spirit",
		Greeting:          "hey",
		PersonalityPrompt: "mysterious",
		Category:          "fantasy",
		IsPublic:          true,
	}

	form := FromCharacter(char)
	if form.Name != char.Name || form.Greeting != char.Greeting {
		t.Errorf("FromCharacter() did not copy fields: %+v", form)
	}
	if !form.IsPublic {
		t.Error("FromCharacter() should preserve IsPublic")
	}

	// nil character gives a public-by-default blank form
	blank := FromCharacter(nil)
	if !blank.IsPublic {
		t.Error("FromCharacter(nil) should default IsPublic to true")
	}
}

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewGreetingMessage(t *testing.T) {
	char := &Character{Name: "Luna"}
	msg := NewGreetingMessage(char)

	if msg.Sender != SenderAI {
		t.Errorf("greeting sender = %q, want %q", msg.Sender, SenderAI)
	}
	if !msg.IsGreeting {
		t.Error("greeting should carry IsGreeting")
	}
	if msg.Text != "Hello! I am Luna." {
		t.Errorf("greeting text = %q", msg.Text)
	}
}

func TestMessageIDsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := NewUserMessage("x")
		if seen[msg.ID] {
			t.Fatalf("duplicate message ID %q", msg.ID)
		}
		seen[msg.ID] = true
		if !strings.HasPrefix(msg.ID, "msg_") {
			t.Fatalf("message ID %q missing prefix", msg.ID)
		}
	}
}

func TestMessagePreview(t *testing.T) {
	tests := []struct {
		text   string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is a longer message", 10, "this is..."},
		{"héllo wörld indeed", 8, "héllo..."},
		{"abc", 2, "ab"},
	}

	for _, tc := range tests {
		msg := Message{Text: tc.text}
		got := msg.Preview(tc.maxLen)
		if got != tc.want {
			t.Errorf("Preview(%q, %d) = %q, want %q", tc.text, tc.maxLen, got, tc.want)
		}
	}
}

// =============================================================================
// USER TESTS
// =============================================================================

func TestUserDisplayName(t *testing.T) {
	var nilUser *User
	if nilUser.DisplayName() != "Anonymous" {
		t.Error("nil user should display as Anonymous")
	}

	u := &User{Name: "kai"}
	if u.DisplayName() != "kai" {
		t.Errorf("DisplayName() = %q", u.DisplayName())
	}
	if u.Initial() != "K" {
		t.Errorf("Initial() = %q, want K", u.Initial())
	}
}
