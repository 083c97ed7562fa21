// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav defines the screen identifiers and navigation messages
// shared by the root app model and every screen. It sits below both so
// screens can request navigation without importing the router.
package nav

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/knox-tui/internal/model"
)

// Screen identifies a top-level screen of the app.
type Screen int

const (
	ScreenExplore Screen = iota
	ScreenChat
	ScreenLogin
	ScreenSignup
	ScreenProfile
	ScreenCharForm
)

// String returns the screen name for logs.
func (s Screen) String() string {
	switch s {
	case ScreenExplore:
		return "explore"
	case ScreenChat:
		return "chat"
	case ScreenLogin:
		return "login"
	case ScreenSignup:
		return "signup"
	case ScreenProfile:
		return "profile"
	case ScreenCharForm:
		return "charform"
	default:
		return "unknown"
	}
}

// GoMsg asks the router to switch screens. CharacterID is set for chat,
// Character for editing an existing character in the form screen.
type GoMsg struct {
	Screen      Screen
	CharacterID string
	Character   *model.Character
}

// Go returns a command that navigates to the given screen.
func Go(screen Screen) tea.Cmd {
	return func() tea.Msg {
		return GoMsg{Screen: screen}
	}
}

// GoChat navigates to the chat screen for a character.
func GoChat(characterID string) tea.Cmd {
	return func() tea.Msg {
		return GoMsg{Screen: ScreenChat, CharacterID: characterID}
	}
}

// GoEdit navigates to the character form pre-filled for editing.
func GoEdit(character *model.Character) tea.Cmd {
	return func() tea.Msg {
		return GoMsg{Screen: ScreenCharForm, Character: character}
	}
}
