// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the conversation screen: the transcript
// viewport, the input line, and the send pipeline.
package chat

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/knox-tui/internal/config"
	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/storage"
	"github.com/jeranaias/knox-tui/internal/transcript"
	"github.com/jeranaias/knox-tui/internal/ui/components"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat screen. One model exists
// per opened conversation; navigating to another character builds a
// fresh one.
type Model struct {
	theme    *styles.Theme
	cfg      *config.Config
	sessions *session.Store
	local    *storage.Store

	transcript *transcript.Transcript

	// Startup fetch bookkeeping. Finish runs only after both have
	// settled, however they settled.
	charSettled bool
	histSettled bool
	pendingInit transcript.InitResult

	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner
	banner   components.Banner

	// Markdown renderer for character replies; nil if construction
	// failed, in which case replies render as plain text.
	renderer *glamour.TermRenderer

	width  int
	height int
}

// New creates a chat screen for the given character.
func New(theme *styles.Theme, cfg *config.Config, sessions *session.Store, local *storage.Store, characterID string) Model {
	input := textinput.New()
	input.Placeholder = "Say something..."
	input.Prompt = "> "
	input.PromptStyle = theme.InputPrompt
	input.CharLimit = 4000
	input.Focus()

	return Model{
		theme:      theme,
		cfg:        cfg,
		sessions:   sessions,
		local:      local,
		transcript: transcript.New(characterID),
		viewport:   viewport.New(0, 0),
		input:      input,
		spinner:    components.NewReplySpinner(),
	}
}

// Init kicks off the two startup fetches in parallel.
func (m Model) Init() tea.Cmd {
	m.transcript.Begin()
	return tea.Batch(
		m.fetchCharacterCmd(),
		m.fetchHistoryCmd(),
	)
}

// SetSize updates the screen dimensions and rebuilds the renderer for
// the new wrap width.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 3
	headerHeight := 1
	m.viewport.Width = width
	m.viewport.Height = height - inputHeight - headerHeight

	wrap := width - 10
	if wrap < 20 {
		wrap = 20
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err == nil {
		m.renderer = renderer
	}

	m.refreshViewport()
}

// CharacterID returns the conversation's character ID.
func (m Model) CharacterID() string {
	return m.transcript.CharacterID()
}

// Shortcuts returns the status bar hints for this screen.
func (m Model) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "send"},
		{Key: "/export", Desc: "save transcript"},
		{Key: "esc", Desc: "back"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}
