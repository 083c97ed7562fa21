// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the knox TUI.
package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER
// =============================================================================

// Spinner is an ASCII-compatible loading spinner with a message and an
// optional elapsed timer.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	active    bool
	showTimer bool
}

// NewSpinner creates a spinner with ASCII-safe frames.
func NewSpinner(message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{spinner: s, message: message}
}

// NewReplySpinner creates the spinner shown while waiting for a reply.
func NewReplySpinner() Spinner {
	s := NewSpinner("Thinking")
	s.showTimer = true
	return s
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and records the start time.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.active
}

// Update handles messages for the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner line.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}

	frame := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render(s.spinner.View())
	message := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render(s.message + "...")

	out := frame + " " + message
	if s.showTimer && !s.startTime.IsZero() {
		out += lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(fmt.Sprintf(" (%ds)", int(time.Since(s.startTime).Seconds())))
	}
	return out
}
