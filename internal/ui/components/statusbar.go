// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
	"github.com/jeranaias/knox-tui/internal/util"
)

// =============================================================================
// STATUS BAR
// =============================================================================

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom line: session state on the left,
// shortcuts on the right.
type StatusBar struct {
	theme *styles.Theme
	width int
}

// NewStatusBar creates a status bar bound to a theme.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// SetWidth sets the render width.
func (s *StatusBar) SetWidth(width int) {
	s.width = width
}

// View renders the bar for the given session state and shortcuts.
//
// A nil user with loading=true renders a probing indicator; a nil user
// otherwise renders as signed out, which is a normal state rather than
// a fault.
func (s StatusBar) View(user *model.User, loading bool, shortcuts []Shortcut) string {
	var left string
	switch {
	case loading:
		left = s.theme.Muted.Render("checking session...")
	case user != nil:
		name := util.TruncateWidth(user.DisplayName(), 24)
		left = lipgloss.NewStyle().Foreground(styles.Emerald).Render("@" + name)
	default:
		left = lipgloss.NewStyle().Foreground(styles.Amber).Render("signed out")
	}

	hints := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return s.theme.StatusBar.Width(s.width).Render(left + strings.Repeat(" ", gap) + right)
}
