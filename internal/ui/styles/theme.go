// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the knox TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability and adjusts accordingly.
type Theme struct {
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	Width  int
	Height int

	// ==========================================================================
	// CONTAINER AND HEADER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	Header         lipgloss.Style
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserBubble      lipgloss.Style
	CharacterBubble lipgloss.Style
	GreetingMarker  lipgloss.Style
	FailedMarker    lipgloss.Style

	// ==========================================================================
	// FORM AND INPUT STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputPrompt    lipgloss.Style
	FieldLabel     lipgloss.Style
	FieldFocused   lipgloss.Style
	FormTitle      lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND FEEDBACK STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	BannerOK     lipgloss.Style
	BannerError  lipgloss.Style
	Spinner      lipgloss.Style
	Muted        lipgloss.Style
}

// NewTheme creates a theme with all styles configured.
//
// The preference is one of "dark", "light", or "auto"; auto defers to
// terminal background detection.
func NewTheme(preference string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := termenv.HasDarkBackground()
	switch preference {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.HeaderSubtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.UserBubble = lipgloss.NewStyle().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 2).
		MarginLeft(4)

	t.CharacterBubble = lipgloss.NewStyle().
		Foreground(CharacterBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(CharacterBubbleBorder).
		Padding(0, 2).
		MarginRight(4)

	t.GreetingMarker = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.FailedMarker = lipgloss.NewStyle().
		Foreground(FailedFg).
		Bold(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.InputPrompt = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.FieldFocused = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.FormTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginBottom(1)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.BannerOK = lipgloss.NewStyle().
		Foreground(Emerald).
		Bold(true)

	t.BannerError = lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Purple)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}
