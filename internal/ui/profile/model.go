// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package profile provides the account screen: display name and avatar
// edits, plus sign-out.
package profile

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/ui/components"
	"github.com/jeranaias/knox-tui/internal/ui/nav"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

type profileSavedMsg struct {
	user *model.User
	err  error
}

type loggedOutMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the profile screen.
type Model struct {
	theme    *styles.Theme
	sessions *session.Store

	name   textinput.Model
	avatar textinput.Model
	focus  int
	busy   bool
	banner components.Banner

	width int
}

// New creates the profile screen pre-filled from the current user.
func New(theme *styles.Theme, sessions *session.Store) Model {
	name := textinput.New()
	name.Placeholder = "display name"
	name.Prompt = "  "
	name.Focus()

	avatar := textinput.New()
	avatar.Placeholder = "path to avatar image (optional)"
	avatar.Prompt = "  "

	if user := sessions.User(); user != nil {
		name.SetValue(user.Name)
	}

	return Model{theme: theme, sessions: sessions, name: name, avatar: avatar}
}

// Init implements the screen contract.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) saveCmd() tea.Cmd {
	sessions := m.sessions
	name := strings.TrimSpace(m.name.Value())
	avatar := strings.TrimSpace(m.avatar.Value())
	return func() tea.Msg {
		user, err := sessions.UpdateProfile(context.Background(), name, avatar)
		return profileSavedMsg{user: user, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	sessions := m.sessions
	return func() tea.Msg {
		sessions.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the profile screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case profileSavedMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError, msg.err.Error())
		}
		if msg.user != nil {
			m.name.SetValue(msg.user.Name)
		}
		m.avatar.Reset()
		return m, m.banner.Show(components.BannerSuccess, "profile updated")

	case loggedOutMsg:
		// Local state is already cleared whatever the backend said.
		return m, nav.Go(nav.ScreenLogin)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, nav.Go(nav.ScreenExplore)
		case "tab", "down", "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "ctrl+o":
			return m, m.logoutCmd()
		case "enter":
			if m.busy {
				return m, nil
			}
			if !m.sessions.IsAuthenticated() {
				return m, nav.Go(nav.ScreenLogin)
			}
			if strings.TrimSpace(m.name.Value()) == "" {
				return m, m.banner.Show(components.BannerError, "name is required")
			}
			m.busy = true
			return m, m.saveCmd()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	cmds = append(cmds, cmd)
	m.avatar, cmd = m.avatar.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.name.Focus()
		m.avatar.Blur()
	} else {
		m.name.Blur()
		m.avatar.Focus()
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the profile screen.
func (m Model) View() string {
	user := m.sessions.User()

	sections := []string{m.theme.FormTitle.Render("Your profile")}

	if user == nil {
		sections = append(sections,
			m.theme.Muted.Render("You are not signed in."),
			m.theme.Muted.Render("esc back"))
		return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	sections = append(sections,
		m.theme.FieldLabel.Render("Email")+"\n  "+user.Email,
		m.label("Name", m.focus == 0)+"\n"+m.name.View(),
		m.label("Avatar", m.focus == 1)+"\n"+m.avatar.View(),
	)

	if m.busy {
		sections = append(sections, m.theme.Muted.Render("saving..."))
	}
	if m.banner.Visible() {
		sections = append(sections, m.banner.View())
	}
	sections = append(sections,
		m.theme.Muted.Render("enter save - ctrl+o sign out - esc back"))

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) label(text string, focused bool) string {
	if focused {
		return m.theme.FieldFocused.Render(text)
	}
	return m.theme.FieldLabel.Render(text)
}

// Shortcuts returns the status bar hints for this screen.
func (m Model) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "save"},
		{Key: "ctrl+o", Desc: "sign out"},
		{Key: "esc", Desc: "back"},
	}
}
