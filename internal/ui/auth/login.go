// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth provides the sign-in and sign-up screens.
package auth

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
// LOGIN SCREEN
// =============================================================================

type loginResultMsg struct {
	user    *model.User
	message string
	err     error
}

// Login is the sign-in form: email and password, submit on enter.
type Login struct {
	theme    *styles.Theme
	sessions *session.Store

	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	banner   components.Banner

	width int
}

// NewLogin creates the login screen.
func NewLogin(theme *styles.Theme, sessions *session.Store) Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return Login{theme: theme, sessions: sessions, email: email, password: password}
}

// Init implements the screen contract.
func (m Login) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Login) SetSize(width, height int) {
	m.width = width
}

func (m Login) submitCmd() tea.Cmd {
	sessions := m.sessions
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	return func() tea.Msg {
		user, message, err := sessions.Login(context.Background(), email, password)
		return loginResultMsg{user: user, message: message, err: err}
	}
}

// Update handles messages for the login screen.
func (m Login) Update(msg tea.Msg) (Login, tea.Cmd) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			m.password.Reset()
			return m, m.banner.Show(components.BannerError, msg.err.Error())
		}
		return m, nav.Go(nav.ScreenExplore)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, nav.Go(nav.ScreenExplore)
		case "tab", "down":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + 1) % 2)
			return m, nil
		case "ctrl+s":
			return m, nav.Go(nav.ScreenSignup)
		case "enter":
			if m.busy {
				return m, nil
			}
			if strings.TrimSpace(m.email.Value()) == "" || m.password.Value() == "" {
				return m, m.banner.Show(components.BannerError, "email and password are required")
			}
			m.busy = true
			return m, m.submitCmd()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	cmds = append(cmds, cmd)
	m.password, cmd = m.password.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Login) setFocus(i int) {
	m.focus = i
	if i == 0 {
		m.email.Focus()
		m.password.Blur()
	} else {
		m.email.Blur()
		m.password.Focus()
	}
}

// View renders the login screen.
func (m Login) View() string {
	sections := []string{
		m.theme.FormTitle.Render("Sign in to knox"),
		m.fieldLabel("Email", m.focus == 0) + "\n" + m.email.View(),
		m.fieldLabel("Password", m.focus == 1) + "\n" + m.password.View(),
	}

	if m.busy {
		sections = append(sections, m.theme.Muted.Render("signing in..."))
	}
	if m.banner.Visible() {
		sections = append(sections, m.banner.View())
	}
	sections = append(sections,
		m.theme.Muted.Render("enter submit - ctrl+s sign up - esc back"))

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Login) fieldLabel(label string, focused bool) string {
	if focused {
		return m.theme.FieldFocused.Render(label)
	}
	return m.theme.FieldLabel.Render(label)
}

// Shortcuts returns the status bar hints for this screen.
func (m Login) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "sign in"},
		{Key: "ctrl+s", Desc: "sign up"},
		{Key: "esc", Desc: "back"},
	}
}
