// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/ui/components"
	"github.com/jeranaias/knox-tui/internal/ui/nav"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// SIGNUP SCREEN
// =============================================================================

type signupResultMsg struct {
	message string
	err     error
}

// Signup is the account registration form. Registration does not sign
// the user in; on success the screen hands off to login.
type Signup struct {
	theme    *styles.Theme
	sessions *session.Store

	fields []textinput.Model // name, email, password
	focus  int
	busy   bool
	banner components.Banner

	width int
}

// NewSignup creates the signup screen.
func NewSignup(theme *styles.Theme, sessions *session.Store) Signup {
	name := textinput.New()
	name.Placeholder = "display name"
	name.Prompt = "  "
	name.Focus()

	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'

	return Signup{
		theme:    theme,
		sessions: sessions,
		fields:   []textinput.Model{name, email, password},
	}
}

// Init implements the screen contract.
func (m Signup) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Signup) SetSize(width, height int) {
	m.width = width
}

func (m Signup) submitCmd() tea.Cmd {
	sessions := m.sessions
	name := strings.TrimSpace(m.fields[0].Value())
	email := strings.TrimSpace(m.fields[1].Value())
	password := m.fields[2].Value()
	return func() tea.Msg {
		message, err := sessions.Signup(context.Background(), name, email, password)
		return signupResultMsg{message: message, err: err}
	}
}

// Update handles messages for the signup screen.
func (m Signup) Update(msg tea.Msg) (Signup, tea.Cmd) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case signupResultMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError, msg.err.Error())
		}
		// Registered but not signed in: continue at the login screen.
		return m, nav.Go(nav.ScreenLogin)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, nav.Go(nav.ScreenLogin)
		case "tab", "down":
			m.setFocus((m.focus + 1) % len(m.fields))
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + len(m.fields) - 1) % len(m.fields))
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			for _, f := range m.fields {
				if strings.TrimSpace(f.Value()) == "" {
					return m, m.banner.Show(components.BannerError, "all fields are required")
				}
			}
			m.busy = true
			return m, m.submitCmd()
		}
	}

	var cmds []tea.Cmd
	for i := range m.fields {
		var cmd tea.Cmd
		m.fields[i], cmd = m.fields[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Signup) setFocus(i int) {
	m.focus = i
	for j := range m.fields {
		if j == i {
			m.fields[j].Focus()
		} else {
			m.fields[j].Blur()
		}
	}
}

// View renders the signup screen.
func (m Signup) View() string {
	labels := []string{"Name", "Email", "Password"}

	sections := []string{m.theme.FormTitle.Render("Create a knox account")}
	for i, f := range m.fields {
		label := m.theme.FieldLabel.Render(labels[i])
		if i == m.focus {
			label = m.theme.FieldFocused.Render(labels[i])
		}
		sections = append(sections, label+"\n"+f.View())
	}

	if m.busy {
		sections = append(sections, m.theme.Muted.Render("creating account..."))
	}
	if m.banner.Visible() {
		sections = append(sections, m.banner.View())
	}
	sections = append(sections,
		m.theme.Muted.Render("enter submit - esc back to sign in"))

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Shortcuts returns the status bar hints for this screen.
func (m Signup) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "create account"},
		{Key: "esc", Desc: "back"},
	}
}
