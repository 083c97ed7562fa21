// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ui provides the root Bubble Tea model that routes between the
// knox screens and owns the shared chrome (status bar, sizing, the
// startup session probe).
package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/config"
	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/storage"
	"github.com/jeranaias/knox-tui/internal/ui/auth"
	"github.com/jeranaias/knox-tui/internal/ui/charform"
	"github.com/jeranaias/knox-tui/internal/ui/chat"
	"github.com/jeranaias/knox-tui/internal/ui/components"
	"github.com/jeranaias/knox-tui/internal/ui/explore"
	"github.com/jeranaias/knox-tui/internal/ui/nav"
	"github.com/jeranaias/knox-tui/internal/ui/profile"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// sessionProbedMsg reports that the startup probe settled. A nil user
// is the normal signed-out state, not a failure.
type sessionProbedMsg struct {
	user *model.User
}

// =============================================================================
// APP MODEL
// =============================================================================

// App is the root model: it owns the screens and routes between them.
type App struct {
	cfg      *config.Config
	theme    *styles.Theme
	sessions *session.Store
	local    *storage.Store

	screen    nav.Screen
	explore   explore.Model
	chat      *chat.Model
	login     auth.Login
	signup    auth.Signup
	profile   profile.Model
	charform  charform.Model
	statusbar components.StatusBar

	width  int
	height int
}

// NewApp wires the root model from its dependencies.
func NewApp(cfg *config.Config, sessions *session.Store, local *storage.Store) App {
	theme := styles.NewTheme(cfg.UI.Theme)

	return App{
		cfg:       cfg,
		theme:     theme,
		sessions:  sessions,
		local:     local,
		screen:    nav.ScreenExplore,
		explore:   explore.New(theme, sessions),
		login:     auth.NewLogin(theme, sessions),
		signup:    auth.NewSignup(theme, sessions),
		profile:   profile.New(theme, sessions),
		charform:  charform.New(theme, sessions, nil),
		statusbar: components.NewStatusBar(theme),
	}
}

// Init starts the session probe and the first screen.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.probeCmd(), a.explore.Init())
}

func (a App) probeCmd() tea.Cmd {
	sessions := a.sessions
	return func() tea.Msg {
		// A failed probe already resolved the session to signed out;
		// the UI does not distinguish the causes.
		user, _ := sessions.Probe(context.Background())
		return sessionProbedMsg{user: user}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.setSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case sessionProbedMsg:
		// Status bar re-renders from the store on next View; nothing to do.
		return a, nil

	case nav.GoMsg:
		return a.navigate(msg)
	}

	return a.routeToScreen(msg)
}

// navigate switches the active screen, constructing fresh models for
// screens that carry per-visit state.
func (a App) navigate(msg nav.GoMsg) (tea.Model, tea.Cmd) {
	from := a.screen
	a.screen = msg.Screen

	var cmd tea.Cmd
	switch msg.Screen {
	case nav.ScreenChat:
		c := chat.New(a.theme, a.cfg, a.sessions, a.local, msg.CharacterID)
		c.SetSize(a.width, a.contentHeight())
		a.chat = &c
		cmd = c.Init()

	case nav.ScreenCharForm:
		a.charform = charform.New(a.theme, a.sessions, msg.Character)
		a.charform.SetSize(a.width, a.contentHeight())
		cmd = a.charform.Init()

	case nav.ScreenLogin:
		a.login = auth.NewLogin(a.theme, a.sessions)
		cmd = a.login.Init()

	case nav.ScreenSignup:
		a.signup = auth.NewSignup(a.theme, a.sessions)
		cmd = a.signup.Init()

	case nav.ScreenProfile:
		a.profile = profile.New(a.theme, a.sessions)
		cmd = a.profile.Init()

	case nav.ScreenExplore:
		// Coming back from a mutation screen: refresh the list.
		if from != nav.ScreenExplore {
			cmd = a.explore.Refresh()
		}
	}
	return a, cmd
}

func (a App) routeToScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.screen {
	case nav.ScreenExplore:
		a.explore, cmd = a.explore.Update(msg)
	case nav.ScreenChat:
		if a.chat != nil {
			var c chat.Model
			c, cmd = a.chat.Update(msg)
			a.chat = &c
		}
	case nav.ScreenLogin:
		a.login, cmd = a.login.Update(msg)
	case nav.ScreenSignup:
		a.signup, cmd = a.signup.Update(msg)
	case nav.ScreenProfile:
		a.profile, cmd = a.profile.Update(msg)
	case nav.ScreenCharForm:
		a.charform, cmd = a.charform.Update(msg)
	}
	return a, cmd
}

func (a *App) setSize(width, height int) {
	a.width = width
	a.height = height
	a.theme.SetSize(width, height)

	content := a.contentHeight()
	a.explore.SetSize(width, content)
	a.login.SetSize(width, content)
	a.signup.SetSize(width, content)
	a.profile.SetSize(width, content)
	a.charform.SetSize(width, content)
	a.statusbar.SetWidth(width)
	if a.chat != nil {
		a.chat.SetSize(width, content)
	}
}

// contentHeight is the height left for the active screen above the
// status bar.
func (a App) contentHeight() int {
	h := a.height - 1
	if h < 1 {
		return 1
	}
	return h
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the active screen over the status bar.
func (a App) View() string {
	var body string
	var shortcuts []components.Shortcut

	switch a.screen {
	case nav.ScreenExplore:
		body = a.explore.View()
		shortcuts = a.explore.Shortcuts()
	case nav.ScreenChat:
		if a.chat != nil {
			body = a.chat.View()
			shortcuts = a.chat.Shortcuts()
		}
	case nav.ScreenLogin:
		body = a.login.View()
		shortcuts = a.login.Shortcuts()
	case nav.ScreenSignup:
		body = a.signup.View()
		shortcuts = a.signup.Shortcuts()
	case nav.ScreenProfile:
		body = a.profile.View()
		shortcuts = a.profile.Shortcuts()
	case nav.ScreenCharForm:
		body = a.charform.View()
		shortcuts = a.charform.Shortcuts()
	}

	bar := a.statusbar.View(a.sessions.User(), a.sessions.Loading(), shortcuts)
	return lipgloss.JoinVertical(lipgloss.Left, body, bar)
}
