// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package explore provides the character browser screen: the list of
// available characters with entry points into chat, creation, editing,
// and deletion.
package explore

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/ui/components"
	"github.com/jeranaias/knox-tui/internal/ui/nav"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
	"github.com/jeranaias/knox-tui/internal/util"
)

// =============================================================================
// LIST ITEMS
// =============================================================================

// characterItem adapts a model.Character to the bubbles list.
type characterItem struct {
	character model.Character
}

func (i characterItem) Title() string { return i.character.DisplayName() }

func (i characterItem) Description() string {
	desc := util.FirstLine(i.character.Description)
	if i.character.Category != "" {
		return i.character.Category + " - " + util.TruncateRunes(desc, 60)
	}
	return util.TruncateRunes(desc, 60)
}

func (i characterItem) FilterValue() string { return i.character.Name }

// =============================================================================
// MESSAGES
// =============================================================================

type charactersLoadedMsg struct {
	characters []model.Character
	err        error
}

type characterDeletedMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the explore screen.
type Model struct {
	theme    *styles.Theme
	sessions *session.Store

	list    list.Model
	spinner components.Spinner
	banner  components.Banner

	loaded        bool
	confirmDelete *model.Character

	width  int
	height int
}

// New creates the explore screen.
func New(theme *styles.Theme, sessions *session.Store) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Purple).
		BorderLeftForeground(styles.Purple)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.TextSecondary).
		BorderLeftForeground(styles.Purple)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "knox - explore characters"
	l.Styles.Title = lipgloss.NewStyle().
		Foreground(styles.TextInverse).
		Background(styles.Purple).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return Model{
		theme:    theme,
		sessions: sessions,
		list:     l,
		spinner:  components.NewSpinner("Loading characters"),
	}
}

// Init starts the initial character fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Start())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
}

// Refresh reloads the character list, used when returning to the screen
// after a mutation elsewhere.
func (m *Model) Refresh() tea.Cmd {
	m.loaded = false
	return tea.Batch(m.fetchCmd(), m.spinner.Start())
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) fetchCmd() tea.Cmd {
	client := m.sessions.Client()
	return func() tea.Msg {
		characters, err := client.ListCharacters(context.Background())
		return charactersLoadedMsg{characters: characters, err: err}
	}
}

func (m Model) deleteCmd(id string) tea.Cmd {
	client := m.sessions.Client()
	return func() tea.Msg {
		return characterDeletedMsg{err: client.DeleteCharacter(context.Background(), id)}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the explore screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case charactersLoadedMsg:
		m.loaded = true
		m.spinner.Stop()
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError,
				fmt.Sprintf("failed to load characters: %v", msg.err))
		}
		items := make([]list.Item, 0, len(msg.characters))
		for _, ch := range msg.characters {
			items = append(items, characterItem{character: ch})
		}
		return m, m.list.SetItems(items)

	case characterDeletedMsg:
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError,
				fmt.Sprintf("delete failed: %v", msg.err))
		}
		return m, tea.Batch(
			m.banner.Show(components.BannerSuccess, "character deleted"),
			m.Refresh(),
		)

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	// Delete confirmation intercepts everything until answered.
	if m.confirmDelete != nil {
		switch msg.String() {
		case "y", "Y":
			id := m.confirmDelete.ID
			m.confirmDelete = nil
			return m.deleteCmd(id), true
		default:
			m.confirmDelete = nil
			return nil, true
		}
	}

	// Let the list's filter capture keys while active.
	if m.list.FilterState() == list.Filtering {
		return nil, false
	}

	switch msg.String() {
	case "enter":
		if item, ok := m.list.SelectedItem().(characterItem); ok {
			return nav.GoChat(item.character.ID), true
		}
	case "n":
		return nav.Go(nav.ScreenCharForm), true
	case "e":
		if item, ok := m.list.SelectedItem().(characterItem); ok {
			ch := item.character
			return nav.GoEdit(&ch), true
		}
	case "d":
		if item, ok := m.list.SelectedItem().(characterItem); ok {
			ch := item.character
			m.confirmDelete = &ch
			return nil, true
		}
	case "p":
		return nav.Go(nav.ScreenProfile), true
	case "l":
		if m.sessions.IsAuthenticated() {
			return nil, false
		}
		return nav.Go(nav.ScreenLogin), true
	}
	return nil, false
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the explore screen.
func (m Model) View() string {
	if !m.loaded {
		return m.theme.Container.Render(m.spinner.View())
	}

	sections := []string{m.list.View()}

	if m.confirmDelete != nil {
		prompt := m.theme.BannerError.Render(
			fmt.Sprintf("Delete %q? (y/N)", m.confirmDelete.DisplayName()))
		sections = append(sections, prompt)
	} else if m.banner.Visible() {
		sections = append(sections, m.banner.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Shortcuts returns the status bar hints for this screen.
func (m Model) Shortcuts() []components.Shortcut {
	shortcuts := []components.Shortcut{
		{Key: "enter", Desc: "chat"},
		{Key: "n", Desc: "new"},
		{Key: "e", Desc: "edit"},
		{Key: "d", Desc: "delete"},
		{Key: "p", Desc: "profile"},
	}
	if !m.sessions.IsAuthenticated() {
		shortcuts = append(shortcuts, components.Shortcut{Key: "l", Desc: "sign in"})
	}
	return append(shortcuts, components.Shortcut{Key: "ctrl+c", Desc: "quit"})
}
