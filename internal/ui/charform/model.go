// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package charform provides the character creation and editing form.
package charform

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
// FIELDS
// =============================================================================

const (
	fieldName = iota
	fieldDescription
	fieldGreeting
	fieldPersonality
	fieldCategory
	fieldAvatar
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Description",
	"Greeting",
	"Personality prompt",
	"Category",
	"Avatar path",
}

type savedMsg struct {
	err error
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the character form. With a non-nil
// editing target it submits an edit; otherwise it creates.
type Model struct {
	theme    *styles.Theme
	sessions *session.Store

	editing  *model.Character
	fields   [fieldCount]textinput.Model
	isPublic bool
	focus    int
	busy     bool
	banner   components.Banner

	width int
}

// New creates the form. Pass the character to edit, or nil to create.
func New(theme *styles.Theme, sessions *session.Store, editing *model.Character) Model {
	form := model.FromCharacter(editing)

	m := Model{
		theme:    theme,
		sessions: sessions,
		editing:  editing,
		isPublic: form.IsPublic,
	}

	values := [fieldCount]string{
		form.Name, form.Description, form.Greeting,
		form.PersonalityPrompt, form.Category, "",
	}
	for i := range m.fields {
		f := textinput.New()
		f.Prompt = "  "
		f.Placeholder = strings.ToLower(fieldLabels[i])
		f.SetValue(values[i])
		m.fields[i] = f
	}
	m.fields[fieldName].Focus()

	if editing != nil {
		// Edits are JSON-only on the backend; the avatar cannot change here.
		m.fields[fieldAvatar].Placeholder = "avatar not editable"
	}
	return m
}

// Init implements the screen contract.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
}

// Editing reports whether the form edits an existing character.
func (m Model) Editing() bool {
	return m.editing != nil
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) form() model.CharacterForm {
	creator := ""
	if user := m.sessions.User(); user != nil {
		creator = user.DisplayName()
	}
	return model.CharacterForm{
		Name:              strings.TrimSpace(m.fields[fieldName].Value()),
		Description:       strings.TrimSpace(m.fields[fieldDescription].Value()),
		Greeting:          strings.TrimSpace(m.fields[fieldGreeting].Value()),
		PersonalityPrompt: strings.TrimSpace(m.fields[fieldPersonality].Value()),
		Category:          strings.TrimSpace(m.fields[fieldCategory].Value()),
		Creator:           creator,
		IsPublic:          m.isPublic,
		AvatarPath:        strings.TrimSpace(m.fields[fieldAvatar].Value()),
	}
}

func (m Model) saveCmd() tea.Cmd {
	client := m.sessions.Client()
	form := m.form()
	var editID string
	if m.editing != nil {
		editID = m.editing.ID
	}
	return func() tea.Msg {
		var err error
		if editID != "" {
			err = client.EditCharacter(context.Background(), editID, form)
		} else {
			err = client.CreateCharacter(context.Background(), form)
		}
		return savedMsg{err: err}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the character form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case savedMsg:
		m.busy = false
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError, msg.err.Error())
		}
		return m, nav.Go(nav.ScreenExplore)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, nav.Go(nav.ScreenExplore)
		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil
		case "ctrl+p":
			m.isPublic = !m.isPublic
			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}
			if !m.sessions.IsAuthenticated() {
				return m, nav.Go(nav.ScreenLogin)
			}
			form := m.form()
			if err := form.Validate(); err != nil {
				return m, m.banner.Show(components.BannerError, err.Error())
			}
			m.busy = true
			return m, m.saveCmd()
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

func (m *Model) setFocus(i int) {
	m.focus = i
	for j := range m.fields {
		if j == i {
			m.fields[j].Focus()
		} else {
			m.fields[j].Blur()
		}
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the character form.
func (m Model) View() string {
	title := "Create a character"
	if m.editing != nil {
		title = "Edit " + m.editing.DisplayName()
	}

	sections := []string{m.theme.FormTitle.Render(title)}
	for i := range m.fields {
		if m.editing != nil && i == fieldAvatar {
			continue
		}
		label := m.theme.FieldLabel.Render(fieldLabels[i])
		if i == m.focus {
			label = m.theme.FieldFocused.Render(fieldLabels[i])
		}
		sections = append(sections, label+"\n"+m.fields[i].View())
	}

	visibility := "private"
	if m.isPublic {
		visibility = "public"
	}
	sections = append(sections,
		m.theme.FieldLabel.Render("Visibility")+"  "+m.theme.FieldFocused.Render(visibility))

	if m.busy {
		sections = append(sections, m.theme.Muted.Render("saving..."))
	}
	if m.banner.Visible() {
		sections = append(sections, m.banner.View())
	}
	sections = append(sections,
		m.theme.Muted.Render("enter save - ctrl+p toggle visibility - esc back"))

	return m.theme.Container.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// Shortcuts returns the status bar hints for this screen.
func (m Model) Shortcuts() []components.Shortcut {
	return []components.Shortcut{
		{Key: "enter", Desc: "save"},
		{Key: "ctrl+p", Desc: "visibility"},
		{Key: "esc", Desc: "back"},
	}
}
