// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/transcript"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat screen.
func (m Model) View() string {
	header := m.theme.HeaderTitle.Render(m.title())

	body := m.viewport.View()
	if m.transcript.Phase() != transcript.PhaseReady {
		body = m.theme.Muted.Render("loading conversation...")
	}

	inputLine := m.theme.InputContainer.Width(m.width - 2).Render(m.input.View())

	sections := []string{header, body}
	if m.transcript.Busy() {
		sections = append(sections, m.spinner.View())
	}
	if m.banner.Visible() {
		sections = append(sections, m.banner.View())
	}
	sections = append(sections, inputLine)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) title() string {
	if ch := m.transcript.Character(); ch != nil {
		return "Chat with " + ch.DisplayName()
	}
	return "Chat"
}

// refreshViewport re-renders the transcript into the viewport.
func (m *Model) refreshViewport() {
	if m.transcript.Phase() != transcript.PhaseReady {
		return
	}

	var b strings.Builder
	for _, entry := range m.transcript.Entries() {
		b.WriteString(m.renderEntry(entry))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

// renderEntry renders one transcript entry as a bubble.
func (m *Model) renderEntry(entry model.Message) string {
	maxWidth := m.width - 8
	if maxWidth < 20 {
		maxWidth = 20
	}

	if entry.Sender == model.SenderUser {
		bubble := m.theme.UserBubble.MaxWidth(maxWidth).Render(entry.Text)
		if entry.Failed {
			bubble += "\n" + m.theme.FailedMarker.Render("    failed to send")
		}
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Right).Render(bubble)
	}

	text := entry.Text
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(entry.Text); err == nil {
			text = strings.TrimRight(rendered, "\n")
		}
	}

	bubble := m.theme.CharacterBubble.MaxWidth(maxWidth).Render(text)
	if entry.IsGreeting && m.cfg.UI.ShowGreetingMarker {
		bubble = m.theme.GreetingMarker.Render("greeting") + "\n" + bubble
	}
	return bubble
}
