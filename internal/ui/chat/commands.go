// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/knox-tui/internal/model"
)

// =============================================================================
// MESSAGES
// =============================================================================

type characterFetchedMsg struct {
	character *model.Character
	err       error
}

type historyFetchedMsg struct {
	messages []model.Message
	err      error
}

type sendResultMsg struct {
	reply string
	err   error
}

type exportDoneMsg struct {
	path string
	err  error
}

// =============================================================================
// COMMANDS
// =============================================================================

func (m Model) fetchCharacterCmd() tea.Cmd {
	client := m.sessions.Client()
	id := m.transcript.CharacterID()
	return func() tea.Msg {
		character, err := client.GetCharacter(context.Background(), id)
		return characterFetchedMsg{character: character, err: err}
	}
}

func (m Model) fetchHistoryCmd() tea.Cmd {
	// Signed-out users have no history; settle immediately with an empty
	// result so init still waits on both fetches.
	if !m.sessions.IsAuthenticated() {
		return func() tea.Msg {
			return historyFetchedMsg{}
		}
	}
	client := m.sessions.Client()
	id := m.transcript.CharacterID()
	return func() tea.Msg {
		messages, err := client.History(context.Background(), id)
		return historyFetchedMsg{messages: messages, err: err}
	}
}

func (m Model) sendCmd(text string) tea.Cmd {
	client := m.sessions.Client()
	id := m.transcript.CharacterID()
	return func() tea.Msg {
		reply, err := client.Send(context.Background(), id, text)
		return sendResultMsg{reply: reply, err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	local := m.local
	character := m.transcript.Character()
	entries := m.transcript.Entries()
	return func() tea.Msg {
		path, err := local.ExportTranscript(character, entries)
		return exportDoneMsg{path: path, err: err}
	}
}
