// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/knox-tui/internal/transcript"
	"github.com/jeranaias/knox-tui/internal/ui/components"
	"github.com/jeranaias/knox-tui/internal/ui/nav"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages for the chat screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	m.banner.Update(msg)

	switch msg := msg.(type) {
	case characterFetchedMsg:
		m.charSettled = true
		m.pendingInit.Character = msg.character
		m.pendingInit.CharErr = msg.err
		return m.maybeFinishInit()

	case historyFetchedMsg:
		m.histSettled = true
		m.pendingInit.History = msg.messages
		m.pendingInit.HistErr = msg.err
		return m.maybeFinishInit()

	case sendResultMsg:
		m.spinner.Stop()
		if msg.err != nil {
			m.transcript.FailSend()
			m.refreshViewport()
			return m, m.banner.Show(components.BannerError,
				fmt.Sprintf("send failed: %v", msg.err))
		}
		m.transcript.ResolveSend(msg.reply)
		m.refreshViewport()
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.banner.Show(components.BannerError,
				fmt.Sprintf("export failed: %v", msg.err))
		}
		return m, m.banner.Show(components.BannerSuccess, "saved to "+msg.path)

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, nav.Go(nav.ScreenExplore)
		case "enter":
			return m.handleSubmit()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// maybeFinishInit completes initialization once both startup fetches
// have settled. Either may have failed; the transcript opens anyway.
func (m Model) maybeFinishInit() (Model, tea.Cmd) {
	if !m.charSettled || !m.histSettled {
		return m, nil
	}
	m.transcript.Finish(m.pendingInit)
	m.refreshViewport()
	m.viewport.GotoBottom()

	if m.pendingInit.Failed() {
		return m, m.banner.Show(components.BannerError,
			"some conversation data failed to load")
	}
	return m, nil
}

// handleSubmit processes the Enter key: slash commands first, then the
// send pipeline.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	text := m.input.Value()

	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return m.handleCommand(strings.TrimSpace(text))
	}

	// Sending requires a session; bounce to the login screen instead of
	// failing quietly.
	if !m.sessions.IsAuthenticated() {
		return m, nav.Go(nav.ScreenLogin)
	}

	entry, err := m.transcript.StartSend(text, true)
	if err != nil {
		switch {
		case errors.Is(err, transcript.ErrEmptyMessage):
			return m, nil
		case errors.Is(err, transcript.ErrSendInFlight):
			return m, m.banner.Show(components.BannerInfo, "still waiting for a reply")
		case errors.Is(err, transcript.ErrNotReady):
			return m, m.banner.Show(components.BannerInfo, "conversation is still loading")
		default:
			return m, m.banner.Show(components.BannerError, err.Error())
		}
	}

	m.input.Reset()
	m.refreshViewport()
	m.viewport.GotoBottom()
	return m, tea.Batch(m.sendCmd(entry.Text), m.spinner.Start())
}

// handleCommand processes slash commands typed into the input line.
func (m Model) handleCommand(content string) (Model, tea.Cmd) {
	m.input.Reset()

	parts := strings.Fields(content)
	if len(parts) == 0 {
		return m, nil
	}

	switch strings.ToLower(strings.TrimPrefix(parts[0], "/")) {
	case "export", "e":
		return m, m.exportCmd()
	case "quit", "q", "exit":
		return m, tea.Quit
	case "back", "b":
		return m, nav.Go(nav.ScreenExplore)
	default:
		return m, m.banner.Show(components.BannerInfo,
			"unknown command; try /export, /back, /quit")
	}
}
