// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive chat command handler for the knox CLI.
//
// Handles the "knox chat <character-id>" command, a plain REPL for
// terminals where the full-screen TUI is unwanted (SSH sessions,
// scripts, minimal environments).
//
// Interactive commands (during chat):
//   /help, /h           Show available commands
//   /history            Reprint the conversation so far
//   /export             Save the transcript as Markdown
//   /quit, /q           Exit chat
//   Ctrl+D              Exit chat
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/knox-tui/internal/config"
	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/transcript"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	characterStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	failedStyle = lipgloss.NewStyle().
			Foreground(styles.Rose)
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatInput provides input history and line editing for interactive
// chat, persisted across sessions.
type ChatInput struct {
	line        *liner.State
	historyFile string
}

// NewChatInput creates a ChatInput with history support.
func NewChatInput() *ChatInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatInput{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.loadHistory()
	return c
}

func (c *ChatInput) loadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line with the given prompt; arrow keys navigate
// history.
func (c *ChatInput) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history and releases the terminal.
func (c *ChatInput) Close() {
	if err := config.EnsureConfigDir(); err == nil {
		// 0600: the history may contain personal conversation text.
		if f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			c.line.WriteHistory(f)
			f.Close()
		}
	}
	c.line.Close()
}

// =============================================================================
// CHAT COMMAND
// =============================================================================

// HandleChat runs the interactive chat REPL for a character.
func HandleChat(rt *Runtime, args Args) int {
	if args.CharacterID == "" {
		fmt.Fprintln(os.Stderr, "usage: knox chat <character-id>")
		fmt.Fprintln(os.Stderr, "run `knox characters` to list IDs")
		return 2
	}

	ctx := context.Background()

	// Settle the session first so the auth gate is accurate.
	user, err := rt.Sessions.Probe(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderWarning("could not verify session; continuing signed out"))
	}

	tr := transcript.New(args.CharacterID)
	tr.Begin()
	tr.Finish(fetchConversation(ctx, rt, args.CharacterID))

	printWelcome(tr, user)
	for _, entry := range tr.Entries() {
		printEntry(tr.Character(), entry)
	}

	input := NewChatInput()
	defer input.Close()

	for {
		line, err := input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println()
				return 0
			}
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "/") {
			if quit := handleChatCommand(rt, tr, trimmed); quit {
				return 0
			}
			continue
		}

		entry, err := tr.StartSend(line, rt.Sessions.IsAuthenticated())
		if err != nil {
			switch {
			case errors.Is(err, transcript.ErrEmptyMessage):
				continue
			case errors.Is(err, transcript.ErrNotSignedIn):
				fmt.Println(styles.RenderWarning("sign in first: run `knox login`"))
				continue
			default:
				fmt.Println(styles.RenderError(err.Error()))
				continue
			}
		}

		reply, err := rt.Client.Send(ctx, args.CharacterID, entry.Text)
		if err != nil {
			tr.FailSend()
			fmt.Println(failedStyle.Render("  (message failed to send: " + err.Error() + ")"))
			continue
		}
		tr.ResolveSend(reply)
		printEntry(tr.Character(), model.NewAIMessage(reply))
	}
}

// fetchConversation runs the two startup fetches. In the REPL they run
// concurrently, and both always settle.
func fetchConversation(ctx context.Context, rt *Runtime, characterID string) transcript.InitResult {
	var res transcript.InitResult
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		res.Character, res.CharErr = rt.Client.GetCharacter(ctx, characterID)
	}()
	go func() {
		defer wg.Done()
		// Signed-out users have no history to fetch.
		if !rt.Sessions.IsAuthenticated() {
			return
		}
		res.History, res.HistErr = rt.Client.History(ctx, characterID)
	}()

	wg.Wait()
	return res
}

func handleChatCommand(rt *Runtime, tr *transcript.Transcript, content string) (quit bool) {
	switch strings.ToLower(strings.TrimPrefix(strings.Fields(content)[0], "/")) {
	case "quit", "q", "exit":
		return true

	case "help", "h":
		fmt.Println(infoStyle.Render("commands: /history  /export  /quit"))
		return false

	case "history":
		for _, entry := range tr.Entries() {
			printEntry(tr.Character(), entry)
		}
		return false

	case "export", "e":
		path, err := rt.Local.ExportTranscript(tr.Character(), tr.Entries())
		if err != nil {
			fmt.Println(styles.RenderError("export failed: " + err.Error()))
			return false
		}
		fmt.Println(styles.RenderSuccess("saved to " + path))
		return false

	default:
		fmt.Println(infoStyle.Render("unknown command; /help lists commands"))
		return false
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

func printWelcome(tr *transcript.Transcript, user *model.User) {
	name := tr.Character().DisplayName()
	fmt.Println(characterStyle.Render("Chatting with " + name))
	if user == nil {
		fmt.Println(infoStyle.Render("signed out - you can read but not send"))
	}
	if tr.InitResult().Failed() {
		fmt.Println(styles.RenderWarning("some conversation data failed to load"))
	}
	fmt.Println(infoStyle.Render("/help for commands, Ctrl+D to exit"))
	fmt.Println()
}

func printEntry(character *model.Character, entry model.Message) {
	if entry.Sender == model.SenderUser {
		line := promptStyle.Render("you> ") + entry.Text
		if entry.Failed {
			line += failedStyle.Render("  (failed)")
		}
		fmt.Println(line)
		return
	}

	name := character.DisplayName()
	fmt.Println(characterStyle.Render(name+"> ") + entry.Text)
}
