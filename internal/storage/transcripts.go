// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/knox-tui/internal/model"
	"github.com/jeranaias/knox-tui/internal/util"
)

// =============================================================================
// TRANSCRIPT EXPORT
// =============================================================================

// ExportTranscript writes a chat transcript as a Markdown file under the
// store's exports directory and returns the written path.
//
// The greeting entry is annotated because it is synthesized client-side
// and never part of the server-held history.
func (s *Store) ExportTranscript(character *model.Character, messages []model.Message) (string, error) {
	name := "companion"
	if character != nil && strings.TrimSpace(character.Name) != "" {
		name = sanitizeFilename(character.Name)
	}

	dir := filepath.Join(s.dir, "exports")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.md", name, time.Now().Format("20060102-150405")))

	var b strings.Builder
	title := "Companion"
	if character != nil {
		title = character.DisplayName()
	}
	fmt.Fprintf(&b, "# Chat with %s\n\n", title)
	fmt.Fprintf(&b, "Exported %s\n\n", time.Now().Format(time.RFC1123))

	for _, msg := range messages {
		speaker := title
		if msg.Sender == model.SenderUser {
			speaker = "You"
		}
		fmt.Fprintf(&b, "**%s**", speaker)
		if msg.IsGreeting {
			b.WriteString(" *(greeting)*")
		}
		if msg.Failed {
			b.WriteString(" *(failed to send)*")
		}
		b.WriteString(":\n\n")
		b.WriteString(strings.TrimRight(msg.Text, "\n"))
		b.WriteString("\n\n")
	}

	if err := util.AtomicWriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	return path, nil
}

// sanitizeFilename reduces a character name to a safe filename stem.
func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "companion"
	}
	return out
}
