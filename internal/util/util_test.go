// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// STRING HELPERS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		input   string
		maxLen  int
		want    string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"héllo wörld", 8, "héllo..."},
		{"abc", 2, "ab"},
		{"anything", 0, ""},
	}

	for _, tc := range tests {
		got := TruncateRunes(tc.input, tc.maxLen)
		if got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
		}
	}
}

func TestTruncateWidth(t *testing.T) {
	// Double-width CJK characters occupy two columns each.
	got := TruncateWidth("你好世界", 5)
	if got != "你..." {
		t.Errorf("TruncateWidth(CJK, 5) = %q", got)
	}

	if TruncateWidth("narrow", 10) != "narrow" {
		t.Error("TruncateWidth should pass short strings through")
	}
}

func TestFirstLine(t *testing.T) {
	if FirstLine("  one  \ntwo") != "one" {
		t.Errorf("FirstLine = %q", FirstLine("  one  \ntwo"))
	}
	if FirstLine("solo") != "solo" {
		t.Error("FirstLine should handle strings without newlines")
	}
}

// =============================================================================
// ATOMIC WRITE
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "state.json")

	if err := AtomicWriteFile(path, []byte(`{"ok":true}`), 0600); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("content = %q", data)
	}

	// Overwrite leaves no temp files behind.
	if err := AtomicWriteFile(path, []byte("v2"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile overwrite: %v", err)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected 1 file after overwrite, found %d", len(entries))
	}
}
