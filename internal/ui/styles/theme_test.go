// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemePreference(t *testing.T) {
	if !NewTheme("dark").IsDark {
		t.Error("dark preference should force a dark theme")
	}
	if NewTheme("light").IsDark {
		t.Error("light preference should force a light theme")
	}
	// "auto" defers to detection; just make sure it constructs.
	if NewTheme("auto") == nil {
		t.Error("auto theme should construct")
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}

	theme := NewTheme("dark")
	for _, tc := range tests {
		theme.SetSize(tc.width, 40)
		if got := theme.GetLayoutMode(); got != tc.want {
			t.Errorf("width %d: mode = %v, want %v", tc.width, got, tc.want)
		}
	}
}

func TestStatusRenderersIncludeIndicators(t *testing.T) {
	if out := RenderSuccess("saved"); !strings.Contains(out, "[OK]") {
		t.Errorf("success output missing indicator: %q", out)
	}
	if out := RenderError("failed"); !strings.Contains(out, "[X]") {
		t.Errorf("error output missing indicator: %q", out)
	}
	if out := RenderWarning("careful"); !strings.Contains(out, "[!]") {
		t.Errorf("warning output missing indicator: %q", out)
	}
}
