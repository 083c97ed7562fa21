// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the knox TUI.
//
// # Key Types
//
//   - Theme: all configured lipgloss styles, sized for the terminal
//   - StatusIndicatorSet: ASCII status markers used alongside color
//
// Colors are lipgloss.AdaptiveColor pairs so every style renders on
// both light and dark backgrounds. The theme preference in the config
// ("dark", "light", "auto") only overrides background detection; the
// palette itself is shared.
package styles
