// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the knox TUI:
// the loading spinner, the self-clearing feedback banner, and the
// status bar shown under every screen.
package components
