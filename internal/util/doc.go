// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the knox client.
//
// # Key Functions
//
//   - TruncateRunes / TruncateWidth: Unicode-safe truncation for display
//   - AtomicWriteFile: crash-safe file persistence for local state
package util
