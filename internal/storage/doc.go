// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists local client state under the knox config
// directory: the session cookie snapshot with the cached user, and
// Markdown exports of chat transcripts.
//
// # Key Types
//
//   - SessionState: persisted cookies plus the last known user
//   - Store: load/save/clear for session state, transcript export
//
// # Usage
//
//	store, err := storage.NewStore(config.ConfigDir())
//	state, err := store.LoadSession()
//	err = store.SaveSession(state)
//	err = store.ClearSession()
//
// All writes are atomic (temp file + rename) so a crash mid-write never
// leaves a corrupt state file. Session files are written 0600 because
// they hold authentication cookies.
package storage
