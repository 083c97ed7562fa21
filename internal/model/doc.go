// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures shared across the knox client.
//
// This package defines the core domain types used throughout the application
// for representing the signed-in user, characters, and transcript messages.
//
// # Key Types
//
//   - User: the authenticated account, cached client-side for the session
//   - Character: a persona profile (name, greeting, personality prompt)
//   - Message: a single transcript entry with sender, text, and flags
//   - Sender: message sender enumeration (user, ai)
//
// # Usage
//
// Build a transcript entry:
//
//	msg := model.NewUserMessage("hello there")
//
// Synthesize a greeting for a character:
//
//	greeting := model.NewGreetingMessage(char)
package model
