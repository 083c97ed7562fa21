// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package transcript holds the conversation state machine for a single
// chat: the synthesized greeting, the server-held history, optimistic
// sends, and failure marking.
//
// # Key Types
//
//   - Transcript: phase-tracked message list for one character
//   - InitResult: the settled outcome of the two startup fetches
//
// # Usage
//
//	tr := transcript.New(characterID)
//	tr.Begin()
//	tr.Finish(transcript.InitResult{Character: ch, History: msgs})
//	entry, err := tr.StartSend("hello", authed)
//	tr.ResolveSend(reply)  // or tr.FailSend()
//
// The transcript is always greeting-first: entry zero is synthesized
// client-side from the character's greeting (or a fallback), and the
// server history follows it. Initialization is fail-open — a failed
// character or history fetch still yields a usable transcript rather
// than a dead screen.
//
// A Transcript is not safe for concurrent use. Drive it from a single
// update loop and hand the async fetch results back through Finish,
// ResolveSend, and FailSend.
package transcript
