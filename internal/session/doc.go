// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session owns the client's authentication state: who is signed
// in, whether the startup probe is still running, and the persisted
// session that survives restarts.
//
// # Key Types
//
//   - Store: in-memory auth state backed by the API client and local storage
//
// # Usage
//
//	store := session.NewStore(client, local)
//	user, err := store.Probe(ctx)   // once at startup
//	user, msg, err := store.Login(ctx, email, password)
//	store.Logout(ctx)               // always ends signed out
//
// The probe distinguishes "not signed in" (a 401, which is a normal
// state, not an error) from real failures (network down, server error),
// which are logged and also resolve to signed-out. UI code must treat
// a nil user after the probe as logged out, never as a fault.
package session
