// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the knox command line interface: argument
// parsing, the non-TUI command handlers (login, logout, whoami,
// characters, config), and the plain-terminal chat REPL.
//
// # Key Types
//
//   - Command: the parsed top-level command
//   - Args: parsed flags and positionals
//   - Runtime: the shared dependencies handed to every handler
//
// # Usage
//
//	cmd, args := cli.Parse()
//	rt, err := cli.NewRuntime(cfg)
//	os.Exit(cli.HandleLogin(rt, args))
//
// Handlers return process exit codes rather than calling os.Exit so
// main stays the single exit point.
package cli
