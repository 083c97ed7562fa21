// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for knox.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdSignup
	CmdWhoami
	CmdCharacters
	CmdChat
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Verbose bool
	JSON    bool

	// Command-specific
	Email       string
	Name        string
	CharacterID string
	Subcommand  string

	// Raw args remaining after the command name
	Raw []string
}

const usageText = `knox - chat with AI characters from your terminal

Knox is a terminal client for the knox character chat service.
Running it with no arguments opens the full-screen TUI.

Usage:
  knox                       Start TUI (default)
  knox login                 Sign in (prompts for email and password)
    --email ADDRESS          Skip the email prompt
  knox logout                Sign out and clear the local session
  knox signup                Create an account
  knox whoami                Show the signed-in user
  knox characters            List available characters
    --json                   Output in JSON format
  knox chat <character-id>   Chat with a character in the terminal
  knox config [show|path]    Show configuration
  knox version               Show version information
  knox help                  Show this help

Interactive commands (during knox chat):
  /help, /h           Show available commands
  /history            Reprint the conversation so far
  /export             Save the transcript as Markdown
  /quit, /q           Exit chat (Ctrl+D also works)

Configuration:
  ~/.knox/config.toml        Main configuration file
  KNOX_BASE_URL              Override the backend URL
  KNOX_LOG, KNOX_LOG_LEVEL   Debug log controls

Examples:
  knox login --email you@example.com
  knox characters --json
  knox chat 66f2a81c9c4df3a1b0e77712
`

// PrintUsage prints the usage text.
func PrintUsage() {
	fmt.Print(usageText)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("knox version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

func parseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	// No arguments: open the TUI.
	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	parser := NewArgParser(remaining)

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "login", "signin":
		args.Email = parser.Flag("email")
		return CmdLogin, args

	case "logout", "signout":
		return CmdLogout, args

	case "signup", "register":
		args.Name = parser.Flag("name")
		args.Email = parser.Flag("email")
		return CmdSignup, args

	case "whoami", "me":
		return CmdWhoami, args

	case "characters", "chars", "list":
		args.JSON = args.JSON || parser.BoolFlag("json")
		return CmdCharacters, args

	case "chat":
		args.CharacterID = parser.Positional(0)
		return CmdChat, args

	case "config":
		args.Subcommand = parser.Subcommand()
		return CmdConfig, args

	case "version", "--version", "-v":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		return CmdHelp, args
	}
}

// parseGlobalFlags extracts flags that apply to every command.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var args Args
	remaining := make([]string, 0, len(argv))

	for _, arg := range argv {
		switch arg {
		case "--verbose":
			args.Verbose = true
		case "--json":
			args.JSON = true
		default:
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}
