// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// handlers.go - Command handlers for the non-TUI knox commands.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/jeranaias/knox-tui/internal/api"
	"github.com/jeranaias/knox-tui/internal/config"
	"github.com/jeranaias/knox-tui/internal/session"
	"github.com/jeranaias/knox-tui/internal/storage"
	"github.com/jeranaias/knox-tui/internal/ui/styles"
	"github.com/jeranaias/knox-tui/internal/util"
)

// =============================================================================
// RUNTIME
// =============================================================================

// Runtime bundles the dependencies every CLI command needs.
type Runtime struct {
	Config   *config.Config
	Client   *api.Client
	Sessions *session.Store
	Local    *storage.Store
}

// NewRuntime builds the shared command runtime from the loaded config.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	client, err := api.NewClient(cfg.Server.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server configuration: %w", err)
	}
	client.WithTimeout(cfg.Server.Timeout())

	dir, err := config.ConfigDir()
	if err != nil {
		return nil, err
	}
	local, err := storage.NewStore(dir)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		Config:   cfg,
		Client:   client,
		Sessions: session.NewStore(client, local),
		Local:    local,
	}, nil
}

// =============================================================================
// PROMPTS
// =============================================================================

func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}

// =============================================================================
// AUTH COMMANDS
// =============================================================================

// HandleLogin signs in and persists the session. Returns an exit code.
func HandleLogin(rt *Runtime, args Args) int {
	email := args.Email
	if email == "" {
		var err error
		email, err = promptLine("Email: ")
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError("could not read email"))
			return 1
		}
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	user, message, err := rt.Sessions.Login(context.Background(), email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("login failed: "+err.Error()))
		return 1
	}

	if message == "" {
		message = "signed in"
	}
	fmt.Println(styles.RenderSuccess(message + " (" + user.DisplayName() + ")"))
	return 0
}

// HandleLogout ends the session. Always succeeds locally.
func HandleLogout(rt *Runtime, args Args) int {
	rt.Sessions.Logout(context.Background())
	fmt.Println(styles.RenderSuccess("signed out"))
	return 0
}

// HandleSignup registers a new account and leaves the user at login.
func HandleSignup(rt *Runtime, args Args) int {
	name := args.Name
	email := args.Email
	var err error

	if name == "" {
		if name, err = promptLine("Name: "); err != nil {
			return 1
		}
	}
	if email == "" {
		if email, err = promptLine("Email: "); err != nil {
			return 1
		}
	}
	password, err := promptPassword("Password: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
		return 1
	}

	message, err := rt.Sessions.Signup(context.Background(), name, email, password)
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("signup failed: "+err.Error()))
		return 1
	}
	if message == "" {
		message = "account created"
	}
	fmt.Println(styles.RenderSuccess(message))
	fmt.Println("Run `knox login` to sign in.")
	return 0
}

// HandleWhoami shows the signed-in user, probing the backend once.
func HandleWhoami(rt *Runtime, args Args) int {
	user, err := rt.Sessions.Probe(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("could not reach the server: "+err.Error()))
		return 1
	}
	if user == nil {
		fmt.Println("not signed in")
		return 0
	}

	if args.JSON {
		out, _ := json.MarshalIndent(user, "", "  ")
		fmt.Println(string(out))
		return 0
	}

	fmt.Printf("%s <%s>\n", user.DisplayName(), user.Email)
	if user.Avatar != "" {
		fmt.Printf("avatar: %s\n", rt.Client.ResolveAvatarURL(user.Avatar))
	}
	return 0
}

// =============================================================================
// CHARACTER COMMANDS
// =============================================================================

// HandleCharacters lists the available characters.
func HandleCharacters(rt *Runtime, args Args) int {
	characters, err := rt.Client.ListCharacters(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.RenderError("failed to list characters: "+err.Error()))
		return 1
	}

	if args.JSON {
		out, _ := json.MarshalIndent(characters, "", "  ")
		fmt.Println(string(out))
		return 0
	}

	if len(characters) == 0 {
		fmt.Println("no characters available")
		return 0
	}

	for _, ch := range characters {
		// PadRight keeps columns aligned for wide-rune names.
		fmt.Printf("%-26s %s %s\n",
			ch.ID, util.PadRight(util.TruncateWidth(ch.DisplayName(), 14), 14),
			util.TruncateRunes(util.FirstLine(ch.Description), 50))
	}
	fmt.Printf("\n%d characters - `knox chat <id>` to start talking\n", len(characters))
	return 0
}

// =============================================================================
// CONFIG COMMAND
// =============================================================================

// HandleConfig shows configuration details.
func HandleConfig(rt *Runtime, args Args) int {
	switch args.Subcommand {
	case "path":
		path, err := config.ConfigPathTOML()
		if err != nil {
			fmt.Fprintln(os.Stderr, styles.RenderError(err.Error()))
			return 1
		}
		fmt.Println(path)
		return 0

	case "", "show":
		cfg := rt.Config
		fmt.Printf("server:   %s (timeout %ds)\n", cfg.Server.BaseURL, cfg.Server.TimeoutSecs)
		fmt.Printf("theme:    %s\n", cfg.UI.Theme)
		fmt.Printf("logging:  enabled=%v level=%s\n", cfg.Log.Enabled, cfg.Log.Level)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "unknown config subcommand: %s\n", args.Subcommand)
		return 1
	}
}
