// knox - A terminal client for AI character chat.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jeranaias/knox-tui/internal/cli"
	"github.com/jeranaias/knox-tui/internal/config"
	"github.com/jeranaias/knox-tui/internal/logx"
	"github.com/jeranaias/knox-tui/internal/ui"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	// A .env in the working directory can seed KNOX_* variables; its
	// absence is not an error.
	_ = godotenv.Load()

	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdVersion:
		cli.PrintVersion()
		return
	case cli.CmdHelp:
		cli.PrintUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	rt, err := cli.NewRuntime(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	switch cmd {
	case cli.CmdTUI:
		os.Exit(runTUI(cfg, rt))
	case cli.CmdLogin:
		initConsoleLog(cfg)
		os.Exit(cli.HandleLogin(rt, args))
	case cli.CmdLogout:
		initConsoleLog(cfg)
		os.Exit(cli.HandleLogout(rt, args))
	case cli.CmdSignup:
		initConsoleLog(cfg)
		os.Exit(cli.HandleSignup(rt, args))
	case cli.CmdWhoami:
		initConsoleLog(cfg)
		os.Exit(cli.HandleWhoami(rt, args))
	case cli.CmdCharacters:
		initConsoleLog(cfg)
		os.Exit(cli.HandleCharacters(rt, args))
	case cli.CmdChat:
		initFileLog(cfg)
		os.Exit(cli.HandleChat(rt, args))
	case cli.CmdConfig:
		os.Exit(cli.HandleConfig(rt, args))
	}
}

// runTUI starts the full-screen interface.
func runTUI(cfg *config.Config, rt *cli.Runtime) int {
	// The TUI owns stdout, so logs go to a file (or nowhere).
	initFileLog(cfg)

	app := ui.NewApp(cfg, rt.Sessions, rt.Local)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func initFileLog(cfg *config.Config) {
	path, err := cfg.LogPath()
	if err != nil {
		path = ""
	}
	logx.Init(cfg.Log.Enabled, path, cfg.Log.Level)
}

func initConsoleLog(cfg *config.Config) {
	if cfg.Log.Enabled {
		logx.InitConsole(cfg.Log.Level)
	} else {
		logx.Init(false, "", cfg.Log.Level)
	}
}
