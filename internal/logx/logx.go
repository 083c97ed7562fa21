// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logx provides structured logging for the knox client.
//
// The TUI owns the terminal, so logs are written to a file (by default
// ~/.knox/knox.log) rather than stdout. The log captures API request
// outcomes and unexpected errors; the expected 401 on the session probe
// is deliberately not logged as an error.
package logx

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// GLOBAL LOGGER SETUP
// =============================================================================

// Init initializes the global logger writing to the given file path.
// When enabled is false, or the file cannot be opened, logging is a no-op;
// the client must never fail to start because of its debug log.
func Init(enabled bool, path string, level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if !enabled {
		log.Logger = zerolog.New(io.Discard)
		return
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log.Logger = zerolog.New(io.Discard)
		return
	}

	log.Logger = zerolog.New(file).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// InitConsole routes logs to stderr for plain CLI commands, where the
// terminal is line-oriented and human-readable output is preferable.
func InitConsole(level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
func Logger() *zerolog.Logger {
	return &log.Logger
}

// parseLevel maps a config level string to a zerolog level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// Info records a log message at the Info level.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(fields).Msg(msg)
}

// Warn records a log message at the Warn level.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(fields).Msg(msg)
}

// Error records an error with a message at the Error level.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(fields).Msg(msg)
}

// Debug records a log message at the Debug level.
func Debug(msg string, fields ...any) {
	Logger().Debug().Fields(fields).Msg(msg)
}
