// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for knox.
//
// The single required setting is the backend base URL; everything else has
// a working default. Files live under ~/.knox and environment variables
// prefixed KNOX_ override file values.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // fall back to config.Default()
//	}
//	client := api.NewClient(cfg.Server.BaseURL)
package config
