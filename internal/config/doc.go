// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for conwrite.
//
// Supports TOML, JSON and YAML configuration formats, with sensible defaults,
// environment variable overrides, validation and live reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - WriteConfig: Default layout settings for every write
//   - ProfileConfig: Named overrides applied on top of WriteConfig
//   - PromptConfig: Defaults for interactive prompts
//   - Watcher: Reloads a config file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CONWRITE_*)
//   - ~/.conwrite/config.toml
//   - ~/.conwrite/config.json
//   - ~/.conwrite/config.yaml
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Resolve layout settings for a profile:
//
//	settings, err := cfg.Settings("banner")
package config
