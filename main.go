// conwrite - Terminal text layout and bounded line prompts for scripts.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"github.com/jeranaias/conwrite/internal/cli"
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
	// Parse CLI arguments
	cmd, args := cli.Parse()
	cli.SetupLogging(args)

	// Route to appropriate handler
	switch cmd {
	case cli.CmdWrite:
		cli.HandleWrite(args)
	case cli.CmdBox:
		cli.HandleBox(args)
	case cli.CmdMenu:
		cli.HandleMenu(args)
	case cli.CmdInput:
		cli.HandleInput(args)
	case cli.CmdInteger:
		cli.HandleInteger(args)
	case cli.CmdChoose:
		cli.HandleChoose(args)
	case cli.CmdPreview:
		cli.HandlePreview(args)
	case cli.CmdConfig:
		cli.HandleConfig(args)
	case cli.CmdVersion:
		cli.HandleVersionWithJSON(args)
	default:
		cli.HandleHelp()
	}
}
