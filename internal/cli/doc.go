// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and execution for conwrite.
//
// # Key Types
//
//   - Command: Enumeration of all available CLI commands
//   - Args: Parsed command-line arguments with global and command-specific flags
//   - ArgParser: Per-command flag parsing against a FlagSpec
//   - JSONResponse: Structured output for --json
//
// # Usage
//
// Parse and dispatch:
//
//	cmd, args := cli.Parse()
//	switch cmd {
//	case cli.CmdWrite:
//	    cli.HandleWrite(args)
//	case cli.CmdInteger:
//	    cli.HandleInteger(args)
//	// ... other commands
//	}
//
// # Commands Overview
//
// Layout Commands:
//   - write: Lay out text from arguments or stdin
//   - box: Lay out text inside a border
//   - menu: Numbered menu, optionally reading a selection
//   - preview: Interactive layout REPL
//
// Prompt Commands:
//   - input: Read a bounded line of text
//   - integer: Read an integer within limits
//   - choose: Read one of a set of values
//
// Layout commands render off screen and print plain lines unless --live is
// given, so they work in pipes. Prompt commands need a terminal and print
// the captured value once the display is closed.
package cli
