// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - TTY detection and color output control for the CLI.
//
// Color handling:
//   - Colors are disabled for non-TTY output (piped, redirected)
//   - Respects NO_COLOR (https://no-color.org/)
//   - FORCE_COLOR overrides detection
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"

	"github.com/jeranaias/conwrite/internal/terminal"
)

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return terminal.IsTTY()
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return terminal.IsStdoutTTY()
}

// GetTerminalWidth returns the render width for piped output: the --width
// flag when given, else the terminal width.
func GetTerminalWidth(args Args) int {
	if args.Width > 0 {
		return args.Width
	}
	width, _ := terminal.StdoutSize()
	return width
}

// =============================================================================
// COLOR OUTPUT CONTROL
// =============================================================================

var (
	colorsEnabled     bool
	colorsEnabledOnce sync.Once
)

// ColorsEnabled returns true if colored output should be used.
func ColorsEnabled() bool {
	colorsEnabledOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorsEnabled = false
			return
		}
		if os.Getenv("FORCE_COLOR") != "" {
			colorsEnabled = true
			return
		}
		colorsEnabled = IsStdoutTTY()
	})
	return colorsEnabled
}

// ForceColorsEnabled overrides color detection. Tests only.
func ForceColorsEnabled(enabled bool) {
	colorsEnabledOnce = sync.Once{}
	colorsEnabledOnce.Do(func() {
		colorsEnabled = enabled
	})
}

// GetColorProfile returns Ascii when colors are off, else the profile
// termenv detects.
func GetColorProfile() termenv.Profile {
	if !ColorsEnabled() {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// =============================================================================
// INTERACTIVE INPUT HELPERS
// =============================================================================

// RequiresTTY returns an error unless stdin and stdout are both terminals.
// Use this at the start of commands that read keystrokes.
func RequiresTTY(operation string) error {
	if !IsTTY() || !IsStdoutTTY() {
		return &TTYRequiredError{Operation: operation}
	}
	return nil
}

// TTYRequiredError is returned when an operation requires a TTY but none is available.
type TTYRequiredError struct {
	Operation string
}

func (e *TTYRequiredError) Error() string {
	if e.Operation != "" {
		return "not a terminal; cannot " + e.Operation + " interactively"
	}
	return "not a terminal; interactive input not available"
}
