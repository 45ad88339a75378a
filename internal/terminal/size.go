// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"os"
	"strconv"

	"golang.org/x/term"
)

const (
	// DefaultWidth is the fallback width when detection fails.
	DefaultWidth = 80

	// DefaultHeight is the fallback height when detection fails.
	DefaultHeight = 24
)

// IsTTY returns true if stdin is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY returns true if stdout is a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// SizeOf returns the size of the terminal on fd. When that fails it falls
// back to $COLUMNS and $LINES, then to 80x24.
func SizeOf(fd int) (width, height int) {
	w, h, err := term.GetSize(fd)
	if err == nil && w > 0 && h > 0 {
		return w, h
	}
	return envInt("COLUMNS", DefaultWidth), envInt("LINES", DefaultHeight)
}

// StdoutSize returns the size of the terminal attached to stdout.
func StdoutSize() (width, height int) {
	return SizeOf(int(os.Stdout.Fd()))
}

func envInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
