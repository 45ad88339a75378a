// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// display.go - Display backend selection and off-screen rendering.
package cli

import (
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/conwrite/internal/config"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/prompt"
	"github.com/jeranaias/conwrite/internal/render"
	"github.com/jeranaias/conwrite/internal/terminal"
)

// liveDisplay is a display attached to the real terminal.
type liveDisplay interface {
	terminal.Display
	Close() error
}

// backendFor returns the --backend flag, or the configured backend.
func backendFor(cfg *config.Config, args Args) string {
	if args.Backend != "" {
		return args.Backend
	}
	return cfg.Backend
}

// openDisplay opens the named backend on stdin/stdout.
func openDisplay(backend string) (liveDisplay, error) {
	switch strings.ToLower(backend) {
	case "", "auto", "ansi":
		a, err := terminal.OpenANSI(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
		return a, nil
	case "tcell":
		s, err := terminal.OpenScreen()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, NewValidationErrorWithExample("--backend", backend, "must be auto, ansi or tcell", "--backend tcell")
	}
}

// closeDisplay blanks the display before releasing it so that results
// printed afterwards start on a clean screen.
func closeDisplay(d liveDisplay) error {
	render.ClearScreen(d)
	d.SetCursorVisible(true)
	return d.Close()
}

// =============================================================================
// OFF-SCREEN RENDERING
// =============================================================================

// renderHeight returns enough rows for text laid out with s: every
// character on its own line plus the padding, borders and start row.
func renderHeight(text string, s layout.Settings) int {
	h := utf8.RuneCountInString(text) + strings.Count(text, "\n") + 1
	h += s.Padding.Vertical() + s.AreaBorder.Vertical() + s.TextBorder.Vertical()
	if s.Location != nil {
		h += s.Location.Y
	}
	return max(h, terminal.DefaultHeight)
}

// newRenderBuffer creates an off-screen display for text.
func newRenderBuffer(args Args, text string, s layout.Settings) *terminal.Buffer {
	return terminal.NewBuffer(GetTerminalWidth(args), renderHeight(text, s))
}

// =============================================================================
// LOGGING
// =============================================================================

// SetupLogging sends the library loggers to stderr when --verbose is given.
func SetupLogging(args Args) {
	var l *log.Logger
	if args.Verbose {
		l = log.New(os.Stderr, "conwrite: ", log.LstdFlags)
	} else {
		l = log.New(io.Discard, "", 0)
	}
	terminal.SetLogger(l)
	render.SetLogger(l)
	prompt.SetLogger(l)
}

// loadConfig loads --config when given, else the global config.
func loadConfig(args Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		cfg, err := config.LoadFromPath(args.ConfigPath)
		if err != nil {
			return nil, err
		}
		config.SetGlobal(cfg)
		return cfg, nil
	}
	return config.Global(), nil
}
