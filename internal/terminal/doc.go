// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the character-grid display that conwrite draws on
// and reads keystrokes from.
//
// Every renderer and editor takes a Display explicitly; there is no ambient
// "current console". A Display tracks its own write position, which advances
// by one column per character written.
//
// # Implementations
//
//   - ANSI: a raw-mode terminal driven with escape sequences (x/term + termenv)
//   - Screen: a tcell screen
//   - Buffer: an in-memory grid with a scripted key queue, used for off-screen
//     rendering and tests
//
// # Keys
//
// ReadKey blocks until a key arrives and reduces it to one of four kinds:
// a printable rune, Enter, Backspace, or anything else. Ctrl-C is reported as
// ErrInterrupted and end of input as io.EOF.
package terminal
