// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"errors"
	"fmt"
	"io"
	"log"
)

// ErrInterrupted is returned by ReadKey when the user presses Ctrl-C.
var ErrInterrupted = errors.New("terminal: interrupted")

var logger = log.New(io.Discard, "", 0)

// SetLogger sets the logger used for display diagnostics. nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// =============================================================================
// DISPLAY
// =============================================================================

// Display is a character grid with a write position and a keystroke source.
// Implementations are not safe for concurrent use.
type Display interface {
	// Position returns the current write position (column, row).
	Position() (x, y int)

	// MoveTo sets the write position.
	MoveTo(x, y int)

	// Size returns the viewport width and height in cells.
	Size() (width, height int)

	// WriteString writes s at the write position, advancing it one column
	// per character.
	WriteString(s string)

	// ReadKey blocks until the next keystroke is available.
	ReadKey() (Key, error)

	// KeyAvailable reports whether ReadKey would return without blocking.
	KeyAvailable() bool

	// SetCursorVisible shows or hides the caret.
	SetCursorVisible(visible bool)

	// CursorVisible reports whether the caret is shown.
	CursorVisible() bool
}

// DrainKeys discards every keystroke that is already buffered.
func DrainKeys(d Display) {
	for d.KeyAvailable() {
		if _, err := d.ReadKey(); err != nil {
			return
		}
	}
}

// =============================================================================
// KEYS
// =============================================================================

// KeyKind classifies a keystroke.
type KeyKind int

const (
	// KeyOther is any key the editors do not act on (arrows, function keys,
	// unbound control characters).
	KeyOther KeyKind = iota
	KeyRune
	KeyEnter
	KeyBackspace
)

// Key is one decoded keystroke. Rune is only meaningful for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Rune returns a printable-key Key.
func Rune(r rune) Key { return Key{Kind: KeyRune, Rune: r} }

// Enter returns the commit key.
func Enter() Key { return Key{Kind: KeyEnter} }

// Backspace returns the erase key.
func Backspace() Key { return Key{Kind: KeyBackspace} }

func (k Key) String() string {
	switch k.Kind {
	case KeyRune:
		return fmt.Sprintf("%q", k.Rune)
	case KeyEnter:
		return "<enter>"
	case KeyBackspace:
		return "<backspace>"
	default:
		return "<other>"
	}
}

// KeysFromString turns a script into keystrokes: '\r' and '\n' become Enter,
// '\b' becomes Backspace and every other rune is a printable key.
func KeysFromString(s string) []Key {
	keys := make([]Key, 0, len(s))
	for _, r := range s {
		switch r {
		case '\r', '\n':
			keys = append(keys, Enter())
		case '\b':
			keys = append(keys, Backspace())
		default:
			keys = append(keys, Rune(r))
		}
	}
	return keys
}
