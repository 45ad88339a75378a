// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package input

import (
	"math"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/terminal"
)

// Unbounded is the MaxLength or MaxHeight that imposes no practical limit.
const Unbounded = math.MaxInt

// =============================================================================
// EDITOR
// =============================================================================

// Editor captures one line of input at a time from a display. The buffer
// only grows at the end and shrinks from the end.
type Editor struct {
	display   terminal.Display
	maxLength int
	maxHeight int

	buf    []rune
	origin geometry.Location
}

// NewEditor creates an editor that accepts up to maxLength characters per
// row over at most maxHeight rows. A maxLength below 1 accepts nothing.
func NewEditor(d terminal.Display, maxLength, maxHeight int) *Editor {
	return &Editor{display: d, maxLength: maxLength, maxHeight: maxHeight}
}

// Capacity returns the maximum number of characters the buffer can hold.
func (e *Editor) Capacity() int {
	if e.maxLength < 1 {
		return 0
	}
	return geometry.SaturatingMul(e.maxLength, e.maxHeight)
}

// MaxLength returns the row length.
func (e *Editor) MaxLength() int { return e.maxLength }

// Len returns the number of characters in the buffer.
func (e *Editor) Len() int { return len(e.buf) }

// String returns the buffer contents.
func (e *Editor) String() string { return string(e.buf) }

// Origin returns where the current capture started.
func (e *Editor) Origin() geometry.Location { return e.origin }

// Begin empties the buffer and anchors the capture at the current write
// position.
func (e *Editor) Begin() {
	x, y := e.display.Position()
	e.origin = geometry.Location{X: x, Y: y}
	e.buf = e.buf[:0]
}

// Type appends r and echoes it, wrapping to the next row first when the
// current row is full. It returns false, changing nothing, when the buffer
// is at capacity.
func (e *Editor) Type(r rune) bool {
	if len(e.buf) >= e.Capacity() {
		return false
	}
	if n := len(e.buf); n != 0 && n%e.maxLength == 0 {
		_, y := e.display.Position()
		e.display.MoveTo(e.origin.X, y+1)
	}
	e.buf = append(e.buf, r)
	e.display.WriteString(string(r))
	return true
}

// Erase removes the last character and blanks its cell. When that leaves
// the write position at the start of a wrapped row it moves back to the end
// of the row above. It returns false on an empty buffer.
func (e *Editor) Erase() bool {
	if len(e.buf) == 0 {
		return false
	}
	d := e.display
	x, y := d.Position()
	d.MoveTo(x-1, y)
	d.WriteString(" ")
	d.MoveTo(x-1, y)
	e.buf = e.buf[:len(e.buf)-1]

	if x-1 == e.origin.X && y != e.origin.Y {
		d.MoveTo(geometry.SaturatingAdd(e.origin.X, e.maxLength), y-1)
	}
	return true
}

// commit moves to the start of the row below the input.
func (e *Editor) commit() string {
	_, y := e.display.Position()
	e.display.MoveTo(e.origin.X, y+1)
	return string(e.buf)
}

// Capture reads keys until Enter and returns what was typed. Keys that do
// not occupy exactly one cell are ignored. The error is non-nil only when
// the display stops delivering keys (io.EOF, terminal.ErrInterrupted); the
// partial buffer is returned with it.
func (e *Editor) Capture() (string, error) {
	return e.capture(nil, nil)
}

// CaptureAllowed is Capture restricted to set: a key is accepted only if the
// buffer plus that key is the start of some member, and Enter is ignored
// until the buffer is a member. It returns the value folded as the set
// compares it.
func (e *Editor) CaptureAllowed(set *AllowedSet) (string, error) {
	s, err := e.capture(
		func(candidate []rune) bool { return set.HasPrefix(string(candidate)) },
		func(buf []rune) bool { return set.Contains(string(buf)) },
	)
	if err != nil {
		return s, err
	}
	return set.Fold(s), nil
}

func (e *Editor) capture(accept, commit func([]rune) bool) (string, error) {
	e.Begin()
	for {
		key, err := e.display.ReadKey()
		if err != nil {
			return string(e.buf), err
		}

		switch key.Kind {
		case terminal.KeyRune:
			if !Printable(key.Rune) {
				continue
			}
			if accept != nil && !accept(append(e.buf[:len(e.buf):len(e.buf)], key.Rune)) {
				continue
			}
			e.Type(key.Rune)
		case terminal.KeyBackspace:
			e.Erase()
		case terminal.KeyEnter:
			if commit != nil && !commit(e.buf) {
				continue
			}
			return e.commit(), nil
		}
	}
}

// Printable reports whether r is echoed as exactly one cell.
func Printable(r rune) bool {
	return runewidth.RuneWidth(r) == 1
}
