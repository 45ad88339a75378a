// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"io"
	"strings"
)

// Buffer is an in-memory Display. Writes outside the grid are dropped but
// still advance the write position. Keystrokes come from a queue filled with
// Feed; reading from an empty queue returns io.EOF.
type Buffer struct {
	width, height int
	cells         [][]rune
	x, y          int
	cursorVisible bool
	keys          []Key
	keyErr        error
}

// NewBuffer creates a blank width x height grid filled with spaces.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &Buffer{width: width, height: height, cursorVisible: true}
	b.cells = make([][]rune, height)
	for i := range b.cells {
		b.cells[i] = []rune(strings.Repeat(" ", width))
	}
	return b
}

func (b *Buffer) Position() (int, int) { return b.x, b.y }

func (b *Buffer) MoveTo(x, y int) { b.x, b.y = x, y }

func (b *Buffer) Size() (int, int) { return b.width, b.height }

func (b *Buffer) WriteString(s string) {
	for _, r := range s {
		if b.y >= 0 && b.y < b.height && b.x >= 0 && b.x < b.width {
			b.cells[b.y][b.x] = r
		}
		b.x++
	}
}

func (b *Buffer) ReadKey() (Key, error) {
	if len(b.keys) == 0 {
		if b.keyErr != nil {
			err := b.keyErr
			b.keyErr = nil
			return Key{}, err
		}
		return Key{}, io.EOF
	}
	k := b.keys[0]
	b.keys = b.keys[1:]
	return k, nil
}

func (b *Buffer) KeyAvailable() bool { return len(b.keys) > 0 }

func (b *Buffer) SetCursorVisible(visible bool) { b.cursorVisible = visible }

func (b *Buffer) CursorVisible() bool { return b.cursorVisible }

// Feed queues keystrokes for ReadKey.
func (b *Buffer) Feed(keys ...Key) { b.keys = append(b.keys, keys...) }

// FeedString queues a keystroke script (see KeysFromString).
func (b *Buffer) FeedString(s string) { b.Feed(KeysFromString(s)...) }

// FailWith makes the next ReadKey on an empty queue return err instead of
// io.EOF. Used to simulate Ctrl-C.
func (b *Buffer) FailWith(err error) { b.keyErr = err }

// Cell returns the character at (x, y), or 0 outside the grid.
func (b *Buffer) Cell(x, y int) rune {
	if y < 0 || y >= b.height || x < 0 || x >= b.width {
		return 0
	}
	return b.cells[y][x]
}

// Row returns row y with trailing spaces removed.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return strings.TrimRight(string(b.cells[y]), " ")
}

// Lines returns every row with trailing spaces removed, dropping trailing
// blank rows.
func (b *Buffer) Lines() []string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return rows
}

// String renders the non-blank part of the grid, one row per line.
func (b *Buffer) String() string {
	return strings.Join(b.Lines(), "\n")
}
