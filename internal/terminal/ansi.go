// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// ANSI DISPLAY
// =============================================================================

// ANSI drives a real terminal in raw mode with escape sequences. The write
// position is tracked locally; the terminal is never queried for it.
type ANSI struct {
	in     *os.File
	outFd  int
	out    *termenv.Output
	reader *bufio.Reader
	state  *term.State

	x, y          int
	cursorVisible bool
	err           error
}

// OpenANSI puts in into raw mode, clears out and homes the cursor. Close
// must be called to restore the terminal.
func OpenANSI(in, out *os.File) (*ANSI, error) {
	inFd := int(in.Fd())
	if !term.IsTerminal(inFd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	state, err := term.MakeRaw(inFd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}

	a := &ANSI{
		in:            in,
		outFd:         int(out.Fd()),
		out:           termenv.NewOutput(out),
		reader:        bufio.NewReader(in),
		state:         state,
		cursorVisible: true,
	}
	a.out.ClearScreen()
	a.out.MoveCursor(1, 1)
	return a, nil
}

// Close shows the cursor and restores the terminal mode saved by OpenANSI.
func (a *ANSI) Close() error {
	a.out.ShowCursor()
	if a.state == nil {
		return nil
	}
	err := term.Restore(int(a.in.Fd()), a.state)
	a.state = nil
	return err
}

// Err returns the first write error, if any.
func (a *ANSI) Err() error { return a.err }

func (a *ANSI) Position() (int, int) { return a.x, a.y }

func (a *ANSI) MoveTo(x, y int) {
	a.x, a.y = x, y
	// Escape sequences are 1-based and cannot address negative cells.
	a.out.MoveCursor(max(y, 0)+1, max(x, 0)+1)
}

func (a *ANSI) Size() (int, int) { return SizeOf(a.outFd) }

func (a *ANSI) WriteString(s string) {
	if _, err := a.out.WriteString(s); err != nil && a.err == nil {
		a.err = err
		logger.Printf("WARNING: terminal write failed: %v", err)
	}
	a.x += utf8.RuneCountInString(s)
}

func (a *ANSI) ReadKey() (Key, error) { return decodeKey(a.reader) }

func (a *ANSI) KeyAvailable() bool {
	if a.reader.Buffered() > 0 {
		return true
	}
	return pollInput(int(a.in.Fd()))
}

func (a *ANSI) SetCursorVisible(visible bool) {
	a.cursorVisible = visible
	if visible {
		a.out.ShowCursor()
	} else {
		a.out.HideCursor()
	}
}

func (a *ANSI) CursorVisible() bool { return a.cursorVisible }

// =============================================================================
// KEY DECODING
// =============================================================================

const (
	keyCtrlC = 0x03
	keyCtrlD = 0x04
	keyBS    = 0x08
	keyLF    = 0x0a
	keyCR    = 0x0d
	keyEsc   = 0x1b
	keyDEL   = 0x7f
)

// decodeKey reads one keystroke from raw terminal input. Escape sequences
// that are already buffered are consumed whole and reported as KeyOther.
func decodeKey(r *bufio.Reader) (Key, error) {
	ch, size, err := r.ReadRune()
	if err != nil {
		return Key{}, err
	}
	if ch == utf8.RuneError && size == 1 {
		return Key{Kind: KeyOther}, nil
	}

	switch ch {
	case keyCtrlC:
		return Key{}, ErrInterrupted
	case keyCtrlD:
		return Key{}, io.EOF
	case keyCR, keyLF:
		return Enter(), nil
	case keyBS, keyDEL:
		return Backspace(), nil
	case keyEsc:
		skipEscapeSequence(r)
		return Key{Kind: KeyOther}, nil
	}

	if ch < 0x20 {
		return Key{Kind: KeyOther}, nil
	}
	return Rune(ch), nil
}

// skipEscapeSequence discards a CSI ("ESC [") or SS3 ("ESC O") sequence
// following an escape byte, if one is buffered.
func skipEscapeSequence(r *bufio.Reader) {
	if r.Buffered() == 0 {
		return
	}
	next, err := r.Peek(1)
	if err != nil || (next[0] != '[' && next[0] != 'O') {
		return
	}
	intro, _ := r.ReadByte()

	for r.Buffered() > 0 {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		if intro == 'O' || (b >= 0x40 && b <= 0x7e) {
			return
		}
	}
}
