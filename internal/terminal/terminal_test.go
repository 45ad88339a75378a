// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// BUFFER TESTS
// =============================================================================

func TestBuffer_WriteAdvancesPosition(t *testing.T) {
	b := NewBuffer(10, 3)
	b.MoveTo(2, 1)
	b.WriteString("héllo")

	x, y := b.Position()
	assert.Equal(t, 7, x)
	assert.Equal(t, 1, y)
	assert.Equal(t, "  héllo", b.Row(1))
	assert.Equal(t, 'é', b.Cell(3, 1))
}

func TestBuffer_ClipsOutsideGrid(t *testing.T) {
	b := NewBuffer(4, 2)
	b.MoveTo(2, 0)
	b.WriteString("abcdef")
	b.MoveTo(-1, 5)
	b.WriteString("zz")

	assert.Equal(t, []string{"  ab"}, b.Lines())
	assert.Equal(t, rune(0), b.Cell(9, 9))
	x, _ := b.Position()
	assert.Equal(t, 1, x)
}

func TestBuffer_KeyQueue(t *testing.T) {
	b := NewBuffer(1, 1)
	b.FeedString("a\b\r")
	require.True(t, b.KeyAvailable())

	var got []Key
	for b.KeyAvailable() {
		k, err := b.ReadKey()
		require.NoError(t, err)
		got = append(got, k)
	}
	assert.Equal(t, []Key{Rune('a'), Backspace(), Enter()}, got)

	_, err := b.ReadKey()
	assert.ErrorIs(t, err, io.EOF)

	b.FailWith(ErrInterrupted)
	_, err = b.ReadKey()
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestDrainKeys(t *testing.T) {
	b := NewBuffer(1, 1)
	b.FeedString("xyz")
	DrainKeys(b)
	assert.False(t, b.KeyAvailable())
}

// =============================================================================
// ANSI DECODING TESTS
// =============================================================================

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"printable", "aZ", []Key{Rune('a'), Rune('Z')}},
		{"utf8", "ß", []Key{Rune('ß')}},
		{"carriage return", "\r", []Key{Enter()}},
		{"line feed", "\n", []Key{Enter()}},
		{"delete", "\x7f", []Key{Backspace()}},
		{"backspace", "\b", []Key{Backspace()}},
		{"arrow key", "\x1b[Ax", []Key{{Kind: KeyOther}, Rune('x')}},
		{"csi with params", "\x1b[1;5Cq", []Key{{Kind: KeyOther}, Rune('q')}},
		{"ss3", "\x1bOPq", []Key{{Kind: KeyOther}, Rune('q')}},
		{"bare escape", "\x1b", []Key{{Kind: KeyOther}}},
		{"tab", "\t", []Key{{Kind: KeyOther}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := bufio.NewReader(strings.NewReader(tt.input))
			var got []Key
			for {
				k, err := decodeKey(r)
				if errors.Is(err, io.EOF) {
					break
				}
				require.NoError(t, err)
				got = append(got, k)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeKey_ControlErrors(t *testing.T) {
	_, err := decodeKey(bufio.NewReader(strings.NewReader("\x03")))
	assert.ErrorIs(t, err, ErrInterrupted)

	_, err = decodeKey(bufio.NewReader(strings.NewReader("\x04")))
	assert.ErrorIs(t, err, io.EOF)
}

// =============================================================================
// TCELL TESTS
// =============================================================================

// MockScreen records what is drawn on a tcell.Screen.
type MockScreen struct {
	tcell.Screen
	cells    map[[2]int]rune
	cursorX  int
	cursorY  int
	cursorOn bool
	shows    int
	width    int
	height   int
}

func newMockScreen() *MockScreen {
	return &MockScreen{cells: map[[2]int]rune{}, width: 30, height: 10}
}

func (m *MockScreen) SetContent(x, y int, mainc rune, combc []rune, style tcell.Style) {
	m.cells[[2]int{x, y}] = mainc
}

func (m *MockScreen) ShowCursor(x, y int) {
	m.cursorX, m.cursorY, m.cursorOn = x, y, true
}

func (m *MockScreen) HideCursor() { m.cursorOn = false }

func (m *MockScreen) Show() { m.shows++ }

func (m *MockScreen) Size() (int, int) { return m.width, m.height }

func (m *MockScreen) HasPendingEvent() bool { return false }

func TestScreen_WriteString(t *testing.T) {
	mock := newMockScreen()
	s := NewScreen(mock)

	s.MoveTo(3, 2)
	s.WriteString("ok")

	assert.Equal(t, 'o', mock.cells[[2]int{3, 2}])
	assert.Equal(t, 'k', mock.cells[[2]int{4, 2}])
	x, y := s.Position()
	assert.Equal(t, 5, x)
	assert.Equal(t, 2, y)
	assert.True(t, mock.cursorOn)
	assert.Equal(t, 5, mock.cursorX)
	assert.Positive(t, mock.shows)

	w, h := s.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 10, h)
	assert.False(t, s.KeyAvailable())
}

func TestScreen_CursorVisibility(t *testing.T) {
	mock := newMockScreen()
	s := NewScreen(mock)

	s.SetCursorVisible(false)
	assert.False(t, s.CursorVisible())
	assert.False(t, mock.cursorOn)

	s.MoveTo(1, 1)
	assert.False(t, mock.cursorOn, "moving must not reveal a hidden cursor")

	s.SetCursorVisible(true)
	assert.True(t, mock.cursorOn)
	assert.Equal(t, 1, mock.cursorY)
}

func TestMapTcellKey(t *testing.T) {
	k, err := mapTcellKey(tcell.KeyRune, 'q')
	require.NoError(t, err)
	assert.Equal(t, Rune('q'), k)

	k, err = mapTcellKey(tcell.KeyEnter, 0)
	require.NoError(t, err)
	assert.Equal(t, Enter(), k)

	for _, bk := range []tcell.Key{tcell.KeyBackspace, tcell.KeyBackspace2} {
		k, err = mapTcellKey(bk, 0)
		require.NoError(t, err)
		assert.Equal(t, Backspace(), k)
	}

	k, err = mapTcellKey(tcell.KeyUp, 0)
	require.NoError(t, err)
	assert.Equal(t, KeyOther, k.Kind)

	_, err = mapTcellKey(tcell.KeyCtrlC, 0)
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestKeysFromString(t *testing.T) {
	assert.Equal(t, []Key{Rune('h'), Rune('i'), Enter(), Backspace()}, KeysFromString("hi\n\b"))
	assert.Equal(t, "<enter>", Enter().String())
	assert.Equal(t, "'a'", Rune('a').String())
}
