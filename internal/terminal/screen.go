// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
)

// =============================================================================
// TCELL DISPLAY
// =============================================================================

// Screen adapts a tcell.Screen to Display. Every write is flushed with Show
// so output appears as it is produced.
type Screen struct {
	screen        tcell.Screen
	style         tcell.Style
	x, y          int
	cursorVisible bool
}

// OpenScreen initialises a new tcell screen. Close must be called to restore
// the terminal.
func OpenScreen() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialise screen: %w", err)
	}
	s.Clear()
	return NewScreen(s), nil
}

// NewScreen wraps an already initialised tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	sc := &Screen{screen: s, style: tcell.StyleDefault, cursorVisible: true}
	sc.syncCursor()
	return sc
}

// Close finalises the underlying screen.
func (s *Screen) Close() error {
	s.screen.Fini()
	return nil
}

func (s *Screen) Position() (int, int) { return s.x, s.y }

func (s *Screen) MoveTo(x, y int) {
	s.x, s.y = x, y
	s.syncCursor()
	s.screen.Show()
}

func (s *Screen) Size() (int, int) { return s.screen.Size() }

func (s *Screen) WriteString(str string) {
	for _, r := range str {
		s.screen.SetContent(s.x, s.y, r, nil, s.style)
		s.x++
	}
	s.syncCursor()
	s.screen.Show()
}

func (s *Screen) ReadKey() (Key, error) {
	for {
		ev := s.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return Key{}, io.EOF
		case *tcell.EventKey:
			return mapTcellKey(ev.Key(), ev.Rune())
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
}

func (s *Screen) KeyAvailable() bool { return s.screen.HasPendingEvent() }

func (s *Screen) SetCursorVisible(visible bool) {
	s.cursorVisible = visible
	s.syncCursor()
	s.screen.Show()
}

func (s *Screen) CursorVisible() bool { return s.cursorVisible }

func (s *Screen) syncCursor() {
	if s.cursorVisible {
		s.screen.ShowCursor(s.x, s.y)
	} else {
		s.screen.HideCursor()
	}
}

// mapTcellKey reduces a tcell key event to a Key.
func mapTcellKey(k tcell.Key, r rune) (Key, error) {
	switch k {
	case tcell.KeyRune:
		return Rune(r), nil
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		return Enter(), nil
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return Backspace(), nil
	case tcell.KeyCtrlC:
		return Key{}, ErrInterrupted
	case tcell.KeyCtrlD:
		return Key{}, io.EOF
	}
	return Key{Kind: KeyOther}, nil
}
