// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/jeranaias/conwrite/internal/geometry"
)

// Result is the output of Layout.
type Result struct {
	// Lines in display order, top to bottom.
	Lines []string
	// Widest is the length of the longest line.
	Widest int
	// AvailableWidth is the resolved content width.
	AvailableWidth int
	// Padding is the padding in effect, after any rebalancing for a
	// viewport too narrow to hold the requested padding.
	Padding geometry.Padding
}

// Height returns the number of lines.
func (r Result) Height() int { return len(r.Lines) }

// =============================================================================
// WIDTH RESOLUTION
// =============================================================================

// AvailableWidth resolves the content width for a viewport. It returns the
// width and the padding to use with it; padding only changes when the
// viewport cannot hold it, in which case the width becomes 1 and the sides
// split what remains. Like a minimum width wider than the viewport, a
// maximum width is used as given and may overflow it.
func AvailableWidth(s Settings, viewportWidth int) (int, geometry.Padding) {
	pad := s.Padding
	horizontal := pad.Horizontal()
	allowance := viewportWidth - horizontal

	var width int
	switch {
	case s.MinimumWidth > 0 && s.MinimumWidth > horizontal && s.MinimumWidth > viewportWidth:
		width = s.MinimumWidth
	case s.MaximumWidth > 0 && s.MaximumWidth > horizontal:
		width = s.MaximumWidth - horizontal
	case s.MaximumWidth > 0 && allowance > s.MaximumWidth:
		width = 1
	default:
		width = allowance
	}

	if width < 1 {
		width = 1
		side := (viewportWidth - 1) / 2
		if side < 0 {
			side = 0
		}
		pad.Left, pad.Right = side, side
	}
	return width, pad
}

// =============================================================================
// LAYOUT
// =============================================================================

// Layout wraps text into lines for a viewport of the given width. Settings
// are normalized first; the caller's value is never modified.
func Layout(text string, s Settings, viewportWidth int) Result {
	s = s.Normalize()
	width, pad := AvailableWidth(s, viewportWidth)

	l := &lineBuilder{settings: s, width: width, threshold: s.JustifyThreshold.Resolve(width)}
	for _, paragraph := range strings.Split(text, "\n") {
		if l.full() {
			break
		}
		l.paragraph(paragraph)
	}

	res := Result{Lines: l.lines, AvailableWidth: width, Padding: pad}
	if len(res.Lines) == 0 {
		res.Lines = []string{""}
	}
	for _, line := range res.Lines {
		if n := utf8.RuneCountInString(line); n > res.Widest {
			res.Widest = n
		}
	}
	return res
}

type lineBuilder struct {
	settings  Settings
	width     int
	threshold int
	lines     []string
}

func (l *lineBuilder) full() bool {
	return l.settings.MaximumHeight > 0 && len(l.lines) >= l.settings.MaximumHeight
}

func (l *lineBuilder) emit(line string) {
	if !l.full() {
		l.lines = append(l.lines, line)
	}
}

// paragraph lays out one newline-free run of text.
func (l *lineBuilder) paragraph(text string) {
	tokens := strings.Split(strings.TrimSuffix(text, "\r"), " ")
	w := l.width

	for i := 0; i < len(tokens) && !l.full(); {
		tok := []rune(tokens[i])

		if len(tok) > w {
			for start := 0; start < len(tok); start += w {
				l.emit(string(tok[start:min(start+w, len(tok))]))
			}
			i++
			continue
		}

		line := tok
		i++
		for i < len(tokens) {
			next := []rune(tokens[i])
			if len(line)+1+len(next) <= w {
				line = append(append(line, ' '), next...)
				i++
				continue
			}
			if !l.settings.Wrap {
				if room := w - len(line) - 1; room > 0 {
					line = append(append(line, ' '), next[:room]...)
					tokens[i] = string(next[room:])
				}
			}
			break
		}

		l.emit(l.finish(string(line)))
	}
}

// finish strips a trailing separator, then justifies and pads the line.
func (l *lineBuilder) finish(line string) string {
	line = strings.TrimSuffix(line, " ")
	n := utf8.RuneCountInString(line)
	s := l.settings

	if s.Justified && n != l.width {
		spaces := 0
		switch {
		case n > l.threshold:
			spaces = l.width - n
		case n < s.MinimumWidth:
			spaces = s.MinimumWidth - n
		}
		line = Justify(line, spaces)
		n = utf8.RuneCountInString(line)
	}

	if n < s.MinimumWidth {
		line += strings.Repeat(" ", s.MinimumWidth-n)
	}
	return line
}

// =============================================================================
// JUSTIFICATION
// =============================================================================

// Justify inserts spaces into the gaps of line, front-loaded: each gap in
// turn receives ceil(remaining/gapsLeft) spaces. Lines without gaps and
// non-positive counts are returned unchanged.
func Justify(line string, spaces int) string {
	words := strings.Split(line, " ")
	gaps := len(words) - 1
	if spaces <= 0 || gaps == 0 {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + spaces)
	b.WriteString(words[0])
	for _, word := range words[1:] {
		add := (spaces + gaps - 1) / gaps
		b.WriteString(strings.Repeat(" ", add+1))
		b.WriteString(word)
		spaces -= add
		gaps--
	}
	return b.String()
}
