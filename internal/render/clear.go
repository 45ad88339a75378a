// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/terminal"
)

// ClearLine blanks the whole of row y.
func ClearLine(d terminal.Display, y int) {
	width, _ := d.Size()
	ClearSpan(d, y, 0, width)
}

// ClearSpan blanks count cells of row y starting at column x.
func ClearSpan(d terminal.Display, y, x, count int) {
	if count <= 0 {
		return
	}
	px, py := d.Position()
	visible := d.CursorVisible()
	d.SetCursorVisible(false)

	d.MoveTo(x, y)
	d.WriteString(strings.Repeat(" ", count))

	d.MoveTo(px, py)
	d.SetCursorVisible(visible)
}

// ClearArea blanks rows start.Y through end.Y (inclusive) from column start.X
// up to, but not including, end.X. end.X is clamped to the viewport width.
func ClearArea(d terminal.Display, start, end geometry.Location) {
	width, _ := d.Size()
	if end.X > width {
		end.X = width
	}
	count := end.X - start.X
	if end.Y < start.Y || count <= 0 {
		return
	}

	px, py := d.Position()
	visible := d.CursorVisible()
	d.SetCursorVisible(false)

	blank := strings.Repeat(" ", count)
	for y := start.Y; y <= end.Y; y++ {
		d.MoveTo(start.X, y)
		d.WriteString(blank)
	}

	d.MoveTo(px, py)
	d.SetCursorVisible(visible)
}

// ClearScreen blanks the whole viewport and moves to the top-left cell.
func ClearScreen(d terminal.Display) {
	width, height := d.Size()
	ClearArea(d, geometry.Location{}, geometry.Location{X: width, Y: height - 1})
	d.MoveTo(0, 0)
}
