// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/terminal"
)

// =============================================================================
// BORDERS
// =============================================================================

// DrawBox draws border on the edge of r. Each character of the top and
// bottom styles fills one full-width row; the left and right styles are
// written whole on every row between them. The write position is restored.
func DrawBox(d terminal.Display, r geometry.Rect, border geometry.Border) {
	drawBox(d, r, border, true)
}

// DrawBorder draws border outward around content, leaving padding between
// them. When content has no width the side edges are left out.
func DrawBorder(d terminal.Display, content geometry.Rect, padding geometry.Padding, border geometry.Border) {
	drawBox(d, content.Expand(padding, border), border, content.Width() > 0)
}

func drawBox(d terminal.Display, r geometry.Rect, border geometry.Border, sides bool) {
	if r.Empty() || !border.AnyEnabled() {
		return
	}
	border = border.Normalized()

	x, y := d.Position()
	defer d.MoveTo(x, y)

	width := r.Width()
	row := r.Min.Y

	if border.TopEnabled {
		for _, ch := range border.TopStyle {
			d.MoveTo(r.Min.X, row)
			d.WriteString(strings.Repeat(string(ch), width))
			row++
		}
	}

	bottom := r.Max.Y - border.BottomThickness()
	if sides && r.Min.X != r.Max.X {
		for ; row < bottom; row++ {
			if border.LeftEnabled {
				d.MoveTo(r.Min.X, row)
				d.WriteString(border.LeftStyle)
			}
			if border.RightEnabled {
				d.MoveTo(r.Max.X-border.RightThickness(), row)
				d.WriteString(border.RightStyle)
			}
		}
	}

	if border.BottomEnabled {
		row = bottom
		for _, ch := range border.BottomStyle {
			d.MoveTo(r.Min.X, row)
			d.WriteString(strings.Repeat(string(ch), width))
			row++
		}
	}
}
