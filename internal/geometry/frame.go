// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"fmt"
	"strings"
)

// =============================================================================
// ALIGNMENT
// =============================================================================

// Alignment is the horizontal placement of text within the available width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCentre
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignCentre:
		return "centre"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// ParseAlignment accepts "left", "centre"/"center" and "right".
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "centre", "center":
		return AlignCentre, nil
	case "right":
		return AlignRight, nil
	}
	return AlignLeft, fmt.Errorf("unknown alignment %q (expected left, centre or right)", s)
}

// Offset returns how far a span of length n is shifted right to be aligned
// inside width columns. Spans wider than width are never shifted left.
func (a Alignment) Offset(width, n int) int {
	var off int
	switch a {
	case AlignCentre:
		off = (width - n) / 2
	case AlignRight:
		off = width - n
	}
	if off < 0 {
		return 0
	}
	return off
}

// =============================================================================
// FRAME CALCULATION
// =============================================================================

// FrameSpec is the input to Compute.
type FrameSpec struct {
	Origin         Location
	Widest         int
	Lines          int
	AvailableWidth int
	Alignment      Alignment
	Padding        Padding
	Area           Border
	Text           Border
}

// Frame holds the rectangles occupied by one block of formatted text.
type Frame struct {
	// Outer is the whole occupied area; the area border is drawn on its edge.
	Outer Rect
	// Text hugs the widest line and the line count; the text border is drawn
	// outward around it.
	Text Rect
	// Content is the column where the available width starts and the row of
	// the first line. Individual lines are aligned from here.
	Content Location
}

// Compute places a block of text. Offsets from the origin accumulate
// additively: padding, then area border thickness, then text border
// thickness. Left-aligned blocks are only as wide as their widest line;
// centred and right-aligned blocks reserve the full available width.
func Compute(spec FrameSpec) Frame {
	p, area, text := spec.Padding, spec.Area, spec.Text

	bodyWidth := spec.AvailableWidth
	if spec.Alignment == AlignLeft {
		bodyWidth = spec.Widest
	}

	width := bodyWidth + p.Horizontal() + area.Horizontal() + text.Horizontal()
	height := spec.Lines + p.Vertical() + area.Vertical() + text.Vertical()

	content := spec.Origin.Add(
		p.Left+area.LeftThickness()+text.LeftThickness(),
		p.Top+area.TopThickness()+text.TopThickness(),
	)

	textOrigin := content.Add(spec.Alignment.Offset(spec.AvailableWidth, spec.Widest), 0)

	return Frame{
		Outer:   NewRect(spec.Origin, width, height),
		Text:    NewRect(textOrigin, spec.Widest, spec.Lines),
		Content: content,
	}
}

// LineStart returns the column at which a line of length n is written.
func (f Frame) LineStart(align Alignment, availableWidth, n int) int {
	return f.Content.X + align.Offset(availableWidth, n)
}
