// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"fmt"
	"math"
	"strings"
)

// =============================================================================
// LOCATION
// =============================================================================

// Location is a column (X) and row (Y) on the display, both 0-indexed.
type Location struct {
	X int `toml:"x" json:"x" yaml:"x"`
	Y int `toml:"y" json:"y" yaml:"y"`
}

// Add returns l offset by dx columns and dy rows.
func (l Location) Add(dx, dy int) Location {
	return Location{X: l.X + dx, Y: l.Y + dy}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.X, l.Y)
}

// =============================================================================
// RECT
// =============================================================================

// Rect is an axis-aligned rectangle. Max is exclusive: a Rect from (0,0) to
// (5,3) covers five columns and three rows.
type Rect struct {
	Min Location
	Max Location
}

// NewRect builds a Rect from an origin and a size.
func NewRect(origin Location, width, height int) Rect {
	return Rect{Min: origin, Max: origin.Add(width, height)}
}

// Width returns the number of columns covered.
func (r Rect) Width() int { return r.Max.X - r.Min.X }

// Height returns the number of rows covered.
func (r Rect) Height() int { return r.Max.Y - r.Min.Y }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether the cell at l lies inside r.
func (r Rect) Contains(l Location) bool {
	return l.X >= r.Min.X && l.X < r.Max.X && l.Y >= r.Min.Y && l.Y < r.Max.Y
}

// Expand grows r outward by the padding and then by the thickness of every
// enabled border edge.
func (r Rect) Expand(p Padding, b Border) Rect {
	return Rect{
		Min: r.Min.Add(-(p.Left + b.LeftThickness()), -(p.Top + b.TopThickness())),
		Max: r.Max.Add(p.Right+b.RightThickness(), p.Bottom+b.BottomThickness()),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("%s-%s", r.Min, r.Max)
}

// =============================================================================
// PADDING
// =============================================================================

// DefaultSidePadding is the left/right padding used by default write settings
// and restored when a side padding is negative.
const DefaultSidePadding = 4

// Padding is the spacing between a border and the text it surrounds.
type Padding struct {
	Top    int `toml:"top" json:"top" yaml:"top"`
	Left   int `toml:"left" json:"left" yaml:"left"`
	Right  int `toml:"right" json:"right" yaml:"right"`
	Bottom int `toml:"bottom" json:"bottom" yaml:"bottom"`
}

// Uniform returns a Padding with the same value on every side.
func Uniform(all int) Padding {
	return Padding{Top: all, Left: all, Right: all, Bottom: all}
}

// Symmetric returns a Padding with one value for top/bottom and one for the sides.
func Symmetric(topAndBottom, sides int) Padding {
	return Padding{Top: topAndBottom, Left: sides, Right: sides, Bottom: topAndBottom}
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() int { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() int { return p.Top + p.Bottom }

// Fixed repairs negative values: top and bottom become zero, the sides go
// back to DefaultSidePadding.
func (p Padding) Fixed() Padding {
	if p.Top < 0 {
		p.Top = 0
	}
	if p.Left < 0 {
		p.Left = DefaultSidePadding
	}
	if p.Right < 0 {
		p.Right = DefaultSidePadding
	}
	if p.Bottom < 0 {
		p.Bottom = 0
	}
	return p
}

// =============================================================================
// HELPERS
// =============================================================================

// SaturatingAdd adds two non-negative ints, returning math.MaxInt on overflow.
// Input limits are routinely "unbounded" (math.MaxInt), so offsets built from
// them must not wrap around.
func SaturatingAdd(a, b int) int {
	if b > 0 && a > math.MaxInt-b {
		return math.MaxInt
	}
	return a + b
}

// SaturatingMul multiplies two non-negative ints, returning math.MaxInt on overflow.
func SaturatingMul(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// Repeat returns s repeated n times, or "" for n <= 0.
func Repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}
