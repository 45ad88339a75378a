// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package geometry provides the value types and pure calculations used to
// place formatted text on a character grid.
//
// # Key Types
//
//   - Location: a (column, row) coordinate
//   - Rect: an origin plus an exclusive far corner
//   - Padding: top/left/right/bottom spacing
//   - Border: per-edge enable flags and style strings
//   - Frame: the rectangles produced by Compute for one block of text
//
// # Thickness
//
// A border edge's style string is drawn once per character, so a style of
// length k makes that edge k rows (top/bottom) or k columns (left/right)
// thick. A disabled edge has zero thickness everywhere.
//
// # Usage
//
//	frame := geometry.Compute(geometry.FrameSpec{
//	    Origin:         geometry.Location{X: 2, Y: 1},
//	    Widest:         res.Widest,
//	    Lines:          len(res.Lines),
//	    AvailableWidth: res.AvailableWidth,
//	    Alignment:      geometry.AlignLeft,
//	    Padding:        res.Padding,
//	    Area:           settings.AreaBorder,
//	    Text:           settings.TextBorder,
//	})
package geometry
