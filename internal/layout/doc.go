// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout turns raw text into fixed-width display lines.
//
// Layout resolves the available width from the viewport, padding and the
// minimum/maximum width settings, then wraps greedily on single spaces.
// Tokens wider than the available width are split into chunks. Lines may be
// justified (extra spaces distributed front-loaded across the gaps) and are
// right-padded up to the minimum width. Output never exceeds the maximum
// height.
//
// # Usage
//
//	s := layout.Default(layout.WithJustify(true), layout.WithMaximumWidth(40))
//	res := layout.Layout("the quick brown fox", s, 80)
//	for _, line := range res.Lines {
//	    fmt.Println(line)
//	}
//
// Settings are plain values. Derive a variant with Clone and the With*
// options rather than mutating a shared instance.
package layout
