// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render draws laid-out text, borders and simple screens on a
// terminal.Display.
//
// # Key Types
//
//   - Writer: lays out text with layout.Layout and writes it line by line,
//     drawing the area and text borders, optionally pacing characters
//   - DrawBox / DrawBorder: frame a rectangle with a geometry.Border
//   - ClearLine / ClearArea: blank rows or a rectangle of cells
//   - CreateMenu / PrepScreen: numbered menus and titled screens
//
// Every drawing helper restores the display's write position when it is
// done, except Writer.Write, which leaves the position after the block
// unless ResetCursor is set.
package render
