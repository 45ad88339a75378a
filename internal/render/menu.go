// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
)

// DefaultMenuTitle is used by CreateMenu when the title is empty.
const DefaultMenuTitle = "Menu:"

// MenuOptions configures CreateMenu.
type MenuOptions struct {
	// Title is written above the options. Empty means DefaultMenuTitle.
	Title string
	// TitleSettings and OptionSettings override the writer's defaults when set.
	TitleSettings  *layout.Settings
	OptionSettings *layout.Settings
}

// CreateMenu writes a title followed by one numbered line per option
// ("1. first", "2. second", ...), each block on the row below the previous
// one. It returns the furthest extent reached.
func CreateMenu(w *Writer, options []string, opts MenuOptions) geometry.Location {
	title := opts.Title
	if title == "" {
		title = DefaultMenuTitle
	}

	titleSettings := w.Settings()
	if opts.TitleSettings != nil {
		titleSettings = opts.TitleSettings.Clone()
	}
	optionSettings := titleSettings
	if opts.OptionSettings != nil {
		optionSettings = opts.OptionSettings.Clone()
	}

	titleSettings = titleSettings.With(layout.WithNewLine(true))
	extent := w.WriteSettings(context.Background(), title, titleSettings)

	optionSettings = optionSettings.With(layout.WithNewLine(true), layout.AtCursor())
	for i, option := range options {
		e := w.WriteSettings(context.Background(), fmt.Sprintf("%d. %s", i+1, option), optionSettings)
		extent.X = max(extent.X, e.X)
		extent.Y = max(extent.Y, e.Y)
	}
	return extent
}

// PrepScreen clears the display and writes title centred one row down.
// With rule set, a full-width line of underscores follows, with two blank
// rows below it. The write position ends below the header.
func PrepScreen(w *Writer, title string, rule bool) {
	d := w.Display()
	ClearScreen(d)

	w.WriteSettings(context.Background(), title, layout.Default(
		layout.WithAlignment(geometry.AlignCentre),
		layout.WithPadding(geometry.Padding{Top: 1}),
	))

	if rule {
		width, _ := d.Size()
		w.WriteSettings(context.Background(), strings.Repeat("_", width), layout.Default(
			layout.WithPadding(geometry.Padding{Bottom: 2}),
		))
	}
}
