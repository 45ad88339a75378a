// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"context"
	"io"
	"log"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/terminal"
)

var logger = log.New(io.Discard, "", 0)

// SetLogger sets the logger used for render diagnostics. nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// =============================================================================
// WRITER
// =============================================================================

// Writer writes formatted blocks of text to a display. The settings it is
// created with are the defaults for every Write; per-call options are
// applied to a copy.
type Writer struct {
	display  terminal.Display
	settings layout.Settings
}

// NewWriter creates a Writer for d using s as the default settings.
func NewWriter(d terminal.Display, s layout.Settings) *Writer {
	return &Writer{display: d, settings: s.Normalize()}
}

// Display returns the display the writer draws on.
func (w *Writer) Display() terminal.Display { return w.display }

// Settings returns a copy of the default settings.
func (w *Writer) Settings() layout.Settings { return w.settings.Clone() }

// Write lays out text with the default settings plus opts and writes it.
// See WriteSettings.
func (w *Writer) Write(text string, opts ...layout.Option) geometry.Location {
	return w.WriteSettings(context.Background(), text, w.settings.With(opts...))
}

// WriteSettings writes text with s, ignoring the writer's defaults.
//
// The block starts at s.Location, or the current position when that is nil.
// The returned location is the furthest column reached (exclusive) and the
// last row written, extended to the outer frame when a border is drawn. If
// the block's first cell lies outside the viewport nothing is written and
// the start location is returned.
//
// Slow writes pace characters until a key is pressed or ctx is done, then
// write the rest immediately and discard buffered keys.
func (w *Writer) WriteSettings(ctx context.Context, text string, s layout.Settings) geometry.Location {
	d := w.display
	s = s.Normalize()

	startX, startY := d.Position()
	origin := geometry.Location{X: startX, Y: startY}
	if s.Location != nil {
		origin = *s.Location
	}

	viewW, viewH := d.Size()
	if origin.X < 0 || origin.Y < 0 ||
		origin.X+s.Padding.Left >= viewW || origin.Y+s.Padding.Top >= viewH {
		logger.Printf("WARNING: write at %s is outside the %dx%d viewport", origin, viewW, viewH)
		return origin
	}

	visible := d.CursorVisible()
	d.SetCursorVisible(s.ShowCursor)
	defer d.SetCursorVisible(visible)

	bordered := s.KeepIndent && (s.AreaBorder.AnyEnabled() || s.TextBorder.AnyEnabled())

	// Layout gets the width remaining right of the origin, not the viewport width.
	layoutWidth := viewW
	if s.KeepIndent {
		layoutWidth -= origin.X
	}
	if bordered {
		layoutWidth -= s.AreaBorder.Horizontal() + s.TextBorder.Horizontal()
	}
	res := layout.Layout(text, s, layoutWidth)

	frame := geometry.Compute(geometry.FrameSpec{
		Origin:         origin,
		Widest:         res.Widest,
		Lines:          len(res.Lines),
		AvailableWidth: res.AvailableWidth,
		Alignment:      s.Alignment,
		Padding:        res.Padding,
		Area:           s.AreaBorder,
		Text:           s.TextBorder,
	})

	if bordered {
		DrawBox(d, frame.Outer, s.AreaBorder)
		DrawBorder(d, frame.Text, geometry.Padding{}, s.TextBorder)
	}

	p := newPacer(ctx, d, s)
	extent := geometry.Location{X: origin.X, Y: origin.Y}
	indent := frame.Content.X - origin.X
	row := frame.Content.Y

	for i, line := range res.Lines {
		n := utf8.RuneCountInString(line)
		x := frame.LineStart(s.Alignment, res.AvailableWidth, n)
		if !s.KeepIndent && i > 0 {
			x = indent + s.Alignment.Offset(res.AvailableWidth, n)
		}

		d.MoveTo(x, row)
		p.write(line)

		extent.X = max(extent.X, x+n)
		extent.Y = max(extent.Y, row)

		if s.NewLine || i < len(res.Lines)-1 {
			row++
			d.MoveTo(origin.X, row)
		}
	}
	p.finish()

	if s.NewLine {
		col := origin.X
		if !s.KeepIndent {
			col = 0
		}
		d.MoveTo(col, row+res.Padding.Bottom+s.AreaBorder.BottomThickness()+s.TextBorder.BottomThickness())
	}

	if bordered {
		extent.X = max(extent.X, frame.Outer.Max.X)
		extent.Y = max(extent.Y, frame.Outer.Max.Y-1)
	}

	if s.ResetCursor {
		d.MoveTo(startX, startY)
	}
	return extent
}

// =============================================================================
// SLOW WRITE
// =============================================================================

// pacer writes text one character at a time at the configured rate until a
// key press or cancellation skips ahead.
type pacer struct {
	ctx     context.Context
	display terminal.Display
	limiter *rate.Limiter
	skipped bool
}

func newPacer(ctx context.Context, d terminal.Display, s layout.Settings) *pacer {
	p := &pacer{ctx: ctx, display: d}
	if s.SlowWrite && s.CharDelay > 0 {
		p.limiter = rate.NewLimiter(rate.Every(s.CharDelay), 1)
	}
	return p
}

func (p *pacer) write(line string) {
	if p.limiter == nil || p.skipped {
		p.display.WriteString(line)
		return
	}

	for i, r := range line {
		if p.display.KeyAvailable() || p.limiter.Wait(p.ctx) != nil {
			p.skipped = true
			p.display.WriteString(line[i:])
			return
		}
		p.display.WriteString(string(r))
	}
}

// finish discards the keys that interrupted a slow write.
func (p *pacer) finish() {
	if p.limiter != nil && p.skipped {
		terminal.DrainKeys(p.display)
	}
}
