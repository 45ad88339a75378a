// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jeranaias/conwrite/internal/geometry"
)

// =============================================================================
// THRESHOLD
// =============================================================================

// Threshold is the line length above which a line is justified. It is either
// an absolute column count or a percentage of the available width.
type Threshold struct {
	Value      int  `toml:"value" json:"value" yaml:"value"`
	Percentage bool `toml:"percentage" json:"percentage" yaml:"percentage"`
}

// Percent returns a percentage threshold.
func Percent(p int) Threshold { return Threshold{Value: p, Percentage: true} }

// Columns returns an absolute threshold.
func Columns(n int) Threshold { return Threshold{Value: n} }

// Resolve returns the threshold in columns for the given available width.
func (t Threshold) Resolve(availableWidth int) int {
	if t.Percentage {
		return t.Value * availableWidth / 100
	}
	return t.Value
}

func (t Threshold) String() string {
	if t.Percentage {
		return fmt.Sprintf("%d%%", t.Value)
	}
	return fmt.Sprintf("%d", t.Value)
}

// ParseThreshold accepts the String form: "70%" or "40".
func ParseThreshold(s string) (Threshold, error) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	n, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil || n < 0 {
		return Threshold{}, fmt.Errorf("invalid threshold %q (expected columns or a percentage)", s)
	}
	return Threshold{Value: n, Percentage: pct}, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

// Defaults for Settings.
const (
	DefaultThresholdPercent = 70
	DefaultCharDelay        = 50 * time.Millisecond
)

// Settings controls how text is laid out and written.
type Settings struct {
	// Wrap breaks lines at spaces. When false, a token that would overflow
	// is split so the line is filled to the available width exactly.
	Wrap bool

	Alignment        geometry.Alignment
	Justified        bool
	JustifyThreshold Threshold

	// MinimumWidth right-pads short lines. Zero disables it.
	MinimumWidth int
	// MaximumWidth bounds the line width including padding. Zero means the
	// viewport width.
	MaximumWidth int
	// MaximumHeight caps the number of lines. Zero means unbounded.
	MaximumHeight int

	Padding    geometry.Padding
	AreaBorder geometry.Border
	TextBorder geometry.Border

	// NewLine moves to the row below the block (plus bottom padding) when
	// writing finishes.
	NewLine bool
	// KeepIndent starts every line at the block's column. When false, lines
	// after the first start at column 0 plus left padding.
	KeepIndent bool

	SlowWrite bool
	CharDelay time.Duration

	// Location is where the block starts. nil means the current position.
	Location *geometry.Location

	ResetCursor bool
	ShowCursor  bool
}

// Option modifies Settings.
type Option func(*Settings)

// Default returns the default settings with opts applied.
func Default(opts ...Option) Settings {
	s := Settings{
		Wrap:             true,
		Alignment:        geometry.AlignLeft,
		JustifyThreshold: Percent(DefaultThresholdPercent),
		Padding: geometry.Padding{
			Left:  geometry.DefaultSidePadding,
			Right: geometry.DefaultSidePadding,
		},
		AreaBorder: geometry.NewBorder(false),
		TextBorder: geometry.NewBorder(false),
		NewLine:    true,
		KeepIndent: true,
		CharDelay:  DefaultCharDelay,
	}
	return s.With(opts...)
}

// With returns a copy of s with opts applied and the result normalized.
func (s Settings) With(opts ...Option) Settings {
	c := s.Clone()
	for _, opt := range opts {
		opt(&c)
	}
	return c.Normalize()
}

// Clone returns a deep copy.
func (s Settings) Clone() Settings {
	c := s
	if s.Location != nil {
		loc := *s.Location
		c.Location = &loc
	}
	return c
}

// Normalize clamps MaximumWidth to at least MinimumWidth and repairs
// negative padding and sizes.
func (s Settings) Normalize() Settings {
	if s.MinimumWidth < 0 {
		s.MinimumWidth = 0
	}
	if s.MaximumWidth < 0 {
		s.MaximumWidth = 0
	}
	if s.MaximumWidth > 0 && s.MaximumWidth < s.MinimumWidth {
		s.MaximumWidth = s.MinimumWidth
	}
	if s.MaximumHeight < 0 {
		s.MaximumHeight = 0
	}
	if s.CharDelay < 0 {
		s.CharDelay = 0
	}
	s.Padding = s.Padding.Fixed()
	s.AreaBorder = s.AreaBorder.Normalized()
	s.TextBorder = s.TextBorder.Normalized()
	return s
}

// =============================================================================
// OPTIONS
// =============================================================================

func WithWrap(wrap bool) Option { return func(s *Settings) { s.Wrap = wrap } }

func WithAlignment(a geometry.Alignment) Option { return func(s *Settings) { s.Alignment = a } }

func WithJustify(justified bool) Option { return func(s *Settings) { s.Justified = justified } }

func WithThreshold(t Threshold) Option { return func(s *Settings) { s.JustifyThreshold = t } }

func WithMinimumWidth(n int) Option { return func(s *Settings) { s.MinimumWidth = n } }

func WithMaximumWidth(n int) Option { return func(s *Settings) { s.MaximumWidth = n } }

func WithMaximumHeight(n int) Option { return func(s *Settings) { s.MaximumHeight = n } }

func WithPadding(p geometry.Padding) Option { return func(s *Settings) { s.Padding = p } }

func WithAreaBorder(b geometry.Border) Option { return func(s *Settings) { s.AreaBorder = b } }

func WithTextBorder(b geometry.Border) Option { return func(s *Settings) { s.TextBorder = b } }

func WithNewLine(on bool) Option { return func(s *Settings) { s.NewLine = on } }

func WithKeepIndent(on bool) Option { return func(s *Settings) { s.KeepIndent = on } }

// WithSlowWrite enables per-character pacing. A zero delay keeps the
// current one.
func WithSlowWrite(on bool, delay time.Duration) Option {
	return func(s *Settings) {
		s.SlowWrite = on
		if delay > 0 {
			s.CharDelay = delay
		}
	}
}

// WithLocation pins the block to loc.
func WithLocation(loc geometry.Location) Option {
	return func(s *Settings) { s.Location = &loc }
}

// AtCursor clears any pinned location.
func AtCursor() Option { return func(s *Settings) { s.Location = nil } }

func WithResetCursor(on bool) Option { return func(s *Settings) { s.ResetCursor = on } }

func WithShowCursor(on bool) Option { return func(s *Settings) { s.ShowCursor = on } }
