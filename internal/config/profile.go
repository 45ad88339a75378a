// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
)

// =============================================================================
// PROFILES
// =============================================================================

// ProfileConfig overrides parts of WriteConfig. Fields left unset keep the
// [write] value.
type ProfileConfig struct {
	Wrap             *bool          `toml:"wrap" json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Alignment        *string        `toml:"alignment" json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Justify          *bool          `toml:"justify" json:"justify,omitempty" yaml:"justify,omitempty"`
	JustifyThreshold *string        `toml:"justify_threshold" json:"justify_threshold,omitempty" yaml:"justify_threshold,omitempty"`
	MinimumWidth     *int           `toml:"minimum_width" json:"minimum_width,omitempty" yaml:"minimum_width,omitempty"`
	MaximumWidth     *int           `toml:"maximum_width" json:"maximum_width,omitempty" yaml:"maximum_width,omitempty"`
	MaximumHeight    *int           `toml:"maximum_height" json:"maximum_height,omitempty" yaml:"maximum_height,omitempty"`
	Padding          *PaddingConfig `toml:"padding" json:"padding,omitempty" yaml:"padding,omitempty"`
	AreaBorder       *string        `toml:"area_border" json:"area_border,omitempty" yaml:"area_border,omitempty"`
	TextBorder       *string        `toml:"text_border" json:"text_border,omitempty" yaml:"text_border,omitempty"`
	NewLine          *bool          `toml:"new_line" json:"new_line,omitempty" yaml:"new_line,omitempty"`
	KeepIndent       *bool          `toml:"keep_indent" json:"keep_indent,omitempty" yaml:"keep_indent,omitempty"`
	ShowCursor       *bool          `toml:"show_cursor" json:"show_cursor,omitempty" yaml:"show_cursor,omitempty"`
	SlowWrite        *bool          `toml:"slow_write" json:"slow_write,omitempty" yaml:"slow_write,omitempty"`
	CharDelayMS      *int           `toml:"char_delay_ms" json:"char_delay_ms,omitempty" yaml:"char_delay_ms,omitempty"`
}

// Apply returns base with the profile's fields laid over it.
func (p ProfileConfig) Apply(base WriteConfig) WriteConfig {
	w := base
	set(&w.Wrap, p.Wrap)
	set(&w.Alignment, p.Alignment)
	set(&w.Justify, p.Justify)
	set(&w.JustifyThreshold, p.JustifyThreshold)
	set(&w.MinimumWidth, p.MinimumWidth)
	set(&w.MaximumWidth, p.MaximumWidth)
	set(&w.MaximumHeight, p.MaximumHeight)
	set(&w.Padding, p.Padding)
	set(&w.AreaBorder, p.AreaBorder)
	set(&w.TextBorder, p.TextBorder)
	set(&w.NewLine, p.NewLine)
	set(&w.KeepIndent, p.KeepIndent)
	set(&w.ShowCursor, p.ShowCursor)
	set(&w.SlowWrite, p.SlowWrite)
	set(&w.CharDelayMS, p.CharDelayMS)
	return w
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (p ProfileConfig) clone() ProfileConfig {
	return ProfileConfig{
		Wrap:             clonePtr(p.Wrap),
		Alignment:        clonePtr(p.Alignment),
		Justify:          clonePtr(p.Justify),
		JustifyThreshold: clonePtr(p.JustifyThreshold),
		MinimumWidth:     clonePtr(p.MinimumWidth),
		MaximumWidth:     clonePtr(p.MaximumWidth),
		MaximumHeight:    clonePtr(p.MaximumHeight),
		Padding:          clonePtr(p.Padding),
		AreaBorder:       clonePtr(p.AreaBorder),
		TextBorder:       clonePtr(p.TextBorder),
		NewLine:          clonePtr(p.NewLine),
		KeepIndent:       clonePtr(p.KeepIndent),
		ShowCursor:       clonePtr(p.ShowCursor),
		SlowWrite:        clonePtr(p.SlowWrite),
		CharDelayMS:      clonePtr(p.CharDelayMS),
	}
}

// =============================================================================
// CONVERSION TO LAYOUT SETTINGS
// =============================================================================

// ParseBorder resolves a border name. "" and "none" give a disabled border;
// anything else must be a geometry preset.
func ParseBorder(name string) (geometry.Border, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" || n == BorderNone {
		return geometry.NewBorder(false), nil
	}
	b, ok := geometry.Preset(n)
	if !ok {
		return geometry.Border{}, fmt.Errorf("unknown border %q (expected %s or one of %s)",
			name, BorderNone, strings.Join(geometry.PresetNames(), ", "))
	}
	return b, nil
}

// Settings converts the write configuration to layout settings.
func (w WriteConfig) Settings() (layout.Settings, error) {
	align, err := geometry.ParseAlignment(w.Alignment)
	if err != nil {
		return layout.Settings{}, err
	}
	threshold, err := layout.ParseThreshold(w.JustifyThreshold)
	if err != nil {
		return layout.Settings{}, err
	}
	area, err := ParseBorder(w.AreaBorder)
	if err != nil {
		return layout.Settings{}, err
	}
	text, err := ParseBorder(w.TextBorder)
	if err != nil {
		return layout.Settings{}, err
	}

	return layout.Default(
		layout.WithWrap(w.Wrap),
		layout.WithAlignment(align),
		layout.WithJustify(w.Justify),
		layout.WithThreshold(threshold),
		layout.WithMinimumWidth(w.MinimumWidth),
		layout.WithMaximumWidth(w.MaximumWidth),
		layout.WithMaximumHeight(w.MaximumHeight),
		layout.WithPadding(geometry.Padding{
			Top:    w.Padding.Top,
			Left:   w.Padding.Left,
			Right:  w.Padding.Right,
			Bottom: w.Padding.Bottom,
		}),
		layout.WithAreaBorder(area),
		layout.WithTextBorder(text),
		layout.WithNewLine(w.NewLine),
		layout.WithKeepIndent(w.KeepIndent),
		layout.WithShowCursor(w.ShowCursor),
		func(s *layout.Settings) {
			s.SlowWrite = w.SlowWrite
			s.CharDelay = time.Duration(w.CharDelayMS) * time.Millisecond
		},
	), nil
}

// WriteConfig returns the [write] settings with the named profile applied.
// An empty name uses c.Profile, and no profile at all gives [write] as is.
func (c *Config) WriteConfig(profile string) (WriteConfig, error) {
	if profile == "" {
		profile = c.Profile
	}
	if profile == "" {
		return c.Write, nil
	}
	p, ok := c.Profiles[profile]
	if !ok {
		return WriteConfig{}, fmt.Errorf("unknown profile %q", profile)
	}
	return p.Apply(c.Write), nil
}

// Settings returns the layout settings for a profile. See WriteConfig.
func (c *Config) Settings(profile string) (layout.Settings, error) {
	w, err := c.WriteConfig(profile)
	if err != nil {
		return layout.Settings{}, err
	}
	s, err := w.Settings()
	if err != nil {
		return layout.Settings{}, fmt.Errorf("profile %q: %w", profile, err)
	}
	return s, nil
}
