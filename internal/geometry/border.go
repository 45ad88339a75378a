// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package geometry

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// BORDER
// =============================================================================

// Default edge styles, used when an edge style is left empty.
const (
	DefaultHorizontalStyle = "-"
	DefaultVerticalStyle   = "|"
)

// Border describes the four edges of a frame. Each edge is enabled
// independently and styled by its own string; every character of the style
// adds one row (top/bottom) or column (left/right) of thickness.
type Border struct {
	TopEnabled    bool `toml:"top_enabled" json:"top_enabled" yaml:"top_enabled"`
	LeftEnabled   bool `toml:"left_enabled" json:"left_enabled" yaml:"left_enabled"`
	RightEnabled  bool `toml:"right_enabled" json:"right_enabled" yaml:"right_enabled"`
	BottomEnabled bool `toml:"bottom_enabled" json:"bottom_enabled" yaml:"bottom_enabled"`

	TopStyle    string `toml:"top_style" json:"top_style" yaml:"top_style"`
	LeftStyle   string `toml:"left_style" json:"left_style" yaml:"left_style"`
	RightStyle  string `toml:"right_style" json:"right_style" yaml:"right_style"`
	BottomStyle string `toml:"bottom_style" json:"bottom_style" yaml:"bottom_style"`
}

// NewBorder returns a Border with the default styles and every edge set to enabled.
func NewBorder(enabled bool) Border {
	return Border{
		TopEnabled:    enabled,
		LeftEnabled:   enabled,
		RightEnabled:  enabled,
		BottomEnabled: enabled,
		TopStyle:      DefaultHorizontalStyle,
		LeftStyle:     DefaultVerticalStyle,
		RightStyle:    DefaultVerticalStyle,
		BottomStyle:   DefaultHorizontalStyle,
	}
}

// AnyEnabled reports whether at least one edge is enabled.
func (b Border) AnyEnabled() bool {
	return b.TopEnabled || b.LeftEnabled || b.RightEnabled || b.BottomEnabled
}

// Normalized fills empty styles with the defaults.
func (b Border) Normalized() Border {
	if b.TopStyle == "" {
		b.TopStyle = DefaultHorizontalStyle
	}
	if b.BottomStyle == "" {
		b.BottomStyle = DefaultHorizontalStyle
	}
	if b.LeftStyle == "" {
		b.LeftStyle = DefaultVerticalStyle
	}
	if b.RightStyle == "" {
		b.RightStyle = DefaultVerticalStyle
	}
	return b
}

// TopThickness returns the rows taken by the top edge (0 when disabled).
func (b Border) TopThickness() int { return thickness(b.TopEnabled, b.TopStyle) }

// BottomThickness returns the rows taken by the bottom edge (0 when disabled).
func (b Border) BottomThickness() int { return thickness(b.BottomEnabled, b.BottomStyle) }

// LeftThickness returns the columns taken by the left edge (0 when disabled).
func (b Border) LeftThickness() int { return thickness(b.LeftEnabled, b.LeftStyle) }

// RightThickness returns the columns taken by the right edge (0 when disabled).
func (b Border) RightThickness() int { return thickness(b.RightEnabled, b.RightStyle) }

// Horizontal returns the combined left and right thickness.
func (b Border) Horizontal() int { return b.LeftThickness() + b.RightThickness() }

// Vertical returns the combined top and bottom thickness.
func (b Border) Vertical() int { return b.TopThickness() + b.BottomThickness() }

func thickness(enabled bool, style string) int {
	if !enabled {
		return 0
	}
	return utf8.RuneCountInString(style)
}

// =============================================================================
// PRESETS
// =============================================================================

// presets maps preset names to lipgloss border definitions. Only the straight
// edges are used; corners are drawn by whichever edge reaches them first.
var presets = map[string]lipgloss.Border{
	"normal":  lipgloss.NormalBorder(),
	"rounded": lipgloss.RoundedBorder(),
	"thick":   lipgloss.ThickBorder(),
	"double":  lipgloss.DoubleBorder(),
	"block":   lipgloss.BlockBorder(),
	"hidden":  lipgloss.HiddenBorder(),
}

// Preset returns a fully enabled Border for a named style. "ascii" (and the
// empty name) give the default "-" and "|" styles; the other names are
// taken from lipgloss's border set.
func Preset(name string) (Border, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "ascii" {
		return NewBorder(true), true
	}
	lb, ok := presets[name]
	if !ok {
		return Border{}, false
	}
	return FromLipgloss(lb), true
}

// PresetNames lists the names accepted by Preset.
func PresetNames() []string {
	names := make([]string, 0, len(presets)+1)
	names = append(names, "ascii")
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromLipgloss converts a lipgloss border into an enabled Border using its
// straight edge characters.
func FromLipgloss(lb lipgloss.Border) Border {
	return Border{
		TopEnabled:    true,
		LeftEnabled:   true,
		RightEnabled:  true,
		BottomEnabled: true,
		TopStyle:      lb.Top,
		LeftStyle:     lb.Left,
		RightStyle:    lb.Right,
		BottomStyle:   lb.Bottom,
	}.Normalized()
}
