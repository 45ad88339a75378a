// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/conwrite/internal/geometry"
)

// tight returns settings with no padding so the viewport width is the
// available width.
func tight(opts ...Option) Settings {
	return Default(append([]Option{WithPadding(geometry.Padding{})}, opts...)...)
}

// =============================================================================
// EXAMPLES
// =============================================================================

func TestLayout_Examples(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		opts  []Option
		want  []string
	}{
		{"greedy wrap", "the quick brown fox", 9, nil, []string{"the quick", "brown fox"}},
		{"hard split", "abcdefghij", 4, nil, []string{"abcd", "efgh", "ij"}},
		{"token equals width", "abcd", 4, nil, []string{"abcd"}},
		{"empty input", "", 10, nil, []string{""}},
		{"trailing space stripped", "abc ", 10, nil, []string{"abc"}},
		{"double space kept", "a  b", 10, nil, []string{"a  b"}},
		{"embedded newline", "one two\nthree", 20, nil, []string{"one two", "three"}},
		{"blank line kept", "a\n\nb", 20, nil, []string{"a", "", "b"}},
		{"no wrap fills line", "hello world", 8, []Option{WithWrap(false)}, []string{"hello wo", "rld"}},
		{"minimum width pads", "ab", 20, []Option{WithMinimumWidth(6)}, []string{"ab    "}},
		{
			"justify over threshold", "a b c", 9,
			[]Option{WithJustify(true), WithThreshold(Columns(4))},
			[]string{"a   b   c"},
		},
		{
			"justify under minimum width", "a b c", 20,
			[]Option{WithJustify(true), WithMinimumWidth(9)},
			[]string{"a   b   c"},
		},
		{
			"single word never justified", "abc", 9,
			[]Option{WithJustify(true), WithThreshold(Columns(1))},
			[]string{"abc"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Layout(tt.text, tight(tt.opts...), tt.width)
			assert.Equal(t, tt.want, res.Lines)
		})
	}
}

func TestLayout_WidestAndAvailableWidth(t *testing.T) {
	res := Layout("the quick brown fox jumps", tight(), 11)
	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, res.Lines)
	assert.Equal(t, 9, res.Widest)
	assert.Equal(t, 11, res.AvailableWidth)
	assert.Equal(t, 3, res.Height())
}

func TestLayout_MaximumWidthMayExceedViewport(t *testing.T) {
	res := Layout("the quick brown fox jumps", tight(WithMaximumWidth(20)), 11)
	assert.Equal(t, []string{"the quick brown fox", "jumps"}, res.Lines)
	assert.Equal(t, 20, res.AvailableWidth)
}

func TestLayout_DoesNotMutateSettings(t *testing.T) {
	s := Default(WithPadding(geometry.Padding{Left: -2}))
	before := s.Clone()
	Layout("some text", s, 40)
	assert.Equal(t, before, s)
}

// =============================================================================
// WIDTH RESOLUTION
// =============================================================================

func TestAvailableWidth(t *testing.T) {
	tests := []struct {
		name     string
		opts     []Option
		viewport int
		want     int
	}{
		{"viewport minus padding", nil, 80, 72},
		{"minimum wider than viewport", []Option{WithMinimumWidth(100)}, 80, 100},
		{"minimum narrower than viewport", []Option{WithMinimumWidth(20)}, 80, 72},
		{"maximum minus padding", []Option{WithMaximumWidth(40)}, 80, 32},
		{"maximum wider than viewport", []Option{WithMaximumWidth(40)}, 20, 32},
		{"maximum inside padding", []Option{WithMaximumWidth(5)}, 80, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, pad := AvailableWidth(Default(tt.opts...), tt.viewport)
			assert.Equal(t, tt.want, w)
			assert.Equal(t, geometry.DefaultSidePadding, pad.Left)
		})
	}
}

func TestAvailableWidth_RebalancesPaddingInNarrowViewport(t *testing.T) {
	w, pad := AvailableWidth(Default(), 5)
	assert.Equal(t, 1, w)
	assert.Equal(t, 2, pad.Left)
	assert.Equal(t, 2, pad.Right)

	res := Layout("ab", Default(), 5)
	assert.Equal(t, []string{"a", "b"}, res.Lines)
	assert.Equal(t, 2, res.Padding.Left)
}

func TestSettings_NormalizeClampsMaximumToMinimum(t *testing.T) {
	s := Default(WithMinimumWidth(30), WithMaximumWidth(10))
	assert.Equal(t, 30, s.MaximumWidth)

	s = Default(WithPadding(geometry.Padding{Top: -1, Left: -1, Right: -1, Bottom: -1}))
	assert.Equal(t, geometry.Padding{Left: 4, Right: 4}, s.Padding)
}

func TestSettings_CloneIsDeep(t *testing.T) {
	s := Default(WithLocation(geometry.Location{X: 3, Y: 4}))
	c := s.Clone()
	c.Location.X = 99
	assert.Equal(t, 3, s.Location.X)

	derived := s.With(AtCursor(), WithJustify(true))
	assert.Nil(t, derived.Location)
	assert.NotNil(t, s.Location)
	assert.False(t, s.Justified)
}

func TestThreshold_Resolve(t *testing.T) {
	assert.Equal(t, 7, Percent(70).Resolve(10))
	assert.Equal(t, 5, Columns(5).Resolve(10))
	assert.Equal(t, "70%", Percent(70).String())
}

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		in      string
		want    Threshold
		wantErr bool
	}{
		{"70%", Percent(70), false},
		{" 40 ", Columns(40), false},
		{"0", Columns(0), false},
		{"-5", Threshold{}, true},
		{"lots", Threshold{}, true},
		{"%", Threshold{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThreshold(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// PROPERTIES
// =============================================================================

var vocabulary = []string{"a", "an", "the", "fox", "quick", "brown", "lazy", "jumped", "over", "dog", "x", "layout"}

func randomText(r *rand.Rand, words int) string {
	out := make([]string, words)
	for i := range out {
		out[i] = vocabulary[r.Intn(len(vocabulary))]
	}
	return strings.Join(out, " ")
}

func TestLayout_LinesFitAndPreserveWords(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		text := randomText(r, 1+r.Intn(40))
		width := 6 + r.Intn(30)

		res := Layout(text, tight(), width)
		for _, line := range res.Lines {
			require.LessOrEqual(t, utf8.RuneCountInString(line), width, "text %q width %d", text, width)
		}
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(res.Lines, " ")))
	}
}

func TestLayout_JustifiedLinesHitTarget(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		text := randomText(r, 2+r.Intn(30))
		width := 8 + r.Intn(20)
		s := tight(WithJustify(true), WithThreshold(Percent(50)))

		res := Layout(text, s, width)
		threshold := s.JustifyThreshold.Resolve(width)
		for _, line := range res.Lines {
			natural := len(strings.Join(strings.Fields(line), " "))
			gaps := len(strings.Fields(line)) - 1
			if gaps > 0 && natural > threshold {
				assert.Equal(t, width, len(line), "line %q", line)
			} else {
				assert.LessOrEqual(t, len(line), width)
			}
		}
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(res.Lines, " ")))
	}
}

func TestLayout_HardSplitChunkCount(t *testing.T) {
	for width := 1; width <= 9; width++ {
		token := strings.Repeat("z", 23)
		res := Layout(token, tight(), width)

		want := (23 + width - 1) / width
		require.Len(t, res.Lines, want, "width %d", width)
		for i, line := range res.Lines {
			if i < want-1 {
				assert.Len(t, line, width)
			}
		}
		assert.Equal(t, token, strings.Join(res.Lines, ""))
	}
}

func TestLayout_HeightCap(t *testing.T) {
	text := strings.Repeat("word ", 50)

	res := Layout(text, tight(WithMaximumHeight(3)), 10)
	assert.Len(t, res.Lines, 3)

	res = Layout(strings.Repeat("y", 40), tight(WithMaximumHeight(2)), 4)
	assert.Equal(t, []string{"yyyy", "yyyy"}, res.Lines)

	res = Layout("a\nb\nc\nd", tight(WithMaximumHeight(2)), 10)
	assert.Equal(t, []string{"a", "b"}, res.Lines)
}

// =============================================================================
// JUSTIFY
// =============================================================================

func TestJustify(t *testing.T) {
	assert.Equal(t, "a   b   c", Justify("a b c", 4))
	assert.Equal(t, "a   b   c  d", Justify("a b c d", 5), "earlier gaps take the remainder")
	assert.Equal(t, "abc", Justify("abc", 5), "no gaps is a no-op")
	assert.Equal(t, "a b", Justify("a b", 0))
	assert.Equal(t, "a b", Justify("a b", -3))
}

func TestJustify_InsertsExactCount(t *testing.T) {
	line := "one two three four"
	for spaces := 0; spaces < 20; spaces++ {
		got := Justify(line, spaces)
		assert.Equal(t, len(line)+spaces, len(got))
		assert.Equal(t, strings.Fields(line), strings.Fields(got))
	}
}
