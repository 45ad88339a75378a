// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/input"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/render"
)

// DefaultPrompt is used when Options.Prompt is empty.
const DefaultPrompt = "Input: "

var logger = log.New(io.Discard, "", 0)

// SetLogger sets the logger used for prompt sessions. nil discards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	logger = l
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options are shared by every prompt kind.
type Options struct {
	// Prompt is written before the input. Empty means DefaultPrompt. A
	// trailing space leaves one blank column before the input.
	Prompt string

	// ErrorPrompt is shown when a value is rejected. Empty means the
	// prompt kind's default.
	ErrorPrompt string

	// Settings for the prompt. nil means the writer's defaults without a
	// trailing new line.
	Settings *layout.Settings

	// ErrorSettings for error messages. nil means the prompt settings with
	// no top padding. Without a Location the error goes two rows below the
	// prompt, at the prompt's column.
	ErrorSettings *layout.Settings

	// MaxLength is the input row length. Zero means unbounded.
	MaxLength int
	// MaxHeight is the number of input rows. Zero means one.
	MaxHeight int
}

func (o Options) bounds() (maxLength, maxHeight int) {
	maxLength, maxHeight = o.MaxLength, o.MaxHeight
	if maxLength == 0 {
		maxLength = input.Unbounded
	}
	if maxLength < 0 {
		maxLength = 0
	}
	if maxHeight <= 0 {
		maxHeight = 1
	}
	return maxLength, maxHeight
}

// Limits bounds an integer prompt, inclusive at both ends.
type Limits struct {
	Min int
	Max int
}

// IntegerOptions configures Integer.
type IntegerOptions struct {
	Options
	// Limits restricts the accepted range. nil accepts any int.
	Limits *Limits
	// LimitsPrompt is shown for an out-of-range value. Empty means
	// LimitsMessage(min, max).
	LimitsPrompt string
}

// ChoiceOptions configures Allowed and Disallowed.
type ChoiceOptions struct {
	Options
	Values        []string
	CaseSensitive bool
	// PreventIncorrect makes Allowed refuse keystrokes that cannot lead to
	// an allowed value. Ignored by Disallowed.
	PreventIncorrect bool
}

// InputOptions configures Input.
type InputOptions struct {
	Prompt   string
	Settings *layout.Settings
	// MaxLength is measured from where the prompt starts, so the prompt's
	// own width is taken off it. Zero means unbounded.
	MaxLength int
	// MaxHeight is the number of input rows. Zero means one.
	MaxHeight int
	// ClearInput blanks the typed text once it has been captured.
	ClearInput bool
}

// Check validates a captured value. Returning a ValidationError shows its
// message and retries; any other error ends the prompt.
type Check func(value string) error

// =============================================================================
// COORDINATOR
// =============================================================================

// Coordinator runs prompts on a writer's display. It is not safe for
// concurrent use.
type Coordinator struct {
	writer *render.Writer
}

// New creates a Coordinator.
func New(w *render.Writer) *Coordinator {
	return &Coordinator{writer: w}
}

// Writer returns the writer prompts are drawn with.
func (c *Coordinator) Writer() *render.Writer { return c.writer }

// Input writes a prompt and returns whatever is typed.
func (c *Coordinator) Input(opts InputOptions) (string, error) {
	s := c.begin(Options{Prompt: opts.Prompt, Settings: opts.Settings, MaxLength: opts.MaxLength, MaxHeight: opts.MaxHeight})

	if s.maxLength != input.Unbounded {
		s.maxLength -= s.input.X - s.origin.X
		if s.maxLength < 0 {
			s.maxLength = 0
		}
	}

	d := c.writer.Display()
	d.MoveTo(s.input.X, s.input.Y)
	value, err := input.NewEditor(d, s.maxLength, s.maxHeight).Capture()
	if err != nil {
		return value, &CaptureError{Session: s.id, Err: err}
	}

	_, row := d.Position()
	if opts.ClearInput {
		s.clearInput(row)
		d.MoveTo(s.origin.X, s.input.Y+1)
	} else {
		d.MoveTo(s.origin.X, row)
	}
	logger.Printf("PROMPT[%s]: captured %d characters", s.id, len([]rune(value)))
	return value, nil
}

// Integer prompts until an int within opts.Limits is entered.
func (c *Coordinator) Integer(opts IntegerOptions) (int, error) {
	formatError := opts.ErrorPrompt
	if formatError == "" {
		formatError = DefaultIntegerError
	}
	limits := Limits{Min: math.MinInt, Max: math.MaxInt}
	if opts.Limits != nil {
		limits = *opts.Limits
	}
	limitsError := opts.LimitsPrompt
	if limitsError == "" {
		limitsError = LimitsMessage(limits.Min, limits.Max)
	}

	var result int
	_, err := c.run(opts.Options, capturePlain, func(value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Reject(value, formatError)
		}
		if n < limits.Min || n > limits.Max {
			return Reject(value, limitsError)
		}
		result = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}

// Allowed prompts until one of opts.Values is entered and returns it as the
// set stores it (lower-cased when case-insensitive).
func (c *Coordinator) Allowed(opts ChoiceOptions) (string, error) {
	set := input.NewAllowedSet(opts.Values, opts.CaseSensitive)
	message := opts.ErrorPrompt
	if message == "" {
		message = DefaultInvalidError
	}

	capture := capturePlain
	if opts.PreventIncorrect {
		capture = func(e *input.Editor) (string, error) { return e.CaptureAllowed(set) }
	}

	value, err := c.run(opts.Options, capture, func(value string) error {
		if !set.Contains(value) {
			return Reject(value, message)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return set.Fold(value), nil
}

// Disallowed prompts until something other than opts.Values is entered.
func (c *Coordinator) Disallowed(opts ChoiceOptions) (string, error) {
	set := input.NewAllowedSet(opts.Values, opts.CaseSensitive)
	message := opts.ErrorPrompt
	if message == "" {
		message = DefaultInvalidError
	}

	return c.run(opts.Options, capturePlain, func(value string) error {
		if set.Contains(value) {
			return Reject(value, message)
		}
		return nil
	})
}

// Validated prompts until check accepts the value.
func (c *Coordinator) Validated(opts Options, check Check) (string, error) {
	return c.run(opts, capturePlain, check)
}

// =============================================================================
// SESSION
// =============================================================================

type captureFunc func(*input.Editor) (string, error)

func capturePlain(e *input.Editor) (string, error) { return e.Capture() }

// session is one prompt from first write to accepted value.
type session struct {
	c  *Coordinator
	id string

	origin geometry.Location
	input  geometry.Location

	maxLength int
	maxHeight int

	errSettings layout.Settings
	errShown    bool
	errExtent   geometry.Location
}

// begin writes the prompt and works out where input and errors go.
func (c *Coordinator) begin(opts Options) *session {
	d := c.writer.Display()

	settings := c.writer.Settings().With(layout.WithNewLine(false))
	if opts.Settings != nil {
		settings = opts.Settings.Clone()
	}
	text := opts.Prompt
	if text == "" {
		text = DefaultPrompt
	}

	x, y := d.Position()
	origin := geometry.Location{X: x, Y: y}
	if settings.Location != nil {
		origin = *settings.Location
	}

	extent := c.writer.WriteSettings(context.Background(), text, settings)

	ix, iy := d.Position()
	if strings.HasSuffix(text, " ") {
		ix++
	}

	s := &session{
		c:      c,
		id:     uuid.NewString(),
		origin: origin,
		input:  geometry.Location{X: ix, Y: iy},
	}
	s.maxLength, s.maxHeight = opts.bounds()

	if opts.ErrorSettings != nil {
		s.errSettings = opts.ErrorSettings.Clone()
	} else {
		s.errSettings = settings.With(func(e *layout.Settings) { e.Padding.Top = 0 }, layout.AtCursor())
	}
	if s.errSettings.Location == nil {
		// Below the last input row so multi-row input never runs into it.
		row := max(extent.Y+2, s.input.Y+s.maxHeight+1)
		s.errSettings = s.errSettings.With(layout.WithLocation(geometry.Location{X: origin.X, Y: row}))
	}
	s.errSettings = s.errSettings.With(layout.WithResetCursor(true))

	logger.Printf("PROMPT[%s]: %q at %s, input at %s", s.id, text, origin, s.input)
	return s
}

// run captures until check accepts a value.
func (c *Coordinator) run(opts Options, capture captureFunc, check Check) (string, error) {
	s := c.begin(opts)
	d := c.writer.Display()
	editor := input.NewEditor(d, s.maxLength, s.maxHeight)

	for attempt := 1; ; attempt++ {
		d.MoveTo(s.input.X, s.input.Y)
		value, err := capture(editor)
		if err != nil {
			return "", &CaptureError{Session: s.id, Err: err}
		}

		err = check(value)
		if err == nil {
			s.clearError()
			_, row := d.Position()
			d.MoveTo(s.origin.X, row)
			logger.Printf("PROMPT[%s]: accepted after %d attempt(s)", s.id, attempt)
			return value, nil
		}

		var ve *ValidationError
		if !errors.As(err, &ve) {
			return "", err
		}
		logger.Printf("PROMPT[%s]: attempt %d rejected: %v", s.id, attempt, err)

		_, row := d.Position()
		s.clearInput(row)
		s.showError(ve.Message)
	}
}

// clearInput blanks the input rows above row, the row the editor committed to.
func (s *session) clearInput(row int) {
	end := geometry.Location{X: geometry.SaturatingAdd(s.input.X, s.maxLength), Y: row - 1}
	render.ClearArea(s.c.writer.Display(), s.input, end)
}

func (s *session) showError(message string) {
	s.clearError()
	s.errExtent = s.c.writer.WriteSettings(context.Background(), message, s.errSettings)
	s.errShown = true
}

func (s *session) clearError() {
	if !s.errShown {
		return
	}
	render.ClearArea(s.c.writer.Display(), *s.errSettings.Location, s.errExtent)
	s.errShown = false
}
