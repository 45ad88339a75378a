// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// settings.go - Turns config profiles and command flags into layout settings.
package cli

import (
	"math"
	"strconv"

	"github.com/jeranaias/conwrite/internal/config"
	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/prompt"
)

// writeConfigFor returns the selected profile's write config with the
// command's layout flags laid over it.
func writeConfigFor(cfg *config.Config, args Args) (config.WriteConfig, error) {
	w, err := cfg.WriteConfig(args.Profile)
	if err != nil {
		name := args.Profile
		if name == "" {
			name = cfg.Profile
		}
		return config.WriteConfig{}, NewNotFoundError("profile", name)
	}

	if v := args.Option("align"); v != "" {
		if _, err := geometry.ParseAlignment(v); err != nil {
			return w, NewValidationErrorWithExample("--align", v, "must be left, centre or right", "--align centre")
		}
		w.Alignment = v
	}
	if v := args.Option("threshold"); v != "" {
		if _, err := layout.ParseThreshold(v); err != nil {
			return w, NewValidationErrorWithExample("--threshold", v, "must be columns or a percentage", "--threshold 70%")
		}
		w.JustifyThreshold = v
	}
	for flag, dst := range map[string]*string{"area-border": &w.AreaBorder, "text-border": &w.TextBorder} {
		v := args.Option(flag)
		if v == "" {
			continue
		}
		if _, err := config.ParseBorder(v); err != nil {
			return w, NewValidationErrorWithExample("--"+flag, v, "unknown border style", "--"+flag+" rounded")
		}
		*dst = v
	}
	for flag, dst := range map[string]*int{
		"min-width":  &w.MinimumWidth,
		"max-width":  &w.MaximumWidth,
		"max-height": &w.MaximumHeight,
		"delay":      &w.CharDelayMS,
	} {
		if !args.Has(flag) {
			continue
		}
		n, err := nonNegative(flag, args.Option(flag))
		if err != nil {
			return w, err
		}
		*dst = n
	}
	if v := args.Option("padding"); v != "" {
		p, err := parsePadding(v)
		if err != nil {
			return w, err
		}
		w.Padding = config.PaddingConfig{Top: p.Top, Left: p.Left, Right: p.Right, Bottom: p.Bottom}
	}

	if args.Has("justify") {
		w.Justify = args.Bool("justify")
	}
	if args.Has("no-wrap") {
		w.Wrap = !args.Bool("no-wrap")
	}
	if args.Has("no-newline") {
		w.NewLine = !args.Bool("no-newline")
	}
	if args.Has("no-indent") {
		w.KeepIndent = !args.Bool("no-indent")
	}
	if args.Has("slow") {
		w.SlowWrite = args.Bool("slow")
	} else if args.Has("delay") {
		w.SlowWrite = true
	}
	return w, nil
}

// buildSettings resolves the layout settings for a command.
func buildSettings(cfg *config.Config, args Args) (layout.Settings, error) {
	w, err := writeConfigFor(cfg, args)
	if err != nil {
		return layout.Settings{}, err
	}
	s, err := w.Settings()
	if err != nil {
		return layout.Settings{}, WrapError(err, "invalid write config")
	}
	if v := args.Option("at"); v != "" {
		loc, err := parseLocation(v)
		if err != nil {
			return layout.Settings{}, err
		}
		s = s.With(layout.WithLocation(loc))
	}
	return s, nil
}

// promptOptions builds the shared prompt options from the [prompt] section
// and the prompt flags. defaultError is used when neither names one.
func promptOptions(cfg *config.Config, args Args, defaultError string) (prompt.Options, error) {
	opts := prompt.Options{
		Prompt:      cfg.Prompt.Text,
		ErrorPrompt: defaultError,
		MaxLength:   cfg.Prompt.MaxLength,
		MaxHeight:   cfg.Prompt.MaxHeight,
	}
	if args.Has("prompt") {
		opts.Prompt = args.Option("prompt")
	}
	if v := args.Option("error"); v != "" {
		opts.ErrorPrompt = v
	}
	if args.Has("max-length") {
		n, err := nonNegative("max-length", args.Option("max-length"))
		if err != nil {
			return opts, err
		}
		opts.MaxLength = n
	}
	if args.Has("rows") {
		n, err := strconv.Atoi(args.Option("rows"))
		if err != nil || n < 1 {
			return opts, NewValidationErrorWithExample("--rows", args.Option("rows"), "must be at least 1", "--rows 2")
		}
		opts.MaxHeight = n
	}
	return opts, nil
}

// integerLimits returns the --min/--max bounds, nil when neither is given.
func integerLimits(args Args) (*prompt.Limits, error) {
	if !args.Has("min") && !args.Has("max") {
		return nil, nil
	}
	limits := prompt.Limits{Min: math.MinInt, Max: math.MaxInt}
	for flag, dst := range map[string]*int{"min": &limits.Min, "max": &limits.Max} {
		if !args.Has(flag) {
			continue
		}
		n, err := strconv.Atoi(args.Option(flag))
		if err != nil {
			return nil, NewValidationErrorWithExample("--"+flag, args.Option(flag), "must be an integer", "--"+flag+" 10")
		}
		*dst = n
	}
	if limits.Min > limits.Max {
		return nil, NewValidationError("--min", strconv.Itoa(limits.Min), "must not exceed --max")
	}
	return &limits, nil
}

// =============================================================================
// VALUE PARSERS
// =============================================================================

func nonNegative(flag, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, NewValidationErrorWithExample("--"+flag, v, "must be a non-negative integer", "--"+flag+" 40")
	}
	return n, nil
}

// parsePadding accepts "all", "vertical,horizontal" or
// "top,right,bottom,left".
func parsePadding(v string) (geometry.Padding, error) {
	invalid := ErrInvalidFormat("--padding", v, "--padding 1, --padding 1,4 or --padding 1,4,1,4")
	ns, err := parseIntList(v)
	if err != nil {
		return geometry.Padding{}, invalid
	}
	for _, n := range ns {
		if n < 0 {
			return geometry.Padding{}, invalid
		}
	}
	switch len(ns) {
	case 1:
		return geometry.Uniform(ns[0]), nil
	case 2:
		return geometry.Symmetric(ns[0], ns[1]), nil
	case 4:
		return geometry.Padding{Top: ns[0], Right: ns[1], Bottom: ns[2], Left: ns[3]}, nil
	default:
		return geometry.Padding{}, invalid
	}
}

// parseLocation accepts "x,y".
func parseLocation(v string) (geometry.Location, error) {
	ns, err := parseIntList(v)
	if err != nil || len(ns) != 2 || ns[0] < 0 || ns[1] < 0 {
		return geometry.Location{}, ErrInvalidFormat("--at", v, "--at 10,2")
	}
	return geometry.Location{X: ns[0], Y: ns[1]}, nil
}
