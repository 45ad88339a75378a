// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// commands.go - Handlers for the write, box, menu, prompt and config commands.
//
// Each command has a runner that takes its config, display and writers
// explicitly, and a Handle* wrapper that wires in the real terminal and
// exits with GetExitCode on failure.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/conwrite/internal/config"
	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/prompt"
	"github.com/jeranaias/conwrite/internal/render"
	"github.com/jeranaias/conwrite/internal/terminal"
)

// DefaultSelectPrompt is used by menu --select when --prompt is not given.
const DefaultSelectPrompt = "Select: "

// exitOnError exits for a failed command. Ctrl-C exits quietly.
func exitOnError(args Args, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, terminal.ErrInterrupted) {
		os.Exit(ExitInterrupted)
	}
	HandleErrorAndExit(err, args.JSON)
}

// =============================================================================
// WRITE AND BOX
// =============================================================================

// HandleWrite lays out text from the arguments or stdin.
func HandleWrite(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return writeCommand(cfg, CmdWrite, args, os.Stdin, os.Stdout)
	}))
}

// HandleBox lays out text inside a border.
func HandleBox(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return writeCommand(cfg, CmdBox, args, os.Stdin, os.Stdout)
	}))
}

func withConfig(args Args, run func(*config.Config) error) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	return run(cfg)
}

// runWrite writes text on d with s and returns the block's extent.
func runWrite(ctx context.Context, d terminal.Display, text string, s layout.Settings) geometry.Location {
	return render.NewWriter(d, s).WriteSettings(ctx, text, s)
}

// boxArgs gives box a "normal" text border unless a border flag was given.
func boxArgs(args Args) Args {
	if args.Has("text-border") || args.Has("area-border") {
		return args
	}
	opts := make(map[string]string, len(args.Options)+1)
	for k, v := range args.Options {
		opts[k] = v
	}
	opts["text-border"] = "normal"
	args.Options = opts
	return args
}

func writeCommand(cfg *config.Config, cmd Command, args Args, in io.Reader, out io.Writer) error {
	if cmd == CmdBox {
		args = boxArgs(args)
	}
	s, err := buildSettings(cfg, args)
	if err != nil {
		return err
	}

	text := args.Text
	if len(args.Raw) == 0 {
		data, err := io.ReadAll(in)
		if err != nil {
			return WrapError(err, "failed to read stdin")
		}
		text = strings.TrimRight(string(data), "\r\n")
	}

	if args.Bool("live") {
		return liveWrite(cfg, args, func(d terminal.Display) {
			runWrite(context.Background(), d, text, s)
		})
	}

	b := newRenderBuffer(args, text, s)
	runWrite(context.Background(), b, text, s)
	return printLines(out, args, cmd, b)
}

// liveWrite draws on the real terminal. tcell restores the screen on exit,
// so it waits for a key first.
func liveWrite(cfg *config.Config, args Args, draw func(terminal.Display)) error {
	if !IsStdoutTTY() {
		return &TTYRequiredError{Operation: "draw live"}
	}
	d, err := openDisplay(backendFor(cfg, args))
	if err != nil {
		return err
	}
	draw(d)
	if _, ok := d.(*terminal.Screen); ok {
		d.ReadKey()
	}
	return d.Close()
}

func printLines(out io.Writer, args Args, cmd Command, b *terminal.Buffer) error {
	lines := b.Lines()
	if args.JSON {
		width, _ := b.Size()
		return NewJSONResponse(cmd.String(), RenderData{Lines: lines, Width: width}).WriteTo(out)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// MENU
// =============================================================================

// HandleMenu shows a numbered menu, optionally reading a selection.
func HandleMenu(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		if args.Bool("select") {
			return runInteractive(cfg, args, os.Stdout, "menu", func(d terminal.Display) (string, error) {
				return menuCommand(cfg, args, d)
			})
		}
		if args.Bool("live") {
			var menuErr error
			err := liveWrite(cfg, args, func(d terminal.Display) {
				_, menuErr = menuCommand(cfg, args, d)
			})
			return errors.Join(menuErr, err)
		}

		return menuRender(cfg, args, os.Stdout)
	}))
}

// menuRender draws the menu off screen and prints it.
func menuRender(cfg *config.Config, args Args, out io.Writer) error {
	s, err := buildSettings(cfg, args)
	if err != nil {
		return err
	}
	text := args.Option("title") + "\n" + strings.Join(args.Raw, "\n")
	b := terminal.NewBuffer(GetTerminalWidth(args), renderHeight(text, s)+menuHeaderRows)
	if _, err := menuCommand(cfg, args, b); err != nil {
		return err
	}
	return printLines(out, args, CmdMenu, b)
}

// menuHeaderRows is the most PrepScreen adds above the menu.
const menuHeaderRows = 5

// menuCommand draws the menu and, with --select, returns the chosen option.
func menuCommand(cfg *config.Config, args Args, d terminal.Display) (string, error) {
	options := args.Raw
	if len(options) == 0 {
		return "", ErrMissingArgument("option", "conwrite menu first second third")
	}
	s, err := buildSettings(cfg, args)
	if err != nil {
		return "", err
	}
	w := render.NewWriter(d, s)

	title := args.Option("title")
	if args.Bool("prep") {
		header := title
		if header == "" {
			header = render.DefaultMenuTitle
		}
		render.PrepScreen(w, header, args.Bool("rule"))
		title = ""
	}
	render.CreateMenu(w, options, render.MenuOptions{Title: title})

	if !args.Bool("select") {
		return "", nil
	}

	opts, err := promptOptions(cfg, args, cfg.Prompt.IntegerError)
	if err != nil {
		return "", err
	}
	if !args.Has("prompt") {
		opts.Prompt = DefaultSelectPrompt
	}
	ps := w.Settings().With(layout.WithNewLine(false), layout.AtCursor())
	opts.Settings = &ps
	n, err := prompt.New(w).Integer(prompt.IntegerOptions{
		Options:      opts,
		Limits:       &prompt.Limits{Min: 1, Max: len(options)},
		LimitsPrompt: args.Option("limits-error"),
	})
	if err != nil {
		return "", err
	}
	return options[n-1], nil
}

// =============================================================================
// PROMPTS
// =============================================================================

// HandleInput reads a line of text.
func HandleInput(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return runInteractive(cfg, args, os.Stdout, "input", func(d terminal.Display) (string, error) {
			return inputCommand(cfg, args, d)
		})
	}))
}

// HandleInteger reads an integer.
func HandleInteger(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return runInteractive(cfg, args, os.Stdout, "integer", func(d terminal.Display) (int, error) {
			return integerCommand(cfg, args, d)
		})
	}))
}

// HandleChoose reads one of the given values (or, with --disallow, anything
// but them).
func HandleChoose(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return runInteractive(cfg, args, os.Stdout, "choose", func(d terminal.Display) (string, error) {
			return chooseCommand(cfg, args, d)
		})
	}))
}

// runInteractive runs fn on the live display and prints its result once the
// display is closed.
func runInteractive[T any](cfg *config.Config, args Args, out io.Writer, command string, fn func(terminal.Display) (T, error)) error {
	if err := RequiresTTY("run " + command); err != nil {
		return err
	}
	d, err := openDisplay(backendFor(cfg, args))
	if err != nil {
		return err
	}

	value, runErr := fn(d)
	closeErr := closeDisplay(d)
	if runErr != nil {
		return runErr
	}
	if closeErr != nil {
		return WrapError(closeErr, "failed to restore terminal")
	}
	return printResult(out, args, command, value)
}

func printResult(out io.Writer, args Args, command string, value any) error {
	if args.JSON {
		var data any
		switch v := value.(type) {
		case int:
			data = IntegerData{Value: v}
		default:
			data = PromptData{Value: fmt.Sprint(v)}
		}
		return NewJSONResponse(command, data).WriteTo(out)
	}
	_, err := fmt.Fprintln(out, value)
	return err
}

// promptWriter creates a writer for prompts on d.
func promptWriter(cfg *config.Config, args Args, d terminal.Display) (*render.Writer, error) {
	s, err := buildSettings(cfg, args)
	if err != nil {
		return nil, err
	}
	return render.NewWriter(d, s), nil
}

func inputCommand(cfg *config.Config, args Args, d terminal.Display) (string, error) {
	w, err := promptWriter(cfg, args, d)
	if err != nil {
		return "", err
	}
	opts, err := promptOptions(cfg, args, "")
	if err != nil {
		return "", err
	}
	return prompt.New(w).Input(prompt.InputOptions{
		Prompt:     opts.Prompt,
		MaxLength:  opts.MaxLength,
		MaxHeight:  opts.MaxHeight,
		ClearInput: args.Bool("clear"),
	})
}

func integerCommand(cfg *config.Config, args Args, d terminal.Display) (int, error) {
	w, err := promptWriter(cfg, args, d)
	if err != nil {
		return 0, err
	}
	opts, err := promptOptions(cfg, args, cfg.Prompt.IntegerError)
	if err != nil {
		return 0, err
	}
	limits, err := integerLimits(args)
	if err != nil {
		return 0, err
	}
	return prompt.New(w).Integer(prompt.IntegerOptions{
		Options:      opts,
		Limits:       limits,
		LimitsPrompt: args.Option("limits-error"),
	})
}

func chooseCommand(cfg *config.Config, args Args, d terminal.Display) (string, error) {
	if len(args.Raw) == 0 {
		return "", ErrMissingArgument("value", "conwrite choose yes no")
	}
	w, err := promptWriter(cfg, args, d)
	if err != nil {
		return "", err
	}
	opts, err := promptOptions(cfg, args, cfg.Prompt.InvalidError)
	if err != nil {
		return "", err
	}

	choice := prompt.ChoiceOptions{
		Options:          opts,
		Values:           args.Raw,
		CaseSensitive:    cfg.Prompt.CaseSensitive,
		PreventIncorrect: cfg.Prompt.PreventIncorrect,
	}
	if args.Has("case-sensitive") {
		choice.CaseSensitive = args.Bool("case-sensitive")
	}
	if args.Has("prevent") {
		choice.PreventIncorrect = args.Bool("prevent")
	}

	c := prompt.New(w)
	if args.Bool("disallow") {
		return c.Disallowed(choice)
	}
	return c.Allowed(choice)
}

// =============================================================================
// CONFIG
// =============================================================================

// HandleConfig runs config show, path, init or get.
func HandleConfig(args Args) {
	if args.Subcommand == "init" || args.Subcommand == "path" {
		exitOnError(args, configCommand(nil, args, os.Stdout))
		return
	}
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return configCommand(cfg, args, os.Stdout)
	}))
}

// configCommand runs a config subcommand. init and path do not need cfg.
func configCommand(cfg *config.Config, args Args, out io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		data, err := config.Marshal(cfg, args.Option("format"))
		if err != nil {
			return NewValidationErrorWithExample("--format", args.Option("format"), "must be toml, json or yaml", "--format yaml")
		}
		_, err = out.Write(data)
		return err

	case "path":
		path, err := configFilePath(args)
		if err != nil {
			return err
		}
		_, statErr := os.Stat(path)
		if args.JSON {
			return NewJSONResponse("config", ConfigPathData{Path: path, Exists: statErr == nil}).WriteTo(out)
		}
		_, err = fmt.Fprintln(out, path)
		return err

	case "init":
		path, err := configFilePath(args)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !args.Bool("force") {
			return NewCommandError("config", "init", "file already exists (use --force to overwrite): "+path, nil)
		}
		if err := config.Save(config.Default(), path); err != nil {
			return NewCommandError("config", "init", "could not write "+path, err)
		}
		_, err = fmt.Fprintf(out, "%s Wrote %s\n", RenderStatus("ok"), path)
		return err

	case "get":
		if args.Text == "" {
			return ErrMissingArgument("key", "conwrite config get write.alignment")
		}
		v, err := cfg.Get(args.Text)
		if err != nil {
			return NewNotFoundError("config key", args.Text)
		}
		if args.JSON {
			return NewJSONResponse("config", ConfigValueData{Key: args.Text, Value: v}).WriteTo(out)
		}
		if v == nil {
			v = ""
		}
		_, err = fmt.Fprintf(out, "%+v\n", v)
		return err

	default:
		return NewValidationErrorWithExample("subcommand", args.Subcommand, "must be show, path, init or get", "conwrite config show")
	}
}

// configFilePath returns --config, or the default path for --format.
func configFilePath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	switch strings.ToLower(args.Option("format")) {
	case config.FormatJSON:
		return config.ConfigPathJSON()
	case config.FormatYAML, "yml":
		return config.ConfigPathYAML()
	case "":
		if args.Subcommand == "path" {
			return config.ConfigPath()
		}
	}
	return config.ConfigPathTOML()
}
