// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// preview.go - Interactive layout preview.
//
// Command: preview
// Aliases: repl
//
// Every line typed is laid out with the current settings and printed.
// Lines starting with ':' change the settings:
//
//	:align right        any layout flag, e.g. :max-width 40, :text-border rounded
//	:justify on         bool flags take on/off
//	:width 60           render width
//	:profile banner     switch config profile
//	:show               print the current settings
//	:reset              drop every change made in this session
//	:quit               exit (Ctrl-D and Ctrl-C also exit)
//
// With --watch the config file is reloaded whenever it changes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/peterh/liner"

	"github.com/jeranaias/conwrite/internal/config"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/util"
)

// PreviewPrompt is the liner prompt shown by preview.
const PreviewPrompt = "conwrite> "

// previewKeyWidth is the name column width of :show.
const previewKeyWidth = 12

// previewer holds the preview session's settings.
type previewer struct {
	mu        sync.Mutex
	cfg       *config.Config
	base      Args
	args      Args
	overrides map[string]string
	out       io.Writer
}

func newPreviewer(cfg *config.Config, args Args, out io.Writer) *previewer {
	return &previewer{
		cfg:       cfg,
		base:      args,
		args:      args,
		overrides: make(map[string]string),
		out:       out,
	}
}

// setConfig swaps in a reloaded config.
func (p *previewer) setConfig(cfg *config.Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}

// current returns the config and the args with session overrides applied.
func (p *previewer) current() (*config.Config, Args) {
	p.mu.Lock()
	defer p.mu.Unlock()
	args := p.args
	args.Options = make(map[string]string, len(p.args.Options)+len(p.overrides))
	for k, v := range p.args.Options {
		args.Options[k] = v
	}
	for k, v := range p.overrides {
		args.Options[k] = v
	}
	return p.cfg, args
}

// handle processes one input line and reports whether the session is over.
func (p *previewer) handle(line string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		return false, p.render(line)
	}

	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return false, nil
	}
	name, value := fields[0], strings.Join(fields[1:], " ")

	switch name {
	case "q", "quit", "exit":
		return true, nil
	case "help", "h":
		p.printHelp()
		return false, nil
	case "show":
		return false, p.show()
	case "reset":
		p.mu.Lock()
		p.overrides = make(map[string]string)
		p.args = p.base
		p.mu.Unlock()
		return false, nil
	case "width":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return false, NewValidationErrorWithExample("width", value, "must be a positive integer", ":width 60")
		}
		p.mu.Lock()
		p.args.Width = n
		p.mu.Unlock()
		return false, nil
	case "profile":
		return false, p.apply(func() { p.args.Profile = value })
	}

	switch {
	case layoutFlags.isValue(name):
		if value == "" {
			return false, ErrMissingArgument(name, ":"+name+" <value>")
		}
		return false, p.apply(func() { p.overrides[name] = value })
	case layoutFlags.isBool(name):
		on := true
		if value != "" {
			b, err := ParseBoolString(value)
			if err != nil {
				return false, NewValidationErrorWithExample(name, value, "must be on or off", ":"+name+" on")
			}
			on = b
		}
		return false, p.apply(func() { p.overrides[name] = strconv.FormatBool(on) })
	}
	return false, NewValidationErrorWithExample("preview command", name, "unknown command", ":help")
}

// apply makes a change and keeps it only if the settings still resolve.
func (p *previewer) apply(change func()) error {
	p.mu.Lock()
	savedOverrides := make(map[string]string, len(p.overrides))
	for k, v := range p.overrides {
		savedOverrides[k] = v
	}
	savedArgs := p.args
	change()
	p.mu.Unlock()

	cfg, args := p.current()
	if _, err := buildSettings(cfg, args); err != nil {
		p.mu.Lock()
		p.overrides = savedOverrides
		p.args = savedArgs
		p.mu.Unlock()
		return err
	}
	return nil
}

// render lays out text at the current width and prints it under a rule.
func (p *previewer) render(text string) error {
	cfg, args := p.current()
	s, err := buildSettings(cfg, args)
	if err != nil {
		return err
	}
	s = s.With(layout.WithSlowWrite(false, 0))

	b := newRenderBuffer(args, text, s)
	runWrite(context.Background(), b, text, s)

	width, _ := b.Size()
	fmt.Fprintln(p.out, RenderSeparator(width))
	for _, line := range b.Lines() {
		fmt.Fprintln(p.out, line)
	}
	fmt.Fprintln(p.out, RenderSeparator(width))
	return nil
}

func (p *previewer) show() error {
	cfg, args := p.current()
	w, err := writeConfigFor(cfg, args)
	if err != nil {
		return err
	}
	profile := args.Profile
	if profile == "" {
		profile = cfg.Profile
	}
	if profile == "" {
		profile = "(none)"
	}

	fmt.Fprintf(p.out, "%s\n", TitleStyle.Render("Preview settings"))
	rows := [][2]string{
		{"profile", profile},
		{"width", strconv.Itoa(GetTerminalWidth(args))},
		{"align", w.Alignment},
		{"wrap", strconv.FormatBool(w.Wrap)},
		{"justify", strconv.FormatBool(w.Justify)},
		{"threshold", w.JustifyThreshold},
		{"min-width", strconv.Itoa(w.MinimumWidth)},
		{"max-width", strconv.Itoa(w.MaximumWidth)},
		{"max-height", strconv.Itoa(w.MaximumHeight)},
		{"padding", fmt.Sprintf("%d,%d,%d,%d", w.Padding.Top, w.Padding.Right, w.Padding.Bottom, w.Padding.Left)},
		{"area-border", orNone(w.AreaBorder)},
		{"text-border", orNone(w.TextBorder)},
	}
	valueWidth := max(GetTerminalWidth(args)-previewKeyWidth-3, 8)
	for _, row := range rows {
		fmt.Fprintf(p.out, "  %s %s\n", util.PadRight(row[0], previewKeyWidth), util.TruncateWidth(row[1], valueWidth))
	}
	return nil
}

func orNone(border string) string {
	if border == "" {
		return config.BorderNone
	}
	return border
}

func (p *previewer) printHelp() {
	fmt.Fprintln(p.out, "Type text to lay it out. Commands:")
	for _, c := range previewCommands() {
		fmt.Fprintln(p.out, "  :"+c)
	}
}

// previewCommands lists every ':' command, sorted.
func previewCommands() []string {
	cmds := []string{"quit", "help", "show", "reset", "width", "profile"}
	cmds = append(cmds, layoutFlags.Values...)
	cmds = append(cmds, layoutFlags.Bools...)
	sort.Strings(cmds)
	return cmds
}

// completePreview completes ':' commands for liner.
func completePreview(line string) []string {
	if !strings.HasPrefix(line, ":") || strings.Contains(line, " ") {
		return nil
	}
	var out []string
	for _, c := range previewCommands() {
		if strings.HasPrefix(":"+c, line) {
			out = append(out, ":"+c)
		}
	}
	return out
}

// =============================================================================
// REPL
// =============================================================================

// HandlePreview runs the interactive preview.
func HandlePreview(args Args) {
	exitOnError(args, withConfig(args, func(cfg *config.Config) error {
		return previewLoop(cfg, args)
	}))
}

func previewLoop(cfg *config.Config, args Args) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: "preview"}
	}
	p := newPreviewer(cfg, args, os.Stdout)

	if args.Bool("watch") {
		path := args.ConfigPath
		if path == "" {
			var err error
			if path, err = config.ConfigPath(); err != nil {
				return err
			}
		}
		w := config.NewWatcher(path, 0)
		w.OnChange(func(c *config.Config) {
			p.setConfig(c)
			fmt.Fprintln(os.Stderr, DimStyle.Render("config reloaded"))
		})
		w.OnError(func(err error) {
			fmt.Fprintln(os.Stderr, WarningStyle.Render(err.Error()))
		})
		if _, err := w.Start(); err != nil {
			return WrapError(err, "failed to watch config")
		}
		defer w.Close()
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completePreview)

	historyFile := previewHistoryPath()
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer savePreviewHistory(line, historyFile)

	fmt.Println(DimStyle.Render("Type text to preview it, :help for commands, :quit to exit."))
	for {
		text, err := line.Prompt(PreviewPrompt)
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return WrapError(err, "failed to read input")
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}

		quit, err := p.handle(text)
		if err != nil {
			displayError(os.Stdout, err)
		}
		if quit {
			return nil
		}
	}
}

// previewHistoryPath returns the history file in the config directory, or
// "" when there is no home directory.
func previewHistoryPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "preview_history")
}

func savePreviewHistory(line *liner.State, path string) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}

