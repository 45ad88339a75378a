// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/conwrite/internal/config"
	"github.com/jeranaias/conwrite/internal/geometry"
	"github.com/jeranaias/conwrite/internal/layout"
	"github.com/jeranaias/conwrite/internal/terminal"
)

func opts(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser(t *testing.T) {
	spec := FlagSpec{Values: []string{"min", "align"}, Bools: []string{"justify"}}

	tests := []struct {
		name     string
		args     []string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name: "value flag with space",
			args: []string{"--align", "right", "text"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "right", p.Flag("align"))
				assert.Equal(t, "text", p.Subcommand())
			},
		},
		{
			name: "value flag with equals",
			args: []string{"--align=centre"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "centre", p.Flag("align"))
			},
		},
		{
			name: "value flag takes a negative number",
			args: []string{"--min", "-5"},
			validate: func(t *testing.T, p *ArgParser) {
				n, err := p.FlagInt("min")
				require.NoError(t, err)
				assert.Equal(t, -5, n)
			},
		},
		{
			name: "bool flag does not take the next argument",
			args: []string{"--justify", "hello", "world"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("justify"))
				assert.Equal(t, []string{"hello", "world"}, p.PositionalFrom(0))
			},
		},
		{
			name: "explicit false",
			args: []string{"--justify=false"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("justify"))
				assert.True(t, p.HasFlag("justify"))
				assert.Equal(t, "false", p.Options()["justify"])
			},
		},
		{
			name: "double dash ends flags",
			args: []string{"--", "--align", "-"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, []string{"--align", "-"}, p.PositionalFrom(0))
				assert.False(t, p.HasFlag("align"))
			},
		},
		{
			name: "unknown flag",
			args: []string{"--bogus", "x"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, []string{"--bogus"}, p.Unknown())
				assert.True(t, IsValidationError(p.Err()))
			},
		},
		{
			name: "missing value",
			args: []string{"--min"},
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, IsValidationError(p.Err()))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, NewArgParser(tt.args, spec))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"true", "YES", "y", "1", "on"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"false", "no", "N", "0", "off"} {
		b, err := ParseBoolString(s)
		require.NoError(t, err, s)
		assert.False(t, b, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

// =============================================================================
// PARSE TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		wantCmd  Command
		validate func(*testing.T, Args)
	}{
		{
			name:    "no arguments shows help",
			argv:    nil,
			wantCmd: CmdHelp,
		},
		{
			name:    "write joins text",
			argv:    []string{"write", "--align", "right", "hello", "world"},
			wantCmd: CmdWrite,
			validate: func(t *testing.T, a Args) {
				assert.Equal(t, "hello world", a.Text)
				assert.Equal(t, "right", a.Option("align"))
			},
		},
		{
			name:    "global flags anywhere",
			argv:    []string{"--profile", "banner", "box", "--width=40", "hi", "-v", "--json"},
			wantCmd: CmdBox,
			validate: func(t *testing.T, a Args) {
				assert.Equal(t, "banner", a.Profile)
				assert.Equal(t, 40, a.Width)
				assert.True(t, a.Verbose)
				assert.True(t, a.JSON)
				assert.Equal(t, "hi", a.Text)
			},
		},
		{
			name:    "backend and config",
			argv:    []string{"--backend", "TCELL", "--config", "/tmp/c.yaml", "input"},
			wantCmd: CmdInput,
			validate: func(t *testing.T, a Args) {
				assert.Equal(t, "tcell", a.Backend)
				assert.Equal(t, "/tmp/c.yaml", a.ConfigPath)
			},
		},
		{
			name:    "integer limits",
			argv:    []string{"int", "--min", "-5", "--max", "5"},
			wantCmd: CmdInteger,
			validate: func(t *testing.T, a Args) {
				assert.Equal(t, "-5", a.Option("min"))
				assert.Equal(t, "5", a.Option("max"))
			},
		},
		{
			name:    "choose values",
			argv:    []string{"choose", "--prevent", "yes", "no"},
			wantCmd: CmdChoose,
			validate: func(t *testing.T, a Args) {
				assert.True(t, a.Bool("prevent"))
				assert.Equal(t, []string{"yes", "no"}, a.Raw)
			},
		},
		{
			name:    "config defaults to show",
			argv:    []string{"config"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				assert.Equal(t, "show", a.Subcommand)
			},
		},
		{
			name:    "config get",
			argv:    []string{"config", "get", "write.alignment"},
			wantCmd: CmdConfig,
			validate: func(t *testing.T, a Args) {
				assert.Equal(t, "get", a.Subcommand)
				assert.Equal(t, "write.alignment", a.Text)
			},
		},
		{
			name:    "text after double dash",
			argv:    []string{"write", "--", "--json"},
			wantCmd: CmdWrite,
			validate: func(t *testing.T, a Args) {
				assert.False(t, a.JSON)
				assert.Equal(t, "--json", a.Text)
			},
		},
		{
			name:    "version flag",
			argv:    []string{"--version"},
			wantCmd: CmdVersion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, err := ParseArgs(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCmd, cmd)
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		exitCode int
	}{
		{"unknown command", []string{"wirte", "hello"}, ExitUsageError},
		{"unknown flag", []string{"write", "--bogus"}, ExitUsageError},
		{"flag from another command", []string{"write", "--min", "3"}, ExitUsageError},
		{"missing value", []string{"write", "--align"}, ExitUsageError},
		{"bad width", []string{"--width", "wide", "write"}, ExitUsageError},
		{"missing global value", []string{"write", "--profile"}, ExitUsageError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseArgs(tt.argv)
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
		})
	}
}

func TestUnknownCommandSuggestion(t *testing.T) {
	_, _, err := ParseArgs([]string{"wirte"})
	assert.Equal(t, "write", unknownCommandSuggestion(err))
	assert.Equal(t, "", unknownCommandSuggestion(errors.New("other")))
}

func TestSuggestCommand(t *testing.T) {
	assert.Equal(t, "write", SuggestCommand("wrte"))
	assert.Equal(t, "choose", SuggestCommand("chose"))
	assert.Equal(t, "preview", SuggestCommand("preveiw"))
	assert.Equal(t, "", SuggestCommand("zzzzzzzz"))
	assert.Equal(t, "", SuggestCommand("x"))
}

func TestUnknownFlagSuggestsClosest(t *testing.T) {
	_, _, err := ParseArgs([]string{"write", "--justfy", "hi"})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "--justfy", ve.Value)
	assert.Equal(t, "--justify", ve.Example)

	_, _, err = ParseArgs([]string{"write", "--qqqqqqqq"})
	require.ErrorAs(t, err, &ve)
	assert.Empty(t, ve.Example)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "integer", CmdInteger.String())
	assert.Equal(t, "Command(99)", Command(99).String())
}

// =============================================================================
// SETTINGS TESTS (settings.go)
// =============================================================================

func TestBuildSettings_DefaultsMatchLayout(t *testing.T) {
	s, err := buildSettings(config.Default(), Args{Options: opts()})
	require.NoError(t, err)
	assert.Equal(t, layout.Default(), s)
}

func TestBuildSettings_Flags(t *testing.T) {
	s, err := buildSettings(config.Default(), Args{Options: opts(
		"align", "centre",
		"justify", "true",
		"threshold", "40",
		"padding", "1,2",
		"max-width", "40",
		"min-width", "10",
		"max-height", "3",
		"text-border", "rounded",
		"area-border", "ascii",
		"no-wrap", "true",
		"no-newline", "true",
		"no-indent", "true",
		"delay", "10",
		"at", "3,4",
	)})
	require.NoError(t, err)

	rounded, _ := geometry.Preset("rounded")
	assert.Equal(t, geometry.AlignCentre, s.Alignment)
	assert.True(t, s.Justified)
	assert.Equal(t, layout.Columns(40), s.JustifyThreshold)
	assert.Equal(t, geometry.Symmetric(1, 2), s.Padding)
	assert.Equal(t, 40, s.MaximumWidth)
	assert.Equal(t, 10, s.MinimumWidth)
	assert.Equal(t, 3, s.MaximumHeight)
	assert.Equal(t, rounded, s.TextBorder)
	assert.Equal(t, geometry.NewBorder(true), s.AreaBorder)
	assert.False(t, s.Wrap)
	assert.False(t, s.NewLine)
	assert.False(t, s.KeepIndent)
	assert.True(t, s.SlowWrite, "a delay implies slow writing")
	assert.Equal(t, 10*time.Millisecond, s.CharDelay)
	require.NotNil(t, s.Location)
	assert.Equal(t, geometry.Location{X: 3, Y: 4}, *s.Location)
}

func TestBuildSettings_FlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Write.Justify = true
	cfg.Write.SlowWrite = true

	s, err := buildSettings(cfg, Args{Options: opts("justify", "false", "slow", "false")})
	require.NoError(t, err)
	assert.False(t, s.Justified)
	assert.False(t, s.SlowWrite)
}

func TestBuildSettings_Profile(t *testing.T) {
	cfg := config.Default()
	width := 60
	right := "right"
	cfg.Profiles["wide"] = config.ProfileConfig{MaximumWidth: &width, Alignment: &right}

	s, err := buildSettings(cfg, Args{Profile: "wide", Options: opts()})
	require.NoError(t, err)
	assert.Equal(t, 60, s.MaximumWidth)
	assert.Equal(t, geometry.AlignRight, s.Alignment)

	s, err = buildSettings(cfg, Args{Profile: "wide", Options: opts("align", "left")})
	require.NoError(t, err)
	assert.Equal(t, geometry.AlignLeft, s.Alignment, "flags win over the profile")

	_, err = buildSettings(cfg, Args{Profile: "missing", Options: opts()})
	assert.True(t, IsNotFoundError(err))
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestBuildSettings_InvalidFlags(t *testing.T) {
	tests := []struct {
		flag  string
		value string
	}{
		{"align", "middle"},
		{"threshold", "lots"},
		{"padding", "1,2,3"},
		{"padding", "-1"},
		{"min-width", "-1"},
		{"max-width", "wide"},
		{"text-border", "zigzag"},
		{"at", "3"},
		{"at", "-1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.flag+"="+tt.value, func(t *testing.T) {
			_, err := buildSettings(config.Default(), Args{Options: opts(tt.flag, tt.value)})
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestParsePadding(t *testing.T) {
	p, err := parsePadding("2")
	require.NoError(t, err)
	assert.Equal(t, geometry.Uniform(2), p)

	p, err = parsePadding("1, 2, 3, 4")
	require.NoError(t, err)
	assert.Equal(t, geometry.Padding{Top: 1, Right: 2, Bottom: 3, Left: 4}, p)

	_, err = parsePadding("a,b")
	assert.Error(t, err)
}

func TestIntegerLimits(t *testing.T) {
	limits, err := integerLimits(Args{Options: opts()})
	require.NoError(t, err)
	assert.Nil(t, limits)

	limits, err = integerLimits(Args{Options: opts("max", "9")})
	require.NoError(t, err)
	assert.Equal(t, math.MinInt, limits.Min)
	assert.Equal(t, 9, limits.Max)

	_, err = integerLimits(Args{Options: opts("min", "5", "max", "1")})
	assert.True(t, IsValidationError(err))

	_, err = integerLimits(Args{Options: opts("min", "one")})
	assert.True(t, IsValidationError(err))
}

func TestPromptOptions(t *testing.T) {
	cfg := config.Default()

	o, err := promptOptions(cfg, Args{Options: opts()}, "bad")
	require.NoError(t, err)
	assert.Equal(t, "Input: ", o.Prompt)
	assert.Equal(t, "bad", o.ErrorPrompt)
	assert.Equal(t, 1, o.MaxHeight)

	o, err = promptOptions(cfg, Args{Options: opts("prompt", "Name: ", "error", "nope", "max-length", "8", "rows", "2")}, "bad")
	require.NoError(t, err)
	assert.Equal(t, "Name: ", o.Prompt)
	assert.Equal(t, "nope", o.ErrorPrompt)
	assert.Equal(t, 8, o.MaxLength)
	assert.Equal(t, 2, o.MaxHeight)

	_, err = promptOptions(cfg, Args{Options: opts("rows", "0")}, "")
	assert.True(t, IsValidationError(err))
}

// =============================================================================
// WRITE / BOX / MENU TESTS (commands.go)
// =============================================================================

func TestWriteCommand(t *testing.T) {
	var out bytes.Buffer
	args := Args{Width: 20, Raw: []string{"hello", "world"}, Text: "hello world", Options: opts()}

	require.NoError(t, writeCommand(config.Default(), CmdWrite, args, strings.NewReader(""), &out))
	assert.Equal(t, "    hello world\n", out.String())
}

func TestWriteCommand_ReadsStdin(t *testing.T) {
	var out bytes.Buffer
	args := Args{Width: 10, Options: opts("padding", "0")}

	require.NoError(t, writeCommand(config.Default(), CmdWrite, args, strings.NewReader("the quick brown fox\n"), &out))
	assert.Equal(t, "the quick\nbrown fox\n", out.String())
}

func TestWriteCommand_JSON(t *testing.T) {
	var out bytes.Buffer
	args := Args{Width: 20, JSON: true, Raw: []string{"hi"}, Text: "hi", Options: opts("padding", "0")}

	require.NoError(t, writeCommand(config.Default(), CmdWrite, args, nil, &out))

	var resp struct {
		Success bool       `json:"success"`
		Command string     `json:"command"`
		Data    RenderData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "write", resp.Command)
	assert.Equal(t, []string{"hi"}, resp.Data.Lines)
	assert.Equal(t, 20, resp.Data.Width)
}

func TestWriteCommand_InvalidFlag(t *testing.T) {
	args := Args{Width: 20, Raw: []string{"x"}, Text: "x", Options: opts("align", "up")}
	err := writeCommand(config.Default(), CmdWrite, args, nil, io.Discard)
	assert.True(t, IsValidationError(err))
}

func TestBoxCommand_DefaultsToNormalBorder(t *testing.T) {
	var out bytes.Buffer
	args := Args{Width: 20, Raw: []string{"ok"}, Text: "ok", Options: opts("padding", "0")}

	require.NoError(t, writeCommand(config.Default(), CmdBox, args, nil, &out))
	assert.Equal(t, "────\n│ok│\n────\n", out.String())
}

func TestBoxCommand_BorderFlagWins(t *testing.T) {
	var out bytes.Buffer
	args := Args{Width: 20, Raw: []string{"ok"}, Text: "ok", Options: opts("padding", "0", "text-border", "ascii")}

	require.NoError(t, writeCommand(config.Default(), CmdBox, args, nil, &out))
	assert.Equal(t, "----\n|ok|\n----\n", out.String())
}

func TestBoxArgs_DoesNotMutateCaller(t *testing.T) {
	args := Args{Options: opts("padding", "0")}
	boxed := boxArgs(args)
	assert.Equal(t, "normal", boxed.Option("text-border"))
	assert.False(t, args.Has("text-border"))
}

func TestMenuRender(t *testing.T) {
	var out bytes.Buffer
	args := Args{Width: 30, Raw: []string{"Start", "Quit"}, Options: opts("padding", "0")}

	require.NoError(t, menuRender(config.Default(), args, &out))
	assert.Equal(t, "Menu:\n1. Start\n2. Quit\n", out.String())

	out.Reset()
	args.Options["title"] = "Pick"
	require.NoError(t, menuRender(config.Default(), args, &out))
	assert.Equal(t, "Pick\n1. Start\n2. Quit\n", out.String())
}

func TestMenuCommand_RequiresOptions(t *testing.T) {
	_, err := menuCommand(config.Default(), Args{Options: opts()}, terminal.NewBuffer(20, 5))
	assert.True(t, IsValidationError(err))
}

func TestMenuCommand_Select(t *testing.T) {
	b := terminal.NewBuffer(30, 10)
	b.FeedString("5\r2\r")
	args := Args{Raw: []string{"Start", "Quit"}, Options: opts("padding", "0", "select", "true")}

	value, err := menuCommand(config.Default(), args, b)
	require.NoError(t, err)
	assert.Equal(t, "Quit", value)
	assert.Equal(t, "Menu:", b.Row(0))
	assert.True(t, strings.HasPrefix(b.Row(3), "Select:"))
}

// =============================================================================
// PROMPT COMMAND TESTS (commands.go)
// =============================================================================

func TestInputCommand(t *testing.T) {
	b := terminal.NewBuffer(40, 5)
	b.FeedString("hello\r")

	value, err := inputCommand(config.Default(), Args{Options: opts("padding", "0")}, b)
	require.NoError(t, err)
	assert.Equal(t, "hello", value)
	assert.Equal(t, "Input: hello", b.Row(0))
}

func TestIntegerCommand(t *testing.T) {
	b := terminal.NewBuffer(40, 6)
	b.FeedString("abc\r42\r7\r")
	args := Args{Options: opts("padding", "0", "prompt", "Number: ", "min", "1", "max", "10")}

	n, err := integerCommand(config.Default(), args, b)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestIntegerCommand_InterruptedExitCode(t *testing.T) {
	b := terminal.NewBuffer(40, 6)
	b.FailWith(terminal.ErrInterrupted)

	_, err := integerCommand(config.Default(), Args{Options: opts("padding", "0")}, b)
	require.Error(t, err)
	assert.Equal(t, ExitInterrupted, GetExitCode(err))
}

func TestChooseCommand(t *testing.T) {
	b := terminal.NewBuffer(40, 6)
	b.FeedString("maybe\rYES\r")

	value, err := chooseCommand(config.Default(), Args{Raw: []string{"Yes", "No"}, Options: opts("padding", "0")}, b)
	require.NoError(t, err)
	assert.Equal(t, "yes", value)
}

func TestChooseCommand_Disallow(t *testing.T) {
	b := terminal.NewBuffer(40, 6)
	b.FeedString("root\rbob\r")
	args := Args{Raw: []string{"root"}, Options: opts("padding", "0", "disallow", "true")}

	value, err := chooseCommand(config.Default(), args, b)
	require.NoError(t, err)
	assert.Equal(t, "bob", value)
}

func TestChooseCommand_RequiresValues(t *testing.T) {
	_, err := chooseCommand(config.Default(), Args{Options: opts()}, terminal.NewBuffer(20, 4))
	assert.True(t, IsValidationError(err))
}

func TestPrintResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printResult(&out, Args{}, "integer", 7))
	assert.Equal(t, "7\n", out.String())

	out.Reset()
	require.NoError(t, printResult(&out, Args{JSON: true}, "integer", 7))
	var resp struct {
		Data IntegerData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 7, resp.Data.Value)

	out.Reset()
	require.NoError(t, printResult(&out, Args{JSON: true}, "input", "abc"))
	assert.Contains(t, out.String(), `"value": "abc"`)
}

// =============================================================================
// CONFIG COMMAND TESTS (commands.go)
// =============================================================================

func TestConfigCommand_InitPathShow(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	want := filepath.Join(home, ".conwrite", "config.toml")

	var out bytes.Buffer
	require.NoError(t, configCommand(nil, Args{Subcommand: "init", Options: opts()}, &out))
	assert.Contains(t, out.String(), want)
	_, err := os.Stat(want)
	require.NoError(t, err)

	err = configCommand(nil, Args{Subcommand: "init", Options: opts()}, io.Discard)
	var cmdErr *CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.NoError(t, configCommand(nil, Args{Subcommand: "init", Options: opts("force", "true")}, io.Discard))

	out.Reset()
	require.NoError(t, configCommand(nil, Args{Subcommand: "path", Options: opts()}, &out))
	assert.Equal(t, want+"\n", out.String())

	cfg, err := config.LoadFromPath(want)
	require.NoError(t, err)
	out.Reset()
	require.NoError(t, configCommand(cfg, Args{Subcommand: "show", Options: opts("format", "json")}, &out))
	assert.Contains(t, out.String(), `"backend": "auto"`)
}

func TestConfigCommand_InitWithFormat(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, configCommand(nil, Args{Subcommand: "init", Options: opts("format", "yaml")}, io.Discard))
	_, err := config.LoadFromPath(filepath.Join(home, ".conwrite", "config.yaml"))
	assert.NoError(t, err)
}

func TestConfigCommand_Get(t *testing.T) {
	cfg := config.Default()

	var out bytes.Buffer
	require.NoError(t, configCommand(cfg, Args{Subcommand: "get", Text: "write.alignment", Options: opts()}, &out))
	assert.Equal(t, "left\n", out.String())

	out.Reset()
	require.NoError(t, configCommand(cfg, Args{Subcommand: "get", Text: "prompt.max_height", JSON: true, Options: opts()}, &out))
	assert.Contains(t, out.String(), `"key": "prompt.max_height"`)

	err := configCommand(cfg, Args{Subcommand: "get", Text: "write.nope", Options: opts()}, io.Discard)
	assert.True(t, IsNotFoundError(err))

	err = configCommand(cfg, Args{Subcommand: "get", Options: opts()}, io.Discard)
	assert.True(t, IsValidationError(err))
}

func TestConfigCommand_Errors(t *testing.T) {
	cfg := config.Default()

	err := configCommand(cfg, Args{Subcommand: "show", Options: opts("format", "xml")}, io.Discard)
	assert.True(t, IsValidationError(err))

	err = configCommand(cfg, Args{Subcommand: "explode", Options: opts()}, io.Discard)
	assert.True(t, IsValidationError(err))
}

// =============================================================================
// PREVIEW TESTS (preview.go)
// =============================================================================

func TestPreviewer_RendersAndChangesSettings(t *testing.T) {
	var out bytes.Buffer
	p := newPreviewer(config.Default(), Args{Width: 20, Options: opts("padding", "0")}, &out)

	quit, err := p.handle("hi")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), strings.Repeat("-", 20))
	assert.Contains(t, out.String(), "\nhi\n")

	_, err = p.handle(":align right")
	require.NoError(t, err)
	out.Reset()
	_, err = p.handle("hi")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\n"+strings.Repeat(" ", 18)+"hi\n")
}

func TestPreviewer_RejectsInvalidChangeAndKeepsPrevious(t *testing.T) {
	var out bytes.Buffer
	p := newPreviewer(config.Default(), Args{Width: 20, Options: opts("padding", "0")}, &out)

	_, err := p.handle(":align right")
	require.NoError(t, err)
	_, err = p.handle(":align sideways")
	assert.True(t, IsValidationError(err))

	_, args := p.current()
	assert.Equal(t, "right", args.Option("align"))
}

func TestPreviewer_Commands(t *testing.T) {
	var out bytes.Buffer
	p := newPreviewer(config.Default(), Args{Width: 20, Options: opts()}, &out)

	_, err := p.handle(":width 30")
	require.NoError(t, err)
	_, err = p.handle(":justify on")
	require.NoError(t, err)
	_, err = p.handle(":show")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "30")
	assert.Contains(t, out.String(), "justify      true")

	_, err = p.handle(":reset")
	require.NoError(t, err)
	_, args := p.current()
	assert.Equal(t, 20, args.Width)
	assert.False(t, args.Has("justify"))

	_, err = p.handle(":width zero")
	assert.Error(t, err)
	_, err = p.handle(":bogus")
	assert.Error(t, err)
	_, err = p.handle(":profile missing")
	assert.True(t, IsNotFoundError(err))
	_, err = p.handle(":justify perhaps")
	assert.Error(t, err)

	quit, err := p.handle(":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}

func TestPreviewer_SetConfig(t *testing.T) {
	var out bytes.Buffer
	p := newPreviewer(config.Default(), Args{Width: 10, Options: opts("padding", "0")}, &out)

	cfg := config.Default()
	cfg.Write.Alignment = "right"
	p.setConfig(cfg)

	_, err := p.handle("ab")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\n        ab\n")
}

func TestCompletePreview(t *testing.T) {
	assert.Equal(t, []string{":justify"}, completePreview(":ju"))
	assert.Equal(t, []string{":width"}, completePreview(":wi"))
	assert.Nil(t, completePreview("text"))
	assert.Nil(t, completePreview(":align r"))
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"validation", NewValidationError("x", "y", "z"), ExitUsageError},
		{"unknown command", &UnknownCommandError{Name: "x"}, ExitUsageError},
		{"tty", &TTYRequiredError{Operation: "read"}, ExitTTYError},
		{"not found", NewNotFoundError("profile", "x"), ExitNotFoundError},
		{"interrupted", fmt.Errorf("prompt abc: %w", terminal.ErrInterrupted), ExitInterrupted},
		{"end of input", fmt.Errorf("prompt abc: %w", io.EOF), ExitNoInput},
		{"config validation", fmt.Errorf("invalid config: %w", config.ValidateErrors{{Field: "backend", Message: "bad"}}), ExitConfigError},
		{"generic", errors.New("boom"), ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetExitCode(tt.err))
		})
	}
}

func TestDisplayErrorJSON(t *testing.T) {
	var out bytes.Buffer
	DisplayErrorJSON(&out, WrapError(NewValidationErrorWithExample("--align", "up", "bad", "--align left"), "write"))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, false, got["success"])
	assert.Equal(t, "validation_error", got["error_type"])
	assert.Equal(t, "--align", got["field"])
	assert.Equal(t, float64(ExitUsageError), got["exit_code"])
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationErrorWithExample("--rows", "0", "must be at least 1", "--rows 2")
	assert.Equal(t, "invalid --rows: must be at least 1 (got: 0)\nExample: --rows 2", err.Error())
}
