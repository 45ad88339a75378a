// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and the version/help handlers for conwrite.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdHelp Command = iota
	CmdWrite
	CmdBox
	CmdMenu
	CmdInput
	CmdInteger
	CmdChoose
	CmdPreview
	CmdConfig
	CmdVersion
)

var commandNames = map[Command]string{
	CmdHelp:    "help",
	CmdWrite:   "write",
	CmdBox:     "box",
	CmdMenu:    "menu",
	CmdInput:   "input",
	CmdInteger: "integer",
	CmdChoose:  "choose",
	CmdPreview: "preview",
	CmdConfig:  "config",
	CmdVersion: "version",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "Command(" + strconv.Itoa(int(c)) + ")"
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Profile    string
	Backend    string
	Verbose    bool
	Width      int
	JSON       bool

	// Command-specific
	Subcommand string
	Text       string

	// Raw holds the command's positional arguments.
	Raw []string

	// Options holds command-specific named options (e.g., --align, --min).
	// Bool flags are stored as "true" or "false".
	Options map[string]string
}

// Option returns a named option, or "".
func (a Args) Option(name string) string {
	return a.Options[name]
}

// Bool reports whether a bool option was set to true.
func (a Args) Bool(name string) bool {
	return a.Options[name] == "true"
}

// Has reports whether an option was given.
func (a Args) Has(name string) bool {
	_, ok := a.Options[name]
	return ok
}

const usageText = `conwrite - lay out text and read bounded input on a terminal

Usage:
  conwrite write [text...]      Lay out text (reads stdin when no text is given)
  conwrite box [text...]        Lay out text inside a border
  conwrite menu <option...>     Show a numbered menu (--select to pick one)
  conwrite input                Read a line of text
  conwrite integer              Read an integer (--min/--max bound it)
  conwrite choose <value...>    Read one of the given values
  conwrite preview              Interactive layout preview
  conwrite config [show|path|init|get <key>]
  conwrite version              Show version
  conwrite help                 Show this help

Global flags:
  --config <path>     Config file (default ~/.conwrite/config.toml)
  --profile <name>    Layout profile from the config
  --backend <name>    Display backend: auto, ansi or tcell
  --width <n>         Render width for piped output
  --json              JSON output for results
  -v, --verbose       Log to stderr

Layout flags (write, box, menu, input, integer, choose, preview):
  --align <left|centre|right>   --justify        --threshold <70%%|n>
  --min-width <n>   --max-width <n>   --max-height <n>
  --padding <n|v,h|t,r,b,l>     --area-border <style>   --text-border <style>
  --no-wrap   --no-newline   --no-indent   --at <x,y>
  --slow      --delay <ms>   --live

Prompt flags:
  --prompt <text>   --error <text>   --limits-error <text>
  --min <n>   --max <n>   --max-length <n>   --rows <n>
  --case-sensitive   --prevent   --disallow   --clear

Border styles: none, ascii, normal, rounded, thick, double, block, hidden

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	printVersion(os.Stdout)
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "conwrite version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// =============================================================================
// FLAG SETS
// =============================================================================

var (
	layoutFlags = FlagSpec{
		Values: []string{"align", "threshold", "min-width", "max-width", "max-height",
			"padding", "area-border", "text-border", "delay", "at"},
		Bools: []string{"justify", "no-wrap", "no-newline", "no-indent", "slow", "live"},
	}
	promptFlags = FlagSpec{
		Values: []string{"prompt", "error", "max-length", "rows"},
	}

	commandFlags = map[Command]FlagSpec{
		CmdWrite:   layoutFlags,
		CmdBox:     layoutFlags,
		CmdMenu:    layoutFlags.Merge(FlagSpec{Values: []string{"title"}, Bools: []string{"select", "prep", "rule"}}),
		CmdInput:   layoutFlags.Merge(promptFlags).Merge(FlagSpec{Bools: []string{"clear"}}),
		CmdInteger: layoutFlags.Merge(promptFlags).Merge(FlagSpec{Values: []string{"min", "max", "limits-error"}}),
		CmdChoose:  layoutFlags.Merge(promptFlags).Merge(FlagSpec{Bools: []string{"case-sensitive", "prevent", "disallow"}}),
		CmdPreview: layoutFlags.Merge(FlagSpec{Bools: []string{"watch"}}),
		CmdConfig:  {Values: []string{"format"}, Bools: []string{"force"}},
		CmdVersion: {},
		CmdHelp:    {},
	}
)

// =============================================================================
// PARSING
// =============================================================================

// Parse parses os.Args. Usage errors are printed and exit the process.
func Parse() (Command, Args) {
	cmd, args, err := ParseArgs(os.Args[1:])
	if err != nil {
		if suggestion := unknownCommandSuggestion(err); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean: conwrite %s\n", suggestion)
		}
		HandleErrorAndExit(err, args.JSON)
	}
	return cmd, args
}

// ParseArgs parses the arguments after the program name.
func ParseArgs(argv []string) (Command, Args, error) {
	remaining, parsedArgs, err := parseGlobalFlags(argv)
	if err != nil {
		return CmdHelp, parsedArgs, err
	}

	if len(remaining) == 0 {
		return CmdHelp, parsedArgs, nil
	}

	name := strings.ToLower(remaining[0])
	remaining = remaining[1:]

	var cmd Command
	switch name {
	case "write", "w":
		cmd = CmdWrite
	case "box":
		cmd = CmdBox
	case "menu":
		cmd = CmdMenu
	case "input", "read":
		cmd = CmdInput
	case "integer", "int":
		cmd = CmdInteger
	case "choose", "choice":
		cmd = CmdChoose
	case "preview", "repl":
		cmd = CmdPreview
	case "config", "cfg":
		cmd = CmdConfig
	case "version", "--version":
		cmd = CmdVersion
	case "help", "--help", "-h":
		cmd = CmdHelp
	default:
		return CmdHelp, parsedArgs, &UnknownCommandError{Name: name}
	}

	parser := NewArgParser(remaining, commandFlags[cmd])
	if err := parser.Err(); err != nil {
		return cmd, parsedArgs, err
	}

	parsedArgs.Options = parser.Options()
	parsedArgs.Raw = parser.PositionalFrom(0)
	parsedArgs.Subcommand = parser.Subcommand()

	switch cmd {
	case CmdWrite, CmdBox:
		parsedArgs.Text = strings.Join(parsedArgs.Raw, " ")
	case CmdConfig:
		if parsedArgs.Subcommand == "" {
			parsedArgs.Subcommand = "show"
		}
		if parsedArgs.Subcommand == "get" {
			parsedArgs.Text = parser.Positional(1)
		}
	}

	return cmd, parsedArgs, nil
}

// parseGlobalFlags pulls global flags out of args wherever they appear,
// stopping at "--".
func parseGlobalFlags(args []string) ([]string, Args, error) {
	var remaining []string
	parsedArgs := Args{
		Options: make(map[string]string),
	}

	value := func(i *int, name string) (string, error) {
		if *i+1 >= len(args) {
			return "", ErrMissingArgument(name, name+" <value>")
		}
		*i++
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i:]...)
			break
		}

		name, inline, hasInline := strings.Cut(arg, "=")
		var err error
		get := func() string {
			if hasInline {
				return inline
			}
			var v string
			v, err = value(&i, name)
			return v
		}

		switch name {
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--config":
			parsedArgs.ConfigPath = get()
		case "--profile":
			parsedArgs.Profile = get()
		case "--backend":
			parsedArgs.Backend = strings.ToLower(get())
		case "--width":
			raw := get()
			if err == nil {
				n, convErr := strconv.Atoi(raw)
				if convErr != nil || n <= 0 {
					err = NewValidationErrorWithExample("--width", raw, "must be a positive integer", "--width 80")
				}
				parsedArgs.Width = n
			}
		default:
			remaining = append(remaining, arg)
		}
		if err != nil {
			return nil, parsedArgs, err
		}
	}

	return remaining, parsedArgs, nil
}

// =============================================================================
// VERSION AND HELP
// =============================================================================

// VersionData is the JSON form of the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// HandleVersion prints version information.
func HandleVersion() {
	PrintVersion()
}

// HandleVersionWithJSON prints version information, as JSON when asked.
func HandleVersionWithJSON(args Args) {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		resp := NewJSONResponse("version", data)
		resp.Print()
		return
	}
	PrintVersion()
}

// HandleHelp prints usage.
func HandleHelp() {
	PrintUsage()
}
