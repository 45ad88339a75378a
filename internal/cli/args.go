// args.go - Command flag parsing shared by every conwrite command.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// FLAG SPEC
// =============================================================================

// FlagSpec names the flags a command understands. Value flags always take
// the next argument, even when it starts with a dash, so "--min -5" works.
// Bool flags never take one.
type FlagSpec struct {
	Values []string
	Bools  []string
}

// Merge returns a spec accepting the flags of both.
func (s FlagSpec) Merge(other FlagSpec) FlagSpec {
	return FlagSpec{
		Values: append(append([]string{}, s.Values...), other.Values...),
		Bools:  append(append([]string{}, s.Bools...), other.Bools...),
	}
}

func (s FlagSpec) isValue(name string) bool { return contains(s.Values, name) }

func (s FlagSpec) isBool(name string) bool { return contains(s.Bools, name) }

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits a command's arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Boolean flags: --flag, --flag=true, --flag=false
//   - "--" ends flag parsing; everything after it is positional
//   - Positional arguments: the first one is the subcommand
type ArgParser struct {
	subcommand string
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
	unknown    []string
	missing    []string
	raw        []string
	spec       FlagSpec
}

// NewArgParser parses raw against spec. Flags spec does not name are
// recorded and reported by Unknown.
//
// Example:
//
//	p := NewArgParser([]string{"--align", "right", "--justify", "hello"}, spec)
//	p.Flag("align")       // "right"
//	p.BoolFlag("justify") // true
//	p.Positional(0)       // "hello"
func NewArgParser(raw []string, spec FlagSpec) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
		raw:        raw,
		spec:       spec,
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]
		i++

		if arg == "--" {
			parser.positional = append(parser.positional, raw[i:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			parser.positional = append(parser.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		value, hasValue := "", false
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			name, value, hasValue = name[:eq], name[eq+1:], true
		}

		switch {
		case spec.isBool(name):
			on := true
			if hasValue {
				b, err := ParseBoolString(value)
				if err != nil {
					parser.unknown = append(parser.unknown, arg)
					continue
				}
				on = b
			}
			parser.boolFlags[name] = on

		case spec.isValue(name):
			if !hasValue {
				if i >= len(raw) {
					parser.missing = append(parser.missing, name)
					continue
				}
				value = raw[i]
				i++
			}
			parser.flags[name] = value

		default:
			parser.unknown = append(parser.unknown, "--"+name)
		}
	}

	if len(parser.positional) > 0 {
		parser.subcommand = parser.positional[0]
	}
	return parser
}

// Subcommand returns the first positional argument, or "".
func (p *ArgParser) Subcommand() string {
	return p.subcommand
}

// Flag returns the value of a value flag, or "".
func (p *ArgParser) Flag(name string) string {
	return p.flags[strings.TrimLeft(name, "-")]
}

// FlagOrDefault returns the flag value or a default if not given.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// FlagInt returns the flag value as an integer.
func (p *ArgParser) FlagInt(name string) (int, error) {
	val := p.Flag(name)
	if val == "" {
		return 0, fmt.Errorf("flag %s not found", name)
	}
	return strconv.Atoi(val)
}

// BoolFlag reports whether a bool flag was given and true.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[strings.TrimLeft(name, "-")]
}

// HasFlag returns true if the flag was given at all.
func (p *ArgParser) HasFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	_, hasString := p.flags[name]
	_, hasBool := p.boolFlags[name]
	return hasString || hasBool
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// PositionalFrom returns the positional arguments from index on.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// PositionalCount returns the number of positional arguments.
func (p *ArgParser) PositionalCount() int {
	return len(p.positional)
}

// Unknown returns the flags that were not in the spec.
func (p *ArgParser) Unknown() []string {
	return p.unknown
}

// Raw returns the original arguments.
func (p *ArgParser) Raw() []string {
	return p.raw
}

// Err reports the first unknown flag or value flag without a value.
func (p *ArgParser) Err() error {
	if len(p.unknown) > 0 {
		flag := p.unknown[0]
		name, _, _ := strings.Cut(strings.TrimLeft(flag, "-"), "=")
		if s := suggestFlag(name, p.spec); s != "" {
			return NewValidationErrorWithExample("flag", flag, "unknown flag", "--"+s)
		}
		return NewValidationError("flag", flag, "unknown flag")
	}
	if len(p.missing) > 0 {
		return ErrMissingArgument("--"+p.missing[0], "--"+p.missing[0]+" <value>")
	}
	return nil
}

// Options copies every flag into a map. Bool flags are stored as "true" or
// "false".
func (p *ArgParser) Options() map[string]string {
	opts := make(map[string]string, len(p.flags)+len(p.boolFlags))
	for k, v := range p.flags {
		opts[k] = v
	}
	for k, v := range p.boolFlags {
		opts[k] = strconv.FormatBool(v)
	}
	return opts
}

// FlagNames returns the names of every flag given, sorted.
func (p *ArgParser) FlagNames() []string {
	names := make([]string, 0, len(p.flags)+len(p.boolFlags))
	for k := range p.flags {
		names = append(names, k)
	}
	for k := range p.boolFlags {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// HELPER FUNCTIONS FOR COMMON ARG PATTERNS
// =============================================================================

// ParseBoolString parses a boolean from various string representations.
// Accepts: true/false, yes/no, y/n, 1/0, on/off (case-insensitive)
func ParseBoolString(s string) (bool, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch s {
	case "true", "yes", "y", "1", "on":
		return true, nil
	case "false", "no", "n", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value: %s", s)
	}
}

// parseIntList parses "1", "1,4" or "1,4,1,4" style lists.
func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
