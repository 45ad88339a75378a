// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - "Did you mean" suggestions for mistyped commands and flags.
package cli

import (
	"strings"
)

// validCommands lists every conwrite command and alias.
var validCommands = []string{
	"write", "box", "menu", "input", "integer", "choose",
	"preview", "config", "version", "help",
	// aliases
	"w", "read", "int", "choice", "repl", "cfg",
}

// SuggestCommand returns the command closest to input, or "" when nothing
// is close enough.
func SuggestCommand(input string) string {
	return closest(strings.ToLower(input), validCommands)
}

// suggestFlag returns the flag in spec closest to name (without dashes).
func suggestFlag(name string, spec FlagSpec) string {
	candidates := make([]string, 0, len(spec.Values)+len(spec.Bools))
	candidates = append(candidates, spec.Values...)
	candidates = append(candidates, spec.Bools...)
	return closest(strings.ToLower(name), candidates)
}

// closest returns the candidate with the smallest edit distance to input.
// Inputs under two characters get no suggestion, and an exact match means
// the caller has nothing to correct. The allowed distance grows with the
// input: 1 edit up to 3 runes, 2 up to 8, then 3.
func closest(input string, candidates []string) string {
	n := len([]rune(input))
	if n < 2 {
		return ""
	}
	limit := 1
	switch {
	case n > 8:
		limit = 3
	case n >= 4:
		limit = 2
	}

	best, bestDist := "", limit+1
	for _, c := range candidates {
		d := editDistance(input, c)
		if d == 0 {
			return ""
		}
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b in runes.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			next := min(row[j]+1, row[j-1]+1, diag+cost)
			diag, row[j] = row[j], next
		}
	}
	return row[len(rb)]
}
