// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package input

import (
	"strings"

	"golang.org/x/text/cases"
)

// AllowedSet is a fixed set of accepted values. A case-insensitive set
// stores and compares case-folded values.
type AllowedSet struct {
	values        []string
	caseSensitive bool
}

// NewAllowedSet builds a set from values. Empty values are dropped since
// they can never be typed and committed.
func NewAllowedSet(values []string, caseSensitive bool) *AllowedSet {
	s := &AllowedSet{caseSensitive: caseSensitive}
	for _, v := range values {
		if v == "" {
			continue
		}
		s.values = append(s.values, s.Fold(v))
	}
	return s
}

// Fold returns v as the set compares it: unchanged for a case-sensitive
// set, case-folded otherwise.
func (s *AllowedSet) Fold(v string) string {
	if s.caseSensitive {
		return v
	}
	return cases.Fold().String(v)
}

// CaseSensitive reports whether the set compares values exactly.
func (s *AllowedSet) CaseSensitive() bool { return s.caseSensitive }

// Values returns the stored (folded) values.
func (s *AllowedSet) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of values.
func (s *AllowedSet) Len() int { return len(s.values) }

// Contains reports whether v, after folding, is a member.
func (s *AllowedSet) Contains(v string) bool {
	v = s.Fold(v)
	for _, member := range s.values {
		if member == v {
			return true
		}
	}
	return false
}

// HasPrefix reports whether v, after folding, is a non-empty leading part
// of some member.
func (s *AllowedSet) HasPrefix(v string) bool {
	if v == "" {
		return false
	}
	v = s.Fold(v)
	for _, member := range s.values {
		if strings.HasPrefix(member, v) {
			return true
		}
	}
	return false
}
