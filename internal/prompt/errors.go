// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package prompt

import (
	"errors"
	"fmt"
)

// Default error messages.
const (
	DefaultIntegerError = "Input must be an integer"
	DefaultInvalidError = "Input is invalid"
)

// ValidationError rejects a captured value. Message is what the user sees.
type ValidationError struct {
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Value, e.Message)
}

// Reject returns a ValidationError for value.
func Reject(value, message string) error {
	return &ValidationError{Value: value, Message: message}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// CaptureError is returned when the display stops delivering keys during a
// prompt. Session matches the id in the prompt's log lines.
type CaptureError struct {
	Session string
	Err     error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("prompt %s: %v", e.Session, e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// LimitsMessage is the default message for an integer outside [min, max].
func LimitsMessage(min, max int) string {
	return fmt.Sprintf("Integer must be %d or greater and %d or less", min, max)
}
