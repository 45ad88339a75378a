// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prompt runs "write prompt, capture, validate, retry" loops on top
// of render and input.
//
// # Key Types
//
//   - Coordinator: owns a render.Writer and runs prompts on its display
//   - Options: prompt text, error text, write settings and input bounds
//     shared by every prompt kind
//   - ValidationError: a rejected value and the message shown for it
//
// # Prompt Kinds
//
//   - Input: unchecked text, optionally cleared after capture
//   - Integer: an int, optionally within inclusive Limits
//   - Allowed: one of a fixed set of values, optionally typed with prefix
//     validation so wrong keys are never echoed
//   - Disallowed: anything except a fixed set of values
//   - Validated: any caller-supplied check
//
// # Error Display
//
// When a value is rejected the captured input is blanked, any previous
// error is cleared and the new message is written two rows below the
// prompt (or at Options.ErrorSettings). The error is cleared once a valid
// value is entered. Bad input is never returned as an error; only display
// failures such as io.EOF or terminal.ErrInterrupted are.
//
// # Usage
//
//	c := prompt.New(render.NewWriter(display, layout.Default()))
//	age, err := c.Integer(prompt.IntegerOptions{
//	    Options: prompt.Options{Prompt: "Age: "},
//	    Limits:  &prompt.Limits{Min: 0, Max: 130},
//	})
package prompt
