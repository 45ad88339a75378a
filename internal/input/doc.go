// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package input captures keystrokes into a bounded, echoed line buffer.
//
// An Editor accepts at most MaxLength x MaxHeight characters. The echo wraps
// to the next row at the capture's starting column every MaxLength
// characters, and backspace undoes that wrap. Enter commits.
//
// CaptureAllowed additionally rejects any keystroke that would leave the
// buffer unable to complete into a member of an AllowedSet, and refuses to
// commit until the buffer is an exact member.
package input
