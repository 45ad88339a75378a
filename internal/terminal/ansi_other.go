// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !unix

package terminal

// pollInput cannot peek the console without blocking here, so slow writes
// run to completion. Use the tcell backend for skippable output.
func pollInput(fd int) bool { return false }
