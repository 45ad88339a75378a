// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the conwrite packages.
//
// # Key Functions
//
// String Utilities:
//   - StringWidth: display width in terminal columns
//   - TruncateWidth: width-aware truncation with ellipsis
//   - PadRight: width-aware right padding for aligned columns
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Align a help table
//	line := util.PadRight(name, 12) + summary
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0644)
package util
