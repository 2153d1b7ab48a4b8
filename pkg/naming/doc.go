// SPDX-License-Identifier: MPL-2.0

// Package naming derives Gradle project identifiers from directory structure.
//
// A discovered module directory is turned into a ModuleContext holding three
// segment lists:
//   - path segments: the raw directory components relative to the repository root
//   - name segments: normalized lowercase tokens used for the project name and path
//   - package segments: the source package directory (group segments followed by
//     the name segments, without repeating the group's trailing segment)
//
// The same splitting rules are used to derive deterministic catalog names.
package naming
