// SPDX-License-Identifier: MPL-2.0

// Package issue holds the user-facing side of gradlewire errors: the
// ActionableError type with its builder, and a set of Markdown troubleshooting
// guides rendered with glamour.
package issue
