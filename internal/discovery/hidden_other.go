// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package discovery

// hasHiddenAttribute reports whether the filesystem marks path as hidden
// beyond the dot prefix. Only Windows has such an attribute.
func hasHiddenAttribute(string) bool { return false }
