// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"slices"
	"strings"
)

var nameSplit = SplitOptions{NonAlphaNumeric: true, CamelCase: true, Lowercase: true}

// NameSegments normalizes raw directory path segments into lowercase name
// tokens. A leading "module" or "modules" token is dropped when at least one
// other token follows it, so "modules/core" becomes ["core"] while a lone
// "module" directory stays ["module"].
func NameSegments(pathSegments []string) []string {
	var segments []string
	for _, p := range pathSegments {
		segments = append(segments, Split(p, nameSplit)...)
	}
	if len(segments) > 1 && isModuleToken(segments[0]) {
		segments = segments[1:]
	}
	return segments
}

func isModuleToken(s string) bool {
	return strings.EqualFold(s, "module") || strings.EqualFold(s, "modules")
}

// GroupSegments splits a project group identifier on non-alphanumeric
// boundaries without changing case. When group yields no segments the
// fallback group (normally the root project's) is used instead.
func GroupSegments(group, fallbackGroup string) []string {
	segments := Split(group, SplitOptions{NonAlphaNumeric: true})
	if len(segments) == 0 {
		segments = Split(fallbackGroup, SplitOptions{NonAlphaNumeric: true})
	}
	return segments
}

// PackageDirSegments merges group and name segments into a package directory.
//
// With no group segments the result is the name segments. Otherwise the group
// segments come first and each name segment is appended unless it equals the
// last group segment, which keeps "com.foo.bar" + ["bar", "widget"] at
// com/foo/bar/widget. Repeats among the name segments themselves are kept.
func PackageDirSegments(groupSegments, nameSegments []string) []string {
	if len(groupSegments) == 0 {
		return slices.Clone(nameSegments)
	}
	last := groupSegments[len(groupSegments)-1]
	combined := slices.Clone(groupSegments)
	for _, seg := range nameSegments {
		if seg == last {
			continue
		}
		combined = append(combined, seg)
	}
	return combined
}

// CatalogName builds a deterministic catalog identifier from a catalog file
// name and its content hash: "default.libs.versions.toml" with hash "ab12"
// becomes "defaultLibsVersionsTomlab12".
func CatalogName(fileName, hash string) string {
	parts := Split(fileName, SplitOptions{NonAlphaNumeric: true, CamelCase: true})
	var sb strings.Builder
	for i, part := range parts {
		if i > 0 {
			part = strings.ToUpper(part[:1]) + part[1:]
		}
		sb.WriteString(part)
	}
	sb.WriteString(hash)
	return sb.String()
}
