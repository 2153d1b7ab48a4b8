// SPDX-License-Identifier: MPL-2.0

// Package ignorerules merges .gitignore files found during a directory walk
// into root-relative rule sets and answers whether a path is ignored.
//
// Rules from a nested .gitignore are rewritten so they apply relative to the
// scan root:
//
//	/pattern   -> base/pattern
//	**/pattern -> base/**/pattern
//	pattern    -> base/**/pattern
//
// and are appended after the rules inherited from ancestor directories, so the
// last matching rule wins exactly as in git. A RuleSet is an immutable value:
// Merge always returns a new set and never touches the receiver.
package ignorerules
