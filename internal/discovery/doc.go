// SPDX-License-Identifier: MPL-2.0

// Package discovery finds Gradle subprojects below a repository root.
//
// The Scanner walks the tree in lexical pre-order. Hidden directories,
// excluded names (src, build, temp, tmp by default) and paths matched by the
// .gitignore files seen so far are skipped. A directory holding a build
// descriptor that is not itself ignored is a module; its subtree is not
// searched further, so modules never nest.
//
// Each directory level gets its own ignore rule set built from its parent's
// set plus its own .gitignore. Sets are values, so sibling directories never
// see each other's rules.
package discovery
