// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the gradlewire CLI.
//
// Every command runs the plugin against the in-memory host: modules lists
// what discovery finds, plan prints the dependency declarations per project,
// and generate additionally writes cleaned catalogs, scaffolding and the
// rendered settings script below the repository root.
package cmd
