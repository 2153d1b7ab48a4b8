// SPDX-License-Identifier: MPL-2.0

// Package catalog loads dependency version catalogs (libs.versions.toml).
//
// A catalog may carry an autoConfigOptions table per library. The Loader
// parses those tables into autoconfig.Options, removes them from the
// document and exposes the cleaned TOML, which is what the build tool reads.
// Parsed catalogs are cached by the MD5 of their raw bytes; the hash is also
// part of the catalog name so a changed file gets a new name.
package catalog
