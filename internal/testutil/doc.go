// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// The helpers build repository fixtures on disk: WriteTree lays out a whole
// tree of build files, catalogs and ignore files in one call.
package testutil
