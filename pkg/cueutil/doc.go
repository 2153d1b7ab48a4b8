// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user CUE files against an embedded schema.
//
// Unify compiles the schema and the user data, unifies the data with a root
// definition and validates the result. ParseAndDecode additionally decodes it
// into a Go value:
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	res, err := cueutil.ParseAndDecode[Config](schema, data, "#Config",
//		cueutil.WithFilename("gradlewire.cue"))
//
// Errors carry the file name and a JSON-style path such as
// "fallback[1].from".
package cueutil
