// SPDX-License-Identifier: MPL-2.0

// Package config loads gradlewire settings using Viper with CUE as the file
// format.
//
// The configuration lives in gradlewire.cue at the repository root, or in the
// file passed with --config. It is validated against the embedded
// config_schema.cue, merged over DefaultConfig and can be overridden with
// GRADLEWIRE_* environment variables (GRADLEWIRE_OUTPUT_DIR, ...).
package config
