// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateAlias is returned when two library keys normalize to the same alias.
	ErrDuplicateAlias = errors.New("duplicate library alias")
	// ErrUnknownVersionRef is returned when version.ref names a missing [versions] entry.
	ErrUnknownVersionRef = errors.New("unknown version reference")
	// ErrInvalidLibrary is returned for library entries without a usable coordinate.
	ErrInvalidLibrary = errors.New("invalid library")
)

// LoadError reports a catalog that could not be read or parsed.
type LoadError struct {
	Origin string
	Err    error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load version catalog %s: %v", e.Origin, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error { return e.Err }
