// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

type (
	// Option configures Unify and ParseAndDecode.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}

	// ParseResult holds the decoded value and the unified CUE value it came
	// from.
	ParseResult[T any] struct {
		Value   *T
		Unified cue.Value
	}
)

// WithFilename sets the file name used in error messages and CUE positions.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete requires every field of the unified value to be concrete.
// Without it, fields left open by the schema are allowed.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

func newOptions(opts []Option) options {
	o := options{filename: "<input>", maxFileSize: DefaultMaxFileSize}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Unify compiles schema and data, unifies data with the definition at
// schemaPath and validates the result. Schema problems are reported as
// internal errors; data problems are formatted with FormatError.
func Unify(schema, data []byte, schemaPath string, opts ...Option) (cue.Value, error) {
	o := newOptions(opts)

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return cue.Value{}, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: compile schema: %w", err)
	}
	root := schemaValue.LookupPath(cue.ParsePath(schemaPath))
	if err := root.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("internal error: schema definition %s: %w", schemaPath, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := userValue.Err(); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return cue.Value{}, FormatError(err, o.filename)
	}
	return unified, nil
}

// ParseAndDecode runs Unify and decodes the result into a T.
func ParseAndDecode[T any](schema, data []byte, schemaPath string, opts ...Option) (*ParseResult[T], error) {
	unified, err := Unify(schema, data, schemaPath, opts...)
	if err != nil {
		return nil, err
	}

	var v T
	if err := unified.Decode(&v); err != nil {
		return nil, FormatError(err, newOptions(opts).filename)
	}
	return &ParseResult[T]{Value: &v, Unified: unified}, nil
}
