// SPDX-License-Identifier: MPL-2.0

package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidWatchConfig is wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Patterns select the paths, relative to BaseDir, whose changes
		// trigger OnChange. Empty means every non-ignored path.
		Patterns []string

		// Ignore is merged with DefaultIgnores.
		Ignore []string

		// Debounce is the quiet period after the last event before OnChange
		// fires. Zero or negative values mean 500ms.
		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Out before each
		// callback.
		ClearScreen bool
		Out         io.Writer

		// BaseDir is the directory watched recursively; empty means the
		// working directory.
		BaseDir string

		// OnChange receives the deduplicated changed paths relative to BaseDir.
		OnChange func(ctx context.Context, changed []string) error

		Logger *slog.Logger
	}

	// InvalidWatchConfigError lists every invalid Config field.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}
)

func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("%v: %d field error(s): %v", ErrInvalidWatchConfig, len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Validate checks the patterns and the base directory. It returns nil or an
// *InvalidWatchConfigError.
func (c Config) Validate() error {
	var errs []error
	errs = appendPatternErrors(errs, "patterns", c.Patterns)
	errs = appendPatternErrors(errs, "ignore", c.Ignore)
	if c.BaseDir != "" && strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, errors.New("base dir: must not be blank"))
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

func appendPatternErrors(errs []error, label string, patterns []string) []error {
	for i, pat := range patterns {
		if strings.TrimSpace(pat) == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: empty pattern", label, i))
			continue
		}
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("%s[%d]: invalid pattern %q: %w", label, i, pat, doublestar.ErrBadPattern))
		}
	}
	return errs
}

// BuildPatterns returns the patterns that affect a gradlewire plan: build
// descriptors and ignore files at any depth, the catalog globs and any extra
// files such as the configuration file.
func BuildPatterns(buildFiles, catalogs []string, extra ...string) []string {
	patterns := []string{"**/.gitignore"}
	for _, name := range buildFiles {
		patterns = append(patterns, "**/"+name)
	}
	for _, c := range catalogs {
		if path.IsAbs(c) {
			continue
		}
		patterns = append(patterns, c)
	}
	return append(patterns, extra...)
}
