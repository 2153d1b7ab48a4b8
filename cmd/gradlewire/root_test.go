// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/gradlewire/gradlewire/internal/issue"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2026-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2026-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestFormatErrorForDisplay(t *testing.T) {
	t.Parallel()

	actionable := issue.NewErrorContext().
		WithOperation("load version catalog").
		WithResource("gradle/libs.versions.toml").
		WithSuggestion("Check the file exists").
		Wrap(os.ErrNotExist).
		BuildError()

	tests := []struct {
		name    string
		err     error
		verbose bool
		want    []string
		notWant []string
	}{
		{
			name:    "plain error",
			err:     errors.New("boom"),
			want:    []string{"boom"},
			notWant: []string{"•"},
		},
		{
			name:    "actionable error",
			err:     actionable,
			want:    []string{"failed to load version catalog: gradle/libs.versions.toml", "• Check the file exists"},
			notWant: []string{"Error chain:"},
		},
		{
			name:    "actionable error verbose",
			err:     actionable,
			verbose: true,
			want:    []string{"Error chain:", "1. file does not exist"},
		},
		{
			name: "wrapped in exit error",
			err:  &ExitError{Code: exitConfig, Err: fmt.Errorf("load: %w", actionable)},
			want: []string{"• Check the file exists"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := formatErrorForDisplay(tt.err, tt.verbose)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("formatErrorForDisplay() = %q, missing %q", got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("formatErrorForDisplay() = %q, must not contain %q", got, nw)
				}
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("x"), exitFailure},
		{"exit error", &ExitError{Code: exitConfig}, exitConfig},
		{"wrapped exit error", fmt.Errorf("run: %w", &ExitError{Code: 3}), 3},
		{"zero code", &ExitError{Err: errors.New("x")}, exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitError_Error(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 2}).Error(); got != "exit status 2" {
		t.Errorf("Error() = %q", got)
	}
	inner := errors.New("inner")
	e := &ExitError{Code: 2, Err: inner}
	if e.Error() != "inner" || !errors.Is(e, inner) {
		t.Errorf("ExitError does not expose %v", inner)
	}
}
