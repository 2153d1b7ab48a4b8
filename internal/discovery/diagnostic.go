// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"errors"
	"fmt"
)

const (
	// SeverityWarning indicates a recoverable discovery warning.
	SeverityWarning Severity = "warning"
	// SeverityError indicates a non-fatal discovery error diagnostic.
	SeverityError Severity = "error"

	// CodeDirUnreadable is reported when a directory listing fails.
	CodeDirUnreadable DiagnosticCode = "dir_unreadable"
	// CodeIgnoreFileUnreadable is reported when a .gitignore cannot be read.
	CodeIgnoreFileUnreadable DiagnosticCode = "ignore_file_unreadable"
	// CodeBuildFileUnreadable is reported when a build descriptor cannot be inspected.
	CodeBuildFileUnreadable DiagnosticCode = "build_file_unreadable"
)

var (
	// ErrInvalidSeverity is returned by Severity.IsValid.
	ErrInvalidSeverity = errors.New("invalid diagnostic severity")
	// ErrInvalidDiagnosticCode is returned by DiagnosticCode.IsValid.
	ErrInvalidDiagnosticCode = errors.New("invalid diagnostic code")
)

type (
	// Severity represents discovery diagnostic severity.
	Severity string

	// DiagnosticCode is a machine-readable diagnostic identifier.
	DiagnosticCode string

	// Diagnostic represents a structured discovery diagnostic that is returned
	// to callers (rather than written to stderr) for consistent rendering policy.
	Diagnostic struct {
		// Severity is the diagnostic level (warning or error).
		Severity Severity
		// Code is a machine-readable identifier (e.g., "dir_unreadable").
		Code DiagnosticCode
		// Message is the human-readable description.
		Message string
		// Path is the file path associated with this diagnostic (optional).
		Path string
		// Cause is the underlying error (optional, for programmatic inspection).
		Cause error
	}
)

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityWarning, SeverityError:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidSeverity, string(s))}
	}
}

// IsValid reports whether c is a known diagnostic code.
func (c DiagnosticCode) IsValid() (bool, []error) {
	switch c {
	case CodeDirUnreadable, CodeIgnoreFileUnreadable, CodeBuildFileUnreadable:
		return true, nil
	default:
		return false, []error{fmt.Errorf("%w: %q", ErrInvalidDiagnosticCode, string(c))}
	}
}

// String returns the code text.
func (c DiagnosticCode) String() string { return string(c) }

// NewDiagnosticWithCause builds a diagnostic tied to a path and an error.
func NewDiagnosticWithCause(severity Severity, code DiagnosticCode, message, path string, cause error) Diagnostic {
	return Diagnostic{Severity: severity, Code: code, Message: message, Path: path, Cause: cause}
}

// String renders the diagnostic on one line.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
	if d.Path != "" {
		s += ": " + d.Path
	}
	if d.Cause != nil {
		s += ": " + d.Cause.Error()
	}
	return s
}
