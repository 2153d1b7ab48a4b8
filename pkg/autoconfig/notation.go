// SPDX-License-Identifier: MPL-2.0

package autoconfig

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// NotationModule declares group:name and lets a platform supply the version.
	NotationModule NotationKind = iota
	// NotationVersioned declares group:name:version.
	NotationVersioned
	// NotationEnforcedPlatform declares enforcedPlatform("group:name:version").
	NotationEnforcedPlatform
)

// ErrPlatformVersionRequired is wrapped by PlatformVersionError.
var ErrPlatformVersionRequired = errors.New("platform dependencies require a version")

type (
	// Coordinate identifies a library. Version is empty when the catalog does
	// not pin one.
	Coordinate struct {
		Group   string
		Name    string
		Version string
	}

	// NotationKind selects how a coordinate is declared.
	NotationKind int

	// Notation is the dependency declared on a configuration.
	Notation struct {
		Kind       NotationKind
		Coordinate Coordinate
	}

	// PlatformVersionError reports a platform library without a version.
	PlatformVersionError struct {
		Alias      string
		Coordinate Coordinate
	}
)

// String returns group:name[:version].
func (c Coordinate) String() string {
	if c.Version == "" {
		return c.Group + ":" + c.Name
	}
	return c.Group + ":" + c.Name + ":" + c.Version
}

// Module returns group:name.
func (c Coordinate) Module() string {
	return c.Group + ":" + c.Name
}

// ParseCoordinate parses "group:name" or "group:name:version".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: want group:name[:version]", s)
	}
	c := Coordinate{Group: parts[0], Name: parts[1]}
	if len(parts) == 3 {
		c.Version = parts[2]
	}
	return c, nil
}

// Error implements the error interface.
func (e *PlatformVersionError) Error() string {
	lib := e.Coordinate.Module()
	if e.Alias != "" {
		lib = e.Alias + " (" + lib + ")"
	}
	return fmt.Sprintf("library %s: %v", lib, ErrPlatformVersionRequired)
}

// Unwrap returns ErrPlatformVersionRequired.
func (e *PlatformVersionError) Unwrap() error { return ErrPlatformVersionRequired }

// NotationFor decides how a coordinate is declared. A platform without a
// version is rejected with *PlatformVersionError.
func NotationFor(opts Options, coord Coordinate) (Notation, error) {
	switch {
	case coord.Version == "" && opts.Platform:
		return Notation{}, &PlatformVersionError{Coordinate: coord}
	case coord.Version == "":
		return Notation{Kind: NotationModule, Coordinate: coord}, nil
	case opts.Platform:
		return Notation{Kind: NotationEnforcedPlatform, Coordinate: coord}, nil
	default:
		return Notation{Kind: NotationVersioned, Coordinate: coord}, nil
	}
}

// IsPlatform reports whether the notation declares a platform.
func (n Notation) IsPlatform() bool { return n.Kind == NotationEnforcedPlatform }

// String renders the notation as it appears inside a Kotlin DSL declaration.
func (n Notation) String() string {
	switch n.Kind {
	case NotationEnforcedPlatform:
		return fmt.Sprintf("enforcedPlatform(%q)", n.Coordinate.String())
	case NotationModule:
		return fmt.Sprintf("%q", n.Coordinate.Module())
	default:
		return fmt.Sprintf("%q", n.Coordinate.String())
	}
}

// Declaration renders configuration(notation).
func (n Notation) Declaration(configuration string) string {
	return configuration + "(" + n.String() + ")"
}
