// SPDX-License-Identifier: MPL-2.0

package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// ErrEmptyName is returned when a directory yields no name segments.
var ErrEmptyName = errors.New("no project name segments")

type (
	// ModuleContext is the derived identity of one Gradle project. It is built
	// once by Derive or DeriveRoot and is read-only afterwards; accessors
	// return copies.
	ModuleContext struct {
		dir             string
		root            bool
		pathSegments    []string
		nameSegments    []string
		packageSegments []string
	}

	// EmptyNameError reports a directory whose path normalizes to no tokens.
	EmptyNameError struct {
		Dir string
	}
)

// Error implements the error interface.
func (e *EmptyNameError) Error() string {
	return fmt.Sprintf("%s: %v", e.Dir, ErrEmptyName)
}

// Unwrap returns ErrEmptyName.
func (e *EmptyNameError) Unwrap() error { return ErrEmptyName }

// Derive builds the context of a subproject from its directory, its path
// segments relative to the repository root and the effective group segments.
func Derive(dir string, pathSegments, groupSegments []string) (ModuleContext, error) {
	nameSegments := NameSegments(pathSegments)
	if len(nameSegments) == 0 {
		return ModuleContext{}, &EmptyNameError{Dir: dir}
	}
	return ModuleContext{
		dir:             dir,
		pathSegments:    slices.Clone(pathSegments),
		nameSegments:    nameSegments,
		packageSegments: PackageDirSegments(groupSegments, nameSegments),
	}, nil
}

// DeriveRoot builds the context of the root project. The root has no path
// segments; its name segments come from the project name split on commas.
func DeriveRoot(dir, name string, groupSegments []string) ModuleContext {
	if strings.TrimSpace(name) == "" {
		name = filepath.Base(dir)
	}
	nameSegments := Split(name, SplitOptions{})
	return ModuleContext{
		dir:             dir,
		root:            true,
		nameSegments:    nameSegments,
		packageSegments: PackageDirSegments(groupSegments, nameSegments),
	}
}

// Dir returns the absolute project directory.
func (c ModuleContext) Dir() string { return c.dir }

// IsRoot reports whether this is the root project.
func (c ModuleContext) IsRoot() bool { return c.root }

// PathSegments returns the directory components relative to the root.
func (c ModuleContext) PathSegments() []string { return slices.Clone(c.pathSegments) }

// NameSegments returns the normalized name tokens.
func (c ModuleContext) NameSegments() []string { return slices.Clone(c.nameSegments) }

// PackageDirSegments returns the source package directory components.
func (c ModuleContext) PackageDirSegments() []string { return slices.Clone(c.packageSegments) }

// ProjectName joins the name segments with dashes.
func (c ModuleContext) ProjectName() string { return strings.Join(c.nameSegments, "-") }

// ProjectPath returns the Gradle project path (":" for the root).
func (c ModuleContext) ProjectPath() string {
	if c.root {
		return ":"
	}
	return ":" + c.ProjectName()
}

// RelativeDir returns the forward-slash directory relative to the root.
func (c ModuleContext) RelativeDir() string { return strings.Join(c.pathSegments, "/") }

// PackageDir returns the package directory using forward slashes.
func (c ModuleContext) PackageDir() string { return strings.Join(c.packageSegments, "/") }

// PackageName returns the dotted package name.
func (c ModuleContext) PackageName() string { return strings.Join(c.packageSegments, ".") }
