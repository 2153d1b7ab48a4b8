// SPDX-License-Identifier: MPL-2.0

package host

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gradlewire/gradlewire/pkg/naming"
)

var (
	// ErrDuplicateProject is returned when two directories map to one project path.
	ErrDuplicateProject = errors.New("duplicate project path")
	// ErrDuplicateCatalog is returned when a catalog name is registered twice.
	ErrDuplicateCatalog = errors.New("duplicate version catalog")
)

type (
	// Include is one subproject added to the build.
	Include struct {
		ProjectPath string
		ProjectName string
		// Dir is the project directory relative to the root, slash separated.
		Dir string
	}

	// CatalogRef is a version catalog registered with the build.
	CatalogRef struct {
		Name string
		// File is the cleaned catalog file relative to the root, slash separated.
		File string
	}

	// DuplicateProjectError reports two directories claiming one project path.
	DuplicateProjectError struct {
		ProjectPath string
		FirstDir    string
		SecondDir   string
	}

	// Settings collects the settings-phase state of a build.
	Settings struct {
		rootDir  string
		rootName string

		mu       sync.Mutex
		includes []Include
		byPath   map[string]int
		catalogs []CatalogRef
	}
)

// Error implements the error interface.
func (e *DuplicateProjectError) Error() string {
	return fmt.Sprintf("%v %s: declared by %s and %s", ErrDuplicateProject, e.ProjectPath, e.FirstDir, e.SecondDir)
}

// Unwrap returns ErrDuplicateProject.
func (e *DuplicateProjectError) Unwrap() error { return ErrDuplicateProject }

// NewSettings creates settings for the build rooted at rootDir.
func NewSettings(rootDir, rootName string) *Settings {
	return &Settings{rootDir: rootDir, rootName: rootName, byPath: make(map[string]int)}
}

// RootDir returns the build root directory.
func (s *Settings) RootDir() string { return s.rootDir }

// RootName returns the root project name.
func (s *Settings) RootName() string { return s.rootName }

// Include adds a subproject. A project path already taken by another
// directory is rejected.
func (s *Settings) Include(module naming.ModuleContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inc := Include{
		ProjectPath: module.ProjectPath(),
		ProjectName: module.ProjectName(),
		Dir:         module.RelativeDir(),
	}
	if i, ok := s.byPath[inc.ProjectPath]; ok {
		return &DuplicateProjectError{ProjectPath: inc.ProjectPath, FirstDir: s.includes[i].Dir, SecondDir: inc.Dir}
	}
	s.byPath[inc.ProjectPath] = len(s.includes)
	s.includes = append(s.includes, inc)
	return nil
}

// Includes returns the subprojects in inclusion order.
func (s *Settings) Includes() []Include {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.includes)
}

// RegisterCatalog records a version catalog file. file may be absolute; it
// is stored relative to the root when it lies below it.
func (s *Settings) RegisterCatalog(name, file string) error {
	if rel, err := filepath.Rel(s.rootDir, file); err == nil && filepath.IsAbs(file) && !startsWithParent(rel) {
		file = rel
	}
	file = filepath.ToSlash(file)

	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.catalogs, func(c CatalogRef) bool { return c.Name == name }) {
		return fmt.Errorf("%w: %s", ErrDuplicateCatalog, name)
	}
	s.catalogs = append(s.catalogs, CatalogRef{Name: name, File: file})
	return nil
}

// Catalogs returns the registered catalogs in registration order.
func (s *Settings) Catalogs() []CatalogRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.catalogs)
}

func startsWithParent(rel string) bool {
	return rel == ".." || len(rel) > 3 && rel[:3] == ".."+string(filepath.Separator)
}
