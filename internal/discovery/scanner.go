// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gradlewire/gradlewire/pkg/ignorerules"
	"github.com/gradlewire/gradlewire/pkg/naming"
)

// IgnoreFileName is the per-directory ignore file merged during the walk.
const IgnoreFileName = ".gitignore"

var (
	// DefaultBuildFiles are the build descriptors that mark a module directory.
	DefaultBuildFiles = []string{"build.gradle", "build.gradle.kts"}
	// DefaultExcludedDirs are directory names never descended into.
	DefaultExcludedDirs = []string{"src", "build", "temp", "tmp"}

	// ErrScannerUsed is yielded when Scan is called a second time.
	ErrScannerUsed = errors.New("scanner has already been used")
)

type (
	// Module is a directory found to hold a build descriptor.
	Module struct {
		// Dir is the absolute module directory.
		Dir string
		// BuildFile is the absolute path of the build descriptor.
		BuildFile string
		// PathSegments are the directory names from the root to Dir.
		PathSegments []string
		// NameSegments are the normalized tokens used for the project name.
		NameSegments []string
	}

	// Scanner walks a repository root once and yields its modules.
	Scanner struct {
		root         string
		buildFiles   []string
		excludedDirs []string
		logger       *slog.Logger

		used        atomic.Bool
		mu          sync.Mutex
		diagnostics []Diagnostic
	}

	// Option configures a Scanner.
	Option func(*Scanner)
)

// WithBuildFiles replaces the build descriptor names. Earlier names win when
// a directory holds several.
func WithBuildFiles(names ...string) Option {
	return func(s *Scanner) {
		if len(names) > 0 {
			s.buildFiles = slices.Clone(names)
		}
	}
}

// WithExcludedDirs replaces the excluded directory names.
func WithExcludedDirs(names ...string) Option {
	return func(s *Scanner) { s.excludedDirs = slices.Clone(names) }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scanner rooted at root.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:         root,
		buildFiles:   slices.Clone(DefaultBuildFiles),
		excludedDirs: slices.Clone(DefaultExcludedDirs),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RelDir returns the module directory relative to the scan root, with
// forward slashes.
func (m *Module) RelDir() string { return strings.Join(m.PathSegments, "/") }

// Root returns the directory being scanned.
func (s *Scanner) Root() string { return s.root }

// Diagnostics returns the non-fatal problems collected so far.
func (s *Scanner) Diagnostics() []Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.diagnostics)
}

// Scan returns a lazy sequence of modules. The walk runs while the sequence
// is consumed; stopping early stops the walk. A cancelled context ends the
// sequence with the context error. A Scanner can only be scanned once.
func (s *Scanner) Scan(ctx context.Context) iter.Seq2[*Module, error] {
	return func(yield func(*Module, error) bool) {
		if !s.used.CompareAndSwap(false, true) {
			yield(nil, ErrScannerUsed)
			return
		}
		root, err := filepath.Abs(s.root)
		if err != nil {
			yield(nil, err)
			return
		}
		info, err := os.Stat(root)
		if err != nil {
			yield(nil, err)
			return
		}
		if !info.IsDir() {
			yield(nil, &fs.PathError{Op: "scan", Path: root, Err: errors.New("not a directory")})
			return
		}
		rules := s.mergeIgnoreFile(ignorerules.RuleSet{}, root, "")
		s.walk(ctx, root, nil, rules, yield)
	}
}

// Collect drains a fresh scan and returns every module with the scan
// diagnostics.
func (s *Scanner) Collect(ctx context.Context) ([]*Module, []Diagnostic, error) {
	var modules []*Module
	for m, err := range s.Scan(ctx) {
		if err != nil {
			return modules, s.Diagnostics(), err
		}
		modules = append(modules, m)
	}
	return modules, s.Diagnostics(), nil
}

// walk visits the children of dir. It returns false once the consumer
// stopped or the context ended.
func (s *Scanner) walk(ctx context.Context, dir string, segments []string, rules ignorerules.RuleSet, yield func(*Module, error) bool) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.report(NewDiagnosticWithCause(SeverityWarning, CodeDirUnreadable, "directory skipped", dir, err))
		return true
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return false
		}
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		path := filepath.Join(dir, name)
		childSegments := append(slices.Clone(segments), name)
		rel := strings.Join(childSegments, "/")

		if s.skipDir(path, name, rel, rules) {
			continue
		}

		childRules := s.mergeIgnoreFile(rules, path, rel)
		if m, ok := s.module(path, childSegments, childRules); ok {
			if !yield(m, nil) {
				return false
			}
			continue
		}
		if !s.walk(ctx, path, childSegments, childRules, yield) {
			return false
		}
	}
	return true
}

func (s *Scanner) skipDir(path, name, rel string, rules ignorerules.RuleSet) bool {
	switch {
	case strings.HasPrefix(name, "."):
		return true
	case slices.Contains(s.excludedDirs, name):
		return true
	case rules.IsIgnored(rel, true):
		s.logger.Debug("directory ignored", "path", rel)
		return true
	case hasHiddenAttribute(path):
		return true
	}
	return false
}

// module reports whether dir is a module. A directory with a build file
// whose name normalizes to nothing is not a module and is walked further.
func (s *Scanner) module(dir string, segments []string, rules ignorerules.RuleSet) (*Module, bool) {
	buildFile, ok := s.buildFile(dir, segments, rules)
	if !ok {
		return nil, false
	}
	nameSegments := naming.NameSegments(segments)
	if len(nameSegments) == 0 {
		s.logger.Debug("module skipped, empty name", "path", strings.Join(segments, "/"))
		return nil, false
	}
	return &Module{
		Dir:          dir,
		BuildFile:    buildFile,
		PathSegments: segments,
		NameSegments: nameSegments,
	}, true
}

func (s *Scanner) buildFile(dir string, segments []string, rules ignorerules.RuleSet) (string, bool) {
	for _, name := range s.buildFiles {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				s.report(NewDiagnosticWithCause(SeverityWarning, CodeBuildFileUnreadable, "build file skipped", path, err))
			}
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		rel := strings.Join(append(slices.Clone(segments), name), "/")
		if rules.IsIgnored(rel, false) {
			s.logger.Debug("build file ignored", "path", rel)
			continue
		}
		return path, true
	}
	return "", false
}

func (s *Scanner) mergeIgnoreFile(rules ignorerules.RuleSet, dir, rel string) ignorerules.RuleSet {
	path := filepath.Join(dir, IgnoreFileName)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return rules
	}
	merged, err := rules.ReadFile(path, rel)
	if err != nil {
		s.report(NewDiagnosticWithCause(SeverityWarning, CodeIgnoreFileUnreadable, "ignore file skipped", path, err))
		return rules
	}
	return merged
}

func (s *Scanner) report(d Diagnostic) {
	s.mu.Lock()
	s.diagnostics = append(s.diagnostics, d)
	s.mu.Unlock()
	s.logger.Debug("discovery diagnostic", "code", d.Code.String(), "path", d.Path, "error", d.Cause)
}
