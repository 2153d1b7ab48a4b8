// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultFileName is the file name of the catalog embedded in the binary.
const DefaultFileName = "default.libs.versions.toml"

//go:embed default.libs.versions.toml
var defaultCatalog []byte

// Source is catalog content together with where it came from.
type Source struct {
	// FileName is the base name used for the catalog name and output file.
	FileName string
	// Origin describes the source in errors and logs (a path or "embedded").
	Origin string
	Data   []byte
}

// DefaultSource returns the embedded default catalog.
func DefaultSource() Source {
	return Source{FileName: DefaultFileName, Origin: "embedded:" + DefaultFileName, Data: defaultCatalog}
}

// ReadSource reads a catalog file from disk.
func ReadSource(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, &LoadError{Origin: path, Err: err}
	}
	return Source{FileName: filepath.Base(path), Origin: path, Data: data}, nil
}

// Resolve expands doublestar patterns into catalog file paths. Relative
// patterns are evaluated against root. The result is sorted and free of
// duplicates; patterns that match nothing contribute nothing.
func Resolve(root string, patterns []string) ([]string, error) {
	var paths []string
	for _, pattern := range patterns {
		if filepath.IsAbs(pattern) {
			matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("catalog pattern %q: %w", pattern, err)
			}
			paths = append(paths, matches...)
			continue
		}
		matches, err := doublestar.Glob(os.DirFS(root), filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("catalog pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
