// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/gradlewire/gradlewire/pkg/autoconfig"
	"github.com/gradlewire/gradlewire/pkg/naming"

	"github.com/pelletier/go-toml/v2"
)

// Catalog is a parsed version catalog with its directives removed.
type Catalog struct {
	name     string
	fileName string
	origin   string
	hash     string
	content  map[string]any
	entries  []autoconfig.Entry

	writeMu sync.Mutex
}

// Name returns the catalog name: the camel-cased file name followed by the
// content hash.
func (c *Catalog) Name() string { return c.name }

// FileName returns the base name of the source file.
func (c *Catalog) FileName() string { return c.fileName }

// Origin returns where the catalog was read from.
func (c *Catalog) Origin() string { return c.origin }

// Hash returns the hex MD5 of the raw source bytes.
func (c *Catalog) Hash() string { return c.hash }

// Entries returns the libraries sorted by alias.
func (c *Catalog) Entries() []autoconfig.Entry { return slices.Clone(c.entries) }

// Entry returns the library with the given normalized alias.
func (c *Catalog) Entry(alias string) (autoconfig.Entry, bool) {
	i, ok := slices.BinarySearchFunc(c.entries, alias, func(e autoconfig.Entry, a string) int {
		switch {
		case e.Alias < a:
			return -1
		case e.Alias > a:
			return 1
		}
		return 0
	})
	if !ok {
		return autoconfig.Entry{}, false
	}
	return c.entries[i], true
}

// Content returns a deep copy of the cleaned TOML document.
func (c *Catalog) Content() map[string]any { return cloneTable(c.content) }

func cloneTable(t map[string]any) map[string]any {
	if t == nil {
		return nil
	}
	out := make(map[string]any, len(t))
	for k, v := range t {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		return cloneTable(v)
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = cloneValue(e)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, e := range v {
			out[i] = cloneTable(e)
		}
		return out
	default:
		return v
	}
}

// Bytes returns the cleaned catalog as TOML.
func (c *Catalog) Bytes() ([]byte, error) {
	return toml.Marshal(c.content)
}

// OutputPath returns where Write places the cleaned catalog.
func (c *Catalog) OutputPath(outputDir string) string {
	return filepath.Join(outputDir, c.name, c.fileName)
}

// Write stores the cleaned catalog under <outputDir>/<name>/<file name>. A
// file already present at that path is left untouched, so repeated calls
// write at most once.
func (c *Catalog) Write(outputDir string) (string, error) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	path := c.OutputPath(outputDir)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := c.Bytes()
	if err != nil {
		return "", fmt.Errorf("encode catalog %s: %w", c.name, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create catalog directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write catalog %s: %w", path, err)
	}
	return path, nil
}

func newCatalog(src Source, hash string, content map[string]any, entries []autoconfig.Entry) *Catalog {
	return &Catalog{
		name:     naming.CatalogName(src.FileName, hash),
		fileName: src.FileName,
		origin:   src.Origin,
		hash:     hash,
		content:  content,
		entries:  entries,
	}
}
