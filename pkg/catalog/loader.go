// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/gradlewire/gradlewire/pkg/autoconfig"

	"github.com/pelletier/go-toml/v2"
)

const (
	librariesKey = "libraries"
	versionsKey  = "versions"
)

var (
	placeholderPattern = regexp.MustCompile(`^\$\{([^}]+)}$`)
	aliasReplacer      = strings.NewReplacer("-", ".", "_", ".")
)

type (
	// PropertyLookup resolves ${name} placeholders found in catalog strings.
	PropertyLookup func(name string) (string, bool)

	// Loader parses catalogs and caches them by content hash. It is safe for
	// concurrent use; each distinct content is parsed at most once.
	Loader struct {
		mu         sync.Mutex
		cache      map[string]*Catalog
		properties PropertyLookup
		logger     *slog.Logger
	}

	// LoaderOption configures a Loader.
	LoaderOption func(*Loader)
)

// MapProperties returns a lookup backed by m.
func MapProperties(m map[string]string) PropertyLookup {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// WithProperties sets the placeholder lookup.
func WithProperties(lookup PropertyLookup) LoaderOption {
	return func(l *Loader) { l.properties = lookup }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		cache:  make(map[string]*Catalog),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads and loads the catalog at path.
func (l *Loader) LoadFile(path string) (*Catalog, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}
	return l.Load(src)
}

// Load parses src, or returns the cached catalog for identical content.
func (l *Loader) Load(src Source) (*Catalog, error) {
	sum := md5.Sum(src.Data)
	hash := hex.EncodeToString(sum[:])
	key := src.FileName + "\x00" + hash

	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.cache[key]; ok {
		return c, nil
	}

	doc, err := decode(src.Data)
	if err != nil {
		return nil, &LoadError{Origin: src.Origin, Err: err}
	}
	if l.properties != nil {
		substitute(doc, l.properties)
	}
	entries, err := extractEntries(doc)
	if err != nil {
		return nil, &LoadError{Origin: src.Origin, Err: err}
	}

	c := newCatalog(src, hash, doc, entries)
	l.cache[key] = c
	l.logger.Debug("version catalog loaded", "name", c.Name(), "origin", src.Origin, "libraries", len(entries))
	return c, nil
}

// Strip removes every autoConfigOptions table from a catalog document and
// returns the re-encoded TOML. Stripping a stripped catalog changes nothing.
func Strip(data []byte) ([]byte, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, err
	}
	if libs, ok := doc[librariesKey].(map[string]any); ok {
		for _, v := range libs {
			if tbl, ok := v.(map[string]any); ok {
				delete(tbl, autoconfig.Key)
			}
		}
	}
	return toml.Marshal(doc)
}

func decode(data []byte) (map[string]any, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("parse TOML at %d:%d: %w", row, col, err)
		}
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}
	return doc, nil
}

// substitute replaces string values that are exactly ${name} with the
// looked up property. Unknown names are left as they are.
func substitute(v any, lookup PropertyLookup) any {
	switch node := v.(type) {
	case string:
		if m := placeholderPattern.FindStringSubmatch(node); m != nil {
			if value, ok := lookup(m[1]); ok {
				return value
			}
		}
		return node
	case map[string]any:
		for k, child := range node {
			node[k] = substitute(child, lookup)
		}
		return node
	case []any:
		for i, child := range node {
			node[i] = substitute(child, lookup)
		}
		return node
	default:
		return v
	}
}

// NormalizeAlias maps a library key to its accessor alias.
func NormalizeAlias(key string) string {
	return aliasReplacer.Replace(key)
}

// extractEntries removes the directive tables from doc's libraries and
// returns the libraries sorted by alias.
func extractEntries(doc map[string]any) ([]autoconfig.Entry, error) {
	raw, ok := doc[librariesKey]
	if !ok {
		return nil, nil
	}
	libs, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("[%s] must be a table", librariesKey)
	}
	versions, _ := doc[versionsKey].(map[string]any)

	keyByAlias := make(map[string]string, len(libs))
	entries := make([]autoconfig.Entry, 0, len(libs))
	for _, key := range slices.Sorted(maps.Keys(libs)) {
		alias := NormalizeAlias(key)
		if prev, dup := keyByAlias[alias]; dup {
			return nil, fmt.Errorf("%w %q: declared by %q and %q", ErrDuplicateAlias, alias, prev, key)
		}
		keyByAlias[alias] = key

		opts := autoconfig.DefaultOptions()
		if tbl, ok := libs[key].(map[string]any); ok {
			if rawOpts, present := tbl[autoconfig.Key]; present {
				delete(tbl, autoconfig.Key)
				optTable, ok := rawOpts.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("library %q: %s must be a table", key, autoconfig.Key)
				}
				parsed, err := autoconfig.ParseOptions(optTable)
				if err != nil {
					return nil, fmt.Errorf("library %q: %w", key, err)
				}
				opts = parsed
			}
		}

		coord, err := parseCoordinate(libs[key], versions)
		if err != nil {
			return nil, fmt.Errorf("library %q: %w", key, err)
		}
		entries = append(entries, autoconfig.Entry{Alias: alias, Coordinate: coord, Options: opts})
	}
	slices.SortFunc(entries, func(a, b autoconfig.Entry) int { return strings.Compare(a.Alias, b.Alias) })
	return entries, nil
}

func parseCoordinate(v any, versions map[string]any) (autoconfig.Coordinate, error) {
	switch lib := v.(type) {
	case string:
		c, err := autoconfig.ParseCoordinate(lib)
		if err != nil {
			return autoconfig.Coordinate{}, fmt.Errorf("%w: %w", ErrInvalidLibrary, err)
		}
		return c, nil
	case map[string]any:
		var c autoconfig.Coordinate
		if module, ok := lib["module"].(string); ok {
			group, name, found := strings.Cut(module, ":")
			if !found || group == "" || name == "" || strings.Contains(name, ":") {
				return c, fmt.Errorf("%w: module %q must be group:name", ErrInvalidLibrary, module)
			}
			c.Group, c.Name = group, name
		} else {
			c.Group, _ = lib["group"].(string)
			c.Name, _ = lib["name"].(string)
			if c.Group == "" || c.Name == "" {
				return c, fmt.Errorf("%w: needs module or group and name", ErrInvalidLibrary)
			}
		}
		version, err := parseVersion(lib["version"], versions)
		if err != nil {
			return c, err
		}
		c.Version = version
		return c, nil
	default:
		return autoconfig.Coordinate{}, fmt.Errorf("%w: unsupported value of type %T", ErrInvalidLibrary, v)
	}
}

// parseVersion returns the required version of a library: the plain
// version string, or for rich versions require, else strictly, else empty.
func parseVersion(v any, versions map[string]any) (string, error) {
	switch version := v.(type) {
	case nil:
		return "", nil
	case string:
		return version, nil
	case map[string]any:
		if ref, ok := version["ref"].(string); ok {
			target, found := versions[ref]
			if !found {
				return "", fmt.Errorf("%w %q", ErrUnknownVersionRef, ref)
			}
			switch tv := target.(type) {
			case string:
				return tv, nil
			case map[string]any:
				return richVersion(tv), nil
			default:
				return "", fmt.Errorf("version %q has unsupported type %T", ref, target)
			}
		}
		return richVersion(version), nil
	default:
		return "", fmt.Errorf("version has unsupported type %T", v)
	}
}

func richVersion(t map[string]any) string {
	if s, ok := t["require"].(string); ok && s != "" {
		return s
	}
	if s, ok := t["strictly"].(string); ok {
		return s
	}
	return ""
}
