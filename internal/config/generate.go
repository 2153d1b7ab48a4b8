// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrConfigExists is returned by WriteFile when the target exists and force
// is not set.
var ErrConfigExists = errors.New("config file already exists")

// GenerateCUE renders cfg as a gradlewire.cue document.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// gradlewire configuration\n\n")

	if cfg.RootProjectName != "" {
		fmt.Fprintf(&sb, "root_project_name: %s\n", quote(cfg.RootProjectName))
	}
	if cfg.Group != "" {
		fmt.Fprintf(&sb, "group: %s\n", quote(cfg.Group))
	}
	writeList(&sb, "build_files", cfg.BuildFiles)
	writeList(&sb, "excluded_dirs", cfg.ExcludedDirs)
	writeList(&sb, "catalogs", cfg.Catalogs)
	fmt.Fprintf(&sb, "default_catalog: %t\n", cfg.DefaultCatalog)
	fmt.Fprintf(&sb, "output_dir: %s\n", quote(cfg.OutputDir))

	sb.WriteString("\n")
	writeList(&sb, "configurations", cfg.Configurations)
	writeList(&sb, "library_configurations", cfg.LibraryConfigurations)

	if len(cfg.ModuleConfigurations) > 0 {
		sb.WriteString("module_configurations: [\n")
		for _, mc := range cfg.ModuleConfigurations {
			fmt.Fprintf(&sb, "\t{project: %s, configurations: %s},\n", quote(mc.Project), inlineList(mc.Configurations))
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("fallback: [\n")
	for _, edge := range cfg.Fallback {
		fmt.Fprintf(&sb, "\t{from: %s, to: %s},\n", quote(edge.From), quote(edge.To))
	}
	sb.WriteString("]\n")

	if len(cfg.Properties) > 0 {
		sb.WriteString("properties: [\n")
		for _, p := range cfg.Properties {
			fmt.Fprintf(&sb, "\t{name: %s, value: %s},\n", quote(p.Name), quote(p.Value))
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "logback: %t\n", cfg.Logback)
	fmt.Fprintf(&sb, "scaffold_sources: %t\n", cfg.ScaffoldSources)

	return sb.String()
}

// WriteFile writes cfg to path. An existing file is only replaced when force
// is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrConfigExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func writeList(sb *strings.Builder, key string, values []string) {
	if len(values) <= 3 {
		fmt.Fprintf(sb, "%s: %s\n", key, inlineList(values))
		return
	}
	sb.WriteString(key + ": [\n")
	for _, v := range values {
		sb.WriteString("\t" + quote(v) + ",\n")
	}
	sb.WriteString("]\n")
}

func inlineList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quote(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// quote produces a CUE string literal. CUE accepts the JSON escapes
// strconv.Quote emits for printable input.
func quote(s string) string {
	return strconv.Quote(s)
}
