// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradlewire/gradlewire/internal/issue"
	"github.com/gradlewire/gradlewire/pkg/cueutil"

	"github.com/spf13/viper"
)

const (
	// FileName is the configuration file looked up in the repository root.
	FileName = "gradlewire.cue"
	// EnvPrefix prefixes environment overrides, as in GRADLEWIRE_GROUP.
	EnvPrefix = "GRADLEWIRE"
)

//go:embed config_schema.cue
var configSchema []byte

// loadWithOptions reads the configuration without caching it.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load config canceled: %w", err)
	}

	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := opts.ConfigFilePath
	if path == "" {
		path = filepath.Join(opts.RootDir, FileName)
		if !fileExists(path) {
			path = ""
		}
	} else if !fileExists(path) {
		return nil, issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Verify the --config path is correct").
			WithSuggestion("Run 'gradlewire config init' to create a default file").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(fmt.Errorf("config file not found: %w", os.ErrNotExist)).
			BuildError()
	}

	if path != "" {
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Run 'gradlewire config show' to see the expected keys").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = path

	if err := validate(&cfg); err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("root_project_name", d.RootProjectName)
	v.SetDefault("group", d.Group)
	v.SetDefault("build_files", d.BuildFiles)
	v.SetDefault("excluded_dirs", d.ExcludedDirs)
	v.SetDefault("catalogs", d.Catalogs)
	v.SetDefault("default_catalog", d.DefaultCatalog)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("configurations", d.Configurations)
	v.SetDefault("library_configurations", d.LibraryConfigurations)
	v.SetDefault("module_configurations", d.ModuleConfigurations)
	v.SetDefault("fallback", d.Fallback)
	v.SetDefault("properties", d.Properties)
	v.SetDefault("logback", d.Logback)
	v.SetDefault("scaffold_sources", d.ScaffoldSources)
}

// loadCUEIntoViper validates path against #Config and merges it into v.
// Optional fields stay optional, so the value is decoded into a map rather
// than a Config.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	unified, err := cueutil.Unify(configSchema, data, "#Config", cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return cueutil.FormatError(err, path)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// validate checks what the schema cannot express: unique keys in the entry
// lists and an acyclic fallback chain.
func validate(cfg *Config) error {
	var errs []error

	projects := make(map[string]bool)
	for i, mc := range cfg.ModuleConfigurations {
		if projects[mc.Project] {
			errs = append(errs, fmt.Errorf("module_configurations[%d]: duplicate project %q", i, mc.Project))
		}
		projects[mc.Project] = true
	}

	froms := make(map[string]bool)
	for i, edge := range cfg.Fallback {
		if froms[edge.From] {
			errs = append(errs, fmt.Errorf("fallback[%d]: duplicate source configuration %q", i, edge.From))
		}
		froms[edge.From] = true
	}
	if len(errs) == 0 {
		if _, err := cfg.FallbackChain(); err != nil {
			errs = append(errs, fmt.Errorf("fallback: %w", err))
		}
	}

	names := make(map[string]bool)
	for i, p := range cfg.Properties {
		if names[p.Name] {
			errs = append(errs, fmt.Errorf("properties[%d]: duplicate property %q", i, p.Name))
		}
		names[p.Name] = true
	}

	return errors.Join(errs...)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
