// SPDX-License-Identifier: MPL-2.0

package config

import (
	"maps"
	"slices"

	"github.com/gradlewire/gradlewire/internal/discovery"
	"github.com/gradlewire/gradlewire/internal/host"
	"github.com/gradlewire/gradlewire/pkg/autoconfig"
)

// DefaultOutputDir is where cleaned catalogs are written, relative to the
// repository root.
const DefaultOutputDir = "build/generated/version-catalog"

// DefaultCatalogs are the catalog globs searched when none are configured.
var DefaultCatalogs = []string{"gradle/*.versions.toml"}

type (
	// Config is the effective gradlewire configuration.
	//
	// Case-sensitive tables (properties, fallback, per-module configurations)
	// are lists of entries because Viper lowercases map keys.
	Config struct {
		// RootProjectName overrides the root directory name.
		RootProjectName string `json:"root_project_name" mapstructure:"root_project_name"`
		// Group is the root project group used for package directories.
		Group                 string                 `json:"group" mapstructure:"group"`
		BuildFiles            []string               `json:"build_files" mapstructure:"build_files"`
		ExcludedDirs          []string               `json:"excluded_dirs" mapstructure:"excluded_dirs"`
		Catalogs              []string               `json:"catalogs" mapstructure:"catalogs"`
		DefaultCatalog        bool                   `json:"default_catalog" mapstructure:"default_catalog"`
		OutputDir             string                 `json:"output_dir" mapstructure:"output_dir"`
		Configurations        []string               `json:"configurations" mapstructure:"configurations"`
		LibraryConfigurations []string               `json:"library_configurations" mapstructure:"library_configurations"`
		ModuleConfigurations  []ModuleConfigurations `json:"module_configurations" mapstructure:"module_configurations"`
		Fallback              []FallbackEdge         `json:"fallback" mapstructure:"fallback"`
		Properties            []Property             `json:"properties" mapstructure:"properties"`
		Logback               bool                   `json:"logback" mapstructure:"logback"`
		ScaffoldSources       bool                   `json:"scaffold_sources" mapstructure:"scaffold_sources"`

		// Source is the file the configuration was read from, empty for defaults.
		Source string `json:"-" mapstructure:"-"`
	}

	// ModuleConfigurations pins the configuration list of one project.
	ModuleConfigurations struct {
		Project        string   `json:"project" mapstructure:"project"`
		Configurations []string `json:"configurations" mapstructure:"configurations"`
	}

	// FallbackEdge is one step of the fallback chain.
	FallbackEdge struct {
		From string `json:"from" mapstructure:"from"`
		To   string `json:"to" mapstructure:"to"`
	}

	// Property is a value substituted into ${name} catalog placeholders.
	Property struct {
		Name  string `json:"name" mapstructure:"name"`
		Value string `json:"value" mapstructure:"value"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	table := autoconfig.DefaultFallbackChain().Table()
	fallback := make([]FallbackEdge, 0, len(table))
	for _, from := range slices.Sorted(maps.Keys(table)) {
		fallback = append(fallback, FallbackEdge{From: from, To: table[from]})
	}

	return &Config{
		BuildFiles:            slices.Clone(discovery.DefaultBuildFiles),
		ExcludedDirs:          slices.Clone(discovery.DefaultExcludedDirs),
		Catalogs:              slices.Clone(DefaultCatalogs),
		DefaultCatalog:        true,
		OutputDir:             DefaultOutputDir,
		Configurations:        slices.Clone(host.DefaultConfigurations),
		LibraryConfigurations: slices.Clone(host.DefaultLibraryConfigurations),
		Fallback:              fallback,
		Logback:               true,
		ScaffoldSources:       true,
	}
}

// FallbackChain builds the chain from the configured edges.
func (c *Config) FallbackChain() (autoconfig.FallbackChain, error) {
	table := make(map[string]string, len(c.Fallback))
	for _, edge := range c.Fallback {
		table[edge.From] = edge.To
	}
	return autoconfig.NewFallbackChain(table)
}

// PropertyMap returns the properties keyed by name.
func (c *Config) PropertyMap() map[string]string {
	m := make(map[string]string, len(c.Properties))
	for _, p := range c.Properties {
		m[p.Name] = p.Value
	}
	return m
}

// ConfigurationSet returns the per-project configuration policy.
func (c *Config) ConfigurationSet() host.ConfigurationSet {
	set := host.ConfigurationSet{
		Base:    slices.Clone(c.Configurations),
		Library: slices.Clone(c.LibraryConfigurations),
	}
	if len(c.ModuleConfigurations) > 0 {
		set.Overrides = make(map[string][]string, len(c.ModuleConfigurations))
		for _, mc := range c.ModuleConfigurations {
			set.Overrides[mc.Project] = slices.Clone(mc.Configurations)
		}
	}
	return set
}
