// SPDX-License-Identifier: MPL-2.0

package host

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/gradlewire/gradlewire/pkg/autoconfig"
	"github.com/gradlewire/gradlewire/pkg/naming"
)

// LibraryPluginMarker marks a build file as applying the java-library plugin.
const LibraryPluginMarker = "java-library"

var (
	// DefaultConfigurations exist on every JVM module.
	DefaultConfigurations = []string{
		"annotationProcessor",
		"compileOnly",
		"implementation",
		"runtimeOnly",
		"testAnnotationProcessor",
		"testCompileOnly",
		"testImplementation",
		"testRuntimeOnly",
	}
	// DefaultLibraryConfigurations are added for java-library modules.
	DefaultLibraryConfigurations = []string{"api", "compileOnlyApi"}

	// ErrUnknownConfiguration is returned when declaring on a missing configuration.
	ErrUnknownConfiguration = errors.New("unknown configuration")
)

type (
	// Declaration is one dependency declared on a configuration.
	Declaration struct {
		Configuration string
		Notation      autoconfig.Notation
	}

	// ConfigurationSet decides which configurations a project exposes.
	ConfigurationSet struct {
		// Base is exposed by every module with a build file.
		Base []string
		// Library is added when the build file applies java-library.
		Library []string
		// Overrides replaces the detected list for a project path.
		Overrides map[string][]string
	}

	// Project is an in-memory module that records declarations.
	Project struct {
		module         naming.ModuleContext
		buildFile      string
		configurations []string

		mu           sync.Mutex
		declarations []Declaration
	}
)

// String renders the declaration in Kotlin DSL form.
func (d Declaration) String() string {
	return d.Notation.Declaration(d.Configuration)
}

// DefaultConfigurationSet returns the configurations of a plain JVM build.
func DefaultConfigurationSet() ConfigurationSet {
	return ConfigurationSet{
		Base:    slices.Clone(DefaultConfigurations),
		Library: slices.Clone(DefaultLibraryConfigurations),
	}
}

// For returns the configurations of the project at projectPath. Overrides
// win; a project without build file has none; otherwise Base, plus Library
// when the build file mentions java-library.
func (c ConfigurationSet) For(projectPath, buildFile string) ([]string, error) {
	if names, ok := c.Overrides[projectPath]; ok {
		return slices.Clone(names), nil
	}
	if buildFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(buildFile)
	if err != nil {
		return nil, fmt.Errorf("read build file: %w", err)
	}
	names := slices.Clone(c.Base)
	if strings.Contains(string(data), LibraryPluginMarker) {
		for _, name := range c.Library {
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		}
	}
	return names, nil
}

// NewProject creates a project exposing configurations.
func NewProject(module naming.ModuleContext, buildFile string, configurations []string) *Project {
	return &Project{module: module, buildFile: buildFile, configurations: slices.Clone(configurations)}
}

// Context returns the module metadata.
func (p *Project) Context() naming.ModuleContext { return p.module }

// BuildFile returns the build descriptor path.
func (p *Project) BuildFile() string { return p.buildFile }

// ConfigurationNames implements autoconfig.Target.
func (p *Project) ConfigurationNames() []string { return slices.Clone(p.configurations) }

// AddDependency implements autoconfig.Target. Repeated declarations are
// recorded once.
func (p *Project) AddDependency(configuration string, notation autoconfig.Notation) error {
	if !slices.Contains(p.configurations, configuration) {
		return fmt.Errorf("%w %q in project %s", ErrUnknownConfiguration, configuration, p.module.ProjectPath())
	}
	d := Declaration{Configuration: configuration, Notation: notation}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Contains(p.declarations, d) {
		p.declarations = append(p.declarations, d)
	}
	return nil
}

// Declarations returns the declarations in the order they were made.
func (p *Project) Declarations() []Declaration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.declarations)
}
