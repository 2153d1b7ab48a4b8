// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/gradlewire/gradlewire/internal/config"
	"github.com/gradlewire/gradlewire/internal/discovery"
	"github.com/gradlewire/gradlewire/internal/host"
	"github.com/gradlewire/gradlewire/internal/issue"
	"github.com/gradlewire/gradlewire/internal/lifecycle"
	"github.com/gradlewire/gradlewire/pkg/autoconfig"
	"github.com/gradlewire/gradlewire/pkg/catalog"
	"github.com/gradlewire/gradlewire/pkg/naming"
)

type (
	// Plugin applies gradlewire to a repository. A Plugin can be applied
	// repeatedly; parsed catalogs are cached between runs.
	Plugin struct {
		cfg       *config.Config
		logger    *slog.Logger
		dryRun    bool
		observers []lifecycle.Observer
		loader    *catalog.Loader
	}

	// Option configures a Plugin.
	Option func(*Plugin)

	// Result is the outcome of one Apply.
	Result struct {
		Root     naming.ModuleContext
		Modules  []*discovery.Module
		Catalogs []*catalog.Catalog
		Settings *host.Settings
		// Projects holds the root project first, then modules in scan order.
		Projects []*host.Project
		// Reports maps project paths to what the catalogs declared there.
		Reports map[string]autoconfig.ApplyReport
		// Generated lists files and directories created on disk.
		Generated   []string
		Diagnostics []discovery.Diagnostic
	}
)

// WithLogger sets the logger handed to every component.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDryRun keeps Apply from writing anything: catalogs are registered at
// the path they would be written to, and no sources or logback files are
// generated.
func WithDryRun(dryRun bool) Option {
	return func(p *Plugin) { p.dryRun = dryRun }
}

// WithObservers subscribes extra observers after the built-in ones.
func WithObservers(observers ...lifecycle.Observer) Option {
	return func(p *Plugin) { p.observers = append(p.observers, observers...) }
}

// New creates a Plugin. A nil cfg means config.DefaultConfig.
func New(cfg *config.Config, opts ...Option) *Plugin {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := &Plugin{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.loader = catalog.NewLoader(
		catalog.WithProperties(catalog.MapProperties(cfg.PropertyMap())),
		catalog.WithLogger(p.logger),
	)
	return p
}

// Config returns the configuration the plugin applies.
func (p *Plugin) Config() *config.Config { return p.cfg }

// Apply runs the settings phase for the repository at root.
func (p *Plugin) Apply(ctx context.Context, root string) (*Result, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	chain, err := p.cfg.FallbackChain()
	if err != nil {
		return nil, err
	}
	resolver := autoconfig.NewResolver(autoconfig.WithFallbackChain(chain), autoconfig.WithLogger(p.logger))

	catalogs, err := p.loadCatalogs(root)
	if err != nil {
		return nil, err
	}

	groupSegments := naming.GroupSegments(p.cfg.Group, "")
	rootCtx := naming.DeriveRoot(root, p.cfg.RootProjectName, groupSegments)
	res := &Result{
		Root:     rootCtx,
		Catalogs: catalogs,
		Settings: host.NewSettings(root, rootCtx.ProjectName()),
		Reports:  make(map[string]autoconfig.ApplyReport),
	}

	if err := p.registerCatalogs(res); err != nil {
		return nil, err
	}

	bus := p.newBus(res, resolver)

	type pending struct {
		module    naming.ModuleContext
		buildFile string
	}
	projects := []pending{{module: rootCtx, buildFile: findBuildFile(root, p.cfg.BuildFiles)}}
	if err := bus.ModuleDiscovered(ctx, rootCtx); err != nil {
		return nil, err
	}

	scanner := discovery.New(root,
		discovery.WithBuildFiles(p.cfg.BuildFiles...),
		discovery.WithExcludedDirs(p.cfg.ExcludedDirs...),
		discovery.WithLogger(p.logger),
	)
	for m, err := range scanner.Scan(ctx) {
		if err != nil {
			return nil, scanError(root, err)
		}
		mc, err := naming.Derive(m.Dir, m.PathSegments, groupSegments)
		if errors.Is(err, naming.ErrEmptyName) {
			continue
		} else if err != nil {
			return nil, err
		}
		if err := res.Settings.Include(mc); err != nil {
			return nil, duplicateError(err)
		}
		p.logger.Info("including project", "path", mc.ProjectPath(), "dir", m.RelDir())
		if err := bus.ModuleDiscovered(ctx, mc); err != nil {
			return nil, err
		}
		res.Modules = append(res.Modules, m)
		projects = append(projects, pending{module: mc, buildFile: m.BuildFile})
	}
	res.Diagnostics = scanner.Diagnostics()

	set := p.cfg.ConfigurationSet()
	for _, pp := range projects {
		names, err := set.For(pp.module.ProjectPath(), pp.buildFile)
		if err != nil {
			return nil, fmt.Errorf("project %s: %w", pp.module.ProjectPath(), err)
		}
		project := host.NewProject(pp.module, pp.buildFile, names)
		res.Projects = append(res.Projects, project)
		if err := bus.ModuleConfigured(ctx, project); err != nil {
			return nil, configureError(err)
		}
	}

	return res, nil
}

func (p *Plugin) newBus(res *Result, resolver *autoconfig.Resolver) *lifecycle.Bus {
	bus := &lifecycle.Bus{}
	bus.Subscribe(&catalogApplier{resolver: resolver, catalogs: res.Catalogs, reports: res.Reports})
	if !p.dryRun {
		if p.cfg.ScaffoldSources {
			bus.Subscribe(&sourceScaffolder{logger: p.logger, generated: &res.Generated})
		}
		if p.cfg.Logback {
			bus.Subscribe(&logbackWriter{logger: p.logger, generated: &res.Generated})
		}
	}
	bus.Subscribe(p.observers...)
	return bus
}

// loadCatalogs loads the configured catalogs followed by the embedded
// default one.
func (p *Plugin) loadCatalogs(root string) ([]*catalog.Catalog, error) {
	paths, err := catalog.Resolve(root, p.cfg.Catalogs)
	if err != nil {
		return nil, catalogError(root, err)
	}

	var catalogs []*catalog.Catalog
	for _, path := range paths {
		c, err := p.loader.LoadFile(path)
		if err != nil {
			return nil, catalogError(path, err)
		}
		catalogs = append(catalogs, c)
	}
	if p.cfg.DefaultCatalog {
		c, err := p.loader.Load(catalog.DefaultSource())
		if err != nil {
			return nil, catalogError(catalog.DefaultFileName, err)
		}
		catalogs = append(catalogs, c)
	}

	if len(catalogs) == 0 {
		p.logger.Warn("version catalogs not found", "patterns", p.cfg.Catalogs)
	}
	return catalogs, nil
}

func (p *Plugin) registerCatalogs(res *Result) error {
	outputDir := p.cfg.OutputDir
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(res.Settings.RootDir(), outputDir)
	}

	for _, c := range res.Catalogs {
		path := c.OutputPath(outputDir)
		if !p.dryRun {
			_, statErr := os.Stat(path)
			written, err := c.Write(outputDir)
			if err != nil {
				return writeError(outputDir, err)
			}
			if errors.Is(statErr, fs.ErrNotExist) {
				res.Generated = append(res.Generated, written)
			}
			path = written
		}
		if err := res.Settings.RegisterCatalog(c.Name(), path); err != nil {
			return err
		}
		p.logger.Debug("version catalog registered", "name", c.Name(), "origin", c.Origin())
	}
	return nil
}

// Project returns the project at path, or nil.
func (r *Result) Project(path string) *host.Project {
	i := slices.IndexFunc(r.Projects, func(p *host.Project) bool { return p.Context().ProjectPath() == path })
	if i < 0 {
		return nil
	}
	return r.Projects[i]
}

func findBuildFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func scanError(root string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("scan repository").
		WithResource(root).
		WithIssue(issue.ScanFailedId).
		Wrap(err).
		BuildError()
}

func catalogError(resource string, err error) error {
	id := issue.CatalogParseErrorId
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		id = issue.CatalogNotFoundId
	}
	return issue.NewErrorContext().
		WithOperation("load version catalog").
		WithResource(resource).
		WithIssue(id).
		Wrap(err).
		BuildError()
}

func duplicateError(err error) error {
	var de *host.DuplicateProjectError
	if !errors.As(err, &de) {
		return err
	}
	return issue.NewErrorContext().
		WithOperation("include project " + de.ProjectPath).
		WithResource(de.SecondDir).
		WithSuggestion("Rename " + de.FirstDir + " or " + de.SecondDir).
		WithIssue(issue.DuplicateProjectId).
		Wrap(err).
		BuildError()
}

func configureError(err error) error {
	var pe *autoconfig.PlatformVersionError
	if errors.As(err, &pe) {
		return issue.NewErrorContext().
			WithOperation("apply library " + pe.Alias).
			WithResource(pe.Coordinate.String()).
			WithIssue(issue.PlatformVersionRequiredId).
			Wrap(err).
			BuildError()
	}
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return err
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return writeError(pathErr.Path, err)
	}
	return err
}

func writeError(resource string, err error) error {
	return issue.NewErrorContext().
		WithOperation("write generated files").
		WithResource(resource).
		WithIssue(issue.WriteFailedId).
		Wrap(err).
		BuildError()
}
