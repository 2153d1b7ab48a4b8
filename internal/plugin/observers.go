// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gradlewire/gradlewire/internal/generate"
	"github.com/gradlewire/gradlewire/internal/lifecycle"
	"github.com/gradlewire/gradlewire/pkg/autoconfig"
	"github.com/gradlewire/gradlewire/pkg/catalog"
	"github.com/gradlewire/gradlewire/pkg/naming"
)

type (
	// catalogApplier declares the libraries of every catalog on each
	// configured module. Entries of all catalogs are applied in one pass so
	// platforms from any catalog precede plain libraries.
	catalogApplier struct {
		resolver *autoconfig.Resolver
		catalogs []*catalog.Catalog

		mu      sync.Mutex
		reports map[string]autoconfig.ApplyReport
	}

	// sourceScaffolder creates the main source package directory of
	// subprojects that have no sources yet.
	sourceScaffolder struct {
		logger    *slog.Logger
		generated *[]string
	}

	// logbackWriter gives every JVM module a console logback configuration.
	logbackWriter struct {
		logger    *slog.Logger
		generated *[]string
	}
)

func (a *catalogApplier) OnModuleDiscovered(context.Context, naming.ModuleContext) error { return nil }

func (a *catalogApplier) OnModuleConfigured(_ context.Context, module lifecycle.ModuleHandle) error {
	var entries []autoconfig.Entry
	for _, c := range a.catalogs {
		entries = append(entries, c.Entries()...)
	}
	report, err := a.resolver.ApplyAll(module, entries)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.reports[module.Context().ProjectPath()] = report
	a.mu.Unlock()
	return nil
}

func (s *sourceScaffolder) OnModuleDiscovered(context.Context, naming.ModuleContext) error { return nil }

func (s *sourceScaffolder) OnModuleConfigured(_ context.Context, module lifecycle.ModuleHandle) error {
	mc := module.Context()
	if mc.IsRoot() || module.BuildFile() == "" {
		return nil
	}
	dir, created, err := generate.ScaffoldSources(mc.Dir(), module.BuildFile(), mc.PackageDirSegments())
	if err != nil || !created {
		return err
	}
	s.logger.Debug("source directory created", "project", mc.ProjectPath(), "dir", dir)
	*s.generated = append(*s.generated, dir)
	return nil
}

func (w *logbackWriter) OnModuleDiscovered(context.Context, naming.ModuleContext) error { return nil }

func (w *logbackWriter) OnModuleConfigured(_ context.Context, module lifecycle.ModuleHandle) error {
	if len(module.ConfigurationNames()) == 0 {
		return nil
	}
	path, created, err := generate.WriteLogback(module.Context().Dir())
	if err != nil || !created {
		return err
	}
	w.logger.Debug("logback configuration created", "path", path)
	*w.generated = append(*w.generated, path)
	return nil
}
