// SPDX-License-Identifier: MPL-2.0

package autoconfig

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

type (
	// Target is a module that dependencies can be declared on.
	Target interface {
		// ConfigurationNames lists the dependency configurations the module has.
		ConfigurationNames() []string
		// AddDependency declares notation on configuration. Declaring the same
		// notation twice on one configuration must not duplicate it.
		AddDependency(configuration string, notation Notation) error
	}

	// Entry is one catalog library with its auto-config options.
	Entry struct {
		Alias      string
		Coordinate Coordinate
		Options    Options
	}

	// Applied records where one library was declared.
	Applied struct {
		Alias          string
		Notation       Notation
		Configurations []string
	}

	// ApplyReport summarizes ApplyAll for one target.
	ApplyReport struct {
		Applied []Applied
		// Skipped lists aliases that resolved to no configuration.
		Skipped []string
	}

	// Resolver resolves and applies catalog libraries to targets.
	Resolver struct {
		fallback FallbackChain
		logger   *slog.Logger
	}

	// Option configures a Resolver.
	Option func(*Resolver)
)

// WithFallbackChain replaces the default fallback chain.
func WithFallbackChain(chain FallbackChain) Option {
	return func(r *Resolver) { r.fallback = chain }
}

// WithLogger sets the logger used for declaration and skip messages.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a Resolver using DefaultFallbackChain and slog.Default.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		fallback: DefaultFallbackChain(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FallbackChain returns the chain the resolver walks.
func (r *Resolver) FallbackChain() FallbackChain { return r.fallback }

// Resolve returns the configurations of available that opts selects.
func (r *Resolver) Resolve(opts Options, available []string) []string {
	return resolve(opts, available, r.fallback)
}

// Apply declares entry on every configuration of target it resolves to and
// reports whether at least one configuration received it. Libraries that
// resolve to nothing are not checked further; a platform without a version
// that does resolve fails with *PlatformVersionError.
func (r *Resolver) Apply(target Target, entry Entry) (bool, error) {
	applied, err := r.apply(target, entry)
	return applied.Configurations != nil, err
}

func (r *Resolver) apply(target Target, entry Entry) (Applied, error) {
	configurations := r.Resolve(entry.Options, target.ConfigurationNames())
	if len(configurations) == 0 {
		return Applied{Alias: entry.Alias}, nil
	}

	notation, err := NotationFor(entry.Options, entry.Coordinate)
	if err != nil {
		var pe *PlatformVersionError
		if errors.As(err, &pe) {
			pe.Alias = entry.Alias
		}
		return Applied{Alias: entry.Alias}, err
	}

	for _, configuration := range configurations {
		if err := target.AddDependency(configuration, notation); err != nil {
			return Applied{Alias: entry.Alias}, fmt.Errorf("declare %s on %s: %w", entry.Alias, configuration, err)
		}
		r.logger.Info("dependency added",
			"configuration", configuration,
			"notation", notation.String(),
			"options", entry.Options.String())
	}
	return Applied{Alias: entry.Alias, Notation: notation, Configurations: configurations}, nil
}

// ApplyAll applies entries in alias order with platform libraries first, so
// platform constraints exist before dependent libraries are declared. The
// first fatal error stops the run.
func (r *Resolver) ApplyAll(target Target, entries []Entry) (ApplyReport, error) {
	var report ApplyReport
	for _, entry := range Order(entries) {
		applied, err := r.apply(target, entry)
		if err != nil {
			return report, err
		}
		if applied.Configurations == nil {
			r.logger.Info("library skipped", "alias", entry.Alias, "reason", "no matching configuration")
			report.Skipped = append(report.Skipped, entry.Alias)
			continue
		}
		report.Applied = append(report.Applied, applied)
	}
	return report, nil
}

// Order returns a copy of entries sorted by alias with platform entries
// moved first, keeping alias order within each group.
func Order(entries []Entry) []Entry {
	ordered := slices.Clone(entries)
	slices.SortFunc(ordered, func(a, b Entry) int { return cmp.Compare(a.Alias, b.Alias) })
	slices.SortStableFunc(ordered, func(a, b Entry) int {
		switch {
		case a.Options.Platform == b.Options.Platform:
			return 0
		case a.Options.Platform:
			return -1
		default:
			return 1
		}
	})
	return ordered
}
