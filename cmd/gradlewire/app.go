// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gradlewire/gradlewire/internal/config"
	"github.com/gradlewire/gradlewire/internal/plugin"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. Command handlers
	// receive an App and never touch package globals.
	App struct {
		Config config.Provider
		stdout io.Writer
		stderr io.Writer
		logger *slog.Logger
		logs   *log.Logger
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
	}

	// rootFlagValues holds the persistent flags of the root command.
	rootFlagValues struct {
		verbose    bool
		configPath string
		rootDir    string
	}
)

// NewApp builds an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	// Plugin progress is logged at info and debug, so only warnings show
	// unless verbose is set.
	app.logs = log.NewWithOptions(app.stderr, log.Options{
		Prefix: "gradlewire",
		Level:  log.WarnLevel,
	})
	app.logger = slog.New(app.logs)
	return app
}

func (a *App) setVerbose(verbose bool) {
	if verbose {
		a.logs.SetLevel(log.DebugLevel)
	}
}

// loadConfig resolves the repository root and loads its configuration.
func (a *App) loadConfig(ctx context.Context, flags *rootFlagValues) (*config.Config, string, error) {
	root, err := filepath.Abs(flags.rootDir)
	if err != nil {
		return nil, "", err
	}
	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: flags.configPath,
		RootDir:        root,
	})
	if err != nil {
		return nil, "", &ExitError{Code: exitConfig, Err: err}
	}
	return cfg, root, nil
}

// apply loads the configuration and runs the plugin once.
func (a *App) apply(ctx context.Context, flags *rootFlagValues, dryRun bool) (*plugin.Result, error) {
	cfg, root, err := a.loadConfig(ctx, flags)
	if err != nil {
		return nil, err
	}
	p := plugin.New(cfg, plugin.WithLogger(a.logger), plugin.WithDryRun(dryRun))
	return p.Apply(ctx, root)
}
