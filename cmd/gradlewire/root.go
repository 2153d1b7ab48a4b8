// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gradlewire/gradlewire/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "gradlewire",
		Short: "Discover Gradle modules and wire catalog dependencies",
		Long: TitleStyle.Render("gradlewire") + SubtitleStyle.Render(" - Gradle settings wiring from version catalogs") + `

gradlewire walks a repository for build.gradle and build.gradle.kts files,
includes every module as a project, and declares the libraries of the
version catalogs in each project according to their autoConfigOptions.

` + SubtitleStyle.Render("Examples:") + `
  gradlewire modules            List the discovered modules
  gradlewire plan               Print the declarations per project
  gradlewire generate           Write catalogs, scaffolding and settings
  gradlewire watch              Re-plan whenever a build file changes
  gradlewire config init        Create a gradlewire.cue`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setVerbose(flags.verbose)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <root>/gradlewire.cue)")
	rootCmd.PersistentFlags().StringVarP(&flags.rootDir, "root", "C", ".", "repository root")

	rootCmd.AddCommand(newModulesCommand(app, flags))
	rootCmd.AddCommand(newPlanCommand(app, flags))
	rootCmd.AddCommand(newGenerateCommand(app, flags))
	rootCmd.AddCommand(newCatalogCommand(app))
	rootCmd.AddCommand(newWatchCommand(app, flags))
	rootCmd.AddCommand(newConfigCommand(app, flags))
	rootCmd.AddCommand(newVersionCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI with the process arguments. It is called by main.main.
func Execute() {
	app := NewApp(Dependencies{})
	slog.SetDefault(app.logger)
	rootCmd := NewRootCommand(app)

	// fang overrides rootCmd.Version, so the version goes through WithVersion.
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(errorHandler(rootCmd)),
	); err != nil {
		os.Exit(exitCode(err))
	}
}

// errorHandler prints actionable errors with their suggestions and leaves
// everything else to fang.
func errorHandler(rootCmd *cobra.Command) fang.ErrorHandler {
	return func(w io.Writer, styles fang.Styles, err error) {
		var ae *issue.ActionableError
		if !errors.As(err, &ae) {
			fang.DefaultErrorHandler(w, styles, err)
			return
		}
		verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
		fmt.Fprintln(w, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		if !verbose {
			return
		}
		if guide := ae.Guide(); guide != nil {
			if rendered, renderErr := guide.Render("dark"); renderErr == nil {
				fmt.Fprint(w, rendered)
			}
		}
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the gradlewire version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(app.stdout, "gradlewire "+getVersionString())
		},
	}
}
