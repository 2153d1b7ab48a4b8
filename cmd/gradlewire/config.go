// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gradlewire/gradlewire/internal/config"
	"github.com/gradlewire/gradlewire/internal/issue"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `gradlewire config` command tree.
func newConfigCommand(app *App, flags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gradlewire configuration",
		Long: `Manage gradlewire configuration.

Configuration is read from ` + config.FileName + ` in the repository root, or from
the file named by --config. Every key can be overridden with a ` + config.EnvPrefix + `_
environment variable, such as ` + config.EnvPrefix + `_GROUP.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := app.loadConfig(cmd.Context(), flags)
			if err != nil {
				if rendered, renderErr := issue.Get(issue.ConfigLoadFailedId).Render("dark"); renderErr == nil {
					fmt.Fprint(app.stderr, rendered)
				}
				return err
			}
			source := SubtitleStyle.Render("(using defaults)")
			if cfg.Source != "" {
				source = cfg.Source
			}
			fmt.Fprintf(app.stderr, "%s: %s\n", CmdStyle.Render("Config file"), source)
			fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default " + config.FileName + " in the repository root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := flags.configPath
			if path == "" {
				path = filepath.Join(flags.rootDir, config.FileName)
			}
			err := config.WriteFile(path, config.DefaultConfig(), force)
			if errors.Is(err, config.ErrConfigExists) {
				return issue.NewErrorContext().
					WithOperation("create configuration").
					WithResource(path).
					WithSuggestion("Pass --force to overwrite it").
					Wrap(err).
					BuildError()
			}
			if err != nil {
				return issue.WrapWithContext(err, "create configuration", path)
			}
			fmt.Fprintln(app.stdout, SuccessStyle.Render("created ")+path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}
