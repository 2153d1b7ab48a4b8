// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gradlewire/gradlewire/internal/config"
	"github.com/gradlewire/gradlewire/internal/watch"

	"github.com/spf13/cobra"
)

func newWatchCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var (
		out         planOutput
		debounce    time.Duration
		clearScreen bool
		ignore      []string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-plan whenever a build file, catalog or .gitignore changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), app, flags, &out, watch.Config{
				Ignore:      ignore,
				Debounce:    debounce,
				ClearScreen: clearScreen,
			})
		},
	}
	out.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "quiet period before re-planning")
	cmd.Flags().BoolVar(&clearScreen, "clear", false, "clear the screen before each plan")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "additional glob patterns to ignore")
	return cmd
}

// runWatch plans once, then re-plans on every relevant change until ctx is
// cancelled. Failed plans are reported and the watch goes on.
func runWatch(ctx context.Context, app *App, flags *rootFlagValues, out *planOutput, wcfg watch.Config) error {
	cfg, root, err := app.loadConfig(ctx, flags)
	if err != nil {
		return err
	}

	replan := func(ctx context.Context) {
		res, err := app.apply(ctx, flags, true)
		if err != nil {
			fmt.Fprintln(app.stderr, WarningStyle.Render("! ")+formatErrorForDisplay(err, false))
			return
		}
		if err := out.write(app.stdout, res.Plan()); err != nil {
			fmt.Fprintln(app.stderr, WarningStyle.Render("! ")+err.Error())
		}
	}

	replan(ctx)
	fmt.Fprintf(app.stderr, "%s Watching %s for changes (Ctrl+C to stop)...\n", CmdStyle.Render("→"), root)

	wcfg.Patterns = watch.BuildPatterns(cfg.BuildFiles, cfg.Catalogs, config.FileName)
	wcfg.BaseDir = root
	wcfg.Out = app.stdout
	wcfg.Logger = app.logger
	wcfg.OnChange = func(ctx context.Context, changed []string) error {
		fmt.Fprintf(app.stderr, "%s Detected %d change(s). Re-planning...\n", CmdStyle.Render("→"), len(changed))
		replan(ctx)
		return nil
	}

	w, err := watch.New(wcfg)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	return w.Run(ctx)
}
