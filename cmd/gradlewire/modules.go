// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/gradlewire/gradlewire/internal/discovery"
	"github.com/gradlewire/gradlewire/pkg/naming"

	"github.com/spf13/cobra"
)

// moduleInfo is one row of `gradlewire modules`.
type moduleInfo struct {
	ProjectPath string `json:"project_path"`
	Dir         string `json:"dir"`
	BuildFile   string `json:"build_file"`
	Package     string `json:"package"`
}

func newModulesCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "List the modules discovered below the root",
		Long: `List the modules discovered below the root.

A module is a directory holding one of the configured build files that is
not excluded, ignored by a .gitignore, or nested below a src/build folder.
The root directory itself is never listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			modules, diags, err := listModules(cmd, app, flags)
			if err != nil {
				return err
			}
			renderDiagnostics(app.stderr, diags)
			if asJSON {
				enc := json.NewEncoder(app.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(modules)
			}
			renderModules(app.stdout, modules)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the modules as JSON")
	return cmd
}

func listModules(cmd *cobra.Command, app *App, flags *rootFlagValues) ([]moduleInfo, []discovery.Diagnostic, error) {
	ctx := cmd.Context()
	cfg, root, err := app.loadConfig(ctx, flags)
	if err != nil {
		return nil, nil, err
	}

	scanner := discovery.New(root,
		discovery.WithBuildFiles(cfg.BuildFiles...),
		discovery.WithExcludedDirs(cfg.ExcludedDirs...),
		discovery.WithLogger(app.logger),
	)
	group := naming.GroupSegments(cfg.Group, "")

	modules := []moduleInfo{}
	for m, scanErr := range scanner.Scan(ctx) {
		if scanErr != nil {
			return nil, nil, scanErr
		}
		mc, deriveErr := naming.Derive(m.Dir, m.PathSegments, group)
		if errors.Is(deriveErr, naming.ErrEmptyName) {
			continue
		}
		if deriveErr != nil {
			return nil, nil, deriveErr
		}
		modules = append(modules, moduleInfo{
			ProjectPath: mc.ProjectPath(),
			Dir:         m.RelDir(),
			BuildFile:   filepath.Base(m.BuildFile),
			Package:     mc.PackageName(),
		})
	}
	return modules, scanner.Diagnostics(), nil
}

func renderModules(w io.Writer, modules []moduleInfo) {
	if len(modules) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No modules found."))
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tDIRECTORY\tBUILD FILE\tPACKAGE")
	for _, m := range modules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.ProjectPath, m.Dir, m.BuildFile, m.Package)
	}
	_ = tw.Flush()
}

func renderDiagnostics(w io.Writer, diags []discovery.Diagnostic) {
	for _, d := range diags {
		line := d.Message
		if d.Path != "" {
			line = d.Path + ": " + line
		}
		fmt.Fprintln(w, WarningStyle.Render(string(d.Severity)+": ")+line)
	}
}
