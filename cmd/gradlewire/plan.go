// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/gradlewire/gradlewire/internal/plugin"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// planOutput selects how a plan is printed.
type planOutput struct {
	json     bool
	markdown bool
	style    string
}

func (o *planOutput) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.json, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVar(&o.markdown, "markdown", false, "print the plan as rendered Markdown")
	cmd.Flags().StringVar(&o.style, "style", "auto", "glamour style used by --markdown (auto, dark, light, notty)")
	cmd.MarkFlagsMutuallyExclusive("json", "markdown")
}

func newPlanCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var out planOutput

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the dependencies gradlewire would declare",
		Long: `Run discovery and the catalogs against an in-memory host and print the
resulting declarations per project. Nothing is written to disk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.apply(cmd.Context(), flags, true)
			if err != nil {
				return err
			}
			return out.write(app.stdout, res.Plan())
		},
	}
	out.register(cmd)
	return cmd
}

func (o *planOutput) write(w io.Writer, plan plugin.Plan) error {
	switch {
	case o.json:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	case o.markdown:
		rendered, err := glamour.Render(plan.Markdown(), o.style)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = io.WriteString(w, rendered)
		return err
	default:
		renderPlan(w, plan)
		return nil
	}
}

func renderPlan(w io.Writer, plan plugin.Plan) {
	for _, c := range plan.Catalogs {
		fmt.Fprintf(w, "%s %s %s\n", SubtitleStyle.Render("catalog"), TitleStyle.Render(c.Name), SubtitleStyle.Render("("+c.Origin+")"))
	}
	if len(plan.Catalogs) > 0 {
		fmt.Fprintln(w)
	}

	for _, m := range plan.Modules {
		fmt.Fprintf(w, "%s %s\n", TitleStyle.Render(m.ProjectPath), SubtitleStyle.Render(m.Dir))
		if len(m.Declarations) == 0 {
			fmt.Fprintln(w, "  "+SubtitleStyle.Render("no dependencies"))
		}
		for _, d := range m.Declarations {
			fmt.Fprintln(w, "  "+CmdStyle.Render(d))
		}
		fmt.Fprintln(w)
	}
}

func newGenerateCommand(app *App, flags *rootFlagValues) *cobra.Command {
	var out planOutput

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Apply gradlewire and write the generated files",
		Long: `Apply gradlewire like plan does, then write the cleaned version catalogs,
the source folders and logback configurations of each project, and the
rendered settings script to ` + plugin.SettingsScriptPath + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.apply(cmd.Context(), flags, false)
			if err != nil {
				return err
			}
			script, err := res.WriteSettingsScript()
			if err != nil {
				return err
			}
			res.Generated = append(res.Generated, script)

			plan := res.Plan()
			if out.json || out.markdown {
				return out.write(app.stdout, plan)
			}
			for _, g := range plan.Generated {
				fmt.Fprintln(app.stdout, SuccessStyle.Render("wrote ")+g)
			}
			return nil
		},
	}
	out.register(cmd)
	return cmd
}
