// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/gradlewire/gradlewire/internal/issue"
	"github.com/gradlewire/gradlewire/pkg/catalog"

	"github.com/spf13/cobra"
)

func newCatalogCommand(app *App) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Work with version catalogs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var output string
	strip := &cobra.Command{
		Use:   "strip <file>",
		Short: "Print a catalog without its autoConfigOptions tables",
		Long: `Print a catalog without its autoConfigOptions tables. This is the document
gradlewire registers with Gradle, which rejects unknown library keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return stripCatalog(app, args[0], output)
		},
	}
	strip.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")
	catalogCmd.AddCommand(strip)

	return catalogCmd
}

func stripCatalog(app *App, path, output string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("read version catalog").
			WithResource(path).
			WithIssue(issue.CatalogNotFoundId).
			Wrap(err).
			BuildError()
	}
	stripped, err := catalog.Strip(data)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("parse version catalog").
			WithResource(path).
			WithIssue(issue.CatalogParseErrorId).
			Wrap(err).
			BuildError()
	}
	if output == "" {
		_, err = app.stdout.Write(stripped)
		return err
	}
	if err := os.WriteFile(output, stripped, 0o644); err != nil {
		return issue.WrapWithContext(err, "write catalog", output)
	}
	fmt.Fprintln(app.stdout, SuccessStyle.Render("wrote ")+output)
	return nil
}
