// SPDX-License-Identifier: MPL-2.0

package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gradlewire/gradlewire/internal/host"
)

// SettingsScriptPath is where WriteSettingsScript places the rendered
// settings, relative to the repository root.
const SettingsScriptPath = "build/generated/gradlewire/settings.gradle.kts"

type (
	// Plan is a serializable view of a Result.
	Plan struct {
		Root      string        `json:"root"`
		Catalogs  []CatalogPlan `json:"catalogs"`
		Modules   []ModulePlan  `json:"modules"`
		Generated []string      `json:"generated,omitempty"`
	}

	CatalogPlan struct {
		Name   string `json:"name"`
		Origin string `json:"origin"`
		File   string `json:"file"`
	}

	ModulePlan struct {
		ProjectPath    string   `json:"project_path"`
		Dir            string   `json:"dir"`
		BuildFile      string   `json:"build_file,omitempty"`
		Package        string   `json:"package,omitempty"`
		Configurations []string `json:"configurations"`
		Declarations   []string `json:"declarations"`
		Skipped        []string `json:"skipped,omitempty"`
	}
)

// Plan builds the serializable view of r. Paths are relative to the root
// with forward slashes.
func (r *Result) Plan() Plan {
	root := r.Settings.RootDir()
	plan := Plan{Root: root}

	refs := r.Settings.Catalogs()
	for i, c := range r.Catalogs {
		cp := CatalogPlan{Name: c.Name(), Origin: c.Origin()}
		if i < len(refs) {
			cp.File = refs[i].File
		}
		plan.Catalogs = append(plan.Catalogs, cp)
	}

	for _, p := range r.Projects {
		mc := p.Context()
		mp := ModulePlan{
			ProjectPath:    mc.ProjectPath(),
			Dir:            mc.RelativeDir(),
			Package:        mc.PackageName(),
			Configurations: p.ConfigurationNames(),
			Declarations:   []string{},
			Skipped:        r.Reports[mc.ProjectPath()].Skipped,
		}
		if mp.Dir == "" {
			mp.Dir = "."
		}
		if bf := p.BuildFile(); bf != "" {
			mp.BuildFile = relSlash(root, bf)
		}
		for _, d := range p.Declarations() {
			mp.Declarations = append(mp.Declarations, d.String())
		}
		plan.Modules = append(plan.Modules, mp)
	}

	for _, g := range r.Generated {
		plan.Generated = append(plan.Generated, relSlash(root, g))
	}
	return plan
}

// Markdown renders the plan as a Markdown document, one section per module.
func (p Plan) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# gradlewire plan\n\n")

	if len(p.Catalogs) > 0 {
		sb.WriteString("## Catalogs\n\n| Name | Origin | File |\n|---|---|---|\n")
		for _, c := range p.Catalogs {
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", c.Name, c.Origin, c.File)
		}
		sb.WriteString("\n")
	}

	for _, m := range p.Modules {
		fmt.Fprintf(&sb, "## `%s`\n\n", m.ProjectPath)
		fmt.Fprintf(&sb, "- directory: `%s`\n", m.Dir)
		if m.Package != "" {
			fmt.Fprintf(&sb, "- package: `%s`\n", m.Package)
		}
		if len(m.Declarations) == 0 {
			sb.WriteString("\nNo dependencies declared.\n\n")
			continue
		}
		sb.WriteString("\n```kotlin\ndependencies {\n")
		for _, d := range m.Declarations {
			sb.WriteString("    " + d + "\n")
		}
		sb.WriteString("}\n```\n\n")
	}
	return sb.String()
}

// WriteSettingsScript writes the Kotlin DSL settings of r below the root and
// returns the file path.
func (r *Result) WriteSettingsScript() (string, error) {
	path := filepath.Join(r.Settings.RootDir(), filepath.FromSlash(SettingsScriptPath))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", writeError(path, err)
	}
	if err := os.WriteFile(path, []byte(host.RenderSettingsScript(r.Settings)), 0o644); err != nil {
		return "", writeError(path, err)
	}
	return path, nil
}

func relSlash(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
