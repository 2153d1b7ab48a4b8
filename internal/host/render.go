// SPDX-License-Identifier: MPL-2.0

package host

import (
	"fmt"
	"strings"
)

// RenderSettingsScript renders the settings as a Kotlin DSL script that
// includes every project and registers every catalog.
func RenderSettingsScript(s *Settings) string {
	var sb strings.Builder
	sb.WriteString("// Generated by gradlewire. Do not edit.\n\n")
	fmt.Fprintf(&sb, "rootProject.name = %q\n", s.RootName())

	if catalogs := s.Catalogs(); len(catalogs) > 0 {
		sb.WriteString("\ndependencyResolutionManagement {\n    versionCatalogs {\n")
		for _, c := range catalogs {
			fmt.Fprintf(&sb, "        create(%q) {\n            from(files(%q))\n        }\n", c.Name, c.File)
		}
		sb.WriteString("    }\n}\n")
	}

	for _, inc := range s.Includes() {
		fmt.Fprintf(&sb, "\ninclude(%q)\n", inc.ProjectPath)
		fmt.Fprintf(&sb, "project(%q).name = %q\n", inc.ProjectPath, inc.ProjectName)
		fmt.Fprintf(&sb, "project(%q).projectDir = rootDir.resolve(%q)\n", inc.ProjectPath, inc.Dir)
	}
	return sb.String()
}
