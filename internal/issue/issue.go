// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

const (
	ConfigLoadFailedId Id = iota + 1
	ScanFailedId
	CatalogNotFoundId
	CatalogParseErrorId
	PlatformVersionRequiredId
	DuplicateProjectId
	WriteFailedId
)

type (
	Id int

	MarkdownMsg string

	HttpLink string

	Issue struct {
		id       Id          // ID used to lookup the issue
		mdMsg    MarkdownMsg // Markdown text that will be rendered
		docLinks []HttpLink
		extLinks []HttpLink // external links that might be useful for the user
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
		for _, link := range i.extLinks {
			extraMd += "\n- <" + string(link) + ">"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load gradlewire.cue!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Print the effective configuration and compare:
~~~
$ gradlewire config show
~~~
- Recreate a default file:
~~~
$ gradlewire config init --force
~~~
- Check for misspelled keys; unknown keys are rejected`,
	}

	scanFailedIssue = &Issue{
		id: ScanFailedId,
		mdMsg: `
# Could not scan the repository!

The project tree could not be walked from the repository root.

## Things you can try:
- Run gradlewire from the repository root, or pass ` + "`--root`" + `
- Make sure the root directory exists and is readable
- Run with ` + "`--verbose`" + ` to list skipped directories`,
	}

	catalogNotFoundIssue = &Issue{
		id: CatalogNotFoundId,
		mdMsg: `
# Version catalog not found!

A catalog listed in the configuration could not be read.

## Things you can try:
- Check the ` + "`catalogs`" + ` patterns in gradlewire.cue
- Patterns are relative to the repository root and support ` + "`**`" + ``,
		extLinks: []HttpLink{"https://docs.gradle.org/current/userguide/version_catalogs.html"},
	}

	catalogParseErrorIssue = &Issue{
		id: CatalogParseErrorId,
		mdMsg: `
# Failed to parse version catalog!

The catalog is not valid TOML or one of its libraries is malformed.

## Common issues:
- Two library keys that only differ by ` + "`-`" + ` and ` + "`_`" + ` (they map to the same alias)
- ` + "`version.ref`" + ` pointing at a name missing from ` + "`[versions]`" + `
- Unknown keys inside ` + "`autoConfigOptions`" + `

## Example library with options:
~~~toml
[libraries]
lombok = { module = "org.projectlombok:lombok", version = "1.18.34", autoConfigOptions = { strictConfigurations = true, configurations = ["compileOnly", "annotationProcessor"] } }
~~~`,
		extLinks: []HttpLink{"https://docs.gradle.org/current/userguide/version_catalogs.html"},
	}

	platformVersionRequiredIssue = &Issue{
		id: PlatformVersionRequiredId,
		mdMsg: `
# Platform without a version!

A library marked ` + "`platform = true`" + ` has no version. Enforced platforms
must pin one, since they are what supplies versions to other libraries.

## Things you can try:
- Add a version or ` + "`version.ref`" + ` to the library
- Remove ` + "`platform = true`" + ` if the library is not a BOM`,
	}

	duplicateProjectIssue = &Issue{
		id: DuplicateProjectId,
		mdMsg: `
# Two directories map to the same project!

Project names are derived from directory names, so ` + "`web-api`" + ` and
` + "`web/api`" + ` both become ` + "`:web-api`" + `.

## Things you can try:
- Rename one of the directories
- Add one of them to a ` + "`.gitignore`" + ` or to ` + "`excluded_dirs`",
	}

	writeFailedIssue = &Issue{
		id: WriteFailedId,
		mdMsg: `
# Could not write generated files!

## Things you can try:
- Check permissions of the ` + "`build`" + ` directories
- Change ` + "`output_dir`" + ` in gradlewire.cue`,
	}

	issues = map[Id]*Issue{
		configLoadFailedIssue.Id():        configLoadFailedIssue,
		scanFailedIssue.Id():              scanFailedIssue,
		catalogNotFoundIssue.Id():         catalogNotFoundIssue,
		catalogParseErrorIssue.Id():       catalogParseErrorIssue,
		platformVersionRequiredIssue.Id(): platformVersionRequiredIssue,
		duplicateProjectIssue.Id():        duplicateProjectIssue,
		writeFailedIssue.Id():             writeFailedIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, id := range slices.Sorted(maps.Keys(issues)) {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
