// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	FileNotFoundId Id = iota + 1
	ModuleNotFoundId
	LicenceFormatId
	MinifierFailedId
	ConfigLoadFailedId
	DuplicateModuleId
	OutputWriteFailedId
)

type Id int

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

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

// Render renders the Markdown help card with the given glamour style
// ("dark", "light", "notty", ...).
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

	fileNotFoundIssue = &Issue{
		id: FileNotFoundId,
		mdMsg: `
# Input file not found!

One of the packaging inputs could not be opened.

## Inputs read by every run:
- the licence template (` + "`-licence`" + `)
- the module manifest (` + "`-include`" + `)
- the source directory (` + "`-source`" + `)

## Things you can try:
- Check the paths are relative to the directory you run nucleopack from
- Show the effective configuration:
~~~
$ nucleopack config show
~~~`,
	}

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# Module not found!

The manifest names a module that has no source file under the source directory.
Nothing was written.

## How modules are resolved:
A manifest line ` + "`Camera`" + ` matches any file named ` + "`Camera.js`" + ` anywhere under
the source directory (the extension follows ` + "`--ext`" + `).

## Things you can try:
- Check the spelling and case of the manifest entry
- Make sure the file is not excluded by an ` + "`exclude`" + ` pattern
- Remove the entry from the manifest if the module was deleted`,
	}

	licenceFormatIssue = &Issue{
		id: LicenceFormatId,
		mdMsg: `
# Licence template is malformed!

The licence template must contain exactly one ` + "`%s`" + ` slot, which receives the version.

## Template rules:
- ` + "`%s`" + ` is replaced by the version, exactly once
- ` + "`%%`" + ` produces a literal percent sign
- any other ` + "`%`" + ` sequence is rejected

## Example:
~~~
/* Nucleo.js %s | MIT licence | 100%% hand-assembled */
~~~`,
	}

	minifierFailedIssue = &Issue{
		id: MinifierFailedId,
		mdMsg: `
# Minifier failed!

The external minifier did not produce a minified library. The unminified
library was written; the ` + "`.min`" + ` artifact was not.

## Common causes:
- ` + "`java`" + ` is not installed or not in PATH
- ` + "`yui.jar`" + ` is not in the working directory
- the minifier rejected the assembled source

## Things you can try:
- Run with ` + "`--verbose`" + ` to see the exact command line
- Point ` + "`minifier`" + ` in nucleopack.cue at another tool:
~~~cue
minifier: "java -jar $HOME/tools/yui.jar --type {ext} --line-break 500 {in} -o {out}"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the nucleopack configuration file.

## Configuration file locations:
- ` + "`--config <path>`" + ` when given
- ` + "`nucleopack.cue`" + ` in the current directory

## Things you can try:
- Create a default configuration:
~~~
$ nucleopack config init
~~~
- Check the configuration syntax

## Example configuration:
~~~cue
version: "0.9.1"
licence: "build/licence.txt"
source:  "source"
include: "build/include.txt"
odir:    "dist"
minify:  true
~~~`,
	}

	duplicateModuleIssue = &Issue{
		id: DuplicateModuleId,
		mdMsg: `
# Duplicate module name!

Two files under the source directory share the same module name, and the
duplicate policy is ` + "`error`" + `.

## Things you can try:
- Rename one of the files
- Exclude one of the directories with an ` + "`exclude`" + ` pattern
- Accept last-scanned-wins resolution with ` + "`--duplicates last-wins`",
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Could not write the library!

The output directory is missing or not writable.

## Things you can try:
- Create the directory, or set ` + "`create_output_dir: true`" + ` in nucleopack.cue
- Check the directory permissions`,
	}

	issues = map[Id]*Issue{
		fileNotFoundIssue.Id():      fileNotFoundIssue,
		moduleNotFoundIssue.Id():    moduleNotFoundIssue,
		licenceFormatIssue.Id():     licenceFormatIssue,
		minifierFailedIssue.Id():    minifierFailedIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		duplicateModuleIssue.Id():   duplicateModuleIssue,
		outputWriteFailedIssue.Id(): outputWriteFailedIssue,
	}
)

// Values returns every catalogue entry ordered by Id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
