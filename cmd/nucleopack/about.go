// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// newAboutCommand prints the tool's own build. --version on the root command
// is the version of the library being packaged.
func newAboutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Show the nucleopack build",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			fmt.Fprintf(app.stdout, "nucleopack %s\n", getVersionString())
			fmt.Fprintf(app.stdout, "%s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}
}
