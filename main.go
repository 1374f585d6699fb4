// SPDX-License-Identifier: MPL-2.0

// Command nucleopack packages Nucleo.js modules into a single library file.
package main

import cmd "github.com/nucleojs/nucleopack/cmd/nucleopack"

func main() {
	cmd.Execute()
}
