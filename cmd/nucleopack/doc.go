// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the nucleopack CLI.
//
// The root command performs a build: it reads the module manifest, renders
// the licence header, concatenates the listed modules in order and writes
// the library (optionally minified). The config and about subcommands
// inspect the effective configuration and the tool build.
package cmd
