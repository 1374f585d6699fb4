// SPDX-License-Identifier: MPL-2.0

// Package config loads nucleopack settings using Viper with CUE as the file
// format.
//
// Settings are merged in increasing precedence: built-in defaults, the user
// config file (config.cue in the platform config directory), the project
// file (nucleopack.cue in the working directory, or the file given with
// --config), NUCLEOPACK_* environment variables, and finally command-line
// flags bound by the CLI. Every config file is validated against the
// embedded schema (config_schema.cue) before it is merged.
package config
