// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// The parsing flow is always the same three steps:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify it with a schema definition
//  3. Validate and decode the result
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[map[string]any](
//	    schema,
//	    data,
//	    "#Config",
//	    cueutil.WithFilename("nucleopack.cue"),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and a JSON-style path to the offending field,
// e.g. "nucleopack.cue: ui.color: 3 errors in empty disjunction".
package cueutil
