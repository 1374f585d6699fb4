// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError wraps a failure with the operation that was attempted, the
// file involved and hints for fixing it. The catalogue in issue.go holds
// Markdown help cards for the failures a packaging run can hit (missing
// modules, unreadable inputs, malformed licence templates, minifier
// failures); the CLI renders them with glamour below the short error line.
package issue
