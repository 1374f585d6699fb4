// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform file naming checks.
package platform

import "strings"

// windowsReservedNames cannot be used as a file's base name on Windows,
// whatever the extension.
var windowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsWindowsReservedName reports whether name, or name up to its first dot,
// is a reserved device name. "nul.min.js" is reserved just like "NUL".
func IsWindowsReservedName(name string) bool {
	base, _, _ := strings.Cut(strings.ToUpper(name), ".")
	return windowsReservedNames[strings.TrimRight(base, " ")]
}
