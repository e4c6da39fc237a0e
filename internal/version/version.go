// Package version records build metadata for the pl0 CLI.
package version

import "github.com/fatih/color"

// Overridable at build time via -ldflags.
var (
	// Number is the semantic version of the toolchain.
	Number = "0.1.0"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var numberColor = color.New(color.FgCyan, color.Bold)

// String renders the full human-readable version line.
func String() string {
	s := "pl0 " + numberColor.Sprint(Number)
	if GitCommit != "" {
		s += " (" + GitCommit + ")"
	}
	if BuildDate != "" {
		s += " built " + BuildDate
	}
	return s
}
