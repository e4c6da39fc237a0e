// Package diag defines diagnostics and the reporting contract shared by
// every compiler phase. Phases report through a Reporter; the driver owns
// the Bag that accumulates what was reported.
package diag

import (
	"fmt"

	"pl0/internal/source"
)

// Diagnostic is a single reported problem with its source position.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Pos      source.Pos
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s[%s]: %s", d.Severity, d.Code, d.Message)
}

// Fatal is the panic value used to abort compilation on an unrecoverable
// error. The driver recovers it at the pipeline boundary.
type Fatal struct {
	Diagnostic Diagnostic
}

func (f Fatal) Error() string {
	return f.Diagnostic.String()
}
