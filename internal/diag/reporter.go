package diag

import (
	"fmt"

	"pl0/internal/source"
)

// Reporter is the minimal contract through which phases report problems.
// Error accumulates and returns; Fatal must not return.
type Reporter interface {
	Error(code Code, pos source.Pos, msg string)
	Fatal(code Code, pos source.Pos, msg string)
}

// Errorf reports a formatted recoverable error.
func Errorf(r Reporter, code Code, pos source.Pos, format string, args ...any) {
	r.Error(code, pos, fmt.Sprintf(format, args...))
}

// Fatalf reports a formatted fatal error and does not return.
func Fatalf(r Reporter, code Code, pos source.Pos, format string, args ...any) {
	r.Fatal(code, pos, fmt.Sprintf(format, args...))
}

// BagReporter adapts a *Bag to the Reporter interface.
type BagReporter struct {
	Bag *Bag
}

func (r BagReporter) Error(code Code, pos source.Pos, msg string) {
	r.Bag.Add(Diagnostic{Severity: SevError, Code: code, Message: msg, Pos: pos})
}

// Fatal records the diagnostic and aborts compilation by panicking with a
// Fatal value. The driver recovers it.
func (r BagReporter) Fatal(code Code, pos source.Pos, msg string) {
	d := Diagnostic{Severity: SevFatal, Code: code, Message: msg, Pos: pos}
	r.Bag.Add(d)
	panic(Fatal{Diagnostic: d})
}
