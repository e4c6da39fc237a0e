package diagfmt

import (
	"strings"
	"testing"

	"pl0/internal/diag"
	"pl0/internal/source"
)

func TestPrintPlain(t *testing.T) {
	file := source.NewFile("demo.pl0", []byte("begin\n\tx := 1\nend\n"))
	var out strings.Builder
	p := New(&out, false)
	p.Print(file, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SemUndeclared,
		Message:  "constant or variable identifier required",
		Pos:      7, // the x on line 2
	})
	got := out.String()
	want := "error[P3001] demo.pl0:2:2: constant or variable identifier required\n" +
		"  \tx := 1\n" +
		"  \t^\n"
	if got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrintColored(t *testing.T) {
	file := source.NewFile("demo.pl0", []byte("begin end\n"))
	var out strings.Builder
	p := New(&out, true)
	p.Print(file, diag.Diagnostic{
		Severity: diag.SevError,
		Code:     diag.SynUnexpectedToken,
		Message:  "expected statement, found end",
		Pos:      6,
	})
	if !strings.Contains(out.String(), "\x1b[") {
		t.Error("colored output has no escape sequences")
	}
}

func TestPrintAllCountsErrors(t *testing.T) {
	file := source.NewFile("demo.pl0", []byte("begin x := 1 end\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{Severity: diag.SevError, Code: diag.SemUndeclared, Message: "m", Pos: 6})
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.UnknownCode, Message: "w", Pos: 0})
	var out strings.Builder
	if n := New(&out, false).PrintAll(file, bag); n != 1 {
		t.Errorf("errors = %d, want 1", n)
	}
	// sorted output puts the warning at position 0 first
	first := strings.SplitN(out.String(), "\n", 2)[0]
	if !strings.HasPrefix(first, "warning") {
		t.Errorf("first line = %q, want warning first", first)
	}
}

func TestNoPosDiagnostic(t *testing.T) {
	file := source.NewFile("demo.pl0", []byte("begin end\n"))
	var out strings.Builder
	New(&out, false).Print(file, diag.Diagnostic{
		Severity: diag.SevFatal,
		Code:     diag.IntInternal,
		Message:  "internal error",
		Pos:      source.NoPos,
	})
	if !strings.Contains(out.String(), "internal error") {
		t.Errorf("output = %q", out.String())
	}
}
