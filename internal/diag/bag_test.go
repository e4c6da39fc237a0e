package diag

import (
	"testing"

	"pl0/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := 0; i < 3; i++ {
		added := b.Add(Diagnostic{Severity: SevError, Code: SemUndeclared, Pos: source.Pos(i)})
		if added != (i < 2) {
			t.Errorf("Add #%d = %v", i, added)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(10)
	if b.HasErrors() {
		t.Error("empty bag reports errors")
	}
	b.Add(Diagnostic{Severity: SevWarning, Code: UnknownCode})
	if b.HasErrors() {
		t.Error("warning-only bag reports errors")
	}
	b.Add(Diagnostic{Severity: SevError, Code: SemUndeclared})
	if !b.HasErrors() {
		t.Error("bag with error does not report errors")
	}
	if b.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d, want 1", b.ErrorCount())
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevError, Code: SemUndeclared, Pos: 20})
	b.Add(Diagnostic{Severity: SevError, Code: SemRedeclared, Pos: source.NoPos})
	b.Add(Diagnostic{Severity: SevError, Code: SemIncompatible, Pos: 5})
	b.Sort()
	got := b.Items()
	if got[0].Pos != 5 || got[1].Pos != 20 || got[2].Pos != source.NoPos {
		t.Errorf("unexpected order after Sort: %v", got)
	}
}

func TestBagReporterFatalPanics(t *testing.T) {
	b := NewBag(10)
	r := BagReporter{Bag: b}
	defer func() {
		v := recover()
		f, ok := v.(Fatal)
		if !ok {
			t.Fatalf("recovered %v, want Fatal", v)
		}
		if f.Diagnostic.Code != IntInternal {
			t.Errorf("fatal code = %v, want IntInternal", f.Diagnostic.Code)
		}
		if b.Len() != 1 {
			t.Errorf("bag len = %d, want 1", b.Len())
		}
	}()
	r.Fatal(IntInternal, source.NoPos, "boom")
	t.Fatal("Fatal returned")
}
