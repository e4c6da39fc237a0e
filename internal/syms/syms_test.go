package syms

import (
	"testing"

	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/types"
	"pl0/internal/vm"
)

func newTestTable() (*Table, *types.Resolver, *diag.Bag) {
	bag := diag.NewBag(0)
	return NewTable(), types.NewResolver(diag.BagReporter{Bag: bag}), bag
}

func TestPredefinedScope(t *testing.T) {
	tab, r, bag := newTestTable()
	pre := tab.Scope(PredefinedScope)
	if pre.Level() != 0 {
		t.Errorf("predefined level = %d, want 0", pre.Level())
	}
	intEntry, ok := pre.Lookup("int").(*TypeEntry)
	if !ok {
		t.Fatalf("int not bound to a type entry")
	}
	if intEntry.Type(r) != types.Type(tab.Predef().Int) {
		t.Errorf("int resolves to %v", intEntry.Type(r))
	}
	for name, want := range map[string]int{"false": 0, "true": 1, "nil": vm.NullAddr} {
		c, ok := pre.Lookup(name).(*ConstantEntry)
		if !ok {
			t.Fatalf("%s not bound to a constant entry", name)
		}
		if c.Value(r) != want {
			t.Errorf("%s = %d, want %d", name, c.Value(r), want)
		}
	}
	eq, ok := pre.Lookup("_=_").(*OperatorEntry)
	if !ok {
		t.Fatalf("_=_ not bound to an operator entry")
	}
	ix, ok := eq.Type(r).(*types.Intersection)
	if !ok {
		t.Fatalf("overloaded _=_ has type %v, want intersection", eq.Type(r))
	}
	if len(ix.Elems()) != 3 {
		t.Errorf("_=_ has %d overloads, want 3", len(ix.Elems()))
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestRedeclareFails(t *testing.T) {
	tab, r, _ := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	intType := tab.Predef().Int
	first := s.AddVariable("x", source.NoPos, types.NewReference(intType))
	if first == nil {
		t.Fatalf("first declaration rejected")
	}
	if s.AddConstant("x", source.NoPos, types.NewConstNumber(source.NoPos, intType, 1)) != nil {
		t.Errorf("redeclaration in same scope accepted")
	}
	if s.Lookup("x") != Entry(first) {
		t.Errorf("original binding disturbed by failed redeclaration")
	}
	_ = r
}

func TestShadowing(t *testing.T) {
	tab, r, _ := newTestTable()
	outer := tab.Scope(tab.NewScope(PredefinedScope))
	inner := tab.Scope(tab.NewScope(outer.ID()))
	intType := tab.Predef().Int
	ov := outer.AddVariable("x", source.NoPos, types.NewReference(intType))
	iv := inner.AddVariable("x", source.NoPos, types.NewReference(intType))
	if iv == nil {
		t.Fatalf("shadowing declaration rejected")
	}
	if inner.Lookup("x") != Entry(iv) {
		t.Errorf("inner lookup does not find the shadowing binding")
	}
	if outer.Lookup("x") != Entry(ov) {
		t.Errorf("outer lookup affected by shadowing")
	}
	if inner.Level() != outer.Level()+1 {
		t.Errorf("inner level = %d, outer = %d", inner.Level(), outer.Level())
	}
	_ = r
}

func TestVariableOffsetsSortOrder(t *testing.T) {
	tab, r, _ := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	intType := tab.Predef().Int
	// declared b before a; resolution runs in identifier-sort order, so a
	// is allocated first
	b := s.AddVariable("b", source.NoPos, types.NewReference(intType))
	a := s.AddVariable("a", source.NoPos, types.NewReference(intType))
	s.Resolve(r)
	if got := a.Offset(); got != vm.LocalsBase {
		t.Errorf("a offset = %d, want %d", got, vm.LocalsBase)
	}
	if got := b.Offset(); got != vm.LocalsBase+vm.SizeOfInt {
		t.Errorf("b offset = %d, want %d", got, vm.LocalsBase+vm.SizeOfInt)
	}
	if got := s.VariableSpace(); got != 2*vm.SizeOfInt {
		t.Errorf("variable space = %d, want %d", got, 2*vm.SizeOfInt)
	}
}

func TestTypeAliasCycle(t *testing.T) {
	tab, r, bag := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	ea := s.AddType("A", source.NoPos, types.NewIdRef(source.NoPos, "B", s))
	eb := s.AddType("B", source.NoPos, types.NewIdRef(source.NoPos, "A", s))
	s.Resolve(r)
	if ea.Type(r) != types.Error || eb.Type(r) != types.Error {
		t.Errorf("cycle members resolve to %v and %v, want error type",
			ea.Type(r), eb.Type(r))
	}
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want exactly 1: %v", got, bag.Items())
	}
	if bag.Items()[0].Code != diag.SemCircularType {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.SemCircularType)
	}
}

func TestConstantCycle(t *testing.T) {
	tab, r, bag := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	ca := s.AddConstant("a", source.NoPos, NewConstIdent(source.NoPos, "b", s))
	cb := s.AddConstant("b", source.NoPos, NewConstIdent(source.NoPos, "a", s))
	s.Resolve(r)
	if ca.Type(r) != types.Error || cb.Type(r) != types.Error {
		t.Errorf("cycle members typed %v and %v, want error type", ca.Type(r), cb.Type(r))
	}
	if ca.Value(r) != 0 || cb.Value(r) != 0 {
		t.Errorf("cycle members valued %d and %d, want 0", ca.Value(r), cb.Value(r))
	}
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want exactly 1: %v", got, bag.Items())
	}
	if bag.Items()[0].Code != diag.SemCircularConst {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.SemCircularConst)
	}
}

func TestConstantChain(t *testing.T) {
	tab, r, bag := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	intType := tab.Predef().Int
	s.AddConstant("a", source.NoPos, NewConstIdent(source.NoPos, "b", s))
	s.AddConstant("b", source.NoPos, types.NewConstNumber(source.NoPos, intType, 7))
	neg := s.AddConstant("c", source.NoPos,
		NewConstNegate(source.NoPos, s, NewConstIdent(source.NoPos, "a", s)))
	s.Resolve(r)
	if got := neg.Value(r); got != -7 {
		t.Errorf("c = %d, want -7", got)
	}
	if neg.Type(r) != types.Type(intType) {
		t.Errorf("c typed %v, want int", neg.Type(r))
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestNegateNonInteger(t *testing.T) {
	tab, r, bag := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	c := s.AddConstant("a", source.NoPos,
		NewConstNegate(source.NoPos, s, NewConstIdent(source.NoPos, "true", s)))
	s.Resolve(r)
	if c.Type(r) != types.Error {
		t.Errorf("negated boolean typed %v, want error type", c.Type(r))
	}
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1: %v", got, bag.Items())
	}
	if bag.Items()[0].Code != diag.SemNegateNonInteger {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.SemNegateNonInteger)
	}
}

func TestOperatorOverloadSameLevel(t *testing.T) {
	tab, r, _ := newTestTable()
	s := tab.Scope(tab.NewScope(PredefinedScope))
	intType := tab.Predef().Int
	boolType := tab.Predef().Boolean
	f := types.NewFunction(intType, intType)
	g := types.NewFunction(boolType, boolType)
	first := s.AddOperator("~_", source.NoPos, f)
	second := s.AddOperator("~_", source.NoPos, g)
	if first != second {
		t.Fatalf("same-level overload created a new entry")
	}
	ix, ok := first.Type(r).(*types.Intersection)
	if !ok {
		t.Fatalf("overloaded operator typed %v, want intersection", first.Type(r))
	}
	if got := ix.Elems(); len(got) != 2 || got[0] != types.Type(f) || got[1] != types.Type(g) {
		t.Errorf("overload set %v does not preserve declaration order", got)
	}
}

func TestOperatorOverloadOuterCopied(t *testing.T) {
	tab, r, _ := newTestTable()
	inner := tab.Scope(tab.NewScope(PredefinedScope))
	intType := tab.Predef().Int
	extra := types.NewFunction(intType, intType)
	outer, ok := tab.Scope(PredefinedScope).Lookup("_+_").(*OperatorEntry)
	if !ok {
		t.Fatalf("_+_ not predefined")
	}
	outerType := outer.Type(r)
	e := inner.AddOperator("_+_", source.NoPos, extra)
	if e == outer {
		t.Fatalf("outer-level overload extended the outer entry")
	}
	ix, ok := e.Type(r).(*types.Intersection)
	if !ok {
		t.Fatalf("extended operator typed %v, want intersection", e.Type(r))
	}
	if len(ix.Elems()) != 2 {
		t.Errorf("extended overload set has %d members, want 2", len(ix.Elems()))
	}
	if got, ok := tab.Scope(PredefinedScope).Lookup("_+_").(*OperatorEntry); !ok || got.Type(r) != outerType {
		t.Errorf("outer binding mutated by inner overload")
	}
}
