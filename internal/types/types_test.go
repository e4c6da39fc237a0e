package types

import (
	"math"
	"testing"

	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/vm"
)

func newTestResolver() (*Resolver, *diag.Bag) {
	bag := diag.NewBag(0)
	return NewResolver(diag.BagReporter{Bag: bag}), bag
}

func testInt() *Scalar {
	return NewScalar("int", vm.SizeOfInt, math.MinInt32, math.MaxInt32)
}

func subrange(t *testing.T, r *Resolver, base *Scalar, lo, hi int) *Subrange {
	t.Helper()
	s := NewSubrange(source.NoPos,
		NewConstNumber(source.NoPos, base, lo),
		NewConstNumber(source.NoPos, base, hi))
	r.ResolveType(s, source.NoPos)
	return s
}

func TestEqualReflexive(t *testing.T) {
	r, _ := newTestResolver()
	intType := testInt()
	all := []Type{
		Error,
		intType,
		subrange(t, r, intType, 3, 7),
		r.ResolveType(NewProduct(intType, intType), source.NoPos),
		r.ResolveType(NewFunction(intType, intType), source.NoPos),
		r.ResolveType(NewIntersection(NewFunction(intType, intType)), source.NoPos),
		r.ResolveType(NewProcedure(), source.NoPos),
		r.ResolveType(NewReference(intType), source.NoPos),
		NewPointer(Error),
	}
	for _, typ := range all {
		if !typ.Equal(typ) {
			t.Errorf("%s not equal to itself", typ)
		}
	}
}

func TestScalarIdentity(t *testing.T) {
	a := testInt()
	b := testInt()
	if a.Equal(b) {
		t.Errorf("distinct scalar instances compare equal")
	}
}

func TestSubrangeEquality(t *testing.T) {
	r, bag := newTestResolver()
	intType := testInt()
	a := subrange(t, r, intType, 3, 7)
	b := subrange(t, r, intType, 3, 7)
	c := subrange(t, r, intType, 3, 8)
	if !a.Equal(b) {
		t.Errorf("subranges with same base and bounds not equal")
	}
	if a.Equal(c) {
		t.Errorf("subranges with different bounds compare equal")
	}
	if a.Equal(intType) || intType.Equal(a) {
		t.Errorf("subrange equals its base scalar")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestSubrangeEmptyReported(t *testing.T) {
	r, bag := newTestResolver()
	s := subrange(t, r, testInt(), 7, 3)
	if !s.Resolved() {
		t.Fatalf("subrange with bad bounds left unresolved")
	}
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
	if bag.Items()[0].Code != diag.SemBadSubrange {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.SemBadSubrange)
	}
}

func TestIntersectionSetEquality(t *testing.T) {
	r, _ := newTestResolver()
	intType := testInt()
	boolType := NewScalar("boolean", vm.SizeOfBool, 0, 1)
	f := NewFunction(intType, intType)
	g := NewFunction(boolType, boolType)
	a := NewIntersection(f, g)
	b := NewIntersection(NewFunction(boolType, boolType), NewFunction(intType, intType))
	r.ResolveType(a, source.NoPos)
	r.ResolveType(b, source.NoPos)
	if !a.Equal(b) {
		t.Errorf("intersections with same member set in different order not equal")
	}
	c := NewIntersection(NewFunction(intType, intType))
	r.ResolveType(c, source.NoPos)
	if a.Equal(c) {
		t.Errorf("intersections of different sizes compare equal")
	}
}

func TestRecordLayout(t *testing.T) {
	r, _ := newTestResolver()
	rec := NewRecord(source.NoPos)
	spaces := []int{2, 1, 3}
	for i, n := range spaces {
		f := NewField(source.NoPos, string(rune('a'+i)), NewScalar("s", n, 0, 0))
		if !rec.AddField(f) {
			t.Fatalf("field %d rejected", i)
		}
	}
	r.ResolveType(rec, source.NoPos)
	wantOffsets := []int{0, 2, 3}
	for i, f := range rec.Fields() {
		if f.Offset() != wantOffsets[i] {
			t.Errorf("field %s offset = %d, want %d", f.Id(), f.Offset(), wantOffsets[i])
		}
	}
	if rec.Space() != 6 {
		t.Errorf("record space = %d, want 6", rec.Space())
	}
}

func TestRecordIdentity(t *testing.T) {
	r, _ := newTestResolver()
	intType := testInt()
	mk := func() *Record {
		rec := NewRecord(source.NoPos)
		rec.AddField(NewField(source.NoPos, "x", intType))
		r.ResolveType(rec, source.NoPos)
		return rec
	}
	a, b := mk(), mk()
	if a.Equal(b) {
		t.Errorf("structurally identical records compare equal")
	}
	if !a.Equal(a) {
		t.Errorf("record not equal to itself")
	}
}

func TestRecordDuplicateField(t *testing.T) {
	rec := NewRecord(source.NoPos)
	intType := testInt()
	if !rec.AddField(NewField(source.NoPos, "x", intType)) {
		t.Fatalf("first field rejected")
	}
	if rec.AddField(NewField(source.NoPos, "x", intType)) {
		t.Errorf("duplicate field accepted")
	}
}

func TestPointerNilBase(t *testing.T) {
	nilType := NewPointer(Error)
	if !nilType.Resolved() {
		t.Fatalf("pointer over resolved base not resolved at creation")
	}
	if nilType.Base() != Error {
		t.Errorf("nil pointer base = %v, want error type", nilType.Base())
	}
	if nilType.Space() != vm.SizeOfAddr {
		t.Errorf("pointer space = %d, want %d", nilType.Space(), vm.SizeOfAddr)
	}
}

type scopeFunc func(name string) TypeDecl

func (f scopeFunc) FindType(name string) TypeDecl { return f(name) }

type declOf struct{ typ Type }

func (d declOf) ResolveIn(r *Resolver, pos source.Pos) Type {
	return r.ResolveType(d.typ, pos)
}

func TestIdRefResolvesOnce(t *testing.T) {
	r, bag := newTestResolver()
	intType := testInt()
	calls := 0
	scope := scopeFunc(func(name string) TypeDecl {
		calls++
		if name == "T" {
			return declOf{typ: intType}
		}
		return nil
	})
	ref := NewIdRef(source.NoPos, "T", scope)
	got := r.ResolveType(ref, source.NoPos)
	if got != Type(intType) {
		t.Fatalf("resolved to %v, want int", got)
	}
	if again := r.ResolveType(ref, source.NoPos); again != got {
		t.Errorf("second resolution returned different type")
	}
	if calls != 1 {
		t.Errorf("scope consulted %d times, want 1", calls)
	}
	if bag.HasErrors() {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestIdRefUndefined(t *testing.T) {
	r, bag := newTestResolver()
	scope := scopeFunc(func(string) TypeDecl { return nil })
	ref := NewIdRef(source.NoPos, "missing", scope)
	if got := r.ResolveType(ref, source.NoPos); got != Error {
		t.Fatalf("resolved to %v, want error type", got)
	}
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
	if bag.Items()[0].Code != diag.SemUndefinedType {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.SemUndefinedType)
	}
}

func TestPointerBaseMustBeIdent(t *testing.T) {
	r, _ := newTestResolver()
	rec := NewRecord(source.NoPos)
	p := NewPointer(rec)
	defer func() {
		if recover() == nil {
			t.Fatalf("resolving pointer over non-identifier base did not abort")
		}
	}()
	r.ResolveType(p, source.NoPos)
}
