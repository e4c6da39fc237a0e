package ast

import (
	"testing"

	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/syms"
	"pl0/internal/types"
)

func checkSetup() (*syms.Table, *types.Resolver, *diag.Bag) {
	bag := diag.NewBag(0)
	return syms.NewTable(), types.NewResolver(diag.BagReporter{Bag: bag}), bag
}

func resolvedSubrange(r *types.Resolver, base *types.Scalar, lo, hi int) *types.Subrange {
	s := types.NewSubrange(source.NoPos,
		types.NewConstNumber(source.NoPos, base, lo),
		types.NewConstNumber(source.NoPos, base, hi))
	r.ResolveType(s, source.NoPos)
	return s
}

func TestCoerceIdentity(t *testing.T) {
	tab, _, _ := checkSetup()
	intType := tab.Predef().Int
	exp := NewConstExpr(source.NoPos, intType, 42)
	got, err := Coerce(intType, exp)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if got != Expr(exp) {
		t.Errorf("identity coercion wrapped the node in %T", got)
	}
}

func TestCoerceInsertsDereference(t *testing.T) {
	tab, r, _ := checkSetup()
	intType := tab.Predef().Int
	ref := types.NewReference(intType)
	r.ResolveType(ref, source.NoPos)
	exp := NewIdentExpr(source.NoPos, "x")
	exp.SetType(ref)
	got, err := Coerce(intType, exp)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	deref, ok := got.(*DereferenceExpr)
	if !ok {
		t.Fatalf("got %T, want dereference node", got)
	}
	if deref.Type() != types.Type(intType) || deref.Inner != Expr(exp) {
		t.Errorf("dereference node malformed: type %v", deref.Type())
	}
}

func TestCoerceReferenceTargetKeepsReference(t *testing.T) {
	tab, r, _ := checkSetup()
	intType := tab.Predef().Int
	ref := types.NewReference(intType)
	r.ResolveType(ref, source.NoPos)
	exp := NewIdentExpr(source.NoPos, "x")
	exp.SetType(ref)
	got, err := Coerce(ref, exp)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if got != Expr(exp) {
		t.Errorf("reference target dereferenced the expression into %T", got)
	}
}

func TestCoerceWidenThenNarrowLeavesLeaf(t *testing.T) {
	tab, r, _ := checkSetup()
	intType := tab.Predef().Int
	sub := resolvedSubrange(r, intType, 0, 9)
	leaf := NewConstExpr(source.NoPos, sub, 5)
	widened, err := Coerce(intType, leaf)
	if err != nil {
		t.Fatalf("widen failed: %v", err)
	}
	w, ok := widened.(*WidenSubrangeExpr)
	if !ok || w.Type() != types.Type(intType) {
		t.Fatalf("widen produced %T of %v", widened, widened.Type())
	}
	narrowed, err := Coerce(sub, widened)
	if err != nil {
		t.Fatalf("narrow failed: %v", err)
	}
	n, ok := narrowed.(*NarrowSubrangeExpr)
	if !ok || !n.Type().Equal(sub) {
		t.Fatalf("narrow produced %T of %v", narrowed, narrowed.Type())
	}
	inner, ok := n.Inner.(*WidenSubrangeExpr)
	if !ok {
		t.Fatalf("narrow inner is %T, want the widen node", n.Inner)
	}
	if inner.Inner != Expr(leaf) {
		t.Errorf("innermost leaf replaced during widen/narrow round trip")
	}
}

func TestCoerceProductPositional(t *testing.T) {
	tab, r, _ := checkSetup()
	intType := tab.Predef().Int
	sub := resolvedSubrange(r, intType, 0, 9)
	pair := types.NewProduct(intType, intType)
	r.ResolveType(pair, source.NoPos)
	args := NewArgumentsExpr(source.NoPos, []Expr{
		NewConstExpr(source.NoPos, sub, 3),
		NewConstExpr(source.NoPos, intType, 4),
	})
	argsType := types.NewProduct(sub, intType)
	r.ResolveType(argsType, source.NoPos)
	args.SetType(argsType)
	got, err := Coerce(pair, args)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	res, ok := got.(*ArgumentsExpr)
	if !ok || !res.Type().Equal(pair) {
		t.Fatalf("got %T of %v", got, got.Type())
	}
	if _, ok := res.Args[0].(*WidenSubrangeExpr); !ok {
		t.Errorf("first argument not widened: %T", res.Args[0])
	}
	if res.Args[1].(*ConstExpr).Value != 4 {
		t.Errorf("second argument disturbed")
	}

	short := NewArgumentsExpr(source.NoPos, []Expr{NewConstExpr(source.NoPos, intType, 1)})
	shortType := types.NewProduct(intType)
	r.ResolveType(shortType, source.NoPos)
	short.SetType(shortType)
	if _, err := Coerce(pair, short); err == nil {
		t.Errorf("arity mismatch not rejected")
	}
}

func TestCoerceIntersectionFirstMatch(t *testing.T) {
	tab, r, _ := checkSetup()
	intType := tab.Predef().Int
	subA := resolvedSubrange(r, intType, 0, 99)
	subB := resolvedSubrange(r, intType, 0, 999)
	ix := types.NewIntersection(subA, subB)
	r.ResolveType(ix, source.NoPos)
	// coercible to both members; the first declared must win
	exp := NewConstExpr(source.NoPos, intType, 7)
	got, err := Coerce(ix, exp)
	if err != nil {
		t.Fatalf("coerce failed: %v", err)
	}
	if !got.Type().Equal(subA) {
		t.Errorf("selected %v, want first member %v", got.Type(), subA)
	}
}

func TestCoerceNilToPointer(t *testing.T) {
	tab, r, _ := checkSetup()
	nilType := tab.Predef().Nil
	rec := types.NewRecord(source.NoPos)
	r.ResolveType(rec, source.NoPos)
	scope := tab.Scope(tab.NewScope(syms.PredefinedScope))
	scope.AddType("node", source.NoPos, rec)
	ptr := types.NewPointer(types.NewIdRef(source.NoPos, "node", scope))
	r.ResolveType(ptr, source.NoPos)

	nilExp := NewConstExpr(source.NoPos, nilType, 0)
	got, err := Coerce(ptr, nilExp)
	if err != nil {
		t.Fatalf("nil did not coerce to pointer: %v", err)
	}
	if got != Expr(nilExp) {
		t.Errorf("nil coercion wrapped the node in %T", got)
	}

	intExp := NewConstExpr(source.NoPos, tab.Predef().Int, 0)
	if _, err := Coerce(ptr, intExp); err == nil {
		t.Errorf("integer coerced to pointer type")
	}
}

func TestCoerceExpReportsAndSubstitutes(t *testing.T) {
	tab, _, bag := checkSetup()
	boolType := tab.Predef().Boolean
	exp := NewConstExpr(source.NoPos, tab.Predef().Int, 1)
	got := CoerceExp(diag.BagReporter{Bag: bag}, boolType, exp)
	if _, ok := got.(*ErrorExpr); !ok {
		t.Fatalf("failed coercion produced %T, want error node", got)
	}
	if bag.ErrorCount() != 1 {
		t.Fatalf("errors = %d, want 1: %v", bag.ErrorCount(), bag.Items())
	}
	if bag.Items()[0].Code != diag.SemIncompatible {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.SemIncompatible)
	}
}

func TestCoerceErrorTypePassesThrough(t *testing.T) {
	tab, _, _ := checkSetup()
	exp := NewErrorExpr(source.NoPos)
	got, err := Coerce(tab.Predef().Boolean, exp)
	if err != nil {
		t.Fatalf("error-typed expression rejected: %v", err)
	}
	if got != Expr(exp) {
		t.Errorf("error-typed expression wrapped in %T", got)
	}
}
