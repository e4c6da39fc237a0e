package syms

import (
	"math"

	"pl0/internal/source"
	"pl0/internal/types"
	"pl0/internal/vm"
)

// Predef holds the built-in types seeded into the predefined scope. They
// are shared by every scope of the compilation and read-only after
// construction.
type Predef struct {
	Int     *types.Scalar
	Boolean *types.Scalar
	// Nil is the type of the nil constant: a pointer over the error
	// type, which makes it coercible to every pointer type.
	Nil *types.Pointer
}

// seedPredefined populates the outermost scope with the built-in scalar
// types, the boolean literals, the nil constant and the built-in operator
// overload sets.
func seedPredefined(s *Scope) Predef {
	p := Predef{
		Int:     types.NewScalar("int", vm.SizeOfInt, math.MinInt32, math.MaxInt32),
		Boolean: types.NewScalar("boolean", vm.SizeOfBool, vm.FalseValue, vm.TrueValue),
		Nil:     types.NewPointer(types.Error),
	}
	p.Nil.SetName("nil_type")

	pairInt := types.NewProduct(p.Int, p.Int)
	pairBool := types.NewProduct(p.Boolean, p.Boolean)
	pairNil := types.NewProduct(p.Nil, p.Nil)
	arithBinary := types.NewFunction(pairInt, p.Int)
	arithUnary := types.NewFunction(p.Int, p.Int)
	intRelational := types.NewFunction(pairInt, p.Boolean)
	logicalBinary := types.NewFunction(pairBool, p.Boolean)
	nilRelational := types.NewFunction(pairNil, p.Boolean)

	s.AddType("int", source.NoPos, p.Int)
	s.AddType("boolean", source.NoPos, p.Boolean)
	s.AddConstantValue("false", source.NoPos, p.Boolean, vm.FalseValue)
	s.AddConstantValue("true", source.NoPos, p.Boolean, vm.TrueValue)
	s.AddConstantValue("nil", source.NoPos, p.Nil, vm.NullAddr)

	s.AddOperator("_=_", source.NoPos, nilRelational)
	s.AddOperator("_!=_", source.NoPos, nilRelational)
	s.AddOperator("-_", source.NoPos, arithUnary)
	s.AddOperator("_+_", source.NoPos, arithBinary)
	s.AddOperator("_-_", source.NoPos, arithBinary)
	s.AddOperator("_*_", source.NoPos, arithBinary)
	s.AddOperator("_/_", source.NoPos, arithBinary)
	s.AddOperator("_=_", source.NoPos, intRelational)
	s.AddOperator("_=_", source.NoPos, logicalBinary)
	s.AddOperator("_!=_", source.NoPos, intRelational)
	s.AddOperator("_!=_", source.NoPos, logicalBinary)
	s.AddOperator("_>_", source.NoPos, intRelational)
	s.AddOperator("_<_", source.NoPos, intRelational)
	s.AddOperator("_>=_", source.NoPos, intRelational)
	s.AddOperator("_<=_", source.NoPos, intRelational)
	return p
}
