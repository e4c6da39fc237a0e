package ast

import (
	"fmt"

	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/types"
)

// CoerceError reports that an expression could not be coerced to a
// required type. Callers either propagate it to try an alternative (as
// inside subrange and intersection coercion) or convert it into a
// diagnostic plus an error node.
type CoerceError struct {
	Pos source.Pos
	Msg string
}

func (e *CoerceError) Error() string { return e.Msg }

func coerceFail(pos source.Pos, format string, args ...any) (Expr, *CoerceError) {
	return nil, &CoerceError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// OptDereference wraps a reference-typed expression in a dereference of
// its base type; any other expression is returned unchanged.
func OptDereference(exp Expr) Expr {
	if ref, ok := exp.Type().(*types.Reference); ok {
		return NewDereferenceExpr(ref.Base(), exp)
	}
	return exp
}

// Coerce coerces exp to the target type, returning the coerced expression
// or a CoerceError. Unless the target is itself a reference type the
// expression is first optionally dereferenced; an expression already of
// the target type, or of the error type, passes through unchanged.
func Coerce(target types.Type, exp Expr) (Expr, *CoerceError) {
	newExp := exp
	if target.Kind() != types.KindReference {
		newExp = OptDereference(newExp)
	}
	from := newExp.Type()
	if target.Equal(from) || from == types.Error {
		return newExp, nil
	}
	return coerce(target, newExp)
}

// CoerceExp coerces exp to the target type, reporting a failure as a
// diagnostic and substituting an error node.
func CoerceExp(rep diag.Reporter, target types.Type, exp Expr) Expr {
	coerced, err := Coerce(target, exp)
	if err != nil {
		rep.Error(diag.SemIncompatible, err.Pos, err.Msg)
		return NewErrorExpr(err.Pos)
	}
	return coerced
}

// coerce dispatches on the target type, knowing the expression is not
// already of that type.
func coerce(target types.Type, exp Expr) (Expr, *CoerceError) {
	from := exp.Type()
	switch t := target.(type) {
	case *types.Scalar:
		// Widen subrange: a subrange over this scalar promotes to it.
		if sub, ok := from.(*types.Subrange); ok && t.Equal(sub.Base()) {
			return NewWidenSubrangeExpr(t, exp), nil
		}
		return coerceFail(exp.Pos(), "cannot coerce %s to %s", from, t)
	case *types.Subrange:
		// Narrow subrange: coerce to the base type, then narrow.
		inner, err := Coerce(t.Base(), exp)
		if err != nil {
			return nil, err
		}
		return NewNarrowSubrangeExpr(t, inner), nil
	case *types.Product:
		args, ok := exp.(*ArgumentsExpr)
		if !ok {
			return coerceFail(exp.Pos(), "argument tuple expected for coercion to %s", t)
		}
		if len(args.Args) != len(t.Elems()) {
			return coerceFail(exp.Pos(), "length mismatch in coercion to %s", t)
		}
		newArgs := make([]Expr, len(args.Args))
		for i, arg := range args.Args {
			coerced, err := Coerce(t.Elems()[i], arg)
			if err != nil {
				return nil, err
			}
			newArgs[i] = coerced
		}
		res := NewArgumentsExpr(exp.Pos(), newArgs)
		res.SetType(t)
		return res, nil
	case *types.Intersection:
		// First member that accepts the expression wins; members are in
		// declaration order.
		for _, alt := range t.Elems() {
			if res, err := Coerce(alt, exp); err == nil {
				return res, nil
			}
		}
		return coerceFail(exp.Pos(), "none of the types in %s match", t)
	case *types.Pointer:
		// Only the nil constant coerces to a pointer type it does not
		// already equal.
		if src, ok := from.(*types.Pointer); ok && src.Base() == types.Error {
			return exp, nil
		}
		return coerceFail(exp.Pos(), "cannot treat %s as %s", from, t)
	default:
		return coerceFail(exp.Pos(), "cannot treat %s as %s", from, target)
	}
}
