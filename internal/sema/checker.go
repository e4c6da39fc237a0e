// Package sema implements the static checker: a single recursive walk
// over the tree that resolves identifiers against the symbol table,
// assigns every expression its final type, and makes every implicit
// conversion explicit through the coercion protocol.
package sema

import (
	"pl0/internal/ast"
	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/syms"
	"pl0/internal/types"
)

type checker struct {
	rep   diag.Reporter
	r     *types.Resolver
	table *syms.Table
}

// Check type-checks the program, rewriting the tree in place. Diagnostics
// go to rep; the tree is fully typed afterwards, with error nodes
// substituted where checking failed.
func Check(prog *ast.Program, rep diag.Reporter) {
	c := &checker{rep: rep, r: types.NewResolver(rep), table: prog.Table}
	c.checkBlock(prog.Block)
}

func (c *checker) errorf(code diag.Code, pos source.Pos, format string, args ...any) {
	diag.Errorf(c.rep, code, pos, format, args...)
}

func (c *checker) checkBlock(b *ast.Block) {
	scope := c.table.Scope(b.Scope)
	scope.Resolve(c.r)
	for _, proc := range b.Procs {
		c.checkBlock(proc.Block)
	}
	b.Body = c.checkStmt(scope, b.Body)
}

func (c *checker) checkStmt(scope *syms.Scope, stmt ast.Stmt) ast.Stmt {
	switch s := stmt.(type) {
	case *ast.ErrorStmt:
		return s
	case *ast.AssignStmt:
		return c.checkAssign(scope, s)
	case *ast.WriteStmt:
		exp := c.checkExp(scope, s.Exp)
		s.Exp = ast.CoerceExp(c.rep, c.table.Predef().Int, exp)
		return s
	case *ast.CallStmt:
		entry, ok := scope.Lookup(s.Name).(*syms.ProcedureEntry)
		if !ok {
			c.errorf(diag.SemNotProcedure, s.Pos(), "procedure identifier required")
			return s
		}
		s.Entry = entry
		return s
	case *ast.CompoundStmt:
		for i, sub := range s.Stmts {
			s.Stmts[i] = c.checkStmt(scope, sub)
		}
		return s
	case *ast.IfStmt:
		s.Cond = c.checkCondition(scope, s.Cond)
		s.Then = c.checkStmt(scope, s.Then)
		s.Else = c.checkStmt(scope, s.Else)
		return s
	case *ast.WhileStmt:
		s.Cond = c.checkCondition(scope, s.Cond)
		s.Body = c.checkStmt(scope, s.Body)
		return s
	default:
		diag.Fatalf(c.rep, diag.IntInternal, stmt.Pos(), "unknown statement node %T", stmt)
		return stmt
	}
}

func (c *checker) checkAssign(scope *syms.Scope, s *ast.AssignStmt) ast.Stmt {
	left := c.checkExp(scope, s.LValue)
	right := c.checkExp(scope, s.Right)
	s.LValue = left
	s.Right = right
	ref, ok := left.Type().(*types.Reference)
	if !ok {
		c.errorf(diag.SemNotLValue, left.Pos(), "variable (l-value) expected")
		return s
	}
	s.Right = ast.CoerceExp(c.rep, ref.Base(), right)
	return s
}

func (c *checker) checkCondition(scope *syms.Scope, cond ast.Expr) ast.Expr {
	return ast.CoerceExp(c.rep, c.table.Predef().Boolean, c.checkExp(scope, cond))
}

func (c *checker) checkExp(scope *syms.Scope, exp ast.Expr) ast.Expr {
	switch e := exp.(type) {
	case *ast.ErrorExpr, *ast.ConstExpr:
		// types already set up
		return exp
	case *ast.ReadExpr:
		e.SetType(c.table.Predef().Int)
		return e
	case *ast.IdentExpr:
		return c.checkIdent(scope, e)
	case *ast.VariableExpr:
		return e
	case *ast.ArgumentsExpr:
		elems := make([]types.Type, len(e.Args))
		for i, arg := range e.Args {
			e.Args[i] = c.checkExp(scope, arg)
			elems[i] = e.Args[i].Type()
		}
		product := types.NewProduct(elems...)
		c.r.ResolveType(product, e.Pos())
		e.SetType(product)
		return e
	case *ast.OperatorExpr:
		return c.checkOperator(scope, e)
	case *ast.DereferenceExpr:
		return c.checkDereference(scope, e)
	case *ast.NarrowSubrangeExpr, *ast.WidenSubrangeExpr:
		// inserted by coercion, nothing to check
		return exp
	case *ast.PointerDerefExpr:
		return c.checkPointerDeref(scope, e)
	case *ast.FieldAccessExpr:
		return c.checkFieldAccess(scope, e)
	case *ast.NewAllocExpr:
		return c.checkNewAlloc(scope, e)
	case *ast.RecordConstructorExpr:
		return c.checkRecordConstructor(scope, e)
	default:
		diag.Fatalf(c.rep, diag.IntInternal, exp.Pos(), "unknown expression node %T", exp)
		return exp
	}
}

// checkIdent classifies an identifier use into a constant value or a
// variable reference.
func (c *checker) checkIdent(scope *syms.Scope, e *ast.IdentExpr) ast.Expr {
	switch entry := scope.Lookup(e.Name).(type) {
	case *syms.ConstantEntry:
		return ast.NewConstExpr(e.Pos(), entry.Type(c.r), entry.Value(c.r))
	case *syms.VarEntry:
		v := ast.NewVariableExpr(e.Pos(), entry)
		v.SetType(entry.Type(c.r))
		return v
	default:
		c.errorf(diag.SemUndeclared, e.Pos(), "constant or variable identifier required")
		return ast.NewErrorExpr(e.Pos())
	}
}

// checkOperator resolves an operator application against the operator's
// overload set. An overloaded operator tries its signatures in
// declaration order and the first whose argument type accepts the actual
// arguments wins.
func (c *checker) checkOperator(scope *syms.Scope, e *ast.OperatorExpr) ast.Expr {
	arg := c.checkExp(scope, e.Arg)
	e.Arg = arg
	entry, ok := scope.Lookup(e.Op.Sym()).(*syms.OperatorEntry)
	if !ok {
		diag.Fatalf(c.rep, diag.IntInternal, e.Pos(), "operator %s not defined", e.Op.Sym())
		return e
	}
	switch opType := entry.Type(c.r).(type) {
	case *types.Function:
		e.Arg = ast.CoerceExp(c.rep, opType.Arg(), arg)
		e.SetType(opType.Result())
		return e
	case *types.Intersection:
		for _, alt := range opType.Elems() {
			f, ok := alt.(*types.Function)
			if !ok {
				diag.Fatalf(c.rep, diag.IntInternal, e.Pos(), "invalid operator type")
			}
			coerced, err := ast.Coerce(f.Arg(), arg)
			if err != nil {
				continue
			}
			e.Arg = coerced
			e.SetType(f.Result())
			return e
		}
		c.errorf(diag.SemNoOverload, e.Pos(),
			"type of argument %s does not match %s", arg.Type(), opType)
		e.SetType(types.Error)
		return e
	default:
		diag.Fatalf(c.rep, diag.IntInternal, e.Pos(), "invalid operator type")
		return e
	}
}

func (c *checker) checkDereference(scope *syms.Scope, e *ast.DereferenceExpr) ast.Expr {
	inner := c.checkExp(scope, e.Inner)
	e.Inner = inner
	if ref, ok := inner.Type().(*types.Reference); ok {
		e.SetType(ref.Base())
	} else if inner.Type() != types.Error {
		c.errorf(diag.SemNotReference, e.Pos(),
			"cannot dereference an expression which isn't a reference")
	}
	return e
}

// checkPointerDeref checks p^: p must be an l-value holding a pointer to
// T, and the result is an l-value of type T.
func (c *checker) checkPointerDeref(scope *syms.Scope, e *ast.PointerDerefExpr) ast.Expr {
	ptr := c.checkExp(scope, e.Ptr)
	e.Ptr = ptr
	ref, ok := ptr.Type().(*types.Reference)
	if !ok {
		if ptr.Type() != types.Error {
			c.errorf(diag.SemNotReference, e.Pos(),
				"cannot dereference an expression which isn't a reference")
		}
		return e
	}
	p, ok := ref.Base().(*types.Pointer)
	if !ok {
		if ref.Base() != types.Error {
			c.errorf(diag.SemNotPointer, e.Pos(), "type must be a pointer")
		}
		return e
	}
	result := types.NewReference(p.Base())
	c.r.ResolveType(result, e.Pos())
	e.SetType(result)
	return e
}

// checkFieldAccess checks r.f: r must be an l-value of record type
// containing field f, and the result is an l-value of the field's type.
func (c *checker) checkFieldAccess(scope *syms.Scope, e *ast.FieldAccessExpr) ast.Expr {
	rec := c.checkExp(scope, e.Rec)
	e.Rec = rec
	ref, ok := rec.Type().(*types.Reference)
	if !ok {
		if rec.Type() != types.Error {
			c.errorf(diag.SemNotReference, e.Pos(),
				"cannot dereference an expression which isn't a reference")
		}
		return e
	}
	recType, ok := ref.Base().(*types.Record)
	if !ok {
		if ref.Base() != types.Error {
			c.errorf(diag.SemNotRecord, e.Pos(), "must be a record type, found %s", ref.Base())
		}
		return e
	}
	field := recType.Field(e.Field)
	if field == nil {
		c.errorf(diag.SemNoSuchField, e.Pos(), "record doesn't contain field %s", e.Field)
		return e
	}
	e.Offset = field.Offset()
	result := types.NewReference(field.Type())
	c.r.ResolveType(result, e.Pos())
	e.SetType(result)
	return e
}

// checkNewAlloc checks new T: T must name a pointer type, and the result
// is a value of that pointer type.
func (c *checker) checkNewAlloc(scope *syms.Scope, e *ast.NewAllocExpr) ast.Expr {
	entry, ok := scope.Lookup(e.TypeName).(*syms.TypeEntry)
	if !ok {
		c.errorf(diag.SemUndefinedType, e.Pos(), "undeclared pointer type")
		return e
	}
	typ := entry.Type(c.r)
	if p, ok := typ.(*types.Pointer); ok {
		e.SetType(p)
	} else if typ != types.Error {
		c.errorf(diag.SemNotPointer, e.Pos(), "not a pointer type")
	}
	return e
}

// checkRecordConstructor checks T{e1, ..., en}: T must name a record type
// and the expressions match the fields positionally, by plain type
// equality. A reference-typed expression is dereferenced before the
// comparison; no other conversion applies.
func (c *checker) checkRecordConstructor(scope *syms.Scope, e *ast.RecordConstructorExpr) ast.Expr {
	entry, ok := scope.Lookup(e.TypeName).(*syms.TypeEntry)
	if !ok {
		c.errorf(diag.SemUndefinedType, e.Pos(), "undeclared record type")
		return e
	}
	typ := entry.Type(c.r)
	recType, ok := typ.(*types.Record)
	if !ok {
		if typ != types.Error {
			c.errorf(diag.SemNotRecord, e.Pos(), "not a record type")
		}
		return e
	}
	e.SetType(recType)
	fields := recType.Fields()
	if len(e.Fields) < len(fields) {
		c.errorf(diag.SemFieldArity, e.Pos(), "too few expressions for fields in record")
		return e
	}
	if len(e.Fields) > len(fields) {
		c.errorf(diag.SemFieldArity, e.Pos(), "too many expressions for fields in record")
		return e
	}
	for i, fieldExp := range e.Fields {
		exp := ast.OptDereference(c.checkExp(scope, fieldExp))
		e.Fields[i] = exp
		fieldType := fields[i].Type()
		if fieldType == types.Error || exp.Type() == types.Error {
			continue
		}
		if !exp.Type().Equal(fieldType) {
			c.errorf(diag.SemIncompatible, exp.Pos(), "incompatible type")
		}
	}
	return e
}
