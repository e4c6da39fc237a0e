// Package syms implements symbol table entries, scopes and the scope
// arena, together with the predefined outermost scope.
//
// Entries resolve lazily: the declared type of an entry may reference
// identifiers that are not resolved yet (the syntax does not rule out
// circular references), so each entry resolves its type on first access,
// with cycle detection through the resolver's busy set.
package syms

import (
	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/types"
)

// Entry is a symbol table entry: a constant, type, variable, procedure or
// operator binding.
type Entry interface {
	Name() string
	Pos() source.Pos
	Level() int
	// Type resolves the entry if needed and returns its type.
	Type(r *types.Resolver) types.Type
	// Resolve resolves any type identifiers and constant expressions the
	// entry depends on. Idempotent.
	Resolve(r *types.Resolver)
}

// common fields of every entry kind
type entry struct {
	name     string
	pos      source.Pos
	scope    *Scope
	typ      types.Type
	resolved bool
}

func (e *entry) Name() string    { return e.name }
func (e *entry) Pos() source.Pos { return e.pos }
func (e *entry) Level() int      { return e.scope.level }

// ConstantEntry binds a name to a compile-time constant. The defining
// expression is evaluated on first access; a constant whose definition
// leads back to itself is reported once and settles on value 0 of the
// error type.
type ConstantEntry struct {
	entry
	exp types.ConstExp
	val int
}

func (e *ConstantEntry) Resolve(r *types.Resolver) {
	if e.resolved {
		return
	}
	if r.Busy(e) {
		diag.Errorf(r.Reporter(), diag.SemCircularConst, e.pos,
			"circular reference in constant expression")
		e.typ = types.Error
		e.val = 0
		e.resolved = true
		return
	}
	r.Begin(e)
	val := e.exp.Value(r)
	typ := e.exp.TypeOf(r)
	r.End(e)
	// a cycle through this entry finalizes it mid-evaluation; keep that
	// result rather than the one computed on the way down
	if !e.resolved {
		e.val = val
		e.typ = typ
		e.resolved = true
	}
}

func (e *ConstantEntry) Type(r *types.Resolver) types.Type {
	e.Resolve(r)
	return e.typ
}

func (e *ConstantEntry) Value(r *types.Resolver) int {
	e.Resolve(r)
	return e.val
}

// TypeEntry binds a name to a type. It implements types.TypeDecl, so
// resolving an identifier reference recurses into the entry it names;
// re-entry through the busy set is a circular definition.
type TypeEntry struct {
	entry
}

func (e *TypeEntry) ResolveIn(r *types.Resolver, pos source.Pos) types.Type {
	if e.resolved {
		return e.typ
	}
	if r.Busy(e) {
		diag.Errorf(r.Reporter(), diag.SemCircularType, pos,
			"%s is circularly defined", e.name)
		e.typ = types.Error
		e.resolved = true
		return e.typ
	}
	r.Begin(e)
	resolved := r.ResolveType(e.typ, pos)
	r.End(e)
	if !e.resolved {
		e.typ = resolved
		e.resolved = true
	}
	return e.typ
}

func (e *TypeEntry) Resolve(r *types.Resolver) { e.ResolveIn(r, e.pos) }

func (e *TypeEntry) Type(r *types.Resolver) types.Type {
	return e.ResolveIn(r, e.pos)
}

// VarEntry binds a name to a storage location. Its type is always a
// reference to the declared type; resolving the entry allocates the
// variable's words in its owning scope and records the frame offset.
type VarEntry struct {
	entry
	offset int
}

func (e *VarEntry) Resolve(r *types.Resolver) {
	if e.resolved {
		return
	}
	e.resolved = true
	e.typ = r.ResolveType(e.typ, e.pos)
	if ref, ok := e.typ.(*types.Reference); ok {
		e.offset = e.scope.AllocVariableSpace(ref.Base().Space())
	}
}

func (e *VarEntry) Type(r *types.Resolver) types.Type {
	e.Resolve(r)
	return e.typ
}

// Offset returns the frame offset of the variable. The entry must be
// resolved.
func (e *VarEntry) Offset() int {
	if !e.resolved {
		panic("offset requested for unresolved variable " + e.name)
	}
	return e.offset
}

// ProcedureEntry binds a name to a procedure. The local scope is attached
// by the parser, the start address by the code generator.
type ProcedureEntry struct {
	entry
	localScope ScopeID
	start      int
}

func (e *ProcedureEntry) Resolve(r *types.Resolver) {
	if e.resolved {
		return
	}
	e.resolved = true
	e.typ = r.ResolveType(e.typ, e.pos)
}

func (e *ProcedureEntry) Type(r *types.Resolver) types.Type {
	e.Resolve(r)
	return e.typ
}

func (e *ProcedureEntry) LocalScope() ScopeID      { return e.localScope }
func (e *ProcedureEntry) SetLocalScope(id ScopeID) { e.localScope = id }
func (e *ProcedureEntry) Start() int               { return e.start }
func (e *ProcedureEntry) SetStart(start int)       { e.start = start }

// OperatorEntry binds an operator name to a function type or, once
// overloaded, an intersection of function types.
type OperatorEntry struct {
	entry
}

func (e *OperatorEntry) Resolve(r *types.Resolver) {
	if e.resolved {
		return
	}
	e.resolved = true
	e.typ = r.ResolveType(e.typ, e.pos)
}

func (e *OperatorEntry) Type(r *types.Resolver) types.Type {
	e.Resolve(r)
	return e.typ
}

// extendType folds an additional signature into the entry's overload set.
func (e *OperatorEntry) extendType(f *types.Function) {
	if ix, ok := e.typ.(*types.Intersection); ok {
		ix.Add(f)
		return
	}
	e.typ = types.NewIntersection(e.typ, f)
}
