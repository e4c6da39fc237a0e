package types

import (
	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/vm"
)

// TypeDecl is a named type declaration, as recorded in a symbol table
// scope. ResolveIn resolves the declared type, detecting circular
// definitions through the resolver's busy set.
type TypeDecl interface {
	ResolveIn(r *Resolver, pos source.Pos) Type
}

// TypeScope looks up type declarations by name. FindType returns nil if
// name is not declared as a type in the scope or any enclosing scope.
type TypeScope interface {
	FindType(name string) TypeDecl
}

// IdRef is a use of a type identifier before its declaration has been
// resolved. Resolving an IdRef looks the name up in the scope the
// reference occurred in and replaces the reference with the declared
// type; an undeclared or circularly defined name yields the error type.
type IdRef struct {
	pos      source.Pos
	name     string
	scope    TypeScope
	real     Type
	resolved bool
}

func NewIdRef(pos source.Pos, name string, scope TypeScope) *IdRef {
	return &IdRef{pos: pos, name: name, scope: scope, real: Error}
}

func (t *IdRef) Kind() Kind     { return KindIdRef }
func (t *IdRef) Space() int     { return unresolvedSpace(t) }
func (t *IdRef) Resolved() bool { return t.resolved }
func (t *IdRef) Name() string   { return t.name }
func (t *IdRef) String() string { return t.name }

func (t *IdRef) Equal(other Type) bool {
	return Type(t) == other
}

func (t *IdRef) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t.real
	}
	t.resolved = true
	decl := t.scope.FindType(t.name)
	if decl == nil {
		r.errorf(diag.SemUndefinedType, t.pos, "undefined type: %s", t.name)
		return t.real
	}
	t.real = decl.ResolveIn(r, t.pos)
	return t.real
}

// Reference is the type of an assignable location holding a value of the
// base type. Variables have reference type; dereferencing yields the base
// type.
type Reference struct {
	base     Type
	resolved bool
}

func NewReference(base Type) *Reference {
	return &Reference{base: base}
}

func (t *Reference) Kind() Kind { return KindReference }

func (t *Reference) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return vm.SizeOfAddr
}

func (t *Reference) Resolved() bool { return t.resolved }
func (t *Reference) Base() Type     { return t.base }

func (t *Reference) Equal(other Type) bool {
	o, ok := other.(*Reference)
	return ok && t.base.Equal(o.base)
}

func (t *Reference) String() string {
	return "ref(" + t.base.String() + ")"
}

func (t *Reference) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	t.base = r.ResolveType(t.base, pos)
	return t
}

// Pointer is the type of a heap address of a value of the base type. The
// base must be a type identifier, which lets pointers close recursive
// record types: resolving the pointer marks it resolved without touching
// the base, and the base identifier is resolved on first access through
// Base.
//
// The nil pointer type has the error type as its base, which makes it
// coercible to every pointer type.
type Pointer struct {
	name     string
	base     Type
	r        *Resolver
	resolved bool
}

func NewPointer(base Type) *Pointer {
	return &Pointer{base: base, resolved: base.Resolved()}
}

// SetName gives the pointer a display name. Used for the predefined nil
// pointer type.
func (t *Pointer) SetName(name string) { t.name = name }

func (t *Pointer) Kind() Kind { return KindPointer }

func (t *Pointer) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return vm.SizeOfAddr
}

func (t *Pointer) Resolved() bool { return t.resolved }

// Base resolves the base type identifier on first access and returns the
// referenced type.
func (t *Pointer) Base() Type {
	if !t.base.Resolved() && t.r != nil {
		t.base = t.r.ResolveType(t.base, source.NoPos)
	}
	return t.base
}

func (t *Pointer) Equal(other Type) bool {
	o, ok := other.(*Pointer)
	return ok && t.Base().Equal(o.Base())
}

func (t *Pointer) String() string {
	if t.name != "" {
		return t.name
	}
	return "^" + t.base.String()
}

func (t *Pointer) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	t.r = r
	if _, ok := t.base.(*IdRef); !ok {
		r.fatalf(diag.IntInternal, pos, "base of pointer type must be a type identifier")
	}
	return t
}
