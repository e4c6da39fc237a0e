package types

import (
	"strings"

	"pl0/internal/source"
	"pl0/internal/vm"
)

// Product is an ordered tuple of component types. It describes the
// argument lists of binary operators; values of product type exist only
// transiently during calls.
type Product struct {
	elems    []Type
	space    int
	resolved bool
}

func NewProduct(elems ...Type) *Product {
	return &Product{elems: elems}
}

func (t *Product) Kind() Kind { return KindProduct }

func (t *Product) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return t.space
}

func (t *Product) Resolved() bool { return t.resolved }
func (t *Product) Elems() []Type  { return t.elems }

// Equal holds for products of the same length with pairwise equal
// components.
func (t *Product) Equal(other Type) bool {
	o, ok := other.(*Product)
	if !ok || len(t.elems) != len(o.elems) {
		return false
	}
	for i, e := range t.elems {
		if !e.Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (t *Product) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.elems {
		if i > 0 {
			b.WriteByte('*')
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (t *Product) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	t.space = 0
	for i, e := range t.elems {
		t.elems[i] = r.ResolveType(e, pos)
		t.space += t.elems[i].Space()
	}
	return t
}

// Function is an argument-to-result mapping, used to type operators.
// Function values occupy no space; they are not first class.
type Function struct {
	arg      Type
	result   Type
	resolved bool
}

func NewFunction(arg, result Type) *Function {
	return &Function{arg: arg, result: result}
}

func (t *Function) Kind() Kind { return KindFunction }

func (t *Function) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return 0
}

func (t *Function) Resolved() bool { return t.resolved }
func (t *Function) Arg() Type      { return t.arg }
func (t *Function) Result() Type   { return t.result }

func (t *Function) Equal(other Type) bool {
	o, ok := other.(*Function)
	return ok && t.arg.Equal(o.arg) && t.result.Equal(o.result)
}

func (t *Function) String() string {
	return "(" + t.arg.String() + "->" + t.result.String() + ")"
}

func (t *Function) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	t.arg = r.ResolveType(t.arg, pos)
	t.result = r.ResolveType(t.result, pos)
	return t
}

// Intersection is an unordered set of function types, the type of an
// overloaded operator. Member order is preserved as declared because
// overload selection tries members first to last, but equality is order
// independent.
type Intersection struct {
	elems    []Type
	resolved bool
}

func NewIntersection(elems ...Type) *Intersection {
	return &Intersection{elems: elems}
}

func (t *Intersection) Kind() Kind { return KindIntersection }

func (t *Intersection) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return 0
}

func (t *Intersection) Resolved() bool { return t.resolved }
func (t *Intersection) Elems() []Type  { return t.elems }

// Add appends a member. Adding an intersection merges its members.
func (t *Intersection) Add(elem Type) {
	if o, ok := elem.(*Intersection); ok {
		t.elems = append(t.elems, o.elems...)
		return
	}
	t.elems = append(t.elems, elem)
}

// Equal holds for intersections with equal member sets, regardless of
// member order.
func (t *Intersection) Equal(other Type) bool {
	o, ok := other.(*Intersection)
	if !ok || len(t.elems) != len(o.elems) {
		return false
	}
	for _, e := range t.elems {
		if !containsType(o.elems, e) {
			return false
		}
	}
	return true
}

func containsType(elems []Type, t Type) bool {
	for _, e := range elems {
		if e.Equal(t) {
			return true
		}
	}
	return false
}

func (t *Intersection) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range t.elems {
		if i > 0 {
			b.WriteString(" & ")
		}
		b.WriteString(e.String())
	}
	b.WriteByte(')')
	return b.String()
}

func (t *Intersection) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	for i, e := range t.elems {
		t.elems[i] = r.ResolveType(e, pos)
	}
	return t
}

// Procedure is the type of a declared procedure. Procedures take no
// parameters; their space is the static and dynamic link of a call frame.
// Like scalars and records, procedure types compare by identity.
type Procedure struct {
	resolved bool
}

func NewProcedure() *Procedure { return &Procedure{} }

func (t *Procedure) Kind() Kind { return KindProcedure }

func (t *Procedure) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return 2 * vm.SizeOfAddr
}

func (t *Procedure) Resolved() bool { return t.resolved }

func (t *Procedure) Equal(other Type) bool {
	return Type(t) == other
}

func (t *Procedure) String() string { return "procedure" }

func (t *Procedure) resolve(*Resolver, source.Pos) Type {
	t.resolved = true
	return t
}
