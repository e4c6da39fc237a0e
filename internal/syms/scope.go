package syms

import (
	"slices"
	"sort"

	"pl0/internal/source"
	"pl0/internal/types"
	"pl0/internal/vm"
)

// Scope is one lexical scope: a map from identifiers to entries plus a
// link to the enclosing scope. Lookup walks the parent chain outward;
// insertion fails on a duplicate within the same scope, while shadowing
// an outer binding is unrestricted.
type Scope struct {
	id      ScopeID
	parent  *Scope
	level   int
	table   *Table
	entries map[string]Entry
	space   int
}

func (s *Scope) ID() ScopeID    { return s.id }
func (s *Scope) Parent() *Scope { return s.parent }
func (s *Scope) Level() int     { return s.level }
func (s *Scope) Table() *Table  { return s.table }

// Lookup finds the innermost binding of name, walking the scope chain
// outward. Returns nil if name is nowhere declared.
func (s *Scope) Lookup(name string) Entry {
	for sc := s; sc != nil; sc = sc.parent {
		if e, ok := sc.entries[name]; ok {
			return e
		}
	}
	return nil
}

// LookupCurrent finds a binding in this scope only.
func (s *Scope) LookupCurrent(name string) Entry {
	return s.entries[name]
}

// FindType implements types.TypeScope. A non-type binding of the name
// masks any type binding in an outer scope.
func (s *Scope) FindType(name string) types.TypeDecl {
	te, ok := s.Lookup(name).(*TypeEntry)
	if !ok {
		return nil
	}
	return te
}

func (s *Scope) addEntry(name string, e Entry) bool {
	if _, dup := s.entries[name]; dup {
		return false
	}
	s.entries[name] = e
	return true
}

// AddConstant declares a constant defined by an expression tree. Returns
// nil if name is already declared in this scope.
func (s *Scope) AddConstant(name string, pos source.Pos, exp types.ConstExp) *ConstantEntry {
	e := &ConstantEntry{
		entry: entry{name: name, pos: pos, scope: s, typ: types.Error},
		exp:   exp,
	}
	if !s.addEntry(name, e) {
		return nil
	}
	return e
}

// AddConstantValue declares a constant with a known value and type, as
// used for the predefined constants.
func (s *Scope) AddConstantValue(name string, pos source.Pos, typ types.Type, val int) *ConstantEntry {
	e := &ConstantEntry{
		entry: entry{name: name, pos: pos, scope: s, typ: typ, resolved: true},
		val:   val,
	}
	if !s.addEntry(name, e) {
		return nil
	}
	return e
}

// AddType declares a named type. Returns nil if name is already declared
// in this scope.
func (s *Scope) AddType(name string, pos source.Pos, typ types.Type) *TypeEntry {
	e := &TypeEntry{entry: entry{name: name, pos: pos, scope: s, typ: typ}}
	if !s.addEntry(name, e) {
		return nil
	}
	return e
}

// AddVariable declares a variable of the given reference type. Returns
// nil if name is already declared in this scope.
func (s *Scope) AddVariable(name string, pos source.Pos, typ *types.Reference) *VarEntry {
	e := &VarEntry{entry: entry{name: name, pos: pos, scope: s, typ: typ}}
	if !s.addEntry(name, e) {
		return nil
	}
	return e
}

// AddProcedure declares a procedure. Returns nil if name is already
// declared in this scope.
func (s *Scope) AddProcedure(name string, pos source.Pos) *ProcedureEntry {
	e := &ProcedureEntry{
		entry: entry{name: name, pos: pos, scope: s, typ: types.NewProcedure()},
	}
	if !s.addEntry(name, e) {
		return nil
	}
	return e
}

// AddOperator declares one signature of an operator. A signature added
// under a name already bound at this level folds into that binding's
// overload set; if the existing binding belongs to an outer scope, its
// current overload set is copied into a fresh entry at this level first,
// so extending it never mutates the outer scope.
func (s *Scope) AddOperator(name string, pos source.Pos, f *types.Function) *OperatorEntry {
	existing, _ := s.Lookup(name).(*OperatorEntry)
	switch {
	case existing == nil:
		e := &OperatorEntry{entry: entry{name: name, pos: pos, scope: s, typ: f}}
		if !s.addEntry(name, e) {
			return nil
		}
		return e
	case existing.Level() == s.level:
		existing.extendType(f)
		return existing
	default:
		e := &OperatorEntry{entry: entry{name: name, pos: pos, scope: s, typ: copyOverloads(existing.typ)}}
		e.extendType(f)
		if !s.addEntry(name, e) {
			return nil
		}
		return e
	}
}

func copyOverloads(t types.Type) types.Type {
	if ix, ok := t.(*types.Intersection); ok {
		return types.NewIntersection(slices.Clone(ix.Elems())...)
	}
	return t
}

// AllocVariableSpace reserves size words in this scope's frame and
// returns their offset from the frame pointer.
func (s *Scope) AllocVariableSpace(size int) int {
	base := s.space
	s.space += size
	return vm.LocalsBase + base
}

// VariableSpace returns the words allocated to variables so far.
func (s *Scope) VariableSpace() int { return s.space }

// Resolve resolves every entry currently in the scope. Entries resolve in
// identifier-sort order, not declaration order.
func (s *Scope) Resolve(r *types.Resolver) {
	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.entries[name].Resolve(r)
	}
}
