package syms

import (
	"fortio.org/safecast"
)

// ScopeID is a handle into the table's scope arena. Traversals over the
// tree carry their current scope as an explicit ScopeID instead of
// sharing a mutable cursor.
type ScopeID int32

// PredefinedScope is the id of the outermost scope.
const PredefinedScope ScopeID = 0

// Table owns every scope of a compilation in an arena. Scope 0 is the
// predefined scope, seeded once at construction with the built-in types,
// constants and operator overload sets.
type Table struct {
	scopes []*Scope
	predef Predef
}

// NewTable creates a table holding only the seeded predefined scope.
func NewTable() *Table {
	t := &Table{}
	pre := t.newScope(nil)
	t.predef = seedPredefined(pre)
	return t
}

func (t *Table) newScope(parent *Scope) *Scope {
	id, err := safecast.Conv[int32](len(t.scopes))
	if err != nil {
		panic(err)
	}
	s := &Scope{
		id:      ScopeID(id),
		parent:  parent,
		table:   t,
		entries: make(map[string]Entry),
	}
	if parent != nil {
		s.level = parent.level + 1
	}
	t.scopes = append(t.scopes, s)
	return s
}

// NewScope creates a scope nested inside parent and returns its handle.
func (t *Table) NewScope(parent ScopeID) ScopeID {
	return t.newScope(t.Scope(parent)).id
}

// Scope returns the scope with the given handle.
func (t *Table) Scope(id ScopeID) *Scope {
	return t.scopes[id]
}

// Predef returns the predefined built-in types.
func (t *Table) Predef() Predef { return t.predef }
