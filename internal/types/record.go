package types

import (
	"strings"

	"pl0/internal/source"
)

// Field is a named component of a record type. Its offset within the
// record is assigned when the record resolves.
type Field struct {
	pos    source.Pos
	id     string
	typ    Type
	offset int
}

func NewField(pos source.Pos, id string, typ Type) *Field {
	return &Field{pos: pos, id: id, typ: typ}
}

func (f *Field) Pos() source.Pos { return f.pos }
func (f *Field) Id() string      { return f.id }
func (f *Field) Type() Type      { return f.typ }
func (f *Field) Offset() int     { return f.offset }

// Record is a sequence of named fields. Fields are laid out contiguously
// in declaration order; a record's space is the sum of its field spaces.
// Record types compare by identity, so structurally identical records
// declared separately are distinct types.
type Record struct {
	pos      source.Pos
	fields   []*Field
	byName   map[string]*Field
	space    int
	resolved bool
}

func NewRecord(pos source.Pos) *Record {
	return &Record{pos: pos, byName: make(map[string]*Field)}
}

// AddField appends a field. It reports whether the field name was new;
// a duplicate name is not added.
func (t *Record) AddField(f *Field) bool {
	if _, dup := t.byName[f.id]; dup {
		return false
	}
	t.fields = append(t.fields, f)
	t.byName[f.id] = f
	return true
}

func (t *Record) Kind() Kind { return KindRecord }

func (t *Record) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return t.space
}

func (t *Record) Resolved() bool   { return t.resolved }
func (t *Record) Fields() []*Field { return t.fields }

// Field returns the field named id, or nil.
func (t *Record) Field(id string) *Field { return t.byName[id] }

func (t *Record) Equal(other Type) bool {
	return Type(t) == other
}

func (t *Record) String() string {
	var b strings.Builder
	b.WriteString("record ")
	for i, f := range t.fields {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(f.id)
		b.WriteString(": ")
		b.WriteString(f.typ.String())
	}
	b.WriteString(" end")
	return b.String()
}

func (t *Record) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	t.space = 0
	for _, f := range t.fields {
		f.typ = r.ResolveType(f.typ, f.pos)
		f.offset = t.space
		t.space += f.typ.Space()
	}
	return t
}
