package syms

import (
	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/types"
)

// ConstIdent is a constant expression referring to another constant by
// name. Evaluation looks the name up in the scope the reference occurred
// in and adopts that constant's value and type; the result is cached so a
// faulty reference is reported once.
type ConstIdent struct {
	pos       source.Pos
	name      string
	scope     *Scope
	typ       types.Type
	val       int
	evaluated bool
}

func NewConstIdent(pos source.Pos, name string, scope *Scope) *ConstIdent {
	return &ConstIdent{pos: pos, name: name, scope: scope, typ: types.Error}
}

func (c *ConstIdent) Pos() source.Pos { return c.pos }

func (c *ConstIdent) Value(r *types.Resolver) int {
	c.evaluate(r)
	return c.val
}

func (c *ConstIdent) TypeOf(r *types.Resolver) types.Type {
	c.evaluate(r)
	return c.typ
}

func (c *ConstIdent) evaluate(r *types.Resolver) {
	if c.evaluated {
		return
	}
	c.evaluated = true
	entry, ok := c.scope.Lookup(c.name).(*ConstantEntry)
	if !ok {
		diag.Errorf(r.Reporter(), diag.SemConstExpected, c.pos,
			"constant identifier expected")
		return
	}
	c.val = entry.Value(r)
	c.typ = entry.Type(r)
}

// ConstNegate is a negated constant expression. Only integer constants
// may be negated.
type ConstNegate struct {
	pos       source.Pos
	scope     *Scope
	exp       types.ConstExp
	typ       types.Type
	val       int
	evaluated bool
}

func NewConstNegate(pos source.Pos, scope *Scope, exp types.ConstExp) *ConstNegate {
	return &ConstNegate{pos: pos, scope: scope, exp: exp, typ: types.Error}
}

func (c *ConstNegate) Pos() source.Pos { return c.pos }

func (c *ConstNegate) Value(r *types.Resolver) int {
	c.evaluate(r)
	return c.val
}

func (c *ConstNegate) TypeOf(r *types.Resolver) types.Type {
	c.evaluate(r)
	return c.typ
}

func (c *ConstNegate) evaluate(r *types.Resolver) {
	if c.evaluated {
		return
	}
	c.evaluated = true
	typ := c.exp.TypeOf(r)
	if !typ.Equal(c.scope.table.predef.Int) {
		diag.Errorf(r.Reporter(), diag.SemNegateNonInteger, c.pos,
			"can only negate an integer")
		return
	}
	c.typ = typ
	c.val = -c.exp.Value(r)
}
