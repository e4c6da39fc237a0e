package types

import (
	"pl0/internal/source"
)

// ConstExp is a compile-time constant expression, as used for subrange
// bounds and constant declarations. Evaluation is lazy and may itself
// resolve further declarations through the resolver; implementations must
// cache their result so that cycles detected mid-evaluation settle every
// frame on the same value.
type ConstExp interface {
	Pos() source.Pos
	// Value evaluates the constant. On a circular or otherwise faulty
	// constant the value is 0 and TypeOf reports the error type.
	Value(r *Resolver) int
	TypeOf(r *Resolver) Type
}

// ConstNumber is an integer literal constant with a fixed type.
type ConstNumber struct {
	pos source.Pos
	typ Type
	val int
}

func NewConstNumber(pos source.Pos, typ Type, val int) *ConstNumber {
	return &ConstNumber{pos: pos, typ: typ, val: val}
}

func (c *ConstNumber) Pos() source.Pos       { return c.pos }
func (c *ConstNumber) Value(*Resolver) int   { return c.val }
func (c *ConstNumber) TypeOf(*Resolver) Type { return c.typ }
