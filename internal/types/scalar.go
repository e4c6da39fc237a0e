package types

import (
	"fmt"

	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/vm"
)

// Scalar is a primitive ordered type such as int or boolean. Scalars are
// created fully resolved, with a fixed value range, and compare by
// identity: two scalars are the same type only if they are the same
// object.
type Scalar struct {
	name  string
	space int
	lower int
	upper int
}

func NewScalar(name string, space, lower, upper int) *Scalar {
	return &Scalar{name: name, space: space, lower: lower, upper: upper}
}

func (t *Scalar) Kind() Kind     { return KindScalar }
func (t *Scalar) Space() int     { return t.space }
func (t *Scalar) Resolved() bool { return true }
func (t *Scalar) Lower() int     { return t.lower }
func (t *Scalar) Upper() int     { return t.upper }
func (t *Scalar) String() string { return t.name }

func (t *Scalar) Equal(other Type) bool {
	return Type(t) == other
}

func (t *Scalar) resolve(*Resolver, source.Pos) Type { return t }

// Subrange restricts a scalar base type to the values between two constant
// bounds, inclusive. The bound expressions are evaluated at resolution
// time, and the base type is taken from them; bounds of differing types or
// an upper bound below the lower are reported and leave the base as the
// error type.
type Subrange struct {
	pos      source.Pos
	lowerExp ConstExp
	upperExp ConstExp
	base     Type
	lower    int
	upper    int
	resolved bool
}

func NewSubrange(pos source.Pos, lower, upper ConstExp) *Subrange {
	return &Subrange{pos: pos, lowerExp: lower, upperExp: upper, base: Error}
}

func (t *Subrange) Kind() Kind { return KindSubrange }

func (t *Subrange) Space() int {
	if !t.resolved {
		return unresolvedSpace(t)
	}
	return vm.SizeOfInt
}

func (t *Subrange) Resolved() bool { return t.resolved }

// Base returns the resolved base type of the subrange.
func (t *Subrange) Base() Type { return t.base }

func (t *Subrange) Lower() int {
	if !t.resolved {
		panic("bounds requested for unresolved subrange")
	}
	return t.lower
}

func (t *Subrange) Upper() int {
	if !t.resolved {
		panic("bounds requested for unresolved subrange")
	}
	return t.upper
}

// Equal holds for two subranges over equal base types with identical
// bounds.
func (t *Subrange) Equal(other Type) bool {
	o, ok := other.(*Subrange)
	return ok && t.base.Equal(o.base) && t.lower == o.lower && t.upper == o.upper
}

func (t *Subrange) String() string {
	return fmt.Sprintf("%s[%d..%d]", t.base, t.lower, t.upper)
}

func (t *Subrange) resolve(r *Resolver, pos source.Pos) Type {
	if t.resolved {
		return t
	}
	t.resolved = true
	t.lower = t.lowerExp.Value(r)
	t.upper = t.upperExp.Value(r)
	if t.upper < t.lower {
		r.errorf(diag.SemBadSubrange, t.pos,
			"upper bound of subrange less than lower bound")
	}
	t.base = t.upperExp.TypeOf(r)
	if !t.base.Equal(t.lowerExp.TypeOf(r)) {
		r.errorf(diag.SemBadSubrange, t.pos,
			"types of bounds of subrange should match")
		t.base = Error
	}
	return t
}
