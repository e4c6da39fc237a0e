package ast

import (
	"pl0/internal/source"
	"pl0/internal/syms"
	"pl0/internal/types"
)

// ErrorExpr replaces an expression that failed to parse or to check.
type ErrorExpr struct {
	base
}

func NewErrorExpr(pos source.Pos) *ErrorExpr {
	return &ErrorExpr{base: newBase(pos)}
}

// ConstExpr is a known constant value: a literal, or an identifier the
// checker resolved to a constant entry.
type ConstExpr struct {
	base
	Value int
}

func NewConstExpr(pos source.Pos, typ types.Type, value int) *ConstExpr {
	e := &ConstExpr{base: newBase(pos), Value: value}
	e.typ = typ
	return e
}

// IdentExpr is an identifier use the checker has not classified yet. The
// checker replaces it with a ConstExpr or VariableExpr.
type IdentExpr struct {
	base
	Name string
}

func NewIdentExpr(pos source.Pos, name string) *IdentExpr {
	return &IdentExpr{base: newBase(pos), Name: name}
}

// VariableExpr is a use of a declared variable. Its type is the entry's
// reference type.
type VariableExpr struct {
	base
	Entry *syms.VarEntry
}

func NewVariableExpr(pos source.Pos, entry *syms.VarEntry) *VariableExpr {
	return &VariableExpr{base: newBase(pos), Entry: entry}
}

// ReadExpr reads an integer from input.
type ReadExpr struct {
	base
}

func NewReadExpr(pos source.Pos) *ReadExpr {
	return &ReadExpr{base: newBase(pos)}
}

// OperatorExpr applies an operator to its argument: a single expression
// for unary operators, an ArgumentsExpr pair for binary ones.
type OperatorExpr struct {
	base
	Op  Operator
	Arg Expr
}

func NewOperatorExpr(pos source.Pos, op Operator, arg Expr) *OperatorExpr {
	return &OperatorExpr{base: newBase(pos), Op: op, Arg: arg}
}

// ArgumentsExpr is a tuple of argument expressions of product type.
type ArgumentsExpr struct {
	base
	Args []Expr
}

func NewArgumentsExpr(pos source.Pos, args []Expr) *ArgumentsExpr {
	return &ArgumentsExpr{base: newBase(pos), Args: args}
}

// DereferenceExpr loads the value out of a reference. Inserted by
// coercion; never written in source.
type DereferenceExpr struct {
	base
	Inner Expr
}

func NewDereferenceExpr(typ types.Type, inner Expr) *DereferenceExpr {
	e := &DereferenceExpr{base: newBase(inner.Pos()), Inner: inner}
	e.typ = typ
	return e
}

// NarrowSubrangeExpr marks a value as narrowed into a subrange; the code
// generator emits a bounds check from it.
type NarrowSubrangeExpr struct {
	base
	Inner Expr
}

func NewNarrowSubrangeExpr(typ *types.Subrange, inner Expr) *NarrowSubrangeExpr {
	e := &NarrowSubrangeExpr{base: newBase(inner.Pos()), Inner: inner}
	e.typ = typ
	return e
}

// WidenSubrangeExpr marks a subrange value as promoted to its base type.
// No value transformation occurs.
type WidenSubrangeExpr struct {
	base
	Inner Expr
}

func NewWidenSubrangeExpr(typ *types.Scalar, inner Expr) *WidenSubrangeExpr {
	e := &WidenSubrangeExpr{base: newBase(inner.Pos()), Inner: inner}
	e.typ = typ
	return e
}

// FieldAccessExpr selects a field of a record l-value. The checker fills
// in the field's offset within the record.
type FieldAccessExpr struct {
	base
	Rec    Expr
	Field  string
	Offset int
}

func NewFieldAccessExpr(pos source.Pos, rec Expr, field string) *FieldAccessExpr {
	return &FieldAccessExpr{base: newBase(pos), Rec: rec, Field: field}
}

// PointerDerefExpr follows a pointer: given an l-value holding a pointer
// to T, yields an l-value of type T.
type PointerDerefExpr struct {
	base
	Ptr Expr
}

func NewPointerDerefExpr(pos source.Pos, ptr Expr) *PointerDerefExpr {
	return &PointerDerefExpr{base: newBase(pos), Ptr: ptr}
}

// NewAllocExpr allocates a value of a named pointer type's base type on
// the heap and yields the pointer.
type NewAllocExpr struct {
	base
	TypeName string
}

func NewNewAllocExpr(pos source.Pos, typeName string) *NewAllocExpr {
	return &NewAllocExpr{base: newBase(pos), TypeName: typeName}
}

// RecordConstructorExpr builds a record value of a named record type from
// a positional field-expression list.
type RecordConstructorExpr struct {
	base
	TypeName string
	Fields   []Expr
}

func NewRecordConstructorExpr(pos source.Pos, typeName string, fields []Expr) *RecordConstructorExpr {
	return &RecordConstructorExpr{base: newBase(pos), TypeName: typeName, Fields: fields}
}

func (*ErrorExpr) exprNode()             {}
func (*ConstExpr) exprNode()             {}
func (*IdentExpr) exprNode()             {}
func (*VariableExpr) exprNode()          {}
func (*ReadExpr) exprNode()              {}
func (*OperatorExpr) exprNode()          {}
func (*ArgumentsExpr) exprNode()         {}
func (*DereferenceExpr) exprNode()       {}
func (*NarrowSubrangeExpr) exprNode()    {}
func (*WidenSubrangeExpr) exprNode()     {}
func (*FieldAccessExpr) exprNode()       {}
func (*PointerDerefExpr) exprNode()      {}
func (*NewAllocExpr) exprNode()          {}
func (*RecordConstructorExpr) exprNode() {}
