package ast

import "fmt"

// Operator identifies an operator application. Sym returns the name the
// operator is bound under in the symbol table, with underscores marking
// operand positions.
type Operator uint8

const (
	OpInvalid Operator = iota

	// binary
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpEqual
	OpNotEqual
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq

	// unary
	OpNegate
)

var opSyms = map[Operator]string{
	OpAdd:       "_+_",
	OpSub:       "_-_",
	OpMul:       "_*_",
	OpDiv:       "_/_",
	OpEqual:     "_=_",
	OpNotEqual:  "_!=_",
	OpLess:      "_<_",
	OpLessEq:    "_<=_",
	OpGreater:   "_>_",
	OpGreaterEq: "_>=_",
	OpNegate:    "-_",
}

func (op Operator) Sym() string {
	if s, ok := opSyms[op]; ok {
		return s
	}
	return fmt.Sprintf("Operator(%d)", op)
}

func (op Operator) String() string { return op.Sym() }
