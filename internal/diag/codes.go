package diag

import "fmt"

// Code identifies the kind of a diagnostic. Codes are grouped per phase:
// 1xxx lexical, 2xxx syntactic, 3xxx semantic, 9xxx internal.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical.
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Syntactic.
	SynUnexpectedToken Code = 2001
	SynExpectIdent     Code = 2002
	SynExpectStatement Code = 2003
	SynExpectType      Code = 2004
	SynExpectConstant  Code = 2005

	// Semantic.
	SemUndeclared       Code = 3001
	SemRedeclared       Code = 3002
	SemUndefinedType    Code = 3003
	SemCircularType     Code = 3004
	SemCircularConst    Code = 3005
	SemIncompatible     Code = 3006
	SemBadSubrange      Code = 3007
	SemNotLValue        Code = 3008
	SemNotProcedure     Code = 3009
	SemNoOverload       Code = 3010
	SemNotReference     Code = 3011
	SemNotPointer       Code = 3012
	SemNotRecord        Code = 3013
	SemNoSuchField      Code = 3014
	SemFieldArity       Code = 3015
	SemConstExpected    Code = 3016
	SemNegateNonInteger Code = 3017

	// Internal.
	IntInternal Code = 9001
)

func (c Code) String() string {
	return fmt.Sprintf("P%04d", uint16(c))
}
