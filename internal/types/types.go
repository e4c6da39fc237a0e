// Package types implements the type model of the language: the closed set
// of type variants, structural equality, and lazy, cycle-safe resolution.
//
// Types are created by the parser wired to the scopes they were declared
// in, and transition from unresolved to resolved exactly once, the first
// time a consumer needs them. Resolution is driven by a Resolver, which
// carries the diagnostics reporter and the set of identities currently
// being resolved (the cycle detector).
package types

import (
	"fmt"

	"pl0/internal/source"
)

// Kind enumerates the type variants.
type Kind uint8

const (
	KindError Kind = iota
	KindScalar
	KindSubrange
	KindProduct
	KindFunction
	KindIntersection
	KindProcedure
	KindIdRef
	KindReference
	KindPointer
	KindRecord
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindScalar:
		return "scalar"
	case KindSubrange:
		return "subrange"
	case KindProduct:
		return "product"
	case KindFunction:
		return "function"
	case KindIntersection:
		return "intersection"
	case KindProcedure:
		return "procedure"
	case KindIdRef:
		return "idref"
	case KindReference:
		return "reference"
	case KindPointer:
		return "pointer"
	case KindRecord:
		return "record"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is the closed interface over all type variants. Only this package
// defines implementations.
type Type interface {
	Kind() Kind
	// Space returns the number of machine words a value of this type
	// occupies. The type must be resolved.
	Space() int
	Resolved() bool
	// Equal implements per-variant type equality: identity for scalar,
	// procedure and record types, structural for the rest, set equality
	// for intersections.
	Equal(other Type) bool
	String() string

	// resolve resolves identifier references anywhere within the type and
	// returns the resolved type (which differs from the receiver only for
	// identifier references). Idempotent per instance.
	resolve(r *Resolver, pos source.Pos) Type
}

// Error is the shared error type. It absorbs failed lookups, circular
// definitions and failed coercions so a single fault produces a single
// diagnostic. It equals only itself, occupies no space and is always
// resolved.
var Error Type = &errorType{}

type errorType struct{}

func (*errorType) Kind() Kind     { return KindError }
func (*errorType) Space() int     { return 0 }
func (*errorType) Resolved() bool { return true }
func (t *errorType) Equal(other Type) bool {
	return Type(t) == other
}
func (*errorType) String() string { return "error_type" }

func (t *errorType) resolve(*Resolver, source.Pos) Type { return t }

func unresolvedSpace(t Type) int {
	panic(fmt.Sprintf("space requested for unresolved type %s", t))
}
