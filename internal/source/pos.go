// Package source provides source positions and files for the compiler.
// Invariants:
//   - Pos is a byte offset into a single source file.
//   - NoPos sorts after every real position, so diagnostics without a
//     location come last in position-ordered output.
package source

// Pos is a byte offset into the source file.
type Pos uint32

// NoPos marks the absence of a position.
const NoPos Pos = ^Pos(0)

// Valid reports whether p refers to an actual location.
func (p Pos) Valid() bool {
	return p != NoPos
}
