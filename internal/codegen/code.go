// Package codegen lowers a checked tree to stack machine code. Every
// procedure is generated as a relocatable fragment; the fragments are
// laid out into a single image with the main program first, and call
// sites are patched once procedure start addresses are known.
package codegen

import (
	"fortio.org/safecast"

	"pl0/internal/syms"
	"pl0/internal/vm"
)

// words occupied by an emitted jump, operand included
const sizeJump = 2

// code is a relocatable instruction sequence. Call targets are recorded
// as fixups against procedure entries rather than addresses.
type code struct {
	words  []int32
	fixups []fixup
}

// fixup marks an address operand to patch with the entry's start
// address during layout.
type fixup struct {
	at    int
	entry *syms.ProcedureEntry
}

func (c *code) size() int { return len(c.words) }

func (c *code) emit(op vm.Op, operands ...int32) {
	c.words = append(c.words, int32(op))
	c.words = append(c.words, operands...)
}

// append moves other's instructions onto the end of c, relocating its
// fixups.
func (c *code) append(other *code) {
	base := len(c.words)
	c.words = append(c.words, other.words...)
	for _, f := range other.fixups {
		c.fixups = append(c.fixups, fixup{at: base + f.at, entry: f.entry})
	}
}

func (c *code) loadConstant(v int) {
	switch v {
	case 0:
		c.emit(vm.OpZero)
	case 1:
		c.emit(vm.OpOne)
	default:
		c.emit(vm.OpLoadCon, word(v))
	}
}

func (c *code) jumpAlways(offset int)  { c.emit(vm.OpJump, word(offset)) }
func (c *code) jumpIfFalse(offset int) { c.emit(vm.OpJumpFalse, word(offset)) }

func (c *code) memRef(levelDiff, offset int) {
	c.emit(vm.OpLoadAddr, word(levelDiff), word(offset))
}

func (c *code) boundsCheck(lower, upper int) {
	c.emit(vm.OpBound, word(lower), word(upper))
}

// call emits a call with a placeholder address and records the fixup.
func (c *code) call(levelDiff int, entry *syms.ProcedureEntry) {
	c.emit(vm.OpCall, word(levelDiff), 0)
	c.fixups = append(c.fixups, fixup{at: len(c.words) - 1, entry: entry})
}

// load replaces an address on top of the stack with the size words it
// points at.
func (c *code) load(size int) {
	if size == 1 {
		c.emit(vm.OpLoad)
	} else {
		c.emit(vm.OpLoadMulti, word(size))
	}
}

// store pops an address and the size words below it and stores them
// there.
func (c *code) store(size int) {
	if size == 1 {
		c.emit(vm.OpStore)
	} else {
		c.emit(vm.OpStoreMulti, word(size))
	}
}

func word(v int) int32 {
	w, err := safecast.Conv[int32](v)
	if err != nil {
		panic(err)
	}
	return w
}
