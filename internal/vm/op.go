// Package vm implements the word-addressed stack machine that compiled
// programs run on, together with the machine constants the rest of the
// compiler depends on (word sizes, frame layout).
package vm

import "fmt"

// Machine constants. All sizes are in words.
const (
	// SizeOfInt is the number of words occupied by an integer value.
	SizeOfInt = 1
	// SizeOfBool is the number of words occupied by a boolean value.
	SizeOfBool = 1
	// SizeOfAddr is the number of words occupied by an address.
	SizeOfAddr = 1
	// LocalsBase is the frame-pointer-relative offset of the first local
	// variable. Each frame starts with the static link, the dynamic link
	// and the return address.
	LocalsBase = 3

	TrueValue  = 1
	FalseValue = 0
	// NullAddr is the value of the nil pointer. Heap addresses are always
	// greater than zero.
	NullAddr = 0
)

// Op is a stack machine operation code. Operands, where present, occupy
// the words immediately following the opcode.
type Op int32

const (
	OpZero    Op = iota // push 0
	OpOne               // push 1
	OpLoadCon           // push operand
	OpAdd               // pop y, x; push x+y
	OpNegate            // pop x; push -x
	OpMul               // pop y, x; push x*y
	OpDiv               // pop y, x; push x/y
	OpEqual             // pop y, x; push x=y
	OpLess              // pop y, x; push x<y
	OpLessEq            // pop y, x; push x<=y
	OpNot               // pop x; push 1-x
	OpRead              // read integer from input; push it
	OpWrite             // pop x; write it to output
	OpJump              // pc += operand
	OpJumpFalse         // pop x; if x = 0 then pc += operand
	OpLoadAddr          // operands level diff, offset; push frame address
	OpLoad              // pop addr; push mem[addr]
	OpStore             // pop addr, value; mem[addr] := value
	OpLoadMulti         // operands size; pop addr; push mem[addr..addr+size)
	OpStoreMulti        // operands size; pop addr, size values; store them
	OpAlloc             // sp += operand
	OpCall              // operands level diff, address; push frame, jump
	OpReturn            // pop frame; halt if return address is 0
	OpBound             // operands lower, upper; error unless top in range
	OpNew               // operand size; allocate on heap; push address
	OpNilCheck          // error if top = NullAddr

	numOps
)

var opNames = [...]string{
	OpZero:       "ZERO",
	OpOne:        "ONE",
	OpLoadCon:    "LOAD_CON",
	OpAdd:        "ADD",
	OpNegate:     "NEGATE",
	OpMul:        "MUL",
	OpDiv:        "DIV",
	OpEqual:      "EQUAL",
	OpLess:       "LESS",
	OpLessEq:     "LESS_EQ",
	OpNot:        "NOT",
	OpRead:       "READ",
	OpWrite:      "WRITE",
	OpJump:       "JUMP",
	OpJumpFalse:  "JUMP_FALSE",
	OpLoadAddr:   "LOAD_ADDR",
	OpLoad:       "LOAD",
	OpStore:      "STORE",
	OpLoadMulti:  "LOAD_MULTI",
	OpStoreMulti: "STORE_MULTI",
	OpAlloc:      "ALLOC",
	OpCall:       "CALL",
	OpReturn:     "RETURN",
	OpBound:      "BOUND",
	OpNew:        "NEW",
	OpNilCheck:   "NIL_CHECK",
}

func (op Op) String() string {
	if op < 0 || op >= numOps {
		return fmt.Sprintf("Op(%d)", int32(op))
	}
	return opNames[op]
}

// Operands returns the number of operand words following the opcode.
func (op Op) Operands() int {
	switch op {
	case OpLoadCon, OpJump, OpJumpFalse, OpLoadMulti, OpStoreMulti, OpAlloc, OpNew:
		return 1
	case OpLoadAddr, OpCall, OpBound:
		return 2
	default:
		return 0
	}
}
