package vm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// DefaultMemSize is the number of data words a machine allocates when
// Options.MemSize is zero.
const DefaultMemSize = 1 << 16

// Runtime errors. Machine.Run wraps these with the program counter of
// the faulting instruction.
var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrHeapOverflow   = errors.New("heap overflow")
	ErrDivByZero      = errors.New("division by zero")
	ErrOutOfRange     = errors.New("value out of range")
	ErrNilPointer     = errors.New("nil pointer dereferenced")
	ErrBadAddress     = errors.New("address out of range")
	ErrBadOpcode      = errors.New("invalid opcode")
	ErrBadInput       = errors.New("integer expected on input")
)

// Options configures a machine run.
type Options struct {
	// In supplies values for READ instructions. Defaults to an empty
	// reader.
	In io.Reader
	// Out receives WRITE output, one integer per line. Defaults to
	// io.Discard.
	Out io.Writer
	// Trace, when non-nil, receives a line per executed instruction.
	Trace io.Writer
	// MemSize is the data memory size in words, DefaultMemSize if zero.
	MemSize int
}

// Machine executes compiled code. Code and data live in separate
// address spaces: the program counter indexes the code image, while
// every address on the stack indexes data memory. The stack grows up
// from address 0 and the heap grows down from the top, so heap
// addresses are never NullAddr.
type Machine struct {
	code  []int32
	mem   []int32
	pc    int32
	fp    int32
	sp    int32
	hp    int32
	in    *bufio.Reader
	out   io.Writer
	trace io.Writer
}

// New prepares a machine to run code from its first word. Execution
// begins with the frame pointer equal to the stack pointer, both zero,
// so the main prologue establishes the initial frame by pushing dummy
// links and a zero return address.
func New(code []int32, opts Options) *Machine {
	memSize := opts.MemSize
	if memSize <= 0 {
		memSize = DefaultMemSize
	}
	in := opts.In
	if in == nil {
		in = bytes.NewReader(nil)
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	return &Machine{
		code:  code,
		mem:   make([]int32, memSize),
		hp:    int32(memSize),
		in:    bufio.NewReader(in),
		out:   out,
		trace: opts.Trace,
	}
}

// Run executes until the main frame returns or a runtime error occurs.
func (m *Machine) Run() error {
	for {
		if m.pc < 0 || int(m.pc) >= len(m.code) {
			return m.fail(ErrBadAddress)
		}
		op := Op(m.code[m.pc])
		if op < 0 || op >= numOps {
			return m.fail(ErrBadOpcode)
		}
		if int(m.pc)+op.Operands() >= len(m.code) {
			return m.fail(ErrBadAddress)
		}
		if m.trace != nil {
			m.traceStep(op)
		}
		halt, err := m.step(op)
		if err != nil {
			return err
		}
		if halt {
			return nil
		}
	}
}

func (m *Machine) step(op Op) (halt bool, err error) {
	at := m.pc
	m.pc += 1 + int32(op.Operands())
	switch op {
	case OpZero:
		err = m.push(0)
	case OpOne:
		err = m.push(1)
	case OpLoadCon:
		err = m.push(m.code[at+1])
	case OpAdd:
		err = m.binary(func(x, y int32) (int32, error) { return x + y, nil })
	case OpNegate:
		err = m.unary(func(x int32) (int32, error) { return -x, nil })
	case OpMul:
		err = m.binary(func(x, y int32) (int32, error) { return x * y, nil })
	case OpDiv:
		err = m.binary(func(x, y int32) (int32, error) {
			if y == 0 {
				return 0, ErrDivByZero
			}
			return x / y, nil
		})
	case OpEqual:
		err = m.binary(func(x, y int32) (int32, error) { return boolWord(x == y), nil })
	case OpLess:
		err = m.binary(func(x, y int32) (int32, error) { return boolWord(x < y), nil })
	case OpLessEq:
		err = m.binary(func(x, y int32) (int32, error) { return boolWord(x <= y), nil })
	case OpNot:
		err = m.unary(func(x int32) (int32, error) { return 1 - x, nil })
	case OpRead:
		var v int32
		if _, scanErr := fmt.Fscan(m.in, &v); scanErr != nil {
			err = ErrBadInput
			break
		}
		err = m.push(v)
	case OpWrite:
		var v int32
		if v, err = m.pop(); err == nil {
			fmt.Fprintln(m.out, v)
		}
	case OpJump:
		m.pc += m.code[at+1]
	case OpJumpFalse:
		var v int32
		if v, err = m.pop(); err == nil && v == FalseValue {
			m.pc += m.code[at+1]
		}
	case OpLoadAddr:
		var base int32
		if base, err = m.frameAt(m.code[at+1]); err == nil {
			err = m.push(base + m.code[at+2])
		}
	case OpLoad:
		var addr, v int32
		if addr, err = m.pop(); err == nil {
			if v, err = m.load(addr); err == nil {
				err = m.push(v)
			}
		}
	case OpStore:
		var addr, v int32
		if addr, err = m.pop(); err == nil {
			if v, err = m.pop(); err == nil {
				err = m.store(addr, v)
			}
		}
	case OpLoadMulti:
		err = m.loadMulti(m.code[at+1])
	case OpStoreMulti:
		err = m.storeMulti(m.code[at+1])
	case OpAlloc:
		err = m.alloc(m.code[at+1])
	case OpCall:
		err = m.call(m.code[at+1], m.code[at+2])
	case OpReturn:
		halt, err = m.ret()
	case OpBound:
		var v int32
		if v, err = m.top(); err == nil {
			if v < m.code[at+1] || m.code[at+2] < v {
				err = fmt.Errorf("%w: %d not in %d..%d",
					ErrOutOfRange, v, m.code[at+1], m.code[at+2])
			}
		}
	case OpNew:
		err = m.heapAlloc(m.code[at+1])
	case OpNilCheck:
		var v int32
		if v, err = m.top(); err == nil && v == NullAddr {
			err = ErrNilPointer
		}
	}
	if err != nil {
		return false, m.failAt(at, err)
	}
	return halt, nil
}

func (m *Machine) push(v int32) error {
	if m.sp >= m.hp {
		return ErrStackOverflow
	}
	m.mem[m.sp] = v
	m.sp++
	return nil
}

func (m *Machine) pop() (int32, error) {
	if m.sp <= 0 {
		return 0, ErrStackUnderflow
	}
	m.sp--
	return m.mem[m.sp], nil
}

func (m *Machine) top() (int32, error) {
	if m.sp <= 0 {
		return 0, ErrStackUnderflow
	}
	return m.mem[m.sp-1], nil
}

func (m *Machine) unary(f func(x int32) (int32, error)) error {
	x, err := m.pop()
	if err != nil {
		return err
	}
	v, err := f(x)
	if err != nil {
		return err
	}
	return m.push(v)
}

func (m *Machine) binary(f func(x, y int32) (int32, error)) error {
	y, err := m.pop()
	if err != nil {
		return err
	}
	x, err := m.pop()
	if err != nil {
		return err
	}
	v, err := f(x, y)
	if err != nil {
		return err
	}
	return m.push(v)
}

func (m *Machine) load(addr int32) (int32, error) {
	if addr < 0 || int(addr) >= len(m.mem) {
		return 0, ErrBadAddress
	}
	return m.mem[addr], nil
}

func (m *Machine) store(addr, v int32) error {
	if addr < 0 || int(addr) >= len(m.mem) {
		return ErrBadAddress
	}
	m.mem[addr] = v
	return nil
}

func (m *Machine) loadMulti(size int32) error {
	addr, err := m.pop()
	if err != nil {
		return err
	}
	if addr < 0 || int(addr)+int(size) > len(m.mem) {
		return ErrBadAddress
	}
	for i := int32(0); i < size; i++ {
		if err := m.push(m.mem[addr+i]); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) storeMulti(size int32) error {
	addr, err := m.pop()
	if err != nil {
		return err
	}
	if m.sp < size {
		return ErrStackUnderflow
	}
	if addr < 0 || int(addr)+int(size) > len(m.mem) {
		return ErrBadAddress
	}
	m.sp -= size
	copy(m.mem[addr:addr+size], m.mem[m.sp:m.sp+size])
	return nil
}

func (m *Machine) alloc(size int32) error {
	if m.sp+size > m.hp {
		return ErrStackOverflow
	}
	for i := int32(0); i < size; i++ {
		m.mem[m.sp+i] = 0
	}
	m.sp += size
	return nil
}

func (m *Machine) heapAlloc(size int32) error {
	if m.hp-size < m.sp {
		return ErrHeapOverflow
	}
	m.hp -= size
	for i := int32(0); i < size; i++ {
		m.mem[m.hp+i] = 0
	}
	return m.push(m.hp)
}

// frameAt follows the static chain levelDiff links up from the current
// frame and returns that frame's base address.
func (m *Machine) frameAt(levelDiff int32) (int32, error) {
	f := m.fp
	for ; levelDiff > 0; levelDiff-- {
		var err error
		if f, err = m.load(f); err != nil {
			return 0, err
		}
	}
	return f, nil
}

func (m *Machine) call(levelDiff, addr int32) error {
	link, err := m.frameAt(levelDiff)
	if err != nil {
		return err
	}
	base := m.sp
	if err := m.push(link); err != nil {
		return err
	}
	if err := m.push(m.fp); err != nil {
		return err
	}
	if err := m.push(m.pc); err != nil {
		return err
	}
	m.fp = base
	m.pc = addr
	return nil
}

// ret pops the current frame. A zero return address terminates
// execution, which is how the main program's prologue arranges to halt.
func (m *Machine) ret() (halt bool, err error) {
	ret, err := m.load(m.fp + 2)
	if err != nil {
		return false, err
	}
	dyn, err := m.load(m.fp + 1)
	if err != nil {
		return false, err
	}
	m.sp = m.fp
	m.fp = dyn
	if ret == 0 {
		return true, nil
	}
	m.pc = ret
	return false, nil
}

func (m *Machine) traceStep(op Op) {
	fmt.Fprintf(m.trace, "%5d: %-11s", m.pc, op)
	for i := 1; i <= op.Operands(); i++ {
		fmt.Fprintf(m.trace, " %d", m.code[m.pc+int32(i)])
	}
	fmt.Fprintf(m.trace, "\tfp=%d sp=%d\n", m.fp, m.sp)
}

func (m *Machine) fail(err error) error {
	return m.failAt(m.pc, err)
}

func (m *Machine) failAt(pc int32, err error) error {
	return fmt.Errorf("runtime error at %d: %w", pc, err)
}

func boolWord(b bool) int32 {
	if b {
		return TrueValue
	}
	return FalseValue
}
