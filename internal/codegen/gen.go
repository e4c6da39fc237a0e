package codegen

import (
	"pl0/internal/ast"
	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/syms"
	"pl0/internal/types"
	"pl0/internal/vm"
)

type generator struct {
	rep   diag.Reporter
	table *syms.Table
	level int
	frags []*frag
}

// frag is the code of one procedure body. The main program's entry is
// nil.
type frag struct {
	entry *syms.ProcedureEntry
	code  *code
}

// Generate lowers a checked, error-free program to an executable code
// image. Procedure start addresses are recorded on their entries.
func Generate(prog *ast.Program, rep diag.Reporter) []int32 {
	g := &generator{rep: rep, table: prog.Table, level: 1}

	// The machine starts with fp = sp = 0, so the first three words
	// pushed form the main frame: dummy static and dynamic links and a
	// zero return address, which makes the final RETURN halt.
	prologue := &code{}
	prologue.emit(vm.OpZero)
	prologue.emit(vm.OpZero)
	prologue.emit(vm.OpZero)
	g.frags = append(g.frags, &frag{code: prologue})

	g.genBlock(prog.Block, nil)

	image := &code{}
	for _, f := range g.frags {
		if f.entry != nil {
			f.entry.SetStart(image.size())
		}
		image.append(f.code)
	}
	for _, f := range image.fixups {
		image.words[f.at] = word(f.entry.Start())
	}
	return image.words
}

// genBlock generates the body of the main program or a procedure, then
// the nested procedures one static level deeper.
func (g *generator) genBlock(b *ast.Block, entry *syms.ProcedureEntry) {
	c := &code{}
	if space := g.table.Scope(b.Scope).VariableSpace(); space > 0 {
		c.emit(vm.OpAlloc, word(space))
	}
	c.append(g.stmt(b.Body))
	c.emit(vm.OpReturn)
	g.frags = append(g.frags, &frag{entry: entry, code: c})

	g.level++
	for _, proc := range b.Procs {
		g.genBlock(proc.Block, proc.Entry)
	}
	g.level--
}

func (g *generator) stmt(stmt ast.Stmt) *code {
	c := &code{}
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		c.append(g.exp(s.Right))
		c.append(g.exp(s.LValue))
		ref, ok := s.LValue.Type().(*types.Reference)
		if !ok {
			g.fatalf(stmt, "assignment target is not an l-value")
		}
		c.store(ref.Base().Space())
	case *ast.WriteStmt:
		c.append(g.exp(s.Exp))
		c.emit(vm.OpWrite)
	case *ast.CallStmt:
		c.call(g.level-s.Entry.Level(), s.Entry)
	case *ast.CompoundStmt:
		for _, sub := range s.Stmts {
			c.append(g.stmt(sub))
		}
	case *ast.IfStmt:
		c.append(g.exp(s.Cond))
		then := g.stmt(s.Then)
		els := g.stmt(s.Else)
		c.jumpIfFalse(then.size() + sizeJump)
		c.append(then)
		c.jumpAlways(els.size())
		c.append(els)
	case *ast.WhileStmt:
		c.append(g.exp(s.Cond))
		body := g.stmt(s.Body)
		c.jumpIfFalse(body.size() + sizeJump)
		c.append(body)
		c.jumpAlways(-(c.size() + sizeJump))
	default:
		g.fatalf(stmt, "cannot generate code for %T", stmt)
	}
	return c
}

func (g *generator) exp(exp ast.Expr) *code {
	c := &code{}
	switch e := exp.(type) {
	case *ast.ConstExpr:
		c.loadConstant(e.Value)
	case *ast.ReadExpr:
		c.emit(vm.OpRead)
	case *ast.VariableExpr:
		c.memRef(g.level-e.Entry.Level(), e.Entry.Offset())
	case *ast.OperatorExpr:
		return g.operator(e)
	case *ast.ArgumentsExpr:
		for _, arg := range e.Args {
			c.append(g.exp(arg))
		}
	case *ast.DereferenceExpr:
		c.append(g.exp(e.Inner))
		c.load(e.Type().Space())
	case *ast.NarrowSubrangeExpr:
		sub := e.Type().(*types.Subrange)
		c.append(g.exp(e.Inner))
		c.boundsCheck(sub.Lower(), sub.Upper())
	case *ast.WidenSubrangeExpr:
		// widening changes the type, not the value
		return g.exp(e.Inner)
	case *ast.PointerDerefExpr:
		c.append(g.exp(e.Ptr))
		c.emit(vm.OpLoad)
		c.emit(vm.OpNilCheck)
	case *ast.FieldAccessExpr:
		c.append(g.exp(e.Rec))
		if e.Offset != 0 {
			c.loadConstant(e.Offset)
			c.emit(vm.OpAdd)
		}
	case *ast.NewAllocExpr:
		p := e.Type().(*types.Pointer)
		c.emit(vm.OpNew, word(p.Base().Space()))
	case *ast.RecordConstructorExpr:
		// field values pushed in declaration order form the record's
		// memory layout
		for _, f := range e.Fields {
			c.append(g.exp(f))
		}
	default:
		g.fatalf(exp, "cannot generate code for %T", exp)
	}
	return c
}

func (g *generator) operator(e *ast.OperatorExpr) *code {
	var c *code
	switch e.Op {
	case ast.OpGreater, ast.OpGreaterEq:
		// x > y evaluates as y < x
		c = g.argsReversed(e.Arg.(*ast.ArgumentsExpr))
	default:
		c = g.exp(e.Arg)
	}
	switch e.Op {
	case ast.OpAdd:
		c.emit(vm.OpAdd)
	case ast.OpSub:
		c.emit(vm.OpNegate)
		c.emit(vm.OpAdd)
	case ast.OpMul:
		c.emit(vm.OpMul)
	case ast.OpDiv:
		c.emit(vm.OpDiv)
	case ast.OpEqual:
		c.emit(vm.OpEqual)
	case ast.OpNotEqual:
		c.emit(vm.OpEqual)
		c.emit(vm.OpNot)
	case ast.OpLess, ast.OpGreater:
		c.emit(vm.OpLess)
	case ast.OpLessEq, ast.OpGreaterEq:
		c.emit(vm.OpLessEq)
	case ast.OpNegate:
		c.emit(vm.OpNegate)
	default:
		g.fatalf(e, "unknown operator %s", e.Op)
	}
	return c
}

func (g *generator) argsReversed(args *ast.ArgumentsExpr) *code {
	c := &code{}
	for i := len(args.Args) - 1; i >= 0; i-- {
		c.append(g.exp(args.Args[i]))
	}
	return c
}

func (g *generator) fatalf(node interface{ Pos() source.Pos }, format string, args ...any) {
	diag.Fatalf(g.rep, diag.IntInternal, node.Pos(), format, args...)
}
