// Package ast defines the syntax tree the parser builds and the static
// checker rewrites in place. Expression nodes default to the error type
// until the checker assigns their final type; every implicit conversion
// the checker performs is a visible synthetic node (Dereference,
// NarrowSubrange, WidenSubrange) so the code generator never infers
// conversions itself.
package ast

import (
	"pl0/internal/source"
	"pl0/internal/syms"
	"pl0/internal/types"
)

// Expr is an expression node.
type Expr interface {
	Pos() source.Pos
	Type() types.Type
	SetType(t types.Type)
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Pos() source.Pos
	stmtNode()
}

type base struct {
	pos source.Pos
	typ types.Type
}

func (b *base) Pos() source.Pos      { return b.pos }
func (b *base) Type() types.Type     { return b.typ }
func (b *base) SetType(t types.Type) { b.typ = t }

func newBase(pos source.Pos) base {
	return base{pos: pos, typ: types.Error}
}

// Block is the body of the program or of a procedure: nested procedure
// declarations, a compound statement, and the scope the declarations
// live in.
type Block struct {
	pos   source.Pos
	Procs []*ProcedureDecl
	Body  Stmt
	Scope syms.ScopeID
}

func NewBlock(pos source.Pos, procs []*ProcedureDecl, body Stmt, scope syms.ScopeID) *Block {
	return &Block{pos: pos, Procs: procs, Body: body, Scope: scope}
}

func (b *Block) Pos() source.Pos { return b.pos }

// ProcedureDecl declares one procedure. The entry was added to the
// enclosing scope by the parser and carries the procedure's local scope.
type ProcedureDecl struct {
	pos   source.Pos
	Entry *syms.ProcedureEntry
	Block *Block
}

func NewProcedureDecl(pos source.Pos, entry *syms.ProcedureEntry, block *Block) *ProcedureDecl {
	return &ProcedureDecl{pos: pos, Entry: entry, Block: block}
}

func (d *ProcedureDecl) Pos() source.Pos { return d.pos }

// Program is the root of the tree. It carries the symbol table holding
// the scope skeleton the parser built.
type Program struct {
	Block *Block
	Table *syms.Table
}
