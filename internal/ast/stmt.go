package ast

import (
	"pl0/internal/source"
	"pl0/internal/syms"
)

// ErrorStmt replaces a statement that failed to parse.
type ErrorStmt struct {
	pos source.Pos
}

func NewErrorStmt(pos source.Pos) *ErrorStmt { return &ErrorStmt{pos: pos} }

func (s *ErrorStmt) Pos() source.Pos { return s.pos }

// AssignStmt stores the value of Right into the location LValue.
type AssignStmt struct {
	pos    source.Pos
	LValue Expr
	Right  Expr
}

func NewAssignStmt(pos source.Pos, lvalue, right Expr) *AssignStmt {
	return &AssignStmt{pos: pos, LValue: lvalue, Right: right}
}

func (s *AssignStmt) Pos() source.Pos { return s.pos }

// WriteStmt writes an integer to output.
type WriteStmt struct {
	pos source.Pos
	Exp Expr
}

func NewWriteStmt(pos source.Pos, exp Expr) *WriteStmt {
	return &WriteStmt{pos: pos, Exp: exp}
}

func (s *WriteStmt) Pos() source.Pos { return s.pos }

// CallStmt calls a procedure by name. The checker fills in Entry.
type CallStmt struct {
	pos   source.Pos
	Name  string
	Entry *syms.ProcedureEntry
}

func NewCallStmt(pos source.Pos, name string) *CallStmt {
	return &CallStmt{pos: pos, Name: name}
}

func (s *CallStmt) Pos() source.Pos { return s.pos }

// CompoundStmt is a begin/end sequence of statements.
type CompoundStmt struct {
	pos   source.Pos
	Stmts []Stmt
}

func NewCompoundStmt(pos source.Pos, stmts []Stmt) *CompoundStmt {
	return &CompoundStmt{pos: pos, Stmts: stmts}
}

func (s *CompoundStmt) Pos() source.Pos { return s.pos }

// IfStmt branches on a boolean condition.
type IfStmt struct {
	pos  source.Pos
	Cond Expr
	Then Stmt
	Else Stmt
}

func NewIfStmt(pos source.Pos, cond Expr, then, els Stmt) *IfStmt {
	return &IfStmt{pos: pos, Cond: cond, Then: then, Else: els}
}

func (s *IfStmt) Pos() source.Pos { return s.pos }

// WhileStmt repeats its body while the condition holds.
type WhileStmt struct {
	pos  source.Pos
	Cond Expr
	Body Stmt
}

func NewWhileStmt(pos source.Pos, cond Expr, body Stmt) *WhileStmt {
	return &WhileStmt{pos: pos, Cond: cond, Body: body}
}

func (s *WhileStmt) Pos() source.Pos { return s.pos }

func (*ErrorStmt) stmtNode()    {}
func (*AssignStmt) stmtNode()   {}
func (*WriteStmt) stmtNode()    {}
func (*CallStmt) stmtNode()     {}
func (*CompoundStmt) stmtNode() {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
