// Package parser implements the recursive-descent parser. It builds the
// syntax tree together with the scope and entry skeleton the checker
// expects: declared types stay unresolved, constant expressions stay
// unevaluated, and every expression node defaults to the error type.
package parser

import (
	"strconv"

	"pl0/internal/ast"
	"pl0/internal/diag"
	"pl0/internal/lexer"
	"pl0/internal/source"
	"pl0/internal/syms"
	"pl0/internal/token"
	"pl0/internal/types"
)

type parser struct {
	toks  []token.Token
	i     int
	rep   diag.Reporter
	table *syms.Table
}

// Parse scans and parses a source file. The returned program carries the
// symbol table with the scope skeleton of every block.
func Parse(file *source.File, rep diag.Reporter) *ast.Program {
	p := &parser{
		toks:  lexer.Tokenize(file, rep),
		rep:   rep,
		table: syms.NewTable(),
	}
	return p.parseProgram()
}

func (p *parser) cur() token.Token { return p.toks[p.i] }

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) advance() token.Token {
	tok := p.toks[p.i]
	if p.cur().Kind != token.EOF {
		p.i++
	}
	return tok
}

func (p *parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) expect(k token.Kind) token.Token {
	if p.at(k) {
		return p.advance()
	}
	diag.Errorf(p.rep, diag.SynUnexpectedToken, p.cur().Pos,
		"expected %s, found %s", k, p.cur())
	return token.Token{Kind: k, Pos: p.cur().Pos}
}

func (p *parser) expectIdent() (string, source.Pos, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return tok.Text, tok.Pos, true
	}
	diag.Errorf(p.rep, diag.SynExpectIdent, p.cur().Pos,
		"expected identifier, found %s", p.cur())
	return "", p.cur().Pos, false
}

func (p *parser) parseProgram() *ast.Program {
	mainScope := p.table.NewScope(syms.PredefinedScope)
	block := p.parseBlock(mainScope)
	p.expect(token.EOF)
	return &ast.Program{Block: block, Table: p.table}
}

func (p *parser) parseBlock(scopeID syms.ScopeID) *ast.Block {
	pos := p.cur().Pos
	scope := p.table.Scope(scopeID)
	var procs []*ast.ProcedureDecl
	for {
		switch p.cur().Kind {
		case token.Const:
			p.parseConstPart(scope)
		case token.Type:
			p.parseTypePart(scope)
		case token.Var:
			p.parseVarPart(scope)
		case token.Procedure:
			if d := p.parseProcedure(scope); d != nil {
				procs = append(procs, d)
			}
		default:
			body := p.parseCompound()
			return ast.NewBlock(pos, procs, body, scopeID)
		}
	}
}

func (p *parser) parseConstPart(scope *syms.Scope) {
	p.expect(token.Const)
	for p.at(token.Ident) {
		name, pos, _ := p.expectIdent()
		p.expect(token.Equals)
		exp := p.parseConstant(scope)
		p.expect(token.Semi)
		if scope.AddConstant(name, pos, exp) == nil {
			diag.Errorf(p.rep, diag.SemRedeclared, pos, "%s is already declared", name)
		}
	}
}

func (p *parser) parseConstant(scope *syms.Scope) types.ConstExp {
	switch p.cur().Kind {
	case token.Number:
		tok := p.advance()
		val, _ := strconv.Atoi(tok.Text)
		return types.NewConstNumber(tok.Pos, scope.Table().Predef().Int, val)
	case token.Ident:
		tok := p.advance()
		return syms.NewConstIdent(tok.Pos, tok.Text, scope)
	case token.Minus:
		tok := p.advance()
		return syms.NewConstNegate(tok.Pos, scope, p.parseConstant(scope))
	default:
		diag.Errorf(p.rep, diag.SynExpectConstant, p.cur().Pos,
			"expected constant, found %s", p.cur())
		return types.NewConstNumber(p.cur().Pos, types.Error, 0)
	}
}

func (p *parser) parseTypePart(scope *syms.Scope) {
	p.expect(token.Type)
	for p.at(token.Ident) {
		name, pos, _ := p.expectIdent()
		p.expect(token.Equals)
		typ := p.parseType(scope)
		p.expect(token.Semi)
		if scope.AddType(name, pos, typ) == nil {
			diag.Errorf(p.rep, diag.SemRedeclared, pos, "%s is already declared", name)
		}
	}
}

func (p *parser) parseType(scope *syms.Scope) types.Type {
	switch p.cur().Kind {
	case token.Ident:
		tok := p.advance()
		return types.NewIdRef(tok.Pos, tok.Text, scope)
	case token.LBracket:
		pos := p.advance().Pos
		lower := p.parseConstant(scope)
		p.expect(token.Range)
		upper := p.parseConstant(scope)
		p.expect(token.RBracket)
		return types.NewSubrange(pos, lower, upper)
	case token.Caret:
		p.advance()
		name, pos, ok := p.expectIdent()
		if !ok {
			return types.Error
		}
		return types.NewPointer(types.NewIdRef(pos, name, scope))
	case token.Record:
		return p.parseRecordType(scope)
	default:
		diag.Errorf(p.rep, diag.SynExpectType, p.cur().Pos,
			"expected type, found %s", p.cur())
		return types.Error
	}
}

func (p *parser) parseRecordType(scope *syms.Scope) types.Type {
	pos := p.expect(token.Record).Pos
	rec := types.NewRecord(pos)
	for {
		name, fpos, ok := p.expectIdent()
		if !ok {
			break
		}
		p.expect(token.Colon)
		typ := p.parseType(scope)
		if !rec.AddField(types.NewField(fpos, name, typ)) {
			diag.Errorf(p.rep, diag.SemRedeclared, fpos,
				"field %s is already declared", name)
		}
		if !p.accept(token.Semi) {
			break
		}
	}
	p.expect(token.End)
	return rec
}

func (p *parser) parseVarPart(scope *syms.Scope) {
	p.expect(token.Var)
	for p.at(token.Ident) {
		name, pos, _ := p.expectIdent()
		p.expect(token.Colon)
		typ := p.parseType(scope)
		p.expect(token.Semi)
		if scope.AddVariable(name, pos, types.NewReference(typ)) == nil {
			diag.Errorf(p.rep, diag.SemRedeclared, pos, "%s is already declared", name)
		}
	}
}

func (p *parser) parseProcedure(scope *syms.Scope) *ast.ProcedureDecl {
	pos := p.expect(token.Procedure).Pos
	name, npos, ok := p.expectIdent()
	p.expect(token.Equals)
	local := p.table.NewScope(scope.ID())
	block := p.parseBlock(local)
	p.expect(token.Semi)
	if !ok {
		return nil
	}
	entry := scope.AddProcedure(name, npos)
	if entry == nil {
		diag.Errorf(p.rep, diag.SemRedeclared, npos, "%s is already declared", name)
		return nil
	}
	entry.SetLocalScope(local)
	return ast.NewProcedureDecl(pos, entry, block)
}

func (p *parser) parseCompound() ast.Stmt {
	pos := p.expect(token.Begin).Pos
	var stmts []ast.Stmt
	for {
		stmts = append(stmts, p.parseStatement())
		if !p.accept(token.Semi) {
			break
		}
	}
	p.expect(token.End)
	return ast.NewCompoundStmt(pos, stmts)
}

func (p *parser) parseStatement() ast.Stmt {
	switch p.cur().Kind {
	case token.Ident:
		return p.parseAssign()
	case token.Call:
		pos := p.advance().Pos
		name, _, ok := p.expectIdent()
		if !ok {
			return ast.NewErrorStmt(pos)
		}
		return ast.NewCallStmt(pos, name)
	case token.Write:
		pos := p.advance().Pos
		return ast.NewWriteStmt(pos, p.parseCondition())
	case token.If:
		pos := p.advance().Pos
		cond := p.parseCondition()
		p.expect(token.Then)
		then := p.parseStatement()
		p.expect(token.Else)
		els := p.parseStatement()
		return ast.NewIfStmt(pos, cond, then, els)
	case token.While:
		pos := p.advance().Pos
		cond := p.parseCondition()
		p.expect(token.Do)
		return ast.NewWhileStmt(pos, cond, p.parseStatement())
	case token.Begin:
		return p.parseCompound()
	default:
		diag.Errorf(p.rep, diag.SynExpectStatement, p.cur().Pos,
			"expected statement, found %s", p.cur())
		pos := p.cur().Pos
		p.advance()
		return ast.NewErrorStmt(pos)
	}
}

func (p *parser) parseAssign() ast.Stmt {
	lvalue := p.parseFactor()
	pos := p.expect(token.Assign).Pos
	right := p.parseCondition()
	return ast.NewAssignStmt(pos, lvalue, right)
}

var relOps = map[token.Kind]ast.Operator{
	token.Equals:    ast.OpEqual,
	token.NotEquals: ast.OpNotEqual,
	token.Less:      ast.OpLess,
	token.LessEq:    ast.OpLessEq,
	token.Greater:   ast.OpGreater,
	token.GreaterEq: ast.OpGreaterEq,
}

func (p *parser) parseCondition() ast.Expr {
	left := p.parseExp()
	if op, ok := relOps[p.cur().Kind]; ok {
		pos := p.advance().Pos
		right := p.parseExp()
		return p.binary(pos, op, left, right)
	}
	return left
}

func (p *parser) parseExp() ast.Expr {
	var left ast.Expr
	if p.at(token.Minus) {
		pos := p.advance().Pos
		left = ast.NewOperatorExpr(pos, ast.OpNegate, p.parseTerm())
	} else {
		left = p.parseTerm()
	}
	for {
		var op ast.Operator
		switch p.cur().Kind {
		case token.Plus:
			op = ast.OpAdd
		case token.Minus:
			op = ast.OpSub
		default:
			return left
		}
		pos := p.advance().Pos
		left = p.binary(pos, op, left, p.parseTerm())
	}
}

func (p *parser) parseTerm() ast.Expr {
	left := p.parseFactor()
	for {
		var op ast.Operator
		switch p.cur().Kind {
		case token.Times:
			op = ast.OpMul
		case token.Divide:
			op = ast.OpDiv
		default:
			return left
		}
		pos := p.advance().Pos
		left = p.binary(pos, op, left, p.parseFactor())
	}
}

func (p *parser) binary(pos source.Pos, op ast.Operator, left, right ast.Expr) ast.Expr {
	args := ast.NewArgumentsExpr(pos, []ast.Expr{left, right})
	return ast.NewOperatorExpr(pos, op, args)
}

func (p *parser) parseFactor() ast.Expr {
	exp := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.Caret:
			pos := p.advance().Pos
			exp = ast.NewPointerDerefExpr(pos, exp)
		case token.Period:
			p.advance()
			name, pos, ok := p.expectIdent()
			if !ok {
				return ast.NewErrorExpr(pos)
			}
			exp = ast.NewFieldAccessExpr(pos, exp, name)
		default:
			return exp
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.cur().Kind {
	case token.Number:
		tok := p.advance()
		val, _ := strconv.Atoi(tok.Text)
		return ast.NewConstExpr(tok.Pos, p.table.Predef().Int, val)
	case token.Read:
		return ast.NewReadExpr(p.advance().Pos)
	case token.New:
		pos := p.advance().Pos
		name, _, ok := p.expectIdent()
		if !ok {
			return ast.NewErrorExpr(pos)
		}
		return ast.NewNewAllocExpr(pos, name)
	case token.LParen:
		p.advance()
		exp := p.parseCondition()
		p.expect(token.RParen)
		return exp
	case token.Ident:
		tok := p.advance()
		if p.at(token.LCurly) {
			return p.parseRecordConstructor(tok)
		}
		return ast.NewIdentExpr(tok.Pos, tok.Text)
	default:
		diag.Errorf(p.rep, diag.SynUnexpectedToken, p.cur().Pos,
			"expected expression, found %s", p.cur())
		pos := p.cur().Pos
		p.advance()
		return ast.NewErrorExpr(pos)
	}
}

func (p *parser) parseRecordConstructor(name token.Token) ast.Expr {
	p.expect(token.LCurly)
	var fields []ast.Expr
	if !p.at(token.RCurly) {
		for {
			fields = append(fields, p.parseCondition())
			if !p.accept(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RCurly)
	return ast.NewRecordConstructorExpr(name.Pos, name.Text, fields)
}
