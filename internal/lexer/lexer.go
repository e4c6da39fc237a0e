// Package lexer implements the hand-written scanner.
package lexer

import (
	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/token"
)

// Lexer scans a source file into tokens. Unknown characters are reported
// and skipped, so the token stream always ends in EOF.
type Lexer struct {
	file *source.File
	rep  diag.Reporter
	off  int
}

func New(file *source.File, rep diag.Reporter) *Lexer {
	return &Lexer{file: file, rep: rep}
}

// Tokenize scans the whole file.
func Tokenize(file *source.File, rep diag.Reporter) []token.Token {
	lx := New(file, rep)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func (lx *Lexer) pos() source.Pos {
	return source.Pos(lx.off)
}

func (lx *Lexer) peek() byte {
	if lx.off >= len(lx.file.Content()) {
		return 0
	}
	return lx.file.Content()[lx.off]
}

func (lx *Lexer) peekAt(n int) byte {
	if lx.off+n >= len(lx.file.Content()) {
		return 0
	}
	return lx.file.Content()[lx.off+n]
}

func (lx *Lexer) skipBlank() {
	for lx.off < len(lx.file.Content()) {
		switch lx.peek() {
		case ' ', '\t', '\r', '\n':
			lx.off++
		case '/':
			if lx.peekAt(1) != '/' {
				return
			}
			for lx.off < len(lx.file.Content()) && lx.peek() != '\n' {
				lx.off++
			}
		default:
			return
		}
	}
}

// Next returns the next token. After the end of input it returns EOF
// forever.
func (lx *Lexer) Next() token.Token {
	lx.skipBlank()
	start := lx.pos()
	if lx.off >= len(lx.file.Content()) {
		return token.Token{Kind: token.EOF, Pos: start}
	}
	ch := lx.peek()
	switch {
	case isLetter(ch):
		return lx.ident(start)
	case isDigit(ch):
		return lx.number(start)
	}
	lx.off++
	kind := token.Illegal
	switch ch {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Times
	case '/':
		kind = token.Divide
	case '=':
		kind = token.Equals
	case '^':
		kind = token.Caret
	case ';':
		kind = token.Semi
	case ',':
		kind = token.Comma
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '{':
		kind = token.LCurly
	case '}':
		kind = token.RCurly
	case '.':
		kind = token.Period
		if lx.peek() == '.' {
			lx.off++
			kind = token.Range
		}
	case ':':
		kind = token.Colon
		if lx.peek() == '=' {
			lx.off++
			kind = token.Assign
		}
	case '<':
		kind = token.Less
		if lx.peek() == '=' {
			lx.off++
			kind = token.LessEq
		}
	case '>':
		kind = token.Greater
		if lx.peek() == '=' {
			lx.off++
			kind = token.GreaterEq
		}
	case '!':
		if lx.peek() == '=' {
			lx.off++
			kind = token.NotEquals
		}
	}
	if kind == token.Illegal {
		text := string(ch)
		diag.Errorf(lx.rep, diag.LexUnknownChar, start, "unknown character %q", text)
		return token.Token{Kind: token.Illegal, Pos: start, Text: text}
	}
	return token.Token{Kind: kind, Pos: start}
}

func (lx *Lexer) ident(start source.Pos) token.Token {
	from := lx.off
	for lx.off < len(lx.file.Content()) && isIdentTail(lx.peek()) {
		lx.off++
	}
	text := string(lx.file.Content()[from:lx.off])
	kind := token.Lookup(text)
	if kind != token.Ident {
		return token.Token{Kind: kind, Pos: start}
	}
	return token.Token{Kind: token.Ident, Pos: start, Text: text}
}

const maxInt32 = 1<<31 - 1

func (lx *Lexer) number(start source.Pos) token.Token {
	from := lx.off
	val, overflow := 0, false
	for lx.off < len(lx.file.Content()) && isDigit(lx.peek()) {
		if !overflow {
			val = val*10 + int(lx.peek()-'0')
			if val > maxInt32 {
				overflow = true
			}
		}
		lx.off++
	}
	text := string(lx.file.Content()[from:lx.off])
	if overflow {
		diag.Errorf(lx.rep, diag.LexBadNumber, start, "number too large: %s", text)
	}
	return token.Token{Kind: token.Number, Pos: start, Text: text}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

func isIdentTail(ch byte) bool { return isLetter(ch) || isDigit(ch) }
