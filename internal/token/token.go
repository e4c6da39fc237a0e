// Package token defines the lexical tokens of the language.
package token

import (
	"fmt"

	"pl0/internal/source"
)

// Kind identifies a token class.
type Kind uint8

const (
	Illegal Kind = iota
	EOF

	Ident
	Number

	// Keywords.
	Begin
	Call
	Const
	Do
	Else
	End
	If
	New
	Procedure
	Read
	Record
	Then
	Type
	Var
	While
	Write

	// Operators and punctuation.
	Plus      // +
	Minus     // -
	Times     // *
	Divide    // /
	Equals    // =
	NotEquals // !=
	Less      // <
	LessEq    // <=
	Greater   // >
	GreaterEq // >=
	Assign    // :=
	Colon     // :
	Semi      // ;
	Comma     // ,
	Period    // .
	Range     // ..
	Caret     // ^
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LCurly    // {
	RCurly    // }

	kindCount
)

var kindNames = [kindCount]string{
	Illegal:   "illegal",
	EOF:       "end of file",
	Ident:     "identifier",
	Number:    "number",
	Begin:     "begin",
	Call:      "call",
	Const:     "const",
	Do:        "do",
	Else:      "else",
	End:       "end",
	If:        "if",
	New:       "new",
	Procedure: "procedure",
	Read:      "read",
	Record:    "record",
	Then:      "then",
	Type:      "type",
	Var:       "var",
	While:     "while",
	Write:     "write",
	Plus:      "+",
	Minus:     "-",
	Times:     "*",
	Divide:    "/",
	Equals:    "=",
	NotEquals: "!=",
	Less:      "<",
	LessEq:    "<=",
	Greater:   ">",
	GreaterEq: ">=",
	Assign:    ":=",
	Colon:     ":",
	Semi:      ";",
	Comma:     ",",
	Period:    ".",
	Range:     "..",
	Caret:     "^",
	LParen:    "(",
	RParen:    ")",
	LBracket:  "[",
	RBracket:  "]",
	LCurly:    "{",
	RCurly:    "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

var keywords = map[string]Kind{
	"begin":     Begin,
	"call":      Call,
	"const":     Const,
	"do":        Do,
	"else":      Else,
	"end":       End,
	"if":        If,
	"new":       New,
	"procedure": Procedure,
	"read":      Read,
	"record":    Record,
	"then":      Then,
	"type":      Type,
	"var":       Var,
	"while":     While,
	"write":     Write,
}

// Lookup maps an identifier to its keyword kind, or Ident.
func Lookup(text string) Kind {
	if k, ok := keywords[text]; ok {
		return k
	}
	return Ident
}

// Token is a single lexical token. Text is set for identifiers, numbers
// and illegal tokens; for fixed-spelling tokens the Kind carries the
// spelling.
type Token struct {
	Kind Kind
	Pos  source.Pos
	Text string
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, Number, Illegal:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return t.Kind.String()
	}
}
