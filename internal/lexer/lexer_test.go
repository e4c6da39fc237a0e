package lexer

import (
	"testing"

	"pl0/internal/diag"
	"pl0/internal/source"
	"pl0/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(0)
	file := source.NewFile("test.pl0", []byte(src))
	return Tokenize(file, diag.BagReporter{Bag: bag}), bag
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestTokenKinds(t *testing.T) {
	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"", []token.Kind{token.EOF}},
		{"  // nothing but a comment\n", []token.Kind{token.EOF}},
		{"x := 1", []token.Kind{token.Ident, token.Assign, token.Number, token.EOF}},
		{"begin end", []token.Kind{token.Begin, token.End, token.EOF}},
		{"beginx", []token.Kind{token.Ident, token.EOF}},
		{"a<=b>=c!=d<e>f=g", []token.Kind{
			token.Ident, token.LessEq, token.Ident, token.GreaterEq,
			token.Ident, token.NotEquals, token.Ident, token.Less,
			token.Ident, token.Greater, token.Ident, token.Equals,
			token.Ident, token.EOF,
		}},
		{"[1..9]", []token.Kind{
			token.LBracket, token.Number, token.Range, token.Number,
			token.RBracket, token.EOF,
		}},
		{"p^.next", []token.Kind{
			token.Ident, token.Caret, token.Period, token.Ident, token.EOF,
		}},
		{"T{1, 2}", []token.Kind{
			token.Ident, token.LCurly, token.Number, token.Comma,
			token.Number, token.RCurly, token.EOF,
		}},
		{"x : int ; y := new T", []token.Kind{
			token.Ident, token.Colon, token.Ident, token.Semi,
			token.Ident, token.Assign, token.New, token.Ident, token.EOF,
		}},
	}
	for _, tt := range tests {
		toks, bag := scan(t, tt.src)
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics: %v", tt.src, bag.Items())
			continue
		}
		got := kinds(toks)
		if len(got) != len(tt.want) {
			t.Errorf("%q: got %v, want %v", tt.src, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%q: token %d = %v, want %v", tt.src, i, got[i], tt.want[i])
			}
		}
	}
}

func TestTokenPositions(t *testing.T) {
	toks, _ := scan(t, "ab := // c\n 12")
	wantPos := []source.Pos{0, 3, 12, 14}
	for i, tok := range toks {
		if tok.Pos != wantPos[i] {
			t.Errorf("token %d (%v) at %d, want %d", i, tok, tok.Pos, wantPos[i])
		}
	}
}

func TestUnknownCharReported(t *testing.T) {
	toks, bag := scan(t, "x ? y")
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
	if bag.Items()[0].Code != diag.LexUnknownChar {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.LexUnknownChar)
	}
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Illegal, token.Ident, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestNumberOverflowReported(t *testing.T) {
	_, bag := scan(t, "x := 99999999999")
	if got := bag.ErrorCount(); got != 1 {
		t.Fatalf("errors = %d, want 1", got)
	}
	if bag.Items()[0].Code != diag.LexBadNumber {
		t.Errorf("code = %v, want %v", bag.Items()[0].Code, diag.LexBadNumber)
	}
}

func TestLoneBangReported(t *testing.T) {
	_, bag := scan(t, "a ! b")
	if !bag.HasErrors() {
		t.Fatalf("lone '!' not reported")
	}
}
