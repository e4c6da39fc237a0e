package source

import "testing"

func TestLineCol(t *testing.T) {
	f := NewFile("test.pl0", []byte("var x: int;\nbegin\n  x := 1\nend\n"))

	cases := []struct {
		pos  Pos
		line int
		col  int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{12, 2, 1},
		{18, 3, 1},
		{20, 3, 3},
		{27, 4, 1},
		{28, 4, 2},
	}
	for _, tc := range cases {
		line, col := f.LineCol(tc.pos)
		if line != tc.line || col != tc.col {
			t.Errorf("LineCol(%d) = %d:%d, want %d:%d", tc.pos, line, col, tc.line, tc.col)
		}
	}
}

func TestLineColNoPos(t *testing.T) {
	f := NewFile("test.pl0", []byte("x"))
	if line, col := f.LineCol(NoPos); line != 0 || col != 0 {
		t.Errorf("LineCol(NoPos) = %d:%d, want 0:0", line, col)
	}
}

func TestLineText(t *testing.T) {
	f := NewFile("test.pl0", []byte("first\nsecond\nthird"))
	for i, want := range []string{"first", "second", "third"} {
		if got := f.LineText(i + 1); got != want {
			t.Errorf("LineText(%d) = %q, want %q", i+1, got, want)
		}
	}
	if got := f.LineText(0); got != "" {
		t.Errorf("LineText(0) = %q, want empty", got)
	}
}

func TestNoPosOrdering(t *testing.T) {
	if NoPos.Valid() {
		t.Error("NoPos must not be valid")
	}
	if !(Pos(0) < NoPos) {
		t.Error("NoPos must sort after real positions")
	}
}
