package lexer_test

import (
	"testing"

	"j5.nz/molang/internal/lexer"
	"j5.nz/molang/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestOperatorsAndPunctuation(t *testing.T) {
	got := kinds(t, "a.b == 'x' && c != 1 || d ?? 2")
	want := []token.Kind{
		token.IDENT, token.DOT, token.IDENT, token.EQ, token.STRING,
		token.AND, token.IDENT, token.NEQ, token.NUMBER, token.OR,
		token.IDENT, token.COALESCE, token.NUMBER, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLeadingDotNumber(t *testing.T) {
	toks, err := lexer.New(".5").Tokenize()
	if err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	if toks[0].Kind != token.NUMBER || toks[0].Text != ".5" {
		t.Fatalf("token = %+v, want NUMBER(.5)", toks[0])
	}
}

func TestUnterminatedStringIsError(t *testing.T) {
	if _, err := lexer.New("'abc").Tokenize(); err == nil {
		t.Fatal("expected unterminated string error")
	}
}

func TestKeywordsRecognized(t *testing.T) {
	got := kinds(t, "loop for_each break continue return")
	want := []token.Kind{token.LOOP, token.FOR_EACH, token.BREAK, token.CONTINUE, token.RETURN, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCommentSkipped(t *testing.T) {
	got := kinds(t, "1 // trailing comment\n+ 2")
	want := []token.Kind{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
