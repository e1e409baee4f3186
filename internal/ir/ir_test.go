package ir_test

import (
	"testing"

	"j5.nz/molang/internal/ir"
	"j5.nz/molang/internal/lexer"
	"j5.nz/molang/internal/parser"
)

func lower(t *testing.T, src string) *ir.Program {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	lowered, err := ir.Lower(prog)
	if err != nil {
		t.Fatalf("lower: %v", err)
	}
	return lowered
}

func TestLowerResolvesBuiltinCall(t *testing.T) {
	prog := lower(t, "1 + math.cos(0)")
	stmt := prog.Statements[0].(ir.ExprStmt)
	bin := stmt.Expr.(ir.Binary)
	call, ok := bin.Right.(ir.CallBuiltin)
	if !ok {
		t.Fatalf("rhs = %T, want CallBuiltin", bin.Right)
	}
	if call.Builtin.Name() != "cos" {
		t.Fatalf("builtin = %q, want cos", call.Builtin.Name())
	}
}

func TestLowerUnknownFunction(t *testing.T) {
	toks, _ := lexer.New("math.not_a_builtin(1)").Tokenize()
	prog, _ := parser.Parse(toks)
	_, err := ir.Lower(prog)
	if err == nil {
		t.Fatal("expected UnknownFunction error")
	}
	irErr, ok := err.(*ir.Error)
	if !ok || irErr.Kind != ir.UnknownFunction {
		t.Fatalf("err = %#v, want UnknownFunction", err)
	}
}

func TestLowerInvalidArgumentCount(t *testing.T) {
	toks, _ := lexer.New("math.cos(1, 2)").Tokenize()
	prog, _ := parser.Parse(toks)
	_, err := ir.Lower(prog)
	irErr, ok := err.(*ir.Error)
	if !ok || irErr.Kind != ir.InvalidArgumentCount {
		t.Fatalf("err = %#v, want InvalidArgumentCount", err)
	}
}

func TestLowerUnsupportedCallTarget(t *testing.T) {
	toks, _ := lexer.New("(1+1)(2)").Tokenize()
	prog, _ := parser.Parse(toks)
	_, err := ir.Lower(prog)
	irErr, ok := err.(*ir.Error)
	if !ok || irErr.Kind != ir.UnsupportedCallTarget {
		t.Fatalf("err = %#v, want UnsupportedCallTarget", err)
	}
}

func TestLowerAssignmentTarget(t *testing.T) {
	prog := lower(t, "temp.a.b = 1;")
	assign := prog.Statements[0].(ir.Assignment)
	if assign.Target.Canonical() != "temp.a.b" {
		t.Fatalf("target = %q, want temp.a.b", assign.Target.Canonical())
	}
}
