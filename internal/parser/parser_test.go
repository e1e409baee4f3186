package parser_test

import (
	"testing"

	"j5.nz/molang/internal/ast"
	"j5.nz/molang/internal/lexer"
	"j5.nz/molang/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	toks, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return prog
}

func TestSingleExpressionIsJITEligible(t *testing.T) {
	prog := parse(t, "1 + math.cos(0)")
	if _, ok := prog.AsJITExpression(); !ok {
		t.Fatal("expected a JIT-eligible single expression")
	}
}

func TestAssignmentNotJITEligible(t *testing.T) {
	prog := parse(t, "temp.x = 1; return temp.x;")
	if _, ok := prog.AsJITExpression(); ok {
		t.Fatal("assignment program must not be JIT-eligible")
	}
	if len(prog.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(ast.Assignment); !ok {
		t.Fatalf("statement 0 = %T, want Assignment", prog.Statements[0])
	}
}

func TestOperatorPrecedence(t *testing.T) {
	prog := parse(t, "0 ?? 3 + 2")
	stmt, ok := prog.Statements[0].(ast.ExprStmt)
	if !ok {
		t.Fatalf("statement = %T, want ExprStmt", prog.Statements[0])
	}
	bin, ok := stmt.Expr.(ast.Binary)
	if !ok || bin.Op != ast.NullCoalesce {
		t.Fatalf("top expr = %#v, want NullCoalesce binary", stmt.Expr)
	}
	rhs, ok := bin.Right.(ast.Binary)
	if !ok || rhs.Op != ast.Add {
		t.Fatalf("coalesce rhs = %#v, want Add binary", bin.Right)
	}
}

func TestConditionalWithoutElse(t *testing.T) {
	prog := parse(t, "(1 > 0) ? break;")
	stmt := prog.Statements[0].(ast.ExprStmt)
	cond, ok := stmt.Expr.(ast.Conditional)
	if !ok {
		t.Fatalf("expr = %T, want Conditional", stmt.Expr)
	}
	if cond.Else != nil {
		t.Fatal("expected nil else branch")
	}
	if _, ok := cond.Then.(ast.Flow); !ok {
		t.Fatalf("then branch = %T, want Flow", cond.Then)
	}
}

func TestLoopStatement(t *testing.T) {
	prog := parse(t, "loop(10, { temp.x = temp.x + 1; });")
	l, ok := prog.Statements[0].(ast.Loop)
	if !ok {
		t.Fatalf("statement = %T, want Loop", prog.Statements[0])
	}
	if _, ok := l.Body.(ast.Block); !ok {
		t.Fatalf("body = %T, want Block", l.Body)
	}
}

func TestForEachStatement(t *testing.T) {
	prog := parse(t, "for_each(temp.item, temp.values, { temp.total = temp.total + temp.item; });")
	fe, ok := prog.Statements[0].(ast.ForEach)
	if !ok {
		t.Fatalf("statement = %T, want ForEach", prog.Statements[0])
	}
	if len(fe.Variable) != 2 || fe.Variable[0] != "temp" || fe.Variable[1] != "item" {
		t.Fatalf("variable = %v", fe.Variable)
	}
}

func TestArrayLiteralAndIndex(t *testing.T) {
	prog := parse(t, "temp.values = [10,20,30]; temp.sum = temp.values[1] + temp.values[3] + temp.values.length;")
	assign, ok := prog.Statements[1].(ast.Assignment)
	if !ok {
		t.Fatalf("statement 1 = %T, want Assignment", prog.Statements[1])
	}
	bin, ok := assign.Value.(ast.Binary)
	if !ok {
		t.Fatalf("value = %T, want Binary", assign.Value)
	}
	_ = bin
}

func TestDuplicateStructFieldIsError(t *testing.T) {
	toks, err := lexer.New("temp.x = { a: 1, a: 2 };").Tokenize()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if _, err := parser.Parse(toks); err == nil {
		t.Fatal("expected duplicate struct field error")
	}
}

func TestStringEscapePassesThrough(t *testing.T) {
	toks, err := lexer.New(`'alice\'s'`).Tokenize()
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	str, ok := prog.Statements[0].(ast.ExprStmt).Expr.(ast.String)
	if !ok {
		t.Fatalf("expr = %T, want String", prog.Statements[0].(ast.ExprStmt).Expr)
	}
	if str.Value != "alice's" {
		t.Fatalf("string = %q, want \"alice's\"", str.Value)
	}
}
