package codegen

import (
	"testing"

	"j5.nz/molang/internal/ast"
	"j5.nz/molang/internal/ir"
	"j5.nz/molang/internal/value"
)

func varPath(name string) ir.Path {
	return ir.Path{Name: value.NewQualifiedName([]string{"variable", name})}
}

func TestLowerPureExprStringLiteralAsValue(t *testing.T) {
	_, _, _, err := lowerPureExpr(ir.String{Value: "hi"})
	if err == nil {
		t.Fatalf("expected an error lowering a string literal as a value")
	}
}

func TestLowerPureExprStructLiteralAsValue(t *testing.T) {
	_, _, _, err := lowerPureExpr(ir.Struct{Fields: []ir.StructField{
		{Name: "x", Value: ir.Number{Value: 1}},
	}})
	if err == nil {
		t.Fatalf("expected an error lowering a struct literal as a value")
	}
}

func TestLowerProgramBreakOutsideLoop(t *testing.T) {
	prog := &ir.Program{Statements: []ir.Statement{
		ir.ExprStmt{Expr: ir.Flow{Kind: ast.FlowBreak}},
	}}
	_, _, _, err := lowerProgram(prog)
	if err == nil {
		t.Fatalf("expected an error for break outside a loop")
	}
}

func TestLowerProgramContinueOutsideLoop(t *testing.T) {
	prog := &ir.Program{Statements: []ir.Statement{
		ir.ExprStmt{Expr: ir.Flow{Kind: ast.FlowContinue}},
	}}
	_, _, _, err := lowerProgram(prog)
	if err == nil {
		t.Fatalf("expected an error for continue outside a loop")
	}
}

func TestLowerProgramForEachCollectionNotAPath(t *testing.T) {
	prog := &ir.Program{Statements: []ir.Statement{
		ir.ForEach{
			Variable:   value.NewQualifiedName([]string{"temp", "item"}),
			Collection: ir.Array{Elements: []ir.Expr{ir.Number{Value: 1}}},
			Body:       ir.ExprStmt{Expr: ir.Number{Value: 0}},
		},
	}}
	_, _, _, err := lowerProgram(prog)
	if err == nil {
		t.Fatalf("expected an error for a for_each collection that isn't a path")
	}
}

func TestLowerProgramIndexingNonPathTarget(t *testing.T) {
	prog := &ir.Program{Statements: []ir.Statement{
		ir.ExprStmt{Expr: ir.Index{
			Target: ir.Array{Elements: []ir.Expr{ir.Number{Value: 1}, ir.Number{Value: 2}}},
			Index:  ir.Number{Value: 0},
		}},
	}}
	_, _, _, err := lowerProgram(prog)
	if err == nil {
		t.Fatalf("expected an error for indexing a non-path target")
	}
}

func TestLowerAssignArrayLiteralRejectsNestedArray(t *testing.T) {
	prog := &ir.Program{Statements: []ir.Statement{
		ir.Assignment{
			Target: value.NewQualifiedName([]string{"temp", "arr"}),
			Value: ir.Array{Elements: []ir.Expr{
				ir.Array{Elements: []ir.Expr{ir.Number{Value: 1}}},
			}},
		},
	}}
	_, _, _, err := lowerProgram(prog)
	if err == nil {
		t.Fatalf("expected an error for a nested array element in an array literal")
	}
}

func TestLowerPureExprSimpleArithmetic(t *testing.T) {
	fn, slots, _, err := lowerPureExpr(ir.Binary{
		Op:    ast.Add,
		Left:  ir.Number{Value: 1},
		Right: varPath("x"),
	})
	if err != nil {
		t.Fatalf("lowerPureExpr: %v", err)
	}
	if fn == nil {
		t.Fatalf("expected a non-nil function")
	}
	if slots.indexOf(value.NewQualifiedName([]string{"variable", "x"})) != 0 {
		t.Fatalf("expected variable.x to be the first allocated slot")
	}
}
