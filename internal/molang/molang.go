// Package molang is the embeddable evaluator's top-level entry point
// (spec §4.7, §6): lex, parse, lower, decide between the cached
// JIT-single-expression path and a fresh full-program compile, then run.
//
// Grounds on original_source/src/lib.rs's top-level evaluate (the same
// JIT-single-expression-vs-full-program decision) and on the teacher's
// std/compiler/main.go shape for a thin orchestration layer over the
// lower packages.
package molang

import (
	"fmt"

	"j5.nz/molang/internal/ast"
	"j5.nz/molang/internal/cache"
	"j5.nz/molang/internal/codegen"
	"j5.nz/molang/internal/ir"
	"j5.nz/molang/internal/lexer"
	"j5.nz/molang/internal/parser"
	"j5.nz/molang/internal/value"
)

// Evaluate compiles and runs source against ctx, returning its single
// f64 result.
//
// A single ExprStmt program that is pure, numeric, and flow-free (spec
// §4.3's JIT-single-expression predicate) is routed through
// internal/cache, keyed by source text and the calling goroutine, so a
// per-frame expression evaluated repeatedly from the same goroutine only
// ever compiles once. Everything else compiles fresh every call: a
// multi-statement program's slot table and literal pool are only valid
// for the paths and literals it actually contains, so nothing about it
// is safe to share across distinct call sites.
func Evaluate(source string, ctx *value.Store) (float64, error) {
	tokens, err := lexer.New(source).Tokenize()
	if err != nil {
		return 0, fmt.Errorf("molang: %w", err)
	}
	astProgram, err := parser.Parse(tokens)
	if err != nil {
		return 0, fmt.Errorf("molang: %w", err)
	}

	if expr, ok := astProgram.AsJITExpression(); ok {
		return evaluateJIT(source, expr, ctx)
	}
	return evaluateProgram(astProgram, ctx)
}

func evaluateJIT(source string, expr ast.Expr, ctx *value.Store) (float64, error) {
	art, err := cache.GetOrCompile(source, func() (*codegen.CompiledArtifact, error) {
		lowered, err := ir.LowerExpr(expr)
		if err != nil {
			return nil, fmt.Errorf("molang: %w", err)
		}
		return codegen.CompileExpr(lowered)
	})
	if err != nil {
		return 0, err
	}
	return art.Invoke(ctx), nil
}

func evaluateProgram(astProgram *ast.Program, ctx *value.Store) (float64, error) {
	prog, err := ir.Lower(astProgram)
	if err != nil {
		return 0, fmt.Errorf("molang: %w", err)
	}
	art, err := codegen.Compile(prog)
	if err != nil {
		return 0, fmt.Errorf("molang: %w", err)
	}
	defer art.Close()
	return art.Invoke(ctx), nil
}
