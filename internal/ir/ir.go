// Package ir lowers internal/ast trees to a form where call targets are
// resolved to builtin identifiers and validated against their fixed
// arity (spec §4.3). Everything else is copied structurally.
package ir

import (
	"fmt"

	"j5.nz/molang/internal/ast"
	"j5.nz/molang/internal/builtins"
	"j5.nz/molang/internal/value"
)

// Error is a lowering failure: unknown function, wrong argument count, or
// a call target that isn't a path.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// ErrorKind classifies a lowering failure (spec §7's "Lower errors").
type ErrorKind int

const (
	UnknownFunction ErrorKind = iota
	InvalidArgumentCount
	UnsupportedCallTarget
)

// Program is a lowered statement list, ready for the code generator.
type Program struct {
	Statements []Statement
}

// Statement mirrors internal/ast.Statement with Expr fields replaced by
// lowered ir.Expr.
type Statement interface{ stmtNode() }

type ExprStmt struct{ Expr Expr }

type Assignment struct {
	Target value.QualifiedName
	Value  Expr
}

type Block struct{ Statements []Statement }

type Loop struct {
	Count Expr
	Body  Statement
}

type ForEach struct {
	Variable   value.QualifiedName
	Collection Expr
	Body       Statement
}

type Return struct{ Expr Expr }

func (ExprStmt) stmtNode()   {}
func (Assignment) stmtNode() {}
func (Block) stmtNode()      {}
func (Loop) stmtNode()       {}
func (ForEach) stmtNode()    {}
func (Return) stmtNode()     {}

// Expr mirrors internal/ast.Expr, with Call replaced by CallBuiltin.
type Expr interface{ exprNode() }

type Number struct{ Value float64 }
type Path struct{ Name value.QualifiedName }
type String struct{ Value string }
type Array struct{ Elements []Expr }

type StructField struct {
	Name  string
	Value Expr
}
type Struct struct{ Fields []StructField }

type Unary struct {
	Op   ast.UnaryOp
	Expr Expr
}

type Binary struct {
	Op          ast.BinaryOp
	Left, Right Expr
}

type Conditional struct {
	Condition Expr
	Then      Expr
	Else      Expr
}

// CallBuiltin is a call resolved to a fixed builtin entry; arity has
// already been validated against builtins.ID.Arity().
type CallBuiltin struct {
	Builtin builtins.ID
	Args    []Expr
}

type Index struct {
	Target Expr
	Index  Expr
}

type Flow struct{ Kind ast.FlowKind }

func (Number) exprNode()      {}
func (Path) exprNode()        {}
func (String) exprNode()      {}
func (Array) exprNode()       {}
func (Struct) exprNode()      {}
func (Unary) exprNode()       {}
func (Binary) exprNode()      {}
func (Conditional) exprNode() {}
func (CallBuiltin) exprNode() {}
func (Index) exprNode()       {}
func (Flow) exprNode()        {}

// Lower transforms a parsed program into a validated Program.
func Lower(p *ast.Program) (*Program, error) {
	out := &Program{}
	for _, s := range p.Statements {
		lowered, err := lowerStatement(s)
		if err != nil {
			return nil, err
		}
		out.Statements = append(out.Statements, lowered)
	}
	return out, nil
}

// LowerExpr lowers a single expression (the JIT-single-expression path).
func LowerExpr(e ast.Expr) (Expr, error) { return lowerExpr(e) }

func lowerStatement(s ast.Statement) (Statement, error) {
	switch n := s.(type) {
	case ast.ExprStmt:
		e, err := lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return ExprStmt{Expr: e}, nil
	case ast.Assignment:
		v, err := lowerExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return Assignment{Target: value.NewQualifiedName(n.Target), Value: v}, nil
	case ast.Block:
		var stmts []Statement
		for _, s := range n.Statements {
			lowered, err := lowerStatement(s)
			if err != nil {
				return nil, err
			}
			stmts = append(stmts, lowered)
		}
		return Block{Statements: stmts}, nil
	case ast.Loop:
		count, err := lowerExpr(n.Count)
		if err != nil {
			return nil, err
		}
		body, err := lowerStatement(n.Body)
		if err != nil {
			return nil, err
		}
		return Loop{Count: count, Body: body}, nil
	case ast.ForEach:
		coll, err := lowerExpr(n.Collection)
		if err != nil {
			return nil, err
		}
		body, err := lowerStatement(n.Body)
		if err != nil {
			return nil, err
		}
		return ForEach{Variable: value.NewQualifiedName(n.Variable), Collection: coll, Body: body}, nil
	case ast.Return:
		if n.Expr == nil {
			return Return{}, nil
		}
		e, err := lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return Return{Expr: e}, nil
	default:
		panic(fmt.Sprintf("molang: unhandled statement kind %T in lowerStatement", s))
	}
}

func lowerExpr(e ast.Expr) (Expr, error) {
	switch n := e.(type) {
	case ast.Number:
		return Number{Value: n.Value}, nil
	case ast.Path:
		return Path{Name: value.NewQualifiedName(n.Segments)}, nil
	case ast.String:
		return String{Value: n.Value}, nil
	case ast.Array:
		elems := make([]Expr, len(n.Elements))
		for i, el := range n.Elements {
			lowered, err := lowerExpr(el)
			if err != nil {
				return nil, err
			}
			elems[i] = lowered
		}
		return Array{Elements: elems}, nil
	case ast.Struct:
		fields := make([]StructField, len(n.Fields))
		for i, f := range n.Fields {
			lowered, err := lowerExpr(f.Value)
			if err != nil {
				return nil, err
			}
			fields[i] = StructField{Name: f.Name, Value: lowered}
		}
		return Struct{Fields: fields}, nil
	case ast.Unary:
		inner, err := lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return Unary{Op: n.Op, Expr: inner}, nil
	case ast.Binary:
		left, err := lowerExpr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := lowerExpr(n.Right)
		if err != nil {
			return nil, err
		}
		return Binary{Op: n.Op, Left: left, Right: right}, nil
	case ast.Conditional:
		cond, err := lowerExpr(n.Condition)
		if err != nil {
			return nil, err
		}
		then, err := lowerExpr(n.Then)
		if err != nil {
			return nil, err
		}
		var elseExpr Expr
		if n.Else != nil {
			elseExpr, err = lowerExpr(n.Else)
			if err != nil {
				return nil, err
			}
		}
		return Conditional{Condition: cond, Then: then, Else: elseExpr}, nil
	case ast.Call:
		return lowerCall(n)
	case ast.Index:
		target, err := lowerExpr(n.Target)
		if err != nil {
			return nil, err
		}
		idx, err := lowerExpr(n.Index)
		if err != nil {
			return nil, err
		}
		return Index{Target: target, Index: idx}, nil
	case ast.Flow:
		return Flow{Kind: n.Kind}, nil
	default:
		panic(fmt.Sprintf("molang: unhandled expression kind %T in lowerExpr", e))
	}
}

func lowerCall(n ast.Call) (Expr, error) {
	path, ok := n.Target.(ast.Path)
	if !ok {
		return nil, &Error{Kind: UnsupportedCallTarget, Message: "call target is not a path"}
	}
	name := callTargetName(path)
	id, ok := builtins.Lookup(name)
	if !ok {
		return nil, &Error{Kind: UnknownFunction, Message: fmt.Sprintf("unknown function %q", name)}
	}
	if len(n.Args) != id.Arity() {
		return nil, &Error{
			Kind:    InvalidArgumentCount,
			Message: fmt.Sprintf("%s expects %d argument(s), got %d", name, id.Arity(), len(n.Args)),
		}
	}
	args := make([]Expr, len(n.Args))
	for i, a := range n.Args {
		lowered, err := lowerExpr(a)
		if err != nil {
			return nil, err
		}
		args[i] = lowered
	}
	return CallBuiltin{Builtin: id, Args: args}, nil
}

// callTargetName strips a leading "math" namespace segment, since every
// builtin is addressed as math.<name> (spec §4.2) but the builtin table
// is keyed by <name> alone.
func callTargetName(p ast.Path) string {
	segs := p.Segments
	if len(segs) >= 2 && segs[0] == "math" {
		segs = segs[1:]
	}
	out := segs[0]
	for _, s := range segs[1:] {
		out += "." + s
	}
	return out
}
