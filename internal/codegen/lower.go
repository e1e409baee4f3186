package codegen

import (
	"j5.nz/molang/internal/ast"
	"j5.nz/molang/internal/bridge"
	"j5.nz/molang/internal/ir"
	"j5.nz/molang/internal/ssa"
	"j5.nz/molang/internal/value"
)

// loopCtx is the {break_target, continue_target} pair pushed for the
// duration of one loop/for_each body (spec §4.4).
type loopCtx struct {
	breakTarget, continueTarget ssa.Block
}

// translator lowers one ir.Program (or one pure ir.Expr) to an ssa.Func,
// mirroring original_source/src/jit.rs's Translator generalized to full
// statement/control-flow lowering (spec §4.4).
//
// Every lowering method leaves the builder's current block open (never
// mid-terminator): a statement or expression that diverges control
// (return/break/continue) immediately creates and switches to a fresh
// block afterward, so callers never need to special-case "did control
// just leave" — they can always keep emitting into t.b.CurrentBlock().
type translator struct {
	b         *ssa.Builder
	slots     *slotTable
	literals  *literalPool
	loops     []loopCtx
	exit      ssa.Block
	exitParam ssa.Value
}

// fresh creates a new block and makes it current, used both for ordinary
// successor blocks and for the "unreachable continuation" the state
// machine requires after an unconditional jump.
func (t *translator) fresh() ssa.Block {
	blk := t.b.CreateBlock()
	t.b.SwitchToBlock(blk)
	return blk
}

func (t *translator) slotArgs(idx int) (ssa.Value, ssa.Value) {
	return t.b.SlotPtr(idx), t.b.SlotLen(idx)
}

func (t *translator) pathArgs(name value.QualifiedName) (ssa.Value, ssa.Value) {
	return t.slotArgs(t.slots.indexOf(name))
}

// lowerProgram lowers a full statement program (spec §4.4's general
// compilation path).
func lowerProgram(prog *ir.Program) (*ssa.Func, *slotTable, *literalPool, error) {
	t, b := newTranslator()
	for _, s := range prog.Statements {
		if err := t.lowerStatement(s); err != nil {
			return nil, nil, nil, err
		}
	}
	b.Jump(t.exit, []ssa.Value{b.FConst(0.0)})
	b.SwitchToBlock(t.exit)
	b.Return(t.exitParam)
	return b.Finalize(), t.slots, t.literals, nil
}

// lowerPureExpr lowers a single JIT-eligible expression (spec §4.3's
// pure-single-expression predicate; routed through the cache by
// internal/molang).
func lowerPureExpr(e ir.Expr) (*ssa.Func, *slotTable, *literalPool, error) {
	t, b := newTranslator()
	v, err := t.lowerExprValue(e)
	if err != nil {
		return nil, nil, nil, err
	}
	b.Jump(t.exit, []ssa.Value{v})
	b.SwitchToBlock(t.exit)
	b.Return(t.exitParam)
	return b.Finalize(), t.slots, t.literals, nil
}

func newTranslator() (*translator, *ssa.Builder) {
	b := ssa.NewBuilder()
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	exit := b.CreateBlock()
	exitParam := b.AppendBlockParam(exit, ssa.F64)
	return &translator{
		b: b, slots: newSlotTable(), literals: newLiteralPool(),
		exit: exit, exitParam: exitParam,
	}, b
}

// === statements ===

func (t *translator) lowerStatement(s ir.Statement) error {
	switch n := s.(type) {
	case ir.ExprStmt:
		_, err := t.lowerExprValue(n.Expr)
		return err
	case ir.Assignment:
		return t.lowerAssign(n.Target, n.Value)
	case ir.Block:
		for _, inner := range n.Statements {
			if err := t.lowerStatement(inner); err != nil {
				return err
			}
		}
		return nil
	case ir.Return:
		v := t.b.FConst(0.0)
		if n.Expr != nil {
			var err error
			v, err = t.lowerExprValue(n.Expr)
			if err != nil {
				return err
			}
		}
		t.b.Jump(t.exit, []ssa.Value{v})
		t.fresh()
		return nil
	case ir.Loop:
		return t.lowerLoop(n)
	case ir.ForEach:
		return t.lowerForEach(n)
	default:
		return errInternal("unhandled statement kind %T", s)
	}
}

// lowerLoop implements spec §4.4's Loop: a header comparing an induction
// variable threaded through the header block's parameter against a count
// capped at 1024, a body executed under a loop context, an increment
// block, and an exit block.
func (t *translator) lowerLoop(n ir.Loop) error {
	countVal, err := t.lowerExprValue(n.Count)
	if err != nil {
		return err
	}
	cap := t.b.FConst(1024.0)
	capped := t.capCount(countVal, cap)

	header := t.b.CreateBlock()
	body := t.b.CreateBlock()
	incr := t.b.CreateBlock()
	exit := t.b.CreateBlock()

	i := t.b.AppendBlockParam(header, ssa.F64)
	t.b.Jump(header, []ssa.Value{t.b.FConst(0.0)})

	t.b.SwitchToBlock(header)
	cond := t.b.FCmp(ssa.LessThan, i, capped)
	t.b.Brif(cond, body, nil, exit, nil)

	t.b.SwitchToBlock(body)
	t.loops = append(t.loops, loopCtx{breakTarget: exit, continueTarget: incr})
	err = t.lowerStatement(n.Body)
	t.loops = t.loops[:len(t.loops)-1]
	if err != nil {
		return err
	}
	t.b.Jump(incr, nil)
	t.fresh()

	t.b.SwitchToBlock(incr)
	i2 := t.b.FAdd(i, t.b.FConst(1.0))
	t.b.Jump(header, []ssa.Value{i2})
	t.fresh()

	t.b.SwitchToBlock(exit)
	return nil
}

// capCount clamps count to [*, 1024] via a branch-merge, so header
// comparisons never run more than 1024 iterations regardless of the
// source count (spec §4.4, testable property 4). A NaN or non-positive
// count falls through unclamped into a header comparison that is false
// on the first check (ordered fcmp), yielding zero iterations.
func (t *translator) capCount(count, cap ssa.Value) ssa.Value {
	useCount := t.b.CreateBlock()
	useCap := t.b.CreateBlock()
	merge := t.b.CreateBlock()
	result := t.b.AppendBlockParam(merge, ssa.F64)

	cond := t.b.FCmp(ssa.GreaterThan, count, cap)
	t.b.Brif(cond, useCap, nil, useCount, nil)

	t.b.SwitchToBlock(useCount)
	t.b.Jump(merge, []ssa.Value{count})

	t.b.SwitchToBlock(useCap)
	t.b.Jump(merge, []ssa.Value{cap})

	t.b.SwitchToBlock(merge)
	return result
}

// lowerForEach implements spec §4.4's ForEach. The collection must be a
// path: there is no array-valued expression in this language other than
// a literal (whose element count, not elements, is all an expression
// position can observe) or a stored path, so a non-path collection is a
// compile error rather than a silently-assigned temporary.
func (t *translator) lowerForEach(n ir.ForEach) error {
	collPath, ok := n.Collection.(ir.Path)
	if !ok {
		return errUnsupported("for_each collection must be a path")
	}
	collPtr, collLen := t.pathArgs(collPath.Name)
	varIdx := t.slots.indexOf(n.Variable)

	lengthI64 := t.b.CallExternal(bridge.ArrayLengthSym.Name(), []ssa.Value{collPtr, collLen},
		[]ssa.Type{ssa.I64, ssa.I64}, ssa.I64, true)
	length := t.b.I64ToF64(lengthI64)

	header := t.b.CreateBlock()
	body := t.b.CreateBlock()
	incr := t.b.CreateBlock()
	exit := t.b.CreateBlock()

	i := t.b.AppendBlockParam(header, ssa.F64)
	t.b.Jump(header, []ssa.Value{t.b.FConst(0.0)})

	t.b.SwitchToBlock(header)
	cond := t.b.FCmp(ssa.LessThan, i, length)
	t.b.Brif(cond, body, nil, exit, nil)

	t.b.SwitchToBlock(body)
	iI64 := t.b.F64ToI64(i)
	varPtr, varLen := t.slotArgs(varIdx)
	t.b.CallExternal(bridge.ArrayCopyElementSym.Name(), []ssa.Value{collPtr, collLen, iI64, varPtr, varLen},
		[]ssa.Type{ssa.I64, ssa.I64, ssa.I64, ssa.I64, ssa.I64}, 0, false)

	t.loops = append(t.loops, loopCtx{breakTarget: exit, continueTarget: incr})
	err := t.lowerStatement(n.Body)
	t.loops = t.loops[:len(t.loops)-1]
	if err != nil {
		return err
	}
	t.b.Jump(incr, nil)
	t.fresh()

	t.b.SwitchToBlock(incr)
	i2 := t.b.FAdd(i, t.b.FConst(1.0))
	t.b.Jump(header, []ssa.Value{i2})
	t.fresh()

	t.b.SwitchToBlock(exit)
	return nil
}

// lowerAssign implements spec §4.4's Assign, recursing for struct-literal
// fields (each field assigns target.field = field_value in turn).
func (t *translator) lowerAssign(target value.QualifiedName, val ir.Expr) error {
	switch v := val.(type) {
	case ir.Path:
		dp, dl := t.pathArgs(target)
		sp, sl := t.pathArgs(v.Name)
		t.callVoid(bridge.ClearValueSym.Name(), []ssa.Value{dp, dl}, []ssa.Type{ssa.I64, ssa.I64})
		t.callVoid(bridge.CopyValueSym.Name(), []ssa.Value{dp, dl, sp, sl},
			[]ssa.Type{ssa.I64, ssa.I64, ssa.I64, ssa.I64})
		return nil
	case ir.String:
		dp, dl := t.pathArgs(target)
		addr, length := t.internLiteral(v.Value)
		t.callVoid(bridge.SetStringSym.Name(), []ssa.Value{dp, dl, addr, length},
			[]ssa.Type{ssa.I64, ssa.I64, ssa.I64, ssa.I64})
		return nil
	case ir.Array:
		dp, dl := t.pathArgs(target)
		t.callVoid(bridge.ClearValueSym.Name(), []ssa.Value{dp, dl}, []ssa.Type{ssa.I64, ssa.I64})
		for _, el := range v.Elements {
			switch e := el.(type) {
			case ir.String:
				addr, length := t.internLiteral(e.Value)
				t.callVoid(bridge.ArrayPushStringSym.Name(), []ssa.Value{dp, dl, addr, length},
					[]ssa.Type{ssa.I64, ssa.I64, ssa.I64, ssa.I64})
			case ir.Array:
				return errUnsupported("nested array literal is not supported as an array element")
			case ir.Struct:
				return errUnsupported("struct literal is not supported as an array element")
			default:
				fv, err := t.lowerExprValue(el)
				if err != nil {
					return err
				}
				t.callVoid(bridge.ArrayPushNumberSym.Name(), []ssa.Value{dp, dl, fv},
					[]ssa.Type{ssa.I64, ssa.I64, ssa.F64})
			}
		}
		return nil
	case ir.Struct:
		dp, dl := t.pathArgs(target)
		t.callVoid(bridge.ClearValueSym.Name(), []ssa.Value{dp, dl}, []ssa.Type{ssa.I64, ssa.I64})
		for _, f := range v.Fields {
			if err := t.lowerAssign(target.Child(f.Name), f.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		fv, err := t.lowerExprValue(val)
		if err != nil {
			return err
		}
		dp, dl := t.pathArgs(target)
		t.callVoid(bridge.SetNumberSym.Name(), []ssa.Value{dp, dl, fv}, []ssa.Type{ssa.I64, ssa.I64, ssa.F64})
		return nil
	}
}

func (t *translator) callVoid(symbol string, args []ssa.Value, argTypes []ssa.Type) {
	t.b.CallExternal(symbol, args, argTypes, ssa.F64, false)
}

func (t *translator) internLiteral(s string) (addr, length ssa.Value) {
	sym := t.literals.intern(s)
	return t.b.LoadDataAddr(sym), t.b.IConst(int64(len(s)))
}

// === expressions ===

func (t *translator) lowerExprValue(e ir.Expr) (ssa.Value, error) {
	switch n := e.(type) {
	case ir.Number:
		return t.b.FConst(n.Value), nil
	case ir.Path:
		ptr, length := t.pathArgs(n.Name)
		return t.b.CallExternal(bridge.GetNumberSym.Name(), []ssa.Value{ptr, length},
			[]ssa.Type{ssa.I64, ssa.I64}, ssa.F64, true), nil
	case ir.String:
		return ssa.Invalid, errUnsupported("string literal used as a value")
	case ir.Array:
		return t.b.FConst(float64(len(n.Elements))), nil
	case ir.Struct:
		return ssa.Invalid, errUnsupported("struct literal used as a value")
	case ir.Unary:
		return t.lowerUnary(n)
	case ir.Binary:
		return t.lowerBinary(n)
	case ir.Conditional:
		return t.lowerConditional(n)
	case ir.CallBuiltin:
		return t.lowerCallBuiltin(n)
	case ir.Index:
		return t.lowerIndex(n)
	case ir.Flow:
		return t.lowerFlow(n)
	default:
		return ssa.Invalid, errInternal("unhandled expression kind %T", e)
	}
}

func (t *translator) lowerUnary(n ir.Unary) (ssa.Value, error) {
	v, err := t.lowerExprValue(n.Expr)
	if err != nil {
		return ssa.Invalid, err
	}
	switch n.Op {
	case ast.UnaryPlus:
		return v, nil
	case ast.UnaryMinus:
		return t.b.FNeg(v), nil
	case ast.UnaryNot:
		return t.b.FCmp(ssa.Equal, v, t.b.FConst(0.0)), nil
	default:
		return ssa.Invalid, errInternal("unhandled unary op %v", n.Op)
	}
}

func (t *translator) lowerBinary(n ir.Binary) (ssa.Value, error) {
	switch n.Op {
	case ast.Add, ast.Sub, ast.Mul, ast.Div:
		l, err := t.lowerExprValue(n.Left)
		if err != nil {
			return ssa.Invalid, err
		}
		r, err := t.lowerExprValue(n.Right)
		if err != nil {
			return ssa.Invalid, err
		}
		switch n.Op {
		case ast.Add:
			return t.b.FAdd(l, r), nil
		case ast.Sub:
			return t.b.FSub(l, r), nil
		case ast.Mul:
			return t.b.FMul(l, r), nil
		default:
			return t.b.FDiv(l, r), nil
		}
	case ast.Less, ast.LessEqual, ast.Greater, ast.GreaterEqual:
		l, err := t.lowerExprValue(n.Left)
		if err != nil {
			return ssa.Invalid, err
		}
		r, err := t.lowerExprValue(n.Right)
		if err != nil {
			return ssa.Invalid, err
		}
		return t.b.FCmp(orderedCond(n.Op), l, r), nil
	case ast.Equal, ast.NotEqual:
		return t.lowerEquality(n)
	case ast.And:
		return t.lowerAnd(n)
	case ast.Or:
		return t.lowerOr(n)
	case ast.NullCoalesce:
		return t.lowerCoalesce(n)
	default:
		return ssa.Invalid, errInternal("unhandled binary op %v", n.Op)
	}
}

func orderedCond(op ast.BinaryOp) ssa.FloatCond {
	switch op {
	case ast.Less:
		return ssa.LessThan
	case ast.LessEqual:
		return ssa.LessThanOrEqual
	case ast.Greater:
		return ssa.GreaterThan
	default:
		return ssa.GreaterThanOrEqual
	}
}

// lowerEquality implements spec §4.4's equality rules: path-vs-path
// routes through the variant-aware bridge comparison, path-vs-string
// literal routes through the string-specific bridge comparison,
// literal-vs-literal folds at compile time, and everything else falls
// back to a numeric-coercion float compare.
func (t *translator) lowerEquality(n ir.Binary) (ssa.Value, error) {
	negate := n.Op == ast.NotEqual
	leftPath, leftIsPath := n.Left.(ir.Path)
	rightPath, rightIsPath := n.Right.(ir.Path)
	leftStr, leftIsStr := n.Left.(ir.String)
	rightStr, rightIsStr := n.Right.(ir.String)

	switch {
	case leftIsPath && rightIsPath:
		lp, ll := t.pathArgs(leftPath.Name)
		rp, rl := t.pathArgs(rightPath.Name)
		sym := bridge.EqualPathsSym
		if negate {
			sym = bridge.NotEqualPathsSym
		}
		return t.b.CallExternal(sym.Name(), []ssa.Value{lp, ll, rp, rl},
			[]ssa.Type{ssa.I64, ssa.I64, ssa.I64, ssa.I64}, ssa.F64, true), nil
	case leftIsPath && rightIsStr:
		return t.lowerPathStringEquality(leftPath, rightStr.Value, negate), nil
	case rightIsPath && leftIsStr:
		return t.lowerPathStringEquality(rightPath, leftStr.Value, negate), nil
	case leftIsStr && rightIsStr:
		eq := leftStr.Value == rightStr.Value
		if negate {
			eq = !eq
		}
		if eq {
			return t.b.FConst(1.0), nil
		}
		return t.b.FConst(0.0), nil
	default:
		l, err := t.lowerExprValue(n.Left)
		if err != nil {
			return ssa.Invalid, err
		}
		r, err := t.lowerExprValue(n.Right)
		if err != nil {
			return ssa.Invalid, err
		}
		cond := ssa.Equal
		if negate {
			cond = ssa.NotEqual
		}
		return t.b.FCmp(cond, l, r), nil
	}
}

func (t *translator) lowerPathStringEquality(p ir.Path, text string, negate bool) ssa.Value {
	ptr, length := t.pathArgs(p.Name)
	addr, textLen := t.internLiteral(text)
	sym := bridge.EqualPathStringSym
	if negate {
		sym = bridge.NotEqualPathStringSym
	}
	return t.b.CallExternal(sym.Name(), []ssa.Value{ptr, length, addr, textLen},
		[]ssa.Type{ssa.I64, ssa.I64, ssa.I64, ssa.I64}, ssa.F64, true)
}

// lowerAnd implements "A && B yields 1 if both truthy else 0" with B
// unevaluated when A is falsy.
func (t *translator) lowerAnd(n ir.Binary) (ssa.Value, error) {
	l, err := t.lowerExprValue(n.Left)
	if err != nil {
		return ssa.Invalid, err
	}
	condA := t.b.BoolFromF64(l)

	evalB := t.b.CreateBlock()
	merge := t.b.CreateBlock()
	result := t.b.AppendBlockParam(merge, ssa.F64)
	t.b.Brif(condA, evalB, nil, merge, []ssa.Value{t.b.FConst(0.0)})

	t.b.SwitchToBlock(evalB)
	r, err := t.lowerExprValue(n.Right)
	if err != nil {
		return ssa.Invalid, err
	}
	condB := t.b.BoolFromF64(r)
	t.b.Jump(merge, []ssa.Value{condB})

	t.b.SwitchToBlock(merge)
	return result, nil
}

// lowerOr implements "A || B yields 1 if A truthy else B directly" with B
// unevaluated when A is truthy.
func (t *translator) lowerOr(n ir.Binary) (ssa.Value, error) {
	l, err := t.lowerExprValue(n.Left)
	if err != nil {
		return ssa.Invalid, err
	}
	condA := t.b.BoolFromF64(l)

	evalB := t.b.CreateBlock()
	merge := t.b.CreateBlock()
	result := t.b.AppendBlockParam(merge, ssa.F64)
	t.b.Brif(condA, merge, []ssa.Value{t.b.FConst(1.0)}, evalB, nil)

	t.b.SwitchToBlock(evalB)
	r, err := t.lowerExprValue(n.Right)
	if err != nil {
		return ssa.Invalid, err
	}
	t.b.Jump(merge, []ssa.Value{r})

	t.b.SwitchToBlock(merge)
	return result, nil
}

// lowerCoalesce implements "A ?? B yields A if A truthy else B", B
// unevaluated and A passed through without coercion when truthy.
func (t *translator) lowerCoalesce(n ir.Binary) (ssa.Value, error) {
	l, err := t.lowerExprValue(n.Left)
	if err != nil {
		return ssa.Invalid, err
	}
	condA := t.b.BoolFromF64(l)

	evalB := t.b.CreateBlock()
	merge := t.b.CreateBlock()
	result := t.b.AppendBlockParam(merge, ssa.F64)
	t.b.Brif(condA, merge, []ssa.Value{l}, evalB, nil)

	t.b.SwitchToBlock(evalB)
	r, err := t.lowerExprValue(n.Right)
	if err != nil {
		return ssa.Invalid, err
	}
	t.b.Jump(merge, []ssa.Value{r})

	t.b.SwitchToBlock(merge)
	return result, nil
}

func (t *translator) lowerConditional(n ir.Conditional) (ssa.Value, error) {
	condVal, err := t.lowerExprValue(n.Condition)
	if err != nil {
		return ssa.Invalid, err
	}
	condBool := t.b.BoolFromF64(condVal)

	thenBlk := t.b.CreateBlock()
	elseBlk := t.b.CreateBlock()
	merge := t.b.CreateBlock()
	result := t.b.AppendBlockParam(merge, ssa.F64)
	t.b.Brif(condBool, thenBlk, nil, elseBlk, nil)

	t.b.SwitchToBlock(thenBlk)
	thenVal, err := t.lowerExprValue(n.Then)
	if err != nil {
		return ssa.Invalid, err
	}
	t.b.Jump(merge, []ssa.Value{thenVal})

	t.b.SwitchToBlock(elseBlk)
	elseVal := t.b.FConst(0.0)
	if n.Else != nil {
		elseVal, err = t.lowerExprValue(n.Else)
		if err != nil {
			return ssa.Invalid, err
		}
	}
	t.b.Jump(merge, []ssa.Value{elseVal})

	t.b.SwitchToBlock(merge)
	return result, nil
}

func (t *translator) lowerCallBuiltin(n ir.CallBuiltin) (ssa.Value, error) {
	args := make([]ssa.Value, len(n.Args))
	argTypes := make([]ssa.Type, len(n.Args))
	for i, a := range n.Args {
		v, err := t.lowerExprValue(a)
		if err != nil {
			return ssa.Invalid, err
		}
		args[i] = v
		argTypes[i] = ssa.F64
	}
	return t.b.CallExternal(n.Builtin.Symbol(), args, argTypes, ssa.F64, true), nil
}

func (t *translator) lowerIndex(n ir.Index) (ssa.Value, error) {
	path, ok := n.Target.(ir.Path)
	if !ok {
		return ssa.Invalid, errUnsupported("indexing a non-path target")
	}
	ptr, length := t.pathArgs(path.Name)
	if isLengthAccessor(n.Index) {
		lengthI64 := t.b.CallExternal(bridge.ArrayLengthSym.Name(), []ssa.Value{ptr, length},
			[]ssa.Type{ssa.I64, ssa.I64}, ssa.I64, true)
		return t.b.I64ToF64(lengthI64), nil
	}
	idxVal, err := t.lowerExprValue(n.Index)
	if err != nil {
		return ssa.Invalid, err
	}
	return t.b.CallExternal(bridge.ArrayGetNumberSym.Name(), []ssa.Value{ptr, length, idxVal},
		[]ssa.Type{ssa.I64, ssa.I64, ssa.F64}, ssa.F64, true), nil
}

// isLengthAccessor recognizes `path.length` per spec §4.4: the index
// expression is the bare identifier "length", which lowers (having no
// namespace-alias first segment) to Variable/"length".
func isLengthAccessor(e ir.Expr) bool {
	p, ok := e.(ir.Path)
	return ok && p.Name.Namespace == value.Variable && p.Name.Key == "length"
}

func (t *translator) lowerFlow(n ir.Flow) (ssa.Value, error) {
	if len(t.loops) == 0 {
		return ssa.Invalid, errUnsupported("%s used outside a loop", flowName(n.Kind))
	}
	top := t.loops[len(t.loops)-1]
	target := top.continueTarget
	if n.Kind == ast.FlowBreak {
		target = top.breakTarget
	}
	t.b.Jump(target, nil)
	t.fresh()
	return t.b.FConst(0.0), nil
}

func flowName(k ast.FlowKind) string {
	if k == ast.FlowBreak {
		return "break"
	}
	return "continue"
}
