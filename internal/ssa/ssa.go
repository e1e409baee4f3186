// Package ssa is a small, purpose-built intermediate representation used
// by internal/codegen: typed values, basic blocks with explicit block
// parameters standing in for merge points, and sealed blocks (spec
// §4.4). It mirrors the shape of cranelift's FunctionBuilder API
// (create_block/append_block_param/switch_to_block/seal_block/brif/jump,
// as used by original_source/src/jit.rs) without requiring a full
// dominance computation: every merge point's incoming values are
// supplied explicitly by the Jump/Brif that targets it, so there is
// never an implicit use-before-def to resolve.
package ssa

import "fmt"

// Type is the machine type of an SSA value.
type Type int

const (
	F64 Type = iota
	I64
)

// Value names one instruction's or block-parameter's result.
type Value int

// Invalid marks the absence of a value (a call with no return value).
const Invalid Value = -1

// Block identifies a basic block within a Func.
type Block int

// FloatCond is an IEEE-754 comparison predicate.
type FloatCond int

const (
	LessThan FloatCond = iota
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
	Equal
	NotEqual
)

// Op is an SSA instruction opcode.
type Op int

const (
	OpFConst Op = iota
	OpIConst
	OpFNeg
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFCmp
	OpBoolFromF64 // truthy test: result is 1.0 if operand != 0.0 else 0.0
	OpF64ToI64    // truncating conversion, for bridge calls needing an index
	OpI64ToF64
	OpCallExternal // call a named external symbol by absolute address
	OpLoadDataAddr // address of a pinned read-only byte buffer (string literal)
	OpSlotPtr      // address of slot IImm's (ptr,len) record's pointer field
	OpSlotLen      // length field of slot IImm's (ptr,len) record
)

// Instr is one instruction within a block. Its result, if any, is
// recorded in its block's ResultOf by Finalize.
type Instr struct {
	Op     Op
	Args   []Value
	Type   Type      // result type, meaningful when the op produces a value
	Imm    float64   // OpFConst
	IImm   int64     // OpIConst
	Cond   FloatCond // OpFCmp
	Symbol string    // OpCallExternal, OpLoadDataAddr
	// ArgTypes classifies each Args[i] as integer or float for
	// OpCallExternal, since the runtime bridge's C ABI interleaves
	// pointer/length integer arguments with at most one f64 payload.
	ArgTypes []Type
	HasRet   bool // OpCallExternal: false for void bridge calls
}

// TermKind identifies how a block ends.
type TermKind int

const (
	TermJump TermKind = iota
	TermBrif
	TermReturn
)

// Terminator ends a basic block; every block has exactly one.
type Terminator struct {
	Kind TermKind

	// TermJump
	Target Block
	Args   []Value

	// TermBrif
	Cond                               Value
	TrueBlock, FalseBlock              Block
	TrueArgs, FalseArgs                []Value

	// TermReturn
	ReturnValue Value
}

// BlockData is one basic block: its parameters, its instruction list (in
// emission order), and its terminator.
type BlockData struct {
	Params     []Value
	ParamTypes []Type
	Instrs     []Instr
	Term       Terminator
	sealed     bool

	// ResultOf is populated by Finalize: ResultOf[i] is the Value that
	// Instrs[i] produced, or Invalid for a void call.
	ResultOf []Value
}

// Func is a complete lowered function body: one program or one pure
// expression compiles to exactly one Func (spec §4.4's "one exported
// native function per compilation").
type Func struct {
	Blocks     []BlockData
	ValueTypes []Type // indexed by Value
	// valueOwner records which block+instruction-or-param produced each
	// Value, so Finalize can fill in every block's ResultOf.
	valueOwner []valueLoc
}

type valueKind int

const (
	valueFromParam valueKind = iota
	valueFromInstr
)

type valueLoc struct {
	kind  valueKind
	block Block
	index int // index into Params or Instrs
}

// Type returns the machine type of v.
func (f *Func) Type(v Value) Type { return f.ValueTypes[v] }

// Builder constructs a Func one block/instruction at a time, mirroring
// cranelift's FunctionBuilder: CreateBlock, AppendBlockParam,
// SwitchToBlock, SealBlock, then per-instruction emitters, Jump/Brif to
// end a block, and Return to end the function.
type Builder struct {
	f   *Func
	cur Block
}

// NewBuilder returns a Builder over a fresh, empty Func.
func NewBuilder() *Builder {
	return &Builder{f: &Func{}, cur: -1}
}

// CreateBlock allocates a new, empty basic block.
func (b *Builder) CreateBlock() Block {
	b.f.Blocks = append(b.f.Blocks, BlockData{})
	return Block(len(b.f.Blocks) - 1)
}

// AppendBlockParam adds a parameter of typ to blk and returns its Value,
// used for the result of a branch-and-merge construct (&&, ||, ??, ?:).
func (b *Builder) AppendBlockParam(blk Block, typ Type) Value {
	bd := &b.f.Blocks[blk]
	idx := len(bd.Params)
	v := b.newValue(typ, valueLoc{kind: valueFromParam, block: blk, index: idx})
	bd.Params = append(bd.Params, v)
	bd.ParamTypes = append(bd.ParamTypes, typ)
	return v
}

// SwitchToBlock makes blk the current block that subsequent instruction
// emitters append to.
func (b *Builder) SwitchToBlock(blk Block) { b.cur = blk }

// CurrentBlock returns the block instructions are currently appended to.
func (b *Builder) CurrentBlock() Block { return b.cur }

// SealBlock marks blk as having all its predecessors known. Since every
// merge point in this generator receives its incoming values explicitly
// via Jump/Brif arguments (never through implicit variable resolution),
// sealing carries no computational weight here — it only guards against
// the programming error of revisiting a block believed finished.
func (b *Builder) SealBlock(blk Block) {
	if b.f.Blocks[blk].sealed {
		panic(fmt.Sprintf("molang: block %d sealed twice", blk))
	}
	b.f.Blocks[blk].sealed = true
}

func (b *Builder) newValue(typ Type, loc valueLoc) Value {
	v := Value(len(b.f.ValueTypes))
	b.f.ValueTypes = append(b.f.ValueTypes, typ)
	b.f.valueOwner = append(b.f.valueOwner, loc)
	return v
}

func (b *Builder) emit(instr Instr) Value {
	bd := &b.f.Blocks[b.cur]
	idx := len(bd.Instrs)
	v := b.newValue(instr.Type, valueLoc{kind: valueFromInstr, block: b.cur, index: idx})
	bd.Instrs = append(bd.Instrs, instr)
	return v
}

// FConst emits an immediate f64.
func (b *Builder) FConst(v float64) Value {
	return b.emit(Instr{Op: OpFConst, Type: F64, Imm: v})
}

// IConst emits an immediate i64.
func (b *Builder) IConst(v int64) Value {
	return b.emit(Instr{Op: OpIConst, Type: I64, IImm: v})
}

// FNeg negates an f64 value.
func (b *Builder) FNeg(v Value) Value {
	return b.emit(Instr{Op: OpFNeg, Type: F64, Args: []Value{v}})
}

func (b *Builder) fbin(op Op, l, r Value) Value {
	return b.emit(Instr{Op: op, Type: F64, Args: []Value{l, r}})
}

func (b *Builder) FAdd(l, r Value) Value { return b.fbin(OpFAdd, l, r) }
func (b *Builder) FSub(l, r Value) Value { return b.fbin(OpFSub, l, r) }
func (b *Builder) FMul(l, r Value) Value { return b.fbin(OpFMul, l, r) }
func (b *Builder) FDiv(l, r Value) Value { return b.fbin(OpFDiv, l, r) }

// FCmp compares two f64 values, producing 1.0/0.0.
func (b *Builder) FCmp(cond FloatCond, l, r Value) Value {
	return b.emit(Instr{Op: OpFCmp, Type: F64, Cond: cond, Args: []Value{l, r}})
}

// BoolFromF64 widens Molang truthiness (v != 0.0) to 1.0/0.0.
func (b *Builder) BoolFromF64(v Value) Value {
	return b.emit(Instr{Op: OpBoolFromF64, Type: F64, Args: []Value{v}})
}

// F64ToI64 truncates, for bridge calls whose C signature wants an index
// as an integer register (e.g. rt_array_copy_element).
func (b *Builder) F64ToI64(v Value) Value {
	return b.emit(Instr{Op: OpF64ToI64, Type: I64, Args: []Value{v}})
}

// I64ToF64 widens an integer bridge return (e.g. rt_array_length) back
// into the f64 scalar model every other expression value uses.
func (b *Builder) I64ToF64(v Value) Value {
	return b.emit(Instr{Op: OpI64ToF64, Type: F64, Args: []Value{v}})
}

// LoadDataAddr returns the address of a read-only byte buffer pinned by
// the artifact under the given symbol (a string literal's bytes).
func (b *Builder) LoadDataAddr(symbol string) Value {
	return b.emit(Instr{Op: OpLoadDataAddr, Type: I64, Symbol: symbol})
}

// SlotPtr returns the pointer field of the slots array's record for slot
// index slotIdx (spec §4.4's "slots_ptr" argument, one (pointer, length)
// record per referenced canonical path).
func (b *Builder) SlotPtr(slotIdx int) Value {
	return b.emit(Instr{Op: OpSlotPtr, Type: I64, IImm: int64(slotIdx)})
}

// SlotLen returns the length field of the slots array's record for slot
// index slotIdx.
func (b *Builder) SlotLen(slotIdx int) Value {
	return b.emit(Instr{Op: OpSlotLen, Type: I64, IImm: int64(slotIdx)})
}

// CallExternal emits a call to a stable external symbol (a runtime
// bridge function or a builtin), classifying each argument as an
// integer-register or float-register argument per the System V AMD64
// convention, consistent with the call's actual C signature. retType is
// ignored (and the result is ssa.Invalid) when hasRet is false.
func (b *Builder) CallExternal(symbol string, args []Value, argTypes []Type, retType Type, hasRet bool) Value {
	instr := Instr{
		Op: OpCallExternal, Type: retType, Args: append([]Value(nil), args...),
		ArgTypes: append([]Type(nil), argTypes...), Symbol: symbol, HasRet: hasRet,
	}
	if !hasRet {
		bd := &b.f.Blocks[b.cur]
		bd.Instrs = append(bd.Instrs, instr)
		return Invalid
	}
	return b.emit(instr)
}

// Jump ends the current block with an unconditional branch to target,
// passing args to bind target's block parameters.
func (b *Builder) Jump(target Block, args []Value) {
	b.f.Blocks[b.cur].Term = Terminator{Kind: TermJump, Target: target, Args: append([]Value(nil), args...)}
}

// Brif ends the current block with a conditional branch: cond != 0.0
// goes to trueBlock with trueArgs, else falseBlock with falseArgs.
func (b *Builder) Brif(cond Value, trueBlock Block, trueArgs []Value, falseBlock Block, falseArgs []Value) {
	b.f.Blocks[b.cur].Term = Terminator{
		Kind: TermBrif, Cond: cond,
		TrueBlock: trueBlock, TrueArgs: append([]Value(nil), trueArgs...),
		FalseBlock: falseBlock, FalseArgs: append([]Value(nil), falseArgs...),
	}
}

// Return ends the current block by returning v (the function's single
// f64 result).
func (b *Builder) Return(v Value) {
	b.f.Blocks[b.cur].Term = Terminator{Kind: TermReturn, ReturnValue: v}
}

// Finalize returns the built Func. The builder must not be reused
// afterward.
func (b *Builder) Finalize() *Func {
	for blk := range b.f.Blocks {
		bd := &b.f.Blocks[blk]
		bd.ResultOf = make([]Value, len(bd.Instrs))
		for i := range bd.ResultOf {
			bd.ResultOf[i] = Invalid
		}
	}
	for v, loc := range b.f.valueOwner {
		if loc.kind == valueFromInstr {
			b.f.Blocks[loc.block].ResultOf[loc.index] = Value(v)
		}
	}
	return b.f
}
