package codegen

import (
	"math"
	"strings"
	"sync"

	"j5.nz/molang/internal/bridge"
	"j5.nz/molang/internal/builtins"
	"j5.nz/molang/internal/ssa"
)

// compileFunc lowers a finished SSA function to x86-64 machine code,
// grounded on std/compiler/backend_x64.go's byte-emission flow adapted
// from an ahead-of-time ELF writer to an in-process JIT (spec §4.4): the
// teacher resolves call targets against funcOffsets computed before
// writing its output file, while here every call target (a bridge or
// builtin symbol) already has a stable, already-linked process address,
// so calls are emitted as movabs+call against an absolute immediate
// rather than a relocated rel32.
//
// Calling convention (genuine System V AMD64, spec §4.5): the compiled
// function takes (ctx_handle uint64 in rdi, slots_ptr uintptr in rsi)
// and returns one f64 in xmm0. rbx holds ctx_handle and r12 holds
// slots_ptr for the function's lifetime (both callee-saved, so bridge
// and builtin calls — themselves ordinary C functions — leave them
// intact). Every SSA Value gets a fixed 8-byte stack slot at
// rbp-16-(v+1)*8; there is no register allocation (spec §9's "substitute
// an equivalent backend strategy" note licenses trading registers for
// memory slots in exchange for a much simpler generator).
//
// literalAddrs supplies the already-pinned address of each literalPool
// symbol (owned by the artifact, pinned before compileFunc runs so the
// addresses it embeds stay valid for the artifact's lifetime).
func compileFunc(fn *ssa.Func, literalAddrs map[string]uintptr) ([]byte, error) {
	c := &compiler{fn: fn, literalAddrs: literalAddrs, a: &asm{}}
	return c.run()
}

type fixup struct {
	offset int
	target ssa.Block
}

type compiler struct {
	fn           *ssa.Func
	literalAddrs map[string]uintptr
	a            *asm

	frameSize  int32
	blockStart []int
	fixups     []fixup
}

func align16(n int) int32 { return int32((n + 15) &^ 15) }

func (c *compiler) disp(v ssa.Value) int32 {
	return -16 - (int32(v)+1)*8
}

func (c *compiler) run() ([]byte, error) {
	c.frameSize = align16(len(c.fn.ValueTypes) * 8)

	c.a.pushReg(rbp)
	c.a.movRegReg(rbp, rsp)
	c.a.pushReg(rbx)
	c.a.pushReg(r12)
	c.a.movRegReg(rbx, rdi) // ctx handle
	c.a.movRegReg(r12, rsi) // slots_ptr
	if c.frameSize > 0 {
		c.a.subRspImm32(uint32(c.frameSize))
	}

	c.blockStart = make([]int, len(c.fn.Blocks))
	for i := range c.fn.Blocks {
		c.blockStart[i] = c.a.offset()
		if err := c.emitBlock(ssa.Block(i), &c.fn.Blocks[i]); err != nil {
			return nil, err
		}
	}

	for _, fx := range c.fixups {
		c.a.patchRel32(fx.offset, c.blockStart[fx.target])
	}
	return c.a.code, nil
}

func (c *compiler) emitBlock(blk ssa.Block, bd *ssa.BlockData) error {
	for i, instr := range bd.Instrs {
		result := bd.ResultOf[i]
		if err := c.emitInstr(instr, result); err != nil {
			return err
		}
	}
	return c.emitTerm(bd.Term)
}

func (c *compiler) emitInstr(instr ssa.Instr, result ssa.Value) error {
	a := c.a
	switch instr.Op {
	case ssa.OpFConst:
		a.movabs(rax, math.Float64bits(instr.Imm))
		a.movqFromGPR(0, rax)
		a.movsdStore(0, c.disp(result))
	case ssa.OpIConst:
		a.movabs(rax, uint64(instr.IImm))
		a.storeLocal(rax, c.disp(result))
	case ssa.OpFNeg:
		a.loadLocal(rax, c.disp(instr.Args[0]))
		a.movabs(rcx, 0x8000000000000000)
		a.xorGPR(rax, rcx)
		a.storeLocal(rax, c.disp(result))
	case ssa.OpFAdd, ssa.OpFSub, ssa.OpFMul, ssa.OpFDiv:
		a.movsdLoad(0, c.disp(instr.Args[0]))
		a.movsdLoad(1, c.disp(instr.Args[1]))
		switch instr.Op {
		case ssa.OpFAdd:
			a.addsd(0, 1)
		case ssa.OpFSub:
			a.subsd(0, 1)
		case ssa.OpFMul:
			a.mulsd(0, 1)
		default:
			a.divsd(0, 1)
		}
		a.movsdStore(0, c.disp(result))
	case ssa.OpFCmp:
		c.emitFCmp(instr.Cond, instr.Args[0], instr.Args[1], result)
	case ssa.OpBoolFromF64:
		a.movsdLoad(0, c.disp(instr.Args[0]))
		a.movabs(rax, 0)
		a.movqFromGPR(1, rax)
		a.ucomisd(0, 1)
		a.setByteReg(ccNotEqual, rax)
		a.setByteReg(ccParity, rcx)
		a.orByteReg(rax, rcx)
		a.movzxByte(rax, rax)
		a.cvtsi2sd(0, rax)
		a.movsdStore(0, c.disp(result))
	case ssa.OpF64ToI64:
		a.movsdLoad(0, c.disp(instr.Args[0]))
		a.cvttsd2si(rax, 0)
		a.storeLocal(rax, c.disp(result))
	case ssa.OpI64ToF64:
		a.loadLocal(rax, c.disp(instr.Args[0]))
		a.cvtsi2sd(0, rax)
		a.movsdStore(0, c.disp(result))
	case ssa.OpLoadDataAddr:
		addr, ok := c.literalAddrs[instr.Symbol]
		if !ok {
			return errInternal("no address for literal symbol %q", instr.Symbol)
		}
		a.movabs(rax, uint64(addr))
		a.storeLocal(rax, c.disp(result))
	case ssa.OpSlotPtr:
		a.loadR12Disp(rax, int32(instr.IImm*16))
		a.storeLocal(rax, c.disp(result))
	case ssa.OpSlotLen:
		a.loadR12Disp(rax, int32(instr.IImm*16+8))
		a.storeLocal(rax, c.disp(result))
	case ssa.OpCallExternal:
		return c.emitCall(instr, result)
	default:
		return errInternal("unhandled ssa op %v", instr.Op)
	}
	return nil
}

// emitFCmp emits an IEEE-754 ordered compare via ucomisd (quiet on NaN)
// followed by the flag combination each predicate needs (spec §4.4):
// Less/LessEqual/Equal additionally require a "parity clear" (ordered)
// guard ANDed in, since CF=ZF=PF=1 on an unordered pair would otherwise
// satisfy setb/setbe/sete; Greater/GreaterEqual need no guard since an
// unordered pair already fails seta/setae; NotEqual is true if truly
// unequal OR unordered (NaN != anything, including itself), so its
// guard is ORed rather than ANDed in.
func (c *compiler) emitFCmp(cond ssa.FloatCond, l, r, result ssa.Value) {
	a := c.a
	a.movsdLoad(0, c.disp(l))
	a.movsdLoad(1, c.disp(r))
	a.ucomisd(0, 1)
	switch cond {
	case ssa.LessThan:
		a.setByteReg(ccBelow, rax)
		a.setByteReg(ccNotParity, rcx)
		a.andByteReg(rax, rcx)
	case ssa.LessThanOrEqual:
		a.setByteReg(ccBelowEqual, rax)
		a.setByteReg(ccNotParity, rcx)
		a.andByteReg(rax, rcx)
	case ssa.GreaterThan:
		a.setByteReg(ccAbove, rax)
	case ssa.GreaterThanOrEqual:
		a.setByteReg(ccAboveEqual, rax)
	case ssa.Equal:
		a.setByteReg(ccEqual, rax)
		a.setByteReg(ccNotParity, rcx)
		a.andByteReg(rax, rcx)
	case ssa.NotEqual:
		a.setByteReg(ccNotEqual, rax)
		a.setByteReg(ccParity, rcx)
		a.orByteReg(rax, rcx)
	}
	a.movzxByte(rax, rax)
	a.cvtsi2sd(0, rax)
	a.movsdStore(0, c.disp(result))
}

// emitCall classifies each argument as integer- or float-class by its
// declared ArgTypes (System V AMD64: integer args fill rdi../r9 in
// order, float args fill xmm0../xmm7 in order, independent counters),
// loading directly from each argument Value's memory slot into its
// assigned register. A bridge call (symbol prefixed "rt_") additionally
// receives the context handle as its implicit first integer argument.
func (c *compiler) emitCall(instr ssa.Instr, result ssa.Value) error {
	a := c.a
	intIdx, floatIdx := 0, 0
	if isBridgeSymbol(instr.Symbol) {
		a.movRegReg(intArgRegs[0], rbx)
		intIdx = 1
	}
	for i, v := range instr.Args {
		if instr.ArgTypes[i] == ssa.F64 {
			a.movsdLoad(floatArgRegs[floatIdx], c.disp(v))
			floatIdx++
		} else {
			a.loadLocal(intArgRegs[intIdx], c.disp(v))
			intIdx++
		}
	}
	addr, err := resolveSymbolAddr(instr.Symbol)
	if err != nil {
		return err
	}
	a.movabs(r10, uint64(addr))
	a.callReg(r10)
	if instr.HasRet {
		if instr.Type == ssa.I64 {
			a.storeLocal(rax, c.disp(result))
		} else {
			a.movsdStore(0, c.disp(result))
		}
	}
	return nil
}

func (c *compiler) emitTerm(term ssa.Terminator) error {
	a := c.a
	switch term.Kind {
	case ssa.TermJump:
		c.copyArgs(term.Args, c.fn.Blocks[term.Target].Params)
		off := a.jmpRel32()
		c.fixups = append(c.fixups, fixup{off, term.Target})
	case ssa.TermBrif:
		a.loadLocal(rax, c.disp(term.Cond))
		a.testRegReg(rax, rax)
		jz := a.jccRel32(ccEqual)
		c.copyArgs(term.TrueArgs, c.fn.Blocks[term.TrueBlock].Params)
		jmpTrue := a.jmpRel32()
		a.patchRel32(jz, a.offset())
		c.copyArgs(term.FalseArgs, c.fn.Blocks[term.FalseBlock].Params)
		jmpFalse := a.jmpRel32()
		c.fixups = append(c.fixups, fixup{jmpTrue, term.TrueBlock}, fixup{jmpFalse, term.FalseBlock})
	case ssa.TermReturn:
		a.movsdLoad(0, c.disp(term.ReturnValue))
		if c.frameSize > 0 {
			a.addRspImm32(uint32(c.frameSize))
		}
		a.popReg(r12)
		a.popReg(rbx)
		a.popReg(rbp)
		a.ret()
	default:
		return errInternal("unhandled terminator kind %v", term.Kind)
	}
	return nil
}

func (c *compiler) copyArgs(args []ssa.Value, params []ssa.Value) {
	for i, v := range args {
		dst := params[i]
		if c.fn.Type(v) == ssa.F64 {
			c.a.movsdLoad(0, c.disp(v))
			c.a.movsdStore(0, c.disp(dst))
		} else {
			c.a.loadLocal(rax, c.disp(v))
			c.a.storeLocal(rax, c.disp(dst))
		}
	}
}

func isBridgeSymbol(symbol string) bool { return strings.HasPrefix(symbol, "rt_") }

var (
	symbolAddrsOnce sync.Once
	symbolAddrs     map[string]uintptr
)

// resolveSymbolAddr resolves a call target's stable process address,
// built once from the fixed bridge and builtin symbol tables (both
// already cgo-exported, so their addresses are valid the moment the
// process is linked, spec §9).
func resolveSymbolAddr(symbol string) (uintptr, error) {
	symbolAddrsOnce.Do(func() {
		symbolAddrs = make(map[string]uintptr, builtins.Count()+bridge.Count())
		for id := 0; id < builtins.Count(); id++ {
			bid := builtins.ID(id)
			symbolAddrs[bid.Symbol()] = bid.Addr()
		}
		for s := 0; s < bridge.Count(); s++ {
			sym := bridge.Symbol(s)
			symbolAddrs[sym.Name()] = sym.Addr()
		}
	})
	addr, ok := symbolAddrs[symbol]
	if !ok {
		return 0, errInternal("unresolved call target symbol %q", symbol)
	}
	return addr, nil
}
