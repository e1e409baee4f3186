package codegen

import (
	"runtime"
	"unsafe"

	"j5.nz/molang/internal/bridge"
	"j5.nz/molang/internal/ir"
	"j5.nz/molang/internal/ssa"
	"j5.nz/molang/internal/value"
)

// slotRecord is the runtime-materialized (pointer, length) pair the
// compiled function reads through r12 + slotIdx*16 (spec §4.4's
// "slots_ptr" argument): field order and size here must match
// OpSlotPtr/OpSlotLen's assumed layout exactly.
type slotRecord struct {
	ptr uintptr
	len uint64
}

// CompiledArtifact is one JIT-compiled Molang program or pure expression:
// its executable machine code, the canonical path strings referenced by
// slot index (in first-use order), and any embedded string-literal
// bytes, all owned and kept alive for the artifact's lifetime (spec §3's
// "compiled artifact", §9's pinning discussion).
type CompiledArtifact struct {
	mem       *execMem
	fnAddr    uintptr
	slotNames [][]byte

	literalBufs [][]byte
	litPin      runtime.Pinner

	closed bool
}

// Compile builds an artifact for a full statement program (spec §4.7's
// general compilation path).
func Compile(prog *ir.Program) (*CompiledArtifact, error) {
	fn, slots, lits, err := lowerProgram(prog)
	if err != nil {
		return nil, err
	}
	return build(fn, slots, lits)
}

// CompileExpr builds an artifact for a single pure expression (the
// JIT-single-expression path routed through internal/cache).
func CompileExpr(e ir.Expr) (*CompiledArtifact, error) {
	fn, slots, lits, err := lowerPureExpr(e)
	if err != nil {
		return nil, err
	}
	return build(fn, slots, lits)
}

func build(fn *ssa.Func, slots *slotTable, lits *literalPool) (*CompiledArtifact, error) {
	art := &CompiledArtifact{
		slotNames: make([][]byte, len(slots.strings)),
	}
	for i, s := range slots.strings {
		art.slotNames[i] = []byte(s)
	}

	literalAddrs := make(map[string]uintptr, len(lits.entries))
	art.literalBufs = make([][]byte, len(lits.entries))
	for i, e := range lits.entries {
		buf := append([]byte(nil), e.bytes...)
		art.literalBufs[i] = buf
		if len(buf) == 0 {
			literalAddrs[e.symbol] = 0
			continue
		}
		art.litPin.Pin(&buf[0])
		literalAddrs[e.symbol] = uintptr(unsafe.Pointer(&buf[0]))
	}

	code, err := compileFunc(fn, literalAddrs)
	if err != nil {
		art.litPin.Unpin()
		return nil, err
	}
	mem, err := allocExec(code)
	if err != nil {
		art.litPin.Unpin()
		return nil, err
	}
	art.mem = mem
	art.fnAddr = mem.addr()
	return art, nil
}

// Close releases the artifact's executable memory and unpins its
// embedded literal data. An artifact must not be invoked again after
// Close.
func (a *CompiledArtifact) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.litPin.Unpin()
	return a.mem.free()
}

// Invoke runs the compiled function against ctx: registers ctx under a
// fresh opaque handle in internal/bridge's registry, materializes one
// (pointer, length) record per referenced path in slot order, calls the
// native function, and returns its single f64 result.
func (a *CompiledArtifact) Invoke(ctx *value.Store) float64 {
	handle := bridge.Register(ctx)
	defer bridge.Unregister(handle)

	var pinner runtime.Pinner
	defer pinner.Unpin()

	records := make([]slotRecord, len(a.slotNames))
	for i, name := range a.slotNames {
		if len(name) == 0 {
			continue
		}
		pinner.Pin(&name[0])
		records[i] = slotRecord{ptr: uintptr(unsafe.Pointer(&name[0])), len: uint64(len(name))}
	}
	var slotsPtr uintptr
	if len(records) > 0 {
		pinner.Pin(&records[0])
		slotsPtr = uintptr(unsafe.Pointer(&records[0]))
	}

	return invoke(a.fnAddr, handle, slotsPtr)
}
