package ssa

import "testing"

func TestSimpleAddReturn(t *testing.T) {
	b := NewBuilder()
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	l := b.FConst(1.0)
	r := b.FConst(2.0)
	sum := b.FAdd(l, r)
	b.Return(sum)

	fn := b.Finalize()
	if len(fn.Blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(fn.Blocks))
	}
	bd := fn.Blocks[entry]
	if len(bd.Instrs) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(bd.Instrs))
	}
	if bd.Term.Kind != TermReturn || bd.Term.ReturnValue != sum {
		t.Fatalf("unexpected terminator: %+v", bd.Term)
	}
	if fn.Type(sum) != F64 {
		t.Fatalf("expected sum to be F64, got %v", fn.Type(sum))
	}
	for i, v := range []Value{l, r, sum} {
		if bd.ResultOf[i] != v {
			t.Fatalf("ResultOf[%d] = %v, want %v", i, bd.ResultOf[i], v)
		}
	}
}

func TestBranchMergeBlockParam(t *testing.T) {
	b := NewBuilder()
	entry := b.CreateBlock()
	trueBlk := b.CreateBlock()
	falseBlk := b.CreateBlock()
	merge := b.CreateBlock()
	result := b.AppendBlockParam(merge, F64)

	b.SwitchToBlock(entry)
	cond := b.FConst(1.0)
	b.Brif(cond, trueBlk, nil, falseBlk, nil)

	b.SwitchToBlock(trueBlk)
	one := b.FConst(1.0)
	b.Jump(merge, []Value{one})

	b.SwitchToBlock(falseBlk)
	zero := b.FConst(0.0)
	b.Jump(merge, []Value{zero})

	b.SwitchToBlock(merge)
	b.Return(result)

	fn := b.Finalize()
	if fn.Blocks[merge].Params[0] != result {
		t.Fatalf("merge block's first param should be result")
	}
	if fn.Blocks[trueBlk].Term.Args[0] != one {
		t.Fatalf("true block should jump with `one`")
	}
	if fn.Blocks[falseBlk].Term.Args[0] != zero {
		t.Fatalf("false block should jump with `zero`")
	}
}

func TestCallExternalVoidProducesNoValue(t *testing.T) {
	b := NewBuilder()
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)

	v := b.FConst(1.0)
	ret := b.CallExternal("rt_set_number", []Value{v, v, v}, []Type{I64, I64, F64}, F64, false)
	if ret != Invalid {
		t.Fatalf("expected Invalid for a void call, got %v", ret)
	}

	got := b.CallExternal("rt_get_number", []Value{v, v}, []Type{I64, I64}, F64, true)
	b.Return(got)

	fn := b.Finalize()
	bd := fn.Blocks[entry]
	// instrs: FConst, void call, value call -> 3 entries in Instrs
	if len(bd.Instrs) != 3 {
		t.Fatalf("expected 3 instructions, got %d", len(bd.Instrs))
	}
	if bd.ResultOf[1] != Invalid {
		t.Fatalf("void call's ResultOf should be Invalid, got %v", bd.ResultOf[1])
	}
	if bd.ResultOf[2] != got {
		t.Fatalf("value call's ResultOf should be %v, got %v", got, bd.ResultOf[2])
	}
}

func TestSlotPtrLen(t *testing.T) {
	b := NewBuilder()
	entry := b.CreateBlock()
	b.SwitchToBlock(entry)
	ptr := b.SlotPtr(2)
	length := b.SlotLen(2)
	b.Return(ptr)

	fn := b.Finalize()
	if fn.Type(ptr) != I64 || fn.Type(length) != I64 {
		t.Fatalf("slot ptr/len should be I64")
	}
	bd := fn.Blocks[entry]
	if bd.Instrs[0].Op != OpSlotPtr || bd.Instrs[0].IImm != 2 {
		t.Fatalf("unexpected slot ptr instr: %+v", bd.Instrs[0])
	}
	if bd.Instrs[1].Op != OpSlotLen || bd.Instrs[1].IImm != 2 {
		t.Fatalf("unexpected slot len instr: %+v", bd.Instrs[1])
	}
}

func TestSealBlockPanicsOnDoubleSeal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on double seal")
		}
	}()
	b := NewBuilder()
	blk := b.CreateBlock()
	b.SealBlock(blk)
	b.SealBlock(blk)
}
