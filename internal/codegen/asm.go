package codegen

// x86-64 assembler: mnemonic-level byte encoding for the narrow
// instruction set the backend needs (integer register moves, SSE2
// scalar-double arithmetic, comparisons, and calls). Byte-emission
// style (emitByte/emitBytes/emitU32/emitU64, REX-prefix helpers,
// ModRM builders) mirrors std/compiler/x64.go and backend_x64.go.

// General-purpose register numbers (System V AMD64 encoding).
const (
	rax = 0
	rcx = 1
	rdx = 2
	rbx = 3
	rsp = 4
	rbp = 5
	rsi = 6
	rdi = 7
	r8  = 8
	r9  = 9
	r10 = 10
	r12 = 12
)

// intArgRegs is the System V AMD64 integer argument order.
var intArgRegs = [6]int{rdi, rsi, rdx, rcx, r8, r9}

// floatArgRegs is the System V AMD64 xmm argument order.
var floatArgRegs = [8]int{0, 1, 2, 3, 4, 5, 6, 7}

// asm accumulates machine code bytes for one compiled function.
type asm struct {
	code []byte
}

func (a *asm) emitByte(b byte)         { a.code = append(a.code, b) }
func (a *asm) emitBytes(bs ...byte)    { a.code = append(a.code, bs...) }
func (a *asm) offset() int             { return len(a.code) }
func (a *asm) emitU32(v uint32) {
	a.code = append(a.code, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}
func (a *asm) emitU64(v uint64) {
	a.code = append(a.code, byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
func (a *asm) patchU32At(offset int, v uint32) {
	a.code[offset] = byte(v)
	a.code[offset+1] = byte(v >> 8)
	a.code[offset+2] = byte(v >> 16)
	a.code[offset+3] = byte(v >> 24)
}

// modrmRegDisp builds a ModR/M+disp encoding for [rbp + disp] addressing
// (disp is negative for locals below the frame pointer), with reg as
// either a GPR or XMM register number depending on the instruction.
func modrmRegDisp(reg int, disp int32) []byte {
	if disp >= -128 && disp <= 127 {
		return []byte{byte(0x45 | ((reg & 7) << 3)), byte(int8(disp))}
	}
	out := []byte{byte(0x85 | ((reg & 7) << 3))}
	var buf [4]byte
	buf[0], buf[1], buf[2], buf[3] = byte(disp), byte(disp>>8), byte(disp>>16), byte(disp>>24)
	return append(out, buf[:]...)
}

func modrmRR(reg, rm int) byte { return byte(0xc0 | ((reg & 7) << 3) | (rm & 7)) }

// movabs emits `movabs reg, imm64`.
func (a *asm) movabs(reg int, v uint64) {
	rex := byte(0x48)
	if reg >= 8 {
		rex = 0x49
	}
	a.emitByte(rex)
	a.emitByte(byte(0xb8 + (reg & 7)))
	a.emitU64(v)
}

// movRegReg emits `mov dst, src` (64-bit GPRs).
func (a *asm) movRegReg(dst, src int) {
	rex := byte(0x48)
	if src >= 8 {
		rex |= 0x04
	}
	if dst >= 8 {
		rex |= 0x01
	}
	a.emitBytes(rex, 0x89, modrmRR(src, dst))
}

// testRegReg emits `test a, b` (sets ZF iff a&b == 0; used with a==b to
// test a register against zero).
func (a *asm) testRegReg(x, y int) {
	rex := byte(0x48)
	if y >= 8 {
		rex |= 0x04
	}
	if x >= 8 {
		rex |= 0x01
	}
	a.emitBytes(rex, 0x85, modrmRR(y, x))
}

// loadLocal emits `mov reg, [rbp + disp]`.
func (a *asm) loadLocal(reg int, disp int32) {
	rex := byte(0x48)
	if reg >= 8 {
		rex = 0x4c
	}
	a.emitByte(rex)
	a.emitByte(0x8b)
	a.emitBytes(modrmRegDisp(reg, disp)...)
}

// storeLocal emits `mov [rbp + disp], reg`.
func (a *asm) storeLocal(reg int, disp int32) {
	rex := byte(0x48)
	if reg >= 8 {
		rex = 0x4c
	}
	a.emitByte(rex)
	a.emitByte(0x89)
	a.emitBytes(modrmRegDisp(reg, disp)...)
}

// leaLocal emits `lea reg, [rbp + disp]`.
func (a *asm) leaLocal(reg int, disp int32) {
	rex := byte(0x48)
	if reg >= 8 {
		rex = 0x4c
	}
	a.emitByte(rex)
	a.emitByte(0x8d)
	a.emitBytes(modrmRegDisp(reg, disp)...)
}

func (a *asm) pushReg(reg int) {
	if reg >= 8 {
		a.emitBytes(0x41, byte(0x50+(reg&7)))
	} else {
		a.emitByte(byte(0x50 + reg))
	}
}

func (a *asm) popReg(reg int) {
	if reg >= 8 {
		a.emitBytes(0x41, byte(0x58+(reg&7)))
	} else {
		a.emitByte(byte(0x58 + reg))
	}
}

// addRspImm32/subRspImm32 emit `add rsp, imm32` / `sub rsp, imm32`.
func (a *asm) subRspImm32(v uint32) { a.emitBytes(0x48, 0x81, 0xec); a.emitU32(v) }
func (a *asm) addRspImm32(v uint32) { a.emitBytes(0x48, 0x81, 0xc4); a.emitU32(v) }

func (a *asm) ret() { a.emitByte(0xc3) }

// callReg emits `call reg` (indirect near call through a register that
// already holds an absolute address, per the movabs+call pattern used to
// resolve bridge/builtin targets to already-linked process addresses).
func (a *asm) callReg(reg int) {
	if reg >= 8 {
		a.emitByte(0x41)
	}
	a.emitBytes(0xff, byte(0xd0|(reg&7)))
}

// jmpRel32 emits a `jmp rel32` with a placeholder displacement and
// returns the offset of the 4-byte field for later patching.
func (a *asm) jmpRel32() int {
	a.emitByte(0xe9)
	off := a.offset()
	a.emitU32(0)
	return off
}

// jccRel32 condition codes for the two-byte Jcc form (0F 8x).
const (
	ccBelow        = 0x82
	ccAboveEqual   = 0x83
	ccEqual        = 0x84
	ccNotEqual     = 0x85
	ccBelowEqual   = 0x86
	ccAbove        = 0x87
	ccParity       = 0x8a
	ccNotParity    = 0x8b
)

// jccRel32 emits a conditional near jump with a placeholder displacement
// and returns the offset of the 4-byte field.
func (a *asm) jccRel32(cc byte) int {
	a.emitBytes(0x0f, cc)
	off := a.offset()
	a.emitU32(0)
	return off
}

// patchRel32 resolves a previously emitted rel32 field (at fieldOffset)
// to target, given that rel32 is relative to the first byte after the
// 4-byte field.
func (a *asm) patchRel32(fieldOffset, target int) {
	rel := int32(target - (fieldOffset + 4))
	a.patchU32At(fieldOffset, uint32(rel))
}

// === SSE2 scalar-double operations ===
//
// xmm registers 0-7 only; reg/rm fields carry the xmm number directly,
// same ModRM shape as GPR encodings.

func (a *asm) movsdLoad(xmm int, disp int32) {
	a.emitBytes(0xf2, 0x0f, 0x10)
	a.emitBytes(modrmRegDisp(xmm, disp)...)
}

func (a *asm) movsdStore(xmm int, disp int32) {
	a.emitBytes(0xf2, 0x0f, 0x11)
	a.emitBytes(modrmRegDisp(xmm, disp)...)
}

func (a *asm) sseBinop(opcode byte, dst, src int) {
	a.emitBytes(0xf2, 0x0f, opcode, modrmRR(dst, src))
}

func (a *asm) addsd(dst, src int) { a.sseBinop(0x58, dst, src) }
func (a *asm) mulsd(dst, src int) { a.sseBinop(0x59, dst, src) }
func (a *asm) subsd(dst, src int) { a.sseBinop(0x5c, dst, src) }
func (a *asm) divsd(dst, src int) { a.sseBinop(0x5e, dst, src) }

// ucomisd compares two doubles, quiet on NaN (no invalid-operand trap for
// unordered operands unlike comisd), matching an ordered f64 compare's
// semantics without surfacing hardware exceptions (spec §4.4's "no check
// on divisor" posture: runtime faults are not part of this language).
func (a *asm) ucomisd(a_, b int) {
	a.emitBytes(0x66, 0x0f, 0x2e, modrmRR(a_, b))
}

// movqToGPR emits `movq gpr, xmm` (low 64 bits).
func (a *asm) movqToGPR(gpr, xmm int) {
	rex := byte(0x48)
	if xmm >= 8 {
		rex |= 0x04
	}
	if gpr >= 8 {
		rex |= 0x01
	}
	a.emitBytes(0x66, rex, 0x0f, 0x7e, modrmRR(xmm, gpr))
}

// movqFromGPR emits `movq xmm, gpr`.
func (a *asm) movqFromGPR(xmm, gpr int) {
	rex := byte(0x48)
	if xmm >= 8 {
		rex |= 0x04
	}
	if gpr >= 8 {
		rex |= 0x01
	}
	a.emitBytes(0x66, rex, 0x0f, 0x6e, modrmRR(xmm, gpr))
}

// cvttsd2si emits `cvttsd2si gpr, xmm` (truncating double-to-int64).
func (a *asm) cvttsd2si(gpr, xmm int) {
	rex := byte(0x48)
	if gpr >= 8 {
		rex |= 0x04
	}
	if xmm >= 8 {
		rex |= 0x01
	}
	a.emitBytes(0xf2, rex, 0x0f, 0x2c, modrmRR(gpr, xmm))
}

// cvtsi2sd emits `cvtsi2sd xmm, gpr` (int64-to-double).
func (a *asm) cvtsi2sd(xmm, gpr int) {
	rex := byte(0x48)
	if xmm >= 8 {
		rex |= 0x04
	}
	if gpr >= 8 {
		rex |= 0x01
	}
	a.emitBytes(0xf2, rex, 0x0f, 0x2a, modrmRR(xmm, gpr))
}

// xorGPR emits `xor dst, src`.
func (a *asm) xorGPR(dst, src int) {
	rex := byte(0x48)
	if src >= 8 {
		rex |= 0x04
	}
	if dst >= 8 {
		rex |= 0x01
	}
	a.emitBytes(rex, 0x31, modrmRR(src, dst))
}

// setByteReg emits `setCC al`/`setCC cl` for the low-byte form of rax/rcx
// (no REX needed since al/cl don't require it). cc is one of the Jcc
// condition constants above; the SETcc opcode is that value plus 0x10.
func (a *asm) setByteReg(cc byte, reg int) {
	a.emitBytes(0x0f, cc+0x10, byte(0xc0|(reg&7)))
}

// andByteReg emits `and dstLow8, srcLow8`.
func (a *asm) andByteReg(dst, src int) {
	a.emitByte(0x20 | 0x00)
	a.emitByte(byte(0xc0 | ((src & 7) << 3) | (dst & 7)))
}

// orByteReg emits `or dstLow8, srcLow8`.
func (a *asm) orByteReg(dst, src int) {
	a.emitByte(0x08)
	a.emitByte(byte(0xc0 | ((src & 7) << 3) | (dst & 7)))
}

// movzxByte emits `movzx dst32, srcLow8`.
func (a *asm) movzxByte(dst, src int) {
	a.emitBytes(0x0f, 0xb6, byte(0xc0|((dst&7)<<3)|(src&7)))
}

// loadR12Disp/storeR12Disp emit `mov reg, [r12+disp]` / `mov [r12+disp],
// reg`. r12 as a SIB base needs an explicit SIB byte even for simple
// disp-relative addressing (its low 3 bits alias rsp's encoding), unlike
// the rbp-relative locals modrmRegDisp builds; used only for reading the
// slots array's per-slot (pointer, length) records.
func (a *asm) r12Disp(reg int, disp int32) []byte {
	var mod byte
	var db []byte
	if disp >= -128 && disp <= 127 {
		mod = 0x40
		db = []byte{byte(int8(disp))}
	} else {
		mod = 0x80
		var buf [4]byte
		buf[0], buf[1], buf[2], buf[3] = byte(disp), byte(disp>>8), byte(disp>>16), byte(disp>>24)
		db = buf[:]
	}
	out := []byte{byte(mod | ((reg & 7) << 3) | 0x04), 0x24}
	return append(out, db...)
}

func (a *asm) loadR12Disp(reg int, disp int32) {
	rex := byte(0x49)
	if reg >= 8 {
		rex |= 0x04
	}
	a.emitByte(rex)
	a.emitByte(0x8b)
	a.emitBytes(a.r12Disp(reg, disp)...)
}

func (a *asm) storeR12Disp(reg int, disp int32) {
	rex := byte(0x49)
	if reg >= 8 {
		rex |= 0x04
	}
	a.emitByte(rex)
	a.emitByte(0x89)
	a.emitBytes(a.r12Disp(reg, disp)...)
}
