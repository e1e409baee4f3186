package codegen

/*
#include <stdint.h>

typedef double (*molang_compiled_fn)(uint64_t, uintptr_t);

static double molang_invoke(uintptr_t fn, uint64_t ctx, uintptr_t slots) {
	return ((molang_compiled_fn)fn)(ctx, slots);
}
*/
import "C"

// invoke calls a JIT-compiled function through a cgo trampoline: Go's
// own calling convention differs from the System V AMD64 convention the
// code generator emits, so the call has to cross into C to happen at
// all, the same reason internal/bridge and internal/builtins route their
// call targets through cgo rather than plain Go functions.
func invoke(fn uintptr, ctx uint64, slots uintptr) float64 {
	return float64(C.molang_invoke(C.uintptr_t(fn), C.uint64_t(ctx), C.uintptr_t(slots)))
}
