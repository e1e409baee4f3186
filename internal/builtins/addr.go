package builtins

/*
#include "_cgo_export.h"
#include <stdint.h>

static uintptr_t molang_builtin_addr(int id) {
	switch (id) {
	case 0: return (uintptr_t)molang_math_abs;
	case 1: return (uintptr_t)molang_math_sqrt;
	case 2: return (uintptr_t)molang_math_floor;
	case 3: return (uintptr_t)molang_math_ceil;
	case 4: return (uintptr_t)molang_math_round;
	case 5: return (uintptr_t)molang_math_trunc;
	case 6: return (uintptr_t)molang_math_sign;
	case 7: return (uintptr_t)molang_math_mod;
	case 8: return (uintptr_t)molang_math_max;
	case 9: return (uintptr_t)molang_math_min;
	case 10: return (uintptr_t)molang_math_copy_sign;
	case 11: return (uintptr_t)molang_math_pow;
	case 12: return (uintptr_t)molang_math_exp;
	case 13: return (uintptr_t)molang_math_ln;
	case 14: return (uintptr_t)molang_math_sin;
	case 15: return (uintptr_t)molang_math_cos;
	case 16: return (uintptr_t)molang_math_acos;
	case 17: return (uintptr_t)molang_math_asin;
	case 18: return (uintptr_t)molang_math_atan;
	case 19: return (uintptr_t)molang_math_atan2;
	case 20: return (uintptr_t)molang_math_pi;
	case 21: return (uintptr_t)molang_math_min_angle;
	case 22: return (uintptr_t)molang_math_lerp;
	case 23: return (uintptr_t)molang_math_inverse_lerp;
	case 24: return (uintptr_t)molang_math_lerprotate;
	case 25: return (uintptr_t)molang_math_hermite_blend;
	case 26: return (uintptr_t)molang_math_random;
	case 27: return (uintptr_t)molang_math_random_integer;
	case 28: return (uintptr_t)molang_math_die_roll;
	case 29: return (uintptr_t)molang_math_die_roll_integer;
	case 30: return (uintptr_t)molang_math_ease_in_quad;
	case 31: return (uintptr_t)molang_math_ease_out_quad;
	case 32: return (uintptr_t)molang_math_ease_in_out_quad;
	case 33: return (uintptr_t)molang_math_ease_in_cubic;
	case 34: return (uintptr_t)molang_math_ease_out_cubic;
	case 35: return (uintptr_t)molang_math_ease_in_out_cubic;
	case 36: return (uintptr_t)molang_math_ease_in_quart;
	case 37: return (uintptr_t)molang_math_ease_out_quart;
	case 38: return (uintptr_t)molang_math_ease_in_out_quart;
	case 39: return (uintptr_t)molang_math_ease_in_quint;
	case 40: return (uintptr_t)molang_math_ease_out_quint;
	case 41: return (uintptr_t)molang_math_ease_in_out_quint;
	case 42: return (uintptr_t)molang_math_ease_in_sine;
	case 43: return (uintptr_t)molang_math_ease_out_sine;
	case 44: return (uintptr_t)molang_math_ease_in_out_sine;
	case 45: return (uintptr_t)molang_math_ease_in_expo;
	case 46: return (uintptr_t)molang_math_ease_out_expo;
	case 47: return (uintptr_t)molang_math_ease_in_out_expo;
	case 48: return (uintptr_t)molang_math_ease_in_circ;
	case 49: return (uintptr_t)molang_math_ease_out_circ;
	case 50: return (uintptr_t)molang_math_ease_in_out_circ;
	case 51: return (uintptr_t)molang_math_ease_in_back;
	case 52: return (uintptr_t)molang_math_ease_out_back;
	case 53: return (uintptr_t)molang_math_ease_in_out_back;
	case 54: return (uintptr_t)molang_math_ease_in_elastic;
	case 55: return (uintptr_t)molang_math_ease_out_elastic;
	case 56: return (uintptr_t)molang_math_ease_in_out_elastic;
	case 57: return (uintptr_t)molang_math_ease_in_bounce;
	case 58: return (uintptr_t)molang_math_ease_out_bounce;
	case 59: return (uintptr_t)molang_math_ease_in_out_bounce;
	default: return 0;
	}
}
*/
import "C"

// Addr returns the absolute process address of id's C-callable symbol,
// resolved once per compilation by the code generator and embedded as a
// movabs+call target (the same "pin a stable symbol, hand its address to
// the code generator" technique original_source/src/jit.rs uses via
// cranelift's JITBuilder::symbol, reproduced here with cgo).
func (id ID) Addr() uintptr {
	return uintptr(C.molang_builtin_addr(C.int(id)))
}
