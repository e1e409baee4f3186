// cgo's //export directive requires a literal top-level function per
// exported C symbol, so each entry of the fixed builtin table (spec §4.2)
// gets its own thin wrapper below, grouped in table order. Each wrapper's
// argument count matches its builtin's arity exactly; the body only
// marshals C doubles to and from the shared Go implementation in
// builtins.go/easing.go/rng.go, giving the code generator a stable,
// individually addressable C symbol per builtin.
package builtins

import "C"

//export molang_math_abs
func molang_math_abs(a C.double) C.double {
	return C.double(Abs.Call([]float64{float64(a)}))
}

//export molang_math_sqrt
func molang_math_sqrt(a C.double) C.double {
	return C.double(Sqrt.Call([]float64{float64(a)}))
}

//export molang_math_floor
func molang_math_floor(a C.double) C.double {
	return C.double(Floor.Call([]float64{float64(a)}))
}

//export molang_math_ceil
func molang_math_ceil(a C.double) C.double {
	return C.double(Ceil.Call([]float64{float64(a)}))
}

//export molang_math_round
func molang_math_round(a C.double) C.double {
	return C.double(Round.Call([]float64{float64(a)}))
}

//export molang_math_trunc
func molang_math_trunc(a C.double) C.double {
	return C.double(Trunc.Call([]float64{float64(a)}))
}

//export molang_math_sign
func molang_math_sign(a C.double) C.double {
	return C.double(Sign.Call([]float64{float64(a)}))
}

//export molang_math_mod
func molang_math_mod(a, b C.double) C.double {
	return C.double(Mod.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_max
func molang_math_max(a, b C.double) C.double {
	return C.double(Max.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_min
func molang_math_min(a, b C.double) C.double {
	return C.double(Min.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_copy_sign
func molang_math_copy_sign(a, b C.double) C.double {
	return C.double(CopySign.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_pow
func molang_math_pow(a, b C.double) C.double {
	return C.double(Pow.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_exp
func molang_math_exp(a C.double) C.double {
	return C.double(Exp.Call([]float64{float64(a)}))
}

//export molang_math_ln
func molang_math_ln(a C.double) C.double {
	return C.double(Ln.Call([]float64{float64(a)}))
}

//export molang_math_sin
func molang_math_sin(a C.double) C.double {
	return C.double(Sin.Call([]float64{float64(a)}))
}

//export molang_math_cos
func molang_math_cos(a C.double) C.double {
	return C.double(Cos.Call([]float64{float64(a)}))
}

//export molang_math_acos
func molang_math_acos(a C.double) C.double {
	return C.double(Acos.Call([]float64{float64(a)}))
}

//export molang_math_asin
func molang_math_asin(a C.double) C.double {
	return C.double(Asin.Call([]float64{float64(a)}))
}

//export molang_math_atan
func molang_math_atan(a C.double) C.double {
	return C.double(Atan.Call([]float64{float64(a)}))
}

//export molang_math_atan2
func molang_math_atan2(a, b C.double) C.double {
	return C.double(Atan2.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_pi
func molang_math_pi() C.double {
	return C.double(Pi.Call([]float64{}))
}

//export molang_math_min_angle
func molang_math_min_angle(a C.double) C.double {
	return C.double(MinAngle.Call([]float64{float64(a)}))
}

//export molang_math_lerp
func molang_math_lerp(a, b, c C.double) C.double {
	return C.double(Lerp.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_inverse_lerp
func molang_math_inverse_lerp(a, b, c C.double) C.double {
	return C.double(InverseLerp.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_lerprotate
func molang_math_lerprotate(a, b, c C.double) C.double {
	return C.double(LerpRotate.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_hermite_blend
func molang_math_hermite_blend(a C.double) C.double {
	return C.double(HermiteBlend.Call([]float64{float64(a)}))
}

//export molang_math_random
func molang_math_random(a, b C.double) C.double {
	return C.double(Random.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_random_integer
func molang_math_random_integer(a, b C.double) C.double {
	return C.double(RandomInteger.Call([]float64{float64(a), float64(b)}))
}

//export molang_math_die_roll
func molang_math_die_roll(a, b, c C.double) C.double {
	return C.double(DieRoll.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_die_roll_integer
func molang_math_die_roll_integer(a, b, c C.double) C.double {
	return C.double(DieRollInteger.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_quad
func molang_math_ease_in_quad(a, b, c C.double) C.double {
	return C.double(EaseInQuad.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_quad
func molang_math_ease_out_quad(a, b, c C.double) C.double {
	return C.double(EaseOutQuad.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_quad
func molang_math_ease_in_out_quad(a, b, c C.double) C.double {
	return C.double(EaseInOutQuad.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_cubic
func molang_math_ease_in_cubic(a, b, c C.double) C.double {
	return C.double(EaseInCubic.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_cubic
func molang_math_ease_out_cubic(a, b, c C.double) C.double {
	return C.double(EaseOutCubic.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_cubic
func molang_math_ease_in_out_cubic(a, b, c C.double) C.double {
	return C.double(EaseInOutCubic.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_quart
func molang_math_ease_in_quart(a, b, c C.double) C.double {
	return C.double(EaseInQuart.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_quart
func molang_math_ease_out_quart(a, b, c C.double) C.double {
	return C.double(EaseOutQuart.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_quart
func molang_math_ease_in_out_quart(a, b, c C.double) C.double {
	return C.double(EaseInOutQuart.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_quint
func molang_math_ease_in_quint(a, b, c C.double) C.double {
	return C.double(EaseInQuint.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_quint
func molang_math_ease_out_quint(a, b, c C.double) C.double {
	return C.double(EaseOutQuint.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_quint
func molang_math_ease_in_out_quint(a, b, c C.double) C.double {
	return C.double(EaseInOutQuint.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_sine
func molang_math_ease_in_sine(a, b, c C.double) C.double {
	return C.double(EaseInSine.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_sine
func molang_math_ease_out_sine(a, b, c C.double) C.double {
	return C.double(EaseOutSine.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_sine
func molang_math_ease_in_out_sine(a, b, c C.double) C.double {
	return C.double(EaseInOutSine.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_expo
func molang_math_ease_in_expo(a, b, c C.double) C.double {
	return C.double(EaseInExpo.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_expo
func molang_math_ease_out_expo(a, b, c C.double) C.double {
	return C.double(EaseOutExpo.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_expo
func molang_math_ease_in_out_expo(a, b, c C.double) C.double {
	return C.double(EaseInOutExpo.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_circ
func molang_math_ease_in_circ(a, b, c C.double) C.double {
	return C.double(EaseInCirc.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_circ
func molang_math_ease_out_circ(a, b, c C.double) C.double {
	return C.double(EaseOutCirc.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_circ
func molang_math_ease_in_out_circ(a, b, c C.double) C.double {
	return C.double(EaseInOutCirc.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_back
func molang_math_ease_in_back(a, b, c C.double) C.double {
	return C.double(EaseInBack.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_back
func molang_math_ease_out_back(a, b, c C.double) C.double {
	return C.double(EaseOutBack.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_back
func molang_math_ease_in_out_back(a, b, c C.double) C.double {
	return C.double(EaseInOutBack.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_elastic
func molang_math_ease_in_elastic(a, b, c C.double) C.double {
	return C.double(EaseInElastic.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_elastic
func molang_math_ease_out_elastic(a, b, c C.double) C.double {
	return C.double(EaseOutElastic.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_elastic
func molang_math_ease_in_out_elastic(a, b, c C.double) C.double {
	return C.double(EaseInOutElastic.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_bounce
func molang_math_ease_in_bounce(a, b, c C.double) C.double {
	return C.double(EaseInBounce.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_out_bounce
func molang_math_ease_out_bounce(a, b, c C.double) C.double {
	return C.double(EaseOutBounce.Call([]float64{float64(a), float64(b), float64(c)}))
}

//export molang_math_ease_in_out_bounce
func molang_math_ease_in_out_bounce(a, b, c C.double) C.double {
	return C.double(EaseInOutBounce.Call([]float64{float64(a), float64(b), float64(c)}))
}

