// Package builtins implements Molang's fixed math.* function table (spec
// §4.2): a closed enumeration of pure numeric functions with stable
// external symbol names the code generator declares as call targets.
//
// Semantics follow original_source/src/builtins.rs (vini2003/molang, the
// Rust/cranelift implementation this module's specification was
// distilled from) wherever spec.md leaves a constant or branch order
// implicit.
package builtins

import "math"

// ID identifies one builtin by its source token math.<name>.
type ID int

const (
	Abs ID = iota
	Sqrt
	Floor
	Ceil
	Round
	Trunc
	Sign
	Mod
	Max
	Min
	CopySign
	Pow
	Exp
	Ln
	Sin
	Cos
	Acos
	Asin
	Atan
	Atan2
	Pi
	MinAngle
	Lerp
	InverseLerp
	LerpRotate
	HermiteBlend
	Random
	RandomInteger
	DieRoll
	DieRollInteger
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseInCubic
	EaseOutCubic
	EaseInOutCubic
	EaseInQuart
	EaseOutQuart
	EaseInOutQuart
	EaseInQuint
	EaseOutQuint
	EaseInOutQuint
	EaseInSine
	EaseOutSine
	EaseInOutSine
	EaseInExpo
	EaseOutExpo
	EaseInOutExpo
	EaseInCirc
	EaseOutCirc
	EaseInOutCirc
	EaseInBack
	EaseOutBack
	EaseInOutBack
	EaseInElastic
	EaseOutElastic
	EaseInOutElastic
	EaseInBounce
	EaseOutBounce
	EaseInOutBounce

	numBuiltins
)

// Entry describes one builtin's calling contract.
type Entry struct {
	Name   string // source token after "math."
	Arity  int
	Symbol string // stable external symbol the code generator imports
	Fn     func(args []float64) float64
}

// table is the closed, fixed enumeration. Index is ID.
var table [numBuiltins]Entry

// byName indexes table by source token for IR lowering (spec §4.3).
var byName map[string]ID

func init() {
	reg := func(id ID, name string, arity int, fn func([]float64) float64) {
		table[id] = Entry{Name: name, Arity: arity, Symbol: "molang_math_" + name, Fn: fn}
	}

	reg(Abs, "abs", 1, unary(math.Abs))
	reg(Sqrt, "sqrt", 1, unary(math.Sqrt))
	reg(Floor, "floor", 1, unary(math.Floor))
	reg(Ceil, "ceil", 1, unary(math.Ceil))
	reg(Round, "round", 1, unary(math.Round))
	reg(Trunc, "trunc", 1, unary(math.Trunc))
	reg(Sign, "sign", 1, unary(sign))
	reg(Mod, "mod", 2, binary(math.Mod))
	reg(Max, "max", 2, binary(math.Max))
	reg(Min, "min", 2, binary(math.Min))
	reg(CopySign, "copy_sign", 2, binary(math.Copysign))
	reg(Pow, "pow", 2, binary(math.Pow))
	reg(Exp, "exp", 1, unary(math.Exp))
	reg(Ln, "ln", 1, unary(math.Log))
	reg(Sin, "sin", 1, unary(math.Sin))
	reg(Cos, "cos", 1, unary(math.Cos))
	reg(Acos, "acos", 1, unary(func(v float64) float64 { return toDegrees(math.Acos(v)) }))
	reg(Asin, "asin", 1, unary(func(v float64) float64 { return toDegrees(math.Asin(v)) }))
	reg(Atan, "atan", 1, unary(func(v float64) float64 { return toDegrees(math.Atan(v)) }))
	reg(Atan2, "atan2", 2, binary(func(y, x float64) float64 { return toDegrees(math.Atan2(y, x)) }))
	reg(Pi, "pi", 0, func(args []float64) float64 { return math.Pi })
	reg(MinAngle, "min_angle", 1, unary(minAngle))
	reg(Lerp, "lerp", 3, ternary(lerp))
	reg(InverseLerp, "inverse_lerp", 3, ternary(inverseLerp))
	reg(LerpRotate, "lerprotate", 3, ternary(lerpRotate))
	reg(HermiteBlend, "hermite_blend", 1, unary(hermiteBlend))
	reg(Random, "random", 2, binary(random))
	reg(RandomInteger, "random_integer", 2, binary(randomInteger))
	reg(DieRoll, "die_roll", 3, ternary(dieRoll))
	reg(DieRollInteger, "die_roll_integer", 3, ternary(dieRollInteger))

	reg(EaseInQuad, "ease_in_quad", 3, easing(func(t float64) float64 { return t * t }))
	reg(EaseOutQuad, "ease_out_quad", 3, easing(func(t float64) float64 { return t * (2 - t) }))
	reg(EaseInOutQuad, "ease_in_out_quad", 3, easing(easeInOutQuad))

	reg(EaseInCubic, "ease_in_cubic", 3, easing(func(t float64) float64 { return t * t * t }))
	reg(EaseOutCubic, "ease_out_cubic", 3, easing(easeOutCubic))
	reg(EaseInOutCubic, "ease_in_out_cubic", 3, easing(easeInOutCubic))

	reg(EaseInQuart, "ease_in_quart", 3, easing(func(t float64) float64 { return t * t * t * t }))
	reg(EaseOutQuart, "ease_out_quart", 3, easing(easeOutQuart))
	reg(EaseInOutQuart, "ease_in_out_quart", 3, easing(easeInOutQuart))

	reg(EaseInQuint, "ease_in_quint", 3, easing(func(t float64) float64 { return t * t * t * t * t }))
	reg(EaseOutQuint, "ease_out_quint", 3, easing(easeOutQuint))
	reg(EaseInOutQuint, "ease_in_out_quint", 3, easing(easeInOutQuint))

	reg(EaseInSine, "ease_in_sine", 3, easing(easeInSine))
	reg(EaseOutSine, "ease_out_sine", 3, easing(easeOutSine))
	reg(EaseInOutSine, "ease_in_out_sine", 3, easing(easeInOutSine))

	reg(EaseInExpo, "ease_in_expo", 3, easing(easeInExpo))
	reg(EaseOutExpo, "ease_out_expo", 3, easing(easeOutExpo))
	reg(EaseInOutExpo, "ease_in_out_expo", 3, easing(easeInOutExpo))

	reg(EaseInCirc, "ease_in_circ", 3, easing(easeInCirc))
	reg(EaseOutCirc, "ease_out_circ", 3, easing(easeOutCirc))
	reg(EaseInOutCirc, "ease_in_out_circ", 3, easing(easeInOutCirc))

	reg(EaseInBack, "ease_in_back", 3, easing(easeInBack))
	reg(EaseOutBack, "ease_out_back", 3, easing(easeOutBack))
	reg(EaseInOutBack, "ease_in_out_back", 3, easing(easeInOutBack))

	reg(EaseInElastic, "ease_in_elastic", 3, easing(easeInElastic))
	reg(EaseOutElastic, "ease_out_elastic", 3, easing(easeOutElastic))
	reg(EaseInOutElastic, "ease_in_out_elastic", 3, easing(easeInOutElastic))

	reg(EaseInBounce, "ease_in_bounce", 3, easing(easeInBounce))
	reg(EaseOutBounce, "ease_out_bounce", 3, easing(easeOutBounce))
	reg(EaseInOutBounce, "ease_in_out_bounce", 3, easing(easeInOutBounce))

	byName = make(map[string]ID, numBuiltins)
	for id := ID(0); id < numBuiltins; id++ {
		byName[table[id].Name] = id
	}
}

// Lookup resolves a source token (the name after "math.") to its ID.
func Lookup(name string) (ID, bool) {
	id, ok := byName[name]
	return id, ok
}

// Count returns the number of builtin table entries, for callers that
// need to enumerate every ID (the code generator's symbol-to-address
// resolver).
func Count() int { return int(numBuiltins) }

// Arity returns the fixed argument count for id.
func (id ID) Arity() int { return table[id].Arity }

// Symbol returns the stable external symbol the code generator imports.
func (id ID) Symbol() string { return table[id].Symbol }

// Name returns the source token.
func (id ID) Name() string { return table[id].Name }

// Call invokes the pure numeric implementation directly (used by tests and
// by the cgo export wrappers in cbuiltins.go).
func (id ID) Call(args []float64) float64 { return table[id].Fn(args) }

func unary(f func(float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0]) }
}

func binary(f func(float64, float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0], args[1]) }
}

func ternary(f func(float64, float64, float64) float64) func([]float64) float64 {
	return func(args []float64) float64 { return f(args[0], args[1], args[2]) }
}

// easing wraps a normalized easing curve f(t) into the (start, end, t) ->
// start + (end-start)*f(t) shape shared by every easing builtin.
func easing(f func(t float64) float64) func([]float64) float64 {
	return ternary(func(start, end, t float64) float64 {
		return start + (end-start)*f(t)
	})
}

func toDegrees(radians float64) float64 { return radians * 180 / math.Pi }

// sign mirrors builtin_math_sign: no zero branch, so sign(0) == -1. This is
// a deliberate compatibility quirk (spec §9 Open Question), not a bug.
func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	return -1
}

// minAngle normalizes to [-180, 180) via a mod-360 fold (spec §4.2,
// original_source/src/builtins.rs's builtin_math_min_angle).
func minAngle(v float64) float64 {
	angle := math.Mod(v, 360)
	if angle >= 180 {
		angle -= 360
	} else if angle < -180 {
		angle += 360
	}
	return angle
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func inverseLerp(a, b, v float64) float64 {
	if math.Abs(b-a) < 2.220446049250313e-16 {
		return 0
	}
	return (v - a) / (b - a)
}

func lerpRotate(a, b, t float64) float64 {
	diff := math.Mod(b-a, 360)
	if diff > 180 {
		diff -= 360
	} else if diff < -180 {
		diff += 360
	}
	return a + diff*t
}

func hermiteBlend(t float64) float64 { return 3*t*t - 2*t*t*t }
