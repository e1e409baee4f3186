package builtins

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestLookupAndArity(t *testing.T) {
	id, ok := Lookup("min_angle")
	if !ok {
		t.Fatal("min_angle not found")
	}
	if id.Arity() != 1 {
		t.Fatalf("min_angle arity = %d, want 1", id.Arity())
	}
	if id.Symbol() != "molang_math_min_angle" {
		t.Fatalf("symbol = %q", id.Symbol())
	}
	if _, ok := Lookup("not_a_builtin"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestSignZeroIsNegative(t *testing.T) {
	id, _ := Lookup("sign")
	if got := id.Call([]float64{0}); got != -1 {
		t.Fatalf("sign(0) = %v, want -1 (compatibility quirk)", got)
	}
	if got := id.Call([]float64{5}); got != 1 {
		t.Fatalf("sign(5) = %v, want 1", got)
	}
	if got := id.Call([]float64{-5}); got != -1 {
		t.Fatalf("sign(-5) = %v, want -1", got)
	}
}

func TestMinAngleWraps(t *testing.T) {
	id, _ := Lookup("min_angle")
	if got := id.Call([]float64{190}); !approxEqual(got, -170) {
		t.Fatalf("min_angle(190) = %v, want -170", got)
	}
	if got := id.Call([]float64{-190}); !approxEqual(got, 170) {
		t.Fatalf("min_angle(-190) = %v, want 170", got)
	}
	if got := id.Call([]float64{45}); !approxEqual(got, 45) {
		t.Fatalf("min_angle(45) = %v, want 45", got)
	}
}

func TestTrigDegrees(t *testing.T) {
	cos, _ := Lookup("cos")
	if got := cos.Call([]float64{0}); !approxEqual(got, 1) {
		t.Fatalf("cos(0) = %v, want 1", got)
	}
	atan2, _ := Lookup("atan2")
	if got := atan2.Call([]float64{1, 1}); !approxEqual(got, 45) {
		t.Fatalf("atan2(1,1) = %v, want 45 degrees", got)
	}
}

func TestLerp(t *testing.T) {
	id, _ := Lookup("lerp")
	if got := id.Call([]float64{0, 10, 0.5}); !approxEqual(got, 5) {
		t.Fatalf("lerp(0,10,0.5) = %v, want 5", got)
	}
}

func TestEasingBoundaries(t *testing.T) {
	for _, name := range []string{
		"ease_in_quad", "ease_out_quad", "ease_in_out_quad",
		"ease_in_cubic", "ease_out_cubic", "ease_in_out_cubic",
		"ease_in_sine", "ease_out_sine", "ease_in_out_sine",
		"ease_in_expo", "ease_out_expo", "ease_in_out_expo",
		"ease_in_circ", "ease_out_circ", "ease_in_out_circ",
		"ease_in_back", "ease_out_back", "ease_in_out_back",
		"ease_in_elastic", "ease_out_elastic", "ease_in_out_elastic",
		"ease_in_bounce", "ease_out_bounce", "ease_in_out_bounce",
	} {
		id, ok := Lookup(name)
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		if got := id.Call([]float64{10, 20, 0}); !approxEqual(got, 10) {
			t.Errorf("%s(10,20,0) = %v, want 10", name, got)
		}
		if got := id.Call([]float64{10, 20, 1}); !approxEqual(got, 20) {
			t.Errorf("%s(10,20,1) = %v, want 20", name, got)
		}
	}
}

func TestRandomRespectsBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		v := random(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("random(3,7) = %v out of bounds", v)
		}
	}
	for i := 0; i < 200; i++ {
		v := randomInteger(1, 6)
		if v < 1 || v > 6 || v != math.Trunc(v) {
			t.Fatalf("random_integer(1,6) = %v invalid", v)
		}
	}
}

func TestRandomSwapsInvertedBounds(t *testing.T) {
	for i := 0; i < 50; i++ {
		v := random(7, 3)
		if v < 3 || v > 7 {
			t.Fatalf("random(7,3) = %v out of bounds", v)
		}
	}
}

func TestDieRollSumsWithinRange(t *testing.T) {
	v := dieRollInteger(3, 1, 1)
	if v != 3 {
		t.Fatalf("die_roll_integer(3,1,1) = %v, want 3", v)
	}
	if dieRoll(0, 1, 6) != 0 {
		t.Fatal("die_roll(0,...) should be 0")
	}
}

func TestPiArity(t *testing.T) {
	id, _ := Lookup("pi")
	if id.Arity() != 0 {
		t.Fatalf("pi arity = %d, want 0", id.Arity())
	}
	if got := id.Call(nil); !approxEqual(got, math.Pi) {
		t.Fatalf("pi() = %v", got)
	}
}
