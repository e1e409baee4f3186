package molang

import (
	"math"
	"testing"

	"j5.nz/molang/internal/value"
)

func evalOrFatal(t *testing.T, source string, ctx *value.Store) float64 {
	t.Helper()
	if ctx == nil {
		ctx = value.NewStore()
	}
	got, err := Evaluate(source, ctx)
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", source, err)
	}
	return got
}

func TestEvaluateArithmeticAndBuiltins(t *testing.T) {
	got := evalOrFatal(t, "1 + math.cos(0)", nil)
	if math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("got %v, want 2.0", got)
	}
}

func TestEvaluateConditional(t *testing.T) {
	got := evalOrFatal(t, "(1 < 2) ? 5.0 : 10.0", nil)
	if got != 5.0 {
		t.Fatalf("got %v, want 5.0", got)
	}
}

func TestEvaluateNullCoalesce(t *testing.T) {
	got := evalOrFatal(t, "v.missing ?? 3 + 2", nil)
	if got != 5.0 {
		t.Fatalf("got %v, want 5.0", got)
	}
}

func TestEvaluateLogicalOperators(t *testing.T) {
	got := evalOrFatal(t, "!(1-1) || (2>1) && (3==3)", nil)
	if got != 1.0 {
		t.Fatalf("got %v, want 1.0", got)
	}
}

func TestEvaluateMinAngle(t *testing.T) {
	got := evalOrFatal(t, "math.min_angle(190)", nil)
	if math.Abs(got-(-170.0)) > 1e-9 {
		t.Fatalf("got %v, want -170.0", got)
	}
}

func TestEvaluateLoopCap(t *testing.T) {
	ctx := value.NewStore()
	got := evalOrFatal(t, "temp.n = 0; loop(2000, { temp.n = temp.n + 1; }); return temp.n;", ctx)
	if got != 1024.0 {
		t.Fatalf("got %v, want 1024.0 (loop cap)", got)
	}
}

func TestEvaluateLoopBreak(t *testing.T) {
	ctx := value.NewStore()
	got := evalOrFatal(t, "temp.n = 0; loop(100, { temp.n = temp.n + 1; (temp.n == 6) ? break; }); return temp.n;", ctx)
	if got != 6.0 {
		t.Fatalf("got %v, want 6.0", got)
	}
}

func TestEvaluateForEachArraySum(t *testing.T) {
	ctx := value.NewStore()
	ctx.Set(value.NewQualifiedName([]string{"variable", "items"}), value.Array([]value.Value{
		value.Number(1), value.Number(2), value.Number(3), value.Number(4),
	}))
	got := evalOrFatal(t, "temp.sum = 0; for_each(temp.item, variable.items, { temp.sum = temp.sum + temp.item; }); return temp.sum;", ctx)
	if got != 10.0 {
		t.Fatalf("got %v, want 10.0", got)
	}
}

func TestEvaluateStructLiteral(t *testing.T) {
	ctx := value.NewStore()
	got := evalOrFatal(t, "temp.p = {x: 1, y: 2, z: 3}; return temp.p.x + temp.p.y + temp.p.z;", ctx)
	if got != 6.0 {
		t.Fatalf("got %v, want 6.0", got)
	}
}

func TestEvaluateArrayWraparound(t *testing.T) {
	ctx := value.NewStore()
	ctx.Set(value.NewQualifiedName([]string{"variable", "nums"}), value.Array([]value.Value{
		value.Number(10), value.Number(11), value.Number(12),
	}))
	got := evalOrFatal(t, "return variable.nums[-1] + variable.nums[3] + variable.nums[10];", ctx)
	if got != 31.0 {
		t.Fatalf("got %v, want 31.0 (-1 clamps to 0, 3 wraps to 0, 10 wraps to 1)", got)
	}
}

func TestEvaluateStringEquality(t *testing.T) {
	ctx := value.NewStore()
	ctx.Set(value.NewQualifiedName([]string{"variable", "state"}), value.String("idle"))
	got := evalOrFatal(t, `return variable.state == 'idle';`, ctx)
	if got != 1.0 {
		t.Fatalf("got %v, want 1.0", got)
	}
}

func TestEvaluateJITCacheReuse(t *testing.T) {
	ctx1 := value.NewStore()
	ctx1.Set(value.NewQualifiedName([]string{"variable", "x"}), value.Number(4))
	got1 := evalOrFatal(t, "variable.x * 2", ctx1)
	if got1 != 8.0 {
		t.Fatalf("got %v, want 8.0", got1)
	}

	ctx2 := value.NewStore()
	ctx2.Set(value.NewQualifiedName([]string{"variable", "x"}), value.Number(10))
	got2 := evalOrFatal(t, "variable.x * 2", ctx2)
	if got2 != 20.0 {
		t.Fatalf("got %v, want 20.0 (same cached artifact, different ctx)", got2)
	}
}
