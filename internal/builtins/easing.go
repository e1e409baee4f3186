package builtins

import "math"

// Every easing_* builtin is start + (end-start)*factor(t); these functions
// compute the bare factor and are wrapped by easing() in builtins.go.

func easeInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func easeOutCubic(t float64) float64 {
	t1 := t - 1
	return t1*t1*t1 + 1
}

func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	t1 := 2*t - 2
	return 1 + t1*t1*t1/2
}

func easeOutQuart(t float64) float64 {
	t1 := t - 1
	return 1 - t1*t1*t1*t1
}

func easeInOutQuart(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	t1 := t - 1
	return 1 - 8*t1*t1*t1*t1
}

func easeOutQuint(t float64) float64 {
	t1 := t - 1
	return 1 + t1*t1*t1*t1*t1
}

func easeInOutQuint(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	t1 := 2*t - 2
	return 1 + t1*t1*t1*t1*t1/2
}

func easeInSine(t float64) float64 {
	return 1 - math.Cos(t*math.Pi/2)
}

func easeOutSine(t float64) float64 {
	return math.Sin(t * math.Pi / 2)
}

func easeInOutSine(t float64) float64 {
	return (1 - math.Cos(t*math.Pi)) / 2
}

func easeInExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

func easeOutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}

func easeInOutExpo(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return math.Pow(2, 20*t-10) / 2
	default:
		return (2 - math.Pow(2, -20*t+10)) / 2
	}
}

func easeInCirc(t float64) float64 {
	return 1 - math.Sqrt(1-t*t)
}

func easeOutCirc(t float64) float64 {
	return math.Sqrt(1 - (t-1)*(t-1))
}

func easeInOutCirc(t float64) float64 {
	if t < 0.5 {
		return (1 - math.Sqrt(1-4*t*t)) / 2
	}
	v := -2*t + 2
	return (math.Sqrt(1-v*v) + 1) / 2
}

const (
	backC1 = 1.70158
	backC3 = backC1 + 1
	backC2 = backC1 * 1.525
)

func easeInBack(t float64) float64 {
	return backC3*t*t*t - backC1*t*t
}

func easeOutBack(t float64) float64 {
	t1 := t - 1
	return 1 + backC3*t1*t1*t1 + backC1*t1*t1
}

func easeInOutBack(t float64) float64 {
	if t < 0.5 {
		return ((2 * t) * (2 * t) * ((backC2+1)*2*t - backC2)) / 2
	}
	t1 := 2*t - 2
	return (t1*t1*((backC2+1)*t1+backC2) + 2) / 2
}

const elasticC4 = (2 * math.Pi) / 3
const elasticC5 = (2 * math.Pi) / 4.5

func easeInElastic(t float64) float64 {
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return -math.Pow(2, 10*t-10) * math.Sin((t*10-10.75)*elasticC4)
	}
}

func easeOutElastic(t float64) float64 {
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	default:
		return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*elasticC4) + 1
	}
}

func easeInOutElastic(t float64) float64 {
	switch {
	case t == 0:
		return 0
	case t == 1:
		return 1
	case t < 0.5:
		return -math.Pow(2, 20*t-10) * math.Sin((20*t-11.125)*elasticC5) / 2
	default:
		return math.Pow(2, -20*t+10)*math.Sin((20*t-11.125)*elasticC5)/2 + 1
	}
}

const (
	bounceN1 = 7.5625
	bounceD1 = 2.75
)

// bounceOut is the raw easeOutBounce curve; easeIn/easeInOut bounce are
// defined in terms of it (original_source/src/builtins.rs's bounce_out).
func bounceOut(t float64) float64 {
	switch {
	case t < 1/bounceD1:
		return bounceN1 * t * t
	case t < 2/bounceD1:
		t1 := t - 1.5/bounceD1
		return bounceN1*t1*t1 + 0.75
	case t < 2.5/bounceD1:
		t1 := t - 2.25/bounceD1
		return bounceN1*t1*t1 + 0.9375
	default:
		t1 := t - 2.625/bounceD1
		return bounceN1*t1*t1 + 0.984375
	}
}

func easeInBounce(t float64) float64  { return 1 - bounceOut(1-t) }
func easeOutBounce(t float64) float64 { return bounceOut(t) }

func easeInOutBounce(t float64) float64 {
	if t < 0.5 {
		return (1 - bounceOut(1-2*t)) / 2
	}
	return (1 + bounceOut(2*t-1)) / 2
}
