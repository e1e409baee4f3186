package builtins

import (
	"crypto/rand"
	"encoding/binary"
	"math"
	mrand "math/rand/v2"
	"sync"
)

// rng is the shared generator backing every math.random* builtin, guarded
// by a mutex since compiled code may call into it from more than one
// goroutine-hosted evaluation (mirrors original_source/src/builtins.rs's
// `static RNG: Lazy<Mutex<SmallRng>>`).
var (
	rngMu sync.Mutex
	rng   = mrand.New(mrand.NewPCG(seedWord(), seedWord()))
)

func seedWord() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the OS entropy source is broken; fall
		// back to a fixed seed rather than panicking during package
		// initialization.
		return 0x9e3779b97f4a7c15
	}
	return binary.LittleEndian.Uint64(buf[:])
}

func normalizeLowHigh(low, high float64) (float64, float64) {
	if low > high {
		return high, low
	}
	return low, high
}

func random(low, high float64) float64 {
	low, high = normalizeLowHigh(low, high)
	rngMu.Lock()
	defer rngMu.Unlock()
	if low == high {
		return low
	}
	return low + rng.Float64()*(high-low)
}

func randomInteger(low, high float64) float64 {
	low, high = normalizeLowHigh(math.Floor(low), math.Floor(high))
	lo, hi := int64(low), int64(high)
	rngMu.Lock()
	defer rngMu.Unlock()
	if lo == hi {
		return float64(lo)
	}
	return float64(lo + int64(rng.Int64N(hi-lo+1)))
}

func dieRoll(num, low, high float64) float64 {
	count := int(math.Max(num, 0))
	low, high = normalizeLowHigh(low, high)
	sum := 0.0
	for i := 0; i < count; i++ {
		sum += random(low, high)
	}
	return sum
}

func dieRollInteger(num, low, high float64) float64 {
	count := int(math.Max(num, 0))
	sum := 0.0
	for i := 0; i < count; i++ {
		sum += randomInteger(low, high)
	}
	return sum
}
