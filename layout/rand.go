package layout

import "math/rand/v2"

// Rand is the random source consumed by jitter and ambient placement.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a reproducible source seeded with seed. Use it when a test or
// a screenshot run needs the same garden twice.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// sharedRand forwards to the top-level math/rand/v2 functions.
type sharedRand struct{}

func (sharedRand) Float64() float64 { return rand.Float64() }
func (sharedRand) IntN(n int) int   { return rand.IntN(n) }

// Shared is the process-wide source used wherever a nil Rand is passed.
// There is one logical thread of execution, so it carries no locking of its own.
var Shared Rand = sharedRand{}

func orShared(rng Rand) Rand {
	if rng == nil {
		return Shared
	}
	return rng
}

// Range is a closed [Min, Max] interval used for uniform draws.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Draw returns a uniform value in [Min, Max].
func (r Range) Draw(rng Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + orShared(rng).Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the range, edges included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Jitter perturbs value uniformly within ±variance.
func Jitter(rng Rand, value, variance float64) float64 {
	return value + (orShared(rng).Float64()-0.5)*variance*2
}

// Pick returns a uniform index in [0, n). Returns 0 when n <= 0.
func Pick(rng Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return orShared(rng).IntN(n)
}
