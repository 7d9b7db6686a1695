package node

import (
	"math/rand"
	"time"
)

// backoffBase and backoffCap are spec.md §4.5's exact constants: "wait
// min(base * 2^attempt, cap)... implementers MUST implement it even though
// the source leaves it out." There is no original_source file to ground
// this on (the spec calls it out as a gap the source never filled), so
// this is a from-scratch implementation of the prose formula.
const (
	backoffBase = 1 * time.Second
	backoffCap  = 60 * time.Second
)

// backoffDelay computes min(base*2^attempt, cap), jittered uniformly in
// [0.5, 1.5), per spec.md §4.5.
func backoffDelay(attempt int, rng *rand.Rand) time.Duration {
	d := backoffBase
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= backoffCap {
			d = backoffCap
			break
		}
	}

	jitter := 0.5 + rng.Float64()
	return time.Duration(float64(d) * jitter)
}
