package node

import (
	"math/rand"
	"testing"
	"time"
)

func TestBackoffDelayGrowsAndCaps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	cases := []struct {
		attempt  int
		minFloor time.Duration
		maxCeil  time.Duration
	}{
		{0, 500 * time.Millisecond, 1500 * time.Millisecond},
		{1, 1 * time.Second, 3 * time.Second},
		{2, 2 * time.Second, 6 * time.Second},
		{10, backoffCap / 2, backoffCap + backoffCap/2},
		{100, backoffCap / 2, backoffCap + backoffCap/2},
	}

	for _, c := range cases {
		d := backoffDelay(c.attempt, rng)
		if d < c.minFloor || d > c.maxCeil {
			t.Errorf("attempt %d: delay = %v, want in [%v, %v]", c.attempt, d, c.minFloor, c.maxCeil)
		}
	}
}

func TestBackoffDelayNeverExceedsJitteredCap(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for attempt := 6; attempt < 20; attempt++ {
		d := backoffDelay(attempt, rng)
		if d > backoffCap+backoffCap/2 {
			t.Fatalf("attempt %d: delay = %v exceeds jittered cap", attempt, d)
		}
	}
}
