package physics

import (
	"log"
	"math"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// sanitize guards an integration result against non-finite intermediates.
// A NaN or Inf keeps the previous value and is logged as a recoverable
// anomaly rather than propagated into the state.
func sanitize(name string, v, prev float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		log.Printf("physics: non-finite %s, keeping previous value %.2f", name, prev)
		return prev
	}
	return v
}
