// Package clock maps wall-clock time onto the simulation tick grid and
// provides the time-seeded random streams that keep independently running
// processes numerically consistent.
package clock

import (
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// TickInterval is the nominal simulation step. Integration always uses this
// value even when the wall clock stalls or jumps: the tick grid is absolute,
// so a late process catches up tick by tick instead of integrating one
// oversized step.
const TickInterval = 5 * time.Second

// Tick is one cell of the absolute 5-second grid anchored at the Unix epoch.
type Tick struct {
	Index int64
	Time  time.Time
	Dt    time.Duration
}

// At returns the tick containing the given instant.
func At(t time.Time) Tick {
	idx := t.Unix() / int64(TickInterval/time.Second)
	return fromIndex(idx, t.Location())
}

// FromIndex returns the tick with the given index.
func FromIndex(idx int64, loc *time.Location) Tick {
	return fromIndex(idx, loc)
}

func fromIndex(idx int64, loc *time.Location) Tick {
	sec := idx * int64(TickInterval/time.Second)
	return Tick{
		Index: idx,
		Time:  time.Unix(sec, 0).In(loc),
		Dt:    TickInterval,
	}
}

// Next returns the following tick.
func (t Tick) Next() Tick {
	return fromIndex(t.Index+1, t.Time.Location())
}

// DtSeconds returns the integration step in seconds.
func (t Tick) DtSeconds() float64 { return t.Dt.Seconds() }

// DayAnchor returns the tick at the most recent midnight in loc at or before
// t. It is the shared baseline from which every process replays state.
func DayAnchor(t time.Time, loc *time.Location) Tick {
	lt := t.In(loc)
	midnight := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	return At(midnight)
}

const seedMix = 0x9e3779b97f4a7c15 // golden-ratio increment, decorrelates adjacent ticks

// Stream returns a pseudo-random stream seeded purely by the tick index and
// a stream name. Two processes evaluating the same (tick, name) pair draw
// bit-identical sequences, which is what lets them agree on every stochastic
// term without talking to each other.
func Stream(index int64, name string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewPCG(uint64(index)*seedMix, h.Sum64()))
}

// Noise draws a single value uniformly from [-bound, bound] for the given
// tick and stream name.
func Noise(index int64, name string, bound float64) float64 {
	return (Stream(index, name).Float64()*2 - 1) * bound
}
