// Package command implements BACnet-style priority arrays for commandable
// points. Each point carries 16 override slots; the lowest occupied slot
// number wins, and an empty array means automatic control.
package command

import (
	"errors"
	"fmt"
	"sync"

	"building_simulator/internal/model"
)

// Slots is the fixed size of every priority array.
const Slots = 16

var (
	ErrUnknownPoint  = errors.New("unknown or non-commandable point")
	ErrPriorityRange = errors.New("priority out of range")
	ErrValueRange    = errors.New("value outside engineering range")
)

// PriorityArray holds the 16 override slots for one point. A nil slot is
// relinquished.
type PriorityArray [Slots]*float64

// Effective returns the value at the lowest occupied priority, or false when
// every slot is relinquished and automatic control applies.
func (pa *PriorityArray) Effective() (float64, bool) {
	for _, v := range pa {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

// Table owns the priority arrays for one process's commandable points.
// Writes are serialized against the tick loop: the engine takes a Snapshot
// under the same lock, so a write is either fully visible to a tick or not
// visible at all.
type Table struct {
	mu     sync.Mutex
	arrays map[string]*PriorityArray
	points map[string]model.Point
}

// NewTable builds a table from the process's point list; only writable
// points become commandable.
func NewTable(points []model.Point) *Table {
	t := &Table{
		arrays: make(map[string]*PriorityArray),
		points: make(map[string]model.Point),
	}
	for _, p := range points {
		if !p.Writable {
			continue
		}
		t.arrays[p.Name] = &PriorityArray{}
		t.points[p.Name] = p
	}
	return t
}

// Write stores value at the given priority for a point. Out-of-range
// priorities or values are rejected outright; the prior state is retained.
func (t *Table) Write(point string, value float64, priority int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pa, ok := t.arrays[point]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPoint, point)
	}
	if priority < 1 || priority > Slots {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrPriorityRange, priority, Slots)
	}
	def := t.points[point]
	if value < def.Min || value > def.Max {
		return fmt.Errorf("%w: %q=%.2f (want %.2f-%.2f)", ErrValueRange, point, value, def.Min, def.Max)
	}

	v := value
	pa[priority-1] = &v
	return nil
}

// Relinquish clears one priority slot of a point.
func (t *Table) Relinquish(point string, priority int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	pa, ok := t.arrays[point]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPoint, point)
	}
	if priority < 1 || priority > Slots {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrPriorityRange, priority, Slots)
	}

	pa[priority-1] = nil
	return nil
}

// Snapshot returns the effective value of every currently commanded point.
// Taken once at the start of each tick, it makes command application atomic
// with respect to the physics.
func (t *Table) Snapshot() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]float64)
	for name, pa := range t.arrays {
		if v, ok := pa.Effective(); ok {
			out[name] = v
		}
	}
	return out
}

// Array returns a copy of a point's priority array for inspection.
func (t *Table) Array(point string) (PriorityArray, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	pa, ok := t.arrays[point]
	if !ok {
		return PriorityArray{}, fmt.Errorf("%w: %q", ErrUnknownPoint, point)
	}
	var out PriorityArray
	for i, v := range pa {
		if v != nil {
			c := *v
			out[i] = &c
		}
	}
	return out, nil
}
