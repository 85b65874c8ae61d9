// Package schedule derives occupancy from the business-hours calendar.
// Occupancy draws are seeded from the tick index so that independently
// running equipment processes resolve the same occupied state.
package schedule

import (
	"fmt"
	"time"

	"building_simulator/internal/clock"
)

const (
	occupiedProbBusiness = 0.95
	occupiedProbAfter    = 0.05
)

// IsBusinessHours reports whether t falls within Mon-Fri 08:00-18:00.
func IsBusinessHours(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return t.Hour() >= 8 && t.Hour() < 18
}

func occupied(tk clock.Tick, stream string) bool {
	p := occupiedProbAfter
	if IsBusinessHours(tk.Time) {
		p = occupiedProbBusiness
	}
	return clock.Stream(tk.Index, stream).Float64() < p
}

// ZoneOccupied resolves the deterministic occupancy state of one zone at
// the given tick.
func ZoneOccupied(tk clock.Tick, zoneID int) bool {
	return occupied(tk, fmt.Sprintf("schedule.zone%d", zoneID))
}

// BuildingOccupied resolves the building-level occupancy state used for
// fan scheduling and plug/lighting loads.
func BuildingOccupied(tk clock.Tick) bool {
	return occupied(tk, "schedule.building")
}
