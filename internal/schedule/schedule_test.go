package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"building_simulator/internal/clock"
)

func TestIsBusinessHours(t *testing.T) {
	monday := func(hour int) time.Time {
		return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
	}

	assert.False(t, IsBusinessHours(monday(7)))
	assert.True(t, IsBusinessHours(monday(8)))
	assert.True(t, IsBusinessHours(monday(17)))
	assert.False(t, IsBusinessHours(monday(18)))

	saturday := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	assert.False(t, IsBusinessHours(saturday))
	sunday := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)
	assert.False(t, IsBusinessHours(sunday))
}

func TestZoneOccupied_Deterministic(t *testing.T) {
	tk := clock.At(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
	for zone := 0; zone < 6; zone++ {
		assert.Equal(t, ZoneOccupied(tk, zone), ZoneOccupied(tk, zone))
	}
}

func TestZoneOccupied_BusinessHoursProbability(t *testing.T) {
	// Monday 10:00, 2000 consecutive ticks; expect ~95% occupied.
	start := clock.At(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
	occupied := 0
	total := 2000
	tk := start
	for i := 0; i < total; i++ {
		if ZoneOccupied(tk, 0) {
			occupied++
		}
		tk = tk.Next()
	}
	ratio := float64(occupied) / float64(total)
	assert.Greater(t, ratio, 0.92)
	assert.Less(t, ratio, 0.98)
}

func TestZoneOccupied_AfterHoursProbability(t *testing.T) {
	// Monday 22:00; expect ~5% occupied.
	start := clock.At(time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC))
	occupied := 0
	total := 2000
	tk := start
	for i := 0; i < total; i++ {
		if ZoneOccupied(tk, 3) {
			occupied++
		}
		tk = tk.Next()
	}
	ratio := float64(occupied) / float64(total)
	assert.Less(t, ratio, 0.09)
}

func TestBuildingOccupied_Deterministic(t *testing.T) {
	tk := clock.At(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, BuildingOccupied(tk), BuildingOccupied(tk))
}

func TestZoneDrawsIndependentOfBuilding(t *testing.T) {
	// Zone and building streams must differ for at least some ticks.
	start := clock.At(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	differs := false
	tk := start
	for i := 0; i < 500; i++ {
		if ZoneOccupied(tk, 0) != BuildingOccupied(tk) {
			differs = true
			break
		}
		tk = tk.Next()
	}
	assert.True(t, differs)
}
