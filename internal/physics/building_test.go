package physics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building_simulator/internal/clock"
	"building_simulator/internal/model"
)

func mondayAnchor(t *testing.T) clock.Tick {
	t.Helper()
	midnight := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Monday, midnight.Weekday())
	return clock.At(midnight)
}

func TestReplay_Deterministic(t *testing.T) {
	anchor := mondayAnchor(t)
	to := clock.FromIndex(anchor.Index+3000, time.UTC)

	a := Replay(anchor, to)
	b := Replay(anchor, to)
	require.Equal(t, a.State, b.State)
}

func TestStep_ReturnAirIsZoneMean(t *testing.T) {
	anchor := mondayAnchor(t)
	b := NewBaseline(anchor)

	tk := anchor
	for i := 0; i < 100; i++ {
		tk = tk.Next()
		b.Step(tk, Overrides{})

		var sum float64
		for j := range b.State.Zones {
			sum += b.State.Zones[j].TempF
		}
		assert.InDelta(t, sum/model.ZoneCount, b.State.AHU.ReturnTempF, 1e-9)
	}
}

func TestStep_StateStaysBounded(t *testing.T) {
	// A bit over half a simulated day across the unoccupied/occupied
	// transition; every quantity must stay inside its physical range.
	anchor := mondayAnchor(t)
	b := NewBaseline(anchor)

	tk := anchor
	for i := 0; i < 10000; i++ {
		tk = tk.Next()
		b.Step(tk, Overrides{})
		s := &b.State

		for j := range s.Zones {
			z := &s.Zones[j]
			if z.TempF < zoneTempFloorF || z.TempF > zoneTempCeilF {
				t.Fatalf("tick %d: zone %d temp %.2f out of range", i, j, z.TempF)
			}
			if z.DamperPct < damperMinPct || z.DamperPct > damperMaxPct {
				t.Fatalf("tick %d: zone %d damper %.2f out of range", i, j, z.DamperPct)
			}
			if z.ReheatPct < 0 || z.ReheatPct > 100 {
				t.Fatalf("tick %d: zone %d reheat %.2f out of range", i, j, z.ReheatPct)
			}
		}
		if s.AHU.FanSpeedPct < 0 || s.AHU.FanSpeedPct > 100 {
			t.Fatalf("tick %d: fan speed %.2f out of range", i, s.AHU.FanSpeedPct)
		}
		if s.AHU.CoolingValvePct < 0 || s.AHU.CoolingValvePct > 100 {
			t.Fatalf("tick %d: cooling valve %.2f out of range", i, s.AHU.CoolingValvePct)
		}
		if s.Chiller.CoolingLoad < 0 || s.Chiller.CoolingLoad > 100 {
			t.Fatalf("tick %d: cooling load %.2f out of range", i, s.Chiller.CoolingLoad)
		}
		if s.Meter.TotalPowerKW < 0 {
			t.Fatalf("tick %d: negative power %.2f", i, s.Meter.TotalPowerKW)
		}
	}
}

func TestStep_EnergyMonotonic(t *testing.T) {
	anchor := mondayAnchor(t)
	b := NewBaseline(anchor)

	tk := anchor
	prev := b.State.Meter.TotalEnergyKWh
	for i := 0; i < 2000; i++ {
		tk = tk.Next()
		b.Step(tk, Overrides{})
		if b.State.Meter.TotalEnergyKWh < prev {
			t.Fatalf("tick %d: energy decreased %.6f -> %.6f", i, prev, b.State.Meter.TotalEnergyKWh)
		}
		prev = b.State.Meter.TotalEnergyKWh
	}
	assert.Greater(t, prev, 0.0)
}

func TestStep_ZoneSetpointOverrideAndRelinquish(t *testing.T) {
	anchor := mondayAnchor(t)
	b := NewBaseline(anchor)
	tk := anchor

	sp := 65.0
	var ov Overrides
	ov.Zones[2].SetpointF = &sp

	tk = tk.Next()
	b.Step(tk, ov)
	assert.Equal(t, sp, b.State.Zones[2].SetpointF)

	// Relinquished: the next tick reverts to automatic control.
	tk = tk.Next()
	b.Step(tk, Overrides{})
	assert.Equal(t, DefaultZoneSetpointF, b.State.Zones[2].SetpointF)
}

func TestStep_AHUDisableStopsFan(t *testing.T) {
	anchor := mondayAnchor(t)
	b := NewBaseline(anchor)
	tk := anchor

	enabled := false
	var ov Overrides
	ov.AHU.Enabled = &enabled

	tk = tk.Next()
	b.Step(tk, ov)
	assert.False(t, b.State.AHU.Enabled)

	// Enabled state latches once commanded; the fan ramps down to zero.
	for i := 0; i < 40; i++ {
		tk = tk.Next()
		b.Step(tk, Overrides{})
	}
	assert.Zero(t, b.State.AHU.FanSpeedPct)
	assert.False(t, b.State.AHU.FanStatus)
}

func TestStep_MidMorningWeekdayOperation(t *testing.T) {
	// Replay from midnight Monday to 10:00. Two hours into business hours
	// the fan should have ramped to its occupied target (occasional
	// unoccupied draws can pull it a few points down), and outdoor air
	// should sit near the late-morning point on the diurnal curve.
	anchor := mondayAnchor(t)
	at := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	b := Replay(anchor, clock.At(at))

	assert.GreaterOrEqual(t, b.State.AHU.FanSpeedPct, 65.0)
	assert.LessOrEqual(t, b.State.AHU.FanSpeedPct, FanOccupiedPct)

	base := 75 + 15*math.Sin(2*math.Pi*4/24)
	assert.InDelta(t, base, b.State.OutdoorTempF, 2.0)
	assert.True(t, b.State.AHU.FanStatus)
}

func TestNewBaseline_SameAnchorSameState(t *testing.T) {
	anchor := mondayAnchor(t)
	require.Equal(t, NewBaseline(anchor).State, NewBaseline(anchor).State)
}
