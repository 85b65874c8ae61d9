// Package physics implements the deterministic building simulation: zone PI
// loops, the AHU supply-air cascade, the chiller plant and the power model.
// The whole-building state is a pure function of the tick index and the
// command overrides applied along the way, which is what lets independent
// equipment processes agree on shared values without communicating.
package physics

import (
	"building_simulator/internal/clock"
	"building_simulator/internal/model"
	"building_simulator/internal/schedule"
	"building_simulator/internal/weather"
)

// Overrides is the resolved set of command-effective values for one tick.
// Nil fields mean automatic control.
type Overrides struct {
	Zones   [model.ZoneCount]ZoneOverride
	AHU     AHUOverride
	Chiller ChillerOverride
}

// Building evolves the unified building state tick by tick.
type Building struct {
	State model.Building
}

// NewBaseline returns the deterministic building state at an anchor tick.
// Zone temperatures are seeded from the environment model so two processes
// anchoring at the same tick start identically.
func NewBaseline(anchor clock.Tick) *Building {
	b := &Building{}
	s := &b.State

	s.OutdoorTempF = weather.BaseTempF(anchor)
	seedTemp := clamp(s.OutdoorTempF, 68, 78)

	var sum float64
	for i := range s.Zones {
		s.Zones[i] = model.Zone{
			ID:          i,
			Floor:       model.ZoneFloor(i),
			Orientation: model.ZoneOrientation(i),
			TempF:       seedTemp,
			SetpointF:   DefaultZoneSetpointF,
			DamperPct:   damperBasePct,
			AirflowCFM:  damperBasePct / 100 * MaxZoneAirflowCFM,
		}
		sum += seedTemp
	}

	s.AHU = model.AHU{
		SupplyTempF:     DefaultSupplySetpointF,
		SupplySetpointF: DefaultSupplySetpointF,
		ReturnTempF:     sum / model.ZoneCount,
		MixedTempF:      mixOutdoorWeight*s.OutdoorTempF + mixReturnWeight*sum/model.ZoneCount,
		FanSpeedPct:     FanUnoccupiedPct,
		SupplyFlowCFM:   FanUnoccupiedPct * flowPerFanPctCFM,
		Enabled:         true,
		FanStatus:       true,
	}
	s.Chiller = model.Chiller{
		CHWSupplyTempF: chwBaseSupplyF,
		CHWReturnTempF: chwBaseSupplyF + chwBaseDeltaF,
		Enabled:        true,
	}
	s.Meter = model.Meter{VoltageV: NominalVoltageV}
	return b
}

// Replay rebuilds the building state at tick `to` by folding the tick
// function forward from the day anchor with no commands. A full day is at
// most 17,280 steps of plain arithmetic, so a process starting mid-day
// catches up in negligible time.
func Replay(anchor, to clock.Tick) *Building {
	b := NewBaseline(anchor)
	for idx := anchor.Index + 1; idx <= to.Index; idx++ {
		b.Step(clock.FromIndex(idx, to.Time.Location()), Overrides{})
	}
	return b
}

// Step advances the whole building by one tick in dependency order:
// environment and schedule first, then the AHU cascade, the six zones, the
// chiller and finally the power model.
func (b *Building) Step(tk clock.Tick, ov Overrides) {
	s := &b.State

	s.OutdoorTempF = weather.OutdoorTempF(tk)
	s.Occupied = schedule.BuildingOccupied(tk)
	for i := range s.Zones {
		s.Zones[i].Occupied = schedule.ZoneOccupied(tk, i)
	}

	stepAHU(&s.AHU, tk, s.OutdoorTempF, s.Occupied, ov.AHU)

	for i := range s.Zones {
		stepZone(&s.Zones[i], tk, s.AHU.SupplyTempF, ov.Zones[i])
	}

	// Return air is the mean of the zone temperatures at this tick.
	var sum float64
	for i := range s.Zones {
		sum += s.Zones[i].TempF
	}
	s.AHU.ReturnTempF = sum / model.ZoneCount

	stepChiller(&s.Chiller, &s.Zones, s.AHU.CoolingValvePct, ov.Chiller)
	stepMeter(&s.Meter, s, tk)
}
