package physics

import (
	"building_simulator/internal/clock"
	"building_simulator/internal/model"
)

// AHU tuning.
const (
	DefaultSupplySetpointF = 55.0

	// Fixed mixing weights: fraction of outdoor air in the mixed stream.
	mixOutdoorWeight = 0.2
	mixReturnWeight  = 1 - mixOutdoorWeight

	// Each percent of cooling valve removes 0.3 °F from the mixed air,
	// 30 °F at a wide-open valve.
	valveCoolingFPerPct = 0.3

	ahuKp          = 2.0
	ahuKi          = 0.01
	ahuIntegralCap = 10000.0

	FanOccupiedPct   = 75.0
	FanUnoccupiedPct = 40.0
	// fanSlewPctPerTick bounds the fan's rate of change so schedule
	// transitions ramp instead of step.
	fanSlewPctPerTick = 2.0

	// Supply flow per percent of fan speed.
	flowPerFanPctCFM = 160.0
)

// AHUOverride carries the effective command overrides for the AHU's tick.
type AHUOverride struct {
	SupplySetpointF *float64
	FanSpeedPct     *float64
	CoolingValvePct *float64
	Enabled         *bool
}

// stepAHU advances the air handler by one tick. The mixed-air calculation
// uses the return temperature carried over from the previous tick; the
// caller refreshes ReturnTempF from the zone mean after the zones update.
func stepAHU(a *model.AHU, tk clock.Tick, outdoorTempF float64, occupied bool, ov AHUOverride) {
	if ov.Enabled != nil {
		a.Enabled = *ov.Enabled
	}

	setpoint := DefaultSupplySetpointF
	if ov.SupplySetpointF != nil {
		setpoint = *ov.SupplySetpointF
	}

	mixed := mixOutdoorWeight*outdoorTempF + mixReturnWeight*a.ReturnTempF

	// Outer PI loop: valve opens as supply air drifts above setpoint.
	valve := 0.0
	if a.Enabled {
		errF := a.SupplyTempF - setpoint
		a.Integral = clamp(a.Integral+errF*tk.DtSeconds(), -ahuIntegralCap, ahuIntegralCap)
		valve = clamp(ahuKp*errF+ahuKi*a.Integral, 0, 100)
	} else {
		a.Integral = 0
	}
	if ov.CoolingValvePct != nil {
		valve = clamp(*ov.CoolingValvePct, 0, 100)
	}

	supply := mixed - valve*valveCoolingFPerPct

	// Fan speed approaches its scheduled target at a bounded rate.
	target := FanUnoccupiedPct
	if occupied {
		target = FanOccupiedPct
	}
	if !a.Enabled {
		target = 0
	}
	fan := a.FanSpeedPct
	switch {
	case fan < target:
		fan = min(fan+fanSlewPctPerTick, target)
	case fan > target:
		fan = max(fan-fanSlewPctPerTick, target)
	}
	if ov.FanSpeedPct != nil {
		fan = clamp(*ov.FanSpeedPct, 0, 100)
	}

	a.SupplySetpointF = setpoint
	a.MixedTempF = sanitize("mixed air temp", mixed, a.MixedTempF)
	a.CoolingValvePct = valve
	a.SupplyTempF = sanitize("supply air temp", supply, a.SupplyTempF)
	a.FanSpeedPct = fan
	a.SupplyFlowCFM = fan * flowPerFanPctCFM
	a.FanStatus = a.Enabled && fan > 0
}
