package physics

import "building_simulator/internal/model"

// Chiller tuning.
const (
	chwBaseSupplyF       = 44.0
	chwSupplyDropPerLoad = 0.02
	chwSupplyMinF        = 40.0
	chwSupplyMaxF        = 46.0
	chwBaseDeltaF        = 6.0
	chwDeltaPerLoad      = 0.04

	// Idle loop water drifts toward building temperature when the plant
	// is disabled.
	chwIdleTargetF      = 58.0
	chwIdleRate         = 0.01
	chwIdleReturnDeltaF = 2.0

	loadEpsilon = 1.0
)

// ChillerOverride carries the effective command overrides for the chiller.
type ChillerOverride struct {
	Enabled *bool
}

// coolingLoad derives the plant load (0-100) from the AHU valve position and
// the aggregate VAV cooling demand above minimum damper.
func coolingLoad(zones *[model.ZoneCount]model.Zone, valvePct float64) float64 {
	var vavDemand float64
	for i := range zones {
		vavDemand += (zones[i].DamperPct - damperMinPct) / (damperMaxPct - damperMinPct) * 100
	}
	vavDemand /= model.ZoneCount
	return clamp(0.5*valvePct+0.5*vavDemand, 0, 100)
}

// stepChiller updates chilled water temperatures and run status from the
// building cooling load.
func stepChiller(c *model.Chiller, zones *[model.ZoneCount]model.Zone, valvePct float64, ov ChillerOverride) {
	if ov.Enabled != nil {
		c.Enabled = *ov.Enabled
	}

	load := coolingLoad(zones, valvePct)
	c.CoolingLoad = load

	if !c.Enabled {
		c.Running = false
		c.CHWSupplyTempF += (chwIdleTargetF - c.CHWSupplyTempF) * chwIdleRate
		c.CHWReturnTempF = c.CHWSupplyTempF + chwIdleReturnDeltaF
		return
	}

	supply := clamp(chwBaseSupplyF-chwSupplyDropPerLoad*load, chwSupplyMinF, chwSupplyMaxF)
	c.CHWSupplyTempF = sanitize("chw supply temp", supply, c.CHWSupplyTempF)
	c.CHWReturnTempF = c.CHWSupplyTempF + chwBaseDeltaF + chwDeltaPerLoad*load
	c.Running = load > loadEpsilon
}
