package physics

import (
	"building_simulator/internal/clock"
	"building_simulator/internal/model"
)

// Zone tuning.
const (
	DefaultZoneSetpointF = 72.0

	damperMinPct  = 20.0
	damperMaxPct  = 100.0
	damperBasePct = 50.0

	zoneKp          = 10.0  // % damper per °F over setpoint
	zoneKi          = 0.05  // % damper per °F·s of accumulated error
	zoneIntegralCap = 600.0 // anti-windup clamp on the accumulated error

	// MaxZoneAirflowCFM is the design airflow at a wide-open damper.
	MaxZoneAirflowCFM = 3000.0

	reheatDeadbandF = 1.0
	reheatGain      = 40.0 // % valve per °F of shortfall below the deadband

	// Orientation-dependent heat gain in °F/min. North zones sit on the
	// perimeter and pick up solar load.
	gainNorthFPerMin = 0.8
	gainSouthFPerMin = 0.5
	occupiedFactor   = 2.0

	// coolingCoeff converts (airflow, zone-to-supply ΔT) into °F/min of
	// cooling, referenced to 2000 CFM.
	coolingCoeff   = 0.1
	coolingRefCFM  = 2000.0
	zoneTempFloorF = 60.0
	zoneTempCeilF  = 85.0
)

// ZoneOverride carries the effective command overrides for one zone's tick.
type ZoneOverride struct {
	SetpointF *float64
	DamperPct *float64
	ReheatPct *float64
}

// heatGainFPerMin returns the zone's heat gain rate for its orientation and
// occupancy state.
func heatGainFPerMin(orientation model.Orientation, occupied bool) float64 {
	gain := gainSouthFPerMin
	if orientation == model.OrientationNorth {
		gain = gainNorthFPerMin
	}
	if occupied {
		gain *= occupiedFactor
	}
	return gain
}

// stepZone advances one zone by one tick: inner PI damper loop, reheat,
// and the explicit-Euler temperature update against the AHU supply air.
func stepZone(z *model.Zone, tk clock.Tick, supplyTempF float64, ov ZoneOverride) {
	// Automatic control targets the default setpoint; a commanded override
	// replaces it only while the command is in force.
	setpoint := DefaultZoneSetpointF
	if ov.SetpointF != nil {
		setpoint = *ov.SetpointF
	}

	// PI loop actuates on cooling demand: a zone above setpoint opens the
	// damper for more supply air.
	errF := setpoint - z.TempF
	demand := -errF
	z.Integral = clamp(z.Integral+demand*tk.DtSeconds(), -zoneIntegralCap, zoneIntegralCap)

	damper := clamp(damperBasePct+zoneKp*demand+zoneKi*z.Integral, damperMinPct, damperMaxPct)
	if ov.DamperPct != nil {
		damper = clamp(*ov.DamperPct, damperMinPct, damperMaxPct)
	}

	airflow := damper / 100 * MaxZoneAirflowCFM

	// Reheat opens only when the zone has fallen past the deadband, in
	// proportion to the shortfall.
	reheat := 0.0
	if shortfall := setpoint - reheatDeadbandF - z.TempF; shortfall > 0 {
		reheat = clamp(shortfall*reheatGain, 0, 100)
	}
	if ov.ReheatPct != nil {
		reheat = clamp(*ov.ReheatPct, 0, 100)
	}

	gain := heatGainFPerMin(z.Orientation, z.Occupied)
	cooling := (airflow / coolingRefCFM) * (z.TempF - supplyTempF) * coolingCoeff

	dtMin := tk.DtSeconds() / 60
	temp := z.TempF + (gain-cooling)*dtMin

	z.SetpointF = setpoint
	z.DamperPct = damper
	z.AirflowCFM = airflow
	z.ReheatPct = reheat
	z.TempF = clamp(sanitize("zone temp", temp, z.TempF), zoneTempFloorF, zoneTempCeilF)
}
