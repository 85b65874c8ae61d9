// Package points is the state projector: it maps the unified building state
// onto the named point subset owned by one equipment process, attaching
// engineering units, writable flags and command routing. No physics happens
// here.
package points

import (
	"fmt"

	"building_simulator/internal/model"
	"building_simulator/internal/physics"
)

// spec ties one point definition to its state accessor and, for writable
// points, to the override slot its commands feed.
type spec struct {
	def   model.Point
	read  func(b *model.Building) float64
	apply func(ov *physics.Overrides, v float64)
}

func boolVal(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func boolPtr(v float64) *bool {
	b := v > 0.5
	return &b
}

func floatPtr(v float64) *float64 { return &v }

func ahuSpecs(instance int) []spec {
	name := func(suffix string) string { return fmt.Sprintf("AHU-%d-%s", instance, suffix) }
	return []spec{
		{
			def:  model.Point{Name: name("Supply-Air-Temp"), Unit: model.UnitFahrenheit},
			read: func(b *model.Building) float64 { return b.AHU.SupplyTempF },
		},
		{
			def:  model.Point{Name: name("Return-Air-Temp"), Unit: model.UnitFahrenheit},
			read: func(b *model.Building) float64 { return b.AHU.ReturnTempF },
		},
		{
			def:  model.Point{Name: name("Mixed-Air-Temp"), Unit: model.UnitFahrenheit},
			read: func(b *model.Building) float64 { return b.AHU.MixedTempF },
		},
		{
			def:  model.Point{Name: name("Supply-Air-Flow"), Unit: model.UnitCFM},
			read: func(b *model.Building) float64 { return b.AHU.SupplyFlowCFM },
		},
		{
			def:   model.Point{Name: name("Supply-Air-Temp-SP"), Unit: model.UnitFahrenheit, Writable: true, Min: 45, Max: 65},
			read:  func(b *model.Building) float64 { return b.AHU.SupplySetpointF },
			apply: func(ov *physics.Overrides, v float64) { ov.AHU.SupplySetpointF = floatPtr(v) },
		},
		{
			def:   model.Point{Name: name("Fan-Speed-Cmd"), Unit: model.UnitPercent, Writable: true, Min: 0, Max: 100},
			read:  func(b *model.Building) float64 { return b.AHU.FanSpeedPct },
			apply: func(ov *physics.Overrides, v float64) { ov.AHU.FanSpeedPct = floatPtr(v) },
		},
		{
			def:   model.Point{Name: name("Cooling-Valve"), Unit: model.UnitPercent, Writable: true, Min: 0, Max: 100},
			read:  func(b *model.Building) float64 { return b.AHU.CoolingValvePct },
			apply: func(ov *physics.Overrides, v float64) { ov.AHU.CoolingValvePct = floatPtr(v) },
		},
		{
			def:  model.Point{Name: name("Fan-Status"), Binary: true},
			read: func(b *model.Building) float64 { return boolVal(b.AHU.FanStatus) },
		},
		{
			def:   model.Point{Name: name("Enable"), Binary: true, Writable: true, Min: 0, Max: 1},
			read:  func(b *model.Building) float64 { return boolVal(b.AHU.Enabled) },
			apply: func(ov *physics.Overrides, v float64) { ov.AHU.Enabled = boolPtr(v) },
		},
	}
}

func vavSpecs(zone int) []spec {
	prefix := fmt.Sprintf("Floor%d-%s", model.ZoneFloor(zone), model.ZoneOrientation(zone))
	name := func(suffix string) string { return prefix + "-" + suffix }
	return []spec{
		{
			def:  model.Point{Name: name("Zone-Temp"), Unit: model.UnitFahrenheit},
			read: func(b *model.Building) float64 { return b.Zones[zone].TempF },
		},
		{
			def:   model.Point{Name: name("Zone-Temp-SP"), Unit: model.UnitFahrenheit, Writable: true, Min: 55, Max: 85},
			read:  func(b *model.Building) float64 { return b.Zones[zone].SetpointF },
			apply: func(ov *physics.Overrides, v float64) { ov.Zones[zone].SetpointF = floatPtr(v) },
		},
		{
			def:   model.Point{Name: name("Damper-Pos"), Unit: model.UnitPercent, Writable: true, Min: 20, Max: 100},
			read:  func(b *model.Building) float64 { return b.Zones[zone].DamperPct },
			apply: func(ov *physics.Overrides, v float64) { ov.Zones[zone].DamperPct = floatPtr(v) },
		},
		{
			def:  model.Point{Name: name("Airflow"), Unit: model.UnitCFM},
			read: func(b *model.Building) float64 { return b.Zones[zone].AirflowCFM },
		},
		{
			def:   model.Point{Name: name("Reheat-Valve"), Unit: model.UnitPercent, Writable: true, Min: 0, Max: 100},
			read:  func(b *model.Building) float64 { return b.Zones[zone].ReheatPct },
			apply: func(ov *physics.Overrides, v float64) { ov.Zones[zone].ReheatPct = floatPtr(v) },
		},
		{
			def:  model.Point{Name: name("Occupancy"), Binary: true},
			read: func(b *model.Building) float64 { return boolVal(b.Zones[zone].Occupied) },
		},
	}
}

func chillerSpecs(instance int) []spec {
	name := func(suffix string) string { return fmt.Sprintf("Chiller-%d-%s", instance, suffix) }
	return []spec{
		{
			def:  model.Point{Name: name("CHW-Supply-Temp"), Unit: model.UnitFahrenheit},
			read: func(b *model.Building) float64 { return b.Chiller.CHWSupplyTempF },
		},
		{
			def:  model.Point{Name: name("CHW-Return-Temp"), Unit: model.UnitFahrenheit},
			read: func(b *model.Building) float64 { return b.Chiller.CHWReturnTempF },
		},
		{
			def:  model.Point{Name: name("Status"), Binary: true},
			read: func(b *model.Building) float64 { return boolVal(b.Chiller.Running) },
		},
		{
			def:   model.Point{Name: name("Enable"), Binary: true, Writable: true, Min: 0, Max: 1},
			read:  func(b *model.Building) float64 { return boolVal(b.Chiller.Enabled) },
			apply: func(ov *physics.Overrides, v float64) { ov.Chiller.Enabled = boolPtr(v) },
		},
	}
}

func meterSpecs() []spec {
	return []spec{
		{
			def:  model.Point{Name: "Main-Meter-Total-Power", Unit: model.UnitKilowatts},
			read: func(b *model.Building) float64 { return b.Meter.TotalPowerKW },
		},
		{
			def:  model.Point{Name: "Main-Meter-Total-Energy", Unit: model.UnitKWh},
			read: func(b *model.Building) float64 { return b.Meter.TotalEnergyKWh },
		},
		{
			def:  model.Point{Name: "Main-Meter-Voltage", Unit: model.UnitVolts},
			read: func(b *model.Building) float64 { return b.Meter.VoltageV },
		},
	}
}

func specsFor(eq model.Equipment, instance int) []spec {
	switch eq.Type {
	case model.EquipmentAHU:
		return ahuSpecs(instance)
	case model.EquipmentVAV:
		return vavSpecs(eq.Zone)
	case model.EquipmentChiller:
		return chillerSpecs(instance)
	case model.EquipmentMeter:
		return meterSpecs()
	}
	return nil
}

// Definitions returns the point list for an equipment process without
// values, for building command tables and protocol objects.
func Definitions(eq model.Equipment, instance int) []model.Point {
	specs := specsFor(eq, instance)
	out := make([]model.Point, len(specs))
	for i, s := range specs {
		out[i] = s.def
	}
	return out
}

// Project maps the building state to the equipment's point list with
// current values filled in.
func Project(eq model.Equipment, instance int, b *model.Building) []model.Point {
	specs := specsFor(eq, instance)
	out := make([]model.Point, len(specs))
	for i, s := range specs {
		out[i] = s.def
		out[i].Value = s.read(b)
	}
	return out
}

// OverridesFor routes the effective command values of this process's points
// into the physics override slots for the next tick.
func OverridesFor(eq model.Equipment, instance int, effective map[string]float64) physics.Overrides {
	var ov physics.Overrides
	if len(effective) == 0 {
		return ov
	}
	for _, s := range specsFor(eq, instance) {
		if s.apply == nil {
			continue
		}
		if v, ok := effective[s.def.Name]; ok {
			s.apply(&ov, v)
		}
	}
	return ov
}
