package model

import "fmt"

type EquipmentType string

const (
	EquipmentAHU     EquipmentType = "ahu"
	EquipmentVAV     EquipmentType = "vav"
	EquipmentChiller EquipmentType = "chiller"
	EquipmentMeter   EquipmentType = "meter"
)

// ZoneCount is the number of VAV-served zones in the building.
const ZoneCount = 6

// Equipment identifies the device a simulator process is responsible for.
// Zone is only meaningful for EquipmentVAV.
type Equipment struct {
	Type EquipmentType
	Zone int
}

// ParseEquipment parses a selector of the form "ahu", "vav0".."vav5",
// "chiller" or "meter".
func ParseEquipment(s string) (Equipment, error) {
	switch s {
	case "ahu":
		return Equipment{Type: EquipmentAHU}, nil
	case "chiller":
		return Equipment{Type: EquipmentChiller}, nil
	case "meter":
		return Equipment{Type: EquipmentMeter}, nil
	case "vav0", "vav1", "vav2", "vav3", "vav4", "vav5":
		return Equipment{Type: EquipmentVAV, Zone: int(s[3] - '0')}, nil
	}
	return Equipment{}, fmt.Errorf("unknown equipment type %q (want ahu, vav0-5, chiller or meter)", s)
}

func (e Equipment) String() string {
	if e.Type == EquipmentVAV {
		return fmt.Sprintf("vav%d", e.Zone)
	}
	return string(e.Type)
}

type Orientation string

const (
	OrientationNorth Orientation = "North"
	OrientationSouth Orientation = "South"
)

// ZoneFloor returns the floor served by zone i (two zones per floor).
func ZoneFloor(i int) int { return i/2 + 1 }

// ZoneOrientation returns the orientation of zone i. Even zones are the
// perimeter (North) zones with higher solar gain.
func ZoneOrientation(i int) Orientation {
	if i%2 == 0 {
		return OrientationNorth
	}
	return OrientationSouth
}

// Zone holds the state of one VAV-served thermal zone.
type Zone struct {
	ID          int
	Floor       int
	Orientation Orientation

	TempF      float64
	SetpointF  float64
	DamperPct  float64
	AirflowCFM float64
	ReheatPct  float64
	Occupied   bool

	// Integral is the zone PI loop's accumulated error term.
	Integral float64
}

// AHU holds the state of the air handling unit.
type AHU struct {
	SupplyTempF     float64
	SupplySetpointF float64
	ReturnTempF     float64
	MixedTempF      float64
	SupplyFlowCFM   float64
	FanSpeedPct     float64
	CoolingValvePct float64
	FanStatus       bool
	Enabled         bool

	// Integral is the supply-air PI loop's accumulated error term.
	Integral float64
}

// Chiller holds the chilled water plant state.
type Chiller struct {
	CHWSupplyTempF float64
	CHWReturnTempF float64
	CoolingLoad    float64
	Running        bool
	Enabled        bool
}

// Meter holds the main electrical meter state.
type Meter struct {
	TotalPowerKW   float64
	TotalEnergyKWh float64
	VoltageV       float64
}

// Building is the unified state of the whole simulated building at one tick.
// Every process derives its own copy deterministically; no process owns it.
type Building struct {
	OutdoorTempF float64
	Occupied     bool

	Zones   [ZoneCount]Zone
	AHU     AHU
	Chiller Chiller
	Meter   Meter
}
