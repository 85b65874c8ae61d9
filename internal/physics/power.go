package physics

import (
	"math"

	"building_simulator/internal/clock"
	"building_simulator/internal/model"
)

// Power model tuning.
const (
	FanMaxKW     = 15.0
	ChillerMaxKW = 80.0
	ReheatMaxKW  = 2.0
	maxLoad      = 100.0

	plugOccupiedKW   = 50.0
	plugUnoccupiedKW = 10.0

	NominalVoltageV = 480.0
	voltageNoiseV   = 5.0
)

// FanPowerKW applies the fan-cube law to a fan speed percentage.
func FanPowerKW(fanSpeedPct float64) float64 {
	return FanMaxKW * math.Pow(fanSpeedPct/100, 3)
}

// stepMeter aggregates subsystem loads into total demand and integrates
// energy over the tick.
func stepMeter(m *model.Meter, b *model.Building, tk clock.Tick) {
	fanKW := FanPowerKW(b.AHU.FanSpeedPct)

	chillerKW := 0.0
	if b.Chiller.Running {
		chillerKW = ChillerMaxKW * (b.Chiller.CoolingLoad / maxLoad)
	}

	var reheatSum float64
	for i := range b.Zones {
		reheatSum += b.Zones[i].ReheatPct
	}
	reheatKW := reheatSum / 100 * ReheatMaxKW

	plugKW := plugUnoccupiedKW
	if b.Occupied {
		plugKW = plugOccupiedKW
	}

	total := fanKW + chillerKW + reheatKW + plugKW
	m.TotalPowerKW = sanitize("total power", total, m.TotalPowerKW)
	m.TotalEnergyKWh += m.TotalPowerKW * tk.DtSeconds() / 3600
	m.VoltageV = NominalVoltageV + clock.Noise(tk.Index, "meter.voltage", voltageNoiseV)
}
