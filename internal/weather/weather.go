// Package weather models outdoor conditions as a diurnal temperature curve
// with bounded, tick-seeded noise.
package weather

import (
	"math"

	"building_simulator/internal/clock"
)

const (
	baseTempF   = 75.0
	dailySwingF = 15.0
	noiseBoundF = 2.0
)

// BaseTempF returns the noiseless outdoor temperature for the given tick:
// a sinusoid peaking mid-afternoon, coolest around 6 AM.
func BaseTempF(tk clock.Tick) float64 {
	t := tk.Time
	hour := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return baseTempF + dailySwingF*math.Sin(2*math.Pi*(hour-6)/24)
}

// OutdoorTempF returns the outdoor temperature for the given tick, including
// noise bounded to ±2 °F. The noise is seeded from the tick index, so any
// process evaluating the same tick gets the same value.
func OutdoorTempF(tk clock.Tick) float64 {
	return BaseTempF(tk) + clock.Noise(tk.Index, "weather.outdoor", noiseBoundF)
}
