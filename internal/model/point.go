package model

// Engineering units used by the point catalog.
const (
	UnitFahrenheit = "°F"
	UnitCFM        = "CFM"
	UnitPercent    = "%"
	UnitKilowatts  = "kW"
	UnitKWh        = "kWh"
	UnitVolts      = "V"
)

// Point is one named value exposed by an equipment process, with the
// metadata an external protocol layer needs to build its objects.
type Point struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit,omitempty"`
	Binary   bool    `json:"binary,omitempty"`
	Writable bool    `json:"writable"`

	// Min and Max bound accepted command writes for writable points.
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}
