package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"building_simulator/internal/model"
)

func zonesAtDamper(pct float64) [model.ZoneCount]model.Zone {
	var zones [model.ZoneCount]model.Zone
	for i := range zones {
		zones[i] = newTestZone(i, 72)
		zones[i].DamperPct = pct
	}
	return zones
}

func TestCoolingLoad(t *testing.T) {
	zones := zonesAtDamper(damperMinPct)
	assert.Zero(t, coolingLoad(&zones, 0))

	zones = zonesAtDamper(damperMaxPct)
	assert.Equal(t, 100.0, coolingLoad(&zones, 100))

	// Half from the valve, half from the aggregate damper demand.
	zones = zonesAtDamper(60)
	assert.InDelta(t, 0.5*40+0.5*50, coolingLoad(&zones, 40), 1e-9)
}

func TestStepChiller_IdleAtZeroLoad(t *testing.T) {
	c := model.Chiller{CHWSupplyTempF: chwBaseSupplyF, Enabled: true}
	zones := zonesAtDamper(damperMinPct)
	stepChiller(&c, &zones, 0, ChillerOverride{})

	assert.False(t, c.Running)
	assert.Equal(t, chwBaseSupplyF, c.CHWSupplyTempF)
	assert.Equal(t, chwBaseSupplyF+chwBaseDeltaF, c.CHWReturnTempF)
}

func TestStepChiller_FullLoad(t *testing.T) {
	c := model.Chiller{CHWSupplyTempF: chwBaseSupplyF, Enabled: true}
	zones := zonesAtDamper(damperMaxPct)
	stepChiller(&c, &zones, 100, ChillerOverride{})

	assert.True(t, c.Running)
	assert.Equal(t, 100.0, c.CoolingLoad)
	supply := chwBaseSupplyF - chwSupplyDropPerLoad*100
	assert.Equal(t, supply, c.CHWSupplyTempF)
	assert.Equal(t, supply+chwBaseDeltaF+chwDeltaPerLoad*100, c.CHWReturnTempF)
}

func TestStepChiller_DisabledDriftsWarm(t *testing.T) {
	c := model.Chiller{CHWSupplyTempF: chwBaseSupplyF, Enabled: true}
	zones := zonesAtDamper(damperMaxPct)
	enabled := false
	stepChiller(&c, &zones, 100, ChillerOverride{Enabled: &enabled})

	assert.False(t, c.Running)
	assert.Greater(t, c.CHWSupplyTempF, chwBaseSupplyF)
	assert.Equal(t, c.CHWSupplyTempF+chwIdleReturnDeltaF, c.CHWReturnTempF)

	// Idle water keeps drifting toward the building ambient target.
	for i := 0; i < 2000; i++ {
		stepChiller(&c, &zones, 100, ChillerOverride{})
	}
	assert.InDelta(t, chwIdleTargetF, c.CHWSupplyTempF, 0.01)
}
