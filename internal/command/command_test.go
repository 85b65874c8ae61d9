package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building_simulator/internal/model"
)

func newTestTable() *Table {
	return NewTable([]model.Point{
		{Name: "Zone-Temp-SP", Writable: true, Min: 55, Max: 85},
		{Name: "Damper-Pos", Writable: true, Min: 20, Max: 100},
		{Name: "Zone-Temp"},
	})
}

func TestWrite_LowestPriorityWins(t *testing.T) {
	tbl := newTestTable()

	require.NoError(t, tbl.Write("Zone-Temp-SP", 68, 8))
	assert.Equal(t, map[string]float64{"Zone-Temp-SP": 68}, tbl.Snapshot())

	// Priority 1 outranks 8.
	require.NoError(t, tbl.Write("Zone-Temp-SP", 60, 1))
	assert.Equal(t, map[string]float64{"Zone-Temp-SP": 60}, tbl.Snapshot())
}

func TestRelinquish_FallsBackThroughSlots(t *testing.T) {
	tbl := newTestTable()
	require.NoError(t, tbl.Write("Zone-Temp-SP", 68, 8))
	require.NoError(t, tbl.Write("Zone-Temp-SP", 60, 1))

	require.NoError(t, tbl.Relinquish("Zone-Temp-SP", 1))
	assert.Equal(t, map[string]float64{"Zone-Temp-SP": 68}, tbl.Snapshot())

	// Clearing the last slot returns the point to automatic control.
	require.NoError(t, tbl.Relinquish("Zone-Temp-SP", 8))
	assert.Empty(t, tbl.Snapshot())
}

func TestWrite_RejectsUnknownAndReadOnlyPoints(t *testing.T) {
	tbl := newTestTable()

	err := tbl.Write("No-Such-Point", 1, 8)
	assert.ErrorIs(t, err, ErrUnknownPoint)

	// Read-only points are not commandable.
	err = tbl.Write("Zone-Temp", 70, 8)
	assert.ErrorIs(t, err, ErrUnknownPoint)
}

func TestWrite_RejectsPriorityOutOfRange(t *testing.T) {
	tbl := newTestTable()
	assert.ErrorIs(t, tbl.Write("Zone-Temp-SP", 68, 0), ErrPriorityRange)
	assert.ErrorIs(t, tbl.Write("Zone-Temp-SP", 68, 17), ErrPriorityRange)
	assert.ErrorIs(t, tbl.Relinquish("Zone-Temp-SP", 17), ErrPriorityRange)
}

func TestWrite_RejectsValueOutOfRangeKeepingState(t *testing.T) {
	tbl := newTestTable()
	require.NoError(t, tbl.Write("Damper-Pos", 40, 8))

	err := tbl.Write("Damper-Pos", 300, 8)
	assert.ErrorIs(t, err, ErrValueRange)

	// The rejected write must not disturb the existing slot.
	assert.Equal(t, map[string]float64{"Damper-Pos": 40}, tbl.Snapshot())
}

func TestArray_ReturnsDetachedCopy(t *testing.T) {
	tbl := newTestTable()
	require.NoError(t, tbl.Write("Damper-Pos", 40, 8))

	pa, err := tbl.Array("Damper-Pos")
	require.NoError(t, err)
	require.NotNil(t, pa[7])
	assert.Equal(t, 40.0, *pa[7])

	// Mutating the copy must not leak back into the table.
	*pa[7] = 99
	assert.Equal(t, map[string]float64{"Damper-Pos": 40}, tbl.Snapshot())

	_, err = tbl.Array("Zone-Temp")
	assert.ErrorIs(t, err, ErrUnknownPoint)
}

func TestEffective_EmptyArray(t *testing.T) {
	var pa PriorityArray
	_, ok := pa.Effective()
	assert.False(t, ok)
}
