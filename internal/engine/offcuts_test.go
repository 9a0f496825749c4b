package engine

import (
	"testing"

	"github.com/piwi3910/SlabQuote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateOffcuts_ScenarioTwoLayers(t *testing.T) {
	e := New(testPricing())
	s := stackOf(
		testMaterial("PLY18", 2000, 1000, 18, 42),
		testMaterial("HDF03", 1800, 1000, 3, 4.9),
	)

	offcuts := e.EstimateOffcuts(s)

	require.Len(t, offcuts, 1)
	o := offcuts[0]
	assert.Equal(t, 0, o.LayerIndex)
	assert.Equal(t, s.Layers[0].ID, o.LayerID)
	require.Len(t, o.Strips, 1)
	assert.Equal(t, model.Strip{Length: 200, Width: 1000}, o.Strips[0])
	assert.InDelta(t, 0.2, o.Area, 1e-9)
	assert.InDelta(t, 0.2*42, o.Value, 1e-9)
}

func TestEstimateOffcuts_NegativePriceValuedAtZero(t *testing.T) {
	e := New(testPricing())
	s := stackOf(
		testMaterial("PLY18", 2000, 1000, 18, -10),
		testMaterial("HDF03", 1800, 1000, 3, 5),
	)

	offcuts := e.EstimateOffcuts(s)

	require.Len(t, offcuts, 1)
	assert.InDelta(t, 0.2, offcuts[0].Area, 1e-9)
	assert.Zero(t, offcuts[0].Value)
	assert.Zero(t, e.OffcutValue(s))
}

func TestEstimateOffcuts_ExactMatchProducesNothing(t *testing.T) {
	e := New(testPricing())
	m := testMaterial("HPL", 2000, 1000, 1, 20)
	s := stackOf(m, m, m)

	assert.Empty(t, e.EstimateOffcuts(s))
	assert.Zero(t, e.OffcutValue(s))
}

func TestEstimateOffcuts_BothSidesLonger(t *testing.T) {
	e := New(testPricing())
	s := stackOf(
		testMaterial("BIG", 2000, 1200, 18, 10),
		testMaterial("FIT", 1800, 1000, 3, 5),
	)

	offcuts := e.EstimateOffcuts(s)

	require.Len(t, offcuts, 1)
	assert.Equal(t, []model.Strip{
		{Length: 200, Width: 1200},
		{Length: 1800, Width: 200},
	}, offcuts[0].Strips)
	assert.InDelta(t, 2.4-1.8, offcuts[0].Area, 1e-9)
	assert.InDelta(t, 6.0, offcuts[0].Value, 1e-9)
}

func TestEstimateOffcuts_OneRecordPerOversizedLayerInOrder(t *testing.T) {
	e := New(testPricing())
	s := stackOf(
		testMaterial("A", 2000, 1000, 3, 10),
		testMaterial("B", 1800, 1000, 18, 10),
		testMaterial("C", 1800, 1100, 3, 10),
	)

	offcuts := e.EstimateOffcuts(s)

	require.Len(t, offcuts, 2)
	assert.Equal(t, 0, offcuts[0].LayerIndex)
	assert.Equal(t, 2, offcuts[1].LayerIndex)
	assert.InDelta(t, 0.18, offcuts[1].Area, 1e-9)
	for _, o := range offcuts {
		assert.NotEqual(t, 1, o.LayerIndex, "layer matching the final size must not produce an offcut")
	}
}

func TestEstimateOffcuts_IncompleteStack(t *testing.T) {
	e := New(testPricing())
	s := stackOf(testMaterial("A", 2000, 1000, 3, 10), nil)
	assert.Nil(t, e.EstimateOffcuts(s))
}

func TestOffcutValue_SumsAllLayers(t *testing.T) {
	e := New(testPricing())
	s := stackOf(
		testMaterial("A", 2000, 1000, 3, 10),
		testMaterial("B", 1800, 1000, 18, 10),
		testMaterial("C", 1800, 1100, 3, 10),
	)
	assert.InDelta(t, 2.0+1.8, e.OffcutValue(s), 1e-9)
}
