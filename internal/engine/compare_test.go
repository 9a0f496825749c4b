package engine

import (
	"testing"

	"github.com/piwi3910/SlabQuote/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFinishScenarios_ListsEveryGlossLevel(t *testing.T) {
	e := New(testPricing())
	l := newLine("Door", 700, 400)
	l.Finish = model.Lacquer{ColorRef: "RAL 5010", GlossLevel: model.GlossSatin}

	scenarios := e.BuildFinishScenarios(l)

	require.Len(t, scenarios, 1+4+4)
	assert.Equal(t, "No finish", scenarios[0].Name)
	assert.Equal(t, "Lacquer matte", scenarios[1].Name)
	lq, ok := scenarios[1].Finish.(model.Lacquer)
	require.True(t, ok)
	assert.Equal(t, "RAL 5010", lq.ColorRef, "chosen color is kept")
	assert.Equal(t, "Varnish matte", scenarios[5].Name)
}

func TestCompareFinishes_DeltaAgainstCurrentFinish(t *testing.T) {
	e := New(testPricing())
	l := newLine("Door", 1000, 500)
	l.Finish = model.Lacquer{ColorRef: "RAL 9010", GlossLevel: model.GlossMatte}

	results := e.CompareFinishes(l, e.BuildFinishScenarios(l))

	require.NotEmpty(t, results)
	assert.InDelta(t, -19.0, results[0].Delta, 1e-9, "dropping a 19.00 finish")
	assert.Zero(t, results[1].Delta, "lacquer matte is the current finish")
	assert.InDelta(t, 0.5*95.0, results[4].FinishCost, 1e-9)
}
