package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComparisonRecompute(t *testing.T) {
	c := &Comparison{Measurements: []MeasurementDelta{
		{Type: "weight", BeforeValue: 80, AfterValue: 72, Unit: "kg"},
		{Type: "waist", BeforeValue: 90, AfterValue: 93.5, Unit: "cm"},
		{Type: "bodyFat", BeforeValue: 0, AfterValue: 18, Unit: "%"},
	}}
	c.Recompute()

	assert.Equal(t, -8.0, c.Measurements[0].Difference)
	assert.Equal(t, (72.0-80.0)/80.0*100, c.Measurements[0].PercentageChange)

	assert.Equal(t, 3.5, c.Measurements[1].Difference)
	assert.Equal(t, (93.5-90.0)/90.0*100, c.Measurements[1].PercentageChange)

	assert.Equal(t, 18.0, c.Measurements[2].Difference)
	assert.Zero(t, c.Measurements[2].PercentageChange)
}

func TestComparisonRecompute_ZeroBeforeNeverDivides(t *testing.T) {
	for _, after := range []float64{0, 1, -5, 1e9} {
		c := &Comparison{Measurements: []MeasurementDelta{{BeforeValue: 0, AfterValue: after}}}
		c.Recompute()
		assert.Zero(t, c.Measurements[0].PercentageChange)
	}
}

func TestComparisonRecompute_Idempotent(t *testing.T) {
	c := &Comparison{Measurements: []MeasurementDelta{
		{BeforeValue: 3.3, AfterValue: 1.1},
		{BeforeValue: 0.7, AfterValue: 0.9},
	}}
	c.Recompute()
	first := append([]MeasurementDelta(nil), c.Measurements...)
	c.Recompute()
	assert.Equal(t, first, c.Measurements)
}

func TestComparisonRecompute_NilList(t *testing.T) {
	c := &Comparison{}
	assert.NotPanics(t, c.Recompute)
}
