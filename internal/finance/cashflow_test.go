package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNPV(t *testing.T) {
	assert.InDelta(t, 0, NPV(0.1, []float64{-100, 110}), 1e-9)
	assert.InDelta(t, 50, NPV(0, []float64{-100, 50, 100}), 1e-9)
	assert.InDelta(t, -100+121/1.21, NPV(0.1, []float64{-100, 0, 121}), 1e-9)
	assert.Equal(t, 0.0, NPV(0.1, nil))
}

func TestIRR_SimpleInvestment(t *testing.T) {
	irr, ok := IRR([]float64{-100, 110})
	require.True(t, ok)
	assert.InDelta(t, 0.1, irr, 1e-9)
}

func TestIRR_RootZeroesNPV(t *testing.T) {
	flows := []float64{-1000, 500, 500, 500}

	irr, ok := IRR(flows)
	require.True(t, ok)
	assert.Greater(t, irr, 0.2)
	assert.Less(t, irr, 0.25)
	assert.InDelta(t, 0, NPV(irr, flows), 1e-6)
}

func TestIRR_NegativeReturn(t *testing.T) {
	flows := []float64{-1000, 100, 100, 100}

	irr, ok := IRR(flows)
	require.True(t, ok)
	assert.Less(t, irr, 0.0)
	assert.InDelta(t, 0, NPV(irr, flows), 1e-6)
}

func TestIRR_NoSignChange(t *testing.T) {
	_, ok := IRR([]float64{100, 50, 50})
	assert.False(t, ok)

	_, ok = IRR([]float64{-100, 0, 0})
	assert.False(t, ok)
}

func TestPayback(t *testing.T) {
	years, ok := Payback([]float64{-100, 30, 30, 30, 30})
	require.True(t, ok)
	assert.InDelta(t, 3+10.0/30.0, years, 1e-9)

	years, ok = Payback([]float64{0, 10})
	require.True(t, ok)
	assert.Equal(t, 0.0, years)

	_, ok = Payback([]float64{-100, 10, 10})
	assert.False(t, ok)
}
