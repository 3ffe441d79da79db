package stats

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func TestDescribe_PopulationStdDev(t *testing.T) {
	s, err := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	assert.Equal(t, 8, s.N)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.0, s.StdDev, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
}

func TestDescribe_SingleValue(t *testing.T) {
	s, err := Describe([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, Summary{N: 1, Mean: 42, StdDev: 0, Min: 42, Max: 42, Median: 42}, s)
}

func TestDescribe_Empty(t *testing.T) {
	_, err := Describe(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
	_, err = Describe([]float64{})
	assert.ErrorIs(t, err, ErrEmptySample)
}

func TestQuantile(t *testing.T) {
	vals := []float64{5, 1, 3, 2, 4}
	assert.Equal(t, 1.0, Quantile(vals, 0))
	assert.Equal(t, 5.0, Quantile(vals, 1))
	assert.Equal(t, 3.0, Quantile(vals, 0.5))
	assert.InDelta(t, 4.8, Quantile(vals, 0.95), 1e-12)
	assert.Equal(t, []float64{5, 1, 3, 2, 4}, vals, "input must not be reordered")
	assert.Zero(t, Quantile(nil, 0.5))
	assert.Equal(t, 1.0, Quantile(vals, -1), "q below 0 clamps to the minimum")
	assert.Equal(t, 5.0, Quantile(vals, 2), "q above 1 clamps to the maximum")
}

func TestQuantile_EvenSampleMedianInterpolates(t *testing.T) {
	vals := []float64{9, 2, 7, 4, 5, 4, 5, 4}
	assert.InDelta(t, 4.5, Quantile(vals, 0.5), 1e-12)

	sorted := slices.Sorted(slices.Values(vals))
	assert.Equal(t, 4.0, stat.Quantile(0.5, stat.LinInterp, sorted, nil),
		"gonum's LinInterp takes the lower middle value")
}

func TestPercentChange(t *testing.T) {
	pct, err := PercentChange(200, 250)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, pct, 1e-12)

	pct, err = PercentChange(200, 150)
	require.NoError(t, err)
	assert.InDelta(t, -25.0, pct, 1e-12)

	_, err = PercentChange(0, 1)
	assert.ErrorIs(t, err, ErrZeroBaseline)
}
