// internal/stats/stats.go

// Package stats computes the descriptive statistics reported for benchmark samples.
package stats

import (
	"errors"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptySample is returned when statistics are requested for no values.
	ErrEmptySample = errors.New("stats: empty sample")
	// ErrZeroBaseline is returned by PercentChange for a zero baseline.
	ErrZeroBaseline = errors.New("stats: zero baseline")
)

// Summary describes a sample of float64 values.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"` // population standard deviation
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Describe summarizes values. The standard deviation uses the population
// formula, dividing by N rather than N-1.
func Describe(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptySample
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	return Summary{
		N:      len(values),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Median: Quantile(values, 0.5),
	}, nil
}

// Quantile returns the q-quantile of values, q clamped to [0, 1]. The
// rank h = q*(n-1) is located in the sorted sample and interpolated between
// its neighbours, which matches numpy's default "linear" method. gonum's
// stat.LinInterp is R type 4 and puts the median of an even-sized sample on
// the lower middle value, so it is not used here. values is not modified and
// an empty slice yields 0.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	sorted := slices.Sorted(slices.Values(values))
	h := math.Max(0, math.Min(1, q)) * float64(n-1)
	i, frac := math.Modf(h)
	lo := int(i)
	if lo+1 >= n || frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// PercentChange returns the change from baseline to value in percent.
func PercentChange(baseline, value float64) (float64, error) {
	if baseline == 0 {
		return 0, ErrZeroBaseline
	}
	return (value - baseline) / baseline * 100, nil
}
