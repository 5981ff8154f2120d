package dsp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Median returns the median of values: the middle element for odd lengths,
// the mean of the two middle elements for even lengths. NaN for empty input.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// MAD returns the raw median absolute deviation of values. Callers that
// need a floored MAD apply their own floor.
func MAD(values []float64) float64 {
	med := Median(values)
	dev := make([]float64, len(values))
	for i, v := range values {
		dev[i] = math.Abs(v - med)
	}
	return Median(dev)
}

// PopStdDev returns the population standard deviation (divisor N, not N-1).
// Zero for a single value, NaN for empty input.
func PopStdDev(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}
	m := stat.Mean(values, nil)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(n))
}

// Diff returns consecutive differences d[i] = x[i+1] - x[i]. The result is
// one shorter than the input; nil for inputs shorter than 2.
func Diff(x []float64) []float64 {
	if len(x) < 2 {
		return nil
	}
	d := make([]float64, len(x)-1)
	for i := range d {
		d[i] = x[i+1] - x[i]
	}
	return d
}
