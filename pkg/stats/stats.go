// Package stats computes summary statistics over pixel buffers, used
// for reporting on produced frames and for verifying that a conversion
// preserved the data it was supposed to preserve.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the distribution of a pixel buffer.
type Summary struct {
	// Mean is the arithmetic mean of all pixel values.
	Mean float64

	// StdDev is the sample standard deviation.
	StdDev float64

	// Min and Max are the extreme pixel values.
	Min float64
	Max float64

	// Pixels is the number of values summarized.
	Pixels int
}

// Summarize computes a Summary over a flat pixel buffer. An empty
// buffer yields the zero Summary.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		return Summary{}
	}

	lo, hi := data[0], data[0]
	for _, v := range data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	mean, variance := stat.MeanVariance(data, nil)
	return Summary{
		Mean:   mean,
		StdDev: math.Sqrt(variance),
		Min:    lo,
		Max:    hi,
		Pixels: len(data),
	}
}

// RMSE returns the root mean square error between two equally sized
// buffers. Mismatched or empty buffers yield NaN.
func RMSE(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	mse := 0.0
	for i := range a {
		diff := a[i] - b[i]
		mse += diff * diff
	}
	return math.Sqrt(mse / float64(len(a)))
}

// Correlation returns the Pearson correlation between two equally
// sized buffers, the similarity measure used when comparing a
// reconstruction against its source. Mismatched or empty buffers
// yield NaN.
func Correlation(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.NaN()
	}
	return stat.Correlation(a, b, nil)
}
