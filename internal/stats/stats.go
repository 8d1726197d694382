// Package stats provides descriptive statistics and feature scaling over
// numeric sequences.
package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInput is returned when an operation receives an empty sequence.
var ErrEmptyInput = errors.New("empty input sequence")

// ErrZeroVariance is returned when standardization would divide by a zero
// standard deviation.
var ErrZeroVariance = errors.New("standard deviation is zero")

// Mean computes the average of xs.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs)), nil
}

// Variance computes the population variance of xs in a single pass.
func Variance(xs []float64) (float64, error) {
	n := float64(len(xs))
	if n == 0 {
		return 0, ErrEmptyInput
	}
	sum, sumSq := 0.0, 0.0
	for _, v := range xs {
		sum += v
		sumSq += v * v
	}
	mean := sum / n
	v := (sumSq / n) - (mean * mean)
	// Guard against tiny negative values from floating-point cancellation.
	if v < 0 {
		v = 0
	}
	return v, nil
}

// Std computes the population standard deviation of xs.
func Std(xs []float64) (float64, error) {
	v, err := Variance(xs)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(v), nil
}

// MinMax returns the minimum and maximum of xs.
func MinMax(xs []float64) (float64, float64, error) {
	if len(xs) == 0 {
		return 0, 0, ErrEmptyInput
	}
	lo, hi := xs[0], xs[0]
	for _, v := range xs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, nil
}

// Median computes the median of xs.
func Median(xs []float64) (float64, error) {
	return Percentile(xs, 50)
}

// Percentile computes the p-th percentile of xs (0 <= p <= 100) using
// linear interpolation between closest ranks.
func Percentile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	if p < 0 || p > 100 {
		return 0, errors.New("percentile must be between 0 and 100")
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0], nil
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, nil
}

// Standardize returns a same-length sequence where each element is
// (x - mean) / std. It fails on an empty sequence and when the standard
// deviation is zero.
func Standardize(xs []float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, ErrEmptyInput
	}
	mean, _ := Mean(xs)
	std, _ := Std(xs)
	if std == 0 {
		return nil, ErrZeroVariance
	}
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = (v - mean) / std
	}
	return out, nil
}

// Summary holds descriptive statistics for a numeric sequence.
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	Max    float64 `json:"max"`
}

// Describe computes a Summary of xs. It fails on an empty sequence.
func Describe(xs []float64) (Summary, error) {
	if len(xs) == 0 {
		return Summary{}, ErrEmptyInput
	}
	mean, _ := Mean(xs)
	std, _ := Std(xs)
	lo, hi, _ := MinMax(xs)
	p25, _ := Percentile(xs, 25)
	med, _ := Median(xs)
	p75, _ := Percentile(xs, 75)
	return Summary{
		Count:  len(xs),
		Mean:   mean,
		Std:    std,
		Min:    lo,
		P25:    p25,
		Median: med,
		P75:    p75,
		Max:    hi,
	}, nil
}
