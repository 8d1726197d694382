package stats

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNotFitted is returned when Transform is called before Fit.
var ErrNotFitted = errors.New("scaler has not been fitted")

// Scaler learns scaling parameters from a sequence and applies them to
// (possibly different) sequences of the same distribution.
type Scaler interface {
	// Fit learns the scaling parameters from xs.
	Fit(xs []float64) error
	// Transform applies the learned parameters to xs.
	Transform(xs []float64) ([]float64, error)
}

// FitTransform fits s on xs and transforms xs in one step.
func FitTransform(s Scaler, xs []float64) ([]float64, error) {
	if err := s.Fit(xs); err != nil {
		return nil, err
	}
	return s.Transform(xs)
}

// StandardScaler scales to zero mean and unit variance.
type StandardScaler struct {
	mean   float64
	std    float64
	fitted bool
}

// NewStandardScaler creates an unfitted StandardScaler.
func NewStandardScaler() *StandardScaler { return &StandardScaler{} }

// Mean returns the fitted mean.
func (s *StandardScaler) Mean() float64 { return s.mean }

// Std returns the fitted standard deviation.
func (s *StandardScaler) Std() float64 { return s.std }

func (s *StandardScaler) Fit(xs []float64) error {
	if len(xs) == 0 {
		return ErrEmptyInput
	}
	mean, _ := Mean(xs)
	std, _ := Std(xs)
	if std == 0 {
		return ErrZeroVariance
	}
	s.mean, s.std, s.fitted = mean, std, true
	return nil
}

func (s *StandardScaler) Transform(xs []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = (v - s.mean) / s.std
	}
	return out, nil
}

// MinMaxScaler scales to the [0, 1] range.
type MinMaxScaler struct {
	min    float64
	max    float64
	fitted bool
}

// NewMinMaxScaler creates an unfitted MinMaxScaler.
func NewMinMaxScaler() *MinMaxScaler { return &MinMaxScaler{} }

func (s *MinMaxScaler) Fit(xs []float64) error {
	if len(xs) == 0 {
		return ErrEmptyInput
	}
	lo, hi, _ := MinMax(xs)
	if lo == hi {
		return ErrZeroVariance
	}
	s.min, s.max, s.fitted = lo, hi, true
	return nil
}

func (s *MinMaxScaler) Transform(xs []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = (v - s.min) / (s.max - s.min)
	}
	return out, nil
}

// RobustScaler scales using the median and interquartile range, which makes
// it less sensitive to outliers than StandardScaler.
type RobustScaler struct {
	median float64
	iqr    float64
	fitted bool
}

// NewRobustScaler creates an unfitted RobustScaler.
func NewRobustScaler() *RobustScaler { return &RobustScaler{} }

func (s *RobustScaler) Fit(xs []float64) error {
	if len(xs) == 0 {
		return ErrEmptyInput
	}
	med, _ := Median(xs)
	p25, _ := Percentile(xs, 25)
	p75, _ := Percentile(xs, 75)
	if p75 == p25 {
		return ErrZeroVariance
	}
	s.median, s.iqr, s.fitted = med, p75-p25, true
	return nil
}

func (s *RobustScaler) Transform(xs []float64) ([]float64, error) {
	if !s.fitted {
		return nil, ErrNotFitted
	}
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = (v - s.median) / s.iqr
	}
	return out, nil
}

// scalers maps scaler names to constructors. Shared by every caller of
// NewScaler; registration happens once at package init.
var scalers = map[string]func() Scaler{
	"standard": func() Scaler { return NewStandardScaler() },
	"minmax":   func() Scaler { return NewMinMaxScaler() },
	"robust":   func() Scaler { return NewRobustScaler() },
}

// NewScaler returns a fresh scaler by name ("standard", "minmax", "robust").
func NewScaler(name string) (Scaler, error) {
	ctor, ok := scalers[name]
	if !ok {
		return nil, fmt.Errorf("unknown scaler %q (available: %v)", name, ScalerNames())
	}
	return ctor(), nil
}

// ScalerNames returns the sorted names of the registered scalers.
func ScalerNames() []string {
	names := make([]string, 0, len(scalers))
	for name := range scalers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
