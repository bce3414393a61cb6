package main

import (
	"github.com/pthm-cable/flappy/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the evolution hyperparameters under search. The
// order matches ApplyToConfig and ExtractFromConfig.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "mutation_rate", Path: "evolution.mutation.rate", Min: 0.01, Max: 0.6, Default: 0.2},
			{Name: "mutation_sigma", Path: "evolution.mutation.sigma", Min: 0.02, Max: 1.0, Default: 0.3},
			{Name: "big_rate", Path: "evolution.mutation.big_rate", Min: 0, Max: 0.2, Default: 0.05},
			{Name: "big_sigma", Path: "evolution.mutation.big_sigma", Min: 0.2, Max: 3.0, Default: 1.0},
			{Name: "survival_threshold", Path: "evolution.survival_threshold", Min: 0.05, Max: 0.6, Default: 0.2},
			{Name: "elitism", Path: "evolution.elitism", Min: 0, Max: 10, Default: 2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	c := pv.Clamp(values)
	m := &cfg.Evolution.Mutation
	m.Rate = c[0]
	m.Sigma = c[1]
	m.BigRate = c[2]
	m.BigSigma = c[3]
	cfg.Evolution.SurvivalThreshold = c[4]
	cfg.Evolution.Elitism = int(c[5] + 0.5)
}

// ExtractFromConfig reads the current parameter values from cfg.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	m := cfg.Evolution.Mutation
	return []float64{
		m.Rate,
		m.Sigma,
		m.BigRate,
		m.BigSigma,
		cfg.Evolution.SurvivalThreshold,
		float64(cfg.Evolution.Elitism),
	}
}
