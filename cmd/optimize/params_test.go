package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/flappy/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestApplyExtract(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := []float64{0.1, 0.5, 0.02, 2.0, 0.3, 4.4}
	pv.ApplyToConfig(cfg, values)
	got := pv.ExtractFromConfig(cfg)

	want := []float64{0.1, 0.5, 0.02, 2.0, 0.3, 4} // elitism rounds
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("%s = %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func TestApplyClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	out := make([]float64, pv.Dim())
	for i, s := range pv.Specs {
		out[i] = s.Max + 10
	}
	pv.ApplyToConfig(cfg, out)
	got := pv.ExtractFromConfig(cfg)
	for i, s := range pv.Specs {
		if got[i] > s.Max {
			t.Errorf("%s = %v exceeds max %v", s.Name, got[i], s.Max)
		}
	}
}

func TestDefaultsMatchConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	got := pv.ExtractFromConfig(cfg)
	for i, d := range pv.DefaultVector() {
		if math.Abs(got[i]-d) > 1e-12 {
			t.Errorf("%s default %v, config has %v", pv.Specs[i].Name, d, got[i])
		}
	}
}
