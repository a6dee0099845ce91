package core

import (
	"errors"
	"math"
	"testing"
)

func TestMZToleranceDeltaAt(t *testing.T) {
	tests := []struct {
		name string
		ppm  float64
		abs  float64
		mz   float64
		want float64
	}{
		// 10 ppm at 100 = 0.001, absolute component wider
		{"absolute wins at low mass", 10, 0.005, 100, 0.005},
		// 10 ppm at 1000 = 0.01, ppm component wider
		{"ppm wins at high mass", 10, 0.005, 1000, 0.01},
		{"equal components", 10, 0.005, 500, 0.005},
		{"ppm only", 10, 0, 500, 0.005},
		{"absolute only", 0, 0.02, 500, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tol := MZTolerance{PPM: tt.ppm, Absolute: tt.abs}
			if got := tol.DeltaAt(tt.mz); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("DeltaAt(%.1f) = %g, want %g", tt.mz, got, tt.want)
			}
		})
	}
}

func TestMZToleranceRangeAround(t *testing.T) {
	tol := MZTolerance{PPM: 10, Absolute: 0.005}
	rng := tol.RangeAround(100)

	if !rng.Contains(100) {
		t.Error("range must contain its center")
	}
	if !rng.Contains(100.005) || !rng.Contains(99.995) {
		t.Error("range must contain its bounds")
	}
	if rng.Contains(100.0051) || rng.Contains(99.9949) {
		t.Error("range must exclude masses outside the window")
	}
}

func TestNewMZToleranceRejectsNegative(t *testing.T) {
	if _, err := NewMZTolerance(-1, 0.005); !errors.Is(err, ErrInvalidToleranceRange) {
		t.Errorf("negative ppm: error = %v, want ErrInvalidToleranceRange", err)
	}
	if _, err := NewMZTolerance(10, -0.005); !errors.Is(err, ErrInvalidToleranceRange) {
		t.Errorf("negative abs: error = %v, want ErrInvalidToleranceRange", err)
	}
	if _, err := NewMZTolerance(10, 0.005); err != nil {
		t.Errorf("valid tolerance: error = %v", err)
	}
}

func TestNewRangeRejectsInvertedBounds(t *testing.T) {
	if _, err := NewRange(200, 100); !errors.Is(err, ErrInvalidToleranceRange) {
		t.Errorf("inverted bounds: error = %v, want ErrInvalidToleranceRange", err)
	}
	if _, err := NewRange(100, 200); err != nil {
		t.Errorf("valid bounds: error = %v", err)
	}
}

func TestCheckWithinTolerance(t *testing.T) {
	tol := MZTolerance{PPM: 0, Absolute: 0.01}
	if !tol.CheckWithinTolerance(500.0, 500.009) {
		t.Error("masses within tolerance reported as outside")
	}
	if tol.CheckWithinTolerance(500.0, 500.011) {
		t.Error("masses outside tolerance reported as within")
	}
}
