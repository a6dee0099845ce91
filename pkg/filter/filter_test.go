package filter

import (
	"testing"

	"github.com/mzkit/lipidmatch/pkg/core"
)

func testSpectrum() *core.Spectrum {
	return &core.Spectrum{
		PrecursorMZ: 760.5851,
		Peaks: []core.Peak{
			{MZ: 400.0, Intensity: 5},
			{MZ: 184.0734, Intensity: 1000},
			{MZ: 504.3449, Intensity: 250},
			{MZ: 300.0, Intensity: 40},
		},
	}
}

func TestApplyIntensityCutoff(t *testing.T) {
	spec := testSpectrum()
	cfg := Config{IntensityCutoff: 5} // 5% of base peak 1000 = 50

	cfg.Apply(spec)

	want := []core.Peak{
		{MZ: 184.0734, Intensity: 1000},
		{MZ: 504.3449, Intensity: 250},
	}
	if len(spec.Peaks) != len(want) {
		t.Fatalf("got %d peaks, want %d: %v", len(spec.Peaks), len(want), spec.Peaks)
	}
	for i, w := range want {
		if spec.Peaks[i] != w {
			t.Errorf("peak %d = %v, want %v", i, spec.Peaks[i], w)
		}
	}
}

func TestApplyTopN(t *testing.T) {
	spec := testSpectrum()
	cfg := Config{TopN: 2}

	cfg.Apply(spec)

	if len(spec.Peaks) != 2 {
		t.Fatalf("got %d peaks, want 2: %v", len(spec.Peaks), spec.Peaks)
	}
	// Peaks come back in m/z order regardless of filter order.
	if !spec.ArePeaksSorted() {
		t.Errorf("peaks not sorted by m/z: %v", spec.Peaks)
	}
	for _, peak := range spec.Peaks {
		if peak.Intensity < 250 {
			t.Errorf("peak %v survived a top-2 filter", peak)
		}
	}
}

func TestApplyTopNSmallerSpectrum(t *testing.T) {
	spec := testSpectrum()
	cfg := Config{TopN: 10}

	cfg.Apply(spec)

	if len(spec.Peaks) != 4 {
		t.Errorf("got %d peaks, want all 4", len(spec.Peaks))
	}
}

func TestApplyNoFilters(t *testing.T) {
	spec := testSpectrum()
	cfg := Config{}

	cfg.Apply(spec)

	if len(spec.Peaks) != 4 {
		t.Errorf("got %d peaks, want all 4", len(spec.Peaks))
	}
	if !spec.ArePeaksSorted() {
		t.Errorf("peaks not sorted by m/z: %v", spec.Peaks)
	}
}

func TestRemoveZeroIntensityPeaks(t *testing.T) {
	spec := &core.Spectrum{
		Peaks: []core.Peak{
			{MZ: 100.0, Intensity: 0},
			{MZ: 200.0, Intensity: 10},
			{MZ: 300.0, Intensity: -1},
		},
	}

	RemoveZeroIntensityPeaks(spec)

	if len(spec.Peaks) != 1 || spec.Peaks[0].MZ != 200.0 {
		t.Errorf("got %v, want only the 200.0 peak", spec.Peaks)
	}
}
