package mgf

import (
	"math"
	"strings"
	"testing"

	"github.com/mzkit/lipidmatch/pkg/core"
)

const sampleMGF = `# exported fragment spectra
BEGIN IONS
TITLE=sample A scan 1
PEPMASS=760.5851 12345.6
CHARGE=1+
SCANS=101
184.0734 1000.0
504.3449 250.5
END IONS

BEGIN IONS
PEPMASS=746.6058
255.2330 80
END IONS
`

func TestReadSpectra(t *testing.T) {
	r := NewReader(strings.NewReader(sampleMGF))

	if !r.Next() {
		t.Fatalf("Next() = false on first spectrum, err = %v", r.Err())
	}
	spec := r.Spectrum()
	if math.Abs(spec.PrecursorMZ-760.5851) > 1e-9 {
		t.Errorf("PrecursorMZ = %v, want 760.5851", spec.PrecursorMZ)
	}
	if spec.Charge != 1 {
		t.Errorf("Charge = %d, want 1", spec.Charge)
	}
	if spec.Scan.Number != 101 {
		t.Errorf("Scan.Number = %d, want 101 from SCANS header", spec.Scan.Number)
	}
	if spec.Scan.Title != "sample A scan 1" {
		t.Errorf("Scan.Title = %q", spec.Scan.Title)
	}
	if spec.Scan.PrecursorMZ != spec.PrecursorMZ {
		t.Errorf("Scan.PrecursorMZ = %v, want %v", spec.Scan.PrecursorMZ, spec.PrecursorMZ)
	}
	wantPeaks := []core.Peak{
		{MZ: 184.0734, Intensity: 1000.0},
		{MZ: 504.3449, Intensity: 250.5},
	}
	if len(spec.Peaks) != len(wantPeaks) {
		t.Fatalf("got %d peaks, want %d", len(spec.Peaks), len(wantPeaks))
	}
	for i, want := range wantPeaks {
		if spec.Peaks[i] != want {
			t.Errorf("peak %d = %v, want %v", i, spec.Peaks[i], want)
		}
	}

	if !r.Next() {
		t.Fatalf("Next() = false on second spectrum, err = %v", r.Err())
	}
	spec = r.Spectrum()
	if math.Abs(spec.PrecursorMZ-746.6058) > 1e-9 {
		t.Errorf("PrecursorMZ = %v, want 746.6058", spec.PrecursorMZ)
	}
	// No SCANS header: blocks are numbered in file order.
	if spec.Scan.Number != 2 {
		t.Errorf("Scan.Number = %d, want 2", spec.Scan.Number)
	}

	if r.Next() {
		t.Error("Next() = true past the last spectrum")
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err() = %v after clean EOF", err)
	}
}

func TestMissingPepmass(t *testing.T) {
	mgf := "BEGIN IONS\nTITLE=x\n184.0734 1000\nEND IONS\n"
	r := NewReader(strings.NewReader(mgf))
	if r.Next() {
		t.Fatal("Next() accepted a block without PEPMASS")
	}
	if r.Err() == nil {
		t.Error("Err() = nil, want an error for the missing PEPMASS")
	}
}

func TestUnterminatedBlock(t *testing.T) {
	mgf := "BEGIN IONS\nPEPMASS=500.1\n184.0734 1000\n"
	r := NewReader(strings.NewReader(mgf))
	if r.Next() {
		t.Fatal("Next() accepted an unterminated block")
	}
	if r.Err() == nil {
		t.Error("Err() = nil, want an error for the unterminated block")
	}
}

func TestInvalidPeakLine(t *testing.T) {
	mgf := "BEGIN IONS\nPEPMASS=500.1\n184.0734\nEND IONS\n"
	r := NewReader(strings.NewReader(mgf))
	if r.Next() {
		t.Fatal("Next() accepted a peak line without an intensity")
	}
	if r.Err() == nil {
		t.Error("Err() = nil, want a parse error")
	}
}
