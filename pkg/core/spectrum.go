package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Peak represents a single m/z, intensity pair.
type Peak struct {
	MZ        float64
	Intensity float64
}

// Scan identifies the MS/MS scan a fragment spectrum came from.
type Scan struct {
	Number      int
	PrecursorMZ float64
	Title       string
}

// Spectrum represents a fragment-ion spectrum with its precursor context.
type Spectrum struct {
	PrecursorMZ float64
	Charge      int
	Peaks       []Peak
	Scan        Scan

	// Internal tracking
	SourceFile string
}

// ValidationError represents an error found during spectrum validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
}

// Validate checks that a spectrum meets all requirements for matching.
func (s *Spectrum) Validate() error {
	var errs []string

	if s.PrecursorMZ <= 0 {
		errs = append(errs, "precursor m/z must be positive")
	}
	if len(s.Peaks) == 0 {
		errs = append(errs, "at least one peak is required")
	}

	for i, peak := range s.Peaks {
		if math.IsNaN(peak.MZ) || math.IsInf(peak.MZ, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid m/z", i))
		}
		if math.IsNaN(peak.Intensity) || math.IsInf(peak.Intensity, 0) {
			errs = append(errs, fmt.Sprintf("peak %d has invalid intensity", i))
		}
		if peak.MZ <= 0 {
			errs = append(errs, fmt.Sprintf("peak %d m/z must be positive", i))
		}
		if peak.Intensity < 0 {
			errs = append(errs, fmt.Sprintf("peak %d intensity must be non-negative", i))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{
			Field:   "Spectrum",
			Message: strings.Join(errs, "; "),
		}
	}

	return nil
}

// ArePeaksSorted checks if peaks are sorted by m/z in ascending order.
func (s *Spectrum) ArePeaksSorted() bool {
	for i := 1; i < len(s.Peaks); i++ {
		if s.Peaks[i].MZ < s.Peaks[i-1].MZ {
			return false
		}
	}
	return true
}

// SortPeaks sorts peaks by m/z in ascending order.
func (s *Spectrum) SortPeaks() {
	sort.Slice(s.Peaks, func(i, j int) bool {
		return s.Peaks[i].MZ < s.Peaks[j].MZ
	})
}

// BasePeakIntensity returns the intensity of the most intense peak, or 0
// for an empty spectrum.
func (s *Spectrum) BasePeakIntensity() float64 {
	max := 0.0
	for _, peak := range s.Peaks {
		if peak.Intensity > max {
			max = peak.Intensity
		}
	}
	return max
}
