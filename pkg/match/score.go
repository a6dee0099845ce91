package match

import (
	"errors"

	"gonum.org/v1/gonum/floats"

	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// ErrZeroIntensityDenominator is returned when the comparison intensity
// of a spectrum is zero and the explained-intensity score is undefined.
var ErrZeroIntensityDenominator = errors.New("explained-intensity score undefined: total comparison intensity is zero")

// ExplainedIntensityScore returns the percentage of spectrum intensity
// explained by the matched fragments.
//
// The denominator sums all peak intensities except peaks within tolerance
// of the precursor m/z. The numerator sums the intensities of the matched
// fragments' source peaks, each peak counted once even when several
// fragments cite it.
func ExplainedIntensityScore(peaks []core.Peak, fragments []lipid.LipidFragment,
	precursorMZ float64, tol core.MZTolerance) (float64, error) {

	var all []float64
	for _, peak := range peaks {
		if tol.CheckWithinTolerance(peak.MZ, precursorMZ) {
			continue
		}
		all = append(all, peak.Intensity)
	}
	total := floats.Sum(all)
	if total == 0 {
		return 0, ErrZeroIntensityDenominator
	}

	seen := make(map[core.Peak]bool)
	var matched []float64
	for _, frag := range fragments {
		if seen[frag.Peak] {
			continue
		}
		seen[frag.Peak] = true
		matched = append(matched, frag.Peak.Intensity)
	}

	return floats.Sum(matched) / total * 100, nil
}
