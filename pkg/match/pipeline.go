package match

import (
	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// Params bundles the caller-supplied settings of one annotation run.
type Params struct {
	Ionization core.IonizationType
	MinScore   float64 // explained-intensity threshold in percent
}

// AnnotateSpectrum runs the full pipeline for one spectrum: match every
// peak against the rule catalog, confirm the species-level annotation and
// predict molecular-species candidates. The returned slice holds the
// species-level match first (when confirmed) followed by the molecular
// candidates.
func (m *Matcher) AnnotateSpectrum(ann lipid.SpeciesLevelAnnotation,
	rules []lipid.FragmentationRule, spectrum *core.Spectrum, p Params) ([]lipid.MatchedLipid, error) {

	fragments := m.MatchFragments(ann, p.Ionization, rules, spectrum)
	if len(fragments) == 0 {
		return nil, nil
	}

	var results []lipid.MatchedLipid

	confirmed, err := ConfirmSpeciesLevel(ann, spectrum.PrecursorMZ, fragments,
		spectrum.Peaks, p.MinScore, m.Tolerance, p.Ionization)
	if err != nil {
		return nil, err
	}
	if confirmed != nil {
		results = append(results, *confirmed)
	}

	molecular, err := PredictMolecularSpecies(ann, spectrum.PrecursorMZ, fragments,
		spectrum.Peaks, p.MinScore, m.Tolerance, p.Ionization)
	if err != nil {
		return nil, err
	}
	results = append(results, molecular...)

	return results, nil
}
