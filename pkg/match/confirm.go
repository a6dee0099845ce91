package match

import (
	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// ConfirmSpeciesLevel decides whether the detected fragments support the
// species-level annotation. Only species-level fragments enter the score;
// the returned match carries the full fragment set. It returns nil when
// no species-level fragment was detected or the score falls below
// minScore.
func ConfirmSpeciesLevel(ann lipid.SpeciesLevelAnnotation, accurateMZ float64,
	fragments []lipid.LipidFragment, peaks []core.Peak, minScore float64,
	tol core.MZTolerance, ion core.IonizationType) (*lipid.MatchedLipid, error) {

	var speciesFragments []lipid.LipidFragment
	for _, frag := range fragments {
		if frag.Level == lipid.SpeciesLevel {
			speciesFragments = append(speciesFragments, frag)
		}
	}
	if len(speciesFragments) == 0 {
		return nil, nil
	}

	score, err := ExplainedIntensityScore(peaks, speciesFragments, accurateMZ, tol)
	if err != nil {
		return nil, err
	}
	if score < minScore {
		return nil, nil
	}

	return &lipid.MatchedLipid{
		Annotation: ann,
		AccurateMZ: accurateMZ,
		Ionization: ion,
		Fragments:  fragments,
		Score:      score,
	}, nil
}
