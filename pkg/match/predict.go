package match

import (
	"errors"
	"fmt"
	"sort"

	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// ErrUnsupportedChainCardinality is returned when a lipid class template
// has a chain count outside 1..3.
var ErrUnsupportedChainCardinality = errors.New("unsupported chain cardinality: class template must have 1 to 3 chains")

// PredictMolecularSpecies reconstructs possible chain compositions for a
// species-level annotation from the detected fragments.
//
// The detected fragments are reduced to distinct chains; every ordered
// k-tuple over that list (repetition allowed, so one observed chain may
// fill two template slots) whose carbon and double-bond sums exactly equal
// the species totals and whose chain-type multiset equals the class
// template yields a candidate. Each candidate is rescored against the
// full fragment set and kept when its score reaches minScore. Candidates
// are deduplicated structurally and returned in deterministic order.
func PredictMolecularSpecies(ann lipid.SpeciesLevelAnnotation, accurateMZ float64,
	fragments []lipid.LipidFragment, peaks []core.Peak, minScore float64,
	tol core.MZTolerance, ion core.IonizationType) ([]lipid.MatchedLipid, error) {

	k := ann.Class.ChainCount()
	if k < 1 || k > 3 {
		return nil, fmt.Errorf("%w: %q has %d", ErrUnsupportedChainCardinality, ann.Class.Abbr, k)
	}

	chains := lipid.ChainsFromFragments(fragments)
	if len(chains) == 0 {
		return nil, nil
	}

	var factory lipid.Factory
	matched := make(map[string]lipid.MatchedLipid)

	indices := make([]int, k)
	for {
		candidate := make([]lipid.Chain, k)
		for slot, idx := range indices {
			candidate[slot] = chains[idx]
		}

		if sumsMatch(candidate, ann.Carbons, ann.DoubleBonds) && chainTypesFitClass(candidate, ann.Class) {
			molecular := factory.BuildMolecularSpeciesLevelFromChains(ann.Class, candidate)
			score, err := ExplainedIntensityScore(peaks, fragments, accurateMZ, tol)
			if err != nil {
				return nil, err
			}
			if score >= minScore {
				m := lipid.MatchedLipid{
					Annotation: molecular,
					AccurateMZ: accurateMZ,
					Ionization: ion,
					Fragments:  fragments,
					Score:      score,
				}
				matched[m.Key()] = m
			}
		}

		if !advance(indices, len(chains)) {
			break
		}
	}

	results := make([]lipid.MatchedLipid, 0, len(matched))
	for _, m := range matched {
		results = append(results, m)
	}
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Annotation.Name() != b.Annotation.Name() {
			return a.Annotation.Name() < b.Annotation.Name()
		}
		return a.Score < b.Score
	})
	return results, nil
}

// sumsMatch checks the exact integer equality of the summed carbon and
// double-bond counts against the species totals.
func sumsMatch(chains []lipid.Chain, totalCarbons, totalDoubleBonds int) bool {
	carbons, doubleBonds := 0, 0
	for _, chain := range chains {
		carbons += chain.Carbons
		doubleBonds += chain.DoubleBonds
	}
	return carbons == totalCarbons && doubleBonds == totalDoubleBonds
}

// chainTypesFitClass compares the candidate's chain-type multiset against
// the class template, order-independently.
func chainTypesFitClass(chains []lipid.Chain, class lipid.LipidClass) bool {
	if len(chains) != len(class.ChainTypes) {
		return false
	}
	have := make([]int, len(chains))
	want := make([]int, len(class.ChainTypes))
	for i, chain := range chains {
		have[i] = int(chain.Type)
	}
	for i, ct := range class.ChainTypes {
		want[i] = int(ct)
	}
	sort.Ints(have)
	sort.Ints(want)
	for i := range have {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

// advance increments a base-n odometer over tuple indices; it returns
// false when the enumeration is exhausted.
func advance(indices []int, n int) bool {
	for i := len(indices) - 1; i >= 0; i-- {
		indices[i]++
		if indices[i] < n {
			return true
		}
		indices[i] = 0
	}
	return false
}
