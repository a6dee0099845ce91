package lipid

import (
	"fmt"

	"github.com/mzkit/lipidmatch/pkg/core"
)

// LipidFragment is one explained peak: the rule that explained it, the
// predicted exact m/z, the source peak and scan, and the chain attributes
// for chain-derived fragments. Values are immutable after creation by the
// matcher.
type LipidFragment struct {
	RuleKind    RuleKind
	Level       AnnotationLevel
	PredictedMZ float64
	Peak        core.Peak
	Class       LipidClass
	ChainLength int
	DoubleBonds int
	ChainType   ChainType // ChainTypeNone when the rule carries no chain info
	Scan        core.Scan
}

// Chain returns the chain this fragment identifies, if it carries chain
// attributes.
func (f LipidFragment) Chain() (Chain, bool) {
	if f.ChainType == ChainTypeNone || f.ChainLength <= 0 {
		return Chain{}, false
	}
	return Chain{Type: f.ChainType, Carbons: f.ChainLength, DoubleBonds: f.DoubleBonds}, true
}

func (f LipidFragment) String() string {
	if chain, ok := f.Chain(); ok {
		return fmt.Sprintf("%s %s @ %.4f", f.RuleKind, chain, f.PredictedMZ)
	}
	return fmt.Sprintf("%s @ %.4f", f.RuleKind, f.PredictedMZ)
}

// MatchedLipid is an accepted annotation with the fragment evidence and
// explained-intensity score behind it.
type MatchedLipid struct {
	Annotation Annotation
	AccurateMZ float64
	Ionization core.IonizationType
	Fragments  []LipidFragment
	Score      float64 // explained intensity in percent, [0, 100]
}

// Key is the structural identity used to deduplicate matches: annotation
// name and level plus the score rounded to tolerance-scale precision.
func (m MatchedLipid) Key() string {
	return fmt.Sprintf("%s|%s|%.4f", m.Annotation.Name(), m.Annotation.Level(), core.RoundFloat(m.Score, 4))
}
