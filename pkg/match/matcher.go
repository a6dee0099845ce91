// Package match implements the rule-driven MS/MS annotation engine:
// per-peak fragment matching, explained-intensity scoring, species-level
// confirmation and molecular-species prediction.
package match

import (
	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// Matcher matches spectrum peaks against class-specific fragmentation
// rules. It holds no per-call state; one Matcher may serve concurrent
// matching calls.
type Matcher struct {
	Tolerance core.MZTolerance
	Chains    *lipid.ChainEnumerator

	// OnRuleError, if set, is called when a rule is skipped because its
	// formula could not be evaluated. Matching continues with the next
	// rule.
	OnRuleError func(rule lipid.FragmentationRule, err error)
}

// NewMatcher creates a matcher with the given tolerance and chain
// enumerator. A nil enumerator gets the default bounds.
func NewMatcher(tol core.MZTolerance, chains *lipid.ChainEnumerator) *Matcher {
	if chains == nil {
		chains = lipid.NewChainEnumerator(0, -1)
	}
	return &Matcher{Tolerance: tol, Chains: chains}
}

// FindClassFragment checks one peak against the rules in catalog order
// and returns the first matching fragment, or nil if no rule explains the
// peak. Rules whose ionization differs from ion are skipped without
// evaluation. Rules with malformed formulas are skipped and reported via
// OnRuleError.
func (m *Matcher) FindClassFragment(ann lipid.Annotation, ion core.IonizationType,
	rules []lipid.FragmentationRule, peak core.Peak, scan core.Scan) *lipid.LipidFragment {

	tolRange := m.Tolerance.RangeAround(peak.MZ)
	for _, rule := range rules {
		if rule.Ionization != ion {
			continue
		}
		frag, err := m.evaluateRule(rule, tolRange, ann, peak, scan)
		if err != nil {
			if m.OnRuleError != nil {
				m.OnRuleError(rule, err)
			}
			continue
		}
		if frag != nil {
			return frag
		}
	}
	return nil
}

// MatchFragments runs FindClassFragment over every peak of a spectrum and
// collects the explained fragments. Unexplained peaks are simply omitted.
func (m *Matcher) MatchFragments(ann lipid.Annotation, ion core.IonizationType,
	rules []lipid.FragmentationRule, spectrum *core.Spectrum) []lipid.LipidFragment {

	var fragments []lipid.LipidFragment
	for _, peak := range spectrum.Peaks {
		frag := m.FindClassFragment(ann, ion, rules, peak, spectrum.Scan)
		if frag != nil {
			fragments = append(fragments, *frag)
		}
	}
	return fragments
}
