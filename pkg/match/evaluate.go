package match

import (
	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// evaluateRule applies one fragmentation rule to one peak and returns at
// most one fragment. A returned error means the rule's formula could not
// be evaluated; the rule is then skipped by the caller.
//
// The switch is exhaustive over the closed set of rule kinds.
func (m *Matcher) evaluateRule(rule lipid.FragmentationRule, tolRange core.Range,
	ann lipid.Annotation, peak core.Peak, scan core.Scan) (*lipid.LipidFragment, error) {

	switch rule.Kind {
	case lipid.RuleHeadgroupFragment:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		return m.plainMatch(rule, tolRange, ann, peak, scan, fragMass), nil

	case lipid.RuleHeadgroupFragmentNL:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		mz := precursorIonMZ(ann, rule) - fragMass
		return m.plainMatch(rule, tolRange, ann, peak, scan, mz), nil

	case lipid.RuleAcylChainFragment:
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AcylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return ionizedChainMass(chain) }), nil

	case lipid.RuleAcylChainFragmentNL:
		precursor := precursorIonMZ(ann, rule)
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AcylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return precursor - chain.Formula().ExactMass() }), nil

	case lipid.RuleAcylChainMinusFormulaFragment:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AcylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return ionizedChainMass(chain) - fragMass }), nil

	case lipid.RuleAcylChainMinusFormulaFragmentNL:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		precursor := precursorIonMZ(ann, rule)
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AcylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return precursor - ionizedChainMass(chain) - fragMass }), nil

	case lipid.RuleAcylChainPlusFormulaFragment:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AcylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return ionizedChainMass(chain) + fragMass }), nil

	case lipid.RuleAcylChainPlusFormulaFragmentNL:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		precursor := precursorIonMZ(ann, rule)
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AcylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return precursor - ionizedChainMass(chain) + fragMass }), nil

	case lipid.RuleTwoAcylChainsPlusFormulaFragment:
		return m.twoChainMatch(rule, tolRange, ann, peak, scan)

	case lipid.RuleAlkylChainFragment:
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AlkylChains(), lipid.ChainTypeAlkyl,
			func(chain lipid.Chain) float64 { return ionizedChainMass(chain) }), nil

	case lipid.RuleAlkylChainFragmentNL:
		precursor := precursorIonMZ(ann, rule)
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AlkylChains(), lipid.ChainTypeAlkyl,
			func(chain lipid.Chain) float64 { return precursor - chain.Formula().ExactMass() }), nil

	case lipid.RuleAlkylChainMinusFormulaFragment:
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AlkylChains(), lipid.ChainTypeAlkyl,
			func(chain lipid.Chain) float64 { return ionizedChainMass(chain) - fragMass }), nil

	case lipid.RuleAlkylChainMinusFormulaFragmentNL:
		// Note: the fragment is tagged as an acyl chain even though the
		// enumeration is over alkyl chains. See the chain-type tagging
		// tests before changing this.
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		precursor := precursorIonMZ(ann, rule)
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AlkylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return precursor - ionizedChainMass(chain) - fragMass }), nil

	case lipid.RuleAlkylChainPlusFormulaFragment:
		// Tagged acyl, same caveat as above.
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AlkylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return ionizedChainMass(chain) + fragMass }), nil

	case lipid.RuleAlkylChainPlusFormulaFragmentNL:
		// Tagged acyl, same caveat as above.
		fragMass, err := ruleFormulaMass(rule)
		if err != nil {
			return nil, err
		}
		precursor := precursorIonMZ(ann, rule)
		return m.firstChainMatch(rule, tolRange, ann, peak, scan, m.Chains.AlkylChains(), lipid.ChainTypeAcyl,
			func(chain lipid.Chain) float64 { return precursor - ionizedChainMass(chain) + fragMass }), nil

	default:
		return nil, nil
	}
}

// plainMatch returns a chain-less fragment when the predicted mass falls
// inside the tolerance range.
func (m *Matcher) plainMatch(rule lipid.FragmentationRule, tolRange core.Range,
	ann lipid.Annotation, peak core.Peak, scan core.Scan, mz float64) *lipid.LipidFragment {

	if !tolRange.Contains(mz) {
		return nil
	}
	return &lipid.LipidFragment{
		RuleKind:    rule.Kind,
		Level:       rule.Level,
		PredictedMZ: mz,
		Peak:        peak,
		Class:       ann.LipidClass(),
		Scan:        scan,
	}
}

// firstChainMatch walks the chain candidates in enumeration order and
// returns a fragment for the first chain whose predicted mass falls inside
// the tolerance range. The first candidate wins, not the best-fitting one.
func (m *Matcher) firstChainMatch(rule lipid.FragmentationRule, tolRange core.Range,
	ann lipid.Annotation, peak core.Peak, scan core.Scan,
	chains []lipid.Chain, tag lipid.ChainType, predict func(lipid.Chain) float64) *lipid.LipidFragment {

	for _, chain := range chains {
		mz := predict(chain)
		if !tolRange.Contains(mz) {
			continue
		}
		return &lipid.LipidFragment{
			RuleKind:    rule.Kind,
			Level:       rule.Level,
			PredictedMZ: mz,
			Peak:        peak,
			Class:       ann.LipidClass(),
			ChainLength: chain.Carbons,
			DoubleBonds: chain.DoubleBonds,
			ChainType:   tag,
			Scan:        scan,
		}
	}
	return nil
}

// twoChainMatch enumerates every ordered pair of acyl chains and matches
// the sum of both neutral chain masses plus the rule formula mass. The
// chain masses enter neutral, not deprotonated, and the resulting
// fragment carries no chain assignment since the pair is ambiguous.
func (m *Matcher) twoChainMatch(rule lipid.FragmentationRule, tolRange core.Range,
	ann lipid.Annotation, peak core.Peak, scan core.Scan) (*lipid.LipidFragment, error) {

	fragMass, err := ruleFormulaMass(rule)
	if err != nil {
		return nil, err
	}
	chains := m.Chains.AcylChains()
	for i := range chains {
		massOne := chains[i].Formula().ExactMass()
		for j := range chains {
			massTwo := chains[j].Formula().ExactMass()
			mz := massOne + massTwo + fragMass
			if tolRange.Contains(mz) {
				return &lipid.LipidFragment{
					RuleKind:    rule.Kind,
					Level:       rule.Level,
					PredictedMZ: mz,
					Peak:        peak,
					Class:       ann.LipidClass(),
					Scan:        scan,
				}, nil
			}
		}
	}
	return nil, nil
}

// ruleFormulaMass parses the rule's molecular formula and returns its
// exact mass.
func ruleFormulaMass(rule lipid.FragmentationRule) (float64, error) {
	formula, err := core.ParseFormula(rule.Formula)
	if err != nil {
		return 0, err
	}
	return formula.ExactMass(), nil
}

// precursorIonMZ is the precursor neutral mass plus the ionization added
// mass of the rule under evaluation.
func precursorIonMZ(ann lipid.Annotation, rule lipid.FragmentationRule) float64 {
	return ann.Formula().ExactMass() + rule.Ionization.AddedMass()
}

// ionizedChainMass is the deprotonated mass of a free chain, the form in
// which chain ions are observed.
func ionizedChainMass(chain lipid.Chain) float64 {
	return chain.Formula().ExactMass() + core.IonizationNegativeHydrogen.AddedMass()
}
