package lipid

import (
	"fmt"

	"github.com/mzkit/lipidmatch/pkg/core"
)

// RuleKind tags one of the known fragmentation pathways. The set is
// closed; the rule evaluator switches exhaustively over it.
type RuleKind int

const (
	RuleHeadgroupFragment RuleKind = iota + 1
	RuleHeadgroupFragmentNL
	RuleAcylChainFragment
	RuleAcylChainFragmentNL
	RuleAcylChainMinusFormulaFragment
	RuleAcylChainMinusFormulaFragmentNL
	RuleAcylChainPlusFormulaFragment
	RuleAcylChainPlusFormulaFragmentNL
	RuleTwoAcylChainsPlusFormulaFragment
	RuleAlkylChainFragment
	RuleAlkylChainFragmentNL
	RuleAlkylChainMinusFormulaFragment
	RuleAlkylChainMinusFormulaFragmentNL
	RuleAlkylChainPlusFormulaFragment
	RuleAlkylChainPlusFormulaFragmentNL
)

var ruleKindNames = map[RuleKind]string{
	RuleHeadgroupFragment:                "HEADGROUP_FRAGMENT",
	RuleHeadgroupFragmentNL:              "HEADGROUP_FRAGMENT_NL",
	RuleAcylChainFragment:                "ACYLCHAIN_FRAGMENT",
	RuleAcylChainFragmentNL:              "ACYLCHAIN_FRAGMENT_NL",
	RuleAcylChainMinusFormulaFragment:    "ACYLCHAIN_MINUS_FORMULA_FRAGMENT",
	RuleAcylChainMinusFormulaFragmentNL:  "ACYLCHAIN_MINUS_FORMULA_FRAGMENT_NL",
	RuleAcylChainPlusFormulaFragment:     "ACYLCHAIN_PLUS_FORMULA_FRAGMENT",
	RuleAcylChainPlusFormulaFragmentNL:   "ACYLCHAIN_PLUS_FORMULA_FRAGMENT_NL",
	RuleTwoAcylChainsPlusFormulaFragment: "TWO_ACYLCHAINS_PLUS_FORMULA_FRAGMENT",
	RuleAlkylChainFragment:               "ALKYLCHAIN_FRAGMENT",
	RuleAlkylChainFragmentNL:             "ALKYLCHAIN_FRAGMENT_NL",
	RuleAlkylChainMinusFormulaFragment:   "ALKYLCHAIN_MINUS_FORMULA_FRAGMENT",
	RuleAlkylChainMinusFormulaFragmentNL: "ALKYLCHAIN_MINUS_FORMULA_FRAGMENT_NL",
	RuleAlkylChainPlusFormulaFragment:    "ALKYLCHAIN_PLUS_FORMULA_FRAGMENT",
	RuleAlkylChainPlusFormulaFragmentNL:  "ALKYLCHAIN_PLUS_FORMULA_FRAGMENT_NL",
}

func (k RuleKind) String() string {
	if name, ok := ruleKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("RuleKind(%d)", int(k))
}

// ParseRuleKind resolves a rule kind name as used in catalog files.
func ParseRuleKind(s string) (RuleKind, error) {
	for kind, name := range ruleKindNames {
		if s == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown rule kind %q", s)
}

// FragmentationRule is one class-specific fragmentation pathway. Formula
// holds the raw molecular formula text for rule kinds that use one
// (headgroup and plus/minus-formula kinds); it stays unparsed so that a
// bad catalog entry skips only this rule at evaluation time.
type FragmentationRule struct {
	Kind       RuleKind
	Ionization core.IonizationType
	Level      AnnotationLevel
	Formula    string
}

func (r FragmentationRule) String() string {
	if r.Formula != "" {
		return fmt.Sprintf("%s %s %s", r.Kind, r.Ionization, r.Formula)
	}
	return fmt.Sprintf("%s %s", r.Kind, r.Ionization)
}
