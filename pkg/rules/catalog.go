// Package rules provides class-specific fragmentation rule catalogs:
// a built-in starter set and a CSV loader for user-supplied rules.
package rules

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

// ClassRules pairs a lipid class with its ordered rule list. Rule order
// is semantically significant: for a peak several rules could explain,
// the first rule in the list wins.
type ClassRules struct {
	Class lipid.LipidClass
	Rules []lipid.FragmentationRule
}

// BuiltIn returns the built-in starter catalog. The returned slice is a
// fresh copy; callers may extend it.
func BuiltIn() []ClassRules {
	catalog := make([]ClassRules, len(builtInCatalog))
	for i, entry := range builtInCatalog {
		ruleList := make([]lipid.FragmentationRule, len(entry.Rules))
		copy(ruleList, entry.Rules)
		catalog[i] = ClassRules{Class: entry.Class, Rules: ruleList}
	}
	return catalog
}

// FindClass looks a class up by abbreviation in a catalog.
func FindClass(catalog []ClassRules, abbr string) (ClassRules, bool) {
	for _, entry := range catalog {
		if entry.Class.Abbr == abbr {
			return entry, true
		}
	}
	return ClassRules{}, false
}

var builtInCatalog = []ClassRules{
	{
		Class: lipid.LipidClass{
			Name:            "Phosphatidylcholine",
			Abbr:            "PC",
			BackboneFormula: core.MustParseFormula("C8H20NO6P"),
			ChainTypes:      []lipid.ChainType{lipid.ChainTypeAcyl, lipid.ChainTypeAcyl},
		},
		Rules: []lipid.FragmentationRule{
			{Kind: lipid.RuleHeadgroupFragment, Ionization: core.IonizationPositiveHydrogen, Level: lipid.SpeciesLevel, Formula: "C5H15NO4P"},
			{Kind: lipid.RuleHeadgroupFragmentNL, Ionization: core.IonizationPositiveHydrogen, Level: lipid.SpeciesLevel, Formula: "H2O"},
			{Kind: lipid.RuleAcylChainFragmentNL, Ionization: core.IonizationPositiveHydrogen, Level: lipid.MolecularSpeciesLevel},
			{Kind: lipid.RuleAcylChainMinusFormulaFragmentNL, Ionization: core.IonizationPositiveHydrogen, Level: lipid.MolecularSpeciesLevel, Formula: "H2O"},
		},
	},
	{
		Class: lipid.LipidClass{
			Name:            "Phosphatidylethanolamine",
			Abbr:            "PE",
			BackboneFormula: core.MustParseFormula("C5H14NO6P"),
			ChainTypes:      []lipid.ChainType{lipid.ChainTypeAcyl, lipid.ChainTypeAcyl},
		},
		Rules: []lipid.FragmentationRule{
			{Kind: lipid.RuleHeadgroupFragment, Ionization: core.IonizationNegativeHydrogen, Level: lipid.SpeciesLevel, Formula: "C5H11NO5P"},
			{Kind: lipid.RuleHeadgroupFragment, Ionization: core.IonizationNegativeHydrogen, Level: lipid.SpeciesLevel, Formula: "C3H6O5P"},
			{Kind: lipid.RuleAcylChainFragment, Ionization: core.IonizationNegativeHydrogen, Level: lipid.MolecularSpeciesLevel},
			{Kind: lipid.RuleAcylChainFragmentNL, Ionization: core.IonizationNegativeHydrogen, Level: lipid.MolecularSpeciesLevel},
			{Kind: lipid.RuleAcylChainMinusFormulaFragmentNL, Ionization: core.IonizationNegativeHydrogen, Level: lipid.MolecularSpeciesLevel, Formula: "H2O"},
		},
	},
	{
		Class: lipid.LipidClass{
			Name:            "Triacylglycerol",
			Abbr:            "TG",
			BackboneFormula: core.MustParseFormula("C3H8O3"),
			ChainTypes:      []lipid.ChainType{lipid.ChainTypeAcyl, lipid.ChainTypeAcyl, lipid.ChainTypeAcyl},
		},
		Rules: []lipid.FragmentationRule{
			{Kind: lipid.RuleAcylChainFragmentNL, Ionization: core.IonizationAmmonium, Level: lipid.MolecularSpeciesLevel},
			{Kind: lipid.RuleTwoAcylChainsPlusFormulaFragment, Ionization: core.IonizationAmmonium, Level: lipid.MolecularSpeciesLevel, Formula: "C3H3"},
		},
	},
	{
		Class: lipid.LipidClass{
			Name:            "Ether phosphatidylcholine",
			Abbr:            "PC O",
			BackboneFormula: core.MustParseFormula("C8H20NO6P"),
			ChainTypes:      []lipid.ChainType{lipid.ChainTypeAlkyl, lipid.ChainTypeAcyl},
		},
		Rules: []lipid.FragmentationRule{
			{Kind: lipid.RuleHeadgroupFragment, Ionization: core.IonizationPositiveHydrogen, Level: lipid.SpeciesLevel, Formula: "C5H15NO4P"},
			{Kind: lipid.RuleAlkylChainFragmentNL, Ionization: core.IonizationPositiveHydrogen, Level: lipid.MolecularSpeciesLevel},
			{Kind: lipid.RuleAcylChainFragmentNL, Ionization: core.IonizationPositiveHydrogen, Level: lipid.MolecularSpeciesLevel},
		},
	},
}

// LoadCSV reads additional rules from a CSV stream with a header line and
// rows of the form
//
//	class,ruleKind,ionization,level,formula
//
// e.g. "PC,HEADGROUP_FRAGMENT,[M+H]+,species,C5H15NO4P". The formula
// column may be empty for chain-enumeration kinds. Rules are appended to
// the matching class of the given catalog in file order; an unknown class
// abbreviation is an error since the class template cannot be expressed
// in this format.
func LoadCSV(r io.Reader, catalog []ClassRules) ([]ClassRules, error) {
	scanner := bufio.NewScanner(r)

	// Header line
	scanner.Scan()

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 4 {
			return nil, fmt.Errorf("line %d: invalid format, expected at least 4 comma-separated fields", lineNum)
		}

		abbr := strings.TrimSpace(parts[0])
		kind, err := lipid.ParseRuleKind(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		ion, err := core.ParseIonizationType(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		level, err := parseLevel(strings.TrimSpace(parts[3]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		formula := ""
		if len(parts) > 4 {
			formula = strings.TrimSpace(parts[4])
		}

		found := false
		for i := range catalog {
			if catalog[i].Class.Abbr == abbr {
				catalog[i].Rules = append(catalog[i].Rules, lipid.FragmentationRule{
					Kind:       kind,
					Ionization: ion,
					Level:      level,
					Formula:    formula,
				})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("line %d: unknown lipid class %q", lineNum, abbr)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	return catalog, nil
}

func parseLevel(s string) (lipid.AnnotationLevel, error) {
	switch strings.ToLower(s) {
	case "species":
		return lipid.SpeciesLevel, nil
	case "molecular", "molecular species", "molecular_species":
		return lipid.MolecularSpeciesLevel, nil
	default:
		return 0, fmt.Errorf("unknown annotation level %q", s)
	}
}
