package rules

import (
	"strings"
	"testing"

	"github.com/mzkit/lipidmatch/pkg/core"
	"github.com/mzkit/lipidmatch/pkg/lipid"
)

func TestBuiltInCatalog(t *testing.T) {
	catalog := BuiltIn()

	tests := []struct {
		abbr       string
		chainTypes []lipid.ChainType
		ruleCount  int
	}{
		{"PC", []lipid.ChainType{lipid.ChainTypeAcyl, lipid.ChainTypeAcyl}, 4},
		{"PE", []lipid.ChainType{lipid.ChainTypeAcyl, lipid.ChainTypeAcyl}, 5},
		{"TG", []lipid.ChainType{lipid.ChainTypeAcyl, lipid.ChainTypeAcyl, lipid.ChainTypeAcyl}, 2},
		{"PC O", []lipid.ChainType{lipid.ChainTypeAlkyl, lipid.ChainTypeAcyl}, 3},
	}
	for _, tt := range tests {
		entry, ok := FindClass(catalog, tt.abbr)
		if !ok {
			t.Errorf("FindClass(%q) not found", tt.abbr)
			continue
		}
		if len(entry.Class.ChainTypes) != len(tt.chainTypes) {
			t.Errorf("%s: %d chain slots, want %d", tt.abbr, len(entry.Class.ChainTypes), len(tt.chainTypes))
			continue
		}
		for i, ct := range tt.chainTypes {
			if entry.Class.ChainTypes[i] != ct {
				t.Errorf("%s: chain slot %d = %v, want %v", tt.abbr, i, entry.Class.ChainTypes[i], ct)
			}
		}
		if len(entry.Rules) != tt.ruleCount {
			t.Errorf("%s: %d rules, want %d", tt.abbr, len(entry.Rules), tt.ruleCount)
		}
	}

	if _, ok := FindClass(catalog, "XX"); ok {
		t.Error("FindClass found a class that does not exist")
	}
}

func TestBuiltInReturnsIndependentCopies(t *testing.T) {
	first := BuiltIn()
	pc, _ := FindClass(first, "PC")
	pcRules := len(pc.Rules)

	// Growing one copy must not leak into a later copy.
	csv := "class,ruleKind,ionization,level,formula\n" +
		"PC,HEADGROUP_FRAGMENT,[M+Na]+,species,C5H14NO4P\n"
	if _, err := LoadCSV(strings.NewReader(csv), first); err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	second := BuiltIn()
	pc, _ = FindClass(second, "PC")
	if len(pc.Rules) != pcRules {
		t.Errorf("built-in catalog grew to %d PC rules after LoadCSV on a copy", len(pc.Rules))
	}
}

func TestLoadCSV(t *testing.T) {
	csv := "class,ruleKind,ionization,level,formula\n" +
		"PC,HEADGROUP_FRAGMENT,[M+Na]+,species,C5H14NO4P\n" +
		"\n" +
		"PE,ACYLCHAIN_MINUS_FORMULA_FRAGMENT,[M-H]-,molecular,CO2\n"

	catalog, err := LoadCSV(strings.NewReader(csv), BuiltIn())
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}

	pc, _ := FindClass(catalog, "PC")
	got := pc.Rules[len(pc.Rules)-1]
	want := lipid.FragmentationRule{
		Kind:       lipid.RuleHeadgroupFragment,
		Ionization: core.IonizationSodium,
		Level:      lipid.SpeciesLevel,
		Formula:    "C5H14NO4P",
	}
	if got != want {
		t.Errorf("appended PC rule = %+v, want %+v", got, want)
	}

	pe, _ := FindClass(catalog, "PE")
	got = pe.Rules[len(pe.Rules)-1]
	if got.Kind != lipid.RuleAcylChainMinusFormulaFragment || got.Formula != "CO2" {
		t.Errorf("appended PE rule = %+v", got)
	}
}

func TestLoadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{
			name: "unknown class",
			csv:  "class,ruleKind,ionization,level,formula\nXX,HEADGROUP_FRAGMENT,[M+H]+,species,C2H4\n",
		},
		{
			name: "unknown rule kind",
			csv:  "class,ruleKind,ionization,level,formula\nPC,NOT_A_RULE,[M+H]+,species,C2H4\n",
		},
		{
			name: "unknown ionization",
			csv:  "class,ruleKind,ionization,level,formula\nPC,HEADGROUP_FRAGMENT,[M+Xy]+,species,C2H4\n",
		},
		{
			name: "unknown level",
			csv:  "class,ruleKind,ionization,level,formula\nPC,HEADGROUP_FRAGMENT,[M+H]+,isomer,C2H4\n",
		},
		{
			name: "too few fields",
			csv:  "class,ruleKind,ionization,level,formula\nPC,HEADGROUP_FRAGMENT\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadCSV(strings.NewReader(tt.csv), BuiltIn()); err == nil {
				t.Error("LoadCSV() accepted a malformed catalog")
			}
		})
	}
}

func TestParseSpeciesName(t *testing.T) {
	catalog := BuiltIn()

	tests := []struct {
		name        string
		abbr        string
		carbons     int
		doubleBonds int
	}{
		{"PC 34:1", "PC", 34, 1},
		{"TG 52:2", "TG", 52, 2},
		{"PC O 34:1", "PC O", 34, 1},
	}
	for _, tt := range tests {
		entry, carbons, doubleBonds, err := ParseSpeciesName(catalog, tt.name)
		if err != nil {
			t.Errorf("ParseSpeciesName(%q) error = %v", tt.name, err)
			continue
		}
		if entry.Class.Abbr != tt.abbr || carbons != tt.carbons || doubleBonds != tt.doubleBonds {
			t.Errorf("ParseSpeciesName(%q) = %q %d:%d, want %q %d:%d",
				tt.name, entry.Class.Abbr, carbons, doubleBonds, tt.abbr, tt.carbons, tt.doubleBonds)
		}
	}
}

func TestParseSpeciesNameErrors(t *testing.T) {
	catalog := BuiltIn()
	for _, name := range []string{"", "PC", "XX 34:1", "PC 34", "PC 34:1:2", "PC x:1", "PC 34:y"} {
		if _, _, _, err := ParseSpeciesName(catalog, name); err == nil {
			t.Errorf("ParseSpeciesName(%q) accepted an invalid name", name)
		}
	}
}
