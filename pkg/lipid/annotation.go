package lipid

import (
	"fmt"
	"strings"

	"github.com/mzkit/lipidmatch/pkg/core"
)

// AnnotationLevel is the granularity of a lipid annotation.
type AnnotationLevel int

const (
	// SpeciesLevel identifies a lipid by total carbon and double-bond
	// counts, e.g. "PC 34:1".
	SpeciesLevel AnnotationLevel = iota + 1
	// MolecularSpeciesLevel identifies the chain-by-chain composition,
	// e.g. "PC 16:0_18:1".
	MolecularSpeciesLevel
)

func (l AnnotationLevel) String() string {
	switch l {
	case SpeciesLevel:
		return "species"
	case MolecularSpeciesLevel:
		return "molecular species"
	default:
		return fmt.Sprintf("AnnotationLevel(%d)", int(l))
	}
}

// Annotation is a lipid identification at some granularity.
type Annotation interface {
	LipidClass() LipidClass
	Formula() core.Formula
	Level() AnnotationLevel
	Name() string
}

// SpeciesLevelAnnotation identifies a lipid by its class and total
// carbon/double-bond counts.
type SpeciesLevelAnnotation struct {
	Class       LipidClass
	Carbons     int
	DoubleBonds int

	formula core.Formula
}

func (a SpeciesLevelAnnotation) LipidClass() LipidClass { return a.Class }
func (a SpeciesLevelAnnotation) Formula() core.Formula  { return a.formula }
func (a SpeciesLevelAnnotation) Level() AnnotationLevel { return SpeciesLevel }

func (a SpeciesLevelAnnotation) Name() string {
	return fmt.Sprintf("%s %d:%d", a.Class.Abbr, a.Carbons, a.DoubleBonds)
}

// MolecularSpeciesLevelAnnotation identifies a lipid by its concrete
// chain composition. Chains are kept in canonical sorted order so that
// structurally equal annotations render identically.
type MolecularSpeciesLevelAnnotation struct {
	Class  LipidClass
	Chains []Chain

	formula core.Formula
}

func (a MolecularSpeciesLevelAnnotation) LipidClass() LipidClass { return a.Class }
func (a MolecularSpeciesLevelAnnotation) Formula() core.Formula  { return a.formula }
func (a MolecularSpeciesLevelAnnotation) Level() AnnotationLevel { return MolecularSpeciesLevel }

func (a MolecularSpeciesLevelAnnotation) Name() string {
	parts := make([]string, len(a.Chains))
	for i, chain := range a.Chains {
		parts[i] = chain.String()
	}
	return fmt.Sprintf("%s %s", a.Class.Abbr, strings.Join(parts, "_"))
}

// Factory builds annotations and derives their molecular formulas from
// the class backbone and chain composition. It is stateless; a single
// value can be shared freely.
type Factory struct{}

var waterFormula = core.NewFormula(map[string]int{"H": 2, "O": 1})
var dihydrogenFormula = core.NewFormula(map[string]int{"H": 2})

// BuildSpeciesLevel creates a species-level annotation. The molecular
// formula is derived from the backbone plus the total chain composition:
// every ester slot condenses losing H2O, every ether slot losing H2.
func (Factory) BuildSpeciesLevel(class LipidClass, carbons, doubleBonds int) (SpeciesLevelAnnotation, error) {
	if carbons <= 0 {
		return SpeciesLevelAnnotation{}, fmt.Errorf("species-level annotation needs a positive carbon count, got %d", carbons)
	}
	if doubleBonds < 0 {
		return SpeciesLevelAnnotation{}, fmt.Errorf("species-level annotation needs a non-negative double-bond count, got %d", doubleBonds)
	}

	nAcyl := class.CountChainType(ChainTypeAcyl)
	nAlkyl := class.CountChainType(ChainTypeAlkyl)
	total := core.NewFormula(map[string]int{
		"C": carbons,
		"H": 2*carbons - 2*doubleBonds + 2*nAlkyl,
		"O": 2 * nAcyl,
	})
	formula := class.BackboneFormula.Add(total)
	for i := 0; i < nAcyl; i++ {
		formula = formula.Subtract(waterFormula)
	}
	for i := 0; i < nAlkyl; i++ {
		formula = formula.Subtract(dihydrogenFormula)
	}

	return SpeciesLevelAnnotation{
		Class:       class,
		Carbons:     carbons,
		DoubleBonds: doubleBonds,
		formula:     formula,
	}, nil
}

// BuildMolecularSpeciesLevelFromChains creates a molecular-species-level
// annotation from a concrete chain combination. The chains are copied and
// canonically sorted.
func (Factory) BuildMolecularSpeciesLevelFromChains(class LipidClass, chains []Chain) MolecularSpeciesLevelAnnotation {
	sorted := make([]Chain, len(chains))
	copy(sorted, chains)
	SortChains(sorted)

	formula := class.BackboneFormula
	for _, chain := range sorted {
		formula = formula.Add(chain.Formula())
		if chain.Type == ChainTypeAlkyl {
			formula = formula.Subtract(dihydrogenFormula)
		} else {
			formula = formula.Subtract(waterFormula)
		}
	}

	return MolecularSpeciesLevelAnnotation{
		Class:   class,
		Chains:  sorted,
		formula: formula,
	}
}
