// Package lipid provides the lipid domain model: chains, classes,
// annotations, fragmentation rules and matched results.
package lipid

import (
	"fmt"
	"sort"

	"github.com/mzkit/lipidmatch/pkg/core"
)

// ChainType distinguishes ester-linked acyl chains from ether-linked
// alkyl chains.
type ChainType int

const (
	ChainTypeNone ChainType = iota
	ChainTypeAcyl
	ChainTypeAlkyl
)

func (ct ChainType) String() string {
	switch ct {
	case ChainTypeAcyl:
		return "acyl"
	case ChainTypeAlkyl:
		return "alkyl"
	default:
		return "none"
	}
}

// Chain is a single lipid chain identified by type, carbon count and
// double-bond count.
type Chain struct {
	Type        ChainType
	Carbons     int
	DoubleBonds int
}

// Formula returns the neutral formula of the free chain: the fatty acid
// CnH(2n-2d)O2 for acyl chains, the hydrocarbon CnH(2n+2-2d) for alkyl
// chains.
func (c Chain) Formula() core.Formula {
	switch c.Type {
	case ChainTypeAcyl:
		return core.NewFormula(map[string]int{
			"C": c.Carbons,
			"H": 2*c.Carbons - 2*c.DoubleBonds,
			"O": 2,
		})
	case ChainTypeAlkyl:
		return core.NewFormula(map[string]int{
			"C": c.Carbons,
			"H": 2*c.Carbons + 2 - 2*c.DoubleBonds,
		})
	default:
		return core.Formula{}
	}
}

// String renders the chain in shorthand notation, e.g. "16:0" for an acyl
// chain and "O-16:0" for an alkyl chain.
func (c Chain) String() string {
	if c.Type == ChainTypeAlkyl {
		return fmt.Sprintf("O-%d:%d", c.Carbons, c.DoubleBonds)
	}
	return fmt.Sprintf("%d:%d", c.Carbons, c.DoubleBonds)
}

// ChainsFromFragments reduces a fragment list to the distinct chains it
// carries, in canonical sorted order.
func ChainsFromFragments(fragments []LipidFragment) []Chain {
	seen := make(map[Chain]bool)
	var chains []Chain
	for _, frag := range fragments {
		chain, ok := frag.Chain()
		if !ok {
			continue
		}
		if !seen[chain] {
			seen[chain] = true
			chains = append(chains, chain)
		}
	}
	SortChains(chains)
	return chains
}

// SortChains orders chains canonically: alkyl before acyl (ether chains
// lead in shorthand notation), then ascending carbons, then ascending
// double bonds.
func SortChains(chains []Chain) {
	rank := func(t ChainType) int {
		if t == ChainTypeAlkyl {
			return 0
		}
		return 1
	}
	sort.Slice(chains, func(i, j int) bool {
		a, b := chains[i], chains[j]
		if a.Type != b.Type {
			return rank(a.Type) < rank(b.Type)
		}
		if a.Carbons != b.Carbons {
			return a.Carbons < b.Carbons
		}
		return a.DoubleBonds < b.DoubleBonds
	})
}
