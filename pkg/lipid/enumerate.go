package lipid

import "sync"

// Default chain enumeration bounds, covering the fatty acid chain lengths
// seen in common biological lipids.
const (
	DefaultMaxChainLength = 26
	DefaultMaxDoubleBonds = 6
)

// ChainEnumerator produces the finite candidate set of chain formulas up
// to its configured bounds. Enumeration order is ascending carbon count,
// then ascending double-bond count within each carbon count; matching
// picks the first candidate inside tolerance, so this order is part of
// the matching contract.
//
// Both chain lists are built once on first use and are read-only
// afterwards, so a single enumerator may be shared across concurrent
// matching calls.
type ChainEnumerator struct {
	maxCarbons     int
	maxDoubleBonds int

	acylOnce  sync.Once
	acyl      []Chain
	alkylOnce sync.Once
	alkyl     []Chain
}

// NewChainEnumerator creates an enumerator with the given bounds.
// Non-positive bounds fall back to the defaults.
func NewChainEnumerator(maxCarbons, maxDoubleBonds int) *ChainEnumerator {
	if maxCarbons <= 0 {
		maxCarbons = DefaultMaxChainLength
	}
	if maxDoubleBonds < 0 {
		maxDoubleBonds = DefaultMaxDoubleBonds
	}
	return &ChainEnumerator{maxCarbons: maxCarbons, maxDoubleBonds: maxDoubleBonds}
}

// AcylChains returns all fatty-acid-like chains within bounds.
// The returned slice is shared; callers must not modify it.
func (e *ChainEnumerator) AcylChains() []Chain {
	e.acylOnce.Do(func() {
		e.acyl = e.enumerate(ChainTypeAcyl)
	})
	return e.acyl
}

// AlkylChains returns all hydrocarbon-like chains within bounds.
// The returned slice is shared; callers must not modify it.
func (e *ChainEnumerator) AlkylChains() []Chain {
	e.alkylOnce.Do(func() {
		e.alkyl = e.enumerate(ChainTypeAlkyl)
	})
	return e.alkyl
}

func (e *ChainEnumerator) enumerate(chainType ChainType) []Chain {
	var chains []Chain
	for carbons := 1; carbons <= e.maxCarbons; carbons++ {
		for doubleBonds := 0; doubleBonds <= e.maxDoubleBonds; doubleBonds++ {
			chain := Chain{Type: chainType, Carbons: carbons, DoubleBonds: doubleBonds}
			// Skip compositions without at least two hydrogens left
			if chain.Formula().Count("H") < 2 {
				continue
			}
			chains = append(chains, chain)
		}
	}
	return chains
}
