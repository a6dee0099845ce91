package lipid

import "github.com/mzkit/lipidmatch/pkg/core"

// LipidClass describes a lipid class: its backbone composition and the
// ordered template of chain slots attached to it.
type LipidClass struct {
	Name            string
	Abbr            string
	BackboneFormula core.Formula
	ChainTypes      []ChainType
}

// ChainCount returns the number of chain slots in the class template.
func (c LipidClass) ChainCount() int {
	return len(c.ChainTypes)
}

// CountChainType returns how many template slots carry the given type.
func (c LipidClass) CountChainType(t ChainType) int {
	n := 0
	for _, ct := range c.ChainTypes {
		if ct == t {
			n++
		}
	}
	return n
}
