package lipid

import (
	"testing"
)

func TestAcylChainEnumerationOrder(t *testing.T) {
	e := NewChainEnumerator(4, 2)
	chains := e.AcylChains()

	if len(chains) == 0 {
		t.Fatal("no chains enumerated")
	}

	// Ascending carbons, then ascending double bonds, no repeats
	prev := chains[0]
	seen := map[Chain]bool{prev: true}
	for _, chain := range chains[1:] {
		if chain.Carbons < prev.Carbons {
			t.Fatalf("carbon order violated: %v after %v", chain, prev)
		}
		if chain.Carbons == prev.Carbons && chain.DoubleBonds <= prev.DoubleBonds {
			t.Fatalf("double-bond order violated: %v after %v", chain, prev)
		}
		if seen[chain] {
			t.Fatalf("duplicate chain %v", chain)
		}
		seen[chain] = true
		prev = chain
	}
}

func TestChainEnumerationExcludesZeroCarbons(t *testing.T) {
	e := NewChainEnumerator(6, 3)
	for _, chain := range e.AcylChains() {
		if chain.Carbons < 1 {
			t.Errorf("enumerated chain with %d carbons", chain.Carbons)
		}
		if chain.Formula().Count("H") < 2 {
			t.Errorf("chain %v has %d hydrogens", chain, chain.Formula().Count("H"))
		}
	}
	for _, chain := range e.AlkylChains() {
		if chain.Carbons < 1 {
			t.Errorf("enumerated chain with %d carbons", chain.Carbons)
		}
	}
}

func TestChainFormulas(t *testing.T) {
	tests := []struct {
		name  string
		chain Chain
		want  string
	}{
		{"palmitic acid", Chain{Type: ChainTypeAcyl, Carbons: 16, DoubleBonds: 0}, "C16H32O2"},
		{"oleic acid", Chain{Type: ChainTypeAcyl, Carbons: 18, DoubleBonds: 1}, "C18H34O2"},
		{"hexadecane", Chain{Type: ChainTypeAlkyl, Carbons: 16, DoubleBonds: 0}, "C16H34"},
		{"hexadecene", Chain{Type: ChainTypeAlkyl, Carbons: 16, DoubleBonds: 1}, "C16H32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.chain.Formula().String(); got != tt.want {
				t.Errorf("Formula() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChainEnumerationMemoized(t *testing.T) {
	e := NewChainEnumerator(10, 3)
	first := e.AcylChains()
	second := e.AcylChains()
	if &first[0] != &second[0] {
		t.Error("AcylChains rebuilt instead of reusing the memoized list")
	}
}

func TestChainString(t *testing.T) {
	acyl := Chain{Type: ChainTypeAcyl, Carbons: 16, DoubleBonds: 1}
	if got := acyl.String(); got != "16:1" {
		t.Errorf("acyl String() = %q, want \"16:1\"", got)
	}
	alkyl := Chain{Type: ChainTypeAlkyl, Carbons: 16, DoubleBonds: 0}
	if got := alkyl.String(); got != "O-16:0" {
		t.Errorf("alkyl String() = %q, want \"O-16:0\"", got)
	}
}
