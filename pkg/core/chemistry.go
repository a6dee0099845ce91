// Package core provides chemistry primitives for lipid mass calculations:
// monoisotopic masses, molecular formulas, ionization types and m/z
// tolerance handling.
package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Atomic masses (monoisotopic)
const (
	MassH = 1.0078250321
	MassC = 12.0000000000
	MassN = 14.0030740052
	MassO = 15.9949146221
	MassS = 31.9720706900
	MassP = 30.9737615100

	// Proton mass for charge calculations
	ProtonMass = 1.00727646688
)

// elementMasses maps supported element symbols to monoisotopic masses.
var elementMasses = map[string]float64{
	"H": MassH,
	"C": MassC,
	"N": MassN,
	"O": MassO,
	"S": MassS,
	"P": MassP,
}

// elementOrder is the Hill-style output order used by Formula.String.
var elementOrder = []string{"C", "H", "N", "O", "P", "S"}

// Formula stores an elemental composition as element -> atom count.
// The zero value is the empty formula.
type Formula struct {
	counts map[string]int
}

// MalformedFormulaError reports a formula string that could not be parsed.
type MalformedFormulaError struct {
	Formula string
	Message string
}

func (e *MalformedFormulaError) Error() string {
	return fmt.Sprintf("malformed formula %q: %s", e.Formula, e.Message)
}

// ParseFormula parses a molecular formula like "C5H15NO4P" into a Formula.
// Only C, H, N, O, P and S are supported. An empty string, an unknown
// element or a zero count yields a MalformedFormulaError.
func ParseFormula(s string) (Formula, error) {
	if strings.TrimSpace(s) == "" {
		return Formula{}, &MalformedFormulaError{Formula: s, Message: "empty formula"}
	}

	counts := make(map[string]int)
	i := 0
	for i < len(s) {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return Formula{}, &MalformedFormulaError{
				Formula: s,
				Message: fmt.Sprintf("expected element symbol at position %d", i),
			}
		}

		// Element symbol: one uppercase letter, optionally one lowercase
		sym := string(c)
		i++
		if i < len(s) && s[i] >= 'a' && s[i] <= 'z' {
			sym += string(s[i])
			i++
		}
		if _, ok := elementMasses[sym]; !ok {
			return Formula{}, &MalformedFormulaError{
				Formula: s,
				Message: fmt.Sprintf("unsupported element %q", sym),
			}
		}

		// Optional count, default 1
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		count := 1
		if i > start {
			n, err := strconv.Atoi(s[start:i])
			if err != nil || n == 0 {
				return Formula{}, &MalformedFormulaError{
					Formula: s,
					Message: fmt.Sprintf("invalid count for element %q", sym),
				}
			}
			count = n
		}

		counts[sym] += count
	}

	return Formula{counts: counts}, nil
}

// MustParseFormula is like ParseFormula but panics on error. It is intended
// for compile-time-constant formulas in catalogs and tests.
func MustParseFormula(s string) Formula {
	f, err := ParseFormula(s)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFormula builds a formula directly from element counts. Elements with
// non-positive counts are dropped.
func NewFormula(counts map[string]int) Formula {
	f := Formula{counts: make(map[string]int)}
	for sym, n := range counts {
		if n > 0 {
			f.counts[sym] = n
		}
	}
	return f
}

// Count returns the atom count for an element symbol.
func (f Formula) Count(sym string) int {
	return f.counts[sym]
}

// IsEmpty reports whether the formula has no atoms.
func (f Formula) IsEmpty() bool {
	return len(f.counts) == 0
}

// ExactMass returns the monoisotopic mass of the neutral formula.
func (f Formula) ExactMass() float64 {
	mass := 0.0
	for sym, n := range f.counts {
		mass += float64(n) * elementMasses[sym]
	}
	return mass
}

// Add returns the element-wise sum of two formulas.
func (f Formula) Add(other Formula) Formula {
	sum := make(map[string]int, len(f.counts))
	for sym, n := range f.counts {
		sum[sym] = n
	}
	for sym, n := range other.counts {
		sum[sym] += n
	}
	return NewFormula(sum)
}

// Subtract returns f minus other. Elements whose count drops to zero or
// below are removed.
func (f Formula) Subtract(other Formula) Formula {
	diff := make(map[string]int, len(f.counts))
	for sym, n := range f.counts {
		diff[sym] = n
	}
	for sym, n := range other.counts {
		diff[sym] -= n
	}
	return NewFormula(diff)
}

// String renders the formula in Hill-style element order (C, H, then
// heteroatoms), omitting counts of one.
func (f Formula) String() string {
	if len(f.counts) == 0 {
		return ""
	}

	var b strings.Builder
	seen := make(map[string]bool)
	write := func(sym string) {
		n := f.counts[sym]
		if n == 0 {
			return
		}
		b.WriteString(sym)
		if n > 1 {
			b.WriteString(strconv.Itoa(n))
		}
		seen[sym] = true
	}

	for _, sym := range elementOrder {
		write(sym)
	}
	var rest []string
	for sym := range f.counts {
		if !seen[sym] {
			rest = append(rest, sym)
		}
	}
	sort.Strings(rest)
	for _, sym := range rest {
		write(sym)
	}
	return b.String()
}

// RoundFloat rounds a float to n decimal places.
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
