package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSpeciesName resolves a species-level shorthand like "PC 34:1" or
// "PC O 34:1" against a catalog. The last whitespace-separated token is
// the carbons:doubleBonds ratio; everything before it is the class
// abbreviation.
func ParseSpeciesName(catalog []ClassRules, name string) (ClassRules, int, int, error) {
	name = strings.TrimSpace(name)
	idx := strings.LastIndexByte(name, ' ')
	if idx < 0 {
		return ClassRules{}, 0, 0, fmt.Errorf("invalid species name %q, expected '<class> <carbons>:<doubleBonds>'", name)
	}

	abbr := strings.TrimSpace(name[:idx])
	ratio := name[idx+1:]

	entry, ok := FindClass(catalog, abbr)
	if !ok {
		return ClassRules{}, 0, 0, fmt.Errorf("unknown lipid class %q", abbr)
	}

	parts := strings.Split(ratio, ":")
	if len(parts) != 2 {
		return ClassRules{}, 0, 0, fmt.Errorf("invalid carbon:double-bond ratio %q", ratio)
	}
	carbons, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClassRules{}, 0, 0, fmt.Errorf("invalid carbon count %q: %w", parts[0], err)
	}
	doubleBonds, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClassRules{}, 0, 0, fmt.Errorf("invalid double-bond count %q: %w", parts[1], err)
	}

	return entry, carbons, doubleBonds, nil
}
