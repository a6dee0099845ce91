package core

import "fmt"

// Polarity of an ionization mode.
type Polarity int

const (
	PolarityPositive Polarity = iota + 1
	PolarityNegative
)

// IonizationType identifies an adduct and carries its fixed added mass,
// i.e. the mass difference between the neutral molecule and the observed
// ion.
type IonizationType int

const (
	IonizationPositiveHydrogen IonizationType = iota + 1 // [M+H]+
	IonizationNegativeHydrogen                           // [M-H]-
	IonizationAmmonium                                   // [M+NH4]+
	IonizationSodium                                     // [M+Na]+
	IonizationPotassium                                  // [M+K]+
	IonizationFormate                                    // [M+HCOO]-
	IonizationAcetate                                    // [M+CH3COO]-
)

type ionizationInfo struct {
	name      string
	addedMass float64
	polarity  Polarity
}

var ionizationTable = map[IonizationType]ionizationInfo{
	IonizationPositiveHydrogen: {"[M+H]+", ProtonMass, PolarityPositive},
	IonizationNegativeHydrogen: {"[M-H]-", -ProtonMass, PolarityNegative},
	IonizationAmmonium:         {"[M+NH4]+", 18.033823, PolarityPositive},
	IonizationSodium:           {"[M+Na]+", 22.989218, PolarityPositive},
	IonizationPotassium:        {"[M+K]+", 38.963158, PolarityPositive},
	IonizationFormate:          {"[M+HCOO]-", 44.998201, PolarityNegative},
	IonizationAcetate:          {"[M+CH3COO]-", 59.013851, PolarityNegative},
}

// AddedMass returns the mass added to the neutral molecule by this
// ionization.
func (it IonizationType) AddedMass() float64 {
	return ionizationTable[it].addedMass
}

// Polarity returns the ion polarity of this ionization.
func (it IonizationType) Polarity() Polarity {
	return ionizationTable[it].polarity
}

func (it IonizationType) String() string {
	if info, ok := ionizationTable[it]; ok {
		return info.name
	}
	return fmt.Sprintf("IonizationType(%d)", int(it))
}

// ParseIonizationType resolves an adduct notation like "[M+H]+" or the
// shorthand "M+H" to an IonizationType.
func ParseIonizationType(s string) (IonizationType, error) {
	for it, info := range ionizationTable {
		if s == info.name || "["+s+"]+" == info.name || "["+s+"]-" == info.name {
			return it, nil
		}
	}
	return 0, fmt.Errorf("unknown ionization type %q", s)
}
