package core

import (
	"errors"
	"fmt"
)

// ErrInvalidToleranceRange is returned when a mass range has its upper
// bound below its lower bound.
var ErrInvalidToleranceRange = errors.New("invalid tolerance range: upper bound below lower bound")

// Range is a closed interval on the m/z axis.
type Range struct {
	Lower float64
	Upper float64
}

// NewRange builds a range, rejecting inverted bounds.
func NewRange(lower, upper float64) (Range, error) {
	if upper < lower {
		return Range{}, fmt.Errorf("%w: [%f, %f]", ErrInvalidToleranceRange, lower, upper)
	}
	return Range{Lower: lower, Upper: upper}, nil
}

// Contains reports whether mz lies inside the range, bounds included.
func (r Range) Contains(mz float64) bool {
	return mz >= r.Lower && mz <= r.Upper
}

// MZTolerance combines a relative (ppm) and an absolute (Da) mass error.
// The effective window at a target mass is the wider of the two components.
type MZTolerance struct {
	PPM      float64 // relative component in parts per million
	Absolute float64 // absolute component in Da
}

// NewMZTolerance validates the tolerance components. Negative components
// would produce an inverted window and are rejected up front.
func NewMZTolerance(ppm, abs float64) (MZTolerance, error) {
	if ppm < 0 || abs < 0 {
		return MZTolerance{}, fmt.Errorf("%w: ppm=%f abs=%f", ErrInvalidToleranceRange, ppm, abs)
	}
	return MZTolerance{PPM: ppm, Absolute: abs}, nil
}

// DeltaAt returns the half-width of the tolerance window at mz.
func (t MZTolerance) DeltaAt(mz float64) float64 {
	ppmDelta := mz * t.PPM * 1e-6
	if ppmDelta > t.Absolute {
		return ppmDelta
	}
	return t.Absolute
}

// RangeAround returns the tolerance window centered on mz.
func (t MZTolerance) RangeAround(mz float64) Range {
	delta := t.DeltaAt(mz)
	return Range{Lower: mz - delta, Upper: mz + delta}
}

// CheckWithinTolerance reports whether two masses agree within the
// tolerance window evaluated at the first mass.
func (t MZTolerance) CheckWithinTolerance(mz, other float64) bool {
	return t.RangeAround(mz).Contains(other)
}
