// Package units implements DPML's dimensional-algebra engine (spec §4.5): a
// unit is a (magnitude, base-dimension vector) pair. Multiplication adds base
// vectors, division subtracts them, and the magnitude is rebased into
// [1,10) after every operation so that repeated arithmetic stays exact.
package units

import (
	"math"
)

// Dimension indices into a Unit's Base vector. The final slot is not a
// physical dimension: it tracks the decimal order-of-magnitude separately so
// prefix arithmetic (km, mg, ...) stays exact instead of drifting through
// floating point.
const (
	DimLength = iota
	DimMass
	DimTime
	DimTemperature
	DimCharge
	DimLuminosity
	DimAmount
	DimAngle
	DimDecimal
	NumDims
)

// PhysicalDims is the number of dimension slots that participate in
// convertibility checks; DimDecimal and the arbitrary flag are excluded.
const PhysicalDims = NumDims - 1

// RelTolerance is the relative tolerance used for floating-point unit and
// value equality, matching the Python original's EQUAL_PRECISION constant.
const RelTolerance = 1e-6

// Vector is a base-dimension exponent vector.
type Vector [NumDims]int

// Unit is a single physical unit: a magnitude normalized to [1,10) together
// with its base-dimension vector (spec §3 "Unit").
type Unit struct {
	Magnitude  float64
	Base       Vector
	Symbol     string // the full symbol as parsed, e.g. "kCel", "m-2"
	SymbolBase string // the symbol with prefix and exponent stripped, e.g. "Cel", "m"
	Name       string
	Definition string // defining expression, for derived units; informational only
	Arbitrary  bool
}

// New constructs a rebased Unit from a magnitude and base vector.
func New(magnitude float64, base Vector) Unit {
	return rebase(Unit{Magnitude: magnitude, Base: base})
}

// rebase normalizes magnitude into [1,10) by moving excess powers of ten into
// the decimal dimension slot (spec §4.5.1, DESIGN NOTES: rebase after every op).
func rebase(u Unit) Unit {
	if u.Magnitude == 0 {
		return u
	}
	abs := math.Abs(u.Magnitude)
	exp := int(math.Floor(math.Log10(abs)))
	u.Magnitude /= math.Pow(10, float64(exp))
	u.Base[DimDecimal] += exp
	// Floating point can leave magnitude just outside [1,10) at the boundary;
	// nudge it back in rather than let callers see e.g. 9.999999999999998.
	if u.Magnitude >= 10 {
		u.Magnitude /= 10
		u.Base[DimDecimal]++
	} else if u.Magnitude < 1 {
		u.Magnitude *= 10
		u.Base[DimDecimal]--
	}
	return u
}

// EffectiveMagnitude folds the decimal slot back into the numeric magnitude,
// i.e. the actual multiplicative factor this unit represents.
func (u Unit) EffectiveMagnitude() float64 {
	return u.Magnitude * math.Pow(10, float64(u.Base[DimDecimal]))
}

// Multiply combines two units: magnitudes multiply, base vectors add.
func Multiply(a, b Unit) Unit {
	var base Vector
	for i := range base {
		base[i] = a.Base[i] + b.Base[i]
	}
	return rebase(Unit{Magnitude: a.Magnitude * b.Magnitude, Base: base})
}

// Divide combines two units: magnitudes divide, base vectors subtract.
func Divide(a, b Unit) Unit {
	var base Vector
	for i := range base {
		base[i] = a.Base[i] - b.Base[i]
	}
	return rebase(Unit{Magnitude: a.Magnitude / b.Magnitude, Base: base})
}

// Power raises a unit to an integer power.
func Power(a Unit, power int) Unit {
	var base Vector
	for i := range base {
		base[i] = a.Base[i] * power
	}
	return rebase(Unit{Magnitude: math.Pow(a.Magnitude, float64(power)), Base: base})
}

// Equal reports whether two units have (approximately) the same magnitude
// and exactly the same base vector, matching the Python original's
// `isclose(rel_tol=EQUAL_PRECISION)` comparator.
func Equal(a, b Unit) bool {
	if !closeEnough(a.Magnitude, b.Magnitude) {
		return false
	}
	return a.Base == b.Base
}

// SamePhysicalDimension reports whether a and b could be converted into one
// another: their base vectors agree on every slot except the decimal slot
// (spec invariant 6).
func SamePhysicalDimension(a, b Unit) bool {
	for i := 0; i < PhysicalDims; i++ {
		if a.Base[i] != b.Base[i] {
			return false
		}
	}
	return true
}

func closeEnough(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	largest := math.Max(math.Abs(a), math.Abs(b))
	return diff <= largest*RelTolerance
}
