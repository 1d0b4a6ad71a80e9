// Package pga implements the 3D projective geometric algebra R(3,0,1).
//
// A full element has 16 coefficients over the basis
//
//	1, e0, e1, e2, e3, e01, e02, e03, e12, e31, e23, e021, e013, e032, e123, e0123
//
// where e0 squares to zero. The grade-specific types store only the
// coefficients of their grade, in the same order:
//
//	Vector     e0 e1 e2 e3           a plane d + a*x + b*y + c*z = 0 as {d, a, b, c}
//	Bivector   e01 e02 e03 e12 e31 e23 a line
//	Trivector  e021 e013 e032 e123   a point (x, y, z, w) as {z, y, x, w}
//
// Products between grades the geometry layer needs are hand-expanded in
// products.go; everything else goes through Multivector.
package pga

import (
	"fmt"
	"math"

	"github.com/chazu/arcade/pkg/config"
)

// Scalar is a grade-0 element.
type Scalar float64

// Vector is a grade-1 element, a plane.
type Vector [4]float64

// Bivector is a grade-2 element, a line.
type Bivector [6]float64

// Trivector is a grade-3 element, a point.
type Trivector [4]float64

// Pseudoscalar is a grade-4 element.
type Pseudoscalar float64

// Multivector is a general element of the algebra. Motors are multivectors
// with only even-grade parts.
type Multivector [16]float64

// I is the unit pseudoscalar e0123.
var I = Multivector{15: 1}

var (
	reverseSigns   = [16]float64{1, 1, 1, 1, 1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, 1}
	conjugateSigns = [16]float64{1, -1, -1, -1, -1, -1, -1, -1, -1, -1, -1, 1, 1, 1, 1, 1}
)

// ---------------------------------------------------------------------------
// Multivector
// ---------------------------------------------------------------------------

func (a Multivector) Add(b Multivector) Multivector {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a Multivector) Sub(b Multivector) Multivector {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (a Multivector) Scale(k float64) Multivector {
	for i := range a {
		a[i] *= k
	}
	return a
}

func (a Multivector) Neg() Multivector { return a.Scale(-1) }

// Reverse reverses the order of basis vectors in every blade, negating
// grades 2 and 3.
func (a Multivector) Reverse() Multivector {
	for i := range a {
		a[i] *= reverseSigns[i]
	}
	return a
}

// Dual maps each blade to its complement. With this basis ordering that is
// a reversal of the coefficient array.
func (a Multivector) Dual() Multivector {
	var r Multivector
	for i := range a {
		r[15-i] = a[i]
	}
	return r
}

// Conjugate is the Clifford conjugate, negating grades 1 and 2.
func (a Multivector) Conjugate() Multivector {
	for i := range a {
		a[i] *= conjugateSigns[i]
	}
	return a
}

// Norm returns sqrt(|<a * ~a>_0|). For a normalized point this is |w|, for a
// line it is the length of its direction, for a plane the length of its normal.
func (a Multivector) Norm() float64 {
	return math.Sqrt(math.Abs(a.Mul(a.Reverse())[0]))
}

// INorm is the norm of the dual, which measures the ideal part.
func (a Multivector) INorm() float64 { return a.Dual().Norm() }

// Hat returns a scaled to unit norm. It panics when the norm is at or below
// config.FloatDivisionEpsilon.
func (a Multivector) Hat() Multivector { return a.Scale(1 / checkedNorm("multivector", a.Norm())) }

func (a Multivector) IsFinite() bool { return a.Norm() > config.FloatDivisionEpsilon }

func (a Multivector) Scalar() Scalar { return Scalar(a[0]) }

func (a Multivector) Vector() Vector { return Vector{a[1], a[2], a[3], a[4]} }

func (a Multivector) Bivector() Bivector {
	return Bivector{a[5], a[6], a[7], a[8], a[9], a[10]}
}

func (a Multivector) Trivector() Trivector { return Trivector{a[11], a[12], a[13], a[14]} }

func (a Multivector) Pseudoscalar() Pseudoscalar { return Pseudoscalar(a[15]) }

// Even returns the even-grade part of a.
func (a Multivector) Even() Multivector {
	return Multivector{0: a[0], 5: a[5], 6: a[6], 7: a[7], 8: a[8], 9: a[9], 10: a[10], 15: a[15]}
}

func checkedNorm(kind string, n float64) float64 {
	if n <= config.FloatDivisionEpsilon {
		panic(fmt.Sprintf("pga: cannot normalize %s with norm %g", kind, n))
	}
	return n
}

// ---------------------------------------------------------------------------
// Scalar and Pseudoscalar
// ---------------------------------------------------------------------------

func (s Scalar) Multivector() Multivector { return Multivector{0: float64(s)} }

func (s Scalar) Reverse() Scalar { return s }

func (s Scalar) Conjugate() Scalar { return s }

func (s Scalar) Dual() Pseudoscalar { return Pseudoscalar(s) }

func (p Pseudoscalar) Multivector() Multivector { return Multivector{15: float64(p)} }

func (p Pseudoscalar) Reverse() Pseudoscalar { return p }

func (p Pseudoscalar) Conjugate() Pseudoscalar { return p }

func (p Pseudoscalar) Dual() Scalar { return Scalar(p) }

// ---------------------------------------------------------------------------
// Vector
// ---------------------------------------------------------------------------

func (a Vector) Multivector() Multivector {
	return Multivector{1: a[0], 2: a[1], 3: a[2], 4: a[3]}
}

func (a Vector) Add(b Vector) Vector {
	return Vector{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Vector) Sub(b Vector) Vector {
	return Vector{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Vector) Scale(k float64) Vector {
	return Vector{a[0] * k, a[1] * k, a[2] * k, a[3] * k}
}

func (a Vector) Neg() Vector { return a.Scale(-1) }

func (a Vector) Reverse() Vector { return a }

func (a Vector) Conjugate() Vector { return a.Neg() }

func (a Vector) Dual() Trivector { return Trivector{a[3], a[2], a[1], a[0]} }

// Norm is the length of the plane normal.
func (a Vector) Norm() float64 { return math.Sqrt(a[1]*a[1] + a[2]*a[2] + a[3]*a[3]) }

func (a Vector) INorm() float64 { return a.Dual().Norm() }

func (a Vector) Hat() Vector { return a.Scale(1 / checkedNorm("plane", a.Norm())) }

func (a Vector) IsFinite() bool { return a.Norm() > config.FloatDivisionEpsilon }

// Normal returns the (a, b, c) components of the plane.
func (a Vector) Normal() (x, y, z float64) { return a[1], a[2], a[3] }

// ---------------------------------------------------------------------------
// Bivector
// ---------------------------------------------------------------------------

func (a Bivector) Multivector() Multivector {
	return Multivector{5: a[0], 6: a[1], 7: a[2], 8: a[3], 9: a[4], 10: a[5]}
}

func (a Bivector) Add(b Bivector) Bivector {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a Bivector) Sub(b Bivector) Bivector {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

func (a Bivector) Scale(k float64) Bivector {
	for i := range a {
		a[i] *= k
	}
	return a
}

func (a Bivector) Neg() Bivector { return a.Scale(-1) }

func (a Bivector) Reverse() Bivector { return a.Neg() }

func (a Bivector) Conjugate() Bivector { return a.Neg() }

func (a Bivector) Dual() Bivector { return Bivector{a[5], a[4], a[3], a[2], a[1], a[0]} }

// Norm is the length of the line's direction (the e12, e31, e23 part).
func (a Bivector) Norm() float64 { return math.Sqrt(a[3]*a[3] + a[4]*a[4] + a[5]*a[5]) }

func (a Bivector) INorm() float64 { return a.Dual().Norm() }

func (a Bivector) Hat() Bivector { return a.Scale(1 / checkedNorm("line", a.Norm())) }

func (a Bivector) IsFinite() bool { return a.Norm() > config.FloatDivisionEpsilon }

// ---------------------------------------------------------------------------
// Trivector
// ---------------------------------------------------------------------------

func (a Trivector) Multivector() Multivector {
	return Multivector{11: a[0], 12: a[1], 13: a[2], 14: a[3]}
}

func (a Trivector) Add(b Trivector) Trivector {
	return Trivector{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Trivector) Sub(b Trivector) Trivector {
	return Trivector{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Trivector) Scale(k float64) Trivector {
	return Trivector{a[0] * k, a[1] * k, a[2] * k, a[3] * k}
}

func (a Trivector) Neg() Trivector { return a.Scale(-1) }

func (a Trivector) Reverse() Trivector { return a.Neg() }

func (a Trivector) Conjugate() Trivector { return a }

func (a Trivector) Dual() Vector { return Vector{a[3], a[2], a[1], a[0]} }

// Norm is |w|.
func (a Trivector) Norm() float64 { return math.Abs(a[3]) }

// INorm is the length of the (x, y, z) part, the magnitude of an ideal point.
func (a Trivector) INorm() float64 { return a.Dual().Norm() }

func (a Trivector) Hat() Trivector { return a.Scale(1 / checkedNorm("point", a.Norm())) }

func (a Trivector) IsFinite() bool { return a.Norm() > config.FloatDivisionEpsilon }

func (a Trivector) W() float64 { return a[3] }

// XYZ returns the euclidean coordinates of a finite point.
func (a Trivector) XYZ() (x, y, z float64) {
	w := checkedNorm("point", a.Norm())
	if a[3] < 0 {
		w = -w
	}
	return a[2] / w, a[1] / w, a[0] / w
}

func (a Trivector) String() string {
	if !a.IsFinite() {
		return fmt.Sprintf("ideal(%g, %g, %g)", a[2], a[1], a[0])
	}
	x, y, z := a.XYZ()
	return fmt.Sprintf("(%g, %g, %g)", x, y, z)
}
