// Package construct turns raw coordinates and point triples into algebra
// elements, curves and surfaces. Fallible constructions return a
// *geom.Error naming the degenerate condition.
package construct

import (
	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/pga"
)

// Factory builds geometry under a set of tolerances.
type Factory struct {
	tol config.Tolerances
}

// New returns a Factory using tol.
func New(tol config.Tolerances) Factory {
	return Factory{tol: tol}
}

var std = New(config.Default())

// PointFromXYZ returns the finite point (x, y, z).
func PointFromXYZ(x, y, z float64) pga.Trivector {
	return pga.Trivector{z, y, x, 1}
}

// InfPointFromXYZ returns the ideal point in direction (x, y, z).
func InfPointFromXYZ(x, y, z float64) pga.Trivector {
	return pga.Trivector{z, y, x, 0}
}

// PlaneFromStandardForm returns the plane a*x + b*y + c*z + d = 0.
func PlaneFromStandardForm(a, b, c, d float64) pga.Vector {
	return pga.Vector{d, a, b, c}
}

// PerpendicularBisector returns the plane of points equidistant from a and b.
func PerpendicularBisector(a, b pga.Trivector) pga.Vector {
	a, b = a.Hat(), b.Hat()
	return a.Join(b).DotPoint(a.Add(b))
}

func PlaneFromThreePoints(p0, p1, p2 pga.Trivector) (pga.Vector, error) {
	return std.PlaneFromThreePoints(p0, p1, p2)
}

func LineFromTwoPoints(p0, p1 pga.Trivector) (geom.Line, error) {
	return std.LineFromTwoPoints(p0, p1)
}

func CircleFromThreePoints(p0, p1, p2 pga.Trivector) (geom.Circle, error) {
	return std.CircleFromThreePoints(p0, p1, p2)
}

// Coincident reports whether two points are within the vertex tolerance.
func (f Factory) Coincident(a, b pga.Trivector) bool {
	return a.Hat().Join(b.Hat()).Norm() < f.tol.EpsilonVertexCoincident
}

func (f Factory) checkDistinct(op string, pts ...pga.Trivector) error {
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			if f.Coincident(pts[i], pts[j]) {
				return geom.Errorf(geom.KindCoincidentPoints, op, "points %d and %d at %s", i, j, pts[i])
			}
		}
	}
	return nil
}

// PlaneFromThreePoints returns the plane through three points, oriented by
// their winding. Its norm before normalization is twice the triangle area.
func (f Factory) PlaneFromThreePoints(p0, p1, p2 pga.Trivector) (pga.Vector, error) {
	const op = "construct: plane from three points"
	if err := f.checkDistinct(op, p0, p1, p2); err != nil {
		return pga.Vector{}, err
	}
	pl := p0.Hat().Join(p1.Hat()).JoinPoint(p2.Hat())
	if !(pl.Norm() > f.tol.FloatDivisionEpsilon) {
		return pga.Vector{}, geom.Errorf(geom.KindCollinearPoints, op, "%s, %s, %s", p0, p1, p2)
	}
	return pl, nil
}

// LineFromTwoPoints returns the line from p0 to p1 parametrized by arc
// length, so that D0(0) = p0 and D0(|p1 - p0|) = p1.
func (f Factory) LineFromTwoPoints(p0, p1 pga.Trivector) (geom.Line, error) {
	const op = "construct: line from two points"
	p0, p1 = p0.Hat(), p1.Hat()
	j := p0.Join(p1)
	length := j.Norm()
	if !(length > f.tol.FloatDivisionEpsilon) {
		return geom.Line{}, geom.Errorf(geom.KindCoincidentPoints, op, "distance %g", length)
	}
	return geom.Line{P0: p0, D: j.MulPseudoscalar().Scale(1 / length)}, nil
}

// CircleFromThreePoints returns the circle through the three points, starting
// at p0 and oriented so the sweep reaches p1 before p2.
func (f Factory) CircleFromThreePoints(p0, p1, p2 pga.Trivector) (geom.Circle, error) {
	const op = "construct: circle from three points"
	if err := f.checkDistinct(op, p0, p1, p2); err != nil {
		return geom.Circle{}, err
	}
	p0, p1, p2 = p0.Hat(), p1.Hat(), p2.Hat()

	b0 := PerpendicularBisector(p0, p1).Hat()
	b1 := PerpendicularBisector(p1, p2).Hat()
	axis := b1.Meet(b0)
	if n := axis.Norm(); !(n > f.tol.MinimumCrossProductNonColinear) {
		return geom.Circle{}, geom.Errorf(geom.KindCollinearPoints, op, "bisector meet norm %g", n)
	}

	c := geom.Circle{P0: p0, A: axis.Hat()}
	if c.TFirst(p1) > c.TFirst(p2) {
		c.A = c.A.Reverse()
	}
	return c, nil
}
