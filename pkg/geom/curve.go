// Package geom models the parametric curves and surfaces a B-rep is built
// from. Every curve and surface is an immutable value expressed through the
// algebra in package pga.
package geom

import (
	"math"

	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/pga"
)

// Curve is a parametric curve. The set of implementations is closed: Line,
// Circle and TrimmedCurve.
type Curve interface {
	// D0 evaluates the position at t.
	D0(t float64) pga.Trivector
	// Closed reports whether D0(TMin) and D0(TMax) are the same point by
	// construction.
	Closed() bool
	// TMin and TMax bound the parameter domain. ok is false when the curve
	// is unbounded in that direction.
	TMin() (t float64, ok bool)
	TMax() (t float64, ok bool)
	// TFirst and TLast return the parameter of a point on the curve. They
	// differ only on closed curves, where TLast reports the end of the
	// domain for the point at TMin.
	TFirst(p pga.Trivector) float64
	TLast(p pga.Trivector) float64
	// Hull returns points whose convex hull contains the curve between
	// tStart and tEnd.
	Hull(tStart, tEnd float64) []pga.Trivector
	Reflect(plane pga.Vector) Curve
	Transform(m pga.Multivector) Curve

	curve()
}

var (
	_ Curve = Line{}
	_ Curve = Circle{}
	_ Curve = TrimmedCurve{}
)

// CurvesCoincident reports whether a and b occupy the same geometry, and if
// so whether b runs in the same sense as a. No comparison is implemented:
// every pair is reported distinct, so arenas never merge curves.
func CurvesCoincident(a, b Curve) (Direction, bool) {
	return Forward, false
}

// evaluate moves p0 along the screw generated by g for parameter t.
func evaluate(p0 pga.Trivector, g pga.Bivector, t float64) pga.Trivector {
	return p0.Transform(g.Scale(0.5 * t).Exp())
}

// ---------------------------------------------------------------------------
// Line
// ---------------------------------------------------------------------------

// Line is an unbounded straight line through P0. D is the ideal line whose
// exponential translates along the line, scaled so that t is arc length.
type Line struct {
	P0 pga.Trivector
	D  pga.Bivector
}

func (Line) curve() {}

func (l Line) D0(t float64) pga.Trivector { return evaluate(l.P0, l.D, t) }

func (Line) Closed() bool { return false }

func (Line) TMin() (float64, bool) { return 0, false }

func (Line) TMax() (float64, bool) { return 0, false }

// TFirst is the signed distance of p from the plane through P0
// perpendicular to the line.
func (l Line) TFirst(p pga.Trivector) float64 {
	return float64(p.Hat().JoinPlane(l.D.JoinPoint(l.P0)))
}

func (l Line) TLast(p pga.Trivector) float64 { return l.TFirst(p) }

func (l Line) Hull(tStart, tEnd float64) []pga.Trivector {
	return []pga.Trivector{l.D0(tStart), l.D0(tEnd)}
}

func (l Line) Reflect(plane pga.Vector) Curve {
	return Line{P0: l.P0.Reflect(plane), D: l.D.Reflect(plane)}
}

func (l Line) Transform(m pga.Multivector) Curve {
	return Line{P0: l.P0.Transform(m), D: l.D.Transform(m)}
}

// ---------------------------------------------------------------------------
// Circle
// ---------------------------------------------------------------------------

// Circle is the closed curve swept by rotating P0 around the unit axis A.
// The parameter is the rotation angle in [0, 2π].
type Circle struct {
	P0 pga.Trivector
	A  pga.Bivector
}

func (Circle) curve() {}

func (c Circle) D0(t float64) pga.Trivector { return evaluate(c.P0, c.A, t) }

func (Circle) Closed() bool { return true }

func (Circle) TMin() (float64, bool) { return 0, true }

func (Circle) TMax() (float64, bool) { return 2 * math.Pi, true }

// TFirst measures the angle between the plane through the axis and P0 and
// the plane through the axis and p. The side of the p plane P0 falls on
// resolves angles past π.
func (c Circle) TFirst(p pga.Trivector) float64 {
	pl0 := c.A.JoinPoint(c.P0).Hat()
	pl1 := c.A.JoinPoint(p).Hat()
	ang := math.Atan2(pl0.Meet(pl1).Norm(), float64(pl0.Dot(pl1)))
	if pl1.JoinPoint(c.P0) < 0 {
		ang = 2*math.Pi - ang
	}
	if ang >= 2*math.Pi-config.EpsilonParameter {
		ang = 0
	}
	return ang
}

func (c Circle) TLast(p pga.Trivector) float64 {
	t := c.TFirst(p)
	if t <= config.EpsilonParameter {
		return 2 * math.Pi
	}
	return t
}

// Hull returns the arc endpoints, when distinct, and the corners of the
// circumscribed polygon whose sides are tangent to the arc.
func (c Circle) Hull(tStart, tEnd float64) []pga.Trivector {
	var hull []pga.Trivector
	q0, q1 := c.D0(tStart), c.D0(tEnd)
	if q0.Hat().Join(q1.Hat()).Norm() > config.EpsilonVertexCoincident {
		hull = append(hull, q0, q1)
	}
	if tEnd-tStart < config.MinimumParameterSeparation {
		return hull
	}

	n := int(math.Min(math.Floor(2+(tEnd-tStart)/(math.Pi/2)), 5))
	am := c.A.Multivector()
	tangents := make([]pga.Vector, n)
	for i := range tangents {
		alpha := float64(i) / float64(n-1)
		pt := c.D0(tStart*alpha + tEnd*(1-alpha))
		radial := c.A.JoinPoint(pt)
		tangents[i] = radial.DotLine(pga.Project(am, pt.Multivector()).Bivector())
	}

	circlePlane := c.A.DotPoint(c.P0)
	for i := 0; i+1 < len(tangents); i++ {
		hull = append(hull, tangents[i].Meet(tangents[i+1]).MeetPlane(circlePlane))
	}
	return hull
}

func (c Circle) Reflect(plane pga.Vector) Curve {
	return Circle{P0: c.P0.Reflect(plane), A: c.A.Reflect(plane)}
}

func (c Circle) Transform(m pga.Multivector) Curve {
	return Circle{P0: c.P0.Transform(m), A: c.A.Transform(m)}
}

// Center returns the point where the circle's plane meets its axis, with
// w = 1.
func (c Circle) Center() pga.Trivector {
	ctr := c.A.MeetPlane(c.A.DotPoint(c.P0))
	return ctr.Scale(1 / ctr.W())
}

// Radius is the distance from P0 to the axis.
func (c Circle) Radius() float64 {
	return c.P0.Hat().Join(c.Center().Hat()).Norm()
}

// ---------------------------------------------------------------------------
// TrimmedCurve
// ---------------------------------------------------------------------------

// TrimmedCurve is the sub-range [TStart, TEnd] of Base. Trims of one base
// share it through the interface value; it is never copied or modified.
type TrimmedCurve struct {
	Base         Curve
	PStart, PEnd pga.Trivector
	TStart, TEnd float64
}

// Trim bounds base between two points on it. It fails with ErrZeroSpan when
// the resulting range is shorter than minSpan.
func Trim(base Curve, pStart, pEnd pga.Trivector, minSpan float64) (TrimmedCurve, error) {
	ts, te := base.TFirst(pStart), base.TLast(pEnd)
	if te-ts < minSpan {
		return TrimmedCurve{}, Errorf(KindZeroSpan, "geom: trim", "t_start %g, t_end %g", ts, te)
	}
	return TrimmedCurve{Base: base, PStart: pStart, PEnd: pEnd, TStart: ts, TEnd: te}, nil
}

func (TrimmedCurve) curve() {}

func (c TrimmedCurve) D0(t float64) pga.Trivector { return c.Base.D0(t) }

func (TrimmedCurve) Closed() bool { return false }

func (c TrimmedCurve) TMin() (float64, bool) { return c.TStart, true }

func (c TrimmedCurve) TMax() (float64, bool) { return c.TEnd, true }

func (c TrimmedCurve) TFirst(p pga.Trivector) float64 { return c.Base.TFirst(p) }

func (c TrimmedCurve) TLast(p pga.Trivector) float64 { return c.Base.TLast(p) }

func (c TrimmedCurve) Hull(tStart, tEnd float64) []pga.Trivector {
	return c.Base.Hull(tStart, tEnd)
}

func (c TrimmedCurve) Reflect(plane pga.Vector) Curve {
	return TrimmedCurve{
		Base:   c.Base.Reflect(plane),
		PStart: c.PStart.Reflect(plane),
		PEnd:   c.PEnd.Reflect(plane),
		TStart: c.TStart,
		TEnd:   c.TEnd,
	}
}

func (c TrimmedCurve) Transform(m pga.Multivector) Curve {
	return TrimmedCurve{
		Base:   c.Base.Transform(m),
		PStart: c.PStart.Transform(m),
		PEnd:   c.PEnd.Transform(m),
		TStart: c.TStart,
		TEnd:   c.TEnd,
	}
}
