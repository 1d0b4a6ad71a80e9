// Package interpolate samples curves and edges at evenly spaced parameters.
//
// Every function takes the number of samples n and panics when n < 2.
package interpolate

import (
	"fmt"
	"slices"

	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/pga"
	"github.com/chazu/arcade/pkg/topo"
)

func checkCount(n int) {
	if n < 2 {
		panic(fmt.Sprintf("interpolate: need at least 2 samples, got %d", n))
	}
}

func domain(c geom.Curve) (float64, float64) {
	t0, ok0 := c.TMin()
	t1, ok1 := c.TMax()
	if !ok0 || !ok1 {
		panic("interpolate: curve has an unbounded domain")
	}
	return t0, t1
}

// CurveFixed returns n points spanning the whole domain of c, including
// both ends. c must have a bounded domain.
func CurveFixed(c geom.Curve, n int) []pga.Trivector {
	t0, t1 := domain(c)
	return CurveSubsetFixed(c, t0, t1, n)
}

// CurveSubsetFixed returns n points from D0(t0) to D0(t1) inclusive.
func CurveSubsetFixed(c geom.Curve, t0, t1 float64, n int) []pga.Trivector {
	checkCount(n)
	out := make([]pga.Trivector, n)
	for i := range out {
		out[i] = c.D0(t0 + (t1-t0)*float64(i)/float64(n-1))
	}
	return out
}

// ClosedCurveFixed returns n points over [TMin, TMax) of a closed curve.
// The point at TMax repeats the first one and is left out.
func ClosedCurveFixed(c geom.Curve, n int) []pga.Trivector {
	checkCount(n)
	t0, t1 := domain(c)
	out := make([]pga.Trivector, n)
	for i := range out {
		out[i] = c.D0(t0 + (t1-t0)*float64(i)/float64(n))
	}
	return out
}

// EdgeFixed returns n points along the section of curve an edge covers,
// in curve order.
func EdgeFixed(t *topo.Topo, e topo.Edge, n int) []pga.Trivector {
	t0, t1 := t.CurveBoundsForEdge(e)
	return CurveSubsetFixed(t.Curve(e.Curve), t0, t1, n)
}

// DirectedEdgeFixed is EdgeFixed in the traversal order of de.
func DirectedEdgeFixed(t *topo.Topo, de topo.DirectedEdge, n int) []pga.Trivector {
	pts := EdgeFixed(t, t.Edge(de.Edge), n)
	if de.Direction == geom.Reverse {
		slices.Reverse(pts)
	}
	return pts
}
