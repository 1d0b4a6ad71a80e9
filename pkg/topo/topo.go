// Package topo stores boundary-representation topology in flat arenas.
//
// A Topo holds vertices, curves and surfaces (reference geometry) and the
// edges, faces and solids that connect them by integer index. A built Topo
// is never modified: it grows through a Builder, or through the whole-arena
// operators Combine, Reflect, Transform and PlanarFace, all of which return
// a fresh arena and leave their inputs untouched.
package topo

import (
	"slices"

	"github.com/samber/lo"

	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/pga"
)

type (
	VertexIndex  int
	CurveIndex   int
	SurfaceIndex int
	EdgeIndex    int
	FaceIndex    int
	SolidIndex   int
)

// ---------------------------------------------------------------------------
// Edges
// ---------------------------------------------------------------------------

// EdgeEndpoints are the bounding vertices of an edge in curve order.
type EdgeEndpoints struct {
	Start, End VertexIndex
}

// NewEdgeEndpoints returns endpoints for an edge running from start to end
// along a curve traversed in direction dir.
func NewEdgeEndpoints(start, end VertexIndex, dir geom.Direction) EdgeEndpoints {
	if dir == geom.Reverse {
		return EdgeEndpoints{Start: end, End: start}
	}
	return EdgeEndpoints{Start: start, End: end}
}

func (e EdgeEndpoints) StartWithDirection(dir geom.Direction) VertexIndex {
	if dir == geom.Reverse {
		return e.End
	}
	return e.Start
}

func (e EdgeEndpoints) EndWithDirection(dir geom.Direction) VertexIndex {
	if dir == geom.Reverse {
		return e.Start
	}
	return e.End
}

// Edge is a section of a curve. An edge that is not Bounded spans the whole
// domain of a closed curve. Start may equal End, closing a curve through a
// single vertex.
type Edge struct {
	Curve   CurveIndex
	Bounds  EdgeEndpoints
	Bounded bool
}

// BoundedEdge returns the edge of curve c from vertex start to vertex end.
func BoundedEdge(c CurveIndex, start, end VertexIndex) Edge {
	return Edge{Curve: c, Bounds: EdgeEndpoints{Start: start, End: end}, Bounded: true}
}

// ClosedEdge returns the edge covering all of the closed curve c.
func ClosedEdge(c CurveIndex) Edge {
	return Edge{Curve: c}
}

// CurveRemap is where a curve of one arena landed in another, and the sense
// of the stored curve relative to the original.
type CurveRemap struct {
	Curve     CurveIndex
	Direction geom.Direction
}

// Remap rewrites the edge's references through the given tables. The
// returned direction is the sense of the new edge relative to the old one.
func (e Edge) Remap(vertexRemap []VertexIndex, curveRemap []CurveRemap) (Edge, geom.Direction) {
	cr := curveRemap[e.Curve]
	out := Edge{Curve: cr.Curve, Bounded: e.Bounded}
	if e.Bounded {
		out.Bounds = NewEdgeEndpoints(vertexRemap[e.Bounds.Start], vertexRemap[e.Bounds.End], cr.Direction)
	}
	return out, cr.Direction
}

// DirectedEdge is an edge traversed in a given sense.
type DirectedEdge struct {
	Edge      EdgeIndex
	Direction geom.Direction
}

// Loop is a closed chain of directed edges: each element ends where the
// next one starts, and the last ends where the first starts.
type Loop struct {
	Elements []DirectedEdge
}

func (l Loop) clone() Loop { return Loop{Elements: slices.Clone(l.Elements)} }

// ---------------------------------------------------------------------------
// Faces and solids
// ---------------------------------------------------------------------------

// Face is a region of a surface bounded by loops. Ridges and Peaks are
// edges and vertices embedded in the face interior.
type Face struct {
	Surface SurfaceIndex
	Bounds  []Loop
	Ridges  []EdgeIndex
	Peaks   []VertexIndex
}

func (f Face) clone() Face {
	return Face{
		Surface: f.Surface,
		Bounds:  lo.Map(f.Bounds, func(l Loop, _ int) Loop { return l.clone() }),
		Ridges:  slices.Clone(f.Ridges),
		Peaks:   slices.Clone(f.Peaks),
	}
}

type DirectedFace struct {
	Face      FaceIndex
	Direction geom.Direction
}

// Shell is a connected set of oriented faces.
type Shell struct {
	Faces []DirectedFace
}

// Solid is a volume bounded by shells.
type Solid struct {
	Bounds []Shell
}

func (s Solid) clone() Solid {
	return Solid{Bounds: lo.Map(s.Bounds, func(sh Shell, _ int) Shell {
		return Shell{Faces: slices.Clone(sh.Faces)}
	})}
}

// ---------------------------------------------------------------------------
// Topo
// ---------------------------------------------------------------------------

// Topo is an immutable arena of topology and reference geometry.
type Topo struct {
	tol      config.Tolerances
	vertices []pga.Trivector
	curves   []geom.Curve
	surfaces []geom.Surface
	edges    []Edge
	faces    []Face
	solids   []Solid
}

// Empty returns an arena with no entities and the default tolerances.
func Empty() *Topo {
	return EmptyWith(config.Default())
}

// EmptyWith returns an arena with no entities that merges geometry under tol.
func EmptyWith(tol config.Tolerances) *Topo {
	return &Topo{tol: tol}
}

func (t *Topo) Tolerances() config.Tolerances { return t.tol }

func (t *Topo) Vertices() []pga.Trivector { return slices.Clone(t.vertices) }

func (t *Topo) Curves() []geom.Curve { return slices.Clone(t.curves) }

func (t *Topo) Surfaces() []geom.Surface { return slices.Clone(t.surfaces) }

func (t *Topo) Edges() []Edge { return slices.Clone(t.edges) }

func (t *Topo) Faces() []Face {
	return lo.Map(t.faces, func(f Face, _ int) Face { return f.clone() })
}

func (t *Topo) Solids() []Solid {
	return lo.Map(t.solids, func(s Solid, _ int) Solid { return s.clone() })
}

// Vertex, Curve, Surface, Edge and Face look up a single entity. They panic
// on an out-of-range index.
func (t *Topo) Vertex(i VertexIndex) pga.Trivector { return t.vertices[i] }

func (t *Topo) Curve(i CurveIndex) geom.Curve { return t.curves[i] }

func (t *Topo) Surface(i SurfaceIndex) geom.Surface { return t.surfaces[i] }

func (t *Topo) Edge(i EdgeIndex) Edge { return t.edges[i] }

func (t *Topo) Face(i FaceIndex) Face { return t.faces[i].clone() }

func (t *Topo) NumVertices() int { return len(t.vertices) }

func (t *Topo) NumEdges() int { return len(t.edges) }

func (t *Topo) NumFaces() int { return len(t.faces) }

// clone returns a deep copy sharing only immutable geometry values.
func (t *Topo) clone() *Topo {
	return &Topo{
		tol:      t.tol,
		vertices: slices.Clone(t.vertices),
		curves:   slices.Clone(t.curves),
		surfaces: slices.Clone(t.surfaces),
		edges:    slices.Clone(t.edges),
		faces:    t.Faces(),
		solids:   t.Solids(),
	}
}

// CurveBoundsForEdge returns the parameter range of the curve an edge covers.
// Bounded edges run from the parameter of their start vertex to that of
// their end vertex. An unbounded edge covers the whole domain of its curve
// and it is a programming error for that curve not to be closed.
func (t *Topo) CurveBoundsForEdge(e Edge) (t0, t1 float64) {
	c := t.curves[e.Curve]
	if e.Bounded {
		return c.TFirst(t.vertices[e.Bounds.Start]), c.TLast(t.vertices[e.Bounds.End])
	}
	tmin, okMin := c.TMin()
	tmax, okMax := c.TMax()
	if !c.Closed() || !okMin || !okMax {
		panic("topo: unbounded edge on an open curve")
	}
	return tmin, tmax
}

// EdgeHull returns the convex-hull points of the curve section an edge
// covers.
func (t *Topo) EdgeHull(e Edge) []pga.Trivector {
	t0, t1 := t.CurveBoundsForEdge(e)
	return t.curves[e.Curve].Hull(t0, t1)
}
