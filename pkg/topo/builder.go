package topo

import (
	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/construct"
	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/pga"
)

// Builder accumulates entities into an arena. Pushes merge with existing
// entities where the geometry coincides, so pushing the same vertex twice
// yields one index.
type Builder struct {
	t *Topo
}

// NewBuilder returns a builder over an empty arena.
func NewBuilder(tol config.Tolerances) *Builder {
	return &Builder{t: EmptyWith(tol)}
}

// Builder returns a builder seeded with a copy of t.
func (t *Topo) Builder() *Builder {
	return &Builder{t: t.clone()}
}

// Build returns the accumulated arena. The builder may keep growing
// afterwards without affecting the returned value.
func (b *Builder) Build() *Topo {
	return b.t.clone()
}

func (b *Builder) PushVertex(p pga.Trivector) VertexIndex {
	p = p.Hat()
	for i, v := range b.t.vertices {
		if v.Join(p).Norm() < b.t.tol.EpsilonVertexCoincident {
			return VertexIndex(i)
		}
	}
	b.t.vertices = append(b.t.vertices, p)
	return VertexIndex(len(b.t.vertices) - 1)
}

// PushCurve returns the index of c and the sense of the stored curve
// relative to c.
func (b *Builder) PushCurve(c geom.Curve) (CurveIndex, geom.Direction) {
	for i, existing := range b.t.curves {
		if dir, ok := geom.CurvesCoincident(existing, c); ok {
			return CurveIndex(i), dir
		}
	}
	b.t.curves = append(b.t.curves, c)
	return CurveIndex(len(b.t.curves) - 1), geom.Forward
}

func (b *Builder) PushSurface(s geom.Surface) SurfaceIndex {
	for i, existing := range b.t.surfaces {
		if geom.SurfacesCoincident(existing, s) {
			return SurfaceIndex(i)
		}
	}
	b.t.surfaces = append(b.t.surfaces, s)
	return SurfaceIndex(len(b.t.surfaces) - 1)
}

func (b *Builder) PushEdge(e Edge) EdgeIndex {
	if !e.Bounded {
		e.Bounds = EdgeEndpoints{}
	}
	for i, existing := range b.t.edges {
		if existing == e {
			return EdgeIndex(i)
		}
	}
	b.t.edges = append(b.t.edges, e)
	return EdgeIndex(len(b.t.edges) - 1)
}

func (b *Builder) PushFace(f Face) FaceIndex {
	b.t.faces = append(b.t.faces, f.clone())
	return FaceIndex(len(b.t.faces) - 1)
}

func (b *Builder) PushSolid(s Solid) SolidIndex {
	b.t.solids = append(b.t.solids, s.clone())
	return SolidIndex(len(b.t.solids) - 1)
}

// Edge pushes curve and an edge over it. A nil bounds covers the whole
// domain of a closed curve; otherwise the edge runs from bounds[0] to
// bounds[1], both of which must lie on the curve.
func (b *Builder) Edge(c geom.Curve, bounds *[2]pga.Trivector) (EdgeIndex, error) {
	const op = "topo: edge"
	if bounds == nil {
		if !c.Closed() {
			return 0, geom.Errorf(geom.KindNotSupported, op, "unbounded edge on an open curve")
		}
		ci, _ := b.PushCurve(c)
		return b.PushEdge(ClosedEdge(ci)), nil
	}

	if ts, te := c.TFirst(bounds[0]), c.TLast(bounds[1]); te-ts < b.t.tol.MinimumParameterSeparation {
		return 0, geom.Errorf(geom.KindZeroSpan, op, "t_start %g, t_end %g", ts, te)
	}
	ci, dir := b.PushCurve(c)
	ends := NewEdgeEndpoints(b.PushVertex(bounds[0]), b.PushVertex(bounds[1]), dir)
	return b.PushEdge(Edge{Curve: ci, Bounds: ends, Bounded: true}), nil
}

func (b *Builder) factory() construct.Factory { return construct.New(b.t.tol) }

// LineSegment pushes the straight edge from p0 to p1.
func (b *Builder) LineSegment(p0, p1 pga.Trivector) (EdgeIndex, error) {
	l, err := b.factory().LineFromTwoPoints(p0, p1)
	if err != nil {
		return 0, err
	}
	return b.Edge(l, &[2]pga.Trivector{p0, p1})
}

// CircularArc pushes the arc from p0 through p1 to p2.
func (b *Builder) CircularArc(p0, p1, p2 pga.Trivector) (EdgeIndex, error) {
	c, err := b.factory().CircleFromThreePoints(p0, p1, p2)
	if err != nil {
		return 0, err
	}
	return b.Edge(c, &[2]pga.Trivector{p0, p2})
}

// Circle pushes the closed circle through three points as one unbounded
// edge.
func (b *Builder) Circle(p0, p1, p2 pga.Trivector) (EdgeIndex, error) {
	c, err := b.factory().CircleFromThreePoints(p0, p1, p2)
	if err != nil {
		return 0, err
	}
	return b.Edge(c, nil)
}

// ---------------------------------------------------------------------------
// One-entity arenas
// ---------------------------------------------------------------------------

// Vertex returns an arena holding the single vertex p.
func Vertex(p pga.Trivector) *Topo {
	b := NewBuilder(config.Default())
	b.PushVertex(p)
	return b.Build()
}

// EdgeFrom returns an arena holding one edge over c. See Builder.Edge.
func EdgeFrom(c geom.Curve, bounds *[2]pga.Trivector) (*Topo, error) {
	b := NewBuilder(config.Default())
	if _, err := b.Edge(c, bounds); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func LineSegmentFromTwoPoints(p0, p1 pga.Trivector) (*Topo, error) {
	b := NewBuilder(config.Default())
	if _, err := b.LineSegment(p0, p1); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

// CircularArcFromThreePoints returns an arena holding the arc from p0
// through p1 to p2, bounded by the vertices p0 and p2.
func CircularArcFromThreePoints(p0, p1, p2 pga.Trivector) (*Topo, error) {
	b := NewBuilder(config.Default())
	if _, err := b.CircularArc(p0, p1, p2); err != nil {
		return nil, err
	}
	return b.Build(), nil
}

func FullCircleFromThreePoints(p0, p1, p2 pga.Trivector) (*Topo, error) {
	b := NewBuilder(config.Default())
	if _, err := b.Circle(p0, p1, p2); err != nil {
		return nil, err
	}
	return b.Build(), nil
}
