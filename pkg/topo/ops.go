package topo

import (
	"math"

	"github.com/samber/lo"

	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/construct"
	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/pga"
)

// Combine returns an arena holding every entity of the inputs. Coincident
// vertices are merged and edges identical after merging are pushed once. No
// boolean operation is applied. The result uses the tolerances of the first
// input.
//
// Faces and solids cannot be carried across yet; an input holding any fails
// with geom.ErrNotSupported, as does a nil input.
func Combine(topos ...*Topo) (*Topo, error) {
	const op = "topo: combine"
	for i, t := range topos {
		if t == nil {
			return nil, geom.Errorf(geom.KindNotSupported, op, "input %d is nil", i)
		}
		if len(t.faces) > 0 || len(t.solids) > 0 {
			return nil, geom.Errorf(geom.KindNotSupported, op,
				"input %d has %d faces and %d solids; face remap is not implemented", i, len(t.faces), len(t.solids))
		}
	}

	tol := config.Default()
	if len(topos) > 0 {
		tol = topos[0].tol
	}
	b := NewBuilder(tol)

	for _, t := range topos {
		vertexRemap := lo.Map(t.vertices, func(v pga.Trivector, _ int) VertexIndex {
			return b.PushVertex(v)
		})
		curveRemap := lo.Map(t.curves, func(c geom.Curve, _ int) CurveRemap {
			ci, dir := b.PushCurve(c)
			return CurveRemap{Curve: ci, Direction: dir}
		})
		for _, s := range t.surfaces {
			b.PushSurface(s)
		}
		for _, e := range t.edges {
			remapped, _ := e.Remap(vertexRemap, curveRemap)
			b.PushEdge(remapped)
		}
	}
	return b.Build(), nil
}

// Reflect returns a mirror image of t across plane. Vertices and curves are
// reflected in place, so every index keeps its meaning. Surfaces cannot be
// reflected yet and an arena holding any fails with geom.ErrNotSupported.
func Reflect(t *Topo, plane pga.Vector) (*Topo, error) {
	return remapGeometry(t, "topo: reflect",
		func(p pga.Trivector) pga.Trivector { return p.Reflect(plane).Hat() },
		func(c geom.Curve) geom.Curve { return c.Reflect(plane) },
		func(s geom.Surface) (geom.Surface, error) { return s.Reflect(plane) },
	)
}

// Transform returns a copy of t moved by the motor m.
func Transform(t *Topo, m pga.Multivector) (*Topo, error) {
	return remapGeometry(t, "topo: transform",
		func(p pga.Trivector) pga.Trivector { return p.Transform(m).Hat() },
		func(c geom.Curve) geom.Curve { return c.Transform(m) },
		func(s geom.Surface) (geom.Surface, error) { return s.Transform(m) },
	)
}

func remapGeometry(
	t *Topo,
	op string,
	vertex func(pga.Trivector) pga.Trivector,
	curve func(geom.Curve) geom.Curve,
	surface func(geom.Surface) (geom.Surface, error),
) (*Topo, error) {
	out := t.clone()
	for i, s := range out.surfaces {
		moved, err := surface(s)
		if err != nil {
			return nil, geom.Errorf(geom.KindNotSupported, op, "surface %d: %v", i, err)
		}
		out.surfaces[i] = moved
	}
	for i, v := range out.vertices {
		out.vertices[i] = vertex(v)
	}
	for i, c := range out.curves {
		out.curves[i] = curve(c)
	}
	return out, nil
}

// PlanarFace returns t with a face added for every loop that lies in a
// plane. The plane is found from the first non-collinear triple of loop
// vertices, or of the loop's hull points when the vertices do not span
// one. Loops whose curves leave that plane are skipped.
//
// A loop with no supporting plane at all fails with
// geom.ErrNoSupportingPlane.
func PlanarFace(t *Topo) (*Topo, error) {
	const op = "topo: planar face"
	f := construct.New(t.tol)
	b := t.Builder()

	for li, l := range t.Loops() {
		pts := lo.Map(t.LoopVertices(l), func(v VertexIndex, _ int) pga.Trivector { return t.vertices[v] })
		hull := t.loopHull(l)

		pl, origin, along, ok := supportingPlane(f, pts)
		if !ok {
			pl, origin, along, ok = supportingPlane(f, hull)
		}
		if !ok {
			return nil, geom.Errorf(geom.KindNoSupportingPlane, op, "loop %d with %d vertices", li, len(pts))
		}

		pl = pl.Hat()
		if !lo.EveryBy(hull, func(p pga.Trivector) bool {
			return math.Abs(float64(p.Hat().JoinPlane(pl))) < t.tol.EpsilonCoincidentDistance
		}) {
			continue
		}

		s := b.PushSurface(geom.NewPlane(origin, along, pl))
		b.PushFace(Face{Surface: s, Bounds: []Loop{l.clone()}})
	}
	return b.Build(), nil
}

func (t *Topo) loopHull(l Loop) []pga.Trivector {
	var hull []pga.Trivector
	for _, de := range l.Elements {
		hull = append(hull, t.EdgeHull(t.edges[de.Edge])...)
	}
	return hull
}

// supportingPlane searches triples i < j < k for the first that spans a
// plane, returning it with pts[i] and pts[j].
func supportingPlane(f construct.Factory, pts []pga.Trivector) (pl pga.Vector, origin, along pga.Trivector, ok bool) {
	for i := 0; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			for k := j + 1; k < len(pts); k++ {
				if pl, err := f.PlaneFromThreePoints(pts[i], pts[j], pts[k]); err == nil {
					return pl, pts[i], pts[j], true
				}
			}
		}
	}
	return pga.Vector{}, pga.Trivector{}, pga.Trivector{}, false
}
