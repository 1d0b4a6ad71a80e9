// Package tessellate turns the faces and edges of a topology arena into
// triangle meshes and polylines. The tessellator is read-only and never
// mutates the arena.
package tessellate

import (
	"fmt"
	"math"
	"slices"

	libtess2 "github.com/hajimehoshi/go-libtess2"
	"github.com/samber/lo"

	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/interpolate"
	"github.com/chazu/arcade/pkg/kernel"
	"github.com/chazu/arcade/pkg/pga"
	"github.com/chazu/arcade/pkg/topo"
)

// Options controls sampling density.
type Options struct {
	// ArcSamples is the number of chords a full circle is split into.
	// Shorter arcs get a proportional share, never fewer than one.
	ArcSamples int
}

func DefaultOptions() Options {
	return Options{ArcSamples: 64}
}

// samples returns how many points to take on c between t0 and t1.
func (o Options) samples(c geom.Curve, t0, t1 float64) int {
	switch c := c.(type) {
	case geom.Line:
		return 2
	case geom.Circle:
		chords := int(math.Ceil(float64(o.ArcSamples) * (t1 - t0) / (2 * math.Pi)))
		return max(chords, 1) + 1
	case geom.TrimmedCurve:
		return o.samples(c.Base, t0, t1)
	default:
		panic(fmt.Sprintf("tessellate: unknown curve %T", c))
	}
}

// LoopPoints samples a loop in traversal order. The end of each element is
// the start of the next, so it is emitted once.
func LoopPoints(t *topo.Topo, l topo.Loop, opts Options) []pga.Trivector {
	var pts []pga.Trivector
	for _, de := range l.Elements {
		e := t.Edge(de.Edge)
		c := t.Curve(e.Curve)
		t0, t1 := t.CurveBoundsForEdge(e)
		n := opts.samples(c, t0, t1)
		if !e.Bounded {
			pts = append(pts, interpolate.ClosedCurveFixed(c, n-1)...)
			continue
		}
		edgePts := interpolate.DirectedEdgeFixed(t, de, n)
		pts = append(pts, edgePts[:len(edgePts)-1]...)
	}
	return pts
}

// frame is the Euclidean frame of a plane surface: origin, unit u and v
// directions, and their cross product.
type frame struct {
	o, u, v, n [3]float64
}

func planeFrame(p geom.Plane) frame {
	o := xyz(p.P0)
	u := sub(xyz(p.D0(1, 0)), o)
	v := sub(xyz(p.D0(0, 1)), o)
	return frame{o: o, u: u, v: v, n: cross(u, v)}
}

// world maps frame coordinates back to space.
func (f frame) world(a, b, c float64) [3]float64 {
	var out [3]float64
	for i := range 3 {
		out[i] = f.o[i] + a*f.u[i] + b*f.v[i] + c*f.n[i]
	}
	return out
}

// direction maps a frame direction back to space.
func (f frame) direction(a, b, c float64) [3]float64 {
	var out [3]float64
	for i := range 3 {
		out[i] = a*f.u[i] + b*f.v[i] + c*f.n[i]
	}
	return out
}

func facePlane(t *topo.Topo, fi topo.FaceIndex) (geom.Plane, topo.Face, error) {
	f := t.Face(fi)
	switch s := t.Surface(f.Surface).(type) {
	case geom.Plane:
		return s, f, nil
	default:
		return geom.Plane{}, f, fmt.Errorf("tessellate: face %d: unsupported surface %T", fi, s)
	}
}

// uvLoop projects a sampled loop into the plane's (u, v) coordinates.
func uvLoop(p geom.Plane, pts []pga.Trivector) [][2]float64 {
	return lo.Map(pts, func(q pga.Trivector, _ int) [2]float64 {
		u, v := p.UV(q)
		return [2]float64{u, v}
	})
}

// Profile returns the outer boundary of a planar face in the face's (u, v)
// coordinates, wound counter-clockwise.
func Profile(t *topo.Topo, fi topo.FaceIndex, opts Options) ([][2]float64, error) {
	p, f, err := facePlane(t, fi)
	if err != nil {
		return nil, err
	}
	if len(f.Bounds) == 0 {
		return nil, fmt.Errorf("tessellate: face %d has no boundary", fi)
	}
	uv := uvLoop(p, LoopPoints(t, f.Bounds[0], opts))
	if len(uv) < 3 {
		return nil, fmt.Errorf("tessellate: face %d: boundary has %d points", fi, len(uv))
	}
	if signedArea(uv) < 0 {
		slices.Reverse(uv)
	}
	return uv, nil
}

// Faces produces one triangle mesh per face. Boundaries are combined with
// the odd winding rule, so inner loops cut holes.
func Faces(t *topo.Topo, opts Options) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for fi := range topo.FaceIndex(t.NumFaces()) {
		m, err := faceMesh(t, fi, opts)
		if err != nil {
			return nil, err
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

func faceMesh(t *topo.Topo, fi topo.FaceIndex, opts Options) (*kernel.Mesh, error) {
	p, f, err := facePlane(t, fi)
	if err != nil {
		return nil, err
	}
	contours := lo.Map(f.Bounds, func(l topo.Loop, _ int) libtess2.Contour {
		return lo.Map(uvLoop(p, LoopPoints(t, l, opts)), func(q [2]float64, _ int) libtess2.Vertex {
			return libtess2.Vertex{X: float32(q[0]), Y: float32(q[1])}
		})
	})
	elems, verts, err := libtess2.Tesselate(contours, libtess2.WindingRuleOdd)
	if err != nil {
		return nil, fmt.Errorf("tessellate: face %d: %w", fi, err)
	}

	fr := planeFrame(p)
	n := fr.direction(0, 0, 1)
	m := &kernel.Mesh{Name: fmt.Sprintf("face %d", fi)}
	for _, v := range verts {
		w := fr.world(float64(v.X), float64(v.Y), 0)
		m.Vertices = append(m.Vertices, float32(w[0]), float32(w[1]), float32(w[2]))
		m.Normals = append(m.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
	}
	for i := 0; i+2 < len(elems); i += 3 {
		a, b, c := elems[i], elems[i+1], elems[i+2]
		// Wind every triangle counter-clockwise in (u, v) so it faces n.
		if cross2(verts[a], verts[b], verts[c]) < 0 {
			b, c = c, b
		}
		m.Indices = append(m.Indices, uint32(a), uint32(b), uint32(c))
	}
	return m, nil
}

// Edges samples every edge of the arena into a polyline.
func Edges(t *topo.Topo, opts Options) []kernel.Polyline {
	return lo.Map(t.Edges(), func(e topo.Edge, i int) kernel.Polyline {
		c := t.Curve(e.Curve)
		t0, t1 := t.CurveBoundsForEdge(e)
		var pts []pga.Trivector
		if e.Bounded {
			pts = interpolate.EdgeFixed(t, e, opts.samples(c, t0, t1))
		} else {
			pts = interpolate.ClosedCurveFixed(c, opts.samples(c, t0, t1)-1)
		}
		pl := kernel.Polyline{Closed: !e.Bounded, Name: fmt.Sprintf("edge %d", i)}
		for _, p := range pts {
			x, y, z := p.XYZ()
			pl.Points = append(pl.Points, float32(x), float32(y), float32(z))
		}
		return pl
	})
}

// Extrude sweeps every face along its normal by height using k and returns
// the resulting meshes placed in space. Each profile is extruded centred on
// the frame origin and translated back into place.
func Extrude(t *topo.Topo, k kernel.Kernel, height float64, opts Options) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh
	for fi := range topo.FaceIndex(t.NumFaces()) {
		profile, err := Profile(t, fi, opts)
		if err != nil {
			return nil, err
		}
		cx, cy := centre(profile)
		centred := lo.Map(profile, func(p [2]float64, _ int) [2]float64 { return [2]float64{p[0] - cx, p[1] - cy} })
		solid, err := k.Extrude(centred, height)
		if err != nil {
			return nil, fmt.Errorf("tessellate: extrude face %d: %w", fi, err)
		}
		if cx != 0 || cy != 0 {
			solid = k.Translate(solid, cx, cy, 0)
		}
		m, err := k.ToMesh(solid)
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for face %d: %w", fi, err)
		}

		p, _, _ := facePlane(t, fi)
		fr := planeFrame(p)
		for i := range m.VertexCount() {
			w := fr.world(float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2]))
			d := fr.direction(float64(m.Normals[3*i]), float64(m.Normals[3*i+1]), float64(m.Normals[3*i+2]))
			for a := range 3 {
				m.Vertices[3*i+a] = float32(w[a])
				m.Normals[3*i+a] = float32(d[a])
			}
		}
		m.Name = fmt.Sprintf("face %d extruded", fi)
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// centre returns the middle of the profile's bounding box.
func centre(profile [][2]float64) (x, y float64) {
	if len(profile) == 0 {
		return 0, 0
	}
	low, high := profile[0], profile[0]
	for _, p := range profile[1:] {
		low = [2]float64{math.Min(low[0], p[0]), math.Min(low[1], p[1])}
		high = [2]float64{math.Max(high[0], p[0]), math.Max(high[1], p[1])}
	}
	return (low[0] + high[0]) / 2, (low[1] + high[1]) / 2
}

// Area sums the triangle areas of meshes.
func Area(meshes ...*kernel.Mesh) float64 {
	var total float64
	for _, m := range meshes {
		for i := range m.TriangleCount() {
			tri := m.Triangle(i)
			var p [3][3]float64
			for j := range 3 {
				p[j] = [3]float64{float64(tri[j][0]), float64(tri[j][1]), float64(tri[j][2])}
			}
			c := cross(sub(p[1], p[0]), sub(p[2], p[0]))
			total += 0.5 * math.Sqrt(dot(c, c))
		}
	}
	return total
}

// ---------------------------------------------------------------------------
// Small vector helpers
// ---------------------------------------------------------------------------

func xyz(p pga.Trivector) [3]float64 {
	x, y, z := p.XYZ()
	return [3]float64{x, y, z}
}

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}

func cross2(a, b, c libtess2.Vertex) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// signedArea is positive for counter-clockwise polygons.
func signedArea(pts [][2]float64) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a / 2
}
