package tessellate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/arcade/pkg/construct"
	"github.com/chazu/arcade/pkg/kernel"
	"github.com/chazu/arcade/pkg/kernel/sdfx"
	"github.com/chazu/arcade/pkg/pga"
	"github.com/chazu/arcade/pkg/tessellate"
	"github.com/chazu/arcade/pkg/topo"
)

var pt = construct.PointFromXYZ

// newKernel returns a fresh sdfx kernel for testing.
func newKernel() kernel.Kernel {
	return sdfx.New().WithCells(40)
}

// faced closes the points into a polygon and adds its planar face.
func faced(t *testing.T, pts ...pga.Trivector) *topo.Topo {
	t.Helper()
	var segs []*topo.Topo
	for i := range pts {
		s, err := topo.LineSegmentFromTwoPoints(pts[i], pts[(i+1)%len(pts)])
		require.NoError(t, err)
		segs = append(segs, s)
	}
	loop, err := topo.Combine(segs...)
	require.NoError(t, err)
	f, err := topo.PlanarFace(loop)
	require.NoError(t, err)
	require.Equal(t, 1, f.NumFaces())
	return f
}

func flask(t *testing.T) *topo.Topo {
	t.Helper()
	arc, err := topo.CircularArcFromThreePoints(pt(-2.5, -0.75, 0), pt(0, -1.5, 0), pt(2.5, -0.75, 0))
	require.NoError(t, err)
	s0, err := topo.LineSegmentFromTwoPoints(pt(-2.5, 0, 0), pt(-2.5, -0.75, 0))
	require.NoError(t, err)
	s1, err := topo.LineSegmentFromTwoPoints(pt(2.5, -0.75, 0), pt(2.5, 0, 0))
	require.NoError(t, err)
	half, err := topo.Combine(s0, arc, s1)
	require.NoError(t, err)
	mirrored, err := topo.Reflect(half, construct.PlaneFromStandardForm(0, 1, 0, 0))
	require.NoError(t, err)
	whole, err := topo.Combine(half, mirrored)
	require.NoError(t, err)
	f, err := topo.PlanarFace(whole)
	require.NoError(t, err)
	require.Equal(t, 1, f.NumFaces())
	return f
}

func TestFacesSquare(t *testing.T) {
	f := faced(t, pt(0, 0, 2), pt(1, 0, 2), pt(1, 1, 2), pt(0, 1, 2))
	meshes, err := tessellate.Faces(f, tessellate.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	m := meshes[0]
	assert.Equal(t, "face 0", m.Name)
	assert.Equal(t, 2, m.TriangleCount())
	assert.Len(t, m.Normals, len(m.Vertices))
	assert.InDelta(t, 1.0, tessellate.Area(m), 1e-5)
	for i := range m.VertexCount() {
		assert.InDelta(t, 2.0, m.Vertices[3*i+2], 1e-5)
		assert.InDelta(t, 1.0, math.Abs(float64(m.Normals[3*i+2])), 1e-5)
	}
}

func TestFacesTriangleNormalsAgree(t *testing.T) {
	f := faced(t, pt(1, 0, 0), pt(0, 1, 0), pt(0, 0, 1))
	meshes, err := tessellate.Faces(f, tessellate.DefaultOptions())
	require.NoError(t, err)
	m := meshes[0]
	require.Equal(t, 1, m.TriangleCount())

	tri := m.Triangle(0)
	e1 := [3]float32{tri[1][0] - tri[0][0], tri[1][1] - tri[0][1], tri[1][2] - tri[0][2]}
	e2 := [3]float32{tri[2][0] - tri[0][0], tri[2][1] - tri[0][1], tri[2][2] - tri[0][2]}
	geomNormal := [3]float32{
		e1[1]*e2[2] - e1[2]*e2[1],
		e1[2]*e2[0] - e1[0]*e2[2],
		e1[0]*e2[1] - e1[1]*e2[0],
	}
	dot := geomNormal[0]*m.Normals[0] + geomNormal[1]*m.Normals[1] + geomNormal[2]*m.Normals[2]
	assert.Greater(t, dot, float32(0), "winding matches the stored normal")
	assert.InDelta(t, math.Sqrt(3)/2, tessellate.Area(m), 1e-5)
}

func TestFacesFlask(t *testing.T) {
	f := flask(t)
	meshes, err := tessellate.Faces(f, tessellate.Options{ArcSamples: 512})
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	// 5 x 1.5 rectangle plus two circular segments of chord 5 and
	// sagitta 0.75.
	r := (2.5*2.5 + 0.75*0.75) / (2 * 0.75)
	theta := 2 * math.Asin(2.5/r)
	segment := r * r / 2 * (theta - math.Sin(theta))
	assert.InDelta(t, 7.5+2*segment, tessellate.Area(meshes...), 1e-3)
}

func TestFacesCircle(t *testing.T) {
	c, err := topo.FullCircleFromThreePoints(pt(1, 0, 0), pt(0, 1, 0), pt(-1, 0, 0))
	require.NoError(t, err)
	f, err := topo.PlanarFace(c)
	require.NoError(t, err)

	meshes, err := tessellate.Faces(f, tessellate.Options{ArcSamples: 256})
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.InDelta(t, math.Pi, tessellate.Area(meshes...), 1e-3)
	assert.Equal(t, 254, meshes[0].TriangleCount())
}

func TestLoopPoints(t *testing.T) {
	f := faced(t, pt(0, 0, 0), pt(1, 0, 0), pt(0, 1, 0))
	pts := tessellate.LoopPoints(f, f.Face(0).Bounds[0], tessellate.DefaultOptions())
	require.Len(t, pts, 3)

	fl := flask(t)
	pts = tessellate.LoopPoints(fl, fl.Face(0).Bounds[0], tessellate.Options{ArcSamples: 64})
	// Four segments contribute one point each, each arc 1.1658 rad gets
	// ceil(64 * 1.1658 / 2π) = 12 chords.
	assert.Len(t, pts, 4+2*12)
}

func TestProfile(t *testing.T) {
	f := faced(t, pt(0, 0, 0), pt(0, 2, 0), pt(3, 2, 0), pt(3, 0, 0))
	profile, err := tessellate.Profile(f, 0, tessellate.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, profile, 4)

	var area float64
	for i, p := range profile {
		q := profile[(i+1)%len(profile)]
		area += p[0]*q[1] - q[0]*p[1]
	}
	assert.InDelta(t, 12.0, area, 1e-9, "counter-clockwise, twice the area")
}

func TestEdges(t *testing.T) {
	c, err := topo.FullCircleFromThreePoints(pt(1, 0, 0), pt(0, 1, 0), pt(-1, 0, 0))
	require.NoError(t, err)
	s, err := topo.LineSegmentFromTwoPoints(pt(0, 0, 0), pt(0, 0, 4))
	require.NoError(t, err)
	both, err := topo.Combine(c, s)
	require.NoError(t, err)

	lines := tessellate.Edges(both, tessellate.Options{ArcSamples: 16})
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Closed)
	assert.Equal(t, 16, lines[0].PointCount())
	assert.False(t, lines[1].Closed)
	assert.Equal(t, 2, lines[1].PointCount())
	for i, want := range []float32{0, 0, 0, 0, 0, 4} {
		assert.InDelta(t, want, lines[1].Points[i], 1e-6)
	}
}

func TestFacesEmpty(t *testing.T) {
	meshes, err := tessellate.Faces(topo.Empty(), tessellate.DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, meshes)
}

// recordingKernel passes through to sdfx and keeps the calls it sees.
type recordingKernel struct {
	kernel.Kernel
	profiles   [][][2]float64
	translates [][3]float64
}

func (k *recordingKernel) Extrude(profile [][2]float64, height float64) (kernel.Solid, error) {
	k.profiles = append(k.profiles, profile)
	return k.Kernel.Extrude(profile, height)
}

func (k *recordingKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	k.translates = append(k.translates, [3]float64{x, y, z})
	return k.Kernel.Translate(s, x, y, z)
}

func TestExtrudeCentresProfile(t *testing.T) {
	f := faced(t, pt(0, 0, 2), pt(1, 0, 2), pt(1, 1, 2), pt(0, 1, 2))
	k := &recordingKernel{Kernel: newKernel()}
	meshes, err := tessellate.Extrude(f, k, 0.5, tessellate.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, meshes, 1)

	require.Len(t, k.profiles, 1)
	low, high := k.profiles[0][0], k.profiles[0][0]
	for _, p := range k.profiles[0] {
		low = [2]float64{math.Min(low[0], p[0]), math.Min(low[1], p[1])}
		high = [2]float64{math.Max(high[0], p[0]), math.Max(high[1], p[1])}
	}
	assert.InDelta(t, 0.0, low[0]+high[0], 1e-9)
	assert.InDelta(t, 0.0, low[1]+high[1], 1e-9)

	require.Len(t, k.translates, 1)
	assert.NotZero(t, math.Hypot(k.translates[0][0], k.translates[0][1]), "profile was offset from the frame origin")
	assert.Zero(t, k.translates[0][2])

	min, max, ok := sdfx.New().Bounds(meshes...)
	require.True(t, ok)
	assert.InDelta(t, 0.5, (min[0]+max[0])/2, 0.05)
	assert.InDelta(t, 0.5, (min[1]+max[1])/2, 0.05)
}

func TestExtrude(t *testing.T) {
	f := faced(t, pt(0, 0, 2), pt(1, 0, 2), pt(1, 1, 2), pt(0, 1, 2))
	meshes, err := tessellate.Extrude(f, newKernel(), 0.5, tessellate.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	require.False(t, meshes[0].IsEmpty())

	min, max, ok := sdfx.New().Bounds(meshes...)
	require.True(t, ok)
	const tol = 0.05
	assert.InDelta(t, 0.0, min[0], tol)
	assert.InDelta(t, 1.0, max[0], tol)
	assert.InDelta(t, 0.0, min[1], tol)
	assert.InDelta(t, 1.0, max[1], tol)
	assert.InDelta(t, 0.5, float64(max[2]-min[2]), tol)
	assert.True(t, math.Abs(min[2]-2) < tol || math.Abs(max[2]-2) < tol, "sweep starts at the face")
}
