package kernel

// Mesh is a triangle mesh suitable for rendering.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	Name     string    `json:"name"`     // which face or solid this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) [3][3]float32 {
	var tri [3][3]float32
	for j := range 3 {
		v := m.Indices[3*i+j]
		tri[j] = [3]float32{m.Vertices[3*v], m.Vertices[3*v+1], m.Vertices[3*v+2]}
	}
	return tri
}

// Polyline is a sampled edge or loop.
type Polyline struct {
	Points []float32 `json:"points"` // [x0,y0,z0, ...]
	Closed bool      `json:"closed"`
	Name   string    `json:"name"`
}

// PointCount returns the number of points.
func (p *Polyline) PointCount() int {
	return len(p.Points) / 3
}
