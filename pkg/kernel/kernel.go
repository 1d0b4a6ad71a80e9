// Package kernel defines the meshing backend interface. The B-rep arena
// knows nothing about triangles or files; a Kernel turns flat profiles into
// solids and meshes, and an Exporter writes meshes out. The sdfx package
// provides both.
package kernel

// Solid is an opaque handle to a backend solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel builds solids from profiles produced by the tessellator.
type Kernel interface {
	// Extrude sweeps a closed profile in the xy plane along +z by height.
	Extrude(profile [][2]float64, height float64) (Solid, error)
	Translate(s Solid, x, y, z float64) Solid

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}

// Exporter writes meshes to disk.
type Exporter interface {
	// WriteSTL writes all meshes into one binary STL file.
	WriteSTL(path string, meshes ...*Mesh) error
	// Bounds returns the box enclosing every vertex of meshes. ok is false
	// when there are no vertices.
	Bounds(meshes ...*Mesh) (min, max [3]float64, ok bool)
}
