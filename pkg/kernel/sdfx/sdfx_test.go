package sdfx

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/arcade/pkg/kernel"
)

var rect = [][2]float64{{0, 0}, {10, 0}, {10, 20}, {0, 20}}

func TestExtrudeBoundingBox(t *testing.T) {
	k := New()
	s, err := k.Extrude(rect, 5)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	min, max := s.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{0, 0, 0}
	expectMax := [3]float64{10, 20, 5}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestExtrudeErrors(t *testing.T) {
	k := New()
	if _, err := k.Extrude(rect, 0); err == nil {
		t.Error("Extrude with zero height: expected error")
	}
	if _, err := k.Extrude([][2]float64{{0, 0}, {1, 1}}, 1); err == nil {
		t.Error("Extrude with two vertices: expected error")
	}
}

func TestExtrudeToMesh(t *testing.T) {
	k := New().WithCells(50)
	s, err := k.Extrude(rect, 5)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
	t.Logf("extruded rectangle triangle count: %d", mesh.TriangleCount())
}

func TestTranslate(t *testing.T) {
	k := New()
	s, err := k.Extrude(rect, 5)
	if err != nil {
		t.Fatalf("Extrude failed: %v", err)
	}
	min, max := k.Translate(s, 100, 200, 300).BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 220, 305}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func square() *kernel.Mesh {
	return &kernel.Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, -2},
		Normals:  []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		Indices:  []uint32{0, 1, 2, 2, 3, 0},
	}
}

func TestBounds(t *testing.T) {
	k := New()
	if _, _, ok := k.Bounds(); ok {
		t.Error("Bounds() of nothing: ok = true, want false")
	}

	moved := square()
	for i := range moved.Vertices {
		moved.Vertices[i] += 3
	}
	min, max, ok := k.Bounds(square(), moved)
	if !ok {
		t.Fatal("Bounds() ok = false, want true")
	}
	if min != [3]float64{0, 0, -2} {
		t.Errorf("min = %v, want [0 0 -2]", min)
	}
	if max != [3]float64{4, 4, 3} {
		t.Errorf("max = %v, want [4 4 3]", max)
	}
}

func TestWriteSTL(t *testing.T) {
	k := New()
	path := filepath.Join(t.TempDir(), "square.stl")
	if err := k.WriteSTL(path, square()); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("STL file is empty")
	}

	if err := k.WriteSTL(filepath.Join(t.TempDir(), "empty.stl"), &kernel.Mesh{}); err == nil {
		t.Error("WriteSTL with no triangles: expected error")
	}
}
