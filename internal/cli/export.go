package cli

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/chazu/arcade/pkg/kernel"
	"github.com/chazu/arcade/pkg/kernel/sdfx"
	"github.com/chazu/arcade/pkg/tessellate"
	"github.com/chazu/arcade/pkg/topo"
)

// exportOpts holds the mesh output flags shared by eval and flask.
type exportOpts struct {
	stl     string  // STL output path, empty to skip
	extrude float64 // sweep faces by this height instead of writing them flat
	samples int     // chords per full circle
	cells   int     // marching cubes resolution for extrusion
}

func (o *exportOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.stl, "stl", "", "write the faces to this STL file")
	cmd.Flags().Float64Var(&o.extrude, "extrude", 0, "extrude every face by this height before export")
	cmd.Flags().IntVar(&o.samples, "samples", tessellate.DefaultOptions().ArcSamples, "chords per full circle")
	cmd.Flags().IntVar(&o.cells, "cells", 200, "marching cubes cells along the longest axis when extruding")
}

// meshes tessellates or extrudes the faces of arena.
func (o *exportOpts) meshes(arena *topo.Topo, k *sdfx.SdfxKernel) ([]*kernel.Mesh, error) {
	opts := tessellate.Options{ArcSamples: o.samples}
	if o.extrude > 0 {
		return tessellate.Extrude(arena, k, o.extrude, opts)
	}
	return tessellate.Faces(arena, opts)
}

// export writes the STL file when requested. Arenas without faces are an
// error since there is nothing to mesh.
func (o *exportOpts) export(ctx context.Context, arena *topo.Topo) error {
	if o.stl == "" {
		return nil
	}
	logger := loggerFromContext(ctx)
	if arena.NumFaces() == 0 {
		return fmt.Errorf("export %s: arena has no faces", o.stl)
	}

	prog := newProgress(logger)
	k := sdfx.New().WithCells(o.cells)
	meshes, err := o.meshes(arena, k)
	if err != nil {
		return fmt.Errorf("export %s: %w", o.stl, err)
	}
	if err := k.WriteSTL(o.stl, meshes...); err != nil {
		return err
	}

	triangles := lo.SumBy(meshes, func(m *kernel.Mesh) int { return m.TriangleCount() })
	if min, max, ok := k.Bounds(meshes...); ok {
		logger.Debug("mesh bounds", "min", min, "max", max)
	}
	logger.Debug("tessellated", "meshes", len(meshes), "area", tessellate.Area(meshes...))
	prog.done(fmt.Sprintf("Wrote %d triangles to %s", triangles, o.stl))
	return nil
}
