package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/construct"
	"github.com/chazu/arcade/pkg/topo"
)

type flaskOpts struct {
	width     float64
	thickness float64
	exportOpts
}

func newFlaskCmd() *cobra.Command {
	opts := flaskOpts{width: 5, thickness: 3}

	cmd := &cobra.Command{
		Use:   "flask",
		Short: "Build the flask profile: two segments and an arc, mirrored and faced",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prog := newProgress(loggerFromContext(ctx))
			arena, err := buildFlask(tolerancesFromContext(ctx), opts.width, opts.thickness)
			if err != nil {
				return err
			}
			prog.done("Built flask")
			fmt.Fprintf(cmd.OutOrStdout(), "vertices: %d\nedges: %d\nfaces: %d\n",
				arena.NumVertices(), arena.NumEdges(), arena.NumFaces())
			return opts.export(ctx, arena)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", opts.width, "flask width along x")
	cmd.Flags().Float64Var(&opts.thickness, "thickness", opts.thickness, "flask thickness along y")
	opts.exportOpts.register(cmd)
	return cmd
}

// buildFlask draws the lower half of the profile in the z = 0 plane, mirrors
// it across y = 0 and faces the closed outline.
func buildFlask(tol config.Tolerances, width, thickness float64) (*topo.Topo, error) {
	p1 := construct.PointFromXYZ(-width/2, 0, 0)
	p2 := construct.PointFromXYZ(-width/2, -thickness/4, 0)
	p3 := construct.PointFromXYZ(0, -thickness/2, 0)
	p4 := construct.PointFromXYZ(width/2, -thickness/4, 0)
	p5 := construct.PointFromXYZ(width/2, 0, 0)

	b := topo.NewBuilder(tol)
	if _, err := b.LineSegment(p1, p2); err != nil {
		return nil, fmt.Errorf("flask: %w", err)
	}
	if _, err := b.CircularArc(p2, p3, p4); err != nil {
		return nil, fmt.Errorf("flask: %w", err)
	}
	if _, err := b.LineSegment(p4, p5); err != nil {
		return nil, fmt.Errorf("flask: %w", err)
	}
	half := b.Build()

	mirrored, err := topo.Reflect(half, construct.PlaneFromStandardForm(0, 1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("flask: %w", err)
	}
	whole, err := topo.Combine(half, mirrored)
	if err != nil {
		return nil, fmt.Errorf("flask: %w", err)
	}
	return topo.PlanarFace(whole)
}
