package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/arcade/pkg/engine"
	"github.com/chazu/arcade/pkg/topo"
)

type evalOpts struct {
	faces bool // synthesize planar faces from the result's loops
	exportOpts
}

func newEvalCmd() *cobra.Command {
	var opts evalOpts

	cmd := &cobra.Command{
		Use:   "eval <script.lisp>",
		Short: "Evaluate a geometry script and summarize the resulting arena",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args[0], &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.faces, "faces", false, "add planar faces for every loop of the result")
	opts.exportOpts.register(cmd)
	return cmd
}

func runEval(cmd *cobra.Command, path string, opts *evalOpts) error {
	ctx := cmd.Context()
	arena, err := evalScript(ctx, path)
	if err != nil {
		return err
	}
	if opts.faces {
		if arena, err = topo.PlanarFace(arena); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "vertices: %d\nedges: %d\nloops: %d\nfaces: %d\n",
		arena.NumVertices(), arena.NumEdges(), len(arena.Loops()), arena.NumFaces())
	return opts.export(ctx, arena)
}

// evalScript runs the script at path under the context's tolerances. Script
// errors are joined into one error.
func evalScript(ctx context.Context, path string) (*topo.Topo, error) {
	logger := loggerFromContext(ctx)
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	prog := newProgress(logger)
	eng := engine.NewEngine(
		engine.WithLogger(logger),
		engine.WithTolerances(tolerancesFromContext(ctx)),
	)
	arena, evalErrs, err := eng.Evaluate(string(src))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		errs := make([]error, len(evalErrs))
		for i, e := range evalErrs {
			errs[i] = fmt.Errorf("%s: %w", path, e)
		}
		return nil, errors.Join(errs...)
	}
	prog.done(fmt.Sprintf("Evaluated %s", path))
	return arena, nil
}
