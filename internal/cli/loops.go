package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/chazu/arcade/pkg/geom"
	"github.com/chazu/arcade/pkg/topo"
)

type loopsOpts struct {
	dot string // DOT output path
	svg string // SVG output path
}

func newLoopsCmd() *cobra.Command {
	var opts loopsOpts

	cmd := &cobra.Command{
		Use:   "loops <script.lisp>",
		Short: "List the closed edge loops of a script's arena",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoops(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.dot, "dot", "", "write the edge adjacency graph as DOT")
	cmd.Flags().StringVar(&opts.svg, "svg", "", "render the edge adjacency graph as SVG")
	return cmd
}

func runLoops(cmd *cobra.Command, path string, opts *loopsOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	arena, err := evalScript(ctx, path)
	if err != nil {
		return err
	}

	loops := arena.Loops()
	out := cmd.OutOrStdout()
	for i, l := range loops {
		fmt.Fprintf(out, "loop %d: %s\n", i, formatLoop(l))
	}
	logger.Info("found loops", "count", len(loops))

	if opts.dot == "" && opts.svg == "" {
		return nil
	}
	dot := topo.LoopGraphDOT(arena)
	if opts.dot != "" {
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.dot, err)
		}
		logger.Info("wrote DOT", "path", opts.dot)
	}
	if opts.svg != "" {
		svg, err := topo.RenderLoopGraphSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", opts.svg, err)
		}
		logger.Info("wrote SVG", "path", opts.svg)
	}
	return nil
}

// formatLoop names each element as in the DOT graph: e<edge><F|R>.
func formatLoop(l topo.Loop) string {
	return strings.Join(lo.Map(l.Elements, func(de topo.DirectedEdge, _ int) string {
		return fmt.Sprintf("e%d%s", de.Edge, lo.Ternary(de.Direction == geom.Reverse, "R", "F"))
	}), " ")
}
