package topo

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/samber/lo"

	"github.com/chazu/arcade/pkg/geom"
)

// LoopGraphDOT returns the directed-edge adjacency the loop finder walks,
// as a Graphviz digraph. Node e3F is edge 3 forward and e3R edge 3
// reversed. Nodes that belong to a loop are filled.
func LoopGraphDOT(t *Topo) string {
	next := t.successors()
	onLoop := make(map[node]bool)
	for _, l := range t.Loops() {
		for _, de := range l.Elements {
			onLoop[nodeOf(de)] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph Loops {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n\n")

	for n := range node(len(next)) {
		e := t.edges[n.edge()]
		label := fmt.Sprintf("%s\\ncurve %d", nodeName(n), e.Curve)
		if e.Bounded {
			b := e.Bounds
			label += fmt.Sprintf("\\nv%d -> v%d", b.StartWithDirection(n.direction()), b.EndWithDirection(n.direction()))
		} else {
			label += "\\nclosed"
		}
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if onLoop[n] {
			attrs += ", fillcolor=lightblue"
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(n), attrs)
	}

	buf.WriteString("\n")
	for n, succ := range next {
		for _, m := range succ {
			fmt.Fprintf(&buf, "  %s -> %s;\n", nodeName(node(n)), nodeName(m))
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeOf(de DirectedEdge) node {
	n := node(2 * de.Edge)
	if de.Direction == geom.Reverse {
		n++
	}
	return n
}

func nodeName(n node) string {
	return fmt.Sprintf("e%d%s", n.edge(), lo.Ternary(n%2 == 0, "F", "R"))
}

// RenderLoopGraphSVG renders a DOT graph, such as one from LoopGraphDOT, to
// SVG.
func RenderLoopGraphSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("topo: init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("topo: parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("topo: render: %w", err)
	}
	return buf.Bytes(), nil
}
