package topo

import (
	"fmt"
	"slices"

	"github.com/chazu/arcade/pkg/geom"
)

// node numbers a directed edge: 2i is edge i forward, 2i+1 is edge i
// reversed.
type node int

func (n node) edge() EdgeIndex { return EdgeIndex(n / 2) }

func (n node) direction() geom.Direction {
	if n%2 == 0 {
		return geom.Forward
	}
	return geom.Reverse
}

func (n node) directed() DirectedEdge {
	return DirectedEdge{Edge: n.edge(), Direction: n.direction()}
}

// successors returns, for every node, the nodes that may follow it in a
// loop: a different bounded edge starting where this one ends.
func (t *Topo) successors() [][]node {
	count := node(2 * len(t.edges))
	next := make([][]node, count)
	for n := range count {
		e := t.edges[n.edge()]
		if !e.Bounded {
			continue
		}
		end := e.Bounds.EndWithDirection(n.direction())
		for m := range count {
			f := t.edges[m.edge()]
			if !f.Bounded || m.edge() == n.edge() {
				continue
			}
			if f.Bounds.StartWithDirection(m.direction()) == end {
				next[n] = append(next[n], m)
			}
		}
	}
	return next
}

type color uint8

const (
	white color = iota // unvisited
	grey               // on the current path
	black              // finished
)

// Loops returns the closed loops formed by the arena's edges.
//
// The directed edges are searched depth first, starting from each node in
// index order. A cycle may be met in both directions; copies over the same
// edge set are grouped and one is kept per group, in order of first
// discovery. A copy closed through a forward edge wins. Otherwise the copy
// found is reversed so that it starts at a forward element. A closed edge
// without bounds is a loop on its own.
func (t *Topo) Loops() []Loop {
	next := t.successors()
	colors := make([]color, len(next))
	pos := make([]int, len(next))

	type frame struct {
		n    node
		succ int
	}
	type group struct {
		cycle   []node
		forward bool
	}
	var (
		groups []*group
		byKey  = map[string]*group{}
		path   []node
		stack  []frame
	)
	visit := func(n node) {
		colors[n] = grey
		pos[n] = len(path)
		path = append(path, n)
		stack = append(stack, frame{n: n})
	}
	found := func(cycle []node) {
		fwd := cycle[0].direction() == geom.Forward
		key := cycleKey(cycle)
		if g, ok := byKey[key]; ok {
			if !g.forward && fwd {
				g.cycle, g.forward = slices.Clone(cycle), true
			}
			return
		}
		g := &group{cycle: slices.Clone(cycle), forward: fwd}
		byKey[key] = g
		groups = append(groups, g)
	}

	for start := range node(len(next)) {
		if colors[start] != white {
			continue
		}
		if e := t.edges[start.edge()]; !e.Bounded {
			colors[start] = black
			if start.direction() == geom.Forward && t.curves[e.Curve].Closed() {
				found([]node{start})
			}
			continue
		}

		visit(start)
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.succ == len(next[top.n]) {
				colors[top.n] = black
				path = path[:len(path)-1]
				stack = stack[:len(stack)-1]
				continue
			}
			m := next[top.n][top.succ]
			top.succ++

			switch colors[m] {
			case white:
				visit(m)
			case grey:
				found(path[pos[m]:])
			}
		}
	}

	loops := make([]Loop, 0, len(groups))
	for _, g := range groups {
		cycle := g.cycle
		if !g.forward {
			cycle = reverseCycle(cycle)
		}
		l := Loop{Elements: make([]DirectedEdge, len(cycle))}
		for i, n := range cycle {
			l.Elements[i] = n.directed()
		}
		loops = append(loops, l)
	}
	return loops
}

// cycleKey identifies a cycle by its edges, ignoring direction and rotation.
func cycleKey(cycle []node) string {
	edges := make([]EdgeIndex, len(cycle))
	for i, n := range cycle {
		edges[i] = n.edge()
	}
	slices.Sort(edges)
	return fmt.Sprint(edges)
}

// reverseCycle walks cycle backwards with every node flipped, starting at
// the flipped first node. cycle[0] must be a reverse node.
func reverseCycle(cycle []node) []node {
	out := make([]node, 0, len(cycle))
	out = append(out, cycle[0]^1)
	for i := len(cycle) - 1; i > 0; i-- {
		out = append(out, cycle[i]^1)
	}
	return out
}

// LoopVertices returns the start vertex of every element of l.
func (t *Topo) LoopVertices(l Loop) []VertexIndex {
	var out []VertexIndex
	for _, de := range l.Elements {
		e := t.edges[de.Edge]
		if e.Bounded {
			out = append(out, e.Bounds.StartWithDirection(de.Direction))
		}
	}
	return out
}
