package topo

import "fmt"

// ValidationError describes one inconsistency found in an arena.
type ValidationError struct {
	Code    string
	Message string
	// Index is the offending entity within the collection Code names.
	Index int
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (index: %d)", e.Code, e.Message, e.Index)
}

// Validate checks the arena's cross references and geometric consistency.
// Arenas grown through a Builder and the package operators always pass;
// the checks guard arenas assembled from hand-built faces and solids.
func (t *Topo) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, t.validateVertices()...)
	errs = append(errs, t.validateEdges()...)
	errs = append(errs, t.validateFaces()...)
	errs = append(errs, t.validateSolids()...)
	return errs
}

func (t *Topo) validateVertices() []ValidationError {
	var errs []ValidationError
	for i, v := range t.vertices {
		for j := i + 1; j < len(t.vertices); j++ {
			if v.Join(t.vertices[j]).Norm() < t.tol.EpsilonVertexCoincident {
				errs = append(errs, ValidationError{
					Code:    "DUPLICATE_VERTEX",
					Message: fmt.Sprintf("vertex coincides with vertex %d at %s", j, v),
					Index:   i,
				})
			}
		}
	}
	return errs
}

func (t *Topo) validateEdges() []ValidationError {
	var errs []ValidationError
	for i, e := range t.edges {
		if int(e.Curve) < 0 || int(e.Curve) >= len(t.curves) {
			errs = append(errs, ValidationError{
				Code:    "EDGE_CURVE_RANGE",
				Message: fmt.Sprintf("edge references curve %d of %d", e.Curve, len(t.curves)),
				Index:   i,
			})
			continue
		}
		c := t.curves[e.Curve]
		if !e.Bounded {
			if !c.Closed() {
				errs = append(errs, ValidationError{
					Code:    "EDGE_UNBOUNDED_OPEN",
					Message: fmt.Sprintf("unbounded edge on open curve %d", e.Curve),
					Index:   i,
				})
			}
			continue
		}
		for _, v := range []VertexIndex{e.Bounds.Start, e.Bounds.End} {
			if !t.hasVertex(v) {
				errs = append(errs, ValidationError{
					Code:    "EDGE_VERTEX_RANGE",
					Message: fmt.Sprintf("edge references vertex %d of %d", v, len(t.vertices)),
					Index:   i,
				})
				continue
			}
			p := t.vertices[v]
			if d := c.D0(c.TFirst(p)).Hat().Join(p).Norm(); d > t.tol.MinimumVertexSeparation {
				errs = append(errs, ValidationError{
					Code:    "EDGE_VERTEX_OFF_CURVE",
					Message: fmt.Sprintf("vertex %d lies %g from curve %d", v, d, e.Curve),
					Index:   i,
				})
			}
		}
	}
	return errs
}

func (t *Topo) validateFaces() []ValidationError {
	var errs []ValidationError
	for i, f := range t.faces {
		if int(f.Surface) < 0 || int(f.Surface) >= len(t.surfaces) {
			errs = append(errs, ValidationError{
				Code:    "FACE_SURFACE_RANGE",
				Message: fmt.Sprintf("face references surface %d of %d", f.Surface, len(t.surfaces)),
				Index:   i,
			})
		}
		for li, l := range f.Bounds {
			if msg := t.checkLoop(l); msg != "" {
				errs = append(errs, ValidationError{
					Code:    "FACE_LOOP_OPEN",
					Message: fmt.Sprintf("bound %d: %s", li, msg),
					Index:   i,
				})
			}
		}
	}
	return errs
}

func (t *Topo) validateSolids() []ValidationError {
	var errs []ValidationError
	for i, s := range t.solids {
		for _, sh := range s.Bounds {
			for _, df := range sh.Faces {
				if int(df.Face) < 0 || int(df.Face) >= len(t.faces) {
					errs = append(errs, ValidationError{
						Code:    "SHELL_FACE_RANGE",
						Message: fmt.Sprintf("shell references face %d of %d", df.Face, len(t.faces)),
						Index:   i,
					})
				}
			}
		}
	}
	return errs
}

func (t *Topo) hasVertex(v VertexIndex) bool {
	return int(v) >= 0 && int(v) < len(t.vertices)
}

// checkLoop returns why l is not a closed chain, or "" if it is.
func (t *Topo) checkLoop(l Loop) string {
	n := len(l.Elements)
	if n == 0 {
		return "loop is empty"
	}
	for i, de := range l.Elements {
		if int(de.Edge) < 0 || int(de.Edge) >= len(t.edges) {
			return fmt.Sprintf("element %d references edge %d of %d", i, de.Edge, len(t.edges))
		}
	}
	if n == 1 {
		if e := t.edges[l.Elements[0].Edge]; !e.Bounded || e.Bounds.Start == e.Bounds.End {
			return ""
		}
	}
	for i, de := range l.Elements {
		next := l.Elements[(i+1)%n]
		e, f := t.edges[de.Edge], t.edges[next.Edge]
		if !e.Bounded || !f.Bounded {
			return fmt.Sprintf("element %d mixes an unbounded edge into a chain", i)
		}
		end := e.Bounds.EndWithDirection(de.Direction)
		if start := f.Bounds.StartWithDirection(next.Direction); start != end {
			return fmt.Sprintf("element %d ends at vertex %d but element %d starts at %d",
				i, end, (i+1)%n, start)
		}
	}
	return ""
}
