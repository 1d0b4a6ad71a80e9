package engine

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/samber/lo"

	"github.com/chazu/arcade/pkg/config"
	"github.com/chazu/arcade/pkg/construct"
	"github.com/chazu/arcade/pkg/pga"
	"github.com/chazu/arcade/pkg/topo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// dashedBuiltins maps the dashed spelling scripts use to the registered
// builtin name. zygomys reads a hyphen as subtraction, so these are renamed
// before parsing.
var dashedBuiltins = map[string]string{
	"planar-face": "planar_face",
	"loop-count":  "loop_count",
}

// preprocessSource rewrites arcade Lisp into what zygomys accepts:
//
//   - ; and ;; line comments become //.
//   - :keyword becomes the string "__kw_keyword", read back by parseArgs.
//   - A dashed builtin name is replaced by its registered name.
//
// String literals pass through untouched. Other dashed words are left
// alone, so (- a b) and negative literals keep their meaning.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source))
	for i := 0; i < len(source); {
		c := source[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(source) && source[j] != '"' {
				if source[j] == '\\' {
					j++
				}
				j++
			}
			j = min(j+1, len(source))
			out.WriteString(source[i:j])
			i = j

		case c == ';':
			j := i
			for j < len(source) && source[j] == ';' {
				j++
			}
			k := strings.IndexByte(source[j:], '\n')
			if k < 0 {
				k = len(source) - j
			}
			out.WriteString("//")
			out.WriteString(source[j : j+k])
			i = j + k

		case c == ':' && i+1 < len(source) && isLetter(source[i+1]):
			j := wordEnd(source, i+1)
			out.WriteString(`"` + kwPrefix + source[i+1:j] + `"`)
			i = j

		case isLetter(c) && (i == 0 || !isWordChar(source[i-1])):
			j := wordEnd(source, i)
			word := source[i:j]
			if name, ok := dashedBuiltins[word]; ok {
				word = name
			}
			out.WriteString(word)
			i = j

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

func wordEnd(s string, i int) int {
	for i < len(s) && isWordChar(s[i]) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a finite point.
type sexpPoint struct {
	p pga.Trivector
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	x, y, z := p.p.XYZ()
	return fmt.Sprintf("(point %g %g %g)", x, y, z)
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpPlane wraps a plane.
type sexpPlane struct {
	v pga.Vector
}

func (p *sexpPlane) SexpString(ps *zygo.PrintState) string {
	a, b, c := p.v.Normal()
	return fmt.Sprintf("(plane %g %g %g %g)", a, b, c, p.v[0])
}
func (p *sexpPlane) Type() *zygo.RegisteredType { return nil }

// sexpTopo wraps an arena so it can be passed between builtins and returned
// as the script result.
type sexpTopo struct {
	t *topo.Topo
}

func (s *sexpTopo) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(topo :vertices %d :edges %d :faces %d)",
		s.t.NumVertices(), s.t.NumEdges(), s.t.NumFaces())
}
func (s *sexpTopo) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// float returns the keyword value name, falling back to positional index i
// and then to def.
func (a kwArgs) float(name string, i int, def float64) (float64, error) {
	if v, ok := a.kw[name]; ok {
		return toFloat64(v)
	}
	if i < len(a.positional) {
		return toFloat64(a.positional[i])
	}
	return def, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toPoint extracts a point from a sexpPoint.
func toPoint(s zygo.Sexp) (pga.Trivector, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	return pga.Trivector{}, fmt.Errorf("expected point, got %T (%s)", s, s.SexpString(nil))
}

// toPlane extracts a plane from a sexpPlane.
func toPlane(s zygo.Sexp) (pga.Vector, error) {
	if p, ok := s.(*sexpPlane); ok {
		return p.v, nil
	}
	return pga.Vector{}, fmt.Errorf("expected plane, got %T (%s)", s, s.SexpString(nil))
}

// toTopo extracts an arena from a sexpTopo.
func toTopo(s zygo.Sexp) (*topo.Topo, error) {
	if t, ok := s.(*sexpTopo); ok {
		return t.t, nil
	}
	return nil, fmt.Errorf("expected topology, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// points converts exactly n arguments to points.
func points(op string, args []zygo.Sexp, n int) ([]pga.Trivector, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d points, got %d", op, n, len(args))
	}
	pts := make([]pga.Trivector, n)
	for i, a := range args {
		p, err := toPoint(a)
		if err != nil {
			return nil, fmt.Errorf("%s: point %d: %w", op, i, err)
		}
		pts[i] = p
	}
	return pts, nil
}

// numbers converts exactly n arguments to floats.
func numbers(op string, args []zygo.Sexp, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires exactly %d arguments, got %d", op, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, err := toFloat64(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", op, i, err)
		}
		out[i] = f
	}
	return out, nil
}

// topos converts the arguments to arenas. A single list argument is
// spread.
func topos(op string, args []zygo.Sexp) ([]*topo.Topo, error) {
	if len(args) == 1 {
		if _, ok := args[0].(*sexpTopo); !ok {
			items, err := sexpListToSlice(args[0])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			args = items
		}
	}
	out := make([]*topo.Topo, len(args))
	for i, a := range args {
		t, err := toTopo(a)
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", op, i, err)
		}
		out[i] = t
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// edgeBuiltin registers a builtin that adds one edge through n points to a
// fresh arena.
func edgeBuiltin(env *zygo.Zlisp, tol config.Tolerances, op string, n int,
	push func(b *topo.Builder, pts []pga.Trivector) (topo.EdgeIndex, error)) {
	env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := points(op, args, n)
		if err != nil {
			return zygo.SexpNull, err
		}
		b := topo.NewBuilder(tol)
		if _, err := push(b, pts); err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		return &sexpTopo{t: b.Build()}, nil
	})
}

// registerBuiltins installs all arcade DSL builtins into a zygomys environment.
// Geometry is built under tol.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names match the registered underscore forms.
func registerBuiltins(env *zygo.Zlisp, tol config.Tolerances) {

	// (point x y z)
	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		xyz, err := numbers("point", args, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPoint{p: construct.PointFromXYZ(xyz[0], xyz[1], xyz[2])}, nil
	})

	// (plane a b c d) is the plane a*x + b*y + c*z + d = 0.
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		abcd, err := numbers("plane", args, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		pl := construct.PlaneFromStandardForm(abcd[0], abcd[1], abcd[2], abcd[3])
		if !pl.IsFinite() {
			return zygo.SexpNull, fmt.Errorf("plane: normal (%g, %g, %g) is zero", abcd[0], abcd[1], abcd[2])
		}
		return &sexpPlane{v: pl}, nil
	})

	// (segment p q)
	edgeBuiltin(env, tol, "segment", 2, func(b *topo.Builder, pts []pga.Trivector) (topo.EdgeIndex, error) {
		return b.LineSegment(pts[0], pts[1])
	})

	// (arc p q r) runs from p through q to r.
	edgeBuiltin(env, tol, "arc", 3, func(b *topo.Builder, pts []pga.Trivector) (topo.EdgeIndex, error) {
		return b.CircularArc(pts[0], pts[1], pts[2])
	})

	// (circle p q r) is the full circle through the three points.
	edgeBuiltin(env, tol, "circle", 3, func(b *topo.Builder, pts []pga.Trivector) (topo.EdgeIndex, error) {
		return b.Circle(pts[0], pts[1], pts[2])
	})

	// (combine a b ...) or (combine (list a b ...))
	env.AddFunction("combine", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		ts, err := topos("combine", args)
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(ts) == 0 {
			return &sexpTopo{t: topo.EmptyWith(tol)}, nil
		}
		out, err := topo.Combine(ts...)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("combine: %w", err)
		}
		return &sexpTopo{t: out}, nil
	})

	// (mirror t (plane a b c d))
	env.AddFunction("mirror", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("mirror requires a topology and a plane")
		}
		t, err := toTopo(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mirror: %w", err)
		}
		pl, err := toPlane(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mirror: %w", err)
		}
		out, err := topo.Reflect(t, pl.Hat())
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mirror: %w", err)
		}
		return &sexpTopo{t: out}, nil
	})

	// (translate t x y z) or (translate t :z 5); missing offsets are zero.
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("translate requires a topology as first argument")
		}
		t, err := toTopo(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		var d [3]float64
		for i, axis := range []string{"x", "y", "z"} {
			if d[i], err = pa.float(axis, i+1, 0); err != nil {
				return zygo.SexpNull, fmt.Errorf("translate: %s: %w", axis, err)
			}
		}
		out, err := topo.Transform(t, pga.Translator(d[0], d[1], d[2]))
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		return &sexpTopo{t: out}, nil
	})

	// (rotate t p q degrees) turns right-handed about the line from p to q.
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 4 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a topology, two points and an angle, got %d arguments", len(args))
		}
		t, err := toTopo(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		axis, err := points("rotate", args[1:3], 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		deg, err := toFloat64(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		if construct.New(tol).Coincident(axis[0], axis[1]) {
			return zygo.SexpNull, fmt.Errorf("rotate: axis points coincide")
		}
		rotor := pga.Rotor(axis[0].Hat().Join(axis[1].Hat()), deg*math.Pi/180)
		out, err := topo.Transform(t, rotor)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		return &sexpTopo{t: out}, nil
	})

	// (planar-face t)
	env.AddFunction(dashedBuiltins["planar-face"], func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("planar-face requires exactly one topology")
		}
		t, err := toTopo(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("planar-face: %w", err)
		}
		out, err := topo.PlanarFace(t)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("planar-face: %w", err)
		}
		return &sexpTopo{t: out}, nil
	})

	// (loop-count t)
	env.AddFunction(dashedBuiltins["loop-count"], func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("loop-count requires exactly one topology")
		}
		t, err := toTopo(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("loop-count: %w", err)
		}
		return &zygo.SexpInt{Val: int64(len(t.Loops()))}, nil
	})

	// (polygon p0 p1 ...) closes the points with segments.
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pts, err := points("polygon", args, len(args))
		if err != nil {
			return zygo.SexpNull, err
		}
		if len(pts) < 3 {
			return zygo.SexpNull, fmt.Errorf("polygon requires at least 3 points, got %d", len(pts))
		}
		b := topo.NewBuilder(tol)
		for i := range pts {
			if _, err := b.LineSegment(pts[i], pts[(i+1)%len(pts)]); err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: side %d: %w", i, err)
			}
		}
		return &sexpTopo{t: b.Build()}, nil
	})

	// (vertices t) lists the arena's points.
	env.AddFunction("vertices", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("vertices requires exactly one topology")
		}
		t, err := toTopo(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vertices: %w", err)
		}
		return zygo.MakeList(lo.Map(t.Vertices(), func(p pga.Trivector, _ int) zygo.Sexp {
			return &sexpPoint{p: p}
		})), nil
	})
}
