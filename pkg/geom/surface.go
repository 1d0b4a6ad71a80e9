package geom

import "github.com/chazu/arcade/pkg/pga"

// Surface is a parametric surface. Plane is the only implementation.
type Surface interface {
	D0(u, v float64) pga.Trivector
	// Reflect and Transform are not implemented for any surface yet and
	// return ErrNotSupported.
	Reflect(plane pga.Vector) (Surface, error)
	Transform(m pga.Multivector) (Surface, error)

	surface()
}

var _ Surface = Plane{}

// SurfacesCoincident reports whether a and b occupy the same geometry. Like
// CurvesCoincident it is not implemented and always reports false.
func SurfacesCoincident(a, b Surface) bool {
	return false
}

// Plane is a flat surface through P0. DU and DV are orthogonal unit
// translation generators lying in the plane.
type Plane struct {
	P0     pga.Trivector
	DU, DV pga.Bivector
}

// NewPlane builds the parametrization of support with origin p0 and the u
// direction pointing towards p1. Both points must lie on support.
func NewPlane(p0, p1 pga.Trivector, support pga.Vector) Plane {
	p0 = p0.Hat()
	l := p0.Join(p1.Hat()).Hat()
	m := l.DotPoint(p0).Meet(support).Hat()
	return Plane{P0: p0, DU: l.MulPseudoscalar(), DV: m.MulPseudoscalar()}
}

func (Plane) surface() {}

func (p Plane) D0(u, v float64) pga.Trivector {
	return p.P0.Transform(p.DU.Scale(0.5 * u).Add(p.DV.Scale(0.5 * v)).Exp())
}

// UV returns the parameters of a point on the plane, the inverse of D0.
func (p Plane) UV(q pga.Trivector) (u, v float64) {
	q = q.Hat()
	return float64(q.JoinPlane(p.DU.JoinPoint(p.P0))), float64(q.JoinPlane(p.DV.JoinPoint(p.P0)))
}

// Support returns the normalized plane the surface lies in.
func (p Plane) Support() pga.Vector {
	return p.P0.Join(p.D0(1, 0)).JoinPoint(p.D0(0, 1)).Hat()
}

func (p Plane) Reflect(plane pga.Vector) (Surface, error) {
	return nil, Errorf(KindNotSupported, "geom: plane reflect", "surface reflection is not implemented")
}

func (p Plane) Transform(m pga.Multivector) (Surface, error) {
	return nil, Errorf(KindNotSupported, "geom: plane transform", "surface transform is not implemented")
}
