package pga

import "math"

// expSmallAngle is the angle below which Exp uses the first-order
// approximation 1 + B.
const expSmallAngle = 1e-9

// Exp returns the motor exp(B). For a line through the origin scaled by t/2
// the motor rotates by t radians around it; for an ideal line it translates
// by t along its direction.
func (a Bivector) Exp() Multivector {
	theta := a.Norm()
	if theta < expSmallAngle {
		m := a.Multivector()
		m[0] = 1
		return m
	}
	m := a.Multivector().Scale(math.Sin(theta) / theta)
	m[0] = math.Cos(theta)
	return m
}

// Sandwich returns m * x * ~m.
func (m Multivector) Sandwich(x Multivector) Multivector {
	return m.Mul(x).Mul(m.Reverse())
}

// Project returns (a|b)*b, the projection of a onto b.
func Project(a, b Multivector) Multivector {
	return a.Dot(b).Mul(b)
}

// Transform applies motor m to the point.
func (a Trivector) Transform(m Multivector) Trivector {
	return m.Sandwich(a.Multivector()).Trivector()
}

// Transform applies motor m to the line.
func (a Bivector) Transform(m Multivector) Bivector {
	return m.Sandwich(a.Multivector()).Bivector()
}

// Transform applies motor m to the plane.
func (a Vector) Transform(m Multivector) Vector {
	return m.Sandwich(a.Multivector()).Vector()
}

// Reflect mirrors the point in plane p, computed as p * x * p.
func (a Trivector) Reflect(p Vector) Trivector {
	pm := p.Multivector()
	return pm.Mul(a.Multivector()).Mul(pm).Trivector()
}

// Reflect mirrors the line in plane p.
func (a Bivector) Reflect(p Vector) Bivector {
	pm := p.Multivector()
	return pm.Mul(a.Multivector()).Mul(pm).Bivector()
}

// Reflect mirrors the plane in plane p. The result is the mirrored plane with
// an overall sign flip, which leaves the geometry unchanged.
func (a Vector) Reflect(p Vector) Vector {
	pm := p.Multivector()
	return pm.Mul(a.Multivector()).Mul(pm).Vector()
}

// Translator returns the motor translating by (x, y, z).
func Translator(x, y, z float64) Multivector {
	return Multivector{0: 1, 5: -x / 2, 6: -y / 2, 7: -z / 2}
}

// Rotor returns the motor rotating by angle radians around line l, which
// need not pass through the origin. For l = p.Join(q) the rotation follows
// the right-hand rule about the direction from p to q.
func Rotor(l Bivector, angle float64) Multivector {
	return l.Hat().Scale(-angle / 2).Exp()
}
