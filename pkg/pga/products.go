package pga

// Closed-form products for the grade pairs used by curves, surfaces and
// topology. Operands are on the left receiver, so a.Meet(b) is a^b.

// Meet returns the line where two planes intersect.
func (a Vector) Meet(b Vector) Bivector {
	return Bivector{
		a[0]*b[1] - a[1]*b[0],
		a[0]*b[2] - a[2]*b[0],
		a[0]*b[3] - a[3]*b[0],
		a[1]*b[2] - a[2]*b[1],
		-a[1]*b[3] + a[3]*b[1],
		a[2]*b[3] - a[3]*b[2],
	}
}

// MeetLine returns the point where the plane and line b intersect.
func (a Vector) MeetLine(b Bivector) Trivector {
	return Trivector{
		-a[0]*b[3] + a[1]*b[1] - a[2]*b[0],
		-a[0]*b[4] - a[1]*b[2] + a[3]*b[0],
		-a[0]*b[5] + a[2]*b[2] - a[3]*b[1],
		a[1]*b[5] + a[2]*b[4] + a[3]*b[3],
	}
}

// JoinPoint returns a&b, the negated signed distance of the point from the
// plane when both are normalized. See Trivector.JoinPlane.
func (a Vector) JoinPoint(b Trivector) Scalar {
	return Scalar(-a[3]*b[0] - a[2]*b[1] - a[1]*b[2] - a[0]*b[3])
}

func (a Vector) Dot(b Vector) Scalar {
	return Scalar(a[1]*b[1] + a[2]*b[2] + a[3]*b[3])
}

// DotLine returns the plane through line b perpendicular to plane a.
func (a Vector) DotLine(b Bivector) Vector {
	return Vector{
		-a[1]*b[0] - a[2]*b[1] - a[3]*b[2],
		-a[2]*b[3] + a[3]*b[4],
		a[1]*b[3] - a[3]*b[5],
		-a[1]*b[4] + a[2]*b[5],
	}
}

// MeetPlane returns the point where the line crosses plane b.
func (a Bivector) MeetPlane(b Vector) Trivector {
	return Trivector{
		-a[0]*b[2] + a[1]*b[1] - a[3]*b[0],
		a[0]*b[3] - a[2]*b[1] - a[4]*b[0],
		-a[1]*b[3] + a[2]*b[2] - a[5]*b[0],
		a[3]*b[3] + a[4]*b[2] + a[5]*b[1],
	}
}

// JoinPoint returns the plane containing the line and point b.
func (a Bivector) JoinPoint(b Trivector) Vector {
	return Vector{
		a[2]*b[0] + a[1]*b[1] + a[0]*b[2],
		-a[4]*b[0] + a[3]*b[1] - a[0]*b[3],
		a[5]*b[0] - a[3]*b[2] - a[1]*b[3],
		-a[5]*b[1] + a[4]*b[2] - a[2]*b[3],
	}
}

func (a Bivector) Dot(b Bivector) Scalar {
	return Scalar(-a[3]*b[3] - a[4]*b[4] - a[5]*b[5])
}

// DotPoint returns the plane through point b perpendicular to the line.
func (a Bivector) DotPoint(b Trivector) Vector {
	return Vector{
		a[3]*b[0] + a[4]*b[1] + a[5]*b[2],
		-a[5]*b[3],
		-a[4]*b[3],
		-a[3]*b[3],
	}
}

func (a Bivector) DotPlane(b Vector) Vector {
	return Vector{
		a[0]*b[1] + a[1]*b[2] + a[2]*b[3],
		a[3]*b[2] - a[4]*b[3],
		-a[3]*b[1] + a[5]*b[3],
		a[4]*b[1] - a[5]*b[2],
	}
}

// Join returns the line through two points. Its norm is the distance
// between them when both are normalized.
func (a Trivector) Join(b Trivector) Bivector {
	return Bivector{
		a[1]*b[0] - a[0]*b[1],
		-a[2]*b[0] + a[0]*b[2],
		a[2]*b[1] - a[1]*b[2],
		a[3]*b[0] - a[0]*b[3],
		a[3]*b[1] - a[1]*b[3],
		a[3]*b[2] - a[2]*b[3],
	}
}

// JoinLine returns the plane containing the point and line b.
func (a Trivector) JoinLine(b Bivector) Vector {
	return Vector{
		a[2]*b[0] + a[1]*b[1] + a[0]*b[2],
		-a[3]*b[0] + a[1]*b[3] - a[0]*b[4],
		-a[3]*b[1] - a[2]*b[3] + a[0]*b[5],
		-a[3]*b[2] + a[2]*b[4] - a[1]*b[5],
	}
}

// JoinPlane returns the signed distance of the point from plane b when
// both are normalized. It is positive on the side the normal points to.
func (a Trivector) JoinPlane(b Vector) Scalar {
	return Scalar(a[3]*b[0] + a[2]*b[1] + a[1]*b[2] + a[0]*b[3])
}

func (a Trivector) Dot(b Trivector) Scalar {
	return Scalar(-a[3]*b[3])
}

func (a Trivector) DotLine(b Bivector) Vector {
	return Vector{
		a[0]*b[3] + a[1]*b[4] + a[2]*b[5],
		-a[3]*b[5],
		-a[3]*b[4],
		-a[3]*b[3],
	}
}

// MulPseudoscalar returns a*I, the polar line of a.
func (a Bivector) MulPseudoscalar() Bivector {
	return Bivector{
		-a[5],
		-a[4],
		-a[3],
		0,
		0,
		0,
	}
}

// ---------------------------------------------------------------------------
// Full products
// ---------------------------------------------------------------------------

// Mul returns the geometric product a*b.
func (a Multivector) Mul(b Multivector) Multivector {
	return Multivector{
		a[0]*b[0] + a[2]*b[2] + a[3]*b[3] + a[4]*b[4] - a[8]*b[8] - a[9]*b[9] - a[10]*b[10] - a[14]*b[14],
		a[0]*b[1] + a[1]*b[0] - a[2]*b[5] - a[3]*b[6] - a[4]*b[7] + a[5]*b[2] + a[6]*b[3] + a[7]*b[4] + a[8]*b[11] + a[9]*b[12] + a[10]*b[13] + a[11]*b[8] + a[12]*b[9] + a[13]*b[10] + a[14]*b[15] - a[15]*b[14],
		a[0]*b[2] + a[2]*b[0] - a[3]*b[8] + a[4]*b[9] + a[8]*b[3] - a[9]*b[4] - a[10]*b[14] - a[14]*b[10],
		a[0]*b[3] + a[2]*b[8] + a[3]*b[0] - a[4]*b[10] - a[8]*b[2] - a[9]*b[14] + a[10]*b[4] - a[14]*b[9],
		a[0]*b[4] - a[2]*b[9] + a[3]*b[10] + a[4]*b[0] - a[8]*b[14] + a[9]*b[2] - a[10]*b[3] - a[14]*b[8],
		a[0]*b[5] + a[1]*b[2] - a[2]*b[1] - a[3]*b[11] + a[4]*b[12] + a[5]*b[0] - a[6]*b[8] + a[7]*b[9] + a[8]*b[6] - a[9]*b[7] - a[10]*b[15] - a[11]*b[3] + a[12]*b[4] + a[13]*b[14] - a[14]*b[13] - a[15]*b[10],
		a[0]*b[6] + a[1]*b[3] + a[2]*b[11] - a[3]*b[1] - a[4]*b[13] + a[5]*b[8] + a[6]*b[0] - a[7]*b[10] - a[8]*b[5] - a[9]*b[15] + a[10]*b[7] + a[11]*b[2] + a[12]*b[14] - a[13]*b[4] - a[14]*b[12] - a[15]*b[9],
		a[0]*b[7] + a[1]*b[4] - a[2]*b[12] + a[3]*b[13] - a[4]*b[1] - a[5]*b[9] + a[6]*b[10] + a[7]*b[0] - a[8]*b[15] + a[9]*b[5] - a[10]*b[6] + a[11]*b[14] - a[12]*b[2] + a[13]*b[3] - a[14]*b[11] - a[15]*b[8],
		a[0]*b[8] + a[2]*b[3] - a[3]*b[2] + a[4]*b[14] + a[8]*b[0] + a[9]*b[10] - a[10]*b[9] + a[14]*b[4],
		a[0]*b[9] - a[2]*b[4] + a[3]*b[14] + a[4]*b[2] - a[8]*b[10] + a[9]*b[0] + a[10]*b[8] + a[14]*b[3],
		a[0]*b[10] + a[2]*b[14] + a[3]*b[4] - a[4]*b[3] + a[8]*b[9] - a[9]*b[8] + a[10]*b[0] + a[14]*b[2],
		a[0]*b[11] - a[1]*b[8] + a[2]*b[6] - a[3]*b[5] + a[4]*b[15] - a[5]*b[3] + a[6]*b[2] - a[7]*b[14] - a[8]*b[1] + a[9]*b[13] - a[10]*b[12] + a[11]*b[0] + a[12]*b[10] - a[13]*b[9] + a[14]*b[7] - a[15]*b[4],
		a[0]*b[12] - a[1]*b[9] - a[2]*b[7] + a[3]*b[15] + a[4]*b[5] + a[5]*b[4] - a[6]*b[14] - a[7]*b[2] - a[8]*b[13] - a[9]*b[1] + a[10]*b[11] - a[11]*b[10] + a[12]*b[0] + a[13]*b[8] + a[14]*b[6] - a[15]*b[3],
		a[0]*b[13] - a[1]*b[10] + a[2]*b[15] + a[3]*b[7] - a[4]*b[6] - a[5]*b[14] - a[6]*b[4] + a[7]*b[3] + a[8]*b[12] - a[9]*b[11] - a[10]*b[1] + a[11]*b[9] - a[12]*b[8] + a[13]*b[0] + a[14]*b[5] - a[15]*b[2],
		a[0]*b[14] + a[2]*b[10] + a[3]*b[9] + a[4]*b[8] + a[8]*b[4] + a[9]*b[3] + a[10]*b[2] + a[14]*b[0],
		a[0]*b[15] + a[1]*b[14] + a[2]*b[13] + a[3]*b[12] + a[4]*b[11] + a[5]*b[10] + a[6]*b[9] + a[7]*b[8] + a[8]*b[7] + a[9]*b[6] + a[10]*b[5] - a[11]*b[4] - a[12]*b[3] - a[13]*b[2] - a[14]*b[1] + a[15]*b[0],
	}
}

// Wedge returns the outer product a^b (meet).
func (a Multivector) Wedge(b Multivector) Multivector {
	return Multivector{
		a[0]*b[0],
		a[0]*b[1] + a[1]*b[0],
		a[0]*b[2] + a[2]*b[0],
		a[0]*b[3] + a[3]*b[0],
		a[0]*b[4] + a[4]*b[0],
		a[0]*b[5] + a[1]*b[2] - a[2]*b[1] + a[5]*b[0],
		a[0]*b[6] + a[1]*b[3] - a[3]*b[1] + a[6]*b[0],
		a[0]*b[7] + a[1]*b[4] - a[4]*b[1] + a[7]*b[0],
		a[0]*b[8] + a[2]*b[3] - a[3]*b[2] + a[8]*b[0],
		a[0]*b[9] - a[2]*b[4] + a[4]*b[2] + a[9]*b[0],
		a[0]*b[10] + a[3]*b[4] - a[4]*b[3] + a[10]*b[0],
		a[0]*b[11] - a[1]*b[8] + a[2]*b[6] - a[3]*b[5] - a[5]*b[3] + a[6]*b[2] - a[8]*b[1] + a[11]*b[0],
		a[0]*b[12] - a[1]*b[9] - a[2]*b[7] + a[4]*b[5] + a[5]*b[4] - a[7]*b[2] - a[9]*b[1] + a[12]*b[0],
		a[0]*b[13] - a[1]*b[10] + a[3]*b[7] - a[4]*b[6] - a[6]*b[4] + a[7]*b[3] - a[10]*b[1] + a[13]*b[0],
		a[0]*b[14] + a[2]*b[10] + a[3]*b[9] + a[4]*b[8] + a[8]*b[4] + a[9]*b[3] + a[10]*b[2] + a[14]*b[0],
		a[0]*b[15] + a[1]*b[14] + a[2]*b[13] + a[3]*b[12] + a[4]*b[11] + a[5]*b[10] + a[6]*b[9] + a[7]*b[8] + a[8]*b[7] + a[9]*b[6] + a[10]*b[5] - a[11]*b[4] - a[12]*b[3] - a[13]*b[2] - a[14]*b[1] + a[15]*b[0],
	}
}

// Vee returns the regressive product a&b (join).
func (a Multivector) Vee(b Multivector) Multivector {
	return Multivector{
		a[15]*b[0] + a[14]*b[1] + a[13]*b[2] + a[12]*b[3] + a[11]*b[4] + a[10]*b[5] + a[9]*b[6] + a[8]*b[7] + a[7]*b[8] + a[6]*b[9] + a[5]*b[10] - a[4]*b[11] - a[3]*b[12] - a[2]*b[13] - a[1]*b[14] + a[0]*b[15],
		a[15]*b[1] + a[13]*b[5] + a[12]*b[6] + a[11]*b[7] + a[7]*b[11] + a[6]*b[12] + a[5]*b[13] + a[1]*b[15],
		a[15]*b[2] - a[14]*b[5] + a[12]*b[8] - a[11]*b[9] - a[9]*b[11] + a[8]*b[12] - a[5]*b[14] + a[2]*b[15],
		a[15]*b[3] - a[14]*b[6] - a[13]*b[8] + a[11]*b[10] + a[10]*b[11] - a[8]*b[13] - a[6]*b[14] + a[3]*b[15],
		a[15]*b[4] - a[14]*b[7] + a[13]*b[9] - a[12]*b[10] - a[10]*b[12] + a[9]*b[13] - a[7]*b[14] + a[4]*b[15],
		a[15]*b[5] + a[12]*b[11] - a[11]*b[12] + a[5]*b[15],
		a[15]*b[6] - a[13]*b[11] + a[11]*b[13] + a[6]*b[15],
		a[15]*b[7] + a[13]*b[12] - a[12]*b[13] + a[7]*b[15],
		a[15]*b[8] + a[14]*b[11] - a[11]*b[14] + a[8]*b[15],
		a[15]*b[9] + a[14]*b[12] - a[12]*b[14] + a[9]*b[15],
		a[15]*b[10] + a[14]*b[13] - a[13]*b[14] + a[10]*b[15],
		a[15]*b[11] + a[11]*b[15],
		a[15]*b[12] + a[12]*b[15],
		a[15]*b[13] + a[13]*b[15],
		a[15]*b[14] + a[14]*b[15],
		a[15]*b[15],
	}
}

// Dot returns the inner product a|b.
func (a Multivector) Dot(b Multivector) Multivector {
	return Multivector{
		a[0]*b[0] + a[2]*b[2] + a[3]*b[3] + a[4]*b[4] - a[8]*b[8] - a[9]*b[9] - a[10]*b[10] - a[14]*b[14],
		a[0]*b[1] + a[1]*b[0] - a[2]*b[5] - a[3]*b[6] - a[4]*b[7] + a[5]*b[2] + a[6]*b[3] + a[7]*b[4] + a[8]*b[11] + a[9]*b[12] + a[10]*b[13] + a[11]*b[8] + a[12]*b[9] + a[13]*b[10] + a[14]*b[15] - a[15]*b[14],
		a[0]*b[2] + a[2]*b[0] - a[3]*b[8] + a[4]*b[9] + a[8]*b[3] - a[9]*b[4] - a[10]*b[14] - a[14]*b[10],
		a[0]*b[3] + a[2]*b[8] + a[3]*b[0] - a[4]*b[10] - a[8]*b[2] - a[9]*b[14] + a[10]*b[4] - a[14]*b[9],
		a[0]*b[4] - a[2]*b[9] + a[3]*b[10] + a[4]*b[0] - a[8]*b[14] + a[9]*b[2] - a[10]*b[3] - a[14]*b[8],
		a[0]*b[5] - a[3]*b[11] + a[4]*b[12] + a[5]*b[0] - a[10]*b[15] - a[11]*b[3] + a[12]*b[4] - a[15]*b[10],
		a[0]*b[6] + a[2]*b[11] - a[4]*b[13] + a[6]*b[0] - a[9]*b[15] + a[11]*b[2] - a[13]*b[4] - a[15]*b[9],
		a[0]*b[7] - a[2]*b[12] + a[3]*b[13] + a[7]*b[0] - a[8]*b[15] - a[12]*b[2] + a[13]*b[3] - a[15]*b[8],
		a[0]*b[8] + a[4]*b[14] + a[8]*b[0] + a[14]*b[4],
		a[0]*b[9] + a[3]*b[14] + a[9]*b[0] + a[14]*b[3],
		a[0]*b[10] + a[2]*b[14] + a[10]*b[0] + a[14]*b[2],
		a[0]*b[11] + a[4]*b[15] + a[11]*b[0] - a[15]*b[4],
		a[0]*b[12] + a[3]*b[15] + a[12]*b[0] - a[15]*b[3],
		a[0]*b[13] + a[2]*b[15] + a[13]*b[0] - a[15]*b[2],
		a[0]*b[14] + a[14]*b[0],
		a[0]*b[15] + a[15]*b[0],
	}
}
