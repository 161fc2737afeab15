package wheels

import "math"

// Transform is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Transform [6]float64

// IdentityTransform leaves points unchanged.
var IdentityTransform = Transform{1, 0, 0, 1, 0, 0}

// TransformParams describes a placement as separate components.
type TransformParams struct {
	X, Y           float64
	ScaleX, ScaleY float64
	Rotation       float64 // radians, clockwise in screen space
	SkewX, SkewY   float64 // radians
	PivotX, PivotY float64
}

// NewTransform composes p into a matrix. Composition order:
//
//	Translate(-PivotX, -PivotY) -> Scale -> Skew -> Rotate -> Translate(X, Y)
func NewTransform(p TransformParams) Transform {
	sx := p.ScaleX
	sy := p.ScaleY

	sin, cos := math.Sincos(p.Rotation)

	var tanSkewX, tanSkewY float64
	if p.SkewX != 0 {
		tanSkewX = math.Tan(p.SkewX)
	}
	if p.SkewY != 0 {
		tanSkewY = math.Tan(p.SkewY)
	}

	// After Scale * Translate(-pivot):
	//   a=sx, b=0, c=0, d=sy, tx=-px*sx, ty=-py*sy
	//
	// After Skew:
	a := sx
	b := tanSkewY * sx
	c := tanSkewX * sy
	d := sy

	preTx := -p.PivotX*sx - tanSkewX*p.PivotY*sy
	preTy := -tanSkewY*p.PivotX*sx - p.PivotY*sy

	// After Rotate:
	ra := cos*a - sin*b
	rb := sin*a + cos*b
	rc := cos*c - sin*d
	rd := sin*c + cos*d
	rtx := cos*preTx - sin*preTy
	rty := sin*preTx + cos*preTy

	// After Translate(X, Y):
	return Transform{ra, rb, rc, rd, rtx + p.X, rty + p.Y}
}

// Multiply returns m * c, which applies c first and then m.
func (m Transform) Multiply(c Transform) Transform {
	return Transform{
		m[0]*c[0] + m[2]*c[1],
		m[1]*c[0] + m[3]*c[1],
		m[0]*c[2] + m[2]*c[3],
		m[1]*c[2] + m[3]*c[3],
		m[0]*c[4] + m[2]*c[5] + m[4],
		m[1]*c[4] + m[3]*c[5] + m[5],
	}
}

// Invert returns the inverse of m, or the identity if m is singular.
func (m Transform) Invert() Transform {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return IdentityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Transform{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// Apply transforms the point (x, y).
func (m Transform) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// IsIdentity reports whether m is exactly the identity.
func (m Transform) IsIdentity() bool {
	return m == IdentityTransform
}
