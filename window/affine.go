package window

import "math"

// Affine maps (x, y) to (A*x + B*y + C, D*x + E*y + F).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Affine {
	return Affine{A: 1, E: 1}
}

func Translation(tx, ty float64) Affine {
	return Affine{A: 1, C: tx, E: 1, F: ty}
}

// Rotation turns clockwise on screen by angle degrees around (cx, cy).
func Rotation(angle, cx, cy float64) Affine {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	r := Affine{A: cos, B: -sin, D: sin, E: cos}
	return Translation(cx, cy).Mul(r).Mul(Translation(-cx, -cy))
}

// Scaling scales by (sx, sy) keeping (cx, cy) in place.
func Scaling(sx, sy, cx, cy float64) Affine {
	s := Affine{A: sx, E: sy}
	return Translation(cx, cy).Mul(s).Mul(Translation(-cx, -cy))
}

// Mul returns the transform that applies n first, then m.
func (m Affine) Mul(n Affine) Affine {
	return Affine{
		A: m.A*n.A + m.B*n.D,
		B: m.A*n.B + m.B*n.E,
		C: m.A*n.C + m.B*n.F + m.C,
		D: m.D*n.A + m.E*n.D,
		E: m.D*n.B + m.E*n.E,
		F: m.D*n.C + m.E*n.F + m.F,
	}
}

func (m Affine) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}
