package geom

import "math"

// Matrix4 is a row-major 4x4 transformation matrix.
type Matrix4 [16]float64

func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translation(v Vector3) Matrix4 {
	m := Identity()
	m[3] = v.X
	m[7] = v.Y
	m[11] = v.Z
	return m
}

func Scaling(v Vector3) Matrix4 {
	m := Identity()
	m[0] = v.X
	m[5] = v.Y
	m[10] = v.Z
	return m
}

// RotationX builds a rotation about the x axis by angle radians.
func RotationX(angle float64) Matrix4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[5] = c
	m[6] = -s
	m[9] = s
	m[10] = c
	return m
}

func RotationY(angle float64) Matrix4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0] = c
	m[2] = s
	m[8] = -s
	m[10] = c
	return m
}

func RotationZ(angle float64) Matrix4 {
	s, c := math.Sincos(angle)
	m := Identity()
	m[0] = c
	m[1] = -s
	m[4] = s
	m[5] = c
	return m
}

// Mul returns m x o.
func (m Matrix4) Mul(o Matrix4) Matrix4 {
	var out Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * o[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}

// Translation extracts the translation column.
func (m Matrix4) Translation() Vector3 {
	return Vector3{m[3], m[7], m[11]}
}

// Apply transforms a point by the matrix (w assumed 1).
func (m Matrix4) Apply(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
		m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
		m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
	}
}
