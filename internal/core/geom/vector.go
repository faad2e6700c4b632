// Package geom provides the small linear-algebra surface the simulation
// core needs: 2/3-component vectors, 4x4 matrices and transforms.
package geom

import "math"

type Vector2 struct {
	X, Y float64
}

func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{v.X + o.X, v.Y + o.Y}
}

func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{v.X - o.X, v.Y - o.Y}
}

func (v Vector2) Scale(s float64) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

func (v Vector2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance2 computes the Euclidean distance between two 2D points.
func Distance2(a, b Vector2) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

type Vector3 struct {
	X, Y, Z float64
}

func (v Vector3) Add(o Vector3) Vector3 {
	return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector3) Sub(o Vector3) Vector3 {
	return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector3) Scale(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

func (v Vector3) XY() Vector2 {
	return Vector2{v.X, v.Y}
}

// One is the multiplicative identity vector, the default scale.
func One() Vector3 {
	return Vector3{1, 1, 1}
}
