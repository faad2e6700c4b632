package geom

// Transform holds position, rotation (Euler angles in radians) and scale.
// It is embedded by value in a scene node and has no ownership of its own.
type Transform struct {
	Position Vector3
	Rotation Vector3
	Scale    Vector3
}

func NewTransform() Transform {
	return Transform{Scale: One()}
}

// Matrix derives the local matrix: scale first, then rotation (x, y, z),
// then translation.
func (t Transform) Matrix() Matrix4 {
	m := Scaling(t.Scale)
	m = RotationX(t.Rotation.X).Mul(m)
	m = RotationY(t.Rotation.Y).Mul(m)
	m = RotationZ(t.Rotation.Z).Mul(m)
	return Translation(t.Position).Mul(m)
}

func (t *Transform) Translate(d Vector3) {
	t.Position = t.Position.Add(d)
}

func (t *Transform) Rotate(d Vector3) {
	t.Rotation = t.Rotation.Add(d)
}
