package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestIdentityMul(t *testing.T) {
	m := Translation(Vector3{X: 1, Y: 2, Z: 3})
	got := Identity().Mul(m)
	if got != m {
		t.Fatalf("identity multiplication changed matrix: %v", got)
	}
}

func TestTranslationComposition(t *testing.T) {
	parent := Translation(Vector3{X: 10})
	child := Translation(Vector3{X: 5})
	world := parent.Mul(child)
	pos := world.Translation()
	if !almostEqual(pos.X, 15) || !almostEqual(pos.Y, 0) {
		t.Fatalf("composed translation = %+v, want x=15", pos)
	}
}

func TestTransformMatrixOrder(t *testing.T) {
	// Scale is applied before translation: a point at (1,0,0) under
	// scale 2 + translate 3 must land at 5, not 8.
	tr := NewTransform()
	tr.Scale = Vector3{X: 2, Y: 2, Z: 2}
	tr.Position = Vector3{X: 3}
	p := tr.Matrix().Apply(Vector3{X: 1})
	if !almostEqual(p.X, 5) {
		t.Fatalf("point transformed to %+v, want x=5", p)
	}
}

func TestTransformRotationZ(t *testing.T) {
	tr := NewTransform()
	tr.Rotation = Vector3{Z: math.Pi / 2}
	p := tr.Matrix().Apply(Vector3{X: 1})
	if !almostEqual(p.X, 0) || !almostEqual(p.Y, 1) {
		t.Fatalf("rotated point = %+v, want (0,1,0)", p)
	}
}

func TestDefaultTransformIsIdentity(t *testing.T) {
	if got := NewTransform().Matrix(); got != Identity() {
		t.Fatalf("default transform matrix = %v, want identity", got)
	}
}

func TestDistance2(t *testing.T) {
	if d := Distance2(Vector2{}, Vector2{X: 3, Y: 4}); !almostEqual(d, 5) {
		t.Fatalf("distance = %v, want 5", d)
	}
}
