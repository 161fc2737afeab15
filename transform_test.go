package wheels

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Transform) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- NewTransform ---

func TestNewTransformIdentity(t *testing.T) {
	got := NewTransform(TransformParams{ScaleX: 1, ScaleY: 1})
	assertMatrix(t, "identity", got, IdentityTransform)
}

func TestNewTransformTranslation(t *testing.T) {
	got := NewTransform(TransformParams{X: 10, Y: 20, ScaleX: 1, ScaleY: 1})
	assertMatrix(t, "translation", got, Transform{1, 0, 0, 1, 10, 20})
}

func TestNewTransformScale(t *testing.T) {
	got := NewTransform(TransformParams{ScaleX: 2, ScaleY: 3})
	assertMatrix(t, "scale", got, Transform{2, 0, 0, 3, 0, 0})
}

func TestNewTransformRotation90(t *testing.T) {
	got := NewTransform(TransformParams{ScaleX: 1, ScaleY: 1, Rotation: math.Pi / 2})
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", got, Transform{0, 1, -1, 0, 0, 0})
}

func TestNewTransformPivot(t *testing.T) {
	m := NewTransform(TransformParams{X: 100, Y: 50, ScaleX: 1, ScaleY: 1, PivotX: 10, PivotY: 5})
	// The pivot lands on (X, Y).
	x, y := m.Apply(10, 5)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 50)
}

func TestNewTransformPivotRotation(t *testing.T) {
	m := NewTransform(TransformParams{X: 50, Y: 50, ScaleX: 1, ScaleY: 1, Rotation: math.Pi, PivotX: 8, PivotY: 8})
	x, y := m.Apply(8, 8)
	assertNear(t, "pivot x", x, 50)
	assertNear(t, "pivot y", y, 50)
	x, y = m.Apply(0, 0)
	assertNear(t, "corner x", x, 58)
	assertNear(t, "corner y", y, 58)
}

// --- Multiply / Invert ---

func TestMultiplyIdentity(t *testing.T) {
	m := Transform{2, 0.5, -1, 3, 7, 9}
	assertMatrix(t, "I*m", IdentityTransform.Multiply(m), m)
	assertMatrix(t, "m*I", m.Multiply(IdentityTransform), m)
}

func TestMultiplyOrder(t *testing.T) {
	translate := Transform{1, 0, 0, 1, 10, 0}
	scale := Transform{2, 0, 0, 2, 0, 0}
	// translate * scale: scale first, then translate.
	x, _ := translate.Multiply(scale).Apply(1, 0)
	assertNear(t, "T*S", x, 12)
	x, _ = scale.Multiply(translate).Apply(1, 0)
	assertNear(t, "S*T", x, 22)
}

func TestInvertRoundTrip(t *testing.T) {
	m := NewTransform(TransformParams{X: 30, Y: -12, ScaleX: 2, ScaleY: 0.5, Rotation: 0.7, PivotX: 3, PivotY: 4})
	assertMatrix(t, "m*inv", m.Multiply(m.Invert()), IdentityTransform)

	x, y := m.Apply(5, 6)
	bx, by := m.Invert().Apply(x, y)
	assertNear(t, "x", bx, 5)
	assertNear(t, "y", by, 6)
}

func TestInvertSingular(t *testing.T) {
	m := Transform{0, 0, 0, 0, 5, 5}
	assertMatrix(t, "singular", m.Invert(), IdentityTransform)
}

func TestIsIdentity(t *testing.T) {
	if !IdentityTransform.IsIdentity() {
		t.Error("IdentityTransform.IsIdentity() = false")
	}
	if (Transform{1, 0, 0, 1, 1, 0}).IsIdentity() {
		t.Error("translated transform reported as identity")
	}
}
