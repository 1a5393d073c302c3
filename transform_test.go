package grove

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

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- computeLocalTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	p := NewPosition("test", nil)
	assertMatrix(t, "identity", computeLocalTransform(p), identityTransform)
}

func TestLocalTransformTranslation(t *testing.T) {
	p := NewPosition("test", nil)
	p.SetPosition(10, 20)
	assertMatrix(t, "translation", computeLocalTransform(p), [6]float64{1, 0, 0, 1, 10, 20})
}

func TestLocalTransformScale(t *testing.T) {
	p := NewPosition("test", nil)
	p.SetScale(2, 3)
	assertMatrix(t, "scale", computeLocalTransform(p), [6]float64{2, 0, 0, 3, 0, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	p := NewPosition("test", nil)
	p.Rotation = math.Pi / 2
	// cos=0, sin=1 -> a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", computeLocalTransform(p), [6]float64{0, 1, -1, 0, 0, 0})
}

// --- multiplyAffine / invertAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 1, -1, 3, 5, 7}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := [6]float64{0, 2, -2, 0, 10, -4}
	assertMatrix(t, "m*inv(m)", multiplyAffine(m, invertAffine(m)), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 3, 4}), identityTransform)
}

// --- Position hierarchy ---

func TestAbsolutePositionAccumulates(t *testing.T) {
	parent := NewPosition("parent", nil)
	parent.SetPosition(100, 50)
	child := NewPosition("child", nil)
	child.SetPosition(10, 5)
	parent.AddChild(child.Node)

	got := child.AbsolutePosition()
	assertNear(t, "x", got.X, 110)
	assertNear(t, "y", got.Y, 55)
}

func TestAbsolutePositionParentRotationRotatesOffset(t *testing.T) {
	parent := NewPosition("parent", nil)
	parent.SetPosition(100, 100)
	parent.Rotation = math.Pi / 2
	child := NewPosition("child", nil)
	child.SetPosition(10, 0)
	parent.AddChild(child.Node)

	got := child.AbsolutePosition()
	assertNear(t, "x", got.X, 100)
	assertNear(t, "y", got.Y, 110)
	assertNear(t, "rotation", child.AbsoluteRotation(), math.Pi/2)
}

func TestAbsolutePositionSkipsPlainNodes(t *testing.T) {
	top := NewPosition("top", nil)
	top.SetPosition(20, 30)
	mid := NewNode("mid", nil)
	leaf := NewPosition("leaf", nil)
	leaf.SetPosition(1, 2)
	top.AddChild(mid)
	mid.AddChild(leaf.Node)

	got := leaf.AbsolutePosition()
	assertNear(t, "x", got.X, 21)
	assertNear(t, "y", got.Y, 32)
}

func TestAbsolutePositionThroughSprite(t *testing.T) {
	s := NewSprite("sprite", nil)
	s.SetPosition(5, 5)
	s.SetScale(2, 2)
	child := NewPosition("child", nil)
	child.SetPosition(3, 0)
	s.AddChild(child.Node)

	got := child.AbsolutePosition()
	assertNear(t, "x", got.X, 11)
	assertNear(t, "y", got.Y, 5)
}

func TestWorldToLocalInvertsLocalToWorld(t *testing.T) {
	parent := NewPosition("parent", nil)
	parent.SetPosition(40, -10)
	parent.Rotation = 0.7
	parent.SetScale(1.5, 0.5)
	child := NewPosition("child", nil)
	child.SetPosition(3, 4)
	child.Rotation = -0.2
	parent.AddChild(child.Node)

	wx, wy := child.LocalToWorld(7, -2)
	lx, ly := child.WorldToLocal(wx, wy)
	assertNear(t, "lx", lx, 7)
	assertNear(t, "ly", ly, -2)
}
