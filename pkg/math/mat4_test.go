package math

import "testing"

func TestIdentity(t *testing.T) {
	m := Identity()
	p := m.TransformPoint([3]float32{3, -2, 1})
	if p != [3]float32{3, -2, 1} {
		t.Errorf("identity moved the point: %v", p)
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(10, -5, 0)
	p := m.TransformPoint([3]float32{1, 1, 0})
	if p != [3]float32{11, -4, 0} {
		t.Errorf("TransformPoint = %v, want (11, -4, 0)", p)
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 1)
	p := m.TransformPoint([3]float32{4, 4, 4})
	if p != [3]float32{8, 12, 4} {
		t.Errorf("TransformPoint = %v, want (8, 12, 4)", p)
	}
}

func TestMulComposes(t *testing.T) {
	m := Translate(10, 0, 0).Mul(Scale(2, 2, 1))
	p := m.TransformPoint([3]float32{3, 3, 0})
	if p != [3]float32{16, 6, 0} {
		t.Errorf("TransformPoint = %v, want (16, 6, 0)", p)
	}
}

func TestOrthoMapsCorners(t *testing.T) {
	m := Ortho(0, 640, 0, 360, -1, 1)

	bl := m.TransformPoint([3]float32{0, 0, 0})
	if !approx(bl[0], -1) || !approx(bl[1], -1) {
		t.Errorf("bottom left maps to %v, want (-1, -1)", bl)
	}
	tr := m.TransformPoint([3]float32{640, 360, 0})
	if !approx(tr[0], 1) || !approx(tr[1], 1) {
		t.Errorf("top right maps to %v, want (1, 1)", tr)
	}
	center := m.TransformPoint([3]float32{320, 180, 0})
	if !approx(center[0], 0) || !approx(center[1], 0) {
		t.Errorf("center maps to %v, want (0, 0)", center)
	}
}

func approx(got, want float32) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}
