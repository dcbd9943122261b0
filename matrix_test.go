package veil

import (
	"math"
	"testing"

	"github.com/beorn7/floats"
)

func matricesClose(a, b Matrix, tol float64) bool {
	av := [...]float64{a.X00, a.X01, a.X02, a.X03, a.X10, a.X11, a.X12, a.X13, a.X20, a.X21, a.X22, a.X23, a.X30, a.X31, a.X32, a.X33}
	bv := [...]float64{b.X00, b.X01, b.X02, b.X03, b.X10, b.X11, b.X12, b.X13, b.X20, b.X21, b.X22, b.X23, b.X30, b.X31, b.X32, b.X33}
	for i := range av {
		if math.Abs(av[i]-bv[i]) > tol {
			return false
		}
	}
	return true
}

func TestMatrixInverse(t *testing.T) {
	m := Translate(Vector{1, 2, 3}).Mul(Rotate(Vector{0.3, 1, -0.2}, 0.7)).Mul(Scale(Vector{2, 2, 2}))
	if !matricesClose(m.Mul(m.Inverse()), Identity(), 1e-9) {
		t.Error("m * m^-1 != identity")
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := Vector{0, 0, 3.5}
	view := LookAt(eye, Vector{}, Vector{Y: 1})

	p := view.MulPosition(eye)
	if p.Length() > 1e-9 {
		t.Errorf("eye maps to %+v, want origin", p)
	}

	// The camera looks down -Z: the point it looks at is in front with
	// negative view-space z equal to its distance.
	c := view.MulPosition(Vector{})
	if !floats.AlmostEqual(c.Z, -3.5, 1e-9) {
		t.Errorf("center view z = %v, want -3.5", c.Z)
	}
}

func TestViewSpaceRelativeDepth(t *testing.T) {
	// The depth encoding in the translucency passes relies on view-space z
	// differences being preserved by LookAt for on-axis points.
	view := LookAt(Vector{0, 0, 3.5}, Vector{}, Vector{Y: 1})
	front := view.MulPosition(Vector{0, 0, 1}).Z
	back := view.MulPosition(Vector{0, 0, -1}).Z
	if !floats.AlmostEqual(front-back, 2, 1e-9) {
		t.Errorf("front-back view depth = %v, want 2", front-back)
	}
}

func TestPerspectiveMapsFrustumCorners(t *testing.T) {
	proj := Perspective(90, 1, 1, 10)

	near := proj.MulPositionW(Vector{0, 0, -1})
	if !floats.AlmostEqual(near.Z/near.W, -1, 1e-9) {
		t.Errorf("near plane ndc z = %v, want -1", near.Z/near.W)
	}

	far := proj.MulPositionW(Vector{0, 0, -10})
	if !floats.AlmostEqual(far.Z/far.W, 1, 1e-9) {
		t.Errorf("far plane ndc z = %v, want 1", far.Z/far.W)
	}

	// At fovy 90 the top of the near plane sits at y = z.
	top := proj.MulPositionW(Vector{0, 1, -1})
	if !floats.AlmostEqual(top.Y/top.W, 1, 1e-9) {
		t.Errorf("ndc y = %v, want 1", top.Y/top.W)
	}
}

func TestScreenMapping(t *testing.T) {
	s := Screen(100, 50)

	center := s.MulPosition(Vector{0, 0, 0})
	if center.X != 50 || center.Y != 25 {
		t.Errorf("ndc origin maps to (%v, %v), want (50, 25)", center.X, center.Y)
	}

	// Y flips: ndc +1 is the top of the screen.
	top := s.MulPosition(Vector{0, 1, 0})
	if top.Y != 0 {
		t.Errorf("ndc y=1 maps to %v, want 0", top.Y)
	}

	near := s.MulPosition(Vector{0, 0, -1})
	far := s.MulPosition(Vector{0, 0, 1})
	if near.Z != 0 || far.Z != 1 {
		t.Errorf("depth maps to [%v, %v], want [0, 1]", near.Z, far.Z)
	}
}

func TestRotatePreservesAxis(t *testing.T) {
	axis := Vector{1, 1, 0}.Normalize()
	m := Rotate(axis, 1.234)
	got := m.MulDirection(axis)
	if got.Sub(axis).Length() > 1e-9 {
		t.Errorf("axis rotated to %+v", got)
	}
}
