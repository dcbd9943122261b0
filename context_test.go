package veil

import "testing"

// fullscreenTriangle covers the whole viewport at the given NDC depth with
// counter-clockwise (front-facing) winding.
func fullscreenTriangle(z float64) *Triangle {
	return NewTriangleForPoints(
		Vector{-3, -3, z},
		Vector{3, -3, z},
		Vector{0, 3, z},
	)
}

func reverseTriangle(t *Triangle) *Triangle {
	return NewTriangle(t.V3, t.V2, t.V1)
}

func newFlatContext(c Color) *Context {
	dc := NewContext(16, 16, &SolidColorShader{Matrix: Identity(), Color: c})
	dc.Blend = nil
	return dc
}

func TestCullSeparatesWinding(t *testing.T) {
	front := fullscreenTriangle(0)
	o := NewEmptyObject()

	dc := newFlatContext(White)
	dc.Cull = CullBack
	dc.DrawTriangle(front, o)
	if dc.Framebuffer.At(8, 8) != White {
		t.Fatal("front face culled by CullBack")
	}

	dc = newFlatContext(White)
	dc.Cull = CullFront
	dc.DrawTriangle(front, o)
	if dc.Framebuffer.At(8, 8) != (Color{}) {
		t.Fatal("front face drawn despite CullFront")
	}

	dc = newFlatContext(White)
	dc.Cull = CullFront
	dc.DrawTriangle(reverseTriangle(front), o)
	if dc.Framebuffer.At(8, 8) != White {
		t.Fatal("back face culled by CullFront")
	}
}

func TestDepthTestKeepsNearest(t *testing.T) {
	o := NewEmptyObject()
	dc := newFlatContext(White)
	dc.Cull = CullNone

	dc.DrawTriangle(fullscreenTriangle(0), o)
	dc.Shader = &SolidColorShader{Matrix: Identity(), Color: Color{1, 0, 0, 1}}
	dc.DrawTriangle(fullscreenTriangle(0.5), o)

	if dc.Framebuffer.At(8, 8) != White {
		t.Fatal("farther triangle overwrote nearer one")
	}
}

func TestBlendStageRuns(t *testing.T) {
	o := NewEmptyObject()
	dc := newFlatContext(Color{0.25, 0.25, 0.25, 0.25})
	dc.Cull = CullNone
	dc.DrawTriangle(fullscreenTriangle(0), o)

	dc.Blend = BlendAdditive
	dc.Shader = &SolidColorShader{Matrix: Identity(), Color: Color{0.5, 0, 0, 1}}
	dc.DrawTriangle(fullscreenTriangle(0), o)

	got := dc.Framebuffer.At(8, 8)
	if !colorsClose(got, Color{0.75, 0.25, 0.25, 1}, 1e-12) {
		t.Fatalf("blended pixel = %+v", got)
	}
}

func TestColorMaskProtectsAlpha(t *testing.T) {
	o := NewEmptyObject()
	dc := newFlatContext(Color{0, 0, 0, 7})
	dc.Cull = CullNone
	dc.DrawTriangle(fullscreenTriangle(0), o)

	dc.ColorMask = MaskRGB
	dc.Shader = &SolidColorShader{Matrix: Identity(), Color: White}
	dc.DrawTriangle(fullscreenTriangle(0), o)

	got := dc.Framebuffer.At(8, 8)
	if got.R != 1 || got.A != 7 {
		t.Fatalf("masked write = %+v, want RGB written, alpha preserved", got)
	}
}

func TestDiscardSkipsPixel(t *testing.T) {
	o := NewEmptyObject()
	dc := newFlatContext(Discard)
	dc.Cull = CullNone
	dc.DrawTriangle(fullscreenTriangle(0), o)

	if dc.Framebuffer.At(8, 8) != (Color{}) {
		t.Fatal("Discard wrote to the framebuffer")
	}
}
