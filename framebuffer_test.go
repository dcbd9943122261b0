package veil

import (
	"math"
	"testing"
)

func TestFramebufferClearAndAccess(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	if !fb.HDRAlpha() {
		t.Fatal("new framebuffer must default to HDR alpha")
	}
	for _, d := range fb.Depth {
		if d != math.MaxFloat64 {
			t.Fatal("depth not cleared on allocation")
		}
	}

	fb.ClearColor(Color{0.5, 0.25, 0.125, -2})
	got := fb.At(3, 2)
	if got != (Color{0.5, 0.25, 0.125, -2}) {
		t.Errorf("At = %+v", got)
	}
	if fb.AlphaAt(0, 0) != -2 {
		t.Errorf("AlphaAt = %v, want -2", fb.AlphaAt(0, 0))
	}
}

func TestFramebufferHoldsSignedHDRAlpha(t *testing.T) {
	// The accumulator must carry values far outside [0,1] without loss:
	// backface depths are negative and thickness can exceed one.
	fb := NewFramebuffer(2, 2)
	fb.Set(1, 1, Color{0, 0, 0, -3.75})
	if fb.AlphaAt(1, 1) != -3.75 {
		t.Fatalf("alpha round-trip lost precision: %v", fb.AlphaAt(1, 1))
	}
	fb.Set(1, 1, Color{2, -1, 0.5, 40})
	if fb.At(1, 1) != (Color{2, -1, 0.5, 40}) {
		t.Fatalf("color round-trip lost precision: %+v", fb.At(1, 1))
	}
}

func TestFramebufferImageClamps(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.Set(0, 0, Color{-1, 0.5, 2, -4})
	fb.Set(1, 0, Color{1, 1, 1, 1})

	im := fb.Image()
	p0 := im.NRGBAAt(0, 0)
	if p0.R != 0 || p0.G != 128 || p0.B != 255 || p0.A != 0 {
		t.Errorf("clamped pixel = %+v", p0)
	}
	p1 := im.NRGBAAt(1, 0)
	if p1.R != 255 || p1.A != 255 {
		t.Errorf("white pixel = %+v", p1)
	}
}

func TestAlphaPlane(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Set(0, 0, Color{0, 0, 0, 1})
	fb.Set(1, 1, Color{0, 0, 0, 4})
	plane := fb.AlphaPlane()
	want := []float64{1, 0, 0, 4}
	for i := range want {
		if plane[i] != want[i] {
			t.Fatalf("plane = %v, want %v", plane, want)
		}
	}
}
