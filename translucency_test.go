package veil

import (
	"math"
	"testing"

	"github.com/beorn7/floats"
)

const testSize = 128

// testBacklight points from the surfaces toward a light source behind the
// object, so back faces glow at full strength.
var testBacklight = Vector{0, 0, -1}

func testPipeline() (*TranslucencyPipeline, Vector) {
	eye := Vector{0, 0, 3.5}
	view := LookAt(eye, Vector{}, Vector{Y: 1})
	projection := Perspective(40, 1, 1, 10)
	return NewTranslucencyPipeline(view, projection, testBacklight, eye), eye
}

func testObject(attenuation float64) *Object {
	m := DefaultMaterial()
	m.Attenuation = attenuation
	o := NewObjectFromMesh(NewSphere(32, 64))
	o.Material = &m
	return o
}

func newTestContext() *Context {
	dc := NewContext(testSize, testSize, nil)
	dc.ClearColorBuffer()
	return dc
}

// renderCapture draws the sphere and snapshots the full color buffer after
// every pass.
func renderCapture(attenuation float64) map[string][]float64 {
	p, _ := testPipeline()
	snapshots := make(map[string][]float64)
	p.Capture = func(pass string, fb *Framebuffer) {
		snapshots[pass] = append([]float64(nil), fb.Color...)
	}
	dc := newTestContext()
	p.Draw(dc, testObject(attenuation))
	return snapshots
}

func alphaAt(plane []float64, x, y int) float64 {
	return plane[(y*testSize+x)*4+3]
}

func centerAlpha(plane []float64) float64 {
	return alphaAt(plane, testSize/2, testSize/2)
}

func TestThicknessMatchesSphereDiameter(t *testing.T) {
	// Unit sphere, attenuation 2: thickness at the silhouette center must
	// be attenuation * diameter = 4.
	snaps := renderCapture(2)
	got := centerAlpha(snaps["subtract"])
	if !floats.AlmostEqual(got, 4, 0.1) {
		t.Fatalf("thickness at center = %v, want ~4", got)
	}

	// Thickness falls off toward the silhouette edge and is zero outside.
	edge := alphaAt(snaps["subtract"], testSize/2, testSize/2+48)
	if edge >= got {
		t.Errorf("thickness near silhouette = %v, want < center %v", edge, got)
	}
	outside := alphaAt(snaps["subtract"], testSize/2, testSize-4)
	if outside != 0 {
		t.Errorf("thickness outside silhouette = %v, want 0", outside)
	}
}

func TestAccumulatorStateMachine(t *testing.T) {
	// The alpha channel transitions through back depth, thickness (held
	// through the clamp) and finally real material alpha.
	snaps := renderCapture(2)

	if got := centerAlpha(snaps["backdepth"]); !floats.AlmostEqual(got, -2, 0.1) {
		t.Errorf("after backdepth pass alpha = %v, want ~-2", got)
	}
	if got := centerAlpha(snaps["subtract"]); !floats.AlmostEqual(got, 4, 0.1) {
		t.Errorf("after subtract pass alpha = %v, want ~4", got)
	}
	if got := centerAlpha(snaps["darken"]); !floats.AlmostEqual(got, 4, 0.1) {
		t.Errorf("after darken pass alpha = %v, want ~4", got)
	}
	if got := centerAlpha(snaps["clamp"]); !floats.AlmostEqual(got, 4, 0.1) {
		t.Errorf("after clamp pass alpha = %v, want ~4", got)
	}
	if got := centerAlpha(snaps["composite"]); got != 1 {
		t.Errorf("after composite pass alpha = %v, want 1", got)
	}
}

func TestDarkenGoesNegativeAndClampRestores(t *testing.T) {
	// With a large attenuation the thickness exceeds 1 and the darkening
	// pass drives lit color channels negative; the clamp pass must bring
	// every channel back to at least zero.
	snaps := renderCapture(10)

	negative := false
	for i := 0; i < len(snaps["darken"]); i += 4 {
		if snaps["darken"][i] < 0 || snaps["darken"][i+1] < 0 || snaps["darken"][i+2] < 0 {
			negative = true
			break
		}
	}
	if !negative {
		t.Fatal("darken pass produced no negative color channels")
	}

	for i := 0; i < len(snaps["clamp"]); i += 4 {
		for c := 0; c < 3; c++ {
			if snaps["clamp"][i+c] < 0 {
				x := (i / 4) % testSize
				y := (i / 4) / testSize
				t.Fatalf("negative color %v at (%d,%d) channel %d after clamp", snaps["clamp"][i+c], x, y, c)
			}
		}
	}
}

func TestAttenuationScalesThickness(t *testing.T) {
	one := renderCapture(1)
	two := renderCapture(2)
	t1 := centerAlpha(one["subtract"])
	t2 := centerAlpha(two["subtract"])
	if t1 <= 0 {
		t.Fatalf("thickness with attenuation 1 = %v, want > 0", t1)
	}
	if !floats.AlmostEqual(t2/t1, 2, 0.01) {
		t.Errorf("doubling attenuation scaled thickness by %v, want 2", t2/t1)
	}
}

func TestPassOrderIsLoadBearing(t *testing.T) {
	p, _ := testPipeline()
	o := testObject(2)

	canonical := newTestContext()
	for _, pass := range p.Passes(o) {
		p.DrawPass(canonical, pass, o)
	}

	swapped := newTestContext()
	passes := p.Passes(o)
	passes[0], passes[1] = passes[1], passes[0]
	for _, pass := range passes {
		p.DrawPass(swapped, pass, o)
	}

	if buffersEqual(canonical.Framebuffer, swapped.Framebuffer, 1e-6) {
		t.Fatal("swapping the depth passes produced identical output; pass order is not being honored")
	}
}

func TestZeroAttenuationEqualsCompositeAlone(t *testing.T) {
	p, _ := testPipeline()

	full := newTestContext()
	p.Draw(full, testObject(0))

	alone := newTestContext()
	o := testObject(0)
	passes := p.Passes(o)
	p.DrawPass(alone, passes[len(passes)-1], o)

	if !buffersEqual(full.Framebuffer, alone.Framebuffer, 1e-9) {
		t.Fatal("zero attenuation output differs from the composite pass alone")
	}
}

func TestFallbackWhenAlphaPrecisionTooLow(t *testing.T) {
	p, _ := testPipeline()
	o := testObject(2)

	ldr := newTestContext()
	ldr.Framebuffer.AlphaBits = 8
	p.Draw(ldr, o)

	want := newTestContext()
	p.DrawFallback(want, o)

	if !buffersEqual(ldr.Framebuffer, want.Framebuffer, 1e-9) {
		t.Fatal("low-precision target did not take the diffuse fallback path")
	}
}

func TestFallbackIgnoresAccumulatorPasses(t *testing.T) {
	p, _ := testPipeline()
	dc := newTestContext()
	p.DrawFallback(dc, testObject(5))

	// No pass may leave scratch depth values in alpha: covered pixels have
	// alpha 1, everything else stays at the clear value.
	for i := 3; i < len(dc.Framebuffer.Color); i += 4 {
		a := dc.Framebuffer.Color[i]
		if a != 0 && a != 1 {
			t.Fatalf("fallback wrote accumulator-like alpha %v", a)
		}
	}
}

func TestDefaultMaterialAttenuation(t *testing.T) {
	m := DefaultMaterial()
	if m.Attenuation != 2 {
		t.Errorf("default attenuation = %v, want 2", m.Attenuation)
	}
	if m.Attenuation <= 0 {
		t.Error("default material must enable the effect")
	}
}

func buffersEqual(a, b *Framebuffer, tol float64) bool {
	if len(a.Color) != len(b.Color) {
		return false
	}
	for i := range a.Color {
		if math.Abs(a.Color[i]-b.Color[i]) > tol {
			return false
		}
	}
	return true
}
