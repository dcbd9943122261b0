package veil

import "testing"

func TestBlendComponentApply(t *testing.T) {
	tests := []struct {
		name               string
		c                  BlendComponent
		src, dst           float64
		srcAlpha, dstAlpha float64
		want               float64
	}{
		{
			name: "additive",
			c:    BlendComponent{BlendAdd, FactorOne, FactorOne},
			src:  0.25, dst: 0.5, want: 0.75,
		},
		{
			name: "replace",
			c:    BlendComponent{BlendAdd, FactorOne, FactorZero},
			src:  0.25, dst: 0.5, want: 0.25,
		},
		{
			name: "keep destination",
			c:    BlendComponent{BlendAdd, FactorZero, FactorOne},
			src:  0.25, dst: 0.5, want: 0.5,
		},
		{
			name: "subtract src minus dst",
			c:    BlendComponent{BlendSubtract, FactorOne, FactorOne},
			src:  0.25, dst: 0.75, want: -0.5,
		},
		{
			name: "reverse subtract",
			c:    BlendComponent{BlendReverseSubtract, FactorOne, FactorOne},
			src:  0.25, dst: 0.75, want: 0.5,
		},
		{
			name: "max ignores factors",
			c:    BlendComponent{BlendMax, FactorZero, FactorZero},
			src:  -0.5, dst: -2, want: -0.5,
		},
		{
			name: "max clamps negatives against zero source",
			c:    BlendComponent{BlendMax, FactorOne, FactorOne},
			src:  0, dst: -3, want: 0,
		},
		{
			name: "darken by one minus dst alpha",
			c:    BlendComponent{BlendAdd, FactorZero, FactorOneMinusDstAlpha},
			src:  1, dst: 0.8, dstAlpha: 0.25, want: 0.6,
		},
		{
			name: "darken past zero when dst alpha exceeds one",
			c:    BlendComponent{BlendAdd, FactorZero, FactorOneMinusDstAlpha},
			src:  1, dst: 0.5, dstAlpha: 3, want: -1,
		},
		{
			name: "src alpha factor",
			c:    BlendComponent{BlendAdd, FactorSrcAlpha, FactorOneMinusSrcAlpha},
			src:  1, dst: 0.5, srcAlpha: 0.5, want: 0.75,
		},
		{
			name: "dst alpha factor",
			c:    BlendComponent{BlendAdd, FactorDstAlpha, FactorZero},
			src:  0.5, dst: 1, dstAlpha: 0.5, want: 0.25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.c.Apply(tt.src, tt.dst, tt.srcAlpha, tt.dstAlpha)
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Errorf("Apply(%v, %v) = %v, want %v", tt.src, tt.dst, got, tt.want)
			}
		})
	}
}

func TestBlendStateSeparateComponents(t *testing.T) {
	// The subtract pass keeps destination color while subtracting alpha;
	// color and alpha components must blend independently.
	state := &BlendState{
		Color: BlendComponent{BlendAdd, FactorZero, FactorOne},
		Alpha: BlendComponent{BlendSubtract, FactorOne, FactorOne},
	}
	src := Color{0.9, 0.9, 0.9, 3}
	dst := Color{0.1, 0.2, 0.3, 1}
	got := state.Blend(src, dst)

	want := Color{0.1, 0.2, 0.3, 2}
	if got != want {
		t.Errorf("Blend = %+v, want %+v", got, want)
	}
}

func TestBlendAdditivePreset(t *testing.T) {
	got := BlendAdditive.Blend(Color{0.2, 0.3, 0.4, 0.7}, Color{0.1, 0.1, 0.1, 5})
	want := Color{0.3, 0.4, 0.5, 0.7}
	if !colorsClose(got, want, 1e-12) {
		t.Errorf("BlendAdditive = %+v, want %+v", got, want)
	}
}

func colorsClose(a, b Color, tol float64) bool {
	close := func(x, y float64) bool {
		d := x - y
		return d <= tol && d >= -tol
	}
	return close(a.R, b.R) && close(a.G, b.G) && close(a.B, b.B) && close(a.A, b.A)
}
