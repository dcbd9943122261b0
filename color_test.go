package veil

import (
	"image/color"
	"testing"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"fff", White},
		{"#fff", White},
		{"000000", Black},
		{"ff0000", Color{1, 0, 0, 1}},
		{"#336699", Color{0.2, 0.4, 0.6, 1}},
	}
	for _, tt := range tests {
		if got := HexColor(tt.in); !colorsClose(got, tt.want, 1e-9) {
			t.Errorf("HexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestMakeColorRoundTrip(t *testing.T) {
	c := MakeColor(color.NRGBA{255, 128, 0, 255})
	if !colorsClose(c, Color{1, 128.0 / 255, 0, 1}, 1e-3) {
		t.Errorf("MakeColor = %+v", c)
	}
}

func TestNRGBAClamps(t *testing.T) {
	c := Color{2, -1, 0.5, 40}
	got := c.NRGBA()
	if got.R != 255 || got.G != 0 || got.A != 255 {
		t.Errorf("NRGBA = %+v", got)
	}
}

func TestColorArithmetic(t *testing.T) {
	a := Color{0.5, 0.25, 1, 1}
	b := Color{0.5, 0.5, -2, 0}

	if got := a.Add(b); got != (Color{1, 0.75, -1, 1}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Color{0, -0.25, 3, 1}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := a.Max(b); got != (Color{0.5, 0.5, 1, 1}) {
		t.Errorf("Max = %+v", got)
	}
	if got := a.Min(b); got != (Color{0.5, 0.25, -2, 0}) {
		t.Errorf("Min = %+v", got)
	}
	if got := a.Alpha(0.5); got.A != 0.5 || got.R != 0.5 {
		t.Errorf("Alpha = %+v", got)
	}
	if got := Black.Lerp(White, 0.5); !colorsClose(got, Color{0.5, 0.5, 0.5, 1}, 1e-12) {
		t.Errorf("Lerp = %+v", got)
	}
}
