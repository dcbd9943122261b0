package veil

import (
	"fmt"
	"image/color"
	"math"
)

// Color holds floating-point RGBA channels. Channels are unbounded so the
// same type can carry HDR values and signed blend intermediates.
type Color struct {
	R, G, B, A float64
}

var (
	Transparent = Color{}
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}

	// Discard is returned by a fragment shader to skip the pixel entirely.
	Discard = Color{-1, -1, -1, -1}
)

func MakeColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	const d = 0xffff
	return Color{float64(r) / d, float64(g) / d, float64(b) / d, float64(a) / d}
}

// HexColor parses "fff", "ffffff", with or without a leading '#'.
func HexColor(x string) Color {
	if len(x) > 0 && x[0] == '#' {
		x = x[1:]
	}
	var r, g, b int
	switch len(x) {
	case 3:
		fmt.Sscanf(x, "%1x%1x%1x", &r, &g, &b)
		r = r * 17
		g = g * 17
		b = b * 17
	case 6:
		fmt.Sscanf(x, "%02x%02x%02x", &r, &g, &b)
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

func (c Color) NRGBA() color.NRGBA {
	r := uint8(Clamp(c.R, 0, 1) * 255)
	g := uint8(Clamp(c.G, 0, 1) * 255)
	b := uint8(Clamp(c.B, 0, 1) * 255)
	a := uint8(Clamp(c.A, 0, 1) * 255)
	return color.NRGBA{r, g, b, a}
}

func (a Color) Add(b Color) Color {
	return Color{a.R + b.R, a.G + b.G, a.B + b.B, a.A + b.A}
}

func (a Color) Sub(b Color) Color {
	return Color{a.R - b.R, a.G - b.G, a.B - b.B, a.A - b.A}
}

func (a Color) Mul(b Color) Color {
	return Color{a.R * b.R, a.G * b.G, a.B * b.B, a.A * b.A}
}

func (a Color) MulScalar(s float64) Color {
	return Color{a.R * s, a.G * s, a.B * s, a.A * s}
}

func (a Color) DivScalar(s float64) Color {
	return Color{a.R / s, a.G / s, a.B / s, a.A / s}
}

func (a Color) Min(b Color) Color {
	return Color{math.Min(a.R, b.R), math.Min(a.G, b.G), math.Min(a.B, b.B), math.Min(a.A, b.A)}
}

func (a Color) Max(b Color) Color {
	return Color{math.Max(a.R, b.R), math.Max(a.G, b.G), math.Max(a.B, b.B), math.Max(a.A, b.A)}
}

func (a Color) Lerp(b Color, t float64) Color {
	return a.Add(b.Sub(a).MulScalar(t))
}

// Alpha returns the color with its alpha channel replaced.
func (a Color) Alpha(alpha float64) Color {
	return Color{a.R, a.G, a.B, alpha}
}
