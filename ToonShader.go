package veil

import "math"

// ToonShader implements cel shading: brightness is snapped to a small set
// of banded colors.
type ToonShader struct {
	Matrix         Matrix
	LightDirection Vector
	// ColorSteps maps brightness thresholds to band colors.
	ColorSteps map[float64]Color
}

func NewToonShader(matrix Matrix, lightDir Vector) *ToonShader {
	return &ToonShader{
		Matrix:         matrix,
		LightDirection: lightDir.Normalize(),
		ColorSteps: map[float64]Color{
			0.8: HexColor("ffffaa"), // Highlight
			0.5: HexColor("ff8844"), // Mid-tone
			0.2: HexColor("a12c00"), // Shadow
			0.0: HexColor("4d1100"), // Deep Shadow
		},
	}
}

func (s *ToonShader) Vertex(v Vertex) Vertex {
	v.Output = s.Matrix.MulPositionW(v.Position)
	v.Normal = s.Matrix.MulDirection(v.Normal).Normalize()
	return v
}

func (s *ToonShader) Fragment(v Vertex, fromObject *Object) Color {
	intensity := math.Max(0, v.Normal.Dot(s.LightDirection))
	var band Color
	switch {
	case intensity > 0.8:
		band = s.ColorSteps[0.8]
	case intensity > 0.5:
		band = s.ColorSteps[0.5]
	case intensity > 0.2:
		band = s.ColorSteps[0.2]
	default:
		band = s.ColorSteps[0.0]
	}

	if fromObject.Texture != nil {
		return fromObject.Texture.Sample(v.Texture.X, v.Texture.Y).Mul(band)
	}
	return fromObject.Color.Mul(band)
}
