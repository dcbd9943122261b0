package veil

import (
	"math"
)

// Shader transforms vertices into clip space and shades fragments.
type Shader interface {
	Vertex(Vertex) Vertex
	Fragment(Vertex, *Object) Color
}

// PhongShader implements Phong shading with an optional texture. It is the
// plain opaque path; translucent objects go through TranslucencyPipeline.
type PhongShader struct {
	Matrix         Matrix
	LightDirection Vector
	CameraPosition Vector
	AmbientColor   Color
	DiffuseColor   Color
	SpecularColor  Color
	SpecularPower  float64
}

func NewPhongShader(matrix Matrix, lightDirection, cameraPosition Vector, ambient, diffuse Color) *PhongShader {
	return &PhongShader{
		Matrix:         matrix,
		LightDirection: lightDirection,
		CameraPosition: cameraPosition,
		AmbientColor:   ambient,
		DiffuseColor:   diffuse,
		SpecularColor:  White,
		SpecularPower:  0,
	}
}

func (shader *PhongShader) Vertex(v Vertex) Vertex {
	v.Output = shader.Matrix.MulPositionW(v.Position)
	normalMatrix := shader.Matrix.Inverse().Transpose()
	v.Normal = normalMatrix.MulDirection(v.Normal).Normalize()
	return v
}

func (shader *PhongShader) Fragment(v Vertex, fromObject *Object) Color {
	light := shader.AmbientColor
	color := fromObject.Color
	if fromObject.Texture != nil {
		sample := fromObject.Texture.Sample(v.Texture.X, v.Texture.Y)
		if sample.A > 0 {
			color = color.Lerp(sample.DivScalar(sample.A), sample.A)
		}
	}
	diffuse := math.Max(v.Normal.Dot(shader.LightDirection), 0)
	light = light.Add(shader.DiffuseColor.MulScalar(diffuse))
	if diffuse > 0 && shader.SpecularPower > 0 {
		camera := shader.CameraPosition.Sub(v.Position).Normalize()
		reflected := shader.LightDirection.Negate().Reflect(v.Normal)
		specular := math.Max(camera.Dot(reflected), 0)
		if specular > 0 {
			specular = math.Pow(specular, shader.SpecularPower)
			light = light.Add(shader.SpecularColor.MulScalar(specular))
		}
	}
	if color.A < 1 && color.A > 0 {
		return color.Mul(light).Min(White).DivScalar(color.A).Alpha(color.A)
	}
	return color.Mul(light).Min(White).Alpha(color.A)
}

// SolidColorShader renders everything in one flat color, optionally
// extruding vertices along their normals for shell effects.
type SolidColorShader struct {
	Matrix    Matrix
	Color     Color
	Thickness float64
}

func NewSolidColorShader(matrix Matrix, color Color) *SolidColorShader {
	return &SolidColorShader{Matrix: matrix, Color: color}
}

func (s *SolidColorShader) Vertex(v Vertex) Vertex {
	p := v.Position
	if s.Thickness != 0 {
		p = p.Add(v.Normal.MulScalar(s.Thickness))
	}
	v.Output = s.Matrix.MulPositionW(p)
	return v
}

func (s *SolidColorShader) Fragment(v Vertex, fromObject *Object) Color {
	return s.Color
}
