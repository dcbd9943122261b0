package veil

import "math"

// The pass shaders below feed the five-pass translucency protocol. The
// first two encode view-space relative depth into the alpha output; the
// blend stage configured by the pipeline turns those writes into the
// thickness arithmetic.

// depthEncoder computes the clip-space output and the relative depth
// varying: the view-space z of the vertex minus the view-space z of the
// object's local origin, scaled by the attenuation factor. The origin depth
// is recomputed for every vertex so deforming meshes stay correct without
// any per-frame precomputation.
type depthEncoder struct {
	MVP         Matrix
	ModelView   Matrix
	Attenuation float64
}

func (e depthEncoder) encode(v Vertex) Vertex {
	v.Output = e.MVP.MulPositionW(v.Position)
	originZ := e.ModelView.MulPosition(Vector{}).Z
	viewZ := e.ModelView.MulPosition(v.Position).Z
	v.Depth = (viewZ - originZ) * e.Attenuation
	return v
}

// backDepthShader is the pass 1 shader: back faces only. Alpha carries the
// backface relative depth; color carries a backlit glow term, squared for a
// more saturated look when the surface is strongly lit from behind.
type backDepthShader struct {
	depthEncoder
	NormalMatrix   Matrix
	LightDirection Vector
	Tint           Color
}

func (s *backDepthShader) Vertex(v Vertex) Vertex {
	v = s.encode(v)
	v.Normal = s.NormalMatrix.MulDirection(v.Normal).Normalize()
	return v
}

func (s *backDepthShader) Fragment(v Vertex, fromObject *Object) Color {
	glow := math.Max(v.Normal.Dot(s.LightDirection), 0)
	glow *= glow
	c := s.Tint.MulScalar(glow)
	return c.Alpha(v.Depth)
}

// frontDepthShader is the pass 2 shader: front faces only, color factors
// keep the destination untouched, alpha feeds the subtract equation.
type frontDepthShader struct {
	depthEncoder
}

func (s *frontDepthShader) Vertex(v Vertex) Vertex {
	return s.encode(v)
}

func (s *frontDepthShader) Fragment(v Vertex, fromObject *Object) Color {
	return Color{0, 0, 0, v.Depth}
}

// flatShader outputs a constant color; passes 3 and 4 need only a source
// operand for their blend equations.
type flatShader struct {
	MVP   Matrix
	Color Color
}

func (s *flatShader) Vertex(v Vertex) Vertex {
	v.Output = s.MVP.MulPositionW(v.Position)
	return v
}

func (s *flatShader) Fragment(v Vertex, fromObject *Object) Color {
	return s.Color
}

// compositeShader is the pass 5 material model: a metallic/smoothness
// variant of Phong shading. Any Shader honoring the additive color /
// replacing alpha contract can stand in for it.
type compositeShader struct {
	MVP            Matrix
	Model          Matrix
	NormalMatrix   Matrix
	LightDirection Vector
	CameraPosition Vector
	Material       Material
}

func (s *compositeShader) Vertex(v Vertex) Vertex {
	v.Output = s.MVP.MulPositionW(v.Position)
	v.Position = s.Model.MulPosition(v.Position)
	v.Normal = s.NormalMatrix.MulDirection(v.Normal).Normalize()
	return v
}

func (s *compositeShader) Fragment(v Vertex, fromObject *Object) Color {
	m := s.Material
	albedo := m.BaseColor
	if tex := m.albedoTexture(fromObject); tex != nil {
		sample := tex.Sample(v.Texture.X, v.Texture.Y)
		if sample.A > 0 {
			albedo = albedo.Mul(sample.DivScalar(sample.A))
		}
	}

	ambient := Color{0.2, 0.2, 0.2, 1}
	diffuse := math.Max(v.Normal.Dot(s.LightDirection), 0)
	light := ambient.Add(White.MulScalar(diffuse * (1 - 0.5*m.Metallic)))
	out := albedo.Mul(light)

	if diffuse > 0 && m.Smoothness > 0 {
		camera := s.CameraPosition.Sub(v.Position).Normalize()
		reflected := s.LightDirection.Negate().Reflect(v.Normal)
		spec := math.Max(camera.Dot(reflected), 0)
		if spec > 0 {
			power := 1 + m.Smoothness*127
			spec = math.Pow(spec, power) * (0.08 + 0.92*m.Metallic)
			// Metals tint their reflections with the albedo.
			specColor := White.Lerp(albedo, m.Metallic)
			out = out.Add(specColor.MulScalar(spec))
		}
	}

	return out.Min(White).Alpha(1)
}

// fallbackShader is the plain diffuse path used when the render target
// cannot support the multipass technique.
type fallbackShader struct {
	MVP            Matrix
	NormalMatrix   Matrix
	LightDirection Vector
	Material       Material
}

func (s *fallbackShader) Vertex(v Vertex) Vertex {
	v.Output = s.MVP.MulPositionW(v.Position)
	v.Normal = s.NormalMatrix.MulDirection(v.Normal).Normalize()
	return v
}

func (s *fallbackShader) Fragment(v Vertex, fromObject *Object) Color {
	m := s.Material
	albedo := m.BaseColor
	if tex := m.albedoTexture(fromObject); tex != nil {
		sample := tex.Sample(v.Texture.X, v.Texture.Y)
		if sample.A > 0 {
			albedo = albedo.Mul(sample.DivScalar(sample.A))
		}
	}
	ambient := Color{0.2, 0.2, 0.2, 1}
	diffuse := math.Max(v.Normal.Dot(s.LightDirection), 0)
	return albedo.Mul(ambient.Add(White.MulScalar(diffuse))).Min(White).Alpha(1)
}
