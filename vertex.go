package veil

// Vertex carries the attributes interpolated across a triangle. Depth is a
// scalar varying used by the translucency passes for view-space relative
// depth; it is zero for shaders that do not encode it.
type Vertex struct {
	Position Vector
	Normal   Vector
	Texture  Vector
	Color    Color
	Depth    float64
	Output   VectorW
}

func (v Vertex) Outside() bool {
	return v.Output.Outside()
}

// InterpolateVertexes blends three vertices with perspective-corrected
// barycentric weights. b.W holds the normalization term.
func InterpolateVertexes(v1, v2, v3 Vertex, b VectorW) Vertex {
	v := Vertex{}
	v.Position = interpolateVectors(v1.Position, v2.Position, v3.Position, b)
	v.Normal = interpolateVectors(v1.Normal, v2.Normal, v3.Normal, b).Normalize()
	v.Texture = interpolateVectors(v1.Texture, v2.Texture, v3.Texture, b)
	v.Color = interpolateColors(v1.Color, v2.Color, v3.Color, b)
	v.Depth = (v1.Depth*b.X + v2.Depth*b.Y + v3.Depth*b.Z) * b.W
	v.Output = interpolateVectorWs(v1.Output, v2.Output, v3.Output, b)
	return v
}

func interpolateVectors(v1, v2, v3 Vector, b VectorW) Vector {
	n := v1.MulScalar(b.X).Add(v2.MulScalar(b.Y)).Add(v3.MulScalar(b.Z))
	return n.MulScalar(b.W)
}

func interpolateColors(c1, c2, c3 Color, b VectorW) Color {
	n := c1.MulScalar(b.X).Add(c2.MulScalar(b.Y)).Add(c3.MulScalar(b.Z))
	return n.MulScalar(b.W)
}

func interpolateVectorWs(v1, v2, v3 VectorW, b VectorW) VectorW {
	n := v1.MulScalar(b.X).Add(v2.MulScalar(b.Y)).Add(v3.MulScalar(b.Z))
	return n.MulScalar(b.W)
}

// lerpVertexes interpolates linearly in clip space, used when clipping
// triangles against the frustum.
func lerpVertexes(v1, v2 Vertex, t float64) Vertex {
	v := Vertex{}
	v.Position = v1.Position.Lerp(v2.Position, t)
	v.Normal = v1.Normal.Lerp(v2.Normal, t).Normalize()
	v.Texture = v1.Texture.Lerp(v2.Texture, t)
	v.Color = v1.Color.Lerp(v2.Color, t)
	v.Depth = v1.Depth + (v2.Depth-v1.Depth)*t
	v.Output = v1.Output.Lerp(v2.Output, t)
	return v
}
