package veil

// Clipping runs in homogeneous clip space against the six frustum planes,
// Sutherland-Hodgman style. Each plane is expressed as a signed distance
// that is non-negative inside the volume.

type clipPlane func(VectorW) float64

var clipPlanes = []clipPlane{
	func(v VectorW) float64 { return v.W + v.X },
	func(v VectorW) float64 { return v.W - v.X },
	func(v VectorW) float64 { return v.W + v.Y },
	func(v VectorW) float64 { return v.W - v.Y },
	func(v VectorW) float64 { return v.W + v.Z },
	func(v VectorW) float64 { return v.W - v.Z },
}

func clipPolygon(vertexes []Vertex, plane clipPlane) []Vertex {
	var out []Vertex
	for i := range vertexes {
		a := vertexes[i]
		b := vertexes[(i+1)%len(vertexes)]
		da := plane(a.Output)
		db := plane(b.Output)
		if da >= 0 {
			out = append(out, a)
		}
		if (da >= 0) != (db >= 0) {
			t := da / (da - db)
			out = append(out, lerpVertexes(a, b, t))
		}
	}
	return out
}

// ClipTriangle clips a triangle against the view frustum, returning zero
// or more triangles fanned from the clipped polygon.
func ClipTriangle(t *Triangle) []*Triangle {
	vertexes := []Vertex{t.V1, t.V2, t.V3}
	for _, plane := range clipPlanes {
		vertexes = clipPolygon(vertexes, plane)
		if len(vertexes) == 0 {
			return nil
		}
	}
	result := make([]*Triangle, 0, len(vertexes)-2)
	for i := 1; i < len(vertexes)-1; i++ {
		result = append(result, NewTriangle(vertexes[0], vertexes[i], vertexes[i+1]))
	}
	return result
}

// ClipLine clips a line segment against the view frustum. Returns nil when
// the segment lies entirely outside.
func ClipLine(l *Line) *Line {
	v1, v2 := l.V1, l.V2
	for _, plane := range clipPlanes {
		d1 := plane(v1.Output)
		d2 := plane(v2.Output)
		if d1 < 0 && d2 < 0 {
			return nil
		}
		if d1 < 0 {
			v1 = lerpVertexes(v1, v2, d1/(d1-d2))
		} else if d2 < 0 {
			v2 = lerpVertexes(v1, v2, d1/(d1-d2))
		}
	}
	return NewLine(v1, v2)
}
