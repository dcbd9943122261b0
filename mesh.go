package veil

import (
	"math"

	"github.com/fogleman/simplify"
)

type Mesh struct {
	Triangles []*Triangle
	Lines     []*Line
}

func NewMesh(triangles []*Triangle, lines []*Line) *Mesh {
	return &Mesh{triangles, lines}
}

func NewTriangleMesh(triangles []*Triangle) *Mesh {
	return &Mesh{triangles, nil}
}

func NewLineMesh(lines []*Line) *Mesh {
	return &Mesh{nil, lines}
}

func (m *Mesh) Copy() *Mesh {
	triangles := make([]*Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		a := *t
		triangles[i] = &a
	}
	lines := make([]*Line, len(m.Lines))
	for i, l := range m.Lines {
		a := *l
		lines[i] = &a
	}
	return NewMesh(triangles, lines)
}

func (m *Mesh) BoundingBox() Box {
	if len(m.Triangles) == 0 && len(m.Lines) == 0 {
		return Box{}
	}
	min := Vector{math.Inf(1), math.Inf(1), math.Inf(1)}
	max := Vector{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, t := range m.Triangles {
		min = min.Min(t.V1.Position).Min(t.V2.Position).Min(t.V3.Position)
		max = max.Max(t.V1.Position).Max(t.V2.Position).Max(t.V3.Position)
	}
	for _, l := range m.Lines {
		min = min.Min(l.V1.Position).Min(l.V2.Position)
		max = max.Max(l.V1.Position).Max(l.V2.Position)
	}
	return Box{min, max}
}

func (m *Mesh) Transform(matrix Matrix) {
	for _, t := range m.Triangles {
		t.Transform(matrix)
	}
	for _, l := range m.Lines {
		l.Transform(matrix)
	}
}

func (m *Mesh) SetColor(c Color) {
	for _, t := range m.Triangles {
		t.SetColor(c)
	}
}

// SmoothNormals averages face normals across shared vertex positions.
func (m *Mesh) SmoothNormals() {
	lookup := make(map[Vector]Vector)
	for _, t := range m.Triangles {
		n := t.Normal()
		lookup[t.V1.Position] = lookup[t.V1.Position].Add(n)
		lookup[t.V2.Position] = lookup[t.V2.Position].Add(n)
		lookup[t.V3.Position] = lookup[t.V3.Position].Add(n)
	}
	for _, t := range m.Triangles {
		t.V1.Normal = lookup[t.V1.Position].Normalize()
		t.V2.Normal = lookup[t.V2.Position].Normalize()
		t.V3.Normal = lookup[t.V3.Position].Normalize()
	}
}

// Simplify reduces the triangle count to the given fraction of the
// original, dropping texture coordinates and vertex colors.
func (m *Mesh) Simplify(factor float64) {
	st := make([]*simplify.Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		v1 := simplify.Vector(t.V1.Position)
		v2 := simplify.Vector(t.V2.Position)
		v3 := simplify.Vector(t.V3.Position)
		st[i] = simplify.NewTriangle(v1, v2, v3)
	}
	sm := simplify.NewMesh(st).Simplify(factor)
	m.Triangles = make([]*Triangle, len(sm.Triangles))
	for i, t := range sm.Triangles {
		v1 := Vector(t.V1)
		v2 := Vector(t.V2)
		v3 := Vector(t.V3)
		m.Triangles[i] = NewTriangleForPoints(v1, v2, v3)
	}
}

// NewSphere builds a unit sphere from latitude/longitude bands with
// outward-facing counter-clockwise winding and exact vertex normals.
func NewSphere(latStep, lngStep int) *Mesh {
	var triangles []*Triangle
	point := func(lat, lng int) Vertex {
		theta := math.Pi * float64(lat) / float64(latStep)
		phi := 2 * math.Pi * float64(lng) / float64(lngStep)
		p := Vector{
			math.Sin(theta) * math.Cos(phi),
			math.Cos(theta),
			math.Sin(theta) * math.Sin(phi),
		}
		return Vertex{
			Position: p,
			Normal:   p,
			Texture:  Vector{float64(lng) / float64(lngStep), 1 - float64(lat)/float64(latStep), 0},
		}
	}
	for lat := 0; lat < latStep; lat++ {
		for lng := 0; lng < lngStep; lng++ {
			v00 := point(lat, lng)
			v10 := point(lat+1, lng)
			v01 := point(lat, lng+1)
			v11 := point(lat+1, lng+1)
			if lat != 0 {
				triangles = append(triangles, NewTriangle(v00, v11, v10))
			}
			if lat != latStep-1 {
				triangles = append(triangles, NewTriangle(v00, v01, v11))
			}
		}
	}
	return NewTriangleMesh(triangles)
}

// NewCube builds a cube spanning [-1, 1] with outward-facing winding.
func NewCube() *Mesh {
	points := [][3]Vector{
		{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}},
		{{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
		{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}},
		{{1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
		{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}},
		{{1, -1, 1}, {1, 1, -1}, {1, 1, 1}},
		{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}},
		{{-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1}},
		{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}},
		{{-1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
		{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}},
		{{-1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	}
	triangles := make([]*Triangle, len(points))
	for i, p := range points {
		triangles[i] = NewTriangleForPoints(p[0], p[1], p[2])
	}
	return NewTriangleMesh(triangles)
}
