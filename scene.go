package veil

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"
	"os"
)

// Scene stores a camera, a render context and the objects to draw.
// Rendering happens at size*scale and is downsampled to size on output.
type Scene struct {
	Context *Context
	Objects []*Object
	Shader  Shader
	Light   Vector

	eye, center, up Vector
	fovy, aspect    float64
	near, far       float64
	size, scale     int
}

// NewScene returns a scene rendering size x size pixels, supersampled by
// the given scale factor.
func NewScene(eye, center, up Vector, fovy float64, size, scale int, shader Shader) *Scene {
	if scale < 1 {
		scale = 1
	}
	context := NewContext(size*scale, size*scale, shader)
	return &Scene{
		Context: context,
		Shader:  shader,
		Light:   Vector{-0.5, 1, 0.75}.Normalize(),
		eye:     eye,
		center:  center,
		up:      up,
		fovy:    fovy,
		aspect:  1,
		near:    1,
		far:     999,
		size:    size,
		scale:   scale,
	}
}

func (s *Scene) AddObject(o *Object) {
	s.Objects = append(s.Objects, o)
}

func (s *Scene) AddObjects(objects []*Object) {
	for _, o := range objects {
		s.AddObject(o)
	}
}

// FitObjectsToScene widens the field of view until every object's bounding
// box is inside the frustum, with a 5% margin.
func (s *Scene) FitObjectsToScene(eye, center, up Vector, aspect, near, far float64) Matrix {
	var boxes []Box
	for _, o := range s.Objects {
		if o.Mesh != nil {
			boxes = append(boxes, o.Mesh.BoundingBox())
		}
	}

	viewMatrix := LookAt(eye, center, up)
	if len(boxes) == 0 {
		return viewMatrix.Perspective(60, aspect, near, far)
	}
	sceneBox := BoxForBoxes(boxes)

	var maxAngleX, maxAngleY float64
	for _, corner := range sceneBox.Corners() {
		p := viewMatrix.MulPosition(corner)

		// The camera looks down -Z in view space; absZ is the depth of the
		// corner from the camera plane.
		absZ := math.Abs(p.Z)
		if absZ < 1e-6 {
			continue
		}

		if a := math.Atan(math.Abs(p.X) / absZ); a > maxAngleX {
			maxAngleX = a
		}
		if a := math.Atan(math.Abs(p.Y) / absZ); a > maxAngleY {
			maxAngleY = a
		}
	}

	fovyFromY := 2 * maxAngleY
	fovyFromX := 2 * math.Atan(math.Tan(maxAngleX)/aspect)
	finalFovy := Degrees(math.Max(fovyFromX, fovyFromY)) * 1.05

	return viewMatrix.Perspective(finalFovy, aspect, near, far)
}

// render draws every object. Objects carrying a Material go through the
// five-pass translucency pipeline; the rest use the scene shader.
func (s *Scene) render(fit bool) {
	view := LookAt(s.eye, s.center, s.up)
	projection := Perspective(s.fovy, s.aspect, s.near, s.far)
	if fit {
		full := s.FitObjectsToScene(s.eye, s.center, s.up, s.aspect, s.near, s.far)
		s.applyShaderMatrix(full)
		// The fitted matrix already contains the view transform.
		projection = full.Mul(view.Inverse())
	} else {
		s.applyShaderMatrix(projection.Mul(view))
	}

	s.Context.ClearColorBuffer()
	s.Context.ClearDepthBuffer()

	pipeline := NewTranslucencyPipeline(view, projection, s.Light, s.eye)
	for _, o := range s.Objects {
		if o.Mesh == nil {
			Logger().Warn("object attempted to render with nil mesh")
			continue
		}
		if o.Material != nil {
			pipeline.Draw(s.Context, o)
		} else {
			s.Context.DrawObject(o)
		}
	}
}

func (s *Scene) applyShaderMatrix(m Matrix) {
	switch sh := s.Shader.(type) {
	case *PhongShader:
		sh.Matrix = m
	case *ToonShader:
		sh.Matrix = m
	case *SolidColorShader:
		sh.Matrix = m
	}
}

// Image renders the scene and returns the downsampled result.
func (s *Scene) Image(fit bool) image.Image {
	s.render(fit)
	img := s.Context.Framebuffer.Image()
	return downsample(img, s.size, s.size)
}

// Draw renders the scene to a PNG or WebP file, chosen by extension.
func (s *Scene) Draw(fit bool, path string) error {
	im := s.Image(fit)
	if err := SaveImage(path, im); err != nil {
		return fmt.Errorf("veil: draw scene: %w", err)
	}
	Logger().Info("scene rendered", "path", path, "objects", len(s.Objects))
	return nil
}

// DrawToWriter renders the scene and encodes it as PNG to the writer.
func (s *Scene) DrawToWriter(fit bool, w io.Writer) error {
	im := s.Image(fit)
	if err := png.Encode(w, im); err != nil {
		return fmt.Errorf("veil: encode scene: %w", err)
	}
	return nil
}

// GenerateScene renders objects with Phong shading to a file in one call.
func GenerateScene(fit bool, path string, objects []*Object, eye, center, up Vector, fovy float64, size, scale int, light Vector, ambient, diffuse string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("veil: create %s: %w", path, err)
	}
	defer file.Close()
	return GenerateSceneToWriter(file, objects, eye, center, up, fovy, size, scale, light, ambient, diffuse, fit)
}

func GenerateSceneToWriter(w io.Writer, objects []*Object, eye, center, up Vector, fovy float64, size, scale int, light Vector, ambient, diffuse string, fit bool) error {
	aspect := 1.0
	matrix := LookAt(eye, center, up).Perspective(fovy, aspect, 1, 999)
	shader := NewPhongShader(matrix, light, eye, HexColor(ambient), HexColor(diffuse))
	scene := NewScene(eye, center, up, fovy, size, scale, shader)
	scene.Light = light
	scene.AddObjects(objects)
	return scene.DrawToWriter(fit, w)
}

// GenerateSceneWithShader renders objects with the provided shader.
func GenerateSceneWithShader(fit bool, shader Shader, path string, objects []*Object, eye, center, up Vector, fovy float64, size, scale int) error {
	scene := NewScene(eye, center, up, fovy, size, scale, shader)
	scene.AddObjects(objects)
	return scene.Draw(fit, path)
}
