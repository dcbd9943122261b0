package veil

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
)

// Object is a mesh instance with its transform and surface parameters.
// Objects with a Material render through the translucency pipeline;
// others take the plain shader path.
type Object struct {
	Mesh     *Mesh
	Texture  Texture
	Color    Color
	Matrix   Matrix
	Material *Material
}

func NewEmptyObject() *Object {
	return &Object{Matrix: Identity(), Color: White}
}

func NewObject(triangles []*Triangle, lines []*Line) *Object {
	return &Object{Mesh: NewMesh(triangles, lines), Matrix: Identity(), Color: White}
}

func NewObjectFromMesh(mesh *Mesh) *Object {
	return &Object{Mesh: mesh, Matrix: Identity(), Color: White}
}

// NewObjectFromFile loads a mesh by extension: .obj, .gltf or .glb.
func NewObjectFromFile(path string) (*Object, error) {
	mesh, err := LoadMesh(path)
	if err != nil {
		return nil, err
	}
	o := NewObjectFromMesh(mesh)
	o.Color = HexColor("777")
	return o, nil
}

// LoadMesh dispatches on the file extension.
func LoadMesh(path string) (*Mesh, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("veil: unsupported mesh format: %s", path)
	}
}

// LoadMeshFromURL fetches and parses an OBJ mesh over HTTP.
func LoadMeshFromURL(url string) (*Mesh, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("veil: fetch mesh %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("veil: fetch mesh %s: status %s", url, resp.Status)
	}
	return LoadOBJFromReader(resp.Body)
}

// SetColor sets the color of every triangle in the mesh.
func (o *Object) SetColor(c Color) {
	o.Color = c
	if o.Mesh != nil {
		o.Mesh.SetColor(c)
	}
}

// material returns the object's material or the package default.
func (o *Object) material() Material {
	if o.Material != nil {
		return *o.Material
	}
	return DefaultMaterial()
}
