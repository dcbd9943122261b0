package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/netisu/veil"
)

func main() {
	meshPath := flag.String("mesh", "", "Path to .obj, .gltf or .glb mesh (default: built-in sphere)")
	out := flag.String("out", "out.png", "Output file, .png or .webp")
	size := flag.Int("size", 512, "Output image size in pixels")
	scale := flag.Int("scale", 2, "Supersampling factor")
	eye := flag.String("eye", "0,0,3.5", "Camera position x,y,z")
	fovy := flag.Float64("fovy", 40, "Vertical field of view in degrees")
	fit := flag.Bool("fit", false, "Fit objects into the view before rendering")

	attenuation := flag.Float64("attenuation", 2, "Thickness attenuation factor (0 disables translucency)")
	base := flag.String("base", "e8d6c0", "Base tint as hex color")
	tint := flag.String("tint", "ff8c72", "Translucent tint as hex color")
	smoothness := flag.Float64("smoothness", 0.5, "Surface smoothness [0,1]")
	metallic := flag.Float64("metallic", 0, "Metallic factor [0,1]")
	texture := flag.String("texture", "", "Albedo texture (png, jpeg or tga)")
	simplifyTo := flag.Float64("simplify", 0, "Simplify mesh to this fraction of triangles (0 = off)")
	fallback := flag.Bool("fallback", false, "Force the plain diffuse fallback path")
	verbose := flag.Bool("v", false, "Enable logging to stderr")

	flag.Parse()

	if *verbose {
		veil.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	mesh, err := loadMesh(*meshPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading mesh: %v\n", err)
		os.Exit(1)
	}
	if *simplifyTo > 0 && *simplifyTo < 1 {
		mesh.Simplify(*simplifyTo)
	}

	material := veil.DefaultMaterial()
	material.BaseColor = veil.HexColor(*base)
	material.TranslucentTint = veil.HexColor(*tint)
	material.Smoothness = *smoothness
	material.Metallic = *metallic
	material.Attenuation = *attenuation
	if *texture != "" {
		tex, err := veil.LoadTexture(*texture)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading texture: %v\n", err)
			os.Exit(1)
		}
		material.Albedo = tex
	}

	object := veil.NewObjectFromMesh(mesh)
	object.Material = &material

	eyeVec, err := parseVector(*eye)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -eye: %v\n", err)
		os.Exit(1)
	}
	center := veil.Vector{}
	up := veil.Vector{Y: 1}

	scene := veil.NewScene(eyeVec, center, up, *fovy, *size, *scale, nil)
	scene.AddObject(object)
	if *fallback {
		// An 8-bit alpha target cannot hold the accumulator; the renderer
		// must take the diffuse-only path.
		scene.Context.Framebuffer.AlphaBits = 8
	}

	if err := scene.Draw(*fit, *out); err != nil {
		fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		os.Exit(1)
	}
}

func loadMesh(path string) (*veil.Mesh, error) {
	if path == "" {
		return veil.NewSphere(64, 128), nil
	}
	return veil.LoadMesh(path)
}

func parseVector(s string) (veil.Vector, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return veil.Vector{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return veil.Vector{}, fmt.Errorf("component %d of %q: %w", i, s, err)
		}
		v[i] = f
	}
	return veil.Vector{X: v[0], Y: v[1], Z: v[2]}, nil
}
