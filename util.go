package veil

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func Degrees(radians float64) float64 {
	return radians * 180 / math.Pi
}

func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func ClampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("veil: open image %s: %w", path, err)
	}
	defer file.Close()
	im, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("veil: decode image %s: %w", path, err)
	}
	return im, nil
}

func SavePNG(path string, im image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("veil: create %s: %w", path, err)
	}
	defer file.Close()
	if err := png.Encode(file, im); err != nil {
		return fmt.Errorf("veil: encode png %s: %w", path, err)
	}
	return nil
}

func SaveWebP(path string, im image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("veil: create %s: %w", path, err)
	}
	defer file.Close()
	if err := nativewebp.Encode(file, im, nil); err != nil {
		return fmt.Errorf("veil: encode webp %s: %w", path, err)
	}
	return nil
}

// SaveImage picks the encoder from the file extension (.png or .webp).
func SaveImage(path string, im image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return SaveWebP(path, im)
	default:
		return SavePNG(path, im)
	}
}

// downsample shrinks a supersampled render to the target size. Scaling runs
// on premultiplied alpha to avoid dark halos at transparent edges.
func downsample(img *image.NRGBA, width, height int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= width && b.Dy() <= height {
		return img
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	draw.Draw(result, dst.Bounds(), dst, image.Point{}, draw.Src)
	return result
}
