package veil

import (
	"image"
	"math"
)

// Framebuffer is a floating-point color+alpha render target with a depth
// plane. Channels are stored as float64 so the alpha accumulator used by the
// translucency passes keeps far more than the 16 bits of precision the
// technique needs, including signed intermediates.
type Framebuffer struct {
	Width  int
	Height int

	// AlphaBits models the precision of the attachment the buffer stands in
	// for. Renderers probing for HDR support check HDRAlpha before running
	// precision-sensitive passes.
	AlphaBits int

	Color []float64 // RGBA interleaved, len = Width*Height*4
	Depth []float64 // per pixel, cleared to +Inf-like max
}

func NewFramebuffer(width, height int) *Framebuffer {
	f := &Framebuffer{
		Width:     width,
		Height:    height,
		AlphaBits: 16,
		Color:     make([]float64, width*height*4),
		Depth:     make([]float64, width*height),
	}
	f.ClearDepth()
	return f
}

// HDRAlpha reports whether the alpha channel carries enough precision for
// depth accumulation.
func (f *Framebuffer) HDRAlpha() bool {
	return f.AlphaBits >= 16
}

func (f *Framebuffer) ClearColor(c Color) {
	for i := 0; i < len(f.Color); i += 4 {
		f.Color[i+0] = c.R
		f.Color[i+1] = c.G
		f.Color[i+2] = c.B
		f.Color[i+3] = c.A
	}
}

func (f *Framebuffer) ClearDepth() {
	for i := range f.Depth {
		f.Depth[i] = math.MaxFloat64
	}
}

func (f *Framebuffer) At(x, y int) Color {
	i := (y*f.Width + x) * 4
	return Color{f.Color[i], f.Color[i+1], f.Color[i+2], f.Color[i+3]}
}

func (f *Framebuffer) Set(x, y int, c Color) {
	i := (y*f.Width + x) * 4
	f.Color[i+0] = c.R
	f.Color[i+1] = c.G
	f.Color[i+2] = c.B
	f.Color[i+3] = c.A
}

// AlphaAt reads the raw accumulator value, which may be negative or above
// one between passes.
func (f *Framebuffer) AlphaAt(x, y int) float64 {
	return f.Color[(y*f.Width+x)*4+3]
}

// AlphaPlane copies the alpha channel out as a flat slice, one value per
// pixel. Useful for inspecting intermediate pass state.
func (f *Framebuffer) AlphaPlane() []float64 {
	out := make([]float64, f.Width*f.Height)
	for i := range out {
		out[i] = f.Color[i*4+3]
	}
	return out
}

// Image converts the buffer to 8-bit NRGBA, clamping every channel to [0, 1].
func (f *Framebuffer) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		j := i * 4
		im.Pix[j+0] = uint8(Clamp(f.Color[j+0], 0, 1)*255 + 0.5)
		im.Pix[j+1] = uint8(Clamp(f.Color[j+1], 0, 1)*255 + 0.5)
		im.Pix[j+2] = uint8(Clamp(f.Color[j+2], 0, 1)*255 + 0.5)
		im.Pix[j+3] = uint8(Clamp(f.Color[j+3], 0, 1)*255 + 0.5)
	}
	return im
}
