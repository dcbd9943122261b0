package veil

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/jpeg" // register decoders for image.Decode
	_ "image/png"

	_ "github.com/ftrvxmtrx/tga"
	"github.com/nfnt/resize"
)

// Textures larger than this are shrunk on load; sampling never needs more.
const maxTextureSize = 4096

type Texture interface {
	Sample(u, v float64) Color
	BilinearSample(u, v float64) Color
}

type ImageTexture struct {
	Width  int
	Height int
	Image  image.Image
}

func NewImageTexture(im image.Image) Texture {
	b := im.Bounds()
	if b.Dx() > maxTextureSize || b.Dy() > maxTextureSize {
		im = resize.Thumbnail(maxTextureSize, maxTextureSize, im, resize.Bilinear)
		b = im.Bounds()
	}
	return &ImageTexture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Image:  im,
	}
}

func LoadTexture(path string) (Texture, error) {
	im, err := LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("veil: load texture: %w", err)
	}
	return NewImageTexture(im), nil
}

func LoadTextureFromURL(url string) (Texture, error) {
	client := http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("veil: fetch texture %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("veil: fetch texture %s: status %s", url, resp.Status)
	}

	im, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("veil: decode texture %s: %w", url, err)
	}
	return NewImageTexture(im), nil
}

func TexFromBytes(data []byte) (Texture, error) {
	im, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("veil: decode texture: %w", err)
	}
	return NewImageTexture(im), nil
}

func (t *ImageTexture) Sample(u, v float64) Color {
	u = u - float64(int(u))
	if u < 0 {
		u++
	}
	v = v - float64(int(v))
	if v < 0 {
		v++
	}
	// Flip V for standard UV coords
	v = 1 - v

	x := ClampInt(int(u*float64(t.Width)), 0, t.Width-1)
	y := ClampInt(int(v*float64(t.Height)), 0, t.Height-1)
	return MakeColor(t.Image.At(x, y))
}

func (t *ImageTexture) BilinearSample(u, v float64) Color {
	u = u - float64(int(u))
	if u < 0 {
		u++
	}
	v = v - float64(int(v))
	if v < 0 {
		v++
	}
	v = 1 - v

	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5
	x0 := ClampInt(int(fx), 0, t.Width-1)
	y0 := ClampInt(int(fy), 0, t.Height-1)
	x1 := ClampInt(x0+1, 0, t.Width-1)
	y1 := ClampInt(y0+1, 0, t.Height-1)
	tx := Clamp(fx-float64(x0), 0, 1)
	ty := Clamp(fy-float64(y0), 0, 1)

	c00 := MakeColor(t.Image.At(x0, y0))
	c10 := MakeColor(t.Image.At(x1, y0))
	c01 := MakeColor(t.Image.At(x0, y1))
	c11 := MakeColor(t.Image.At(x1, y1))
	top := c00.Lerp(c10, tx)
	bottom := c01.Lerp(c11, tx)
	return top.Lerp(bottom, ty)
}
