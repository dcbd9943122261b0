package veil

import "math"

// The blend stage mirrors the fixed-function blend unit of a GPU: a
// configurable equation and source/destination factors, applied separately
// to the color and alpha components of every written fragment.

type BlendEquation int

const (
	BlendAdd             BlendEquation = iota // src*sf + dst*df
	BlendSubtract                             // src*sf - dst*df
	BlendReverseSubtract                      // dst*df - src*sf
	BlendMax                                  // max(src, dst), factors ignored
)

type BlendFactor int

const (
	FactorZero BlendFactor = iota
	FactorOne
	FactorSrcAlpha
	FactorOneMinusSrcAlpha
	FactorDstAlpha
	FactorOneMinusDstAlpha
)

// BlendComponent is one equation with its factors, covering either the
// color channels or the alpha channel.
type BlendComponent struct {
	Operation BlendEquation
	SrcFactor BlendFactor
	DstFactor BlendFactor
}

// BlendState configures the whole blend stage. A nil *BlendState on the
// context means direct overwrite.
type BlendState struct {
	Color BlendComponent
	Alpha BlendComponent
}

// BlendAlpha is conventional straight alpha-over compositing.
var BlendAlpha = &BlendState{
	Color: BlendComponent{BlendAdd, FactorSrcAlpha, FactorOneMinusSrcAlpha},
	Alpha: BlendComponent{BlendAdd, FactorOne, FactorOneMinusSrcAlpha},
}

// BlendAdditive accumulates color on top of the destination.
var BlendAdditive = &BlendState{
	Color: BlendComponent{BlendAdd, FactorOne, FactorOne},
	Alpha: BlendComponent{BlendAdd, FactorOne, FactorZero},
}

func factorValue(f BlendFactor, srcAlpha, dstAlpha float64) float64 {
	switch f {
	case FactorZero:
		return 0
	case FactorOne:
		return 1
	case FactorSrcAlpha:
		return srcAlpha
	case FactorOneMinusSrcAlpha:
		return 1 - srcAlpha
	case FactorDstAlpha:
		return dstAlpha
	case FactorOneMinusDstAlpha:
		return 1 - dstAlpha
	}
	return 0
}

// Apply combines one source channel with one destination channel. The
// factors may reference the source and destination alpha values regardless
// of which channel is being blended.
func (c BlendComponent) Apply(src, dst, srcAlpha, dstAlpha float64) float64 {
	if c.Operation == BlendMax {
		return math.Max(src, dst)
	}
	s := src * factorValue(c.SrcFactor, srcAlpha, dstAlpha)
	d := dst * factorValue(c.DstFactor, srcAlpha, dstAlpha)
	switch c.Operation {
	case BlendSubtract:
		return s - d
	case BlendReverseSubtract:
		return d - s
	}
	return s + d
}

// Blend combines a fragment with the existing render target value.
func (b *BlendState) Blend(src, dst Color) Color {
	return Color{
		R: b.Color.Apply(src.R, dst.R, src.A, dst.A),
		G: b.Color.Apply(src.G, dst.G, src.A, dst.A),
		B: b.Color.Apply(src.B, dst.B, src.A, dst.A),
		A: b.Alpha.Apply(src.A, dst.A, src.A, dst.A),
	}
}

// ColorMask selects which channels of the render target a draw may write.
type ColorMask uint8

const (
	MaskR ColorMask = 1 << iota
	MaskG
	MaskB
	MaskA

	MaskNone ColorMask = 0
	MaskRGB  ColorMask = MaskR | MaskG | MaskB
	MaskRGBA ColorMask = MaskR | MaskG | MaskB | MaskA
)
