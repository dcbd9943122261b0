package veil

// TranslucencyPipeline approximates subsurface scattering for opaque
// geometry without reading back a depth buffer and without precomputed
// thickness maps. It draws the same mesh five times into one shared
// color+alpha target, repurposing the high-precision alpha channel as a
// scratch accumulator:
//
//	pass 1  back faces,  no blend        alpha := backface relative depth
//	pass 2  front faces, alpha subtract  alpha := front − back = thickness
//	pass 3  front faces, color darken    color *= 1 − thickness
//	pass 4  front faces, max-with-zero   color := max(color, 0)
//	pass 5  front faces, additive        color += material shading, alpha := material alpha
//
// The passes must run in exactly this order: each one's blend stage reads
// the accumulator state left by the previous one. Between passes 2 and 4
// the alpha value is a thickness measure, not an opacity; pass 5 replaces
// it with real alpha so later compositing sees an ordinary render.
//
// Pass 3 can drive color channels negative where thickness exceeds one
// unit; that excursion is deliberate and pass 4 corrects it.

// Material holds the per-object configuration consumed by the passes.
// All fields are read-only for the duration of one draw.
type Material struct {
	BaseColor       Color
	TranslucentTint Color
	Albedo          Texture
	Smoothness      float64 // [0, 1]
	Metallic        float64 // [0, 1]

	// Attenuation scales how strongly view-space depth differences are
	// exaggerated into visible darkening. Zero or negative disables the
	// effect entirely.
	Attenuation float64
}

func DefaultMaterial() Material {
	return Material{
		BaseColor:       White,
		TranslucentTint: Color{1, 0.55, 0.45, 1},
		Smoothness:      0.5,
		Metallic:        0,
		Attenuation:     2,
	}
}

// albedoTexture prefers the material's own texture, falling back to the
// object's.
func (m Material) albedoTexture(o *Object) Texture {
	if m.Albedo != nil {
		return m.Albedo
	}
	if o != nil {
		return o.Texture
	}
	return nil
}

// Pass is one draw of the protocol: a shader plus the fixed-function state
// it must run under.
type Pass struct {
	Name       string
	Cull       Cull
	Blend      *BlendState
	ColorMask  ColorMask
	WriteDepth bool
	Shader     Shader
}

// TranslucencyPipeline issues the five passes for one object. View and
// Projection are the camera transforms; LightDirection points toward the
// light in world space.
type TranslucencyPipeline struct {
	View           Matrix
	Projection     Matrix
	LightDirection Vector
	CameraPosition Vector

	// Capture, when set, is invoked with the framebuffer after each pass.
	// It exists so intermediate accumulator states can be observed; the
	// fixed-function protocol itself has no way to express diagnostics.
	Capture func(pass string, fb *Framebuffer)
}

func NewTranslucencyPipeline(view, projection Matrix, lightDirection, cameraPosition Vector) *TranslucencyPipeline {
	return &TranslucencyPipeline{
		View:           view,
		Projection:     projection,
		LightDirection: lightDirection.Normalize(),
		CameraPosition: cameraPosition,
	}
}

// Passes builds the ordered pass list for an object. The slice order is the
// execution contract; running the passes any other way breaks the
// accumulator arithmetic.
func (p *TranslucencyPipeline) Passes(o *Object) []Pass {
	m := o.material()
	model := o.Matrix
	modelView := p.View.Mul(model)
	mvp := p.Projection.Mul(modelView)
	normalMatrix := model.Inverse().Transpose()
	enc := depthEncoder{MVP: mvp, ModelView: modelView, Attenuation: m.Attenuation}

	return []Pass{
		{
			Name:       "backdepth",
			Cull:       CullFront,
			Blend:      nil, // direct overwrite
			ColorMask:  MaskRGBA,
			WriteDepth: true,
			Shader: &backDepthShader{
				depthEncoder:   enc,
				NormalMatrix:   normalMatrix,
				LightDirection: p.LightDirection,
				Tint:           m.TranslucentTint,
			},
		},
		{
			Name: "subtract",
			Cull: CullBack,
			Blend: &BlendState{
				// Destination color is left untouched; alpha becomes
				// frontDepth − backDepth.
				Color: BlendComponent{BlendAdd, FactorZero, FactorOne},
				Alpha: BlendComponent{BlendSubtract, FactorOne, FactorOne},
			},
			ColorMask:  MaskRGBA,
			WriteDepth: true,
			Shader:     &frontDepthShader{enc},
		},
		{
			Name: "darken",
			Cull: CullBack,
			Blend: &BlendState{
				// color := dst × (1 − thickness); alpha keeps the
				// thickness readable for inspection until pass 5.
				Color: BlendComponent{BlendAdd, FactorZero, FactorOneMinusDstAlpha},
				Alpha: BlendComponent{BlendAdd, FactorZero, FactorOne},
			},
			ColorMask:  MaskRGBA,
			WriteDepth: false,
			Shader:     &flatShader{MVP: mvp, Color: Color{0, 0, 0, 1}},
		},
		{
			Name: "clamp",
			Cull: CullBack,
			Blend: &BlendState{
				Color: BlendComponent{BlendMax, FactorOne, FactorOne},
				Alpha: BlendComponent{BlendAdd, FactorZero, FactorOne},
			},
			ColorMask:  MaskRGB,
			WriteDepth: false,
			Shader:     &flatShader{MVP: mvp, Color: Color{0, 0, 0, 0}},
		},
		{
			Name:       "composite",
			Cull:       CullBack,
			Blend:      BlendAdditive,
			ColorMask:  MaskRGBA,
			WriteDepth: true,
			Shader: &compositeShader{
				MVP:            mvp,
				Model:          model,
				NormalMatrix:   normalMatrix,
				LightDirection: p.LightDirection,
				CameraPosition: p.CameraPosition,
				Material:       m,
			},
		},
	}
}

// Draw renders one object with the full protocol. When the target cannot
// hold a high-precision alpha accumulator the plain diffuse fallback runs
// instead, and when attenuation is zero the effect reduces to the final
// composite alone.
func (p *TranslucencyPipeline) Draw(dc *Context, o *Object) {
	if !dc.Framebuffer.HDRAlpha() {
		Logger().Warn("translucency needs >=16-bit alpha, using diffuse fallback",
			"alphaBits", dc.Framebuffer.AlphaBits)
		p.DrawFallback(dc, o)
		return
	}
	passes := p.Passes(o)
	if o.material().Attenuation <= 0 {
		passes = passes[len(passes)-1:]
	}
	for _, pass := range passes {
		p.DrawPass(dc, pass, o)
	}
}

// DrawPass runs a single pass, restoring the context state afterwards.
// Callers sequencing passes by hand are responsible for the order contract.
func (p *TranslucencyPipeline) DrawPass(dc *Context, pass Pass, o *Object) {
	prevShader := dc.Shader
	prevCull := dc.Cull
	prevBlend := dc.Blend
	prevMask := dc.ColorMask
	prevWriteDepth := dc.WriteDepth

	dc.Shader = pass.Shader
	dc.Cull = pass.Cull
	dc.Blend = pass.Blend
	dc.ColorMask = pass.ColorMask
	dc.WriteDepth = pass.WriteDepth
	dc.DrawMesh(o.Mesh, o)

	dc.Shader = prevShader
	dc.Cull = prevCull
	dc.Blend = prevBlend
	dc.ColorMask = prevMask
	dc.WriteDepth = prevWriteDepth

	if p.Capture != nil {
		p.Capture(pass.Name, dc.Framebuffer)
	}
}

// DrawFallback renders the object with diffuse-only shading and no
// contribution from the depth passes.
func (p *TranslucencyPipeline) DrawFallback(dc *Context, o *Object) {
	m := o.material()
	model := o.Matrix
	mvp := p.Projection.Mul(p.View).Mul(model)
	pass := Pass{
		Name:       "fallback",
		Cull:       CullBack,
		Blend:      nil,
		ColorMask:  MaskRGBA,
		WriteDepth: true,
		Shader: &fallbackShader{
			MVP:            mvp,
			NormalMatrix:   model.Inverse().Transpose(),
			LightDirection: p.LightDirection,
			Material:       m,
		},
	}
	p.DrawPass(dc, pass, o)
}
