package gooey

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/gooey/sdf"
)

// glassShaderSrc is the GPU twin of sdf.Shade. The constants and the order of
// operations match the CPU path so both renderers agree.
//
// Ebitengine uses premultiplied alpha; the shader computes straight color and
// premultiplies on output.
const glassShaderSrc = `//kage:unit pixels
package main

var Resolution vec2
var Time float
var Blobs [4]vec4
var ViewCenter vec2
var ViewScale float
var Blend float
var IOR float
var Tint vec3
var Refraction float
var Aberration float
var Edge float
var EdgeFrequency float
var Specular vec4
var Rim float
var Alpha vec3
var UseBackground float

func smin(a, b, k float) float {
	if k <= 0 {
		return min(a, b)
	}
	h := max(k-abs(a-b), 0) / k
	return min(a, b) - h*h*k*0.25
}

func field(p vec3) float {
	d := 10.0
	for i := 0; i < 4; i++ {
		b := Blobs[i]
		if b.w >= 0.001 {
			d = smin(d, length(p-b.xyz)-b.w, Blend)
		}
	}
	return d
}

func fieldNormal(p vec3) vec3 {
	e := 0.001
	n := vec3(
		field(p+vec3(e, 0, 0))-field(p-vec3(e, 0, 0)),
		field(p+vec3(0, e, 0))-field(p-vec3(0, e, 0)),
		field(p+vec3(0, 0, e))-field(p-vec3(0, 0, e)),
	)
	if length(n) == 0 {
		return vec3(0, 0, 1)
	}
	return normalize(n)
}

// march returns the last sample position in xyz and 1 in w on a hit.
func march(ro, rd vec3) vec4 {
	t := 0.0
	p := ro
	for i := 0; i < 48; i++ {
		d := field(p)
		if d < 0.001 {
			return vec4(p, 1)
		}
		if t > 10 {
			break
		}
		t += d
		p = ro + rd*t
	}
	return vec4(p, 0)
}

func backdrop(uv vec2) vec3 {
	size := imageSrc0Size()
	pos := vec2(uv.x, 1-uv.y) * size
	pos = clamp(pos, vec2(0.5), size-vec2(0.5))
	c := imageSrc0At(imageSrc0Origin() + pos)
	if c.a > 0 {
		c.rgb /= c.a
	}
	return c.rgb
}

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	pos := dst.xy - imageDstOrigin()
	frag := vec2(pos.x, Resolution.y-pos.y)
	uv := (frag - Resolution*0.5) / min(Resolution.x, Resolution.y)
	world := ViewCenter + uv*ViewScale

	rd := vec3(0, 0, -1)
	hit := march(vec3(world, 2), rd)
	if hit.w == 0 {
		return vec4(0)
	}
	n := fieldNormal(hit.xyz)

	ndv := abs(dot(n, -rd))
	facing := 1 - ndv
	fresnel := facing * facing * facing
	refr := refract(rd, n, 1/IOR)
	refl := reflect(rd, n)

	c := Tint
	if UseBackground > 0 {
		suv := frag / Resolution
		off := refr.xy * Refraction
		ab := Aberration * (1 + fresnel)
		c.r = backdrop(suv + off*(1+ab)).r
		c.g = backdrop(suv + off).g
		c.b = backdrop(suv + off*(1-ab)).b
	}

	edge := pow(facing, 5)
	phase := edge * EdgeFrequency
	band := Edge * edge
	c += (vec3(0.5) + 0.5*sin(vec3(phase, phase+2.09, phase+4.18))) * band

	spec := Specular.x*pow(max(0, dot(refl, normalize(vec3(1, 1, 1)))), Specular.y) +
		Specular.z*pow(max(0, dot(refl, normalize(vec3(-0.5, 0.8, 0.5)))), Specular.w)
	c += vec3(spec + fresnel*Rim)

	a := clamp(Alpha.x+fresnel*Alpha.y+fresnel*Alpha.z, 0, 1)
	return vec4(clamp(c, vec3(0), vec3(1))*a, a)
}
`

// glassShader is compiled lazily on first use. Effects run on the ebiten
// goroutine, so no locking is needed.
var glassShader *ebiten.Shader

func ensureGlassShader() *ebiten.Shader {
	if glassShader == nil {
		s, err := ebiten.NewShader([]byte(glassShaderSrc))
		if err != nil {
			panic("gooey: failed to compile glass shader: " + err.Error())
		}
		glassShader = s
	}
	return glassShader
}

// GlassShader renders the blob field into an image with the Kage shader.
// The uniform buffers are persistent so a frame does not allocate.
type GlassShader struct {
	uniforms map[string]any
	blobs    [sdf.MaxSpheres * 4]float32
	tint     [3]float32
	center   [2]float32
	res      [2]float32
	specular [4]float32
	alpha    [3]float32
	shaderOp ebiten.DrawRectShaderOptions
}

// NewGlassShader creates a shader wrapper. The Kage program itself is compiled
// on the first Apply.
func NewGlassShader() *GlassShader {
	g := &GlassShader{uniforms: make(map[string]any, 17)}
	g.uniforms["Blobs"] = g.blobs[:]
	g.uniforms["Tint"] = g.tint[:]
	g.uniforms["ViewCenter"] = g.center[:]
	g.uniforms["Resolution"] = g.res[:]
	g.uniforms["Specular"] = g.specular[:]
	g.uniforms["Alpha"] = g.alpha[:]
	return g
}

// SetUniforms copies a frame snapshot and material into the uniform map.
func (g *GlassShader) SetUniforms(u sdf.Uniforms, m sdf.Material) {
	for i, s := range u.Spheres {
		g.blobs[i*4+0] = float32(s.Center.X)
		g.blobs[i*4+1] = float32(s.Center.Y)
		g.blobs[i*4+2] = float32(s.Center.Z)
		g.blobs[i*4+3] = float32(s.Radius)
	}
	g.res = [2]float32{float32(u.Resolution.X), float32(u.Resolution.Y)}
	g.center = [2]float32{float32(u.View.Center.X), float32(u.View.Center.Y)}
	scale := u.View.Scale
	if scale == 0 {
		scale = 1
	}
	ior := m.IOR
	if ior == 0 {
		ior = 1
	}
	g.tint = [3]float32{float32(m.Tint.R), float32(m.Tint.G), float32(m.Tint.B)}
	g.specular = [4]float32{
		float32(m.SpecularPrimary), float32(m.ShininessPrimary),
		float32(m.SpecularSecondary), float32(m.ShininessSecondary),
	}
	g.alpha = [3]float32{float32(m.BaseAlpha), float32(m.FresnelAlpha), float32(m.RimAlpha)}

	g.uniforms["Time"] = float32(u.Time)
	g.uniforms["ViewScale"] = float32(scale)
	g.uniforms["Blend"] = float32(u.Blend)
	g.uniforms["IOR"] = float32(ior)
	g.uniforms["Refraction"] = float32(m.Refraction)
	g.uniforms["Aberration"] = float32(m.Aberration)
	g.uniforms["Edge"] = float32(m.Edge)
	g.uniforms["EdgeFrequency"] = float32(m.EdgeFrequency)
	g.uniforms["Rim"] = float32(m.Rim)
	g.uniforms["UseBackground"] = float32(0)
}

// Apply shades dst. backdrop is optional; when set it must be the size of dst
// and is refracted in place of the material tint.
func (g *GlassShader) Apply(dst, backdrop *ebiten.Image) {
	shader := ensureGlassShader()
	bounds := dst.Bounds()
	g.shaderOp.Images[0] = backdrop
	if backdrop != nil {
		g.uniforms["UseBackground"] = float32(1)
	}
	g.shaderOp.Uniforms = g.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &g.shaderOp)
}
