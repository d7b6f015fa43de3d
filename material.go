package haze

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// PhongMaterial shades a surface with Lambert diffuse and Blinn-Phong specular.
type PhongMaterial struct {
	Color     Color
	Specular  Color
	Emissive  Color
	Shininess float64
	// Fog controls whether scene fog affects this material.
	Fog bool
}

// NewPhongMaterial returns a material with a dim specular highlight
// (0x111111, shininess 30) and fog enabled.
func NewPhongMaterial(c Color) *PhongMaterial {
	return &PhongMaterial{
		Color:     c,
		Specular:  HexColor(0x111111),
		Emissive:  ColorBlack,
		Shininess: 30,
		Fog:       true,
	}
}

// shade returns the lit color for a surface point with unit normal n and unit
// direction toward the eye toEye, both in view space.
func (m *PhongMaterial) shade(n, toEye mgl64.Vec3, ambient Color, lights []viewLight) Color {
	out := m.Emissive.Add(m.Color.Mul(ambient))
	for i := range lights {
		l := &lights[i]
		ndotl := n.Dot(l.dir)
		if ndotl <= 0 {
			continue
		}
		out = out.Add(m.Color.Mul(l.radiance).Scale(ndotl))

		h := l.dir.Add(toEye)
		if h.Len() == 0 {
			continue
		}
		ndoth := math.Max(n.Dot(h.Normalize()), 0)
		spec := math.Pow(ndoth, m.Shininess) * ndotl
		out = out.Add(m.Specular.Mul(l.radiance).Scale(spec))
	}
	out.A = m.Color.A
	return out.Clamp()
}
