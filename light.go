package haze

import "github.com/go-gl/mathgl/mgl64"

// DirectionalLight shines uniformly along the direction from Position toward
// Target, like sunlight. Only the direction matters, not the distance.
type DirectionalLight struct {
	Name      string
	Color     Color
	Intensity float64
	Position  mgl64.Vec3
	Target    mgl64.Vec3
}

// NewDirectionalLight creates a light above the origin pointing at it.
func NewDirectionalLight(c Color, intensity float64) *DirectionalLight {
	return &DirectionalLight{
		Color:     c,
		Intensity: intensity,
		Position:  mgl64.Vec3{0, 1, 0},
	}
}

// viewLight is a light resolved into view space for one frame.
type viewLight struct {
	// dir points from the surface toward the light, unit length.
	dir      mgl64.Vec3
	radiance Color
}

// resolveLights converts scene lights into view space using the camera view matrix.
func resolveLights(lights []*DirectionalLight, view mgl64.Mat4, buf []viewLight) []viewLight {
	buf = buf[:0]
	rot := view.Mat3()
	for _, l := range lights {
		toLight := l.Position.Sub(l.Target)
		if toLight.Len() == 0 {
			continue
		}
		buf = append(buf, viewLight{
			dir:      rot.Mul3x1(toLight).Normalize(),
			radiance: l.Color.Scale(l.Intensity),
		})
	}
	return buf
}
