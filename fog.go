package haze

// Fog fades geometry toward Color between Near and Far view-space distance
// from the camera. Near and Far are unrelated to the camera clip planes.
type Fog struct {
	Color Color
	Near  float64
	Far   float64
}

// NewFog creates a fog that fades in between near and far.
func NewFog(c Color, near, far float64) *Fog {
	return &Fog{Color: c, Near: near, Far: far}
}

// Factor returns how much of the fog color replaces the surface color at the
// given view depth: 0 at or before Near, 1 at or beyond Far, smoothstep in
// between. When Near == Far the transition is a hard step at that distance.
func (f *Fog) Factor(depth float64) float64 {
	if f.Far <= f.Near {
		if depth < f.Near {
			return 0
		}
		return 1
	}
	t := clamp01((depth - f.Near) / (f.Far - f.Near))
	return t * t * (3 - 2*t)
}

// Apply mixes c toward the fog color by Factor(depth). Alpha is kept from c.
func (f *Fog) Apply(c Color, depth float64) Color {
	out := c.Lerp(f.Color, f.Factor(depth))
	out.A = c.A
	return out
}
