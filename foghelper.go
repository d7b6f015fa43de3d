package haze

// FogHelper exposes fog near, far and color as accessors suitable for panel
// binding. Near never exceeds far after any setter returns, and the fog color
// is mirrored into the background so the haze blends into the clear color.
type FogHelper struct {
	fog        *Fog
	background *Color
}

// NewFogHelper binds a helper to fog and the background color it should keep
// in sync. Both pointers must be non-nil.
func NewFogHelper(fog *Fog, background *Color) *FogHelper {
	return &FogHelper{fog: fog, background: background}
}

// Near returns the fog start distance.
func (h *FogHelper) Near() float64 {
	return h.fog.Near
}

// SetNear sets the fog start distance and raises far to v if it was below.
func (h *FogHelper) SetNear(v float64) {
	h.fog.Near = v
	h.fog.Far = max(h.fog.Far, v)
}

// Far returns the fog end distance.
func (h *FogHelper) Far() float64 {
	return h.fog.Far
}

// SetFar sets the fog end distance and lowers near to v if it was above.
func (h *FogHelper) SetFar(v float64) {
	h.fog.Far = v
	h.fog.Near = min(h.fog.Near, v)
}

// Color returns the fog color as "#rrggbb".
func (h *FogHelper) Color() string {
	return h.fog.Color.HexString()
}

// SetColor parses value and writes it to both the fog and the background.
// On a parse error nothing is changed.
func (h *FogHelper) SetColor(value string) error {
	c, err := ParseColor(value)
	if err != nil {
		return err
	}
	h.SetColorValue(c)
	return nil
}

// SetColorValue writes c to both the fog and the background.
func (h *FogHelper) SetColorValue(c Color) {
	h.fog.Color = c
	*h.background = c
}

// State returns a snapshot of the helper's current values.
func (h *FogHelper) State() FogState {
	return FogState{Near: h.fog.Near, Far: h.fog.Far, Color: h.fog.Color}
}

// FogState is a plain snapshot of fog parameters, used for presets and tweens.
type FogState struct {
	Near  float64
	Far   float64
	Color Color
}
