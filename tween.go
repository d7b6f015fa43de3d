package haze

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FogTween animates fog near, far and color toward a target state.
// Every frame's values are written through the FogHelper setters, so the
// near <= far ordering and the background mirror hold at every step.
//
// There is no global animation manager; call Update each frame or register
// the tween with App.AddTween.
type FogTween struct {
	helper *FogHelper
	near   *gween.Tween
	far    *gween.Tween
	rgb    [3]*gween.Tween
	Done   bool
}

// TweenFog creates a tween from the helper's current state to `to` over
// duration seconds using the easing function.
func TweenFog(h *FogHelper, to FogState, duration float32, fn ease.TweenFunc) *FogTween {
	from := h.State()
	t := &FogTween{helper: h}
	t.near = gween.New(float32(from.Near), float32(to.Near), duration, fn)
	t.far = gween.New(float32(from.Far), float32(to.Far), duration, fn)
	t.rgb[0] = gween.New(float32(from.Color.R), float32(to.Color.R), duration, fn)
	t.rgb[1] = gween.New(float32(from.Color.G), float32(to.Color.G), duration, fn)
	t.rgb[2] = gween.New(float32(from.Color.B), float32(to.Color.B), duration, fn)
	return t
}

// Update advances the tween by dt seconds and writes the new values.
func (t *FogTween) Update(dt float32) {
	if t.Done {
		return
	}

	near, nearDone := t.near.Update(dt)
	far, farDone := t.far.Update(dt)
	allDone := nearDone && farDone

	var c [3]float64
	for i, tw := range t.rgb {
		v, finished := tw.Update(dt)
		c[i] = clamp01(float64(v))
		allDone = allDone && finished
	}

	// An overshooting ease can cross near and far; SetNear then raises far.
	t.helper.SetFar(float64(far))
	t.helper.SetNear(float64(near))
	t.helper.SetColorValue(Color{R: c[0], G: c[1], B: c[2], A: 1})

	t.Done = allDone
}
