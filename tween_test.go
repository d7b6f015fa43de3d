package haze

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenFogReachesTarget(t *testing.T) {
	h, fog, bg := newTestFogHelper(1, 2)
	target := FogState{Near: 1.25, Far: 1.5, Color: HexColor(0x336699)}

	tw := TweenFog(h, target, 1.0, ease.Linear)

	// exact halves avoid float32 accumulation drift
	tw.Update(0.5)
	if tw.Done {
		t.Fatal("Done after half the duration")
	}
	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(h.Near()-1.25) > 1e-6 || math.Abs(h.Far()-1.5) > 1e-6 {
		t.Errorf("near, far = %v, %v; want 1.25, 1.5", h.Near(), h.Far())
	}
	if fog.Color.Hex() != 0x336699 {
		t.Errorf("fog color = %06x, want 336699", fog.Color.Hex())
	}
	if *bg != fog.Color {
		t.Errorf("background %v does not mirror fog %v", *bg, fog.Color)
	}
}

func TestTweenFogMidpoint(t *testing.T) {
	h, _, _ := newTestFogHelper(1, 2)
	tw := TweenFog(h, FogState{Near: 2, Far: 2, Color: HexColor(0x000000)}, 1.0, ease.Linear)
	tw.Update(0.5)
	if math.Abs(h.Near()-1.5) > 1e-6 || h.Far() != 2 {
		t.Errorf("near, far = %v, %v; want 1.5, 2", h.Near(), h.Far())
	}
}

func TestTweenFogKeepsOrderingWithOvershoot(t *testing.T) {
	easings := map[string]ease.TweenFunc{
		"OutBack":    ease.OutBack,
		"InBack":     ease.InBack,
		"OutElastic": ease.OutElastic,
		"OutBounce":  ease.OutBounce,
	}
	for name, fn := range easings {
		t.Run(name, func(t *testing.T) {
			h, fog, bg := newTestFogHelper(1, 2)
			tw := TweenFog(h, FogState{Near: 1.9, Far: 1.95, Color: ColorWhite}, 1.0, fn)
			for !tw.Done {
				tw.Update(0.0625)
				if h.Near() > h.Far() {
					t.Fatalf("near %v > far %v mid-tween", h.Near(), h.Far())
				}
				if *bg != fog.Color {
					t.Fatal("background diverged from fog color")
				}
			}
		})
	}
}

func TestTweenFogDoneIsSticky(t *testing.T) {
	h, _, _ := newTestFogHelper(1, 2)
	tw := TweenFog(h, FogState{Near: 1, Far: 1.5, Color: ColorWhite}, 0.5, ease.Linear)
	tw.Update(1)
	if !tw.Done {
		t.Fatal("expected Done")
	}
	h.SetFar(2)
	tw.Update(1)
	if h.Far() != 2 {
		t.Error("finished tween still writes to the helper")
	}
}

func TestTweenFogEasingsDiffer(t *testing.T) {
	sample := func(fn ease.TweenFunc) float64 {
		h, _, _ := newTestFogHelper(1, 2)
		tw := TweenFog(h, FogState{Near: 1, Far: 1.5, Color: ColorWhite}, 1.0, fn)
		tw.Update(0.25)
		return h.Far()
	}
	if sample(ease.Linear) == sample(ease.InQuad) {
		t.Error("Linear and InQuad produced the same value at t=0.25")
	}
}
