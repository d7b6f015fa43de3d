package haze

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsCounter shows the current FPS and TPS in the bottom-left corner.
// The text is refreshed every ~0.5 seconds.
type fpsCounter struct {
	img   *ebiten.Image
	since float64
	dirty bool
}

// SetShowFPS toggles the FPS readout.
func (a *App) SetShowFPS(show bool) {
	if !show {
		a.fps = nil
		return
	}
	if a.fps == nil {
		a.fps = &fpsCounter{dirty: true}
	}
}

func (f *fpsCounter) update(dt float64) {
	f.since += dt
	if f.since >= 0.5 {
		f.since = 0
		f.dirty = true
	}
}

func (f *fpsCounter) draw(screen *ebiten.Image, scale float64) {
	if f.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		f.img = ebiten.NewImage(100, 32)
	}
	if f.dirty {
		f.dirty = false
		f.img.Clear()
		f.img.Fill(panelBackground)
		ebitenutil.DebugPrint(f.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(0, float64(screen.Bounds().Dy())-32*scale)
	screen.DrawImage(f.img, &op)
}
