package haze

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig controls the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	ShowFPS   bool
	Debug     bool
}

// Run opens a window and drives app until the window closes or an update
// returns an error. ebiten.Termination ends the loop without an error.
func Run(app *App, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	app.SetShowFPS(cfg.ShowFPS)
	if cfg.Debug {
		app.SetDebugMode(true)
	}
	return ebiten.RunGame(app)
}

// RunConfigFrom maps the window section of a Config onto a RunConfig.
func RunConfigFrom(w WindowConfig) RunConfig {
	return RunConfig{
		Title:     w.Title,
		Width:     w.Width,
		Height:    w.Height,
		Resizable: w.Resizable,
		ShowFPS:   w.ShowFPS,
	}
}
