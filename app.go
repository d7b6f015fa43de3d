package haze

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// App drives a Scene with Ebitengine's frame loop. It implements ebiten.Game.
//
// Each frame Update handles pointer input for the panel, advances the script
// runner and fog tweens, advances elapsed time and refreshes listening panel
// rows. Draw polls ResizeToDisplaySize, keeps the camera aspect in sync,
// calls the frame callback, renders, and draws the panel on top.
type App struct {
	scene    *Scene
	camera   *PerspectiveCamera
	renderer *Renderer
	panel    *Panel

	frameFn  func(t float64)
	updateFn func() error

	elapsed          float64
	clientW, clientH float64
	pixelRatio       float64
	debug            bool

	tweens []*FogTween

	// Input state
	pointer      pointerState
	dragDeadZone float64
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner
	exitOnDone   bool

	// Screenshots
	ScreenshotDir   string
	screenshotQueue []string

	fps *fpsCounter
}

// NewApp creates an app rendering scene through camera, with an empty
// "Controls" panel in the top-right corner.
func NewApp(scene *Scene, camera *PerspectiveCamera) *App {
	return &App{
		scene:         scene,
		camera:        camera,
		renderer:      NewRenderer(1, 1),
		panel:         NewPanel("Controls"),
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
}

// Scene returns the scene being drawn.
func (a *App) Scene() *Scene { return a.scene }

// Camera returns the camera used for rendering.
func (a *App) Camera() *PerspectiveCamera { return a.camera }

// Renderer returns the renderer that owns the drawing buffer.
func (a *App) Renderer() *Renderer { return a.renderer }

// Panel returns the parameter panel.
func (a *App) Panel() *Panel { return a.panel }

// Elapsed returns seconds of simulated time since the app started.
func (a *App) Elapsed() float64 { return a.elapsed }

// SetFrameFunc sets a callback run once per Draw with the elapsed seconds,
// before the scene is rendered. Use it to animate meshes.
func (a *App) SetFrameFunc(fn func(t float64)) {
	a.frameFn = fn
}

// SetUpdateFunc sets a callback run once per Update. A non-nil error
// (including ebiten.Termination) ends the game loop.
func (a *App) SetUpdateFunc(fn func() error) {
	a.updateFn = fn
}

// SetPixelRatio overrides the device scale factor. Zero restores the monitor's.
func (a *App) SetPixelRatio(ratio float64) {
	a.pixelRatio = ratio
}

// SetDebugMode enables per-frame render stats and fog sanity warnings on stderr.
func (a *App) SetDebugMode(enabled bool) {
	a.debug = enabled
	a.renderer.SetDebugMode(enabled)
}

// SetTestRunner attaches a scripted runner, stepped at the start of every Update.
// When exitOnDone is true the game loop ends once the script finishes.
func (a *App) SetTestRunner(runner *TestRunner, exitOnDone bool) {
	a.testRunner = runner
	a.exitOnDone = exitOnDone
}

// AddTween registers a fog tween advanced every Update until done. Tweens
// already running on the same FogHelper are dropped.
func (a *App) AddTween(t *FogTween) {
	live := a.tweens[:0]
	for _, old := range a.tweens {
		if old.helper != t.helper {
			live = append(live, old)
		}
	}
	clear(a.tweens[len(live):])
	a.tweens = append(live, t)
}

// ClientSize implements Surface: the window's size in logical units as last
// reported to Layout.
func (a *App) ClientSize() (width, height float64) {
	return a.clientW, a.clientH
}

// PixelRatio implements Surface.
func (a *App) PixelRatio() float64 {
	if a.pixelRatio > 0 {
		return a.pixelRatio
	}
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

// Update implements ebiten.Game.
func (a *App) Update() error {
	if a.testRunner != nil {
		a.testRunner.step(a)
		if a.exitOnDone && a.testRunner.Done() && len(a.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}

	a.processInput()

	dt := 1.0 / float64(ebiten.TPS())
	a.elapsed += dt
	a.updateTweens(float32(dt))

	if a.updateFn != nil {
		if err := a.updateFn(); err != nil {
			return err
		}
	}

	a.panel.Update()
	if a.fps != nil {
		a.fps.update(dt)
	}
	return nil
}

// updateTweens advances active tweens and drops finished ones.
func (a *App) updateTweens(dt float32) {
	live := a.tweens[:0]
	for _, t := range a.tweens {
		t.Update(dt)
		if !t.Done {
			live = append(live, t)
		}
	}
	clear(a.tweens[len(live):])
	a.tweens = live
}

// Draw implements ebiten.Game.
func (a *App) Draw(screen *ebiten.Image) {
	if ResizeToDisplaySize(a.renderer, a) {
		cw, ch := a.ClientSize()
		if ch > 0 {
			a.camera.Aspect = cw / ch
			a.camera.UpdateProjectionMatrix()
		}
	}

	if a.frameFn != nil {
		a.frameFn(a.elapsed)
	}
	if a.debug {
		debugCheckFog(a.scene.Fog)
	}

	canvas := a.renderer.Render(a.scene, a.camera)

	var op ebiten.DrawImageOptions
	sb := screen.Bounds()
	cb := canvas.Bounds()
	op.GeoM.Scale(float64(sb.Dx())/float64(cb.Dx()), float64(sb.Dy())/float64(cb.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(canvas, &op)

	ratio := a.PixelRatio()
	a.panel.Draw(screen, ratio)
	if a.fps != nil {
		a.fps.draw(screen, ratio)
	}

	a.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The screen is sized in device pixels so
// the drawing buffer is not upscaled on high-density displays.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.clientW = float64(outsideWidth)
	a.clientH = float64(outsideHeight)
	a.panel.SetPosition(a.clientW-a.panel.Width, 0)

	ratio := a.PixelRatio()
	return max(int(a.clientW*ratio), 1), max(int(a.clientH*ratio), 1)
}
