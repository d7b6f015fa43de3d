package haze

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Renderer draws a Scene into an offscreen drawing buffer whose size is set
// explicitly with SetSize, independent of how large it is displayed.
type Renderer struct {
	width, height int
	canvas        *ebiten.Image
	debug         bool

	commands []triCommand
	sortBuf  []triCommand
	lights   []viewLight
	verts    []ebiten.Vertex
	inds     []uint32

	stats debugStats
}

// NewRenderer creates a renderer with the given drawing buffer size.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:    width,
		height:   height,
		commands: make([]triCommand, 0, defaultCommandCap),
		sortBuf:  make([]triCommand, 0, defaultCommandCap),
	}
}

// Size returns the drawing buffer size in pixels.
func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// SetSize changes the drawing buffer size. The buffer is reallocated on the
// next Render. Non-positive sizes are clamped to 1.
func (r *Renderer) SetSize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	if r.canvas != nil {
		r.canvas.Deallocate()
		r.canvas = nil
	}
}

// Canvas returns the drawing buffer from the last Render, or nil.
func (r *Renderer) Canvas() *ebiten.Image {
	return r.canvas
}

// SetDebugMode enables per-frame stats on stderr.
func (r *Renderer) SetDebugMode(enabled bool) {
	r.debug = enabled
}

// Render clears the drawing buffer to the scene background and draws every
// visible mesh as seen from cam. The buffer is returned for compositing.
func (r *Renderer) Render(s *Scene, cam *PerspectiveCamera) *ebiten.Image {
	if r.canvas == nil {
		r.canvas = ebiten.NewImage(r.width, r.height)
	}

	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	r.build(s, cam)

	if r.debug {
		r.stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	r.mergeSort()

	if r.debug {
		r.stats.sortTime = time.Since(t0)
		t0 = time.Now()
	}

	r.canvas.Fill(s.Background.toRGBA())
	r.submit(r.canvas)

	if r.debug {
		r.stats.submitTime = time.Since(t0)
		r.stats.commandCount = len(r.commands)
		r.debugLog()
	}
	return r.canvas
}

// build runs the vertex pipeline for every visible mesh into r.commands.
func (r *Renderer) build(s *Scene, cam *PerspectiveCamera) {
	r.commands = r.commands[:0]
	r.stats = debugStats{}

	view := cam.ViewMatrix()
	r.lights = resolveLights(s.lights, view, r.lights)

	for _, m := range s.meshes {
		if !m.Visible {
			continue
		}
		r.emitMesh(s, cam, view, m)
	}
}

// submit flattens sorted commands into one DrawTriangles32 call.
func (r *Renderer) submit(target *ebiten.Image) {
	if len(r.commands) == 0 {
		return
	}
	n := len(r.commands) * 3
	if cap(r.verts) < n {
		r.verts = make([]ebiten.Vertex, n)
		r.inds = make([]uint32, n)
	}
	r.verts = r.verts[:n]
	r.inds = r.inds[:n]

	for i := range r.commands {
		cmd := &r.commands[i]
		base := i * 3
		copy(r.verts[base:base+3], cmd.verts[:])
		r.inds[base] = uint32(base)
		r.inds[base+1] = uint32(base + 1)
		r.inds[base+2] = uint32(base + 2)
	}

	var op ebiten.DrawTrianglesOptions
	target.DrawTriangles32(r.verts, r.inds, ensureWhitePixel(), &op)
}

// --- White pixel singleton (no sync.Once; haze is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
