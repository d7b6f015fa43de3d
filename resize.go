package haze

// Surface reports the displayed size of a drawing area in logical units and
// how many device pixels make up one logical unit.
type Surface interface {
	ClientSize() (width, height float64)
	PixelRatio() float64
}

// ResizeToDisplaySize makes r's drawing buffer match the surface's displayed
// size in device pixels. It returns true when the buffer was resized and false
// when it already matched, in which case nothing changes.
func ResizeToDisplaySize(r *Renderer, surface Surface) bool {
	cw, ch := surface.ClientSize()
	ratio := surface.PixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	// SetSize never goes below one pixel; compare against the same floor so
	// an empty surface does not report a resize every frame.
	width := max(int(cw*ratio), 1)
	height := max(int(ch*ratio), 1)

	if r.width == width && r.height == height {
		return false
	}
	r.SetSize(width, height)
	return true
}
