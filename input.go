package haze

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultDragDeadZone = 4.0 // logical pixels

// pointerState tracks the single pointer (mouse or first touch) driving the panel.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	touchIDs []ebiten.TouchID
}

// SetDragDeadZone sets the distance in logical pixels a press must travel
// before it counts as a drag instead of a click.
func (a *App) SetDragDeadZone(pixels float64) {
	a.dragDeadZone = pixels
}

// processInput feeds one pointer sample per frame into the state machine.
// Injected events take priority over real input for that frame.
func (a *App) processInput() {
	if a.processInjectedInput() {
		return
	}

	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	if !pressed {
		ids := ebiten.AppendTouchIDs(a.pointer.touchIDs[:0])
		a.pointer.touchIDs = ids
		if len(ids) > 0 {
			tx, ty := ebiten.TouchPosition(ids[0])
			sx, sy = float64(tx), float64(ty)
			pressed = true
		}
	}

	a.processPointer(sx, sy, pressed)
}

// processPointer runs the pointer state machine. sx, sy are screen pixels.
func (a *App) processPointer(sx, sy float64, pressed bool) {
	ratio := a.PixelRatio()
	x, y := sx/ratio, sy/ratio
	ps := &a.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
		ps.dragging = false
		a.panel.pointerDown(x, y)

	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := x - ps.startX
			dy := y - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > a.dragDeadZone {
				ps.dragging = true
			}
		}
		// Sliders follow the pointer from the first movement; the dead zone
		// only decides whether the release still counts as a click.
		a.panel.pointerDrag(x, y)
		ps.lastX, ps.lastY = x, y

	case !pressed && ps.down:
		a.panel.pointerUp(x, y, !ps.dragging)
		ps.down = false
		ps.dragging = false
		ps.lastX, ps.lastY = x, y

	default:
		ps.lastX, ps.lastY = x, y
	}
}
