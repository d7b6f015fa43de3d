package haze

import (
	"fmt"
	"math"
	"os"
	"strconv"
)

// Panel layout in logical units.
const (
	panelDefaultWidth = 245
	panelTitleHeight  = 20
	panelRowHeight    = 24
	panelChannelRow   = 16
	panelLabelWidth   = 70
	panelValueWidth   = 48
	panelPadding      = 4
)

// controller is a single panel row bound to a property.
type controller interface {
	Label() string
	height() float64
	layout(r Rect)
	sliders() []*slider
	listening() bool
	UpdateDisplay()
}

// slider maps a horizontal track onto [Min, Max] and writes through apply.
type slider struct {
	Rect     Rect
	Min, Max float64
	apply    func(v float64)
	fraction func() float64
}

// valueAt converts an x coordinate on the track into a value.
func (s *slider) valueAt(x float64) float64 {
	if s.Rect.Width <= 0 {
		return s.Min
	}
	t := clamp01((x - s.Rect.X) / s.Rect.Width)
	return s.Min + t*(s.Max-s.Min)
}

// Panel is a parameter panel: a titled column of rows, each bound to a
// getter/setter pair. Rows added with Listen re-read their getter on every
// Update, so writes made elsewhere (including cross-clamping between rows)
// show up on the next frame.
type Panel struct {
	// Title is shown in the title bar. Clicking the bar collapses the panel.
	Title string
	// X, Y and Width place the panel in logical units.
	X, Y, Width float64

	rows     []controller
	closed   bool
	captured *slider
	laidOut  bool
}

// NewPanel creates an open panel with the default width.
func NewPanel(title string) *Panel {
	return &Panel{Title: title, Width: panelDefaultWidth}
}

// Add binds a numeric property with a slider over [min, max].
func (p *Panel) Add(name string, get func() float64, set func(float64), min, max float64) *NumberController {
	c := newNumberController(name, get, set, min, max)
	p.rows = append(p.rows, c)
	p.laidOut = false
	return c
}

// AddColor binds a color property exposed as a "#rrggbb" string.
func (p *Panel) AddColor(name string, get func() string, set func(string) error) *ColorController {
	c := newColorController(name, get, set)
	p.rows = append(p.rows, c)
	p.laidOut = false
	return c
}

// controllerByName returns the row with the given label, or nil.
func (p *Panel) controllerByName(name string) controller {
	for _, c := range p.rows {
		if c.Label() == name {
			return c
		}
	}
	return nil
}

// Number returns the numeric row with the given label, or nil.
func (p *Panel) Number(name string) *NumberController {
	c, _ := p.controllerByName(name).(*NumberController)
	return c
}

// ColorRow returns the color row with the given label, or nil.
func (p *Panel) ColorRow(name string) *ColorController {
	c, _ := p.controllerByName(name).(*ColorController)
	return c
}

// Closed reports whether the panel is collapsed to its title bar.
func (p *Panel) Closed() bool {
	return p.closed
}

// SetClosed collapses or expands the panel.
func (p *Panel) SetClosed(closed bool) {
	p.closed = closed
	p.captured = nil
}

// Update refreshes every listening row from its getter. Call once per frame.
func (p *Panel) Update() {
	for _, c := range p.rows {
		if c.listening() {
			c.UpdateDisplay()
		}
	}
}

// SetPosition moves the panel and invalidates the row layout.
func (p *Panel) SetPosition(x, y float64) {
	if x == p.X && y == p.Y {
		return
	}
	p.X, p.Y = x, y
	p.laidOut = false
}

// titleRect is the clickable title bar.
func (p *Panel) titleRect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: panelTitleHeight}
}

// Bounds returns the area the panel currently covers.
func (p *Panel) Bounds() Rect {
	h := float64(panelTitleHeight)
	if !p.closed {
		for _, c := range p.rows {
			h += c.height()
		}
	}
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: h}
}

// layout assigns row rectangles top to bottom below the title bar.
func (p *Panel) layout() {
	if p.laidOut {
		return
	}
	y := p.Y + panelTitleHeight
	for _, c := range p.rows {
		h := c.height()
		c.layout(Rect{X: p.X, Y: y, Width: p.Width, Height: h})
		y += h
	}
	p.laidOut = true
}

// sliderAt returns the slider track under (x, y), or nil.
func (p *Panel) sliderAt(x, y float64) *slider {
	if p.closed {
		return nil
	}
	p.layout()
	for _, c := range p.rows {
		for _, s := range c.sliders() {
			if s.Rect.Contains(x, y) {
				return s
			}
		}
	}
	return nil
}

// --- Pointer routing (logical coordinates) ---

// pointerDown starts a slider interaction when the press lands on a track.
func (p *Panel) pointerDown(x, y float64) {
	if s := p.sliderAt(x, y); s != nil {
		p.captured = s
		s.apply(s.valueAt(x))
	}
}

// pointerDrag updates the captured slider.
func (p *Panel) pointerDrag(x, _ float64) {
	if p.captured != nil {
		p.captured.apply(p.captured.valueAt(x))
	}
}

// pointerUp applies the final position to a captured slider and ends the
// capture. A click on the title bar toggles the panel.
func (p *Panel) pointerUp(x, y float64, click bool) {
	if p.captured != nil {
		p.captured.apply(p.captured.valueAt(x))
		p.captured = nil
		return
	}
	if click && p.titleRect().Contains(x, y) {
		p.SetClosed(!p.closed)
	}
}

// --- NumberController ---

// NumberController is a slider row bound to a float64 property.
type NumberController struct {
	name     string
	get      func() float64
	set      func(float64)
	min, max float64
	step     float64

	precision int
	listen    bool
	value     float64
	onChange  func(float64)

	rect  Rect
	track slider
}

func newNumberController(name string, get func() float64, set func(float64), min, max float64) *NumberController {
	c := &NumberController{name: name, get: get, set: set, min: min, max: max}
	c.value = get()
	c.precision = numDecimals(impliedStep(c.value))
	c.track = slider{
		Min:      min,
		Max:      max,
		apply:    c.SetValue,
		fraction: c.fraction,
	}
	return c
}

// Label returns the row label.
func (c *NumberController) Label() string { return c.name }

// Name changes the row label.
func (c *NumberController) Name(label string) *NumberController {
	c.name = label
	return c
}

// Listen makes the row re-read its getter every frame.
func (c *NumberController) Listen() *NumberController {
	c.listen = true
	return c
}

// Step snaps written values to multiples of s. Zero disables snapping.
func (c *NumberController) Step(s float64) *NumberController {
	c.step = s
	if s > 0 {
		c.precision = numDecimals(s)
	}
	return c
}

// OnChange registers fn to run after every write made through the row.
func (c *NumberController) OnChange(fn func(float64)) *NumberController {
	c.onChange = fn
	return c
}

// Value returns the displayed value.
func (c *NumberController) Value() float64 { return c.value }

// Range returns the slider bounds.
func (c *NumberController) Range() (min, max float64) { return c.min, c.max }

// SetValue clamps v to the slider range, snaps it to the step, writes it
// through the setter and refreshes the display from the getter.
func (c *NumberController) SetValue(v float64) {
	v = math.Max(c.min, math.Min(c.max, v))
	if c.step > 0 {
		v = math.Round(v/c.step) * c.step
	}
	c.set(v)
	c.UpdateDisplay()
	if c.onChange != nil {
		c.onChange(c.value)
	}
}

// UpdateDisplay re-reads the bound property.
func (c *NumberController) UpdateDisplay() {
	c.value = c.get()
}

// Text returns the displayed value formatted with the row precision.
func (c *NumberController) Text() string {
	return strconv.FormatFloat(c.value, 'f', c.precision, 64)
}

func (c *NumberController) listening() bool { return c.listen }
func (c *NumberController) height() float64 { return panelRowHeight }
func (c *NumberController) sliders() []*slider {
	return []*slider{&c.track}
}

func (c *NumberController) fraction() float64 {
	if c.max <= c.min {
		return 0
	}
	return clamp01((c.value - c.min) / (c.max - c.min))
}

func (c *NumberController) layout(r Rect) {
	c.rect = r
	c.track.Rect = Rect{
		X:      r.X + panelLabelWidth,
		Y:      r.Y + panelPadding,
		Width:  r.Width - panelLabelWidth - panelValueWidth - panelPadding,
		Height: r.Height - 2*panelPadding,
	}
}

// impliedStep guesses a display step from a value's magnitude: one tenth of
// its leading power of ten, or 1 for zero.
func impliedStep(v float64) float64 {
	if v == 0 {
		return 1
	}
	return math.Pow(10, math.Floor(math.Log10(math.Abs(v)))) / 10
}

// numDecimals returns the digits needed after the decimal point to show step.
func numDecimals(step float64) int {
	if step <= 0 {
		return 0
	}
	scaled := step
	for d := 0; d < 10; d++ {
		if math.Abs(scaled-math.Round(scaled)) < 1e-9 {
			return d
		}
		scaled *= 10
	}
	return 10
}

// --- ColorController ---

// ColorController is a color row: a swatch with the hex value and one slider
// per RGB channel.
type ColorController struct {
	name     string
	get      func() string
	set      func(string) error
	listen   bool
	value    Color
	onChange func(string)

	rect     Rect
	swatch   Rect
	channels [3]slider
}

func newColorController(name string, get func() string, set func(string) error) *ColorController {
	c := &ColorController{name: name, get: get, set: set}
	c.UpdateDisplay()
	for i := range c.channels {
		ch := i
		c.channels[i] = slider{
			Min:      0,
			Max:      1,
			apply:    func(v float64) { c.SetChannel(ch, v) },
			fraction: func() float64 { return channelOf(c.value, ch) },
		}
	}
	return c
}

// Label returns the row label.
func (c *ColorController) Label() string { return c.name }

// Name changes the row label.
func (c *ColorController) Name(label string) *ColorController {
	c.name = label
	return c
}

// Listen makes the row re-read its getter every frame.
func (c *ColorController) Listen() *ColorController {
	c.listen = true
	return c
}

// OnChange registers fn to run after every successful write made through the row.
func (c *ColorController) OnChange(fn func(string)) *ColorController {
	c.onChange = fn
	return c
}

// Value returns the displayed color.
func (c *ColorController) Value() Color { return c.value }

// Text returns the displayed color as "#rrggbb".
func (c *ColorController) Text() string { return c.value.HexString() }

// SetValue writes c through the setter as "#rrggbb" and refreshes the display.
func (c *ColorController) SetValue(v Color) error {
	hex := v.HexString()
	if err := c.set(hex); err != nil {
		return fmt.Errorf("panel %s: %w", c.name, err)
	}
	c.UpdateDisplay()
	if c.onChange != nil {
		c.onChange(c.Text())
	}
	return nil
}

// SetChannel replaces one RGB channel (0 = R, 1 = G, 2 = B) with v in [0, 1].
// The other two channels come from the bound property, not the display.
func (c *ColorController) SetChannel(ch int, v float64) {
	c.UpdateDisplay()
	next := c.value
	v = clamp01(v)
	switch ch {
	case 0:
		next.R = v
	case 1:
		next.G = v
	case 2:
		next.B = v
	default:
		return
	}
	if err := c.SetValue(next); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[haze] %v\n", err)
	}
}

// UpdateDisplay re-reads the bound property. Unparsable values keep the
// previous display.
func (c *ColorController) UpdateDisplay() {
	v, err := ParseColor(c.get())
	if err != nil {
		return
	}
	c.value = v
}

func (c *ColorController) listening() bool { return c.listen }
func (c *ColorController) height() float64 { return panelRowHeight + 3*panelChannelRow }
func (c *ColorController) sliders() []*slider {
	return []*slider{&c.channels[0], &c.channels[1], &c.channels[2]}
}

func (c *ColorController) layout(r Rect) {
	c.rect = r
	c.swatch = Rect{
		X:      r.X + panelLabelWidth,
		Y:      r.Y + panelPadding,
		Width:  r.Width - panelLabelWidth - panelPadding,
		Height: panelRowHeight - 2*panelPadding,
	}
	y := r.Y + panelRowHeight
	for i := range c.channels {
		c.channels[i].Rect = Rect{
			X:      r.X + panelLabelWidth,
			Y:      y + 2,
			Width:  r.Width - panelLabelWidth - panelValueWidth - panelPadding,
			Height: panelChannelRow - 4,
		}
		y += panelChannelRow
	}
}

func channelOf(c Color, ch int) float64 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}
