package haze

import (
	"image"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Panel palette.
var (
	panelBackground = color.RGBA{0x1a, 0x1a, 0x1a, 0xf0}
	panelTitleBar   = color.RGBA{0x00, 0x00, 0x00, 0xff}
	panelTrack      = color.RGBA{0x30, 0x30, 0x30, 0xff}
	panelNumberFill = color.RGBA{0x2f, 0xa1, 0xd6, 0xff}
	panelColorEdge  = color.RGBA{0x80, 0x80, 0x80, 0xff}
	panelText       = color.RGBA{0xee, 0xee, 0xee, 0xff}
	panelDivider    = color.RGBA{0x2c, 0x2c, 0x2c, 0xff}
	channelFills    = [3]color.RGBA{
		{0xd6, 0x3f, 0x3f, 0xff},
		{0x3f, 0xd6, 0x5a, 0xff},
		{0x3f, 0x7a, 0xd6, 0xff},
	}
)

// labelFace is the fixed bitmap font for panel text (7x13 px).
var labelFace *text.GoXFace

func ensureLabelFace() *text.GoXFace {
	if labelFace == nil {
		labelFace = text.NewGoXFace(basicfont.Face7x13)
	}
	return labelFace
}

const labelGlyphHeight = 13

// Draw renders the panel onto dst. scale converts logical units to dst pixels.
func (p *Panel) Draw(dst *ebiten.Image, scale float64) {
	p.layout()

	b := p.Bounds()
	fillRect(dst, b, scale, panelBackground)

	title := p.titleRect()
	fillRect(dst, title, scale, panelTitleBar)
	marker := "- "
	if p.closed {
		marker = "+ "
	}
	drawLabel(dst, marker+p.Title, title.X+panelPadding, centerText(title), scale, panelText)

	if p.closed {
		return
	}
	for _, c := range p.rows {
		switch row := c.(type) {
		case *NumberController:
			row.draw(dst, scale)
		case *ColorController:
			row.draw(dst, scale)
		}
	}
}

func (c *NumberController) draw(dst *ebiten.Image, scale float64) {
	r := c.rect
	fillRect(dst, Rect{X: r.X, Y: r.Y + r.Height - 1, Width: r.Width, Height: 1}, scale, panelDivider)
	drawLabel(dst, c.name, r.X+panelPadding, centerText(r), scale, panelText)

	t := c.track.Rect
	fillRect(dst, t, scale, panelTrack)
	filled := t
	filled.Width = t.Width * c.track.fraction()
	fillRect(dst, filled, scale, panelNumberFill)

	drawLabel(dst, c.Text(), t.X+t.Width+panelPadding, centerText(r), scale, panelText)
}

func (c *ColorController) draw(dst *ebiten.Image, scale float64) {
	r := c.rect
	fillRect(dst, Rect{X: r.X, Y: r.Y + r.Height - 1, Width: r.Width, Height: 1}, scale, panelDivider)
	header := Rect{X: r.X, Y: r.Y, Width: r.Width, Height: panelRowHeight}
	drawLabel(dst, c.name, r.X+panelPadding, centerText(header), scale, panelText)

	s := c.swatch
	fillRect(dst, s, scale, panelColorEdge)
	fillRect(dst, Rect{X: s.X + 1, Y: s.Y + 1, Width: s.Width - 2, Height: s.Height - 2}, scale, c.value.toRGBA())
	drawLabel(dst, c.Text(), s.X+panelPadding, centerText(s), scale, contrastText(c.value))

	names := [3]string{"R", "G", "B"}
	for i := range c.channels {
		t := c.channels[i].Rect
		row := Rect{X: r.X, Y: t.Y - 2, Width: r.Width, Height: panelChannelRow}
		drawLabel(dst, names[i], r.X+panelLabelWidth-12, centerText(row), scale, panelText)
		fillRect(dst, t, scale, panelTrack)
		filled := t
		filled.Width = t.Width * c.channels[i].fraction()
		fillRect(dst, filled, scale, channelFills[i])
		v := int(channel8(channelOf(c.value, i)))
		drawLabel(dst, strconv.Itoa(v), t.X+t.Width+panelPadding, centerText(row), scale, panelText)
	}
}

// contrastText picks black or white text for legibility over bg.
func contrastText(bg Color) color.RGBA {
	lum := 0.299*bg.R + 0.587*bg.G + 0.114*bg.B
	if lum > 0.5 {
		return color.RGBA{0, 0, 0, 0xff}
	}
	return panelText
}

// centerText returns the y at which a label is vertically centered in r.
func centerText(r Rect) float64 {
	return r.Y + (r.Height-labelGlyphHeight)/2
}

// fillRect fills a logical rectangle on dst.
func fillRect(dst *ebiten.Image, r Rect, scale float64, c color.Color) {
	if r.Width <= 0 || r.Height <= 0 {
		return
	}
	px := image.Rect(
		int(r.X*scale), int(r.Y*scale),
		int((r.X+r.Width)*scale+0.5), int((r.Y+r.Height)*scale+0.5),
	)
	px = px.Intersect(dst.Bounds())
	if px.Empty() {
		return
	}
	dst.SubImage(px).(*ebiten.Image).Fill(c)
}

// drawLabel draws s with its top-left corner at logical (x, y).
func drawLabel(dst *ebiten.Image, s string, x, y, scale float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x*scale, y*scale)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, ensureLabelFace(), op)
}
