package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/text"
)

var (
	panelBackground = color.RGBA{R: 24, G: 28, B: 34, A: 255}
	panelFrame      = color.RGBA{R: 150, G: 150, B: 160, A: 255}
)

// frameRect converts a canvas region with a bottom-left origin into image
// space for a canvas of height h.
func frameRect(pos, size geom.Vec2, h int) image.Rectangle {
	top := h - int(pos.Y+size.Y)
	return image.Rect(int(pos.X), top, int(pos.X+size.X), top+int(size.Y))
}

// renderPanel draws the static part of the synthetic cockpit panel: a
// background with a frame and a name plate for every captured region.
func renderPanel(size geom.Vec2, windows []WindowConfig) *image.RGBA {
	w, h := int(size.X), int(size.Y)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(panelBackground), image.Point{}, draw.Src)

	frame := image.NewUniform(panelFrame)
	for _, wc := range windows {
		r := frameRect(geom.Vec2(wc.Pos), geom.Vec2(wc.Size), h)
		for _, edge := range []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+2),
			image.Rect(r.Min.X, r.Max.Y-2, r.Max.X, r.Max.Y),
			image.Rect(r.Min.X, r.Min.Y, r.Min.X+2, r.Max.Y),
			image.Rect(r.Max.X-2, r.Min.Y, r.Max.X, r.Max.Y),
		} {
			draw.Draw(img, edge.Intersect(img.Bounds()), frame, image.Point{}, draw.Src)
		}

		label := text.RenderLabel(wc.Name, colors.White)
		at := image.Pt(r.Min.X+8, r.Min.Y+8)
		draw.Draw(img, label.Bounds().Add(at), label, image.Point{}, draw.Over)
	}
	return img
}

// Panel is the simulated cockpit the sandbox captures.
type Panel struct {
	size    geom.Vec2
	windows []WindowConfig
	pic     core.Picture
}

func NewPanel(p core.Painter, size geom.Vec2, windows []WindowConfig) (*Panel, error) {
	pic, err := p.LoadPicture(renderPanel(size, windows))
	if err != nil {
		return nil, fmt.Errorf("upload panel: %w", err)
	}
	return &Panel{size: size, windows: windows, pic: pic}, nil
}

// readoutWidth is the length of a full-scale readout bar.
const readoutWidth = 100

// Draw paints the panel at the desktop origin with a live readout in each
// region, so captured windows visibly update. Labels stay constant from
// frame to frame; the moving parts are boxes.
func (pn *Panel) Draw(p core.Painter, t float64) {
	p.DrawPicture(pn.pic, geom.Vec2{}, pn.size, 1)
	for i, wc := range pn.windows {
		phase := t + float64(i)
		pos := geom.Vec2(wc.Pos).Add(geom.V(12, 12))
		p.DrawString(colors.Green, pos, wc.Name)

		tw, _ := text.Measure(wc.Name)
		bar := readoutBar(pos.Add(geom.V(float64(tw+8), 0)), 0.5+0.5*math.Sin(phase))
		p.DrawTranslucentDarkBox(bar)

		needle := geom.V(wc.Size.X/2+math.Cos(phase)*wc.Size.X/4, wc.Size.Y/2+math.Sin(phase)*wc.Size.Y/4)
		c := geom.Vec2(wc.Pos).Add(needle)
		p.DrawTranslucentDarkBox(geom.Bounds{
			Left: int(c.X) - 6, Top: int(c.Y) + 6, Right: int(c.X) + 6, Bottom: int(c.Y) - 6,
		})
	}
}

func (pn *Panel) Free(p core.Painter) { p.FreePicture(pn.pic) }

// readoutBar is a bar of the given fill in [0,1] with its bottom-left at pos.
func readoutBar(pos geom.Vec2, fill float64) geom.Bounds {
	l, b := int(pos.X), int(pos.Y)
	return geom.Bounds{Left: l, Bottom: b, Right: l + int(math.Round(fill*readoutWidth)), Top: b + 8}
}
