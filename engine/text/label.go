// Package text rasterizes short single-line labels, such as window titles,
// with a fixed bitmap face.
package text

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/hubastard/xpanel/engine/colors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the face used for every label.
var Face font.Face = basicfont.Face7x13

// Measure returns the pixel size of s.
func Measure(s string) (w, h int) {
	m := Face.Metrics()
	adv := font.MeasureString(Face, s)
	return adv.Ceil(), (m.Ascent + m.Descent).Ceil()
}

// RenderLabel draws s in color c on a transparent image sized to the text.
// The image has a top-left origin.
func RenderLabel(s string, c colors.Color) *image.RGBA {
	w, h := Measure(s)
	if w == 0 {
		w = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.Transparent, image.Point{}, draw.Src)

	r, g, b, a := c.RGBA8()
	drawer := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.NRGBA{R: r, G: g, B: b, A: a}),
		Face: Face,
		Dot:  fixed.P(0, Face.Metrics().Ascent.Ceil()),
	}
	drawer.DrawString(s)
	return dst
}
