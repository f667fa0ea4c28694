package coretest

import (
	"image"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

type PictureDraw struct {
	Picture   core.Picture
	Pos, Size geom.Vec2
	Alpha     float32
}

type StringDraw struct {
	Color colors.Color
	Pos   geom.Vec2
	Text  string
}

// Painter records chrome drawing.
type Painter struct {
	LoadErr  error
	Loaded   []core.Picture
	Freed    []core.Picture
	Pictures []PictureDraw
	Boxes    []geom.Bounds
	Strings  []StringDraw
	next     core.Texture
}

func (p *Painter) LoadPicture(img *image.RGBA) (core.Picture, error) {
	if p.LoadErr != nil {
		return core.Picture{}, p.LoadErr
	}
	p.next++
	pic := core.Picture{Texture: p.next, W: img.Bounds().Dx(), H: img.Bounds().Dy()}
	p.Loaded = append(p.Loaded, pic)
	return pic, nil
}

func (p *Painter) FreePicture(pic core.Picture) { p.Freed = append(p.Freed, pic) }

func (p *Painter) DrawPicture(pic core.Picture, pos, size geom.Vec2, alpha float32) {
	p.Pictures = append(p.Pictures, PictureDraw{pic, pos, size, alpha})
}

func (p *Painter) DrawTranslucentDarkBox(b geom.Bounds) { p.Boxes = append(p.Boxes, b) }

func (p *Painter) DrawString(c colors.Color, pos geom.Vec2, s string) {
	p.Strings = append(p.Strings, StringDraw{c, pos, s})
}

// Reset forgets recorded draws.
func (p *Painter) Reset() {
	p.Pictures = nil
	p.Boxes = nil
	p.Strings = nil
}
