// Package scene holds the camera that maps desktop coordinates to clip space.
package scene

import "github.com/hubastard/xpanel/engine/geom"

// ScreenCamera is an orthographic camera over the desktop. Desktop units
// have a bottom-left origin; the view can be panned by X, Y.
type ScreenCamera struct {
	Width, Height float32
	Near, Far     float32
	X, Y          float32
	proj, mv      geom.Mat4
	dirty         bool
}

func NewScreenCamera(width, height int) *ScreenCamera {
	c := &ScreenCamera{
		Width: float32(width), Height: float32(height),
		Near: -1, Far: 1,
	}
	c.Recalculate()
	return c
}

func (c *ScreenCamera) SetViewport(w, h int) {
	c.Width, c.Height = float32(w), float32(h)
	c.dirty = true
}

func (c *ScreenCamera) Move(dx, dy float32) { c.X += dx; c.Y += dy; c.dirty = true }

// Projection returns the orthographic projection.
func (c *ScreenCamera) Projection() geom.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.proj
}

// ModelView returns the view transform for the current pan.
func (c *ScreenCamera) ModelView() geom.Mat4 {
	if c.dirty {
		c.Recalculate()
	}
	return c.mv
}

// VP returns projection × modelview.
func (c *ScreenCamera) VP() geom.Mat4 {
	return geom.Mul(c.Projection(), c.ModelView())
}

func (c *ScreenCamera) Recalculate() {
	c.proj = geom.Ortho(0, c.Width, 0, c.Height, c.Near, c.Far)
	c.mv = geom.Translate(-c.X, -c.Y, 0)
	c.dirty = false
}
