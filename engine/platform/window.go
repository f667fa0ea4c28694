package platform

import (
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// Window is a floating window on the emulated desktop. Popped-out windows
// stay on the desktop at their OS geometry; VR windows are not shown.
type Window struct {
	desk       *Desktop
	bounds     geom.Bounds
	osBounds   geom.Bounds
	visible    bool
	mode       core.PositioningMode
	decoration core.Decoration
	limits     [4]int // min w, min h, max w, max h; zero means unbounded
	title      string
	handler    core.WindowHandler
	destroyed  bool
}

func (w *Window) Geometry() geom.Bounds { return w.bounds }

func (w *Window) SetGeometry(b geom.Bounds) { w.bounds = b }

func (w *Window) GeometryOS() geom.Bounds { return w.osBounds }

func (w *Window) SetGeometryOS(b geom.Bounds) {
	w.osBounds = b
	if w.mode == core.PositionPopOut {
		w.bounds = b
	}
}

func (w *Window) Visible() bool     { return w.visible }
func (w *Window) SetVisible(v bool) { w.visible = v }

func (w *Window) SetPositioningMode(mode core.PositioningMode, _ int) {
	if mode == core.PositionPopOut && w.mode != core.PositionPopOut {
		w.osBounds = w.bounds
	}
	w.mode = mode
}

func (w *Window) Mode() core.PositioningMode { return w.mode }

func (w *Window) HasKeyboardFocus() bool { return w.desk.focus == w }
func (w *Window) InFront() bool          { return w.desk.Frontmost() == w }
func (w *Window) PoppedOut() bool        { return w.mode == core.PositionPopOut }
func (w *Window) InVR() bool             { return w.mode == core.PositionVR }

func (w *Window) SetResizingLimits(minW, minH, maxW, maxH int) {
	w.limits = [4]int{minW, minH, maxW, maxH}
}

func (w *Window) Limits() (minW, minH, maxW, maxH int) {
	return w.limits[0], w.limits[1], w.limits[2], w.limits[3]
}

func (w *Window) SetTitle(title string) { w.title = title }
func (w *Window) Title() string         { return w.title }

func (w *Window) onDesktop() bool {
	return w.visible && !w.destroyed && w.mode != core.PositionVR
}

// borderAt reports which edges p is close enough to grab.
func (w *Window) borderAt(p geom.Vec2) edges {
	b := w.bounds
	x, y := int(p.X), int(p.Y)
	return edges{
		left:   x < b.Left+BorderWidth,
		right:  x > b.Right-BorderWidth,
		top:    y > b.Top-BorderWidth,
		bottom: y < b.Bottom+BorderWidth,
	}
}

// resizeBy moves the grabbed edges and keeps the size within the limits by
// pulling those same edges back.
func (w *Window) resizeBy(e edges, dx, dy int) {
	b := w.bounds
	if e.left {
		b.Left += dx
	}
	if e.right {
		b.Right += dx
	}
	if e.top {
		b.Top += dy
	}
	if e.bottom {
		b.Bottom += dy
	}

	width := clampSize(b.Width(), w.limits[0], w.limits[2])
	if e.left {
		b.Left = b.Right - width
	} else {
		b.Right = b.Left + width
	}
	height := clampSize(b.Height(), w.limits[1], w.limits[3])
	if e.bottom {
		b.Bottom = b.Top - height
	} else {
		b.Top = b.Bottom + height
	}

	if w.mode == core.PositionPopOut {
		w.osBounds = b
	}
	w.bounds = b
}

func clampSize(v, lo, hi int) int {
	if lo < 1 {
		lo = 1
	}
	if v < lo {
		return lo
	}
	if hi > 0 && v > hi {
		return hi
	}
	return v
}

// Command is a desktop command with its handlers in registration order.
type Command struct {
	name     string
	desc     string
	handlers []commandHandler
	nextID   int
}

type commandHandler struct {
	id int
	fn core.CommandHandler
}

func (c *Command) Name() string        { return c.name }
func (c *Command) Description() string { return c.desc }

func (c *Command) run(phase core.CommandPhase) {
	for _, h := range append([]commandHandler(nil), c.handlers...) {
		if !h.fn(c, phase) {
			return
		}
	}
}
