package window

import (
	"math"
	"time"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/geom"
)

const (
	buttonAlpha = 0.8
	resizeAlpha = 0.5

	titleCharWidth = 6
	titleHeight    = 15
)

// ChromeVisible reports whether the hover-revealed buttons are shown at t.
func (w *Window) ChromeVisible(t time.Time) bool {
	return t.Sub(w.lastHover) < HoverDelay
}

// Draw is the per-frame entry point called by the host.
func (w *Window) Draw() {
	if w.resize != nil {
		w.resize.update(w.handle)
	}
	if !w.handle.Visible() {
		return
	}
	w.releaseFocusIfBehind()

	b := w.handle.Geometry()
	now := w.sys.now()
	inSim := w.inSim()

	if w.conf.Draw != nil {
		w.conf.Draw(w, b.Origin(), b.Size())
	}

	p := w.sys.painter
	pics := &w.sys.pics
	if !w.conf.Decorated && inSim && w.ChromeVisible(now) {
		button := geom.V(ButtonSize, ButtonSize)
		resize := geom.V(ResizeIconSize, ResizeIconSize)
		p.DrawPicture(pics.close, w.closeButtonPos(b), button, buttonAlpha)
		p.DrawPicture(pics.popOut, w.popOutButtonPos(b), button, buttonAlpha)
		p.DrawPicture(pics.resizeL, b.Origin(), resize, resizeAlpha)
		p.DrawPicture(pics.resizeR, geom.V(float64(b.Right-ResizeIconSize), float64(b.Bottom)), resize, resizeAlpha)
	}

	if !w.conf.Decorated && inSim {
		w.drawTitle(b)
	}

	if w.handle.HasKeyboardFocus() {
		t := now.Sub(w.sys.epoch).Seconds()
		p.DrawPicture(
			pics.keyboard,
			geom.V(float64(b.Left+ButtonSize), float64(b.Top-ButtonSize)),
			geom.V(KeyboardWidth, KeyboardHeight),
			float32(0.5+0.5*math.Sin(t*5)),
		)
	}
}

// drawTitle labels the window in a dark box just under its bottom edge.
func (w *Window) drawTitle(b geom.Bounds) {
	width := float64(len(w.conf.Name) * titleCharWidth)
	x := float64(b.Left+b.Right) / 2
	x1, x2 := x-width/2, x+width/2
	y := float64(b.Bottom - 5)

	w.sys.painter.DrawTranslucentDarkBox(geom.Bounds{
		Left:   int(math.Round(x1 - 5)),
		Top:    int(y),
		Right:  int(math.Round(x2 + 5)),
		Bottom: int(y - titleHeight),
	})
	w.sys.painter.DrawString(colors.Title, geom.V(x1, y-10), w.conf.Name)
}
