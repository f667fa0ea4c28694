package window

import (
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// dragState tracks a content drag. While active, the host window follows
// the pointer; border resizes are left entirely to the host.
type dragState struct {
	active bool
	anchor geom.Vec2
}

// Dragging reports whether a content drag is in progress.
func (w *Window) Dragging() bool { return w.drag.active }

func (w *Window) closeButtonPos(b geom.Bounds) geom.Vec2 {
	return geom.V(float64(b.Left), float64(b.Top-ButtonSize))
}

func (w *Window) popOutButtonPos(b geom.Bounds) geom.Vec2 {
	return geom.V(float64(b.Right-ButtonSize), float64(b.Top-ButtonSize))
}

// inButton hit-tests a chrome button whose bottom-left corner is at button.
// Buttons only exist on undecorated windows shown inside the simulator.
func (w *Window) inButton(button, click geom.Vec2) bool {
	return !w.conf.Decorated && w.inSim() &&
		click.X > button.X && click.X < button.X+ButtonSize &&
		click.Y > button.Y && click.Y < button.Y+ButtonSize
}

// InCloseButton reports whether the desktop point p hits the close button.
func (w *Window) InCloseButton(p geom.Vec2) bool {
	return w.inButton(w.closeButtonPos(w.handle.Geometry()), p)
}

// InPopOutButton reports whether the desktop point p hits the pop-out button.
func (w *Window) InPopOutButton(p geom.Vec2) bool {
	return w.inButton(w.popOutButtonPos(w.handle.Geometry()), p)
}

func (w *Window) Click(x, y int, status core.MouseStatus) bool {
	click := geom.V(float64(x), float64(y))
	b := w.handle.Geometry()
	local := geom.DeskToWin(b, click)
	scale := b.Size().Div(w.conf.Size)

	switch status {
	case core.MouseDown:
		w.drag = dragState{}

		if w.conf.Key != nil && !w.handle.HasKeyboardFocus() {
			w.sys.host.TakeKeyboardFocus(w.handle)
		}
		if w.inButton(w.closeButtonPos(b), click) {
			w.Hide()
			return true
		}
		if w.inButton(w.popOutButtonPos(b), click) {
			w.PopOut()
			return true
		}
		if w.conf.Click != nil && w.conf.Click(w, MouseDown, local, scale) {
			return true
		}
		if w.inSim() && b.Inset(ResizeMargin).ContainsStrict(click) {
			w.drag = dragState{active: true, anchor: click}
			return true
		}
		// Near the border: the host turns this into a resize.
		return false

	case core.MouseDrag:
		if w.drag.active {
			d := click.Sub(w.drag.anchor)
			w.drag.anchor = click
			w.handle.SetGeometry(b.Translate(int(d.X), int(d.Y)))
			return true
		}
		if w.conf.Click != nil {
			return w.conf.Click(w, MouseMove, local, scale)
		}
		return false

	case core.MouseUp:
		if w.drag.active {
			w.drag = dragState{}
			return true
		}
		if w.conf.Click != nil {
			w.conf.Click(w, MouseUp, local, scale)
		}
		return false
	}
	return false
}

func (w *Window) RightClick(int, int, core.MouseStatus) bool { return true }

func (w *Window) Wheel(int, int, int, int) bool { return true }

func (w *Window) Cursor(x, y int) core.CursorStatus {
	if !w.handle.InFront() {
		return core.CursorDefault
	}
	w.lastHover = w.sys.now()

	p := geom.V(float64(x), float64(y))
	b := w.handle.Geometry()
	if w.inButton(w.closeButtonPos(b), p) || w.inButton(w.popOutButtonPos(b), p) {
		w.sys.host.SetCursor(w.sys.cursor)
		return core.CursorCustom
	}
	return core.CursorDefault
}

func (w *Window) Key(key rune, flags core.KeyFlags, vkey core.VirtualKey, losingFocus bool) {
	if losingFocus || flags&core.DownFlag == 0 {
		return
	}
	if w.conf.Key == nil || !w.handle.HasKeyboardFocus() {
		return
	}
	w.conf.Key(w, vkey, key, flags&core.ControlFlag != 0)
}

// releaseFocusIfBehind gives keyboard focus back once another window is in
// front of this one.
func (w *Window) releaseFocusIfBehind() {
	if w.conf.Key == nil {
		return
	}
	if !w.handle.InFront() && w.handle.HasKeyboardFocus() {
		w.sys.host.TakeKeyboardFocus(nil)
	}
}
