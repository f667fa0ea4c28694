package window

import (
	"math"
	"time"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// Chrome and interaction constants, in desktop units.
const (
	ButtonSize      = 32
	ResizeMargin    = 12
	OffscreenMargin = 30
	ResizeIconSize  = 24
	KeyboardWidth   = 50
	KeyboardHeight  = ButtonSize
)

// HoverDelay is how long the chrome stays visible after the last cursor
// motion over the window.
const HoverDelay = 2 * time.Second

// MouseAction is the kind of click event forwarded to a ClickFunc.
type MouseAction int

const (
	MouseDown MouseAction = iota
	MouseMove
	MouseUp
)

// DrawFunc draws the window content. pos is the bottom-left corner and size
// the live size, both in desktop space.
type DrawFunc func(w *Window, pos, size geom.Vec2)

// ClickFunc handles a click in window-local space. scale is the live size
// divided by the configured size. Returning true consumes the event.
type ClickFunc func(w *Window, act MouseAction, pos, scale geom.Vec2) bool

// KeyFunc receives key-down events while the window has keyboard focus.
type KeyFunc func(w *Window, key core.VirtualKey, c rune, ctrl bool)

// Config describes a window. It is copied at creation.
type Config struct {
	Size     geom.Vec2
	MinScale float64
	MaxScale float64

	Name string
	// ID keys the window in the registry and the layout file. Derived from
	// Name when empty.
	ID string

	Decorated         bool
	AspectConstrained bool

	Draw  DrawFunc
	Click ClickFunc
	Key   KeyFunc
}

// Window is one interactive surface backed by a host window.
type Window struct {
	sys      *System
	handle   core.WindowHandle
	conf     Config
	userData any

	cmd       core.Command
	unbindCmd func()

	drag      dragState
	lastHover time.Time
	resize    *resizeCtl
	released  bool
}

func initialBounds(size geom.Vec2) geom.Bounds {
	return geom.FromPosSize(geom.V(100, 100), size)
}

func (w *Window) ID() string                { return w.conf.ID }
func (w *Window) Name() string              { return w.conf.Name }
func (w *Window) Config() Config            { return w.conf }
func (w *Window) UserData() any             { return w.userData }
func (w *Window) Handle() core.WindowHandle { return w.handle }
func (w *Window) System() *System           { return w.sys }

func (w *Window) Visible() bool   { return w.handle.Visible() }
func (w *Window) PoppedOut() bool { return w.handle.PoppedOut() }

// Bounds returns the live floating geometry.
func (w *Window) Bounds() geom.Bounds { return w.handle.Geometry() }

// Size returns the live size.
func (w *Window) Size() geom.Vec2 { return w.handle.Geometry().Size() }

func (w *Window) DeskToWin(p geom.Vec2) geom.Vec2 { return geom.DeskToWin(w.handle.Geometry(), p) }
func (w *Window) WinToDesk(p geom.Vec2) geom.Vec2 { return geom.WinToDesk(w.handle.Geometry(), p) }

// Show makes the window visible, bringing it back from pop-out and onto the
// screen if it drifted off.
func (w *Window) Show() {
	if w.handle.PoppedOut() {
		w.handle.SetPositioningMode(core.PositionFree, 0)
	}
	w.handle.SetVisible(true)
	if w.conf.Key != nil {
		w.sys.host.TakeKeyboardFocus(w.handle)
	}
	if w.handle.PoppedOut() {
		return
	}
	if w.offscreen() {
		w.centerOnMouse()
	}
}

func (w *Window) Hide() {
	w.handle.SetVisible(false)
	if w.handle.HasKeyboardFocus() {
		w.sys.host.TakeKeyboardFocus(nil)
	}
}

func (w *Window) Toggle() {
	if w.Visible() {
		w.Hide()
	} else {
		w.Show()
	}
}

// PopOut detaches the window into its own OS window.
func (w *Window) PopOut() {
	w.handle.SetPositioningMode(core.PositionPopOut, -1)
}

func (w *Window) offscreen() bool {
	sw, sh := w.sys.host.ScreenSize()
	b := w.handle.Geometry()
	return b.Left > sw-OffscreenMargin || b.Right < OffscreenMargin ||
		b.Top > sh-OffscreenMargin || b.Bottom < OffscreenMargin
}

func (w *Window) centerOnMouse() {
	x, y := w.sys.host.MouseLocation()
	b := w.handle.Geometry()
	width, height := b.Width(), b.Height()
	left := x - int(math.Round(float64(width)/2))
	top := y + int(math.Round(float64(height)/2))
	w.handle.SetGeometry(geom.Bounds{Left: left, Top: top, Right: left + width, Bottom: top - height})
}

// inSim reports whether the window is presented inside the simulator screen,
// as opposed to popped out or in VR.
func (w *Window) inSim() bool {
	return !w.handle.PoppedOut() && !w.handle.InVR()
}

func (w *Window) release() {
	if w.released {
		panic("window: double release of " + w.conf.ID)
	}
	w.UnbindCommand()
	w.sys.host.DestroyWindow(w.handle)
	w.released = true
}

// BindCommand attaches an existing host command that toggles the window.
func (w *Window) BindCommand(name string) core.Command {
	return w.BindCommandRef(w.sys.host.FindCommand(name))
}

// BindNewCommand creates a host command that toggles the window.
func (w *Window) BindNewCommand(name, desc string) core.Command {
	return w.BindCommandRef(w.sys.host.CreateCommand(name, desc))
}

// BindCommandRef attaches cmd as the window's toggle command. A nil command
// leaves the window unbound.
func (w *Window) BindCommandRef(cmd core.Command) core.Command {
	w.UnbindCommand()
	if cmd == nil {
		return nil
	}
	w.cmd = cmd
	w.unbindCmd = w.sys.host.RegisterCommandHandler(cmd, func(_ core.Command, phase core.CommandPhase) bool {
		if phase == core.CommandBegin {
			w.Toggle()
		}
		return true
	})
	return cmd
}

func (w *Window) UnbindCommand() {
	if w.unbindCmd != nil {
		w.unbindCmd()
	}
	w.cmd = nil
	w.unbindCmd = nil
}

// Command returns the bound toggle command, if any.
func (w *Window) Command() core.Command { return w.cmd }
