package platform

import (
	"image"
	"log"
	"slices"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// BorderWidth is how close to a window edge a click must land for the
// desktop to start a resize when the window does not consume it.
const BorderWidth = 12

// CursorDriver creates and installs OS cursors. SetCursor(nil) restores the
// default arrow.
type CursorDriver interface {
	NewCursor(img *image.RGBA) (core.Cursor, error)
	FreeCursor(c core.Cursor)
	SetCursor(c core.Cursor)
}

// Desktop emulates the simulator's window layer inside one OS window. It
// owns a stack of floating windows, routes input to them and implements
// core.Host.
type Desktop struct {
	width, height int
	windows       []*Window // back to front
	focus         *Window
	mouse         [2]int
	vr            bool
	grab          *grab

	cursors  CursorDriver
	commands map[string]*Command
	log      *log.Logger
}

// grab routes mouse drags and the final release to the window that
// received the mouse-down.
type grab struct {
	win    *Window
	resize bool
	move   bool
	edges  edges
	last   geom.Vec2
}

type edges struct{ left, right, top, bottom bool }

func (e edges) any() bool { return e.left || e.right || e.top || e.bottom }

func NewDesktop(width, height int, cursors CursorDriver) *Desktop {
	return &Desktop{
		width:    width,
		height:   height,
		cursors:  cursors,
		commands: map[string]*Command{},
		log:      log.Default(),
	}
}

func (d *Desktop) SetLogger(l *log.Logger) { d.log = l }

func (d *Desktop) SetScreenSize(w, h int) { d.width, d.height = w, h }

// SetVR turns the emulated headset on or off.
func (d *Desktop) SetVR(on bool) { d.vr = on }

// Windows returns the live windows from back to front.
func (d *Desktop) Windows() []*Window { return slices.Clone(d.windows) }

// Focus returns the window holding keyboard focus, if any.
func (d *Desktop) Focus() *Window { return d.focus }

// Frontmost returns the topmost window shown on the desktop.
func (d *Desktop) Frontmost() *Window {
	for i := len(d.windows) - 1; i >= 0; i-- {
		if w := d.windows[i]; w.onDesktop() {
			return w
		}
	}
	return nil
}

// WindowAt returns the topmost desktop window containing p.
func (d *Desktop) WindowAt(p geom.Vec2) *Window {
	for i := len(d.windows) - 1; i >= 0; i-- {
		if w := d.windows[i]; w.onDesktop() && w.bounds.Contains(p) {
			return w
		}
	}
	return nil
}

func (d *Desktop) raise(w *Window) {
	i := slices.Index(d.windows, w)
	if i < 0 || i == len(d.windows)-1 {
		return
	}
	d.windows = append(slices.Delete(d.windows, i, i+1), w)
}

// DrawWindows runs the draw callback of every visible window, back to front.
func (d *Desktop) DrawWindows() {
	for _, w := range slices.Clone(d.windows) {
		if w.visible && !w.destroyed {
			w.handler.Draw()
		}
	}
}

// ---- core.Host ----

func (d *Desktop) CreateWindow(p core.WindowParams) core.WindowHandle {
	w := &Window{
		desk:       d,
		bounds:     p.Bounds,
		osBounds:   p.Bounds,
		visible:    p.Visible,
		decoration: p.Decoration,
		handler:    p.Handler,
	}
	d.windows = append(d.windows, w)
	return w
}

func (d *Desktop) DestroyWindow(h core.WindowHandle) {
	w := h.(*Window)
	w.destroyed = true
	d.windows = slices.DeleteFunc(d.windows, func(o *Window) bool { return o == w })
	if d.focus == w {
		d.focus = nil
	}
	if d.grab != nil && d.grab.win == w {
		d.grab = nil
	}
}

func (d *Desktop) ScreenSize() (int, int)    { return d.width, d.height }
func (d *Desktop) MouseLocation() (int, int) { return d.mouse[0], d.mouse[1] }
func (d *Desktop) VREnabled() bool           { return d.vr }

func (d *Desktop) TakeKeyboardFocus(h core.WindowHandle) {
	var w *Window
	if h != nil {
		w = h.(*Window)
	}
	if d.focus == w {
		return
	}
	if prev := d.focus; prev != nil {
		d.focus = nil
		prev.handler.Key(0, 0, core.VKeyUnknown, true)
	}
	d.focus = w
}

func (d *Desktop) NewCursor(img *image.RGBA) (core.Cursor, error) {
	return d.cursors.NewCursor(img)
}

func (d *Desktop) FreeCursor(c core.Cursor) { d.cursors.FreeCursor(c) }
func (d *Desktop) SetCursor(c core.Cursor)  { d.cursors.SetCursor(c) }

func (d *Desktop) FindCommand(name string) core.Command {
	if c, ok := d.commands[name]; ok {
		return c
	}
	return nil
}

func (d *Desktop) CreateCommand(name, desc string) core.Command {
	if c, ok := d.commands[name]; ok {
		return c
	}
	c := &Command{name: name, desc: desc}
	d.commands[name] = c
	return c
}

func (d *Desktop) RegisterCommandHandler(cmd core.Command, h core.CommandHandler) func() {
	c := cmd.(*Command)
	c.nextID++
	id := c.nextID
	c.handlers = append(c.handlers, commandHandler{id: id, fn: h})
	return func() {
		c.handlers = slices.DeleteFunc(c.handlers, func(ch commandHandler) bool { return ch.id == id })
	}
}

// RunCommand delivers phase to the handlers of the named command. It
// reports whether the command exists.
func (d *Desktop) RunCommand(name string, phase core.CommandPhase) bool {
	c, ok := d.commands[name]
	if !ok {
		return false
	}
	c.run(phase)
	return true
}

// ---- input ----

func (d *Desktop) toDesktop(x, y float64) geom.Vec2 {
	return geom.V(x, float64(d.height)-y)
}

// HandleEvent routes a platform event to the windows. It reports whether a
// window consumed it.
func (d *Desktop) HandleEvent(ev core.Event) bool {
	switch e := ev.(type) {
	case core.EventMouseMove:
		p := d.toDesktop(e.X, e.Y)
		d.mouse = [2]int{int(p.X), int(p.Y)}
		return d.mouseMoved(p)

	case core.EventMouseButton:
		p := geom.V(float64(d.mouse[0]), float64(d.mouse[1]))
		switch {
		case e.Button == 0 && e.Down:
			return d.mouseDown(p)
		case e.Button == 0:
			return d.mouseUp(p)
		}
		w := d.WindowAt(p)
		if w == nil {
			return false
		}
		status := core.MouseUp
		if e.Down {
			status = core.MouseDown
		}
		return w.handler.RightClick(d.mouse[0], d.mouse[1], status)

	case core.EventScroll:
		w := d.WindowAt(geom.V(float64(d.mouse[0]), float64(d.mouse[1])))
		if w == nil || e.Yoff == 0 {
			return false
		}
		return w.handler.Wheel(d.mouse[0], d.mouse[1], 0, int(e.Yoff))

	case core.EventKey:
		if d.focus == nil {
			return false
		}
		flags := core.UpFlag
		if e.Down {
			flags = core.DownFlag
		}
		if e.Mods&core.ModShift != 0 {
			flags |= core.ShiftFlag
		}
		if e.Mods&core.ModCtrl != 0 {
			flags |= core.ControlFlag
		}
		if e.Mods&core.ModAlt != 0 {
			flags |= core.OptionAltFlag
		}
		d.focus.handler.Key(e.Rune, flags, e.Key, false)
		return true
	}
	return false
}

func (d *Desktop) mouseDown(p geom.Vec2) bool {
	d.grab = nil
	w := d.WindowAt(p)
	if w == nil {
		d.TakeKeyboardFocus(nil)
		return false
	}
	d.raise(w)

	x, y := int(p.X), int(p.Y)
	if w.handler.Click(x, y, core.MouseDown) {
		d.grab = &grab{win: w, last: p}
		return true
	}
	if e := w.borderAt(p); e.any() && w.decoration != core.DecorationNone {
		d.grab = &grab{win: w, resize: true, edges: e, last: p}
		return true
	}
	// A popped-out window is moved by its OS frame.
	if w.PoppedOut() {
		d.grab = &grab{win: w, move: true, last: p}
		return true
	}
	return false
}

func (d *Desktop) mouseMoved(p geom.Vec2) bool {
	g := d.grab
	if g == nil {
		if w := d.WindowAt(p); w != nil {
			if w.handler.Cursor(int(p.X), int(p.Y)) != core.CursorCustom {
				d.cursors.SetCursor(nil)
			}
			return true
		}
		d.cursors.SetCursor(nil)
		return false
	}
	if g.resize || g.move {
		delta := p.Sub(g.last)
		g.last = p
		e := g.edges
		if g.move {
			e = edges{left: true, right: true, top: true, bottom: true}
		}
		g.win.resizeBy(e, int(delta.X), int(delta.Y))
		return true
	}
	return g.win.handler.Click(int(p.X), int(p.Y), core.MouseDrag)
}

func (d *Desktop) mouseUp(p geom.Vec2) bool {
	g := d.grab
	d.grab = nil
	if g == nil {
		return false
	}
	if g.resize || g.move {
		return true
	}
	return g.win.handler.Click(int(p.X), int(p.Y), core.MouseUp)
}
