// Package coretest provides in-memory implementations of the core host
// contracts for tests.
package coretest

import (
	"image"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// Handle is a recorded host window.
type Handle struct {
	host *Host

	Params     core.WindowParams
	Bounds     geom.Bounds
	OSBounds   geom.Bounds
	Vis        bool
	Mode       core.PositioningMode
	ModeCalls  []core.PositioningMode
	Front      bool
	Limits     [4]int
	Title      string
	Destroyed  bool
	SetGeomLog []geom.Bounds
}

func (h *Handle) Geometry() geom.Bounds { return h.Bounds }
func (h *Handle) SetGeometry(b geom.Bounds) {
	h.Bounds = b
	h.SetGeomLog = append(h.SetGeomLog, b)
}
func (h *Handle) GeometryOS() geom.Bounds     { return h.OSBounds }
func (h *Handle) SetGeometryOS(b geom.Bounds) { h.OSBounds = b }
func (h *Handle) Visible() bool               { return h.Vis }
func (h *Handle) SetVisible(v bool)           { h.Vis = v }
func (h *Handle) SetPositioningMode(mode core.PositioningMode, _ int) {
	if mode == core.PositionPopOut && h.Mode != core.PositionPopOut {
		h.OSBounds = h.Bounds
	}
	h.Mode = mode
	h.ModeCalls = append(h.ModeCalls, mode)
}
func (h *Handle) HasKeyboardFocus() bool { return h.host.Focus == h }
func (h *Handle) InFront() bool          { return h.Front }
func (h *Handle) PoppedOut() bool        { return h.Mode == core.PositionPopOut }
func (h *Handle) InVR() bool             { return h.Mode == core.PositionVR }
func (h *Handle) SetResizingLimits(minW, minH, maxW, maxH int) {
	h.Limits = [4]int{minW, minH, maxW, maxH}
}
func (h *Handle) SetTitle(title string) { h.Title = title }

// Handler returns the window's host callbacks.
func (h *Handle) Handler() core.WindowHandler { return h.Params.Handler }

// Command is a recorded host command.
type Command struct {
	name     string
	Desc     string
	Handlers map[int]core.CommandHandler
	nextID   int
}

func (c *Command) Name() string { return c.name }

// Run invokes every installed handler with phase.
func (c *Command) Run(phase core.CommandPhase) {
	for _, h := range c.Handlers {
		h(c, phase)
	}
}

// Host is an in-memory core.Host.
type Host struct {
	Windows       []*Handle
	Screen        [2]int
	Mouse         [2]int
	VR            bool
	Focus         *Handle
	FocusCalls    int
	Cursors       []*image.RGBA
	FreedCursors  int
	CurrentCursor core.Cursor
	CursorErr     error
	Commands      map[string]*Command
}

func NewHost() *Host {
	return &Host{Screen: [2]int{1920, 1080}, Commands: map[string]*Command{}}
}

func (h *Host) CreateWindow(p core.WindowParams) core.WindowHandle {
	w := &Handle{host: h, Params: p, Bounds: p.Bounds, Vis: p.Visible, Front: true}
	h.Windows = append(h.Windows, w)
	return w
}

func (h *Host) DestroyWindow(w core.WindowHandle) {
	fh := w.(*Handle)
	fh.Destroyed = true
	if h.Focus == fh {
		h.Focus = nil
	}
}

// Live returns the windows that have not been destroyed.
func (h *Host) Live() []*Handle {
	var out []*Handle
	for _, w := range h.Windows {
		if !w.Destroyed {
			out = append(out, w)
		}
	}
	return out
}

func (h *Host) ScreenSize() (int, int)    { return h.Screen[0], h.Screen[1] }
func (h *Host) MouseLocation() (int, int) { return h.Mouse[0], h.Mouse[1] }
func (h *Host) VREnabled() bool           { return h.VR }

func (h *Host) TakeKeyboardFocus(w core.WindowHandle) {
	h.FocusCalls++
	if w == nil {
		h.Focus = nil
		return
	}
	h.Focus = w.(*Handle)
}

func (h *Host) NewCursor(img *image.RGBA) (core.Cursor, error) {
	if h.CursorErr != nil {
		return nil, h.CursorErr
	}
	h.Cursors = append(h.Cursors, img)
	return img, nil
}

func (h *Host) FreeCursor(core.Cursor)  { h.FreedCursors++ }
func (h *Host) SetCursor(c core.Cursor) { h.CurrentCursor = c }

func (h *Host) FindCommand(name string) core.Command {
	if c, ok := h.Commands[name]; ok {
		return c
	}
	return nil
}

func (h *Host) CreateCommand(name, desc string) core.Command {
	if c, ok := h.Commands[name]; ok {
		return c
	}
	c := &Command{name: name, Desc: desc, Handlers: map[int]core.CommandHandler{}}
	h.Commands[name] = c
	return c
}

func (h *Host) RegisterCommandHandler(cmd core.Command, fn core.CommandHandler) func() {
	c := cmd.(*Command)
	id := c.nextID
	c.nextID++
	c.Handlers[id] = fn
	return func() { delete(c.Handlers, id) }
}
