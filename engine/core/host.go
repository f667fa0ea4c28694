package core

import (
	"image"

	"github.com/hubastard/xpanel/engine/geom"
)

// PositioningMode selects how the host presents a window.
type PositioningMode int

const (
	PositionFree   PositioningMode = iota // floating inside the simulator screen
	PositionPopOut                        // detached into its own OS window
	PositionVR                            // rendered in the headset view
)

func (m PositioningMode) String() string {
	switch m {
	case PositionFree:
		return "free"
	case PositionPopOut:
		return "popout"
	case PositionVR:
		return "vr"
	}
	return "unknown"
}

// Decoration selects the frame the host draws around a window.
type Decoration int

const (
	DecorationNone Decoration = iota
	DecorationRoundRectangle
	DecorationSelfDecoratedResizable
)

type MouseStatus int

const (
	MouseDown MouseStatus = iota
	MouseDrag
	MouseUp
)

type CursorStatus int

const (
	CursorDefault CursorStatus = iota
	CursorHidden
	CursorArrow
	CursorCustom
)

type KeyFlags int

const (
	ShiftFlag KeyFlags = 1 << iota
	OptionAltFlag
	ControlFlag
	DownFlag
	UpFlag
)

// VirtualKey is a layout-independent key code.
type VirtualKey int

const (
	VKeyUnknown VirtualKey = iota
	VKeyEscape
	VKeyReturn
	VKeyBack
	VKeyTab
	VKeySpace
	VKeyLeft
	VKeyRight
	VKeyUp
	VKeyDown
	VKeyP
	VKeyS
	VKeyV
)

// WindowHandler receives the host callbacks for one window. All calls happen
// on the render thread. Boolean results report whether the event was consumed.
type WindowHandler interface {
	Draw()
	Click(x, y int, status MouseStatus) bool
	RightClick(x, y int, status MouseStatus) bool
	Wheel(x, y, wheel, clicks int) bool
	Cursor(x, y int) CursorStatus
	Key(key rune, flags KeyFlags, vkey VirtualKey, losingFocus bool)
}

// WindowParams describes a window to create.
type WindowParams struct {
	Bounds     geom.Bounds
	Visible    bool
	Decoration Decoration
	Handler    WindowHandler
}

// WindowHandle is the host's window object. Geometry calls use desktop space
// (bottom-left origin). The OS variants address a popped-out window's
// operating system frame.
type WindowHandle interface {
	Geometry() geom.Bounds
	SetGeometry(b geom.Bounds)
	GeometryOS() geom.Bounds
	SetGeometryOS(b geom.Bounds)
	Visible() bool
	SetVisible(v bool)
	SetPositioningMode(mode PositioningMode, monitor int)
	HasKeyboardFocus() bool
	InFront() bool
	PoppedOut() bool
	InVR() bool
	SetResizingLimits(minW, minH, maxW, maxH int)
	SetTitle(title string)
}

// Cursor is an opaque host cursor.
type Cursor interface{}

// Command is a host command that can be bound to a key or button.
type Command interface {
	Name() string
}

type CommandPhase int

const (
	CommandBegin CommandPhase = iota
	CommandContinue
	CommandEnd
)

// CommandHandler reports whether later handlers should still run.
type CommandHandler func(cmd Command, phase CommandPhase) bool

// Host is the simulator windowing API.
type Host interface {
	CreateWindow(p WindowParams) WindowHandle
	DestroyWindow(h WindowHandle)
	ScreenSize() (w, h int)
	MouseLocation() (x, y int)
	VREnabled() bool
	// TakeKeyboardFocus gives focus to h; nil returns it to the simulator.
	TakeKeyboardFocus(h WindowHandle)
	NewCursor(img *image.RGBA) (Cursor, error)
	FreeCursor(c Cursor)
	SetCursor(c Cursor)
	FindCommand(name string) Command
	CreateCommand(name, desc string) Command
	// RegisterCommandHandler installs h and returns a func removing it.
	RegisterCommandHandler(cmd Command, h CommandHandler) (unregister func())
}
