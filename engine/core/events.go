package core

// Event model for the platform window.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

// EventKey carries a key transition. Rune is the produced character, if any.
type EventKey struct {
	Key  VirtualKey
	Rune rune
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

// EventMouseMove carries the cursor position in window coordinates with a
// top-left origin, as reported by the OS.
type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button int // 0 = left, 1 = right
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)
