// Package platform provides the OS window and an emulated simulator desktop
// that hosts floating panel windows inside it.
package platform

import (
	"image"
	"log"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/hubastard/xpanel/engine/core"
)

// GLFWWindow implements core.Window and CursorDriver and pushes events to
// the app via a handler.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(core.Event)
}

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		return nil, err
	}
	log.Printf("GL: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &GLFWWindow{w: win}

	// Callbacks -> translate to core.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(core.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(core.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		var button int
		switch b {
		case glfw.MouseButtonLeft:
			button = 0
		case glfw.MouseButtonRight:
			button = 1
		default:
			return
		}
		gw.emit(core.EventMouseButton{Button: button, Down: action == glfw.Press, Mods: translateMods(mods)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		r := keyRune(key, mods)
		if k == core.VKeyUnknown && r == 0 {
			return
		}
		gw.emit(core.EventKey{Key: k, Rune: r, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                          { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                    { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

// WindowSize returns the size in screen coordinates, the unit of mouse
// events.
func (g *GLFWWindow) WindowSize() (int, int) { return g.w.GetSize() }

// Destroy closes the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// CursorDriver impl

func (g *GLFWWindow) NewCursor(img *image.RGBA) (core.Cursor, error) {
	b := img.Bounds()
	c := glfw.CreateCursor(img, b.Dx()/2, b.Dy()/2)
	return c, nil
}

func (g *GLFWWindow) FreeCursor(c core.Cursor) {
	if gc, ok := c.(*glfw.Cursor); ok && gc != nil {
		gc.Destroy()
	}
}

func (g *GLFWWindow) SetCursor(c core.Cursor) {
	gc, _ := c.(*glfw.Cursor)
	g.w.SetCursor(gc)
}

var keyMap = map[glfw.Key]core.VirtualKey{
	glfw.KeyEscape:    core.VKeyEscape,
	glfw.KeyEnter:     core.VKeyReturn,
	glfw.KeyBackspace: core.VKeyBack,
	glfw.KeyTab:       core.VKeyTab,
	glfw.KeySpace:     core.VKeySpace,
	glfw.KeyLeft:      core.VKeyLeft,
	glfw.KeyRight:     core.VKeyRight,
	glfw.KeyUp:        core.VKeyUp,
	glfw.KeyDown:      core.VKeyDown,
	glfw.KeyP:         core.VKeyP,
	glfw.KeyS:         core.VKeyS,
	glfw.KeyV:         core.VKeyV,
}

func translateKey(k glfw.Key) core.VirtualKey {
	if v, ok := keyMap[k]; ok {
		return v
	}
	return core.VKeyUnknown
}

// keyRune returns the character a US layout produces for k, or 0.
func keyRune(k glfw.Key, mods glfw.ModifierKey) rune {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		if mods&glfw.ModShift != 0 {
			return 'A' + rune(k-glfw.KeyA)
		}
		return 'a' + rune(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return '0' + rune(k-glfw.Key0)
	case k == glfw.KeySpace:
		return ' '
	case k == glfw.KeyPeriod:
		return '.'
	case k == glfw.KeySlash:
		return '/'
	case k == glfw.KeyMinus:
		return '-'
	case k == glfw.KeyEnter:
		return '\r'
	case k == glfw.KeyBackspace:
		return '\b'
	}
	return 0
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}

var (
	_ core.Window  = (*GLFWWindow)(nil)
	_ CursorDriver = (*GLFWWindow)(nil)
	_ core.Host    = (*Desktop)(nil)
)
