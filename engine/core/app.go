package core

import (
	"time"

	"github.com/hubastard/xpanel/engine/colors"
)

// App defines the application hooks driven by Run.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// CaptureApp is an App whose frame has a capture point. After OnRender
// draws the simulated panel, Run calls OnCapture to copy the frame out,
// then OnOverlay to draw the floating windows on top of it. Windows drawn
// in OnOverlay are never part of the captured image.
type CaptureApp interface {
	App
	OnCapture(e *Engine) error
	OnOverlay(e *Engine)
}

// Engine exposes core services to the App.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	start    time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction over the OS window that hosts the simulator screen.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer is the GPU backend: the rendering API used by the capture
// pipeline, the chrome painter, and frame housekeeping.
type Renderer interface {
	GPU
	Painter
	Resize(w, h int)
	Clear(r, g, b, a float32)
	Shutdown()
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor colors.Color
}
