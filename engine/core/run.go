package core

import (
	"log"
	"runtime"
	"time"
)

const (
	// Tick is the fixed update step.
	Tick = time.Second / 60
	// maxCatchUp bounds the updates run in one frame after a stall.
	maxCatchUp = 10
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		if _, ok := ev.(EventResize); ok {
			if fw, fh := win.FramebufferSize(); fw > 0 && fh > 0 {
				rend.Resize(fw, fh)
			}
		}
	})

	app.OnStart(eng)

	var (
		pending time.Duration
		prev    = time.Now()
	)
	for !win.ShouldClose() {
		now := time.Now()
		pending += now.Sub(prev)
		prev = now

		win.PollEvents()

		var steps int
		steps, pending = fixedSteps(pending)
		for range steps {
			app.OnUpdate(eng, Tick.Seconds())
		}

		if err := renderFrame(app, eng, cfg.ClearColor, float64(pending)/float64(Tick)); err != nil {
			log.Printf("capture: %v", err)
		}
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	log.Println("Engine exit")
	return nil
}

// fixedSteps splits the time owed to the simulation into whole ticks. Time
// beyond maxCatchUp ticks is carried over, not dropped.
func fixedSteps(pending time.Duration) (int, time.Duration) {
	steps := min(int(pending/Tick), maxCatchUp)
	return steps, pending - time.Duration(steps)*Tick
}

// renderFrame draws one frame: clear, the app's scene, then for a
// CaptureApp the capture and the window overlay. The overlay is drawn even
// when the capture fails.
func renderFrame(app App, e *Engine, clear [4]float32, alpha float64) error {
	e.Renderer.Clear(clear[0], clear[1], clear[2], clear[3])
	app.OnRender(e, alpha)

	ca, ok := app.(CaptureApp)
	if !ok {
		return nil
	}
	err := ca.OnCapture(e)
	ca.OnOverlay(e)
	return err
}
