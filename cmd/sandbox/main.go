package main

import (
	"flag"
	"log"
	"os"
	"unicode"

	"github.com/hubastard/xpanel/engine/capture"
	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
	glbackend "github.com/hubastard/xpanel/engine/gfx/gl"
	"github.com/hubastard/xpanel/engine/platform"
	"github.com/hubastard/xpanel/engine/window"
)

var _ core.CaptureApp = (*App)(nil)

type App struct {
	cfg *Config

	glfw     *platform.GLFWWindow
	renderer *glbackend.RendererGL
	desktop  *platform.Desktop
	sys      *window.System
	pipe     *capture.Pipeline
	panel    *Panel
	scratch  *Scratchpad
	keys     map[rune]string
	t        float64
}

func (a *App) OnStart(e *core.Engine) {
	w, h := a.glfw.WindowSize()
	a.desktop = platform.NewDesktop(w, h, a.glfw)
	a.renderer.SetScreenSize(w, h)

	if err := os.MkdirAll(a.cfg.Output, 0o755); err != nil {
		log.Fatalf("output dir: %v", err)
	}

	a.sys = window.NewSystem(a.desktop, a.renderer)
	if err := a.sys.Init(a.cfg.Assets, a.cfg.Output); err != nil {
		log.Fatalf("window system: %v", err)
	}

	var err error
	a.panel, err = NewPanel(a.renderer, geom.Vec2(a.cfg.Capture), a.cfg.Windows)
	if err != nil {
		log.Fatal(err)
	}

	a.pipe = capture.New(a.renderer, a.sys, geom.Vec2(a.cfg.Capture))
	for _, wc := range a.cfg.Windows {
		win := a.pipe.AddWindow(wc.Name, wc.ID, geom.Vec2(wc.Pos), geom.Vec2(wc.Size))
		if wc.Command != "" {
			win.BindNewCommand(wc.Command, "Toggle "+wc.Name)
		}
	}
	if a.cfg.Scratchpad {
		a.scratch = NewScratchpad(a.sys, a.renderer)
	}
	a.keys = a.cfg.KeyCommands()

	a.sys.Restore()
	log.Printf("%d windows, layout in %s", a.sys.Len(), a.sys.LayoutPath())
}

func (a *App) OnUpdate(e *core.Engine, dt float64) { a.t += dt }

func (a *App) OnRender(e *core.Engine, alpha float64) { a.panel.Draw(a.renderer, a.t) }

func (a *App) OnCapture(e *core.Engine) error { return a.pipe.Refresh() }

func (a *App) OnOverlay(e *core.Engine) { a.desktop.DrawWindows() }

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	switch ev := ev.(type) {
	case core.EventCloseRequested:
		e.Window.RequestClose()
		return
	case core.EventResize:
		w, h := a.glfw.WindowSize()
		a.desktop.SetScreenSize(w, h)
		a.renderer.SetScreenSize(w, h)
		return
	}

	if a.desktop.HandleEvent(ev) {
		return
	}
	key, ok := ev.(core.EventKey)
	if !ok {
		return
	}

	if name, ok := a.keys[unicode.ToLower(key.Rune)]; ok {
		phase := core.CommandEnd
		if key.Down {
			phase = core.CommandBegin
		}
		a.desktop.RunCommand(name, phase)
		return
	}
	if !key.Down {
		return
	}
	switch key.Key {
	case core.VKeyEscape:
		e.Window.RequestClose()
	case core.VKeyV:
		vr := !a.desktop.VREnabled()
		a.desktop.SetVR(vr)
		if vr {
			a.sys.SwitchToVR()
		} else {
			a.sys.SwitchTo2D()
		}
		log.Printf("VR %v", vr)
	case core.VKeyS:
		a.sys.Save()
	case core.VKeyP:
		for _, w := range a.sys.Windows() {
			if w.Visible() && !w.PoppedOut() {
				w.PopOut()
			}
		}
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	a.sys.Save()
	a.pipe.Destroy()
	a.panel.Free(a.renderer)
	a.sys.Teardown()
}

func main() {
	configPath := flag.String("config", "sandbox.yaml", "sandbox configuration file")
	flag.Parse()

	conf, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := core.Config{
		Title:      conf.Display.Title,
		Width:      conf.Display.Width,
		Height:     conf.Display.Height,
		VSync:      conf.Display.VSync,
		ClearColor: colors.DarkGray,
	}
	app := &App{cfg: conf}

	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg)
		if err != nil {
			return nil, err
		}
		app.glfw = w
		return w, nil
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		r, err := glbackend.NewRendererGL(win, cfg)
		if err != nil {
			return nil, err
		}
		app.renderer = r
		return r, nil
	}

	if err := core.Run(app, cfg, newWindow, newRenderer); err != nil {
		log.Fatal(err)
	}
	app.glfw.Destroy()
}
