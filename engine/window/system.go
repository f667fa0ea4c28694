// Package window manages floating, host-embedded panel windows: lifecycle,
// the per-window mouse and keyboard interaction state machine, custom chrome,
// aspect-constrained resizing, and layout persistence.
package window

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/hubastard/xpanel/engine/assets"
	"github.com/hubastard/xpanel/engine/conf"
	"github.com/hubastard/xpanel/engine/core"
)

type chrome struct {
	close, popOut, resizeL, resizeR, keyboard core.Picture
}

// System is the window registry. One is normally created per process and
// passed to everything that creates windows.
type System struct {
	host    core.Host
	painter core.Painter
	log     *log.Logger
	now     func() time.Time
	epoch   time.Time

	initialized bool
	outputDir   string
	windows     []*Window // sorted by id
	cursor      core.Cursor
	pics        chrome
}

func NewSystem(host core.Host, painter core.Painter) *System {
	if host == nil || painter == nil {
		panic("window: nil host or painter")
	}
	return &System{
		host:    host,
		painter: painter,
		log:     log.Default(),
		now:     time.Now,
	}
}

// SetLogger redirects the system's log output.
func (s *System) SetLogger(l *log.Logger) { s.log = l }

func (s *System) Host() core.Host { return s.host }

func (s *System) Initialized() bool { return s.initialized }

// OutputDir is where the layout file lives.
func (s *System) OutputDir() string { return s.outputDir }

// Init loads the chrome icons and the click cursor from assetsDir. Calling it
// again after success does nothing. A missing asset is returned as an error;
// the window system cannot run without them.
func (s *System) Init(assetsDir, outputDir string) error {
	if s.initialized {
		return nil
	}

	var loaded []core.Picture
	load := func(name string) (core.Picture, error) {
		img, err := assets.LoadImage(assetsDir, name)
		if err != nil {
			return core.Picture{}, fmt.Errorf("load chrome image: %w", err)
		}
		pic, err := s.painter.LoadPicture(img)
		if err != nil {
			return core.Picture{}, fmt.Errorf("upload %s: %w", name, err)
		}
		loaded = append(loaded, pic)
		return pic, nil
	}
	fail := func(err error) error {
		for _, p := range loaded {
			s.painter.FreePicture(p)
		}
		return err
	}

	var (
		pics chrome
		err  error
	)
	for _, slot := range []struct {
		dst  *core.Picture
		name string
	}{
		{&pics.close, assets.ImageClose},
		{&pics.popOut, assets.ImagePopOut},
		{&pics.resizeL, assets.ImageResizeL},
		{&pics.resizeR, assets.ImageResizeR},
		{&pics.keyboard, assets.ImageKeyboard},
	} {
		if *slot.dst, err = load(slot.name); err != nil {
			return fail(err)
		}
	}

	s.log.Printf("Cursor path: %s", assets.CursorPath(assetsDir))
	img, err := assets.LoadCursor(assetsDir)
	if err != nil {
		return fail(fmt.Errorf("load cursor: %w", err))
	}
	cursor, err := s.host.NewCursor(img)
	if err != nil {
		return fail(fmt.Errorf("create cursor: %w", err))
	}

	s.pics = pics
	s.cursor = cursor
	s.outputDir = outputDir
	s.windows = nil
	s.epoch = s.now()
	s.initialized = true
	return nil
}

// Teardown destroys every window and releases the chrome assets. It is safe
// to call more than once.
func (s *System) Teardown() {
	if !s.initialized {
		return
	}
	s.initialized = false

	windows := s.windows
	s.windows = nil
	for _, w := range windows {
		w.release()
	}

	for _, p := range []core.Picture{s.pics.close, s.pics.popOut, s.pics.resizeL, s.pics.resizeR, s.pics.keyboard} {
		s.painter.FreePicture(p)
	}
	s.pics = chrome{}
	s.host.FreeCursor(s.cursor)
	s.cursor = nil
	s.outputDir = ""
}

func (s *System) mustInit() {
	if !s.initialized {
		panic("window: system not initialized")
	}
}

// NewWindow creates a hidden window and registers it. It panics when the
// identifier is already taken.
func (s *System) NewWindow(cfg Config, userData any) *Window {
	s.mustInit()
	if cfg.Size.X <= 0 || cfg.Size.Y <= 0 {
		panic(fmt.Sprintf("window: invalid size %v for %q", cfg.Size, cfg.Name))
	}
	if cfg.ID == "" {
		cfg.ID = DeriveID(cfg.Name)
	}
	if err := conf.ValidKey(key(cfg.ID, "visible")); err != nil {
		panic(fmt.Sprintf("window: id %q cannot be saved: %v", cfg.ID, err))
	}
	idx, found := s.find(cfg.ID)
	if found {
		panic(fmt.Sprintf("window: duplicate id %q", cfg.ID))
	}

	w := &Window{sys: s, conf: cfg, userData: userData}
	if cfg.AspectConstrained {
		w.resize = newResizeCtl(cfg.Size)
	}

	decoration := core.DecorationSelfDecoratedResizable
	if cfg.Decorated {
		decoration = core.DecorationRoundRectangle
	}
	w.handle = s.host.CreateWindow(core.WindowParams{
		Bounds:     initialBounds(cfg.Size),
		Visible:    false,
		Decoration: decoration,
		Handler:    w,
	})

	w.handle.SetResizingLimits(
		int(cfg.Size.X*cfg.MinScale),
		int(cfg.Size.Y*cfg.MinScale),
		int(cfg.Size.X*cfg.MaxScale),
		int(cfg.Size.Y*cfg.MaxScale),
	)
	w.handle.SetTitle(cfg.Name)
	if s.host.VREnabled() {
		w.handle.SetPositioningMode(core.PositionVR, 0)
	}

	s.windows = slices.Insert(s.windows, idx, w)
	return w
}

// Destroy unregisters w and releases its host window. Destroying a window
// twice panics.
func (s *System) Destroy(w *Window) {
	if w == nil {
		panic("window: destroy of nil window")
	}
	idx, found := s.find(w.conf.ID)
	if !found || s.windows[idx] != w {
		panic(fmt.Sprintf("window: destroy of unregistered window %q", w.conf.ID))
	}
	s.windows = slices.Delete(s.windows, idx, idx+1)
	w.release()
}

// Windows returns the registered windows ordered by identifier.
func (s *System) Windows() []*Window { return slices.Clone(s.windows) }

func (s *System) Len() int { return len(s.windows) }

// Lookup finds a window by identifier.
func (s *System) Lookup(id string) (*Window, bool) {
	idx, found := s.find(id)
	if !found {
		return nil, false
	}
	return s.windows[idx], true
}

func (s *System) find(id string) (int, bool) {
	return slices.BinarySearchFunc(s.windows, id, func(w *Window, id string) int {
		return strings.Compare(w.conf.ID, id)
	})
}

// SwitchToVR moves every window into the headset view.
func (s *System) SwitchToVR() {
	if !s.initialized {
		return
	}
	for _, w := range s.windows {
		w.handle.SetPositioningMode(core.PositionVR, 0)
	}
}

// SwitchTo2D returns every window to floating desktop positioning.
func (s *System) SwitchTo2D() {
	if !s.initialized {
		return
	}
	for _, w := range s.windows {
		w.handle.SetPositioningMode(core.PositionFree, -1)
	}
}
