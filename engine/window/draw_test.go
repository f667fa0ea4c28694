package window

import (
	"math"
	"testing"
	"time"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

func TestDrawHiddenWindow(t *testing.T) {
	f := newFixture(t)
	called := false
	_, h := f.window(t, Config{Name: "pfd", Draw: func(*Window, geom.Vec2, geom.Vec2) { called = true }})
	h.Handler().Draw()
	if called || len(f.painter.Boxes)+len(f.painter.Pictures)+len(f.painter.Strings) != 0 {
		t.Error("hidden window drew something")
	}
}

func TestDrawContentAndTitle(t *testing.T) {
	f := newFixture(t)
	var gotPos, gotSize geom.Vec2
	w, h := f.window(t, Config{Name: "PFD", Draw: func(_ *Window, pos, size geom.Vec2) {
		gotPos, gotSize = pos, size
	}})
	w.Show()
	f.advance(HoverDelay)
	h.Handler().Draw()

	if gotPos != geom.V(100, 100) || gotSize != geom.V(400, 300) {
		t.Errorf("content drawn at %v size %v", gotPos, gotSize)
	}
	if len(f.painter.Pictures) != 0 {
		t.Errorf("chrome drawn without hover: %+v", f.painter.Pictures)
	}

	wantBox := geom.Bounds{Left: 286, Top: 95, Right: 314, Bottom: 80}
	if len(f.painter.Boxes) != 1 || f.painter.Boxes[0] != wantBox {
		t.Errorf("title boxes = %+v, want %+v", f.painter.Boxes, wantBox)
	}
	if len(f.painter.Strings) != 1 {
		t.Fatalf("strings = %+v", f.painter.Strings)
	}
	s := f.painter.Strings[0]
	if s.Text != "PFD" || s.Pos != geom.V(291, 85) || s.Color != colors.Title {
		t.Errorf("title = %+v", s)
	}
}

func TestDrawChromeOnHover(t *testing.T) {
	f := newFixture(t)
	w, h := f.window(t, Config{Name: "pfd"})
	w.Show()
	h.Handler().Cursor(200, 200)
	f.advance(HoverDelay / 2)
	h.Handler().Draw()

	pics := f.painter.Pictures
	if len(pics) != 4 {
		t.Fatalf("pictures = %+v", pics)
	}
	want := []struct {
		pos, size geom.Vec2
		alpha     float32
	}{
		{geom.V(100, 368), geom.V(32, 32), 0.8},
		{geom.V(468, 368), geom.V(32, 32), 0.8},
		{geom.V(100, 100), geom.V(24, 24), 0.5},
		{geom.V(476, 100), geom.V(24, 24), 0.5},
	}
	for i, wp := range want {
		if pics[i].Pos != wp.pos || pics[i].Size != wp.size || pics[i].Alpha != wp.alpha {
			t.Errorf("picture %d = %+v, want %+v", i, pics[i], wp)
		}
	}
}

func TestDrawNoChromeOutsideSim(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		setup func(*Window)
	}{
		{"decorated", Config{Name: "pfd", Decorated: true}, func(*Window) {}},
		{"popped out", Config{Name: "pfd"}, func(w *Window) { w.PopOut() }},
		{"vr", Config{Name: "pfd"}, func(w *Window) { w.Handle().SetPositioningMode(core.PositionVR, 0) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			w, h := f.window(t, tt.cfg)
			h.Vis = true
			tt.setup(w)
			h.Handler().Cursor(200, 200)
			h.Handler().Draw()
			if n := len(f.painter.Pictures) + len(f.painter.Boxes) + len(f.painter.Strings); n != 0 {
				t.Errorf("%d chrome draws", n)
			}
		})
	}
}

func TestDrawKeyboardIndicator(t *testing.T) {
	f := newFixture(t)
	w, h := f.window(t, Config{Name: "mcdu", Key: func(*Window, core.VirtualKey, rune, bool) {}})
	w.Show()
	pulse := math.Pi / 10 * float64(time.Second)
	f.advance(HoverDelay + time.Duration(pulse))
	h.Handler().Draw()

	if len(f.painter.Pictures) != 1 {
		t.Fatalf("pictures = %+v", f.painter.Pictures)
	}
	p := f.painter.Pictures[0]
	if p.Pos != geom.V(132, 368) || p.Size != geom.V(KeyboardWidth, KeyboardHeight) {
		t.Errorf("keyboard icon at %v size %v", p.Pos, p.Size)
	}
	if math.Abs(float64(p.Alpha)-0.5-0.5*math.Sin(5*(HoverDelay.Seconds()+math.Pi/10))) > 1e-3 {
		t.Errorf("alpha = %v", p.Alpha)
	}

	f.painter.Reset()
	w.Hide()
	w.Show()
	f.host.TakeKeyboardFocus(nil)
	h.Handler().Draw()
	if len(f.painter.Pictures) != 0 {
		t.Error("keyboard icon drawn without focus")
	}
}
