package window

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/xpanel/engine/conf"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

func writeLayout(t *testing.T, f *fixture, body string) {
	t.Helper()
	if err := os.WriteFile(f.sys.LayoutPath(), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := newFixtureAt(t, dir)

	_, ha := src.window(t, Config{Name: "pfd"})
	ha.SetGeometry(geom.Bounds{Left: 10, Top: 500, Right: 410, Bottom: 200})
	ha.Vis = true

	_, hb := src.window(t, Config{Name: "nd"})
	hb.SetGeometry(geom.Bounds{Left: 600, Top: 900, Right: 1000, Bottom: 600})

	c, hc := src.window(t, Config{Name: "mcdu"})
	c.PopOut()
	hc.OSBounds = geom.Bounds{Left: 2000, Top: 800, Right: 2400, Bottom: 500}
	hc.Vis = true

	src.sys.Save()

	dst := newFixtureAt(t, dir)
	_, da := dst.window(t, Config{Name: "pfd"})
	_, db := dst.window(t, Config{Name: "nd"})
	_, dc := dst.window(t, Config{Name: "mcdu"})
	dst.sys.Restore()

	if da.Bounds != ha.Bounds || !da.Vis || da.PoppedOut() {
		t.Errorf("pfd restored as %+v vis=%v popout=%v", da.Bounds, da.Vis, da.PoppedOut())
	}
	if db.Bounds != hb.Bounds || db.Vis || db.PoppedOut() {
		t.Errorf("nd restored as %+v vis=%v popout=%v", db.Bounds, db.Vis, db.PoppedOut())
	}
	if dc.OSBounds != hc.OSBounds || !dc.Vis || !dc.PoppedOut() {
		t.Errorf("mcdu restored as os=%+v vis=%v popout=%v", dc.OSBounds, dc.Vis, dc.PoppedOut())
	}
	if dst.logs.Len() != 0 {
		t.Errorf("unexpected log output: %q", dst.logs)
	}
}

func TestSaveFormat(t *testing.T) {
	f := newFixture(t)
	_, h := f.window(t, Config{Name: "pfd"})
	h.Vis = true
	f.sys.Save()

	doc, err := conf.ReadFile(f.sys.LayoutPath())
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{
		"pfd/pos/left":   "100",
		"pfd/pos/right":  "500",
		"pfd/pos/top":    "400",
		"pfd/pos/bottom": "100",
		"pfd/visible":    "true",
		"pfd/popout":     "false",
	}
	if doc.Len() != len(want) {
		t.Errorf("keys = %v", doc.Keys())
	}
	for k, v := range want {
		if got, _ := doc.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestRestoreSkipsPartialRecords(t *testing.T) {
	f := newFixture(t)
	_, ha := f.window(t, Config{Name: "pfd"})
	_, hb := f.window(t, Config{Name: "nd"})
	writeLayout(t, f, strings.Join([]string{
		"pfd/pos/left = 1",
		"pfd/pos/right = 401",
		"pfd/pos/bottom = 1",
		"pfd/visible = true",
		"nd/pos/left = 5",
		"nd/pos/right = 405",
		"nd/pos/top = 305",
		"nd/pos/bottom = 5",
		"nd/visible = yes",
		"",
	}, "\n"))

	f.sys.Restore()

	if len(ha.SetGeomLog) != 0 || ha.Vis {
		t.Errorf("partial pfd record applied: %+v vis=%v", ha.SetGeomLog, ha.Vis)
	}
	if want := (geom.Bounds{Left: 5, Top: 305, Right: 405, Bottom: 5}); hb.Bounds != want || !hb.Vis {
		t.Errorf("nd = %+v vis=%v", hb.Bounds, hb.Vis)
	}
}

func TestRestoreMalformed(t *testing.T) {
	f := newFixture(t)
	_, h := f.window(t, Config{Name: "pfd"})
	writeLayout(t, f, "pfd/pos/left = 1\npfd/pos/right = 401\nthis line is broken\npfd/visible = true\n")

	f.sys.Restore()

	if !strings.Contains(f.logs.String(), "error in window positions file at line 3") {
		t.Errorf("log = %q", f.logs)
	}
	if len(h.SetGeomLog) != 0 || h.Vis {
		t.Error("malformed layout mutated a window")
	}
	doc, err := conf.ReadFile(f.sys.LayoutPath())
	if err != nil {
		t.Fatalf("layout not rewritten: %v", err)
	}
	if v, _ := doc.Int("pfd/pos/left"); v != 100 {
		t.Errorf("rewritten pfd/pos/left = %d", v)
	}
}

func TestRestoreMissingFile(t *testing.T) {
	f := newFixture(t)
	_, h := f.window(t, Config{Name: "pfd"})
	f.sys.Restore()
	if len(h.SetGeomLog) != 0 || h.Vis || f.logs.Len() != 0 {
		t.Error("missing layout file had an effect")
	}
	if _, err := os.Stat(f.sys.LayoutPath()); !os.IsNotExist(err) {
		t.Error("missing layout file was created")
	}
}

func TestRestoreInVR(t *testing.T) {
	f := newFixture(t)
	_, h := f.window(t, Config{Name: "pfd"})
	writeLayout(t, f, "pfd/pos/left = 1\npfd/pos/right = 401\npfd/pos/top = 301\npfd/pos/bottom = 1\npfd/visible = true\npfd/popout = true\n")

	f.host.VR = true
	f.sys.Restore()

	if h.Mode != core.PositionVR || !h.Vis {
		t.Errorf("mode = %v vis = %v", h.Mode, h.Vis)
	}
	if len(h.SetGeomLog) != 0 {
		t.Error("VR restore touched the floating geometry")
	}
}

func TestRestoreLeavesPopOut(t *testing.T) {
	f := newFixture(t)
	w, h := f.window(t, Config{Name: "pfd"})
	w.PopOut()
	writeLayout(t, f, "pfd/pos/left = 1\npfd/pos/right = 401\npfd/pos/top = 301\npfd/pos/bottom = 1\npfd/visible = false\n")

	f.sys.Restore()

	if h.PoppedOut() {
		t.Error("window still popped out")
	}
	if want := (geom.Bounds{Left: 1, Top: 301, Right: 401, Bottom: 1}); h.Bounds != want {
		t.Errorf("bounds = %+v", h.Bounds)
	}
}

func TestSaveFailureLogged(t *testing.T) {
	f := newFixtureAt(t, filepath.Join(t.TempDir(), "missing"))
	f.window(t, Config{Name: "pfd"})
	f.sys.Save()
	if !strings.Contains(f.logs.String(), "could not save window positions") {
		t.Errorf("log = %q", f.logs)
	}
}
