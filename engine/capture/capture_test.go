package capture

import (
	"bytes"
	"errors"
	"io"
	"log"
	"slices"
	"strings"
	"testing"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/core/coretest"
	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/window"
)

type fixture struct {
	gpu  *coretest.GPU
	host *coretest.Host
	sys  *window.System
	pipe *Pipeline
	logs *bytes.Buffer
}

func newFixture(t *testing.T, size geom.Vec2) *fixture {
	t.Helper()
	f := &fixture{gpu: coretest.NewGPU(), host: coretest.NewHost(), logs: &bytes.Buffer{}}
	f.sys = window.NewSystem(f.host, &coretest.Painter{})
	f.sys.SetLogger(log.New(io.Discard, "", 0))
	if err := f.sys.Init(coretest.WriteAssets(t), t.TempDir()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	f.pipe = New(f.gpu, f.sys, size)
	f.pipe.SetLogger(log.New(f.logs, "", 0))
	return f
}

func (f *fixture) add(name string, pos, size geom.Vec2) (*window.Window, *coretest.Handle) {
	w := f.pipe.AddWindow(name, "", pos, size)
	w.Show()
	return w, w.Handle().(*coretest.Handle)
}

func TestRefresh(t *testing.T) {
	f := newFixture(t, geom.V(1024, 768))
	if f.pipe.Texture() != 0 {
		t.Fatal("texture exists before the first refresh")
	}

	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	want := []string{"texture 1", "framebuffer 2 color 1", "read 7", "draw 2", "blit", "bind 7"}
	if !slices.Equal(f.gpu.Calls, want) {
		t.Errorf("calls = %q, want %q", f.gpu.Calls, want)
	}
	if f.pipe.Texture() != 1 {
		t.Errorf("texture = %d", f.pipe.Texture())
	}

	desc := f.gpu.Textures[0]
	if desc.Width != 1024 || desc.Height != 768 || desc.Format != core.TextureRGB8 ||
		desc.MinFilter != core.FilterLinear || desc.MagFilter != core.FilterLinear {
		t.Errorf("texture desc = %+v", desc)
	}

	canvas := geom.Bounds{Left: 0, Top: 768, Right: 1024, Bottom: 0}
	b := f.gpu.Blits[0]
	if b.Read != 7 || b.Draw != 2 || b.Src != canvas || b.Dst != canvas || b.Filter != core.FilterNearest {
		t.Errorf("blit = %+v", b)
	}
	if f.gpu.Bound() != f.gpu.Host {
		t.Error("host framebuffer binding not restored")
	}

	f.gpu.Calls = nil
	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	if want := []string{"read 7", "draw 2", "blit", "bind 7"}; !slices.Equal(f.gpu.Calls, want) {
		t.Errorf("second refresh calls = %q, want %q", f.gpu.Calls, want)
	}
	if len(f.gpu.Textures) != 1 {
		t.Error("texture recreated")
	}
}

func TestAddWindow(t *testing.T) {
	f := newFixture(t, geom.V(1024, 768))
	w := f.pipe.AddWindow("Captured PFD", "pfd", geom.V(0, 0), geom.V(300, 150))
	h := w.Handle().(*coretest.Handle)

	if w.ID() != "pfd" || w.Visible() {
		t.Errorf("id = %q visible = %v", w.ID(), w.Visible())
	}
	if h.Params.Decoration != core.DecorationSelfDecoratedResizable {
		t.Errorf("decoration = %v", h.Params.Decoration)
	}
	if h.Limits != [4]int{150, 75, 3000, 1500} {
		t.Errorf("limits = %v", h.Limits)
	}
	cw, ok := w.UserData().(*Window)
	if !ok || cw.Window() != w {
		t.Fatal("capture window not attached as user data")
	}
	if !w.Config().AspectConstrained {
		t.Error("capture window not aspect constrained")
	}
	if got := f.pipe.Windows(); len(got) != 1 || got[0] != cw {
		t.Errorf("windows = %v", got)
	}
}

func TestDrawWithoutTexture(t *testing.T) {
	f := newFixture(t, geom.V(1024, 768))
	_, h := f.add("pfd", geom.V(0, 0), geom.V(300, 150))
	h.Handler().Draw()
	if len(f.gpu.Draws) != 0 || f.gpu.Programs != 0 {
		t.Error("drew before any capture")
	}
}

func TestDrawMapsRegion(t *testing.T) {
	f := newFixture(t, geom.V(1024, 768))
	f.gpu.Proj = geom.Ortho(0, 1920, 0, 1080, -1, 1)
	f.gpu.MV = geom.Translate(5, 6, 0)

	w, h := f.add("pfd", geom.V(100, 200), geom.V(300, 150))
	cw := w.UserData().(*Window)
	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	h.Handler().Draw()

	if !cw.Ready() || f.gpu.Programs != 1 {
		t.Fatal("program not built on first draw")
	}
	if len(f.gpu.Draws) != 1 {
		t.Fatalf("draws = %d", len(f.gpu.Draws))
	}
	d := f.gpu.Draws[0]
	if d.Texture != f.pipe.Texture() {
		t.Errorf("drew texture %d", d.Texture)
	}
	if d.PVM != geom.Mul(f.gpu.Proj, f.gpu.MV) {
		t.Error("pvm is not projection × modelview")
	}
	if f.gpu.Uniforms["tex"] != int32(0) {
		t.Errorf("tex uniform = %v", f.gpu.Uniforms["tex"])
	}
	if last := f.gpu.Calls[len(f.gpu.Calls)-1]; last != "bindtex 0" {
		t.Errorf("texture left bound: last call %q", last)
	}

	lo := geom.V(100.0/1024, 200.0/768)
	hi := lo.Add(geom.V(300.0/1024, 150.0/768))
	wantUV := []geom.Vec2{{X: lo.X, Y: lo.Y}, {X: lo.X, Y: hi.Y}, {X: hi.X, Y: hi.Y}, {X: hi.X, Y: lo.Y}}
	wantPos := []geom.Vec2{{X: 100, Y: 100}, {X: 100, Y: 250}, {X: 400, Y: 250}, {X: 400, Y: 100}}
	got := f.gpu.Meshes[d.Mesh]
	if !slices.Equal(got[:4], wantPos) || !slices.Equal(got[4:], wantUV) {
		t.Errorf("mesh = %v, want %v then %v", got, wantPos, wantUV)
	}

	// Moving the window changes the quad, never the source region.
	h.Bounds = h.Bounds.Translate(500, 300)
	h.Handler().Draw()
	d = f.gpu.Draws[1]
	got = f.gpu.Meshes[d.Mesh]
	if got[0] != geom.V(600, 400) || !slices.Equal(got[4:], wantUV) {
		t.Errorf("moved mesh = %v", got)
	}
	if l, r := cw.SourceRect(); l != lo || r != hi {
		t.Errorf("source rect = %v %v", l, r)
	}
	if f.gpu.Programs != 1 {
		t.Error("program rebuilt")
	}
}

func TestDrawReusesQuads(t *testing.T) {
	f := newFixture(t, geom.V(800, 600))
	_, h := f.add("pfd", geom.V(0, 0), geom.V(400, 300))
	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	for range 5 {
		h.Handler().Draw()
	}
	if len(f.gpu.Draws) != 5 {
		t.Fatalf("draws = %d", len(f.gpu.Draws))
	}
	if len(f.gpu.Meshes) != 1 {
		t.Errorf("uploaded %d meshes for an unchanged window", len(f.gpu.Meshes))
	}
}

func TestQuadCacheEviction(t *testing.T) {
	gpu := coretest.NewGPU()
	c := newQuadCache(gpu, 2)
	uv := [4]geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	quad := func(x float64) [4]geom.Vec2 {
		return [4]geom.Vec2{{X: x, Y: 0}, {X: x, Y: 1}, {X: x + 1, Y: 1}, {X: x + 1, Y: 0}}
	}

	first, err := c.get(quad(0), uv)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.get(quad(1), uv); err != nil {
		t.Fatal(err)
	}
	if m, _ := c.get(quad(0), uv); m != first || c.hits != 1 {
		t.Fatal("cached quad not reused")
	}
	if _, err := c.get(quad(2), uv); err != nil {
		t.Fatal(err)
	}

	if c.len() != 2 {
		t.Errorf("len = %d", c.len())
	}
	if len(gpu.Deleted.Meshes) != 1 || gpu.Deleted.Meshes[0] == first {
		t.Errorf("evicted %v; the least recently used quad should go", gpu.Deleted.Meshes)
	}

	c.purge()
	if len(gpu.Meshes) != 0 || len(gpu.Deleted.Meshes) != 3 {
		t.Errorf("purge left %d meshes", len(gpu.Meshes))
	}
}

func TestProgramFailure(t *testing.T) {
	f := newFixture(t, geom.V(800, 600))
	f.gpu.ProgramErr = errors.New("compile error")
	w, h := f.add("pfd", geom.V(0, 0), geom.V(400, 300))
	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	h.Handler().Draw()
	h.Handler().Draw()

	if len(f.gpu.Draws) != 0 {
		t.Error("drew without a program")
	}
	if n := strings.Count(f.logs.String(), "compile error"); n != 1 {
		t.Errorf("logged %d times: %q", n, f.logs)
	}
	if w.UserData().(*Window).Ready() {
		t.Error("window ready without a program")
	}
}

func TestFramebufferFailureDrawsNothing(t *testing.T) {
	f := newFixture(t, geom.V(800, 600))
	f.gpu.FramebufferErr = errors.New("incomplete")
	_, h := f.add("pfd", geom.V(0, 0), geom.V(400, 300))

	err := f.pipe.Refresh()
	if err == nil || !strings.Contains(err.Error(), "incomplete") {
		t.Fatalf("Refresh() = %v", err)
	}
	if f.pipe.Texture() != 0 {
		t.Errorf("texture = %d after failed framebuffer", f.pipe.Texture())
	}
	if !slices.Equal(f.gpu.Deleted.Textures, []core.Texture{1}) {
		t.Errorf("deleted textures = %v", f.gpu.Deleted.Textures)
	}
	if len(f.gpu.Blits) != 0 || f.gpu.Bound() != 7 {
		t.Errorf("blits %d, bound %d", len(f.gpu.Blits), f.gpu.Bound())
	}
	h.Handler().Draw()
	if len(f.gpu.Draws) != 0 {
		t.Error("drew a texture that was never captured")
	}

	f.gpu.FramebufferErr = nil
	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	h.Handler().Draw()
	if len(f.gpu.Blits) != 1 || len(f.gpu.Draws) != 1 {
		t.Errorf("after recovery blits %d draws %d", len(f.gpu.Blits), len(f.gpu.Draws))
	}
}

func TestDestroy(t *testing.T) {
	f := newFixture(t, geom.V(800, 600))
	_, ha := f.add("pfd", geom.V(0, 0), geom.V(400, 300))
	_, hb := f.add("nd", geom.V(400, 0), geom.V(400, 300))
	if err := f.pipe.Refresh(); err != nil {
		t.Fatal(err)
	}
	ha.Handler().Draw()
	tex := f.pipe.Texture()

	f.pipe.Destroy()

	if !ha.Destroyed || !hb.Destroyed || f.sys.Len() != 0 {
		t.Error("capture windows not destroyed")
	}
	if len(f.gpu.Deleted.Programs) != 1 || len(f.gpu.Meshes) != 0 {
		t.Errorf("programs deleted = %v, live meshes = %d", f.gpu.Deleted.Programs, len(f.gpu.Meshes))
	}
	if !slices.Equal(f.gpu.Deleted.Textures, []core.Texture{tex}) || len(f.gpu.Deleted.Framebuffers) != 1 {
		t.Error("capture texture or framebuffer not deleted")
	}
	if f.pipe.Texture() != 0 || len(f.pipe.Windows()) != 0 {
		t.Error("pipeline state not cleared")
	}

	f.pipe.Destroy()
	if len(f.gpu.Deleted.Textures) != 1 {
		t.Error("second Destroy deleted again")
	}
}

func TestNewPanics(t *testing.T) {
	f := newFixture(t, geom.V(800, 600))
	for name, fn := range map[string]func(){
		"nil gpu":    func() { New(nil, f.sys, geom.V(1, 1)) },
		"nil system": func() { New(f.gpu, nil, geom.V(1, 1)) },
		"empty size": func() { New(f.gpu, f.sys, geom.V(0, 10)) },
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s: expected panic", name)
				}
			}()
			fn()
		}()
	}
}
