package window

import (
	"bytes"
	"log"
	"testing"
	"time"

	"github.com/hubastard/xpanel/engine/core/coretest"
	"github.com/hubastard/xpanel/engine/geom"
)

type fixture struct {
	sys     *System
	host    *coretest.Host
	painter *coretest.Painter
	logs    *bytes.Buffer
	clock   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureAt(t, t.TempDir())
}

// newFixtureAt builds an initialized system whose layout lives in outDir.
func newFixtureAt(t *testing.T, outDir string) *fixture {
	t.Helper()
	f := &fixture{
		host:    coretest.NewHost(),
		painter: &coretest.Painter{},
		logs:    &bytes.Buffer{},
		clock:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	f.sys = NewSystem(f.host, f.painter)
	f.sys.SetLogger(log.New(f.logs, "", 0))
	f.sys.now = func() time.Time { return f.clock }
	if err := f.sys.Init(coretest.WriteAssets(t), outDir); err != nil {
		t.Fatalf("Init: %v", err)
	}
	f.logs.Reset()
	return f
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func (f *fixture) window(t *testing.T, cfg Config) (*Window, *coretest.Handle) {
	t.Helper()
	if cfg.Size == (geom.Vec2{}) {
		cfg.Size = geom.V(400, 300)
	}
	if cfg.MinScale == 0 {
		cfg.MinScale = 0.5
	}
	if cfg.MaxScale == 0 {
		cfg.MaxScale = 2
	}
	w := f.sys.NewWindow(cfg, nil)
	return w, w.Handle().(*coretest.Handle)
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}
