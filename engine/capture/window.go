package capture

import (
	"fmt"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/window"
)

// gpuState is the per-window GPU lifecycle: created, ready or failed.
type gpuState interface{ gpuState() }

// created windows have no GPU resources yet.
type created struct{}

// ready windows own a program and a quad cache.
type ready struct {
	program core.Program
	quads   *quadCache
}

// failed windows could not build their program and draw nothing.
type failed struct{ err error }

func (created) gpuState() {}
func (ready) gpuState()   {}
func (failed) gpuState()  {}

// Window shows one region of the capture canvas.
type Window struct {
	pipe  *Pipeline
	win   *window.Window
	pos   geom.Vec2
	size  geom.Vec2
	state gpuState
}

// Window returns the floating window backing the capture window.
func (cw *Window) Window() *window.Window { return cw.win }

// Region returns the canvas region shown, as position and size.
func (cw *Window) Region() (pos, size geom.Vec2) { return cw.pos, cw.size }

// SourceRect returns the normalized texture coordinates of the region's
// bottom-left and top-right corners. It does not depend on where the window
// is shown.
func (cw *Window) SourceRect() (lo, hi geom.Vec2) {
	c := cw.pipe.size
	lo = cw.pos.Div(c)
	hi = lo.Add(cw.size.Div(c))
	return lo, hi
}

// Ready reports whether the window's GPU resources exist.
func (cw *Window) Ready() bool {
	_, ok := cw.state.(ready)
	return ok
}

func (cw *Window) prepare() (ready, bool) {
	switch s := cw.state.(type) {
	case ready:
		return s, true
	case failed:
		return ready{}, false
	}

	gpu := cw.pipe.gpu
	prog, err := gpu.CreateProgram(vertexShader, fragmentShader, shaderAttribs...)
	if err != nil {
		err = fmt.Errorf("capture window %s: %w", cw.win.ID(), err)
		cw.pipe.log.Printf("%v", err)
		cw.state = failed{err: err}
		return ready{}, false
	}
	s := ready{program: prog, quads: newQuadCache(gpu, QuadCacheSize)}
	cw.state = s
	return s, true
}

func (cw *Window) draw(_ *window.Window, pos, size geom.Vec2) {
	p := cw.pipe
	if p.tex == 0 {
		return
	}
	s, ok := cw.prepare()
	if !ok {
		return
	}

	lo, hi := cw.SourceRect()
	uv := [4]geom.Vec2{
		{X: lo.X, Y: lo.Y},
		{X: lo.X, Y: hi.Y},
		{X: hi.X, Y: hi.Y},
		{X: hi.X, Y: lo.Y},
	}
	quad := [4]geom.Vec2{
		{X: pos.X, Y: pos.Y},
		{X: pos.X, Y: pos.Y + size.Y},
		{X: pos.X + size.X, Y: pos.Y + size.Y},
		{X: pos.X + size.X, Y: pos.Y},
	}
	mesh, err := s.quads.get(quad, uv)
	if err != nil {
		p.log.Printf("capture window %s: %v", cw.win.ID(), err)
		return
	}

	gpu := p.gpu
	pvm := geom.Mul(gpu.ProjectionMatrix(), gpu.ModelViewMatrix())
	gpu.UseProgram(s.program)
	gpu.BindTexture(p.tex, 0)
	gpu.SetUniformInt(s.program, "tex", 0)
	gpu.SetUniformMat4(s.program, "pvm", pvm)
	gpu.DrawQuads(mesh, s.program)
	gpu.BindTexture(0, 0)
	gpu.UseProgram(0)
}

func (cw *Window) release() {
	if s, ok := cw.state.(ready); ok {
		cw.pipe.gpu.DeleteProgram(s.program)
		s.quads.purge()
	}
	cw.state = created{}
}
