// Package capture copies the host's rendered frame into a texture and shows
// sub-rectangles of it in floating windows.
package capture

import (
	"fmt"
	"log"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/window"
)

// Capture window scale limits relative to the configured size.
const (
	MinScale = 0.5
	MaxScale = 10.0
)

// Pipeline owns the capture texture and the windows that display it.
type Pipeline struct {
	gpu  core.GPU
	sys  *window.System
	size geom.Vec2
	log  *log.Logger

	tex core.Texture
	fbo core.Framebuffer

	windows []*Window
}

// New creates a pipeline capturing a size-sized region anchored at the
// origin of the host's frame. GPU resources are created on the first
// Refresh.
func New(gpu core.GPU, sys *window.System, size geom.Vec2) *Pipeline {
	if gpu == nil || sys == nil {
		panic("capture: nil gpu or window system")
	}
	if size.X <= 0 || size.Y <= 0 {
		panic(fmt.Sprintf("capture: invalid size %v", size))
	}
	return &Pipeline{gpu: gpu, sys: sys, size: size, log: log.Default()}
}

// SetLogger redirects the pipeline's log output.
func (p *Pipeline) SetLogger(l *log.Logger) { p.log = l }

func (p *Pipeline) Size() geom.Vec2 { return p.size }

// Texture returns the capture texture, or zero before the first Refresh.
func (p *Pipeline) Texture() core.Texture { return p.tex }

func (p *Pipeline) canvas() geom.Bounds {
	return geom.FromPosSize(geom.Vec2{}, p.size)
}

// Refresh copies the host's current frame into the capture texture. The
// host's framebuffer binding is restored afterwards.
func (p *Pipeline) Refresh() error {
	host := p.gpu.CurrentFramebuffer()

	if p.tex == 0 {
		tex, err := p.gpu.CreateTexture(core.TextureDesc{
			Width:     int(p.size.X),
			Height:    int(p.size.Y),
			Format:    core.TextureRGB8,
			MinFilter: core.FilterLinear,
			MagFilter: core.FilterLinear,
		})
		if err != nil {
			return fmt.Errorf("create capture texture: %w", err)
		}
		p.tex = tex
	}
	if p.fbo == 0 {
		fbo, err := p.gpu.CreateFramebuffer(p.tex)
		if err != nil {
			p.gpu.DeleteTexture(p.tex)
			p.tex = 0
			p.gpu.BindFramebuffer(host)
			return fmt.Errorf("create capture framebuffer: %w", err)
		}
		p.fbo = fbo
	}

	p.gpu.BindReadFramebuffer(host)
	p.gpu.BindDrawFramebuffer(p.fbo)
	p.gpu.BlitColor(p.canvas(), p.canvas(), core.FilterNearest)
	p.gpu.BindFramebuffer(host)
	return nil
}

// AddWindow creates an undecorated, aspect-constrained window showing the
// canvas region at pos with the given size.
func (p *Pipeline) AddWindow(name, id string, pos, size geom.Vec2) *window.Window {
	cw := &Window{pipe: p, pos: pos, size: size, state: created{}}
	cw.win = p.sys.NewWindow(window.Config{
		Size:              size,
		MinScale:          MinScale,
		MaxScale:          MaxScale,
		Name:              name,
		ID:                id,
		AspectConstrained: true,
		Draw:              cw.draw,
	}, cw)
	p.windows = append(p.windows, cw)
	return cw.win
}

// Windows returns the capture windows in creation order.
func (p *Pipeline) Windows() []*Window { return append([]*Window(nil), p.windows...) }

// Destroy releases every capture window, then the texture and framebuffer.
// It must run before the window system is torn down.
func (p *Pipeline) Destroy() {
	for _, cw := range p.windows {
		p.sys.Destroy(cw.win)
		cw.release()
	}
	p.windows = nil

	if p.tex != 0 {
		p.gpu.DeleteTexture(p.tex)
		p.tex = 0
	}
	if p.fbo != 0 {
		p.gpu.DeleteFramebuffer(p.fbo)
		p.fbo = 0
	}
}
