// Package glbackend implements the core rendering contracts on OpenGL 3.3.
package glbackend

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/scene"
)

// labelCacheSize bounds the number of rasterized title labels kept on the
// GPU.
const labelCacheSize = 128

// RendererGL is the OpenGL core.Renderer. Chrome and capture windows are
// drawn through the same screen camera.
type RendererGL struct {
	win core.Window
	cam *scene.ScreenCamera

	// chrome painter state
	chrome uint32
	vao    uint32
	vbo    uint32
	labels *lru.Cache[labelKey, core.Picture]
}

func NewRendererGL(win core.Window, cfg core.Config) (*RendererGL, error) {
	r := &RendererGL{win: win, cam: scene.NewScreenCamera(cfg.Width, cfg.Height)}
	if err := r.Init(); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	var err error
	r.chrome, err = makeProgram(chromeVertexSource, chromeFragmentSource,
		core.AttribBinding{Name: "vtx_pos", Location: core.AttribPos},
		core.AttribBinding{Name: "vtx_tex0", Location: core.AttribTex0},
	)
	if err != nil {
		return fmt.Errorf("chrome program: %w", err)
	}

	// One quad, rewritten for every chrome draw.
	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadCorner)*floatsPerVertex*4, nil, gl.DYNAMIC_DRAW)
	setQuadAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.labels, err = lru.NewWithEvict(labelCacheSize, func(_ labelKey, p core.Picture) {
		r.FreePicture(p)
	})
	if err != nil {
		return err
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	return nil
}

// setQuadAttribs describes the interleaved vertex layout of the bound
// buffer on the bound vertex array.
func setQuadAttribs() {
	const stride = floatsPerVertex * 4 // bytes
	gl.EnableVertexAttribArray(core.AttribPos)
	gl.VertexAttribPointer(core.AttribPos, 3, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(core.AttribTex0)
	gl.VertexAttribPointer(core.AttribTex0, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(3*4)))
}

func (r *RendererGL) Shutdown() {
	if r.labels != nil {
		r.labels.Purge()
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.chrome != 0 {
		gl.DeleteProgram(r.chrome)
	}
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

// SetScreenSize sets the desktop extent, in desktop units, that the
// viewport shows.
func (r *RendererGL) SetScreenSize(w, h int) { r.cam.SetViewport(w, h) }

// Camera returns the screen camera.
func (r *RendererGL) Camera() *scene.ScreenCamera { return r.cam }

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

var _ core.Renderer = (*RendererGL)(nil)
