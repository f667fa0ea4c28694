package glbackend

import (
	"fmt"
	"log"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

func glFilter(f core.Filter) int32 {
	if f == core.FilterLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}

// maxPendingErrors bounds the drain; a lost context can report errors
// forever.
const maxPendingErrors = 8

// drainErrors clears the error flags left by earlier calls and returns
// how many were pending.
func drainErrors(get func() uint32) int {
	n := 0
	for n < maxPendingErrors && get() != gl.NO_ERROR {
		n++
	}
	return n
}

// colorBuffer is the buffer read from or drawn to on fb. The default
// framebuffer has no color attachments.
func colorBuffer(fb core.Framebuffer) uint32 {
	if fb == 0 {
		return gl.BACK
	}
	return gl.COLOR_ATTACHMENT0
}

func (r *RendererGL) CurrentFramebuffer() core.Framebuffer {
	var fb int32
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &fb)
	return core.Framebuffer(fb)
}

func (r *RendererGL) BindReadFramebuffer(fb core.Framebuffer) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(fb))
	gl.ReadBuffer(colorBuffer(fb))
}

func (r *RendererGL) BindDrawFramebuffer(fb core.Framebuffer) {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, uint32(fb))
	gl.DrawBuffer(colorBuffer(fb))
}

func (r *RendererGL) BindFramebuffer(fb core.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
	gl.DrawBuffer(colorBuffer(fb))
	gl.ReadBuffer(colorBuffer(fb))
}

func (r *RendererGL) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	internal, format := int32(gl.RGBA8), uint32(gl.RGBA)
	if desc.Format == core.TextureRGB8 {
		internal = gl.RGB8
	}
	var pix unsafe.Pointer
	if len(desc.Pixels) > 0 {
		if want := desc.Width * desc.Height * 4; len(desc.Pixels) != want {
			return 0, fmt.Errorf("create texture: %d bytes of pixels for %dx%d", len(desc.Pixels), desc.Width, desc.Height)
		}
		pix = gl.Ptr(desc.Pixels)
	}

	if n := drainErrors(gl.GetError); n > 0 {
		log.Printf("create texture: cleared %d pending gl errors", n)
	}

	var t uint32
	gl.GenTextures(1, &t)
	gl.BindTexture(gl.TEXTURE_2D, t)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, int32(desc.Width), int32(desc.Height), 0, format, gl.UNSIGNED_BYTE, pix)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter(desc.MinFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter(desc.MagFilter))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if err := glError("create texture"); err != nil {
		gl.DeleteTextures(1, &t)
		return 0, err
	}
	return core.Texture(t), nil
}

func (r *RendererGL) DeleteTexture(t core.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

// CreateFramebuffer attaches color to a new framebuffer. The previous
// bindings are kept.
func (r *RendererGL) CreateFramebuffer(color core.Texture) (core.Framebuffer, error) {
	var read, draw int32
	gl.GetIntegerv(gl.READ_FRAMEBUFFER_BINDING, &read)
	gl.GetIntegerv(gl.DRAW_FRAMEBUFFER_BINDING, &draw)
	defer func() {
		gl.BindFramebuffer(gl.READ_FRAMEBUFFER, uint32(read))
		gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, uint32(draw))
	}()

	var fb uint32
	gl.GenFramebuffers(1, &fb)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(color), 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.DeleteFramebuffers(1, &fb)
		return 0, fmt.Errorf("create framebuffer: incomplete (0x%x)", status)
	}
	return core.Framebuffer(fb), nil
}

func (r *RendererGL) DeleteFramebuffer(fb core.Framebuffer) {
	id := uint32(fb)
	gl.DeleteFramebuffers(1, &id)
}

func (r *RendererGL) BlitColor(src, dst geom.Bounds, filter core.Filter) {
	gl.BlitFramebuffer(
		int32(src.Left), int32(src.Bottom), int32(src.Right), int32(src.Top),
		int32(dst.Left), int32(dst.Bottom), int32(dst.Right), int32(dst.Top),
		gl.COLOR_BUFFER_BIT, uint32(glFilter(filter)))
}

func (r *RendererGL) CreateProgram(vertex, fragment string, attribs ...core.AttribBinding) (core.Program, error) {
	p, err := makeProgram(vertex, fragment, attribs...)
	if err != nil {
		return 0, err
	}
	return core.Program(p), nil
}

func (r *RendererGL) DeleteProgram(p core.Program) { gl.DeleteProgram(uint32(p)) }
func (r *RendererGL) UseProgram(p core.Program)    { gl.UseProgram(uint32(p)) }

func (r *RendererGL) BindTexture(t core.Texture, unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (r *RendererGL) SetUniformInt(p core.Program, name string, v int32) {
	gl.Uniform1i(uniform(uint32(p), name), v)
}

func (r *RendererGL) SetUniformMat4(p core.Program, name string, m geom.Mat4) {
	gl.UniformMatrix4fv(uniform(uint32(p), name), 1, false, &m[0])
}

func (r *RendererGL) CreateQuads(pos, uv []geom.Vec2) (core.Mesh, error) {
	verts, err := quadVertices(pos, uv)
	if err != nil {
		return core.Mesh{}, err
	}
	if len(verts) == 0 {
		return core.Mesh{}, nil
	}

	var m core.Mesh
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)
	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	setQuadAttribs()
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	m.Vertices = int32(len(verts) / floatsPerVertex)
	return m, nil
}

func (r *RendererGL) DrawQuads(m core.Mesh, p core.Program) {
	if m.Vertices == 0 {
		return
	}
	gl.UseProgram(uint32(p))
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.Vertices)
	gl.BindVertexArray(0)
}

func (r *RendererGL) DeleteMesh(m core.Mesh) {
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
}

func (r *RendererGL) ProjectionMatrix() geom.Mat4 { return r.cam.Projection() }
func (r *RendererGL) ModelViewMatrix() geom.Mat4  { return r.cam.ModelView() }
