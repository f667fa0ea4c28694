package coretest

import (
	"fmt"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

type Blit struct {
	Read, Draw core.Framebuffer
	Src, Dst   geom.Bounds
	Filter     core.Filter
}

type QuadDraw struct {
	Mesh    core.Mesh
	Program core.Program
	Texture core.Texture
	PVM     geom.Mat4
}

// GPU records rendering calls.
type GPU struct {
	Host           core.Framebuffer // value returned by CurrentFramebuffer
	Proj, MV       geom.Mat4
	ProgramErr     error
	FramebufferErr error

	Calls    []string
	Textures []core.TextureDesc
	Blits    []Blit
	Programs int
	Meshes   map[core.Mesh][]geom.Vec2 // live meshes → positions then uvs
	Deleted  struct {
		Textures     []core.Texture
		Framebuffers []core.Framebuffer
		Programs     []core.Program
		Meshes       []core.Mesh
	}
	Draws    []QuadDraw
	Uniforms map[string]any

	read, draw, bound core.Framebuffer
	program           core.Program
	texture           core.Texture
	next              uint32
}

func NewGPU() *GPU {
	return &GPU{
		Host:     7,
		Proj:     geom.Identity(),
		MV:       geom.Identity(),
		Meshes:   map[core.Mesh][]geom.Vec2{},
		Uniforms: map[string]any{},
	}
}

func (g *GPU) id() uint32 {
	g.next++
	return g.next
}

func (g *GPU) log(format string, args ...any) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GPU) CurrentFramebuffer() core.Framebuffer { return g.Host }

func (g *GPU) BindReadFramebuffer(fb core.Framebuffer) { g.read = fb; g.log("read %d", fb) }
func (g *GPU) BindDrawFramebuffer(fb core.Framebuffer) { g.draw = fb; g.log("draw %d", fb) }
func (g *GPU) BindFramebuffer(fb core.Framebuffer) {
	g.read, g.draw, g.bound = fb, fb, fb
	g.log("bind %d", fb)
}

// Bound returns the framebuffer last bound for both reading and drawing.
func (g *GPU) Bound() core.Framebuffer { return g.bound }

func (g *GPU) CreateTexture(desc core.TextureDesc) (core.Texture, error) {
	g.Textures = append(g.Textures, desc)
	t := core.Texture(g.id())
	g.log("texture %d", t)
	return t, nil
}

func (g *GPU) DeleteTexture(t core.Texture) { g.Deleted.Textures = append(g.Deleted.Textures, t) }

func (g *GPU) CreateFramebuffer(color core.Texture) (core.Framebuffer, error) {
	if g.FramebufferErr != nil {
		return 0, g.FramebufferErr
	}
	fb := core.Framebuffer(g.id())
	g.log("framebuffer %d color %d", fb, color)
	return fb, nil
}

func (g *GPU) DeleteFramebuffer(fb core.Framebuffer) {
	g.Deleted.Framebuffers = append(g.Deleted.Framebuffers, fb)
}

func (g *GPU) BlitColor(src, dst geom.Bounds, filter core.Filter) {
	g.Blits = append(g.Blits, Blit{Read: g.read, Draw: g.draw, Src: src, Dst: dst, Filter: filter})
	g.log("blit")
}

func (g *GPU) CreateProgram(vertex, fragment string, attribs ...core.AttribBinding) (core.Program, error) {
	if g.ProgramErr != nil {
		return 0, g.ProgramErr
	}
	g.Programs++
	return core.Program(g.id()), nil
}

func (g *GPU) DeleteProgram(p core.Program) { g.Deleted.Programs = append(g.Deleted.Programs, p) }
func (g *GPU) UseProgram(p core.Program)    { g.program = p }
func (g *GPU) BindTexture(t core.Texture, _ int) {
	g.texture = t
	g.log("bindtex %d", t)
}

func (g *GPU) SetUniformInt(_ core.Program, name string, v int32)      { g.Uniforms[name] = v }
func (g *GPU) SetUniformMat4(_ core.Program, name string, m geom.Mat4) { g.Uniforms[name] = m }

func (g *GPU) CreateQuads(pos, uv []geom.Vec2) (core.Mesh, error) {
	m := core.Mesh{VAO: g.id(), VBO: g.id(), Vertices: int32(len(pos))}
	g.Meshes[m] = append(append([]geom.Vec2{}, pos...), uv...)
	return m, nil
}

func (g *GPU) DrawQuads(m core.Mesh, p core.Program) {
	pvm, _ := g.Uniforms["pvm"].(geom.Mat4)
	g.Draws = append(g.Draws, QuadDraw{Mesh: m, Program: p, Texture: g.texture, PVM: pvm})
	g.log("drawquads")
}

func (g *GPU) DeleteMesh(m core.Mesh) {
	delete(g.Meshes, m)
	g.Deleted.Meshes = append(g.Deleted.Meshes, m)
}

func (g *GPU) ProjectionMatrix() geom.Mat4 { return g.Proj }
func (g *GPU) ModelViewMatrix() geom.Mat4  { return g.MV }
