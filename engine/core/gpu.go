package core

import (
	"image"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/geom"
)

// Texture, Framebuffer and Program are GPU object names. Zero means none.
type (
	Texture     uint32
	Framebuffer uint32
	Program     uint32
)

type TextureFormat int

const (
	TextureRGBA8 TextureFormat = iota
	TextureRGB8
)

type Filter int

const (
	FilterNearest Filter = iota
	FilterLinear
)

type TextureDesc struct {
	Width, Height int
	Format        TextureFormat
	Pixels        []byte // may be nil for render targets
	MinFilter     Filter
	MagFilter     Filter
}

// AttribBinding pins a vertex attribute name to a location before linking.
type AttribBinding struct {
	Name     string
	Location uint32
}

// Vertex attribute locations shared by every quad program.
const (
	AttribPos  uint32 = 0
	AttribTex0 uint32 = 1
)

// Mesh is an uploaded quad list.
type Mesh struct {
	VAO, VBO uint32
	Vertices int32
}

// GPU is the host rendering API the capture pipeline relies on.
type GPU interface {
	// CurrentFramebuffer returns the host's currently bound draw target.
	CurrentFramebuffer() Framebuffer
	BindReadFramebuffer(fb Framebuffer)
	BindDrawFramebuffer(fb Framebuffer)
	BindFramebuffer(fb Framebuffer)

	CreateTexture(desc TextureDesc) (Texture, error)
	DeleteTexture(t Texture)
	CreateFramebuffer(color Texture) (Framebuffer, error)
	DeleteFramebuffer(fb Framebuffer)
	// BlitColor copies the color attachment of the bound read framebuffer
	// into the bound draw framebuffer.
	BlitColor(src, dst geom.Bounds, filter Filter)

	CreateProgram(vertex, fragment string, attribs ...AttribBinding) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)
	BindTexture(t Texture, unit int)
	SetUniformInt(p Program, name string, v int32)
	SetUniformMat4(p Program, name string, m geom.Mat4)

	// CreateQuads uploads quads given as groups of four corners.
	CreateQuads(pos, uv []geom.Vec2) (Mesh, error)
	DrawQuads(m Mesh, p Program)
	DeleteMesh(m Mesh)

	ProjectionMatrix() geom.Mat4
	ModelViewMatrix() geom.Mat4
}

// Picture is an image uploaded for chrome drawing.
type Picture struct {
	Texture Texture
	W, H    int
}

// Painter draws the window chrome in desktop space.
type Painter interface {
	LoadPicture(img *image.RGBA) (Picture, error)
	FreePicture(p Picture)
	DrawPicture(p Picture, pos, size geom.Vec2, alpha float32)
	DrawTranslucentDarkBox(b geom.Bounds)
	DrawString(c colors.Color, pos geom.Vec2, s string)
}
