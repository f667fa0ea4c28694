package glbackend

import (
	"image"
	"log"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/text"
)

type labelKey struct {
	text  string
	color colors.Color
}

func (r *RendererGL) LoadPicture(img *image.RGBA) (core.Picture, error) {
	b := img.Bounds()
	pix := img.Pix
	if img.Stride != b.Dx()*4 {
		tight := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		for y := 0; y < b.Dy(); y++ {
			copy(tight.Pix[y*tight.Stride:], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):][:b.Dx()*4])
		}
		pix = tight.Pix
	}
	t, err := r.CreateTexture(core.TextureDesc{
		Width:     b.Dx(),
		Height:    b.Dy(),
		Format:    core.TextureRGBA8,
		Pixels:    pix,
		MinFilter: core.FilterLinear,
		MagFilter: core.FilterLinear,
	})
	if err != nil {
		return core.Picture{}, err
	}
	return core.Picture{Texture: t, W: b.Dx(), H: b.Dy()}, nil
}

func (r *RendererGL) FreePicture(p core.Picture) {
	if p.Texture != 0 {
		r.DeleteTexture(p.Texture)
	}
}

func (r *RendererGL) DrawPicture(p core.Picture, pos, size geom.Vec2, alpha float32) {
	corners, uv := pictureQuad(pos, size)
	r.drawChrome(corners, uv, p.Texture, colors.White.WithAlpha(alpha))
}

func (r *RendererGL) DrawTranslucentDarkBox(b geom.Bounds) {
	_, uv := pictureQuad(geom.Vec2{}, geom.Vec2{})
	r.drawChrome(boxQuad(b), uv, 0, colors.DarkBox)
}

// DrawString draws s with its baseline at pos.
func (r *RendererGL) DrawString(c colors.Color, pos geom.Vec2, s string) {
	key := labelKey{text: s, color: c}
	pic, ok := r.labels.Get(key)
	if !ok {
		var err error
		pic, err = r.LoadPicture(text.RenderLabel(s, c))
		if err != nil {
			log.Printf("label %q: %v", s, err)
			return
		}
		r.labels.Add(key, pic)
	}
	descent := float64(text.Face.Metrics().Descent.Ceil())
	origin := geom.V(math.Round(pos.X), math.Round(pos.Y-descent))
	r.DrawPicture(pic, origin, geom.V(float64(pic.W), float64(pic.H)), 1)
}

func (r *RendererGL) drawChrome(corners, uv [4]geom.Vec2, tex core.Texture, tint colors.Color) {
	verts, err := quadVertices(corners[:], uv[:])
	if err != nil {
		return
	}

	gl.UseProgram(r.chrome)
	pvm := r.cam.VP()
	gl.UniformMatrix4fv(uniform(r.chrome, "pvm"), 1, false, &pvm[0])
	gl.Uniform4f(uniform(r.chrome, "tint"), tint[0], tint[1], tint[2], tint[3])
	textured := int32(0)
	if tex != 0 {
		textured = 1
		r.BindTexture(tex, 0)
		gl.Uniform1i(uniform(r.chrome, "tex"), 0)
	}
	gl.Uniform1i(uniform(r.chrome, "textured"), textured)

	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(verts)/floatsPerVertex))
	gl.BindVertexArray(0)

	if tex != 0 {
		r.BindTexture(0, 0)
	}
	gl.UseProgram(0)
}
