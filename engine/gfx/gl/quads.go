package glbackend

import (
	"fmt"

	"github.com/hubastard/xpanel/engine/geom"
)

// floatsPerVertex is x, y, z, u, v.
const floatsPerVertex = 5

// quadCorner lists, for the two triangles of a quad, which of its four
// corners each vertex uses.
var quadCorner = [6]int{0, 1, 2, 0, 2, 3}

// quadVertices expands quads given as groups of four corners into an
// interleaved triangle list.
func quadVertices(pos, uv []geom.Vec2) ([]float32, error) {
	if len(pos) != len(uv) {
		return nil, fmt.Errorf("quads: %d positions but %d texture coordinates", len(pos), len(uv))
	}
	if len(pos)%4 != 0 {
		return nil, fmt.Errorf("quads: %d corners is not a multiple of 4", len(pos))
	}
	out := make([]float32, 0, len(pos)/4*len(quadCorner)*floatsPerVertex)
	for q := 0; q < len(pos); q += 4 {
		for _, c := range quadCorner {
			p, t := pos[q+c], uv[q+c]
			out = append(out, float32(p.X), float32(p.Y), 0, float32(t.X), float32(t.Y))
		}
	}
	return out, nil
}

// pictureQuad returns the corners and texture coordinates of an image drawn
// at pos with size. Images have a top-left origin, so v is flipped.
func pictureQuad(pos, size geom.Vec2) (corners, uv [4]geom.Vec2) {
	corners = [4]geom.Vec2{
		pos,
		{X: pos.X, Y: pos.Y + size.Y},
		pos.Add(size),
		{X: pos.X + size.X, Y: pos.Y},
	}
	uv = [4]geom.Vec2{{X: 0, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	return corners, uv
}

// boxQuad returns the corners of b in the same order as pictureQuad.
func boxQuad(b geom.Bounds) [4]geom.Vec2 {
	c, _ := pictureQuad(b.Origin(), b.Size())
	return c
}
