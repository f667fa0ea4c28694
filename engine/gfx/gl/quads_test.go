package glbackend

import (
	"testing"

	"github.com/hubastard/xpanel/engine/geom"
)

func TestQuadVertices(t *testing.T) {
	pos := []geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 2}, {X: 3, Y: 2}, {X: 3, Y: 0}}
	uv := []geom.Vec2{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}

	v, err := quadVertices(pos, uv)
	if err != nil {
		t.Fatal(err)
	}
	if len(v) != 6*floatsPerVertex {
		t.Fatalf("len = %d", len(v))
	}
	want := [][5]float32{
		{0, 0, 0, 0, 0},
		{0, 2, 0, 0, 1},
		{3, 2, 0, 1, 1},
		{0, 0, 0, 0, 0},
		{3, 2, 0, 1, 1},
		{3, 0, 0, 1, 0},
	}
	for i, w := range want {
		var got [5]float32
		copy(got[:], v[i*floatsPerVertex:])
		if got != w {
			t.Errorf("vertex %d = %v, want %v", i, got, w)
		}
	}
}

func TestQuadVerticesErrors(t *testing.T) {
	three := make([]geom.Vec2, 3)
	four := make([]geom.Vec2, 4)
	if _, err := quadVertices(three, three); err == nil {
		t.Error("accepted a partial quad")
	}
	if _, err := quadVertices(four, three); err == nil {
		t.Error("accepted mismatched lengths")
	}
	if v, err := quadVertices(nil, nil); err != nil || len(v) != 0 {
		t.Errorf("empty input: %v %v", v, err)
	}
}

func TestPictureQuadFlipsV(t *testing.T) {
	c, uv := pictureQuad(geom.V(10, 20), geom.V(32, 16))
	if c[0] != geom.V(10, 20) || c[2] != geom.V(42, 36) {
		t.Errorf("corners = %v", c)
	}
	// The bottom-left corner samples the last image row.
	if uv[0] != geom.V(0, 1) || uv[1] != geom.V(0, 0) {
		t.Errorf("uv = %v", uv)
	}
	if b := boxQuad(geom.Bounds{Left: 1, Top: 5, Right: 4, Bottom: 2}); b[0] != geom.V(1, 2) || b[2] != geom.V(4, 5) {
		t.Errorf("box = %v", b)
	}
}
