package window

import (
	"math"

	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// resizeCtl keeps a window at its configured aspect ratio while the host
// allows free resizing. When the width changed since the last observed
// geometry the height follows it, otherwise the width follows the height.
// The edges that did not move stay put.
type resizeCtl struct {
	aspect float64 // width / height
	last   geom.Bounds
	primed bool
}

func newResizeCtl(size geom.Vec2) *resizeCtl {
	return &resizeCtl{aspect: size.X / size.Y}
}

func (r *resizeCtl) update(h core.WindowHandle) {
	if h.PoppedOut() || h.InVR() {
		r.primed = false
		return
	}
	b := h.Geometry()
	if !r.primed {
		r.last = b
		r.primed = true
		return
	}
	if b == r.last {
		return
	}
	snapped := r.snap(b)
	if snapped != b {
		h.SetGeometry(snapped)
	}
	r.last = snapped
}

func (r *resizeCtl) snap(b geom.Bounds) geom.Bounds {
	w, h := b.Width(), b.Height()
	if w <= 0 || h <= 0 {
		return b
	}
	switch {
	case w != r.last.Width():
		want := int(math.Round(float64(w) / r.aspect))
		if want == h {
			return b
		}
		if b.Top == r.last.Top || b.Bottom != r.last.Bottom {
			b.Bottom = b.Top - want
		} else {
			b.Top = b.Bottom + want
		}
	case h != r.last.Height():
		want := int(math.Round(float64(h) * r.aspect))
		if want == w {
			return b
		}
		if b.Left == r.last.Left || b.Right != r.last.Right {
			b.Right = b.Left + want
		} else {
			b.Left = b.Right - want
		}
	}
	return b
}
