package window

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/hubastard/xpanel/engine/conf"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
)

// LayoutFile is the name of the layout document inside the output directory.
const LayoutFile = "windows.txt"

// LayoutPath returns the full path of the layout document.
func (s *System) LayoutPath() string {
	return filepath.Join(s.outputDir, LayoutFile)
}

// Save writes the geometry, visibility and pop-out state of every window.
// Failures are logged; the layout is best effort.
func (s *System) Save() {
	s.mustInit()

	doc := conf.New()
	for _, w := range s.windows {
		w.save(doc)
	}

	path := s.LayoutPath()
	if err := doc.WriteFile(path); err != nil {
		s.log.Printf("could not save window positions to `%s`: %v", path, err)
	}
}

// Restore applies the saved layout to the registered windows. A missing file
// is ignored. A malformed file is logged and replaced with the current layout.
func (s *System) Restore() {
	s.mustInit()

	path := s.LayoutPath()
	doc, err := conf.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		if line := conf.ErrorLine(err); line > 0 {
			s.log.Printf("error in window positions file at line %d", line)
		} else {
			s.log.Printf("could not read window positions from `%s`: %v", path, err)
		}
		s.Save()
		return
	}

	vr := s.host.VREnabled()
	for _, w := range s.windows {
		w.restore(doc, vr)
	}
}

func key(id, field string) string { return id + "/" + field }

func (w *Window) save(doc *conf.Doc) {
	poppedOut := w.handle.PoppedOut()
	b := w.handle.Geometry()
	if poppedOut {
		b = w.handle.GeometryOS()
	}

	id := w.conf.ID
	doc.SetInt(key(id, "pos/left"), b.Left)
	doc.SetInt(key(id, "pos/right"), b.Right)
	doc.SetInt(key(id, "pos/top"), b.Top)
	doc.SetInt(key(id, "pos/bottom"), b.Bottom)
	doc.SetBool(key(id, "visible"), w.handle.Visible())
	doc.SetBool(key(id, "popout"), poppedOut)
}

// restore applies the record for w. Records without all four bounds or
// without a visibility flag are skipped.
func (w *Window) restore(doc *conf.Doc, vr bool) {
	id := w.conf.ID
	var b geom.Bounds
	for _, f := range []struct {
		dst  *int
		name string
	}{
		{&b.Left, "pos/left"},
		{&b.Right, "pos/right"},
		{&b.Top, "pos/top"},
		{&b.Bottom, "pos/bottom"},
	} {
		v, ok := doc.Int(key(id, f.name))
		if !ok {
			return
		}
		*f.dst = v
	}
	visible, ok := doc.Bool(key(id, "visible"))
	if !ok {
		return
	}
	poppedOut, _ := doc.Bool(key(id, "popout"))

	switch {
	case vr:
		w.handle.SetPositioningMode(core.PositionVR, -1)
	case poppedOut:
		w.handle.SetPositioningMode(core.PositionPopOut, -1)
		w.handle.SetGeometryOS(b)
	default:
		if w.handle.PoppedOut() {
			w.handle.SetPositioningMode(core.PositionFree, -1)
		}
		w.handle.SetGeometry(b)
	}
	w.handle.SetVisible(visible)
}
