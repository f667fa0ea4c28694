package main

import (
	"strings"
	"unicode"

	"github.com/hubastard/xpanel/engine/colors"
	"github.com/hubastard/xpanel/engine/core"
	"github.com/hubastard/xpanel/engine/geom"
	"github.com/hubastard/xpanel/engine/window"
)

const (
	scratchLineHeight = 16
	scratchMaxLines   = 12
)

// scratchClear is the clear button in window-local units at scale 1.
var scratchClear = geom.Bounds{Left: 260, Top: 0, Right: 320, Bottom: 24}

// Scratchpad is a host-decorated floating window that takes keyboard input.
type Scratchpad struct {
	win     *window.Window
	painter core.Painter
	lines   []string
}

func NewScratchpad(sys *window.System, p core.Painter) *Scratchpad {
	s := &Scratchpad{painter: p, lines: []string{""}}
	s.win = sys.NewWindow(window.Config{
		Size:      geom.V(320, 240),
		MinScale:  0.75,
		MaxScale:  3,
		Name:      "Scratchpad",
		Decorated: true,
		Draw:      s.draw,
		Click:     s.click,
		Key:       s.key,
	}, s)
	s.win.BindNewCommand("xpanel/scratchpad/toggle", "Toggle scratchpad")
	return s
}

func (s *Scratchpad) Text() string { return strings.Join(s.lines, "\n") }

func (s *Scratchpad) draw(w *window.Window, pos, size geom.Vec2) {
	b := geom.FromPosSize(pos, size)
	s.painter.DrawTranslucentDarkBox(b)
	s.painter.DrawString(colors.Yellow, geom.V(float64(b.Right)-52, float64(b.Top)-16), "CLEAR")
	for i, line := range s.lines {
		y := float64(b.Top) - float64((i+2)*scratchLineHeight)
		if y < float64(b.Bottom) {
			break
		}
		s.painter.DrawString(colors.White, geom.V(pos.X+8, y), line)
	}
}

// click handles the clear button. Local coordinates are scaled back to the
// configured size before hit-testing.
func (s *Scratchpad) click(_ *window.Window, act window.MouseAction, pos, scale geom.Vec2) bool {
	if act != window.MouseDown {
		return false
	}
	p := geom.V(pos.X/scale.X, pos.Y/scale.Y)
	if p.X >= float64(scratchClear.Left) && p.X < float64(scratchClear.Right) &&
		p.Y >= float64(scratchClear.Top) && p.Y < float64(scratchClear.Bottom) {
		s.lines = []string{""}
		return true
	}
	return false
}

func (s *Scratchpad) key(w *window.Window, key core.VirtualKey, c rune, ctrl bool) {
	last := len(s.lines) - 1
	switch {
	case key == core.VKeyEscape:
		w.Hide()
	case ctrl:
		s.lines = []string{""}
	case key == core.VKeyReturn:
		if len(s.lines) < scratchMaxLines {
			s.lines = append(s.lines, "")
		}
	case key == core.VKeyBack:
		if line := s.lines[last]; line != "" {
			r := []rune(line)
			s.lines[last] = string(r[:len(r)-1])
		} else if last > 0 {
			s.lines = s.lines[:last]
		}
	case unicode.IsPrint(c):
		s.lines[last] += string(unicode.ToUpper(c))
	}
}
