// Package geom holds the small value types shared by the window and capture
// packages and the conversions between the host's desktop space and
// window-local space.
//
// Desktop space has its origin at the bottom-left of the screen with Y
// growing upwards. Window-local space has its origin at the top-left of the
// window with Y growing downwards:
//
//	     y    +---------->+ top
//	     ^    |    |win.y |
//	out.y|----|----x      | height
//	     |    | win.x     |
//	     |    v    |      |
//	     |    +-----------+ bottom
//	     |  left  width  right
//	     +---------|----------> x
//	               out.x
package geom

import "math"

type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div divides component-wise.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// Bounds is a host rectangle in desktop space. Top > Bottom for any
// non-empty rectangle.
type Bounds struct {
	Left, Top, Right, Bottom int
}

// FromPosSize builds bounds from a bottom-left corner and a size.
func FromPosSize(pos, size Vec2) Bounds {
	l, b := int(math.Round(pos.X)), int(math.Round(pos.Y))
	return Bounds{
		Left:   l,
		Bottom: b,
		Right:  l + int(math.Round(size.X)),
		Top:    b + int(math.Round(size.Y)),
	}
}

func (b Bounds) Width() int  { return b.Right - b.Left }
func (b Bounds) Height() int { return b.Top - b.Bottom }

// Size returns width and height as a vector.
func (b Bounds) Size() Vec2 { return Vec2{float64(b.Width()), float64(b.Height())} }

// Origin returns the bottom-left corner.
func (b Bounds) Origin() Vec2 { return Vec2{float64(b.Left), float64(b.Bottom)} }

func (b Bounds) Translate(dx, dy int) Bounds {
	return Bounds{b.Left + dx, b.Top + dy, b.Right + dx, b.Bottom + dy}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= float64(b.Left) && p.X <= float64(b.Right) &&
		p.Y >= float64(b.Bottom) && p.Y <= float64(b.Top)
}

// Inset shrinks b by m units on every side.
func (b Bounds) Inset(m int) Bounds {
	return Bounds{b.Left + m, b.Top - m, b.Right - m, b.Bottom + m}
}

// ContainsStrict reports whether p lies strictly inside b.
func (b Bounds) ContainsStrict(p Vec2) bool {
	return p.X > float64(b.Left) && p.X < float64(b.Right) &&
		p.Y > float64(b.Bottom) && p.Y < float64(b.Top)
}

// DeskToWin converts a desktop point into the window-local space of b.
func DeskToWin(b Bounds, p Vec2) Vec2 {
	return Vec2{p.X - float64(b.Left), float64(b.Top) - p.Y}
}

// WinToDesk converts a window-local point of b back into desktop space.
func WinToDesk(b Bounds, p Vec2) Vec2 {
	return Vec2{p.X + float64(b.Left), float64(b.Top) - p.Y}
}
