package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}

	// Title is the window title label color drawn under undecorated windows.
	Title = White.WithAlpha(0.8)
	// DarkBox backs the title label.
	DarkBox = Black.WithAlpha(0.6)
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA8 converts to 8-bit channels.
func (c Color) RGBA8() (r, g, b, a uint8) {
	conv := func(f float32) uint8 {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return conv(c[0]), conv(c[1]), conv(c[2]), conv(c[3])
}
