package colors

// Color is straight (non-premultiplied) RGBA in [0..1].
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Yellow   = Color{1, 1, 0, 1}
	SkyBlue  = Color{0.529, 0.808, 0.922, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}

	// Scene palette.
	Figure  = Yellow
	Ground  = Color{0.4392, 0.2824, 0.2353, 1}
	Gallows = Color{0.1, 0.1, 0.1, 1}
	Grass   = Color{0.28, 0.72, 0.20, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Opacity returns the alpha channel.
func (c Color) Opacity() float32 { return c[3] }

// RGBA8 converts to 8-bit channels, clamping out of range values.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c[0]), to8(c[1]), to8(c[2]), to8(c[3])
}

func to8(v float32) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
