package glbackend

// pixelProjection maps pixel coordinates (origin top-left, Y down) to clip
// space.
func pixelProjection(w, h int) [16]float32 {
	return ortho(0, float32(w), float32(h), 0, -1, 1)
}

// column-major, GLSL-style
func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// apply transforms (x, y, 0, 1) and returns clip-space x, y.
func apply(m [16]float32, x, y float32) (float32, float32) {
	return m[0]*x + m[4]*y + m[12], m[1]*x + m[5]*y + m[13]
}
