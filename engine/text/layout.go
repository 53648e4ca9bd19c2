package text

// Quad is one glyph placed in pixel space (Y down) with its atlas UVs.
type Quad struct {
	Rune           rune
	X, Y, W, H     float32 // top-left + size
	U0, V0, U1, V1 float32
}

// Box is the layout region. Zero W disables wrapping, zero H disables
// vertical clipping.
type Box struct{ X, Y, W, H float32 }

// Layout places s inside box starting at its top-left corner. Lines break on
// '\n' and, when box.W > 0, before the glyph that would cross the right edge.
// Lines that start below the box are dropped. Glyphs without a bitmap
// (spaces) advance the pen but produce no quad.
func Layout(a *Atlas, s string, box Box) []Quad {
	if s == "" || a == nil {
		return nil
	}
	lineH := a.LineHeight()
	penX := box.X
	baseY := box.Y + a.Ascent
	var prev rune = -1
	var out []Quad

	newline := func() bool {
		penX = box.X
		baseY += lineH
		prev = -1
		return box.H <= 0 || baseY-a.Ascent < box.Y+box.H
	}

	for _, r := range s {
		if r == '\n' {
			if !newline() {
				break
			}
			continue
		}

		g, ok := a.Glyphs[r]
		if !ok {
			if sp, ok2 := a.Glyphs[' ']; ok2 {
				penX += sp.Advance
			}
			prev = r
			continue
		}

		if prev >= 0 {
			penX += a.Kern(prev, r)
		}
		if box.W > 0 && penX > box.X && penX+g.Advance > box.X+box.W {
			if !newline() {
				break
			}
		}

		if g.W > 0 && g.H > 0 {
			out = append(out, Quad{
				Rune: r,
				X:    penX + g.BearingX,
				Y:    baseY - g.BearingY,
				W:    float32(g.W),
				H:    float32(g.H),
				U0:   g.U0,
				V0:   g.V0,
				U1:   g.U1,
				V1:   g.V1,
			})
		}
		penX += g.Advance
		prev = r
	}
	return out
}

// Measure returns the unwrapped extent of s.
func Measure(a *Atlas, s string) (width, height float32) {
	var lineW float32
	var prev rune = -1
	lineH := a.LineHeight()
	height = lineH

	for _, r := range s {
		if r == '\n' {
			width = max(width, lineW)
			lineW = 0
			height += lineH
			prev = -1
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			if sp, ok2 := a.Glyphs[' ']; ok2 {
				lineW += sp.Advance
			}
			prev = r
			continue
		}
		if prev >= 0 {
			lineW += a.Kern(prev, r)
		}
		lineW += g.Advance
		prev = r
	}
	return max(width, lineW), height
}
