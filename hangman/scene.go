package hangman

import (
	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx"
)

type role int

const (
	roleFigure role = iota
	roleGround
	roleGallows
	roleGrass
	numRoles
)

// palette is indexed by role.
var palette = [numRoles]colors.Color{
	roleFigure:  colors.Figure,
	roleGround:  colors.Ground,
	roleGallows: colors.Gallows,
	roleGrass:   colors.Grass,
}

var Background = colors.SkyBlue

type segment struct {
	from, to gfx.Point
	role     role
	width    float32
}

func seg(x0, y0, x1, y1 float32, r role, w float32) segment {
	return segment{from: gfx.Point{X: x0, Y: y0}, to: gfx.Point{X: x1, Y: y1}, role: r, width: w}
}

var (
	ground = seg(0, 1003, 10000, 1003, roleGround, 1000)
	grass  = seg(0, 510, 10000, 510, roleGrass, 50)

	// beam, rope, post, foot, brace
	gallows = [...]segment{
		seg(250, 100, 50, 100, roleGallows, 20),
		seg(250, 100, 250, 150, roleGallows, 20),
		seg(50, 100, 50, 500, roleGallows, 20),
		seg(10, 500, 90, 500, roleGallows, 20),
		seg(140, 100, 50, 200, roleGallows, 20),
	}

	head = gfx.Circle(250, 175, 45)

	figure = [...]segment{
		seg(250, 175, 250, 350, roleFigure, 20), // torso
		seg(250, 350, 200, 400, roleFigure, 20),
		seg(250, 350, 300, 400, roleFigure, 20),
		seg(250, 250, 200, 300, roleFigure, 20),
		seg(250, 250, 300, 300, roleFigure, 20),
	}
)

// TextRegion is where the input text is laid out, under the grass.
var TextRegion = gfx.Rect{X: 10, Y: 545, W: 980, H: 100}

// paintScene issues the fixed command list. The caller owns Begin/EndDraw.
func paintScene(t gfx.Target, b *brushSet, style gfx.TextStyle, text string) {
	t.Clear(Background)

	stroke := func(s segment) {
		t.DrawLine(s.from, s.to, b[s.role], s.width)
	}

	stroke(ground)
	stroke(grass)
	for _, s := range gallows {
		stroke(s)
	}

	t.FillEllipse(head, b[roleFigure])
	for _, s := range figure {
		stroke(s)
	}

	if style != nil {
		t.DrawText(text, style, TextRegion, b[roleGallows])
	}
}
