package hangman

import "github.com/hubastard/gallows/engine/gfx"

// Layout is derived from the target size: the largest circle centred in the
// client area.
type Layout struct {
	Circle gfx.Ellipse
}

func NewLayout(size gfx.Size) Layout {
	x := float32(size.W) / 2
	y := float32(size.H) / 2
	return Layout{Circle: gfx.Circle(x, y, min(x, y))}
}

func (l Layout) Radius() float32 { return l.Circle.RX }
