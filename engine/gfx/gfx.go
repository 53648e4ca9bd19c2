// Package gfx defines the retained 2D render target contract shared by the
// hardware (gl) and offscreen (soft) backends.
//
// A Factory is size independent and lives for the whole window. A Target is
// bound to a surface and may be lost at any EndDraw; every Brush created from
// a Target dies with it. TextStyles come from the Factory and survive Target
// loss.
package gfx

import (
	"errors"

	"github.com/hubastard/gallows/engine/colors"
)

var (
	// ErrDeviceLost is returned by EndDraw when the target must be recreated.
	ErrDeviceLost = errors.New("gfx: device lost")
	// ErrResourceCreation wraps backend failures while creating a target,
	// brush or text style.
	ErrResourceCreation = errors.New("gfx: resource creation failed")
	// ErrReleased is returned when a released target or factory is used.
	ErrReleased = errors.New("gfx: resource released")
)

type Point struct{ X, Y float32 }

type Size struct{ W, H int }

// Rect is a top-left anchored rectangle in pixels.
type Rect struct{ X, Y, W, H float32 }

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

type Ellipse struct {
	Center Point
	RX, RY float32
}

func Circle(cx, cy, r float32) Ellipse {
	return Ellipse{Center: Point{cx, cy}, RX: r, RY: r}
}

type FontWeight int

const (
	WeightRegular FontWeight = 400
	WeightBold    FontWeight = 700
)

// TextStyleDesc describes a font independent of any target.
type TextStyleDesc struct {
	Family string
	Size   float32 // pixels
	Weight FontWeight
}

// TextStyle is an immutable font description resolved by a Factory.
type TextStyle interface {
	Desc() TextStyleDesc
}

// Brush is an immutable solid colour bound to the Target that created it.
type Brush interface {
	Color() colors.Color
}

// Factory creates targets and size independent resources.
type Factory interface {
	CreateTarget(size Size) (Target, error)
	CreateTextStyle(desc TextStyleDesc) (TextStyle, error)
	Close() error
}

// Target is a retained drawing surface. Draw calls are only valid between
// BeginDraw and EndDraw.
type Target interface {
	Size() Size
	Resize(size Size) error
	CreateSolidBrush(c colors.Color) (Brush, error)

	BeginDraw()
	Clear(c colors.Color)
	DrawLine(p0, p1 Point, b Brush, width float32)
	FillEllipse(e Ellipse, b Brush)
	DrawText(s string, style TextStyle, layout Rect, b Brush)
	EndDraw() error

	// Release frees the target and every brush created from it. Safe to
	// call more than once.
	Release()
}
