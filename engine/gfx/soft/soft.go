// Package soft implements gfx offscreen on top of the gg software
// rasteriser. Targets render into an in-memory pixmap that can be read back
// with Image or written with SavePNG.
package soft

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gg"
	ggtext "github.com/gogpu/gg/text"
	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/text"
)

type Factory struct {
	log     *slog.Logger
	sources map[string]*ggtext.FontSource
	closed  bool
}

func NewFactory(log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{log: log, sources: make(map[string]*ggtext.FontSource)}
}

type TextStyle struct {
	desc gfx.TextStyleDesc
	face ggtext.Face
}

func (s *TextStyle) Desc() gfx.TextStyleDesc { return s.desc }

func (f *Factory) CreateTextStyle(desc gfx.TextStyleDesc) (gfx.TextStyle, error) {
	if f.closed {
		return nil, gfx.ErrReleased
	}
	if desc.Size <= 0 {
		return nil, fmt.Errorf("%w: text size %v", gfx.ErrResourceCreation, desc.Size)
	}
	src, err := f.source(desc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gfx.ErrResourceCreation, err)
	}
	return &TextStyle{desc: desc, face: src.Face(float64(desc.Size))}, nil
}

// source shares one parsed font per (family, weight).
func (f *Factory) source(desc gfx.TextStyleDesc) (*ggtext.FontSource, error) {
	key := fmt.Sprintf("%s/%d", desc.Family, desc.Weight)
	if src, ok := f.sources[key]; ok {
		return src, nil
	}
	ttf, err := text.ResolveFont(desc.Family, int(desc.Weight))
	if err != nil {
		return nil, err
	}
	src, err := ggtext.NewFontSource(ttf)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", desc.Family, err)
	}
	f.sources[key] = src
	return src, nil
}

func (f *Factory) CreateTarget(size gfx.Size) (gfx.Target, error) {
	if f.closed {
		return nil, gfx.ErrReleased
	}
	if size.W <= 0 || size.H <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", gfx.ErrResourceCreation, size.W, size.H)
	}
	dc := gg.NewContext(size.W, size.H)
	dc.SetLineCap(gg.LineCapButt)
	return &Target{dc: dc, log: f.log}, nil
}

// Close releases the parsed fonts. Text styles created earlier stop working.
func (f *Factory) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	var firstErr error
	for k, src := range f.sources {
		if err := src.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(f.sources, k)
	}
	return firstErr
}

type Brush struct {
	color colors.Color
}

func (b *Brush) Color() colors.Color { return b.color }

func toRGBA(c colors.Color) gg.RGBA {
	return gg.RGBA2(rgba(c))
}

func rgba(c colors.Color) (r, g, b, a float64) {
	return float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])
}

type Target struct {
	dc       *gg.Context
	log      *slog.Logger
	err      error
	released bool
}

func (t *Target) Size() gfx.Size {
	if t.released {
		return gfx.Size{}
	}
	return gfx.Size{W: t.dc.Width(), H: t.dc.Height()}
}

func (t *Target) Resize(size gfx.Size) error {
	if t.released {
		return gfx.ErrReleased
	}
	return t.dc.Resize(size.W, size.H)
}

func (t *Target) CreateSolidBrush(c colors.Color) (gfx.Brush, error) {
	if t.released {
		return nil, gfx.ErrReleased
	}
	return &Brush{color: c}, nil
}

func (t *Target) BeginDraw() {
	t.err = nil
}

func (t *Target) Clear(c colors.Color) {
	if t.released {
		return
	}
	t.dc.ClearWithColor(toRGBA(c))
}

// keep remembers the first rasteriser error of the frame for EndDraw.
func (t *Target) keep(err error) {
	if err != nil && t.err == nil {
		t.err = err
	}
}

func (t *Target) DrawLine(p0, p1 gfx.Point, b gfx.Brush, width float32) {
	if t.released {
		return
	}
	t.dc.SetRGBA(rgba(b.Color()))
	t.dc.SetLineWidth(float64(width))
	t.dc.DrawLine(float64(p0.X), float64(p0.Y), float64(p1.X), float64(p1.Y))
	t.keep(t.dc.Stroke())
}

func (t *Target) FillEllipse(e gfx.Ellipse, b gfx.Brush) {
	if t.released {
		return
	}
	t.dc.SetRGBA(rgba(b.Color()))
	t.dc.DrawEllipse(float64(e.Center.X), float64(e.Center.Y), float64(e.RX), float64(e.RY))
	t.keep(t.dc.Fill())
}

// DrawText word-wraps s to layout.W and stops at the first line that would
// start below the layout box.
func (t *Target) DrawText(s string, style gfx.TextStyle, layout gfx.Rect, b gfx.Brush) {
	if t.released || s == "" {
		return
	}
	ts, ok := style.(*TextStyle)
	if !ok {
		return
	}
	m := ts.face.Metrics()
	lineH := m.LineHeight()

	t.dc.SetFont(ts.face)
	t.dc.SetRGBA(rgba(b.Color()))
	top := float64(layout.Y)
	for _, line := range ggtext.WrapText(s, ts.face, float64(layout.W), ggtext.WrapWordChar) {
		if top >= float64(layout.Bottom()) {
			break
		}
		t.dc.DrawString(line.Text, float64(layout.X), top+m.Ascent)
		top += lineH
	}
}

func (t *Target) EndDraw() error {
	if t.released {
		return gfx.ErrReleased
	}
	if err := t.dc.FlushGPU(); err != nil {
		return fmt.Errorf("%w: %w", gfx.ErrDeviceLost, err)
	}
	err := t.err
	t.err = nil
	return err
}

// Image returns the last rendered frame.
func (t *Target) Image() image.Image {
	if t.released {
		return nil
	}
	return t.dc.Image()
}

func (t *Target) SavePNG(path string) error {
	if t.released {
		return gfx.ErrReleased
	}
	return t.dc.SavePNG(path)
}

func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	if err := t.dc.Close(); err != nil {
		t.log.Warn("closing soft target", "err", err)
	}
}
