package glbackend

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/text"
)

type Brush struct {
	t     *Target
	color colors.Color
}

func (b *Brush) Color() colors.Color { return b.color }

type glyphSheet struct {
	atlas *text.Atlas
	tex   uint32
}

type Target struct {
	f       *Factory
	surface Surface
	size    gfx.Size

	prog   program
	batch  *batch
	white  uint32
	disk   uint32
	sheets map[*TextStyle]*glyphSheet
	vp     [16]float32

	released bool
}

func (t *Target) Size() gfx.Size { return t.size }

// Resize only records the size: the default framebuffer follows the window.
func (t *Target) Resize(size gfx.Size) error {
	if t.released {
		return gfx.ErrReleased
	}
	t.size = size
	return nil
}

func (t *Target) CreateSolidBrush(c colors.Color) (gfx.Brush, error) {
	if t.released {
		return nil, gfx.ErrReleased
	}
	return &Brush{t: t, color: c}, nil
}

// Stats reports what the last frame submitted.
func (t *Target) Stats() Statistics {
	if t.batch == nil {
		return Statistics{}
	}
	return t.batch.stats
}

func (t *Target) BeginDraw() {
	t.surface.MakeCurrent()
	t.vp = pixelProjection(t.size.W, t.size.H)
	gl.Viewport(0, 0, int32(t.size.W), int32(t.size.H))
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	t.prog.use(&t.vp)
	t.batch.begin()
}

func (t *Target) Clear(c colors.Color) {
	t.batch.flush()
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawLine draws a butt-capped segment as a rotated quad.
func (t *Target) DrawLine(p0, p1 gfx.Point, b gfx.Brush, width float32) {
	dx, dy := p1.X-p0.X, p1.Y-p0.Y
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 || width <= 0 {
		return
	}
	angle := float32(math.Atan2(float64(dy), float64(dx)))
	t.batch.bind(t.white)
	t.batch.quad((p0.X+p1.X)/2, (p0.Y+p1.Y)/2, length, width, angle, b.Color(), 0, 0, 1, 1)
}

func (t *Target) FillEllipse(e gfx.Ellipse, b gfx.Brush) {
	t.batch.bind(t.disk)
	t.batch.quad(e.Center.X, e.Center.Y, 2*e.RX, 2*e.RY, 0, b.Color(), 0, 0, 1, 1)
}

func (t *Target) DrawText(s string, style gfx.TextStyle, layout gfx.Rect, b gfx.Brush) {
	if s == "" {
		return
	}
	ts, ok := style.(*TextStyle)
	if !ok {
		return
	}
	sheet, err := t.sheet(ts)
	if err != nil {
		t.f.log.Warn("glyph atlas unavailable", "family", ts.desc.Family, "err", err)
		return
	}
	t.batch.bind(sheet.tex)
	box := text.Box{X: layout.X, Y: layout.Y, W: layout.W, H: layout.H}
	for _, q := range text.Layout(sheet.atlas, s, box) {
		t.batch.quad(q.X+q.W/2, q.Y+q.H/2, q.W, q.H, 0, b.Color(), q.U0, q.V0, q.U1, q.V1)
	}
}

func (t *Target) sheet(ts *TextStyle) (*glyphSheet, error) {
	if sh, ok := t.sheets[ts]; ok {
		return sh, nil
	}
	atlas, err := text.BuildAtlas(ts.ttf, ts.desc.Size)
	if err != nil {
		return nil, err
	}
	sh := &glyphSheet{atlas: atlas, tex: uploadRGBA(atlas.Image, true)}
	t.sheets[ts] = sh
	return sh, nil
}

// EndDraw submits the batch and presents. GL_OUT_OF_MEMORY is treated as
// device loss; any other pending error is returned as is.
func (t *Target) EndDraw() error {
	if t.released {
		return gfx.ErrReleased
	}
	t.batch.flush()
	gl.UseProgram(0)
	if err := drainErrors(); err != nil {
		return err
	}
	t.surface.SwapBuffers()
	return nil
}

func (t *Target) Release() {
	if t.released {
		return
	}
	t.released = true
	t.surface.MakeCurrent()
	for ts, sh := range t.sheets {
		deleteTexture(&sh.tex)
		_ = sh.atlas.Close()
		delete(t.sheets, ts)
	}
	deleteTexture(&t.white)
	deleteTexture(&t.disk)
	if t.batch != nil {
		t.batch.delete()
	}
	t.prog.delete()
}

func drainErrors() error {
	var first uint32
	lost := false
	for i := 0; i < 16; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			break
		}
		if first == 0 {
			first = code
		}
		if code == gl.OUT_OF_MEMORY {
			lost = true
		}
	}
	switch {
	case lost:
		return gfx.ErrDeviceLost
	case first != 0:
		return fmt.Errorf("gl error 0x%04x", first)
	}
	return nil
}
