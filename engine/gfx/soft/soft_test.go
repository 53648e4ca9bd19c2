package soft

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertPixel compares 8-bit channels with a small tolerance for AA.
func assertPixel(t *testing.T, img image.Image, x, y int, want colors.Color) {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA8()
	got := [4]int{int(r >> 8), int(g >> 8), int(b >> 8), int(a >> 8)}
	exp := [4]int{int(wr), int(wg), int(wb), int(wa)}
	for i := range got {
		assert.InDelta(t, exp[i], got[i], 3, "pixel (%d,%d) channel %d: got %v want %v", x, y, i, got, exp)
	}
}

func newTarget(t *testing.T, w, h int) (*Factory, *Target) {
	t.Helper()
	f := NewFactory(nil)
	t.Cleanup(func() { _ = f.Close() })
	tg, err := f.CreateTarget(gfx.Size{W: w, H: h})
	require.NoError(t, err)
	t.Cleanup(tg.Release)
	return f, tg.(*Target)
}

func TestCreateTarget_InvalidSize(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.CreateTarget(gfx.Size{W: 0, H: 10})
	assert.ErrorIs(t, err, gfx.ErrResourceCreation)
}

func TestTarget_DrawPrimitives(t *testing.T) {
	_, tg := newTarget(t, 100, 100)
	red, err := tg.CreateSolidBrush(colors.Color{1, 0, 0, 1})
	require.NoError(t, err)
	green, err := tg.CreateSolidBrush(colors.Color{0, 1, 0, 1})
	require.NoError(t, err)

	tg.BeginDraw()
	tg.Clear(colors.White)
	tg.DrawLine(gfx.Point{X: 0, Y: 20}, gfx.Point{X: 100, Y: 20}, red, 10)
	tg.FillEllipse(gfx.Circle(50, 60, 15), green)
	require.NoError(t, tg.EndDraw())

	img := tg.Image()
	assertPixel(t, img, 50, 20, colors.Color{1, 0, 0, 1})
	assertPixel(t, img, 50, 60, colors.Color{0, 1, 0, 1})
	assertPixel(t, img, 5, 90, colors.White)
	assertPixel(t, img, 50, 5, colors.White)
}

func TestTarget_Resize(t *testing.T) {
	_, tg := newTarget(t, 40, 30)
	require.NoError(t, tg.Resize(gfx.Size{W: 80, H: 60}))
	assert.Equal(t, gfx.Size{W: 80, H: 60}, tg.Size())
	assert.Equal(t, 80, tg.Image().Bounds().Dx())
}

func TestTarget_Text(t *testing.T) {
	f, tg := newTarget(t, 200, 80)
	style, err := f.CreateTextStyle(gfx.TextStyleDesc{Family: "Go", Size: 40, Weight: gfx.WeightBold})
	require.NoError(t, err)
	black, _ := tg.CreateSolidBrush(colors.Black)

	tg.BeginDraw()
	tg.Clear(colors.White)
	tg.DrawText("", style, gfx.Rect{X: 0, Y: 0, W: 200, H: 80}, black)
	require.NoError(t, tg.EndDraw())
	assert.Zero(t, countDark(tg.Image()), "empty text draws nothing")

	tg.BeginDraw()
	tg.Clear(colors.White)
	tg.DrawText("Hello", style, gfx.Rect{X: 0, Y: 0, W: 200, H: 80}, black)
	require.NoError(t, tg.EndDraw())
	assert.Greater(t, countDark(tg.Image()), 50)
}

func countDark(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x8000 {
				n++
			}
		}
	}
	return n
}

func TestTextStyle_UnknownFamily(t *testing.T) {
	f := NewFactory(nil)
	_, err := f.CreateTextStyle(gfx.TextStyleDesc{Family: "Wingdings", Size: 12})
	assert.ErrorIs(t, err, gfx.ErrResourceCreation)
}

func TestRelease(t *testing.T) {
	_, tg := newTarget(t, 10, 10)
	tg.Release()
	tg.Release()
	assert.ErrorIs(t, tg.EndDraw(), gfx.ErrReleased)
	_, err := tg.CreateSolidBrush(colors.White)
	assert.ErrorIs(t, err, gfx.ErrReleased)
	assert.Nil(t, tg.Image())
}

func TestSavePNG(t *testing.T) {
	_, tg := newTarget(t, 10, 10)
	tg.BeginDraw()
	tg.Clear(colors.SkyBlue)
	require.NoError(t, tg.EndDraw())
	require.NoError(t, tg.SavePNG(filepath.Join(t.TempDir(), "out.png")))
}
