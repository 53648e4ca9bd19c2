package hangman

import (
	"image"
	"testing"

	"github.com/hubastard/gallows/engine/colors"
	"github.com/hubastard/gallows/engine/gfx/soft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pixelNear(t *testing.T, img image.Image, x, y int, want colors.Color) {
	t.Helper()
	r, g, b, a := img.At(x, y).RGBA()
	wr, wg, wb, wa := want.RGBA8()
	got := []int{int(r >> 8), int(g >> 8), int(b >> 8), int(a >> 8)}
	exp := []int{int(wr), int(wg), int(wb), int(wa)}
	for i := range got {
		assert.InDelta(t, exp[i], got[i], 3, "pixel (%d,%d): got %v want %v", x, y, got, exp)
	}
}

func TestScene_SoftwareRaster(t *testing.T) {
	f := soft.NewFactory(nil)
	t.Cleanup(func() { _ = f.Close() })
	r := NewRenderer(f, &fixedSurface{1000, 700})
	t.Cleanup(r.ReleaseResources)

	r.OnTextTrigger("Hangman")
	require.True(t, r.Draw())
	img := r.Target().(*soft.Target).Image()
	require.NotNil(t, img)

	pixelNear(t, img, 5, 5, Background)
	pixelNear(t, img, 600, 50, Background)
	pixelNear(t, img, 250, 175, colors.Figure)
	pixelNear(t, img, 50, 300, colors.Gallows)
	pixelNear(t, img, 600, 510, colors.Grass)
	pixelNear(t, img, 600, 650, colors.Ground)

	dark := 0
	for y := int(TextRegion.Y); y < int(TextRegion.Bottom()); y++ {
		for x := int(TextRegion.X); x < int(TextRegion.Right()); x++ {
			if r, _, _, _ := img.At(x, y).RGBA(); r < 0x4000 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 100, "text drawn with the gallows brush")
}
