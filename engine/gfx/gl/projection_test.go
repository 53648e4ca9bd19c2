package glbackend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixelProjection_Corners(t *testing.T) {
	vp := pixelProjection(800, 600)

	x, y := apply(vp, 0, 0)
	assert.InDelta(t, -1, x, 1e-6)
	assert.InDelta(t, 1, y, 1e-6)

	x, y = apply(vp, 800, 600)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, -1, y, 1e-6)

	x, y = apply(vp, 400, 300)
	assert.InDelta(t, 0, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
}

func TestDiskImage(t *testing.T) {
	img := diskImage(64)
	center := img.RGBAAt(32, 32)
	assert.Equal(t, uint8(255), center.A)
	assert.Equal(t, center.R, center.A, "premultiplied white")
	assert.Zero(t, img.RGBAAt(0, 0).A)
	edge := img.RGBAAt(9, 10).A
	assert.Greater(t, edge, uint8(0))
	assert.Less(t, edge, uint8(255))
}
