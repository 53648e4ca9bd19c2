package glbackend

import (
	"image"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// uploadRGBA creates a texture from premultiplied, tightly packed pixels.
func uploadRGBA(img *image.RGBA, linear bool) uint32 {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	filter := int32(gl.NEAREST)
	if linear {
		filter = gl.LINEAR
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func deleteTexture(tex *uint32) {
	if *tex != 0 {
		gl.DeleteTextures(1, tex)
		*tex = 0
	}
}

func whiteImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	copy(img.Pix, []byte{255, 255, 255, 255})
	return img
}

// diskImage renders an anti-aliased white disk filling a size×size square.
func diskImage(size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	r := c - 1
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			a := math.Max(0, math.Min(1, r-d+0.5))
			v := uint8(a*255 + 0.5)
			i := img.PixOffset(x, y)
			img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = v, v, v, v
		}
	}
	return img
}
