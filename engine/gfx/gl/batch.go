package glbackend

import (
	"math"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/gallows/engine/colors"
)

// Vertex: pos2 + color4 + uv2 => 8 floats
const vStride = 8
const vertsPerQuad = 4
const indsPerQuad = 6

// Statistics captures the counts generated during a frame.
type Statistics struct {
	DrawCalls int
	QuadCount int
}

// batch accumulates textured quads and flushes them whenever the bound
// texture changes or the buffer is full.
type batch struct {
	vao, vbo, ebo uint32
	verts         []float32
	quadCount     int
	maxQuads      int
	tex           uint32
	stats         Statistics
}

func newBatch(maxQuads int) *batch {
	if maxQuads <= 0 {
		maxQuads = 1024
	}
	b := &batch{
		maxQuads: maxQuads,
		verts:    make([]float32, 0, maxQuads*vertsPerQuad*vStride),
	}

	inds := make([]uint32, 0, maxQuads*indsPerQuad)
	for q := uint32(0); q < uint32(maxQuads); q++ {
		v := q * vertsPerQuad
		inds = append(inds, v+0, v+2, v+1, v+1, v+2, v+3)
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, cap(b.verts)*4, nil, gl.DYNAMIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(inds)*4, gl.Ptr(inds), gl.STATIC_DRAW)

	const stride = vStride * 4 // bytes
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(0)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, unsafe.Pointer(uintptr(6*4)))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return b
}

func (b *batch) begin() {
	b.stats = Statistics{}
	b.verts = b.verts[:0]
	b.quadCount = 0
	b.tex = 0
}

// bind switches the batch texture, flushing pending quads first.
func (b *batch) bind(tex uint32) {
	if b.tex == tex {
		return
	}
	b.flush()
	b.tex = tex
}

// quad adds a rectangle centred on (x, y), rotated by rotationRad.
func (b *batch) quad(x, y, w, h, rotationRad float32, c colors.Color, u0, v0, u1, v1 float32) {
	if b.quadCount >= b.maxQuads {
		b.flush()
	}
	halfW := w * 0.5
	halfH := h * 0.5

	// corners (TL, TR, BL, BR) with UVs. Positive Y goes down so top is -halfH.
	corners := [4][4]float32{
		{-halfW, -halfH, u0, v0},
		{halfW, -halfH, u1, v0},
		{-halfW, halfH, u0, v1},
		{halfW, halfH, u1, v1},
	}
	cs, sn := float32(math.Cos(float64(rotationRad))), float32(math.Sin(float64(rotationRad)))

	// premultiply once per quad
	a := c[3]
	r, g, bl := c[0]*a, c[1]*a, c[2]*a

	for _, p := range corners {
		rx := p[0]*cs - p[1]*sn + x
		ry := p[0]*sn + p[1]*cs + y
		b.verts = append(b.verts, rx, ry, r, g, bl, a, p[2], p[3])
	}
	b.quadCount++
	b.stats.QuadCount++
}

func (b *batch) flush() {
	if b.quadCount == 0 {
		return
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.tex)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(b.verts)*4, gl.Ptr(b.verts))
	gl.DrawElements(gl.TRIANGLES, int32(b.quadCount*indsPerQuad), gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
	b.stats.DrawCalls++

	b.verts = b.verts[:0]
	b.quadCount = 0
}

func (b *batch) delete() {
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
	}
	if b.vbo != 0 {
		gl.DeleteBuffers(1, &b.vbo)
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
	}
	*b = batch{}
}
