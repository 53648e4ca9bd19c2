package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type Glyph struct {
	Rune     rune
	Advance  float32 // pixels
	BearingX float32 // left bearing in pixels
	BearingY float32 // distance from baseline to glyph top
	W, H     int     // glyph bitmap size
	U0, V0   float32 // UVs in atlas
	U1, V1   float32
}

// Atlas is a CPU-side glyph sheet: white glyphs with alpha coverage. It has
// no device affinity; backends upload Image as a texture.
type Atlas struct {
	SizePx                   float32
	Ascent, Descent, LineGap float32
	Glyphs                   map[rune]Glyph
	Image                    *image.RGBA
	kerning                  map[rune]map[rune]float32
	face                     font.Face
}

const (
	atlasPadding = 2
	atlasMinSize = 256
	atlasMaxSize = 4096
)

// BuildAtlas rasterises Latin-1 (32..255) from ttf at sizePx.
func BuildAtlas(ttf []byte, sizePx float32) (*Atlas, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %v", sizePx)
	}
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(sizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}

	m := face.Metrics()
	ascent := float32(m.Ascent.Round())
	descent := float32(-m.Descent.Round())
	lineGap := float32(m.Height.Round()) - ascent + descent
	if lineGap < 0 {
		lineGap = 0
	}

	type meas struct {
		r      rune
		w, h   int
		adv    float32
		bx, by float32
	}
	measure := make([]meas, 0, 224)
	for r := rune(32); r <= 255; r++ {
		br, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		measure = append(measure, meas{
			r:   r,
			w:   br.Max.X.Ceil() - br.Min.X.Floor(),
			h:   br.Max.Y.Ceil() - br.Min.Y.Floor(),
			adv: float32(adv.Round()),
			bx:  float32(br.Min.X.Floor()),
			by:  float32(-br.Min.Y.Floor()),
		})
	}

	// Shelf packer; grow the square until everything fits.
	size := atlasMinSize
	var pos map[rune]image.Point
	for {
		x, y, rowH := atlasPadding, atlasPadding, 0
		fits := true
		pos = make(map[rune]image.Point, len(measure))
		for _, g := range measure {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+atlasPadding > size {
				x = atlasPadding
				y += rowH + atlasPadding
				rowH = 0
			}
			if g.w+2*atlasPadding > size || y+g.h+atlasPadding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + atlasPadding
			if g.h > rowH {
				rowH = g.h
			}
		}
		if fits {
			break
		}
		size *= 2
		if size > atlasMaxSize {
			_ = face.Close()
			return nil, fmt.Errorf("font atlas too large (>%d)", atlasMaxSize)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.RGBA{}}, image.Point{}, draw.Src)
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	glyphs := make(map[rune]Glyph, len(measure))
	for _, g := range measure {
		out := Glyph{
			Rune: g.r, Advance: g.adv,
			BearingX: g.bx, BearingY: g.by,
			W: g.w, H: g.h,
		}
		if p, ok := pos[g.r]; ok {
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			out.U0 = float32(p.X) / float32(size)
			out.V0 = float32(p.Y) / float32(size)
			out.U1 = float32(p.X+g.w) / float32(size)
			out.V1 = float32(p.Y+g.h) / float32(size)
		}
		glyphs[g.r] = out
	}

	kerning := make(map[rune]map[rune]float32)
	for _, a := range measure {
		for _, b := range measure {
			if dx := face.Kern(a.r, b.r); dx != 0 {
				if kerning[a.r] == nil {
					kerning[a.r] = make(map[rune]float32)
				}
				kerning[a.r][b.r] = float32(dx.Round())
			}
		}
	}

	return &Atlas{
		SizePx: sizePx,
		Ascent: ascent, Descent: descent, LineGap: lineGap,
		Glyphs:  glyphs,
		Image:   dst,
		kerning: kerning,
		face:    face,
	}, nil
}

// Kern returns the pair adjustment between prev and r in pixels.
func (a *Atlas) Kern(prev, r rune) float32 {
	return a.kerning[prev][r]
}

func (a *Atlas) LineHeight() float32 { return a.Ascent - a.Descent + a.LineGap }

func (a *Atlas) Close() error {
	if a == nil || a.face == nil {
		return nil
	}
	err := a.face.Close()
	a.face = nil
	return err
}
