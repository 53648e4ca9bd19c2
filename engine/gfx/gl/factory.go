// Package glbackend implements gfx on an OpenGL 3.3 core context owned by a
// window. All calls must happen on the thread the context is current on.
package glbackend

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/text"
)

// Surface is the window side of a target: its GL context and back buffer.
type Surface interface {
	MakeCurrent()
	SwapBuffers()
}

const (
	defaultMaxQuads = 4096
	diskSize        = 256
)

type Factory struct {
	surface Surface
	log     *slog.Logger
	closed  bool
}

func NewFactory(s Surface, log *slog.Logger) (*Factory, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil surface", gfx.ErrResourceCreation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Factory{surface: s, log: log}, nil
}

// TextStyle keeps the resolved font bytes; targets build their own glyph
// textures from it on first use.
type TextStyle struct {
	desc gfx.TextStyleDesc
	ttf  []byte
}

func (s *TextStyle) Desc() gfx.TextStyleDesc { return s.desc }

func (f *Factory) CreateTextStyle(desc gfx.TextStyleDesc) (gfx.TextStyle, error) {
	if desc.Size <= 0 {
		return nil, fmt.Errorf("%w: text size %v", gfx.ErrResourceCreation, desc.Size)
	}
	ttf, err := text.ResolveFont(desc.Family, int(desc.Weight))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gfx.ErrResourceCreation, err)
	}
	return &TextStyle{desc: desc, ttf: ttf}, nil
}

func (f *Factory) CreateTarget(size gfx.Size) (gfx.Target, error) {
	if f.closed {
		return nil, gfx.ErrReleased
	}
	f.surface.MakeCurrent()

	prog, err := newProgram()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", gfx.ErrResourceCreation, err)
	}
	t := &Target{
		f:       f,
		size:    size,
		prog:    prog,
		batch:   newBatch(defaultMaxQuads),
		white:   uploadRGBA(whiteImage(), false),
		disk:    uploadRGBA(diskImage(diskSize), true),
		sheets:  make(map[*TextStyle]*glyphSheet),
		surface: f.surface,
	}
	if err := drainErrors(); err != nil {
		t.Release()
		return nil, fmt.Errorf("%w: %w", gfx.ErrResourceCreation, err)
	}
	f.log.Debug("gl target created", "w", size.W, "h", size.H)
	return t, nil
}

func (f *Factory) Close() error {
	f.closed = true
	return nil
}
