package hangman

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/profiler"
)

// Surface reports the current client area of the window being drawn into.
type Surface interface {
	FramebufferSize() (int, int)
}

// Invalidator schedules a repaint of the whole client area.
type Invalidator interface {
	Invalidate()
}

type brushSet [numRoles]gfx.Brush

// DefaultTextStyle is used when no WithTextStyle option is given.
var DefaultTextStyle = gfx.TextStyleDesc{Family: "Go", Size: 48, Weight: gfx.WeightBold}

// Renderer owns the device dependent resources of the hangman scene and
// draws it once per invalidated frame. It is not safe for concurrent use;
// every method is expected to run on the window's event thread.
//
// The target and brushes are either all present (Ready) or all absent.
type Renderer struct {
	factory    gfx.Factory
	surface    Surface
	invalidate Invalidator
	log        *slog.Logger
	styleDesc  gfx.TextStyleDesc

	target  gfx.Target
	brushes brushSet
	style   gfx.TextStyle
	layout  Layout
	text    string
}

type Option func(*Renderer)

func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

func WithInvalidator(inv Invalidator) Option {
	return func(r *Renderer) { r.invalidate = inv }
}

func WithTextStyle(desc gfx.TextStyleDesc) Option {
	return func(r *Renderer) { r.styleDesc = desc }
}

func NewRenderer(f gfx.Factory, s Surface, opts ...Option) *Renderer {
	r := &Renderer{
		factory:   f,
		surface:   s,
		log:       slog.New(slog.DiscardHandler),
		styleDesc: DefaultTextStyle,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Ready reports whether the target and brushes currently exist.
func (r *Renderer) Ready() bool { return r.target != nil }

func (r *Renderer) Layout() Layout { return r.layout }

func (r *Renderer) Text() string { return r.text }

// Target exposes the live target, or nil when not Ready.
func (r *Renderer) Target() gfx.Target { return r.target }

// EnsureResources creates the target at the current client size, its
// brushes and, once, the text style. On failure nothing created by this call
// survives and the renderer stays uninitialised so the next call retries.
func (r *Renderer) EnsureResources() error {
	if r.target != nil {
		return nil
	}

	w, h := r.surface.FramebufferSize()
	t, err := r.factory.CreateTarget(gfx.Size{W: max(w, 1), H: max(h, 1)})
	if err != nil {
		return fmt.Errorf("create target: %w", err)
	}

	var b brushSet
	for i, c := range palette {
		if b[i], err = t.CreateSolidBrush(c); err != nil {
			t.Release()
			return fmt.Errorf("create brush %d: %w", i, err)
		}
	}

	if r.style == nil {
		style, err := r.factory.CreateTextStyle(r.styleDesc)
		if err != nil {
			t.Release()
			return fmt.Errorf("create text style: %w", err)
		}
		r.style = style
	}

	r.target, r.brushes = t, b
	r.layout = NewLayout(t.Size())
	return nil
}

// Draw paints one frame. Frames are skipped while resources cannot be
// acquired; any EndDraw failure drops every resource, the text style
// included, so the next Draw rebuilds from scratch.
func (r *Renderer) Draw() bool {
	defer profiler.Start("hangman.Renderer.Draw")()

	if err := r.EnsureResources(); err != nil {
		r.log.Debug("skipping frame", "err", err)
		return false
	}

	r.target.BeginDraw()
	paintScene(r.target, &r.brushes, r.style, r.text)
	if err := r.target.EndDraw(); err != nil {
		if errors.Is(err, gfx.ErrDeviceLost) {
			r.log.Warn("device lost, discarding graphics resources")
		} else {
			r.log.Warn("end draw failed, discarding graphics resources", "err", err)
		}
		r.ReleaseResources()
		r.style = nil
		return false
	}
	return true
}

// Resize resizes the target and schedules a repaint. Without a target it
// does nothing; the next Draw creates one at the new size.
func (r *Renderer) Resize(w, h int) {
	if r.target == nil || w <= 0 || h <= 0 {
		return
	}
	if err := r.target.Resize(gfx.Size{W: w, H: h}); err != nil {
		r.log.Warn("resize failed, discarding graphics resources", "err", err)
		r.ReleaseResources()
	} else {
		r.layout = NewLayout(r.target.Size())
	}
	if r.invalidate != nil {
		r.invalidate.Invalidate()
	}
}

// ReleaseResources drops the target and its brushes. The text style has no
// device affinity and is kept.
func (r *Renderer) ReleaseResources() {
	if r.target != nil {
		r.target.Release()
	}
	r.target = nil
	r.brushes = brushSet{}
}

// OnTextTrigger replaces the text drawn under the grass.
func (r *Renderer) OnTextTrigger(s string) {
	r.text = s
}
