package hangman

import (
	"fmt"
	"log/slog"

	"github.com/hubastard/gallows/engine/core"
	"github.com/hubastard/gallows/engine/gfx"
	"github.com/hubastard/gallows/engine/profiler"
)

// App adapts window notifications to a Renderer.
type App struct {
	// NewFactory acquires the size independent graphics factory on
	// EventCreated. A failure aborts window creation.
	NewFactory func(win core.Window) (gfx.Factory, error)
	// NewTextSource picks what Ctrl-A copies into the scene. Nil means the
	// window title.
	NewTextSource func(win core.Window) (TextSource, error)
	TextStyle     gfx.TextStyleDesc
	Log           *slog.Logger

	factory  gfx.Factory
	source   TextSource
	renderer *Renderer
}

// Renderer is nil until EventCreated succeeds.
func (a *App) Renderer() *Renderer { return a.renderer }

func (a *App) logger() *slog.Logger {
	if a.Log == nil {
		return slog.Default()
	}
	return a.Log
}

func (a *App) HandleEvent(e *core.Engine, ev core.Event) error {
	switch v := ev.(type) {
	case core.EventCreated:
		return a.onCreated(e)
	case core.EventPaint:
		a.renderer.Draw()
	case core.EventResize:
		a.renderer.Resize(v.W, v.H)
	case core.EventKeyChar:
		a.onKeyChar(e, v.Code)
	case core.EventDestroyed:
		return a.onDestroyed()
	}
	return nil
}

func (a *App) onCreated(e *core.Engine) error {
	f, err := a.NewFactory(e.Window)
	if err != nil {
		return fmt.Errorf("create graphics factory: %w", err)
	}

	src := TextSource(TextSourceFunc(e.Window.Title))
	if a.NewTextSource != nil {
		if src, err = a.NewTextSource(e.Window); err != nil {
			_ = f.Close()
			return fmt.Errorf("create text source: %w", err)
		}
	}

	style := a.TextStyle
	if style == (gfx.TextStyleDesc{}) {
		style = DefaultTextStyle
	}

	a.factory, a.source = f, src
	a.renderer = NewRenderer(f, e.Window,
		WithInvalidator(e),
		WithLogger(a.logger()),
		WithTextStyle(style),
	)
	return nil
}

func (a *App) onKeyChar(e *core.Engine, code rune) {
	switch code {
	case core.CtrlA:
		a.renderer.OnTextTrigger(a.source.Text())
		e.Invalidate()
	case core.CtrlP:
		if path, err := profiler.OpenProfilerGraph(); err != nil {
			a.logger().Warn("profiler dump failed", "err", err)
		} else if path != "" {
			a.logger().Info("speedscope dump", "path", path)
		}
	}
}

func (a *App) onDestroyed() error {
	if a.renderer != nil {
		a.renderer.ReleaseResources()
	}
	if a.factory == nil {
		return nil
	}
	err := a.factory.Close()
	a.factory = nil
	return err
}
