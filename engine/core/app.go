package core

import "time"

// Handler receives window notifications on the event thread.
// An error from EventCreated aborts window creation; errors from other
// events are logged and otherwise ignored.
type Handler interface {
	HandleEvent(e *Engine, ev Event) error
}

type HandlerFunc func(e *Engine, ev Event) error

func (f HandlerFunc) HandleEvent(e *Engine, ev Event) error { return f(e, ev) }

// Engine exposes core services to the Handler.
type Engine struct {
	Window Window
	start  time.Time
	dirty  bool
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Invalidate requests a repaint of the whole client area. Repaints are
// coalesced: any number of calls before the loop wakes yields one EventPaint.
func (e *Engine) Invalidate() {
	e.dirty = true
	e.Window.PostEmptyEvent()
}

// Window abstraction.
type Window interface {
	WaitEvents()
	PostEmptyEvent()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	Title() string
	SetTitle(title string)
	Clipboard() string
	Show()
	Destroy()
	SetEventCallback(cb func(Event))
}

// Event is the closed set of window notifications.
type Event interface{ isEvent() }

// EventCreated is dispatched once, before the window is shown.
type EventCreated struct{}

func (EventCreated) isEvent() {}

// EventPaint asks for the client area to be redrawn.
type EventPaint struct{}

func (EventPaint) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

// EventDestroyed is dispatched once, after the loop ends and before the
// window is destroyed.
type EventDestroyed struct{}

func (EventDestroyed) isEvent() {}

// EventKeyChar carries a translated character; control combinations arrive
// as their ASCII control codes (Ctrl-A = 1).
type EventKeyChar struct{ Code rune }

func (EventKeyChar) isEvent() {}

// Config for the engine run.
type Config struct {
	Title    string     `toml:"title"`
	Width    int        `toml:"width"`
	Height   int        `toml:"height"`
	VSync    bool       `toml:"vsync"`
	LogLevel string     `toml:"log_level"`
	Text     TextConfig `toml:"text"`
}

// TextConfig selects where the Ctrl-A text comes from and how it is drawn.
type TextConfig struct {
	Source string  `toml:"source"` // title, clipboard or static
	Value  string  `toml:"value"`  // used by the static source
	Family string  `toml:"family"`
	Size   float32 `toml:"size"`
	Weight int     `toml:"weight"`
}
