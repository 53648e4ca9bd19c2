package core

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// Run creates the window and dispatches notifications to h until the window
// is closed. Everything happens on the calling goroutine, which is locked to
// its OS thread for the duration.
func Run(h Handler, cfg Config, newWindow func(Config) (Window, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	defer win.Destroy()

	eng := &Engine{Window: win, start: time.Now()}
	dispatch := func(ev Event) {
		if err := h.HandleEvent(eng, ev); err != nil {
			slog.Warn("event handler failed", "event", fmt.Sprintf("%T", ev), "err", err)
		}
	}

	win.SetEventCallback(func(ev Event) {
		switch v := ev.(type) {
		case EventPaint:
			eng.dirty = true
			return
		case EventResize:
			if v.W < 1 || v.H < 1 {
				return
			}
		}
		dispatch(ev)
	})

	if err := h.HandleEvent(eng, EventCreated{}); err != nil {
		return fmt.Errorf("window creation aborted: %w", err)
	}
	win.Show()
	eng.dirty = true

	for !win.ShouldClose() {
		if eng.dirty {
			eng.dirty = false
			dispatch(EventPaint{})
		}
		if win.ShouldClose() {
			break
		}
		win.WaitEvents()
	}

	dispatch(EventDestroyed{})
	slog.Debug("engine exit", "uptime", eng.Uptime())
	return nil
}
