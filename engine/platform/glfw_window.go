package platform

import (
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/gallows/engine/core"
)

// GLFWWindow implements core.Window and pushes events to the app via a handler.
type GLFWWindow struct {
	w     *glfw.Window
	title string
	onEv  func(core.Event)
}

// NewGLFWWindow opens a hidden window with a current GL 3.3 core context.
// Must be called on main thread before any GL calls. The window stays hidden
// until Show so a failed EventCreated never flashes it on screen.
func NewGLFWWindow(cfg core.Config, onEvent func(core.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.2+ core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	slog.Info("opengl ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))

	gw := &GLFWWindow{w: win, title: cfg.Title, onEv: onEvent}

	// Callbacks -> translate to core.Event
	win.SetRefreshCallback(func(*glfw.Window) { gw.emit(core.EventPaint{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(core.EventResize{W: w, H: h})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if code, ok := core.ControlCode(translateKey(key), translateMods(mods)); ok {
			gw.emit(core.EventKeyChar{Code: code})
		}
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(core.EventKeyChar{Code: r})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev core.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// core.Window impl
func (g *GLFWWindow) WaitEvents()                          { glfw.WaitEvents() }
func (g *GLFWWindow) PostEmptyEvent()                      { glfw.PostEmptyEvent() }
func (g *GLFWWindow) SwapBuffers()                         { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                    { return g.w.ShouldClose() }
func (g *GLFWWindow) RequestClose()                        { g.w.SetShouldClose(true) }
func (g *GLFWWindow) FramebufferSize() (int, int)          { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) Title() string                        { return g.title }
func (g *GLFWWindow) Clipboard() string                    { return glfw.GetClipboardString() }
func (g *GLFWWindow) Show()                                { g.w.Show() }
func (g *GLFWWindow) SetEventCallback(cb func(core.Event)) { g.onEv = cb }

func (g *GLFWWindow) SetTitle(t string) {
	g.title = t
	g.w.SetTitle(t)
}

// Destroy closes the window and shuts GLFW down.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// MakeCurrent binds the window's GL context to the calling thread.
func (g *GLFWWindow) MakeCurrent() { g.w.MakeContextCurrent() }

func translateKey(k glfw.Key) core.Key {
	switch k {
	case glfw.KeyEscape:
		return core.KeyEscape
	case glfw.KeyA:
		return core.KeyA
	case glfw.KeyC:
		return core.KeyC
	case glfw.KeyP:
		return core.KeyP
	case glfw.KeyV:
		return core.KeyV
	default:
		return core.KeyUnknown
	}
}

func translateMods(m glfw.ModifierKey) core.Mod {
	var out core.Mod
	if m&glfw.ModShift != 0 {
		out |= core.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= core.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= core.ModSuper
	}
	return out
}
