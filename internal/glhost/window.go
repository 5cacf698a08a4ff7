//go:build !android

package glhost

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"galaxy/internal/galaxy"
)

// Window is a glfw window that provides every collaborator a galaxy needs.
// All methods must be called on the main thread.
type Window struct {
	win   *glfw.Window
	bus   *EventBus
	loop  *FrameLoop
	glErr error
}

// Options select how the window is created.
type Options struct {
	Width, Height int
	Title         string
	Transparent   bool // request a framebuffer with alpha for the desktop compositor
	Floating      bool
}

func initWindow(o Options) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)
	glfw.WindowHint(glfw.Floating, boolHint(o.Floating))
	glfw.WindowHint(glfw.TransparentFramebuffer, boolHint(o.Transparent))

	window, err := glfw.CreateWindow(o.Width, o.Height, o.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// Open creates the window. The caller must have locked the OS thread and
// must call Close when done.
func Open(o Options) (*Window, error) {
	if o.Width <= 0 || o.Height <= 0 {
		o.Width, o.Height = WindowWidth, WindowHeight
	}
	if o.Title == "" {
		o.Title = WindowTitle
	}
	win, err := initWindow(o)
	if err != nil {
		return nil, err
	}
	w := &Window{win: win, bus: NewEventBus(), loop: NewFrameLoop()}
	if err := gl.Init(); err != nil {
		// The window stays usable as a surface; every context request fails.
		w.glErr = fmt.Errorf("%w: gl init: %v", galaxy.ErrNoGraphics, err)
		galaxy.Logger().Warn("glhost: no OpenGL", "err", err)
	}
	glfw.DetachCurrentContext()
	w.installCallbacks()
	return w, nil
}

// Close destroys the window and terminates glfw.
func (w *Window) Close() {
	w.win.Destroy()
	glfw.Terminate()
}

// Host returns the window as galaxy collaborators.
func (w *Window) Host() galaxy.Host {
	return galaxy.Host{
		Scheduler:  w.loop,
		Graphics:   w,
		Visibility: w,
		Surface:    w,
		Resize:     w,
		Pointer:    w,
	}
}

// PixelRatio is the framebuffer to window size ratio (2 on most HiDPI
// screens).
func (w *Window) PixelRatio() float64 {
	ww, _ := w.win.GetSize()
	fw, _ := w.win.GetFramebufferSize()
	if ww <= 0 || fw <= 0 {
		return 1
	}
	return float64(fw) / float64(ww)
}

// Run pumps events and fires scheduled frames until the window is asked to
// close. While nothing is scheduled it blocks on events instead of spinning.
func (w *Window) Run() {
	for !w.win.ShouldClose() {
		if w.loop.Pending() {
			glfw.PollEvents()
			w.loop.Fire(glfw.GetTime())
			continue
		}
		glfw.WaitEventsTimeout(IdleWait)
	}
}

// RequestClose makes Run return after the current iteration.
func (w *Window) RequestClose() { w.win.SetShouldClose(true) }

// Size is the window size in screen coordinates.
func (w *Window) Size() (int, int) { return w.win.GetSize() }

// OnResize implements galaxy.ResizeSource.
func (w *Window) OnResize(fn func()) func() {
	return w.bus.Subscribe(EventResize, func(Event) { fn() })
}

// OnPointer implements galaxy.PointerSource.
func (w *Window) OnPointer(h galaxy.PointerHandler) func() {
	offMove := w.bus.Subscribe(EventPointerMove, func(e Event) { h.Move(e.X, e.Y) })
	offLeave := w.bus.Subscribe(EventPointerLeave, func(Event) { h.Leave() })
	return func() {
		offLeave()
		offMove()
	}
}

// Observe implements galaxy.VisibilityObserver. The visible fraction is the
// share of the window inside the monitors' work areas, and zero while the
// window is iconified or hidden.
func (w *Window) Observe(threshold float64, fn func(bool)) func() {
	c := &crossing{threshold: threshold, fn: fn}
	off := w.bus.Subscribe(EventVisibility, func(e Event) { c.update(e.Fraction) })
	c.update(w.visibleFraction())
	return off
}

func (w *Window) visibleFraction() float64 {
	if w.win.GetAttrib(glfw.Iconified) == glfw.True || w.win.GetAttrib(glfw.Visible) == glfw.False {
		return 0
	}
	x, y := w.win.GetPos()
	ww, wh := w.win.GetSize()
	var areas []Rect
	for _, m := range glfw.GetMonitors() {
		mx, my, mw, mh := m.GetWorkarea()
		areas = append(areas, Rect{X: mx, Y: my, W: mw, H: mh})
	}
	return VisibleFraction(Rect{X: x, Y: y, W: ww, H: wh}, areas)
}

func (w *Window) emitVisibility() {
	w.bus.Emit(Event{Type: EventVisibility, Fraction: w.visibleFraction()})
}
