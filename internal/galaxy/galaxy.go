package galaxy

import (
	"sync"

	"galaxy/internal/starfield"
)

// Galaxy is the visibility gate: it owns the Stopped/Running lifecycle and,
// while Running, the graphics context, the program, the frame driver and
// every host listener.
//
// Apart from SetParams, Tune and Params, methods must be called on the host's
// scheduling thread, the same one that runs frame and event callbacks.
type Galaxy struct {
	host Host
	cfg  Config

	mu     sync.Mutex
	params Params

	pointer *Pointer
	dims    Dimensions

	attached   bool
	disconnect func()

	state    State
	ctx      GraphicsContext
	prog     Program
	drv      *driver
	unlisten []func()
}

// New returns a stopped, detached galaxy.
func New(host Host, params Params, opts ...Option) *Galaxy {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return &Galaxy{
		host:    host,
		cfg:     cfg,
		params:  params,
		pointer: NewPointer(),
	}
}

// Attach starts observing visibility. The galaxy runs whenever at least the
// configured fraction of the surface is visible.
func (g *Galaxy) Attach() error {
	if g.attached {
		return ErrAttached
	}
	if err := g.host.validate(); err != nil {
		return err
	}
	g.attached = true
	disconnect := g.host.Visibility.Observe(g.cfg.VisibilityThreshold, g.onVisibility)
	if !g.attached {
		// Detached from inside the first callback.
		disconnect()
		return nil
	}
	g.disconnect = disconnect
	return nil
}

// Detach stops the galaxy, releases everything and stops observing
// visibility. It is safe to call more than once.
func (g *Galaxy) Detach() {
	g.attached = false
	if g.disconnect != nil {
		d := g.disconnect
		g.disconnect = nil
		d()
	}
	g.stop()
}

func (g *Galaxy) onVisibility(visible bool) {
	if !g.attached {
		return
	}
	if visible {
		g.start()
	} else {
		g.stop()
	}
}

// start moves to Running. Any current Running period is torn down first so
// rapid visibility flapping never doubles the loop or leaks a context.
func (g *Galaxy) start() {
	g.stop()

	p := g.Params()
	ctx, err := g.host.Graphics.NewContext(ContextOptions{Alpha: p.Transparent, PremultipliedAlpha: false})
	if err != nil {
		Logger().Warn("galaxy: cannot create graphics context", "err", err)
		return
	}
	prog, err := ctx.NewProgram()
	if err != nil {
		if rerr := ctx.Release(); rerr != nil {
			Logger().Warn("galaxy: release context", "err", rerr)
		}
		Logger().Warn("galaxy: cannot build program", "err", err)
		return
	}

	g.ctx = ctx
	g.prog = prog
	g.drv = newDriver(g.host.Scheduler, prog, g.pointer, g.Params, g.cfg.FrameHook)
	if g.dims.Width > 0 && g.dims.Height > 0 {
		g.drv.setResolution(g.dims.Width, g.dims.Height)
	}

	if g.host.Resize != nil {
		g.listen(g.host.Resize.OnResize(g.resize))
	}
	g.resize()

	if p.MouseInteraction && g.host.Pointer != nil {
		g.listen(g.host.Pointer.OnPointer(PointerHandler{
			Move: func(x, y float64) {
				w, h := g.host.Surface.Size()
				g.pointer.Move(x, y, float64(w), float64(h))
			},
			Leave: g.pointer.Leave,
		}))
	}

	g.state = Running
	g.drv.start()
	Logger().Info("galaxy: running", "width", g.dims.Width, "height", g.dims.Height)
}

// stop moves to Stopped: the pending frame is cancelled, every listener is
// removed and the program and context are released, in that order.
func (g *Galaxy) stop() {
	if g.drv != nil {
		g.drv.stop()
		g.drv = nil
	}
	for i := len(g.unlisten) - 1; i >= 0; i-- {
		g.unlisten[i]()
	}
	g.unlisten = nil

	if g.prog != nil {
		g.prog.Release()
		g.prog = nil
	}
	if g.ctx != nil {
		if err := g.ctx.Release(); err != nil {
			Logger().Warn("galaxy: release context", "err", err)
		}
		g.ctx = nil
	}
	if g.state == Running {
		g.state = Stopped
		Logger().Info("galaxy: stopped")
	}
}

func (g *Galaxy) listen(unregister func()) {
	if unregister != nil {
		g.unlisten = append(g.unlisten, unregister)
	}
}

// State reports the lifecycle state.
func (g *Galaxy) State() State { return g.state }

// Halted reports whether a Running galaxy's loop stopped after a draw error.
// Only the next visibility exit and re-entry restarts it.
func (g *Galaxy) Halted() bool { return g.drv != nil && g.drv.halted }

// Params returns a copy of the current parameters.
func (g *Galaxy) Params() Params {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.params
}

// SetParams replaces the parameters. The next frame uses them.
func (g *Galaxy) SetParams(p Params) {
	g.mu.Lock()
	g.params = p
	g.mu.Unlock()
}

// Tune edits the parameters in place under the lock.
func (g *Galaxy) Tune(fn func(*Params)) {
	g.mu.Lock()
	fn(&g.params)
	g.mu.Unlock()
}

// Pointer returns the pointer tracker. Hosts without a PointerSource may
// drive it directly from the scheduling thread.
func (g *Galaxy) Pointer() *Pointer { return g.pointer }

// Dimensions returns the drawing buffer size of the current Running period.
func (g *Galaxy) Dimensions() Dimensions { return g.dims }

// Uniforms returns the inputs last pushed to the program, and false while
// Stopped.
func (g *Galaxy) Uniforms() (starfield.Uniforms, bool) {
	if g.drv == nil {
		return starfield.Uniforms{}, false
	}
	return g.drv.u, true
}

// Elapsed returns the animated time of the current Running period.
func (g *Galaxy) Elapsed() float64 {
	if g.drv == nil {
		return 0
	}
	return g.drv.elapsed
}
