package galaxy

import (
	"errors"
	"fmt"
	"testing"

	"galaxy/internal/starfield"
)

func attached(t *testing.T, h *testHost, p Params, opts ...Option) *Galaxy {
	t.Helper()
	g := New(h.Host(), p, opts...)
	if err := g.Attach(); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	t.Cleanup(g.Detach)
	return g
}

func assertStopped(t *testing.T, g *Galaxy, h *testHost) {
	t.Helper()
	if g.State() != Stopped {
		t.Errorf("state = %v, want stopped", g.State())
	}
	if h.gfx.liveContexts != 0 || h.gfx.livePrograms != 0 {
		t.Errorf("live contexts=%d programs=%d, want 0", h.gfx.liveContexts, h.gfx.livePrograms)
	}
	if n := h.sched.Len(); n != 0 {
		t.Errorf("pending frames = %d, want 0", n)
	}
	if n := h.events.listeners(); n != 0 {
		t.Errorf("listeners = %d, want 0", n)
	}
}

func assertRunning(t *testing.T, g *Galaxy, h *testHost, listeners int) {
	t.Helper()
	if g.State() != Running {
		t.Errorf("state = %v, want running", g.State())
	}
	if h.gfx.liveContexts != 1 || h.gfx.livePrograms != 1 {
		t.Errorf("live contexts=%d programs=%d, want 1", h.gfx.liveContexts, h.gfx.livePrograms)
	}
	if n := h.sched.Len(); n != 1 {
		t.Errorf("pending frames = %d, want 1", n)
	}
	if n := h.events.listeners(); n != listeners {
		t.Errorf("listeners = %d, want %d", n, listeners)
	}
}

func lastDraw(t *testing.T, h *testHost) starfield.Uniforms {
	t.Helper()
	if len(h.gfx.draws) == 0 {
		t.Fatal("no frame drawn")
	}
	return h.gfx.draws[len(h.gfx.draws)-1]
}

func TestAttachValidatesHost(t *testing.T) {
	full := newTestHost()
	tests := []struct {
		name string
		edit func(h *Host)
	}{
		{"scheduler", func(h *Host) { h.Scheduler = nil }},
		{"graphics", func(h *Host) { h.Graphics = nil }},
		{"visibility", func(h *Host) { h.Visibility = nil }},
		{"surface", func(h *Host) { h.Surface = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := full.Host()
			tt.edit(&host)
			err := New(host, DefaultParams()).Attach()
			if !errors.Is(err, ErrMissingCollaborator) {
				t.Errorf("Attach() = %v, want ErrMissingCollaborator", err)
			}
		})
	}

	g := attached(t, full, DefaultParams())
	if err := g.Attach(); !errors.Is(err, ErrAttached) {
		t.Errorf("second Attach() = %v, want ErrAttached", err)
	}
}

func TestAttachObservesAtThreshold(t *testing.T) {
	h := newTestHost()
	attached(t, h, DefaultParams())
	if h.vis.threshold != DefaultVisibilityThreshold {
		t.Errorf("threshold = %v, want %v", h.vis.threshold, DefaultVisibilityThreshold)
	}

	h2 := newTestHost()
	attached(t, h2, DefaultParams(), WithVisibilityThreshold(0.5))
	if h2.vis.threshold != 0.5 {
		t.Errorf("threshold = %v, want 0.5", h2.vis.threshold)
	}
}

func TestVisibilityLifecycle(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams())
	assertStopped(t, g, h)

	h.vis.Set(true)
	assertRunning(t, g, h, 2)
	if want := (ContextOptions{Alpha: true}); h.gfx.lastOpts != want {
		t.Errorf("context options = %+v, want %+v", h.gfx.lastOpts, want)
	}

	h.sched.Fire(1)
	assertRunning(t, g, h, 2)

	h.vis.Set(false)
	assertStopped(t, g, h)
}

func TestAttachWhileVisibleStartsImmediately(t *testing.T) {
	h := newTestHost()
	h.vis.visible = true
	g := attached(t, h, DefaultParams())
	assertRunning(t, g, h, 2)
}

func TestVisibilityFlappingStaysBounded(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams())

	for i := 0; i < 100; i++ {
		h.vis.Set(true)
		if i%3 == 0 {
			// Re-entry while already running.
			h.vis.Set(true)
		}
		h.sched.Fire(float64(i))
		assertRunning(t, g, h, 2)
		h.vis.Set(false)
		assertStopped(t, g, h)
	}
	if h.gfx.created < 100 {
		t.Errorf("contexts created = %d, want at least one per entry", h.gfx.created)
	}
}

func TestDetachReleasesEverything(t *testing.T) {
	h := newTestHost()
	g := New(h.Host(), DefaultParams())
	if err := g.Attach(); err != nil {
		t.Fatal(err)
	}
	h.vis.Set(true)
	g.Detach()
	assertStopped(t, g, h)
	if len(h.vis.observers) != 0 {
		t.Errorf("observers = %d after Detach, want 0", len(h.vis.observers))
	}
	g.Detach()

	if err := g.Attach(); err != nil {
		t.Errorf("re-Attach after Detach: %v", err)
	}
	g.Detach()
}

func TestGraphicsUnavailableStaysStopped(t *testing.T) {
	tests := []struct {
		name string
		edit func(f *fakeGraphics)
	}{
		{"context", func(f *fakeGraphics) { f.contextErr = fmt.Errorf("webgl: %w", ErrNoGraphics) }},
		{"program", func(f *fakeGraphics) { f.programErr = errors.New("compile shader: syntax error") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost()
			tt.edit(h.gfx)
			g := attached(t, h, DefaultParams())
			h.vis.Set(true)
			assertStopped(t, g, h)
			if _, ok := g.Uniforms(); ok {
				t.Error("Uniforms reported a running driver")
			}
		})
	}
}

func TestDrawFailureHaltsSilently(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams())
	h.vis.Set(true)

	h.gfx.drawErr = errors.New("context lost")
	h.sched.Fire(1)

	if g.State() != Running {
		t.Errorf("state = %v, want running", g.State())
	}
	if !g.Halted() {
		t.Error("Halted() = false after draw failure")
	}
	if n := h.sched.Len(); n != 0 {
		t.Errorf("pending frames = %d, want 0 after draw failure", n)
	}

	// Only a fresh entry recovers.
	h.gfx.drawErr = nil
	h.vis.Set(false)
	assertStopped(t, g, h)
	h.vis.Set(true)
	h.sched.Fire(2)
	if g.Halted() {
		t.Error("Halted() = true after re-entry")
	}
	if len(h.gfx.draws) != 1 {
		t.Errorf("draws = %d, want 1", len(h.gfx.draws))
	}
}

func TestTimeAccumulator(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams())
	h.vis.Set(true)

	h.sched.Fire(10)
	if got := lastDraw(t, h).Time; got != 0 {
		t.Errorf("first tick time = %v, want 0", got)
	}
	h.sched.Fire(10.5)
	h.sched.Fire(11.25)
	if got := lastDraw(t, h).Time; got != 1.25 {
		t.Errorf("time = %v, want 1.25", got)
	}
	if got, want := lastDraw(t, h).StarSpeed, float32(1.25*0.5/10); got != want {
		t.Errorf("star phase = %v, want %v", got, want)
	}

	h.vis.Set(false)
	h.vis.Set(true)
	h.sched.Fire(50)
	if got := lastDraw(t, h).Time; got != 0 {
		t.Errorf("time after restart = %v, want 0", got)
	}
	if g.Elapsed() != 0 {
		t.Errorf("Elapsed = %v, want 0", g.Elapsed())
	}
}

func TestDisableAnimationFreezesTimeNotPointer(t *testing.T) {
	h := newTestHost()
	p := DefaultParams()
	g := attached(t, h, p)
	h.vis.Set(true)
	h.sched.Fire(1)
	h.sched.Fire(2)

	g.Tune(func(p *Params) { p.DisableAnimation = true })
	h.events.Move(600, 20)
	h.sched.Fire(3)
	first := lastDraw(t, h)
	h.sched.Fire(7.5)
	second := lastDraw(t, h)

	if first.Time != second.Time || first.Time != 1 {
		t.Errorf("time moved while disabled: %v then %v, want 1", first.Time, second.Time)
	}
	if first.StarSpeed != second.StarSpeed {
		t.Errorf("star phase moved while disabled: %v then %v", first.StarSpeed, second.StarSpeed)
	}
	if first.Mouse == second.Mouse || first.MouseActiveFactor >= second.MouseActiveFactor {
		t.Errorf("pointer not smoothed while disabled: %v/%v then %v/%v",
			first.Mouse, first.MouseActiveFactor, second.Mouse, second.MouseActiveFactor)
	}

	// Resuming continues from the frozen time rather than jumping.
	g.Tune(func(p *Params) { p.DisableAnimation = false })
	h.sched.Fire(8)
	if got := lastDraw(t, h).Time; got != 1.5 {
		t.Errorf("time after resume = %v, want 1.5", got)
	}
}

func TestStarPhaseStartsAtParameter(t *testing.T) {
	h := newTestHost()
	p := DefaultParams()
	p.DisableAnimation = true
	p.StarSpeed = 0.8
	attached(t, h, p)
	h.vis.Set(true)
	h.sched.Fire(4)
	if got := lastDraw(t, h).StarSpeed; got != 0.8 {
		t.Errorf("star phase = %v, want raw parameter 0.8", got)
	}
}

func TestParamsReadEveryTick(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams())
	h.vis.Set(true)
	h.sched.Fire(1)
	if got := lastDraw(t, h).HueShift; got != 140 {
		t.Fatalf("hue = %v, want 140", got)
	}

	next := g.Params()
	next.HueShift = 275
	next.Focal = [2]float64{0.25, 0.75}
	next.Transparent = false
	g.SetParams(next)
	h.sched.Fire(2)

	u := lastDraw(t, h)
	if u.HueShift != 275 || u.Focal[0] != 0.25 || u.Focal[1] != 0.75 || u.Transparent {
		t.Errorf("frame did not pick up new params: %+v", u)
	}
}

func TestPointerEventsReachShader(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams())
	h.vis.Set(true)

	h.events.Move(640, 0)
	if got := g.Pointer().Target(); got != (PointerState{X: 1, Y: 1, Active: 1}) {
		t.Errorf("target = %+v, want top-right active", got)
	}
	h.sched.Fire(1)
	u := lastDraw(t, h)
	if u.MouseActiveFactor != float32(LerpFactor) {
		t.Errorf("active factor = %v, want %v after one tick", u.MouseActiveFactor, LerpFactor)
	}

	h.events.Leave()
	if got := g.Pointer().Target().Active; got != 0 {
		t.Errorf("active after leave = %v, want 0", got)
	}
}

func TestMouseInteractionDisabled(t *testing.T) {
	h := newTestHost()
	p := DefaultParams()
	p.MouseInteraction = false
	g := attached(t, h, p)
	h.vis.Set(true)
	assertRunning(t, g, h, 1)

	h.sched.Fire(1)
	h.sched.Fire(2)
	u := lastDraw(t, h)
	if u.MouseActiveFactor != 0 || u.Mouse[0] != 0.5 || u.Mouse[1] != 0.5 {
		t.Errorf("pointer input = %v/%v, want inert centre", u.Mouse, u.MouseActiveFactor)
	}
}

func TestResizeAdapter(t *testing.T) {
	h := newTestHost()
	g := attached(t, h, DefaultParams(), WithPixelRatio(2))
	h.vis.Set(true)

	if got := g.Dimensions(); got.Width != 1280 || got.Height != 720 {
		t.Errorf("initial dimensions = %+v, want 1280x720", got)
	}

	h.surface.w, h.surface.h = 100, 50
	h.events.Resize()
	h.sched.Fire(1)
	if got := lastDraw(t, h).Resolution; got[0] != 200 || got[1] != 100 || got[2] != 2 {
		t.Errorf("resolution = %v, want (200,100,2)", got)
	}

	// A minimised surface keeps the last good size.
	h.surface.w, h.surface.h = 0, 0
	h.events.Resize()
	h.sched.Fire(2)
	if got := lastDraw(t, h).Resolution; got[0] != 200 {
		t.Errorf("resolution after empty resize = %v, want unchanged", got)
	}
}

func TestFrameHook(t *testing.T) {
	h := newTestHost()
	var seen []float32
	attached(t, h, DefaultParams(), WithFrameHook(func(u *starfield.Uniforms) {
		seen = append(seen, u.Time)
	}))
	h.vis.Set(true)
	h.sched.Fire(1)
	h.sched.Fire(3)
	if len(seen) != 2 || seen[1] != 2 {
		t.Errorf("hook saw %v, want [0 2]", seen)
	}

	h.gfx.drawErr = errors.New("lost")
	h.sched.Fire(4)
	if len(seen) != 2 {
		t.Errorf("hook ran after failed draw: %v", seen)
	}
}

func TestStateString(t *testing.T) {
	if Stopped.String() != "stopped" || Running.String() != "running" || State(9).String() != "unknown" {
		t.Error("unexpected State strings")
	}
}
