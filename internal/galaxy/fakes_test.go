package galaxy

import (
	"errors"

	"galaxy/internal/starfield"
)

type fakeGraphics struct {
	contextErr error
	programErr error
	drawErr    error

	created      int
	liveContexts int
	livePrograms int
	lastOpts     ContextOptions
	draws        []starfield.Uniforms
	sizes        [][2]int
}

func (f *fakeGraphics) NewContext(opts ContextOptions) (GraphicsContext, error) {
	if f.contextErr != nil {
		return nil, f.contextErr
	}
	f.created++
	f.liveContexts++
	f.lastOpts = opts
	return &fakeContext{g: f}, nil
}

type fakeContext struct {
	g        *fakeGraphics
	released bool
}

func (c *fakeContext) NewProgram() (Program, error) {
	if c.g.programErr != nil {
		return nil, c.g.programErr
	}
	c.g.livePrograms++
	return &fakeProgram{g: c.g}, nil
}

func (c *fakeContext) SetSize(w, h int) (int, int) {
	c.g.sizes = append(c.g.sizes, [2]int{w, h})
	return w, h
}

func (c *fakeContext) Release() error {
	if c.released {
		return errors.New("double release")
	}
	c.released = true
	c.g.liveContexts--
	return nil
}

type fakeProgram struct {
	g        *fakeGraphics
	released bool
}

func (p *fakeProgram) Draw(u *starfield.Uniforms) error {
	if p.released {
		return errors.New("draw after release")
	}
	if p.g.drawErr != nil {
		return p.g.drawErr
	}
	p.g.draws = append(p.g.draws, *u)
	return nil
}

func (p *fakeProgram) Release() {
	if !p.released {
		p.released = true
		p.g.livePrograms--
	}
}

type fakeVisibility struct {
	visible   bool
	threshold float64
	observers map[int]func(bool)
	next      int
}

func (v *fakeVisibility) Observe(threshold float64, fn func(bool)) func() {
	if v.observers == nil {
		v.observers = make(map[int]func(bool))
	}
	v.threshold = threshold
	v.next++
	id := v.next
	v.observers[id] = fn
	fn(v.visible)
	return func() { delete(v.observers, id) }
}

func (v *fakeVisibility) Set(visible bool) {
	v.visible = visible
	for _, fn := range v.observers {
		fn(visible)
	}
}

type fakeSurface struct{ w, h int }

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

type fakeEvents struct {
	resize  map[int]func()
	pointer map[int]PointerHandler
	next    int
}

func newFakeEvents() *fakeEvents {
	return &fakeEvents{resize: make(map[int]func()), pointer: make(map[int]PointerHandler)}
}

func (e *fakeEvents) OnResize(fn func()) func() {
	e.next++
	id := e.next
	e.resize[id] = fn
	return func() { delete(e.resize, id) }
}

func (e *fakeEvents) OnPointer(h PointerHandler) func() {
	e.next++
	id := e.next
	e.pointer[id] = h
	return func() { delete(e.pointer, id) }
}

func (e *fakeEvents) Resize() {
	for _, fn := range e.resize {
		fn()
	}
}

func (e *fakeEvents) Move(x, y float64) {
	for _, h := range e.pointer {
		h.Move(x, y)
	}
}

func (e *fakeEvents) Leave() {
	for _, h := range e.pointer {
		h.Leave()
	}
}

func (e *fakeEvents) listeners() int { return len(e.resize) + len(e.pointer) }

type testHost struct {
	sched   *FrameQueue
	gfx     *fakeGraphics
	vis     *fakeVisibility
	surface *fakeSurface
	events  *fakeEvents
}

func newTestHost() *testHost {
	return &testHost{
		sched:   new(FrameQueue),
		gfx:     &fakeGraphics{},
		vis:     &fakeVisibility{},
		surface: &fakeSurface{w: 640, h: 360},
		events:  newFakeEvents(),
	}
}

func (h *testHost) Host() Host {
	return Host{
		Scheduler:  h.sched,
		Graphics:   h.gfx,
		Visibility: h.vis,
		Surface:    h.surface,
		Resize:     h.events,
		Pointer:    h.events,
	}
}
