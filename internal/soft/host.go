// Package soft is a headless galaxy host. It renders with the pure-Go
// starfield program and advances time only on request.
package soft

import (
	"image"

	"galaxy/internal/galaxy"
)

// Host bundles a Clock, a Canvas and switchable visibility, resize and
// pointer sources.
type Host struct {
	Clock  *Clock
	Canvas *Canvas

	visible   bool
	observers map[int]func(bool)
	resizers  map[int]func()
	pointers  map[int]galaxy.PointerHandler
	next      int
}

// New returns a hidden host with a width×height canvas.
func New(width, height int) *Host {
	return &Host{
		Clock:     NewClock(),
		Canvas:    NewCanvas(width, height),
		observers: make(map[int]func(bool)),
		resizers:  make(map[int]func()),
		pointers:  make(map[int]galaxy.PointerHandler),
	}
}

// Galaxy returns the collaborators for galaxy.New.
func (h *Host) Galaxy() galaxy.Host {
	return galaxy.Host{
		Scheduler:  h.Clock,
		Graphics:   h.Canvas,
		Visibility: h,
		Surface:    h.Canvas,
		Resize:     h,
		Pointer:    h,
	}
}

func (h *Host) subscribe() int {
	h.next++
	return h.next
}

// Observe implements galaxy.VisibilityObserver. The threshold is ignored:
// the canvas is either fully shown or hidden.
func (h *Host) Observe(_ float64, fn func(bool)) func() {
	id := h.subscribe()
	h.observers[id] = fn
	fn(h.visible)
	return func() { delete(h.observers, id) }
}

func (h *Host) OnResize(fn func()) func() {
	id := h.subscribe()
	h.resizers[id] = fn
	return func() { delete(h.resizers, id) }
}

func (h *Host) OnPointer(ph galaxy.PointerHandler) func() {
	id := h.subscribe()
	h.pointers[id] = ph
	return func() { delete(h.pointers, id) }
}

// Listeners returns the number of registered resize and pointer listeners.
func (h *Host) Listeners() int { return len(h.resizers) + len(h.pointers) }

// SetVisible notifies observers when visibility changes.
func (h *Host) SetVisible(visible bool) {
	if visible == h.visible {
		return
	}
	h.visible = visible
	for _, fn := range snapshot(h.observers) {
		fn(visible)
	}
}

// Resize changes the canvas layout size and notifies listeners.
func (h *Host) Resize(width, height int) {
	h.Canvas.width, h.Canvas.height = width, height
	for _, fn := range snapshot(h.resizers) {
		fn()
	}
}

// Move delivers a pointer move at (x, y) canvas pixels from the top-left.
func (h *Host) Move(x, y float64) {
	for _, ph := range snapshot(h.pointers) {
		ph.Move(x, y)
	}
}

// Leave delivers a pointer leave.
func (h *Host) Leave() {
	for _, ph := range snapshot(h.pointers) {
		ph.Leave()
	}
}

// Advance runs one frame dt seconds after the previous one.
func (h *Host) Advance(dt float64) { h.Clock.Advance(dt) }

// Frame returns the last drawn frame.
func (h *Host) Frame() *image.NRGBA { return h.Canvas.Frame() }

func snapshot[V any](m map[int]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
