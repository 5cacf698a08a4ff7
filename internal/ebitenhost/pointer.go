package ebitenhost

import "galaxy/internal/galaxy"

// pointerEdges turns polled cursor positions into move and leave events.
// Ebitengine has no enter/leave callbacks, so leaving is a cursor seen
// outside the surface after being inside it.
type pointerEdges struct {
	inside     bool
	lastX      float64
	lastY      float64
	handlers   map[int]galaxy.PointerHandler
	nextHandle int
}

func (pe *pointerEdges) add(h galaxy.PointerHandler) func() {
	if pe.handlers == nil {
		pe.handlers = make(map[int]galaxy.PointerHandler)
	}
	pe.nextHandle++
	id := pe.nextHandle
	pe.handlers[id] = h
	return func() { delete(pe.handlers, id) }
}

// poll reports the cursor at (x, y) on a width×height surface. pressed
// forces a move even when the cursor has not moved.
func (pe *pointerEdges) poll(x, y float64, width, height int, pressed bool) {
	in := width > 0 && height > 0 && x >= 0 && y >= 0 && x < float64(width) && y < float64(height)
	switch {
	case in && (!pe.inside || pressed || x != pe.lastX || y != pe.lastY):
		pe.inside, pe.lastX, pe.lastY = true, x, y
		for _, h := range pe.snapshot() {
			h.Move(x, y)
		}
	case !in && pe.inside:
		pe.inside = false
		for _, h := range pe.snapshot() {
			h.Leave()
		}
	}
}

func (pe *pointerEdges) snapshot() []galaxy.PointerHandler {
	out := make([]galaxy.PointerHandler, 0, len(pe.handlers))
	for _, h := range pe.handlers {
		out = append(out, h)
	}
	return out
}
