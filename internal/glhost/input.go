//go:build !android

package glhost

import "github.com/go-gl/glfw/v3.3/glfw"

// installCallbacks routes glfw's single callback per kind into the bus.
func (w *Window) installCallbacks() {
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.bus.Emit(Event{Type: EventPointerMove, X: x, Y: y})
	})
	w.win.SetCursorEnterCallback(func(_ *glfw.Window, entered bool) {
		if !entered {
			w.bus.Emit(Event{Type: EventPointerLeave})
		}
	})
	// Presses count as moves so touch-style input activates the pointer.
	w.win.SetMouseButtonCallback(func(win *glfw.Window, _ glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		x, y := win.GetCursorPos()
		w.bus.Emit(Event{Type: EventPointerMove, X: x, Y: y})
	})
	w.win.SetKeyCallback(func(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			win.SetShouldClose(true)
		}
	})

	w.win.SetSizeCallback(func(*glfw.Window, int, int) {
		w.bus.Emit(Event{Type: EventResize})
		w.emitVisibility()
	})
	w.win.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		w.bus.Emit(Event{Type: EventResize})
	})
	w.win.SetPosCallback(func(*glfw.Window, int, int) { w.emitVisibility() })
	w.win.SetIconifyCallback(func(*glfw.Window, bool) { w.emitVisibility() })
	glfw.SetMonitorCallback(func(*glfw.Monitor, glfw.PeripheralEvent) { w.emitVisibility() })
}
