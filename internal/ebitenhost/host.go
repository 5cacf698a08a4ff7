// Package ebitenhost runs a galaxy inside an Ebitengine game, on the desktop
// or in a browser through js/wasm.
package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"galaxy/internal/galaxy"
)

// Host is an ebiten.Game that provides every galaxy collaborator.
type Host struct {
	// VisibleUnfocused keeps the galaxy running while the window has no
	// focus. Browsers unfocus hidden tabs, so web builds turn it off.
	VisibleUnfocused bool

	start time.Time

	outW, outH int // layout size from Ebitengine
	bufW, bufH int // drawing buffer size chosen by the galaxy
	screen     *ebiten.Image

	galaxy.FrameQueue

	visible   bool
	observed  bool
	observers map[int]func(bool)
	resizers  map[int]func()
	nextSub   int
	pointer   pointerEdges
	touches   []ebiten.TouchID

	quit bool
}

// New returns a host. Pass it to galaxy.New through Galaxy, then to
// ebiten.RunGame.
func New() *Host {
	return &Host{
		VisibleUnfocused: true,
		start:            time.Now(),
		observers:        make(map[int]func(bool)),
		resizers:         make(map[int]func()),
	}
}

// Galaxy returns the collaborators for galaxy.New.
func (h *Host) Galaxy() galaxy.Host {
	return galaxy.Host{
		Scheduler:  h,
		Graphics:   h,
		Visibility: h,
		Surface:    h,
		Resize:     h,
		Pointer:    h,
	}
}

// RunOptions prepares Ebitengine for the host and returns the options to
// pass to ebiten.RunGameWithOptions. The screen is not cleared between
// frames: every galaxy draw covers it, and after a halted draw the last
// frame stays up.
func (h *Host) RunOptions(transparent bool) *ebiten.RunGameOptions {
	ebiten.SetScreenClearedEveryFrame(false)
	return &ebiten.RunGameOptions{ScreenTransparent: transparent}
}

// Quit ends the game after the current tick.
func (h *Host) Quit() { h.quit = true }

// Size implements galaxy.Surface with the layout size.
func (h *Host) Size() (int, int) { return h.outW, h.outH }

// Observe implements galaxy.VisibilityObserver. A window is either shown or
// not, so any threshold behaves the same.
func (h *Host) Observe(_ float64, fn func(bool)) func() {
	h.nextSub++
	id := h.nextSub
	h.observers[id] = fn
	fn(h.visible)
	return func() { delete(h.observers, id) }
}

func (h *Host) OnResize(fn func()) func() {
	h.nextSub++
	id := h.nextSub
	h.resizers[id] = fn
	return func() { delete(h.resizers, id) }
}

func (h *Host) OnPointer(ph galaxy.PointerHandler) func() { return h.pointer.add(ph) }

func (h *Host) setVisible(visible bool) {
	if h.observed && visible == h.visible {
		return
	}
	h.observed = true
	h.visible = visible
	fns := make([]func(bool), 0, len(h.observers))
	for _, fn := range h.observers {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(visible)
	}
}

// Update polls visibility and pointer state.
func (h *Host) Update() error {
	if h.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	visible := h.outW > 0 && h.outH > 0 && !ebiten.IsWindowMinimized()
	if !h.VisibleUnfocused {
		visible = visible && ebiten.IsFocused()
	}
	h.setVisible(visible)

	x, y := h.cursor()
	pressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	h.touches = inpututil.AppendJustPressedTouchIDs(h.touches[:0])
	if len(h.touches) > 0 {
		tx, ty := ebiten.TouchPosition(h.touches[0])
		x, y = h.toLayout(tx, ty)
		pressed = true
	}
	h.pointer.poll(x, y, h.outW, h.outH, pressed)
	return nil
}

func (h *Host) cursor() (float64, float64) {
	return h.toLayout(ebiten.CursorPosition())
}

// toLayout converts screen pixels to layout pixels.
func (h *Host) toLayout(x, y int) (float64, float64) {
	sw, sh := h.screenSize()
	if sw <= 0 || sh <= 0 {
		return float64(x), float64(y)
	}
	return float64(x) * float64(h.outW) / float64(sw), float64(y) * float64(h.outH) / float64(sh)
}

func (h *Host) screenSize() (int, int) {
	if h.bufW > 0 && h.bufH > 0 {
		return h.bufW, h.bufH
	}
	return h.outW, h.outH
}

// Draw fires the frames scheduled since the last draw. Programs draw onto
// screen only while it runs.
func (h *Host) Draw(screen *ebiten.Image) {
	if h.Len() == 0 {
		return
	}
	h.screen = screen
	defer func() { h.screen = nil }()
	h.Fire(time.Since(h.start).Seconds())
}

// Layout records the outside size and returns the drawing buffer size.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.outW || outsideHeight != h.outH {
		h.outW, h.outH = outsideWidth, outsideHeight
		fns := make([]func(), 0, len(h.resizers))
		for _, fn := range h.resizers {
			fns = append(fns, fn)
		}
		for _, fn := range fns {
			fn()
		}
	}
	w, ht := h.screenSize()
	return max(w, 1), max(ht, 1)
}
