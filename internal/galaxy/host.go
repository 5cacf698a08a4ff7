package galaxy

import (
	"fmt"

	"galaxy/internal/starfield"
)

// FrameFunc is called once per display refresh with a monotonic clock
// reading in seconds.
type FrameFunc func(now float64)

// FrameID identifies a scheduled frame. The zero value is never issued.
type FrameID uint64

// Scheduler is the host's per-frame scheduling primitive. Schedule arranges
// for fn to run once on the next frame; Cancel drops it if it has not run.
type Scheduler interface {
	Schedule(fn FrameFunc) FrameID
	Cancel(id FrameID)
}

// ContextOptions mirror the flags a drawing context is created with.
type ContextOptions struct {
	Alpha              bool
	PremultipliedAlpha bool
}

// ContextFactory creates graphics contexts bound to the surface.
type ContextFactory interface {
	NewContext(opts ContextOptions) (GraphicsContext, error)
}

// GraphicsContext owns every GPU-side resource of one Running period.
type GraphicsContext interface {
	// NewProgram compiles the starfield program and its full-surface quad.
	NewProgram() (Program, error)
	// SetSize resizes the drawing buffer and returns the size it actually got.
	SetSize(width, height int) (int, int)
	// Release frees the context immediately. The context is unusable afterwards.
	Release() error
}

// Program is a compiled starfield program.
type Program interface {
	// Draw issues one full-surface draw with u and presents it.
	Draw(u *starfield.Uniforms) error
	Release()
}

// Surface is the drawable region the galaxy lives in.
type Surface interface {
	// Size is the current layout size in surface pixels.
	Size() (width, height int)
}

// VisibilityObserver reports whether at least threshold of the surface is
// in view. fn is called once right after Observe with the current state and
// then on every crossing.
type VisibilityObserver interface {
	Observe(threshold float64, fn func(visible bool)) (disconnect func())
}

// ResizeSource reports surface size changes. The listener reads the new size
// from the Surface.
type ResizeSource interface {
	OnResize(fn func()) (unregister func())
}

// PointerHandler receives pointer events scoped to the surface. Coordinates
// are pixels from the surface's top-left corner. Hosts deliver presses as
// moves.
type PointerHandler struct {
	Move  func(x, y float64)
	Leave func()
}

// PointerSource delivers pointer events.
type PointerSource interface {
	OnPointer(h PointerHandler) (unregister func())
}

// Host bundles the collaborators a Galaxy needs. Resize and Pointer may be
// nil; everything else is required.
type Host struct {
	Scheduler  Scheduler
	Graphics   ContextFactory
	Visibility VisibilityObserver
	Surface    Surface
	Resize     ResizeSource
	Pointer    PointerSource
}

func (h Host) validate() error {
	switch {
	case h.Scheduler == nil:
		return fmt.Errorf("%w: scheduler", ErrMissingCollaborator)
	case h.Graphics == nil:
		return fmt.Errorf("%w: graphics", ErrMissingCollaborator)
	case h.Visibility == nil:
		return fmt.Errorf("%w: visibility", ErrMissingCollaborator)
	case h.Surface == nil:
		return fmt.Errorf("%w: surface", ErrMissingCollaborator)
	}
	return nil
}
