package galaxy

// PointerState is a pointer position in surface space ([0,1]², origin
// bottom-left) with an activity factor in [0,1].
type PointerState struct {
	X, Y   float64
	Active float64
}

// Pointer tracks the raw pointer target and its low-pass filtered copy.
// Input events write the target; only the frame driver advances the filter.
type Pointer struct {
	target   PointerState
	smoothed PointerState
}

// NewPointer returns a centred, inactive pointer.
func NewPointer() *Pointer {
	rest := PointerState{X: 0.5, Y: 0.5}
	return &Pointer{target: rest, smoothed: rest}
}

// Move records a pointer at (x, y) pixels from the top-left of a surface of
// the given size. Events on an empty surface are dropped.
func (p *Pointer) Move(x, y, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	p.target.X = x / width
	p.target.Y = 1 - y/height
	p.target.Active = 1
}

// Leave marks the pointer inactive and keeps its last position.
func (p *Pointer) Leave() {
	p.target.Active = 0
}

// Step moves the smoothed state LerpFactor of the way to the target.
func (p *Pointer) Step() {
	p.smoothed.X += (p.target.X - p.smoothed.X) * LerpFactor
	p.smoothed.Y += (p.target.Y - p.smoothed.Y) * LerpFactor
	p.smoothed.Active += (p.target.Active - p.smoothed.Active) * LerpFactor
}

// Target returns the latest raw state.
func (p *Pointer) Target() PointerState { return p.target }

// Smoothed returns the filtered state fed to the shader.
func (p *Pointer) Smoothed() PointerState { return p.smoothed }
