package galaxy

import "galaxy/internal/starfield"

// Pointer smoothing.
const (
	LerpFactor = 0.05 // per-tick fraction of the remaining distance
)

// Visibility.
const (
	DefaultVisibilityThreshold = 0.1 // fraction of the surface that must be on screen
)

// Surface.
const (
	DefaultPixelRatio = 1.0
)

// Config holds construction-time settings that are not shader parameters.
type Config struct {
	VisibilityThreshold float64
	PixelRatio          float64
	FrameHook           func(*starfield.Uniforms)
}

func defaultConfig() Config {
	return Config{
		VisibilityThreshold: DefaultVisibilityThreshold,
		PixelRatio:          DefaultPixelRatio,
	}
}

// Option configures a Galaxy during construction.
type Option func(*Config)

// WithVisibilityThreshold sets the visible fraction at which the galaxy starts.
func WithVisibilityThreshold(t float64) Option {
	return func(c *Config) { c.VisibilityThreshold = t }
}

// WithPixelRatio scales the surface size before it becomes the drawing
// buffer size. Values <= 0 are ignored.
func WithPixelRatio(r float64) Option {
	return func(c *Config) {
		if r > 0 {
			c.PixelRatio = r
		}
	}
}

// WithFrameHook registers fn to run after every successful draw with the
// inputs of that frame. fn must not keep the pointer.
func WithFrameHook(fn func(*starfield.Uniforms)) Option {
	return func(c *Config) { c.FrameHook = fn }
}
