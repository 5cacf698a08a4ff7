package starfield

import "github.com/go-gl/mathgl/mgl32"

// Uniforms is the complete set of shader inputs for one frame.
type Uniforms struct {
	Time                float32
	Resolution          mgl32.Vec3 // width, height, width/height
	Focal               mgl32.Vec2
	Rotation            mgl32.Vec2 // (cos, sin) of the static rotation
	StarSpeed           float32    // layer phase, not the raw parameter once animating
	Density             float32
	HueShift            float32
	Speed               float32
	Mouse               mgl32.Vec2 // smoothed pointer, [0,1]², origin bottom-left
	GlowIntensity       float32
	Saturation          float32
	MouseRepulsion      bool
	TwinkleIntensity    float32
	RotationSpeed       float32
	RepulsionStrength   float32
	MouseActiveFactor   float32
	AutoCenterRepulsion float32
	Transparent         bool
}

// Color is a straight (non-premultiplied) RGBA output of the program.
// RGB is unclamped; values above 1 are normal near bright stars.
type Color struct {
	R, G, B, A float32
}

// RGB returns the colour channels as a vector.
func (c Color) RGB() mgl32.Vec3 { return mgl32.Vec3{c.R, c.G, c.B} }
